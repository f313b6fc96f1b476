package db

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/glebarez/sqlite"
	embeddedmigrations "github.com/terraincognita07/cardiocheck/migrations"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestOpenSQLiteAppliesEmbeddedMigrationsOnCleanDatabase(t *testing.T) {
	database := openSQLiteForMigrationTest(t, filepath.Join(t.TempDir(), "cardiocheck-clean.db"))

	assertColumnsExist(t, database, "users", "id", "username", "email", "password_hash", "created_at")
	assertColumnsExist(t, database, "feedback", "id", "user", "feedback", "rating", "category", "created_at")
	assertNormalizedEmailIndexExists(t, database)
	assertAllEmbeddedMigrationsApplied(t, database)
}

func TestOpenSQLiteUpgradesLegacyDatabase(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "users.db")
	seedLegacySchema(t, databasePath)

	database := openSQLiteForMigrationTest(t, databasePath)

	assertColumnsExist(t, database, "users", "password_hash", "created_at")
	assertColumnsExist(t, database, "feedback", "rating", "category", "created_at")
	assertAllEmbeddedMigrationsApplied(t, database)

	var upgraded struct {
		Password     string `gorm:"column:password"`
		PasswordHash string `gorm:"column:password_hash"`
		Email        string `gorm:"column:email"`
	}
	if err := database.
		Table("users").
		Select("password", "password_hash", "email").
		Where("username = ?", "legacy").
		Scan(&upgraded).Error; err != nil {
		t.Fatalf("load upgraded legacy user: %v", err)
	}
	if upgraded.Password != "" {
		t.Fatalf("expected plaintext password to be cleared, got %q", upgraded.Password)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(upgraded.PasswordHash), []byte("plain-pw")); err != nil {
		t.Fatalf("expected legacy password to be bcrypt hashed: %v", err)
	}
	if upgraded.Email != "legacy@example.com" {
		t.Fatalf("expected legacy email to survive upgrade, got %q", upgraded.Email)
	}

	var legacyFeedback struct {
		Rating   int    `gorm:"column:rating"`
		Category string `gorm:"column:category"`
		Feedback string `gorm:"column:feedback"`
	}
	if err := database.
		Table("feedback").
		Select("rating", "category", "feedback").
		Where("user = ?", "legacy").
		Scan(&legacyFeedback).Error; err != nil {
		t.Fatalf("load legacy feedback: %v", err)
	}
	if legacyFeedback.Rating != 3 || legacyFeedback.Category != "General" {
		t.Fatalf("expected legacy feedback defaults rating=3 category=General, got %+v", legacyFeedback)
	}
	if legacyFeedback.Feedback != "legacy note" {
		t.Fatalf("expected legacy feedback text to survive, got %q", legacyFeedback.Feedback)
	}
}

func TestOpenSQLiteMigrationBootstrapIsIdempotent(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "cardiocheck-idempotent.db")

	firstOpen, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("first open sqlite: %v", err)
	}
	firstRecords := loadMigrationRecords(t, firstOpen)
	if err := Close(firstOpen); err != nil {
		t.Fatalf("close first sql db: %v", err)
	}

	secondOpen := openSQLiteForMigrationTest(t, databasePath)
	secondRecords := loadMigrationRecords(t, secondOpen)

	if !reflect.DeepEqual(firstRecords, secondRecords) {
		t.Fatalf("expected migration records to remain unchanged between boots, before=%v after=%v", firstRecords, secondRecords)
	}
}

func TestReadMigrationsRejectsDuplicateVersions(t *testing.T) {
	files := fstest.MapFS{
		"001_init.sql":  {Data: []byte("CREATE TABLE a (id INTEGER);")},
		"001_again.sql": {Data: []byte("CREATE TABLE b (id INTEGER);")},
	}
	if _, err := readMigrations(files); err == nil {
		t.Fatal("expected duplicate migration versions to fail")
	}
}

func TestReadMigrationsSortsNumericallyAndSkipsForeignFiles(t *testing.T) {
	files := fstest.MapFS{
		"010_late.sql":  {Data: []byte("SELECT 1;")},
		"002_early.sql": {Data: []byte("SELECT 1;")},
		"README.md":     {Data: []byte("notes")},
	}
	migrations, err := readMigrations(files)
	if err != nil {
		t.Fatalf("readMigrations() unexpected error: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migrations))
	}
	if migrations[0].Name != "002_early.sql" || migrations[1].Name != "010_late.sql" {
		t.Fatalf("unexpected migration order: %v", migrations)
	}
	if migrations[1].key() != "010" {
		t.Fatalf("expected zero padded key 010, got %q", migrations[1].key())
	}
}

func openSQLiteForMigrationTest(t *testing.T, databasePath string) *gorm.DB {
	t.Helper()

	database, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = Close(database)
	})
	return database
}

func seedLegacySchema(t *testing.T, databasePath string) {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(databasePath), &gorm.Config{})
	if err != nil {
		t.Fatalf("open legacy sqlite: %v", err)
	}

	initSQL, err := fs.ReadFile(embeddedmigrations.Files, "001_init.sql")
	if err != nil {
		t.Fatalf("read 001 migration: %v", err)
	}
	for _, statement := range splitStatements(string(initSQL)) {
		if err := database.Exec(statement).Error; err != nil {
			t.Fatalf("apply legacy statement: %v", err)
		}
	}

	if err := database.Exec(
		`INSERT INTO users (username, password, email) VALUES (?, ?, ?)`,
		"legacy", "plain-pw", "legacy@example.com",
	).Error; err != nil {
		t.Fatalf("insert legacy user: %v", err)
	}
	if err := database.Exec(
		`INSERT INTO feedback (user, feedback) VALUES (?, ?)`,
		"legacy", "legacy note",
	).Error; err != nil {
		t.Fatalf("insert legacy feedback: %v", err)
	}

	if database.Migrator().HasTable("schema_migrations") {
		t.Fatal("expected legacy schema to not have schema_migrations table")
	}
	if err := Close(database); err != nil {
		t.Fatalf("close legacy sql db: %v", err)
	}
}

func assertColumnsExist(t *testing.T, database *gorm.DB, table string, expected ...string) {
	t.Helper()

	columns := loadTableColumns(t, database, table)
	for _, column := range expected {
		if _, exists := columns[column]; !exists {
			t.Fatalf("expected %s.%s column to exist after migrations", table, column)
		}
	}
}

func assertNormalizedEmailIndexExists(t *testing.T, database *gorm.DB) {
	t.Helper()

	var row struct {
		SQL string `gorm:"column:sql"`
	}
	if err := database.Raw(
		`SELECT sql FROM sqlite_master WHERE type = 'index' AND name = ?`,
		"uidx_users_email_normalized",
	).Scan(&row).Error; err != nil {
		t.Fatalf("load index definition: %v", err)
	}
	definition := strings.ToLower(strings.Join(strings.Fields(row.SQL), ""))
	if !strings.Contains(definition, "lower(trim(email))") {
		t.Fatalf("expected normalized email index to use lower(trim(email)), got %q", row.SQL)
	}
}

func assertAllEmbeddedMigrationsApplied(t *testing.T, database *gorm.DB) {
	t.Helper()

	migrations, err := readMigrations(embeddedmigrations.Files)
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	expected := make([]string, 0, len(migrations))
	for _, migration := range migrations {
		expected = append(expected, migration.key())
	}

	records := loadMigrationRecords(t, database)
	actual := make([]string, 0, len(records))
	for _, record := range records {
		actual = append(actual, record.Version)
	}

	if !reflect.DeepEqual(expected, actual) {
		t.Fatalf("unexpected applied migration versions: expected=%v actual=%v", expected, actual)
	}
}

type migrationRecord struct {
	Version   string `gorm:"column:version"`
	Name      string `gorm:"column:name"`
	AppliedAt string `gorm:"column:applied_at"`
}

func loadMigrationRecords(t *testing.T, database *gorm.DB) []migrationRecord {
	t.Helper()

	records := make([]migrationRecord, 0)
	if err := database.Raw(
		`SELECT version, name, CAST(applied_at AS TEXT) AS applied_at FROM schema_migrations ORDER BY version ASC`,
	).Scan(&records).Error; err != nil {
		t.Fatalf("load migration records: %v", err)
	}
	return records
}

func loadTableColumns(t *testing.T, database *gorm.DB, table string) map[string]struct{} {
	t.Helper()

	var rows []tableColumn
	query := fmt.Sprintf(`PRAGMA table_info("%s")`, strings.ReplaceAll(table, `"`, `""`))
	if err := database.Raw(query).Scan(&rows).Error; err != nil {
		t.Fatalf("load table columns for %s: %v", table, err)
	}

	columns := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		columns[strings.ToLower(strings.TrimSpace(row.Name))] = struct{}{}
	}
	return columns
}
