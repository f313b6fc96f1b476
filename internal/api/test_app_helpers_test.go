package api

import (
	"context"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cardiocheck/internal/dataset"
	"github.com/terraincognita07/cardiocheck/internal/db"
	"github.com/terraincognita07/cardiocheck/internal/i18n"
	"github.com/terraincognita07/cardiocheck/internal/metrics"
	"github.com/terraincognita07/cardiocheck/internal/ml"
	"github.com/terraincognita07/cardiocheck/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

type stubNotifier struct {
	mu         sync.Mutex
	err        error
	recipients []string
}

func (notifier *stubNotifier) NotifyLogin(_ context.Context, email string) error {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	notifier.recipients = append(notifier.recipients, email)
	return notifier.err
}

func (notifier *stubNotifier) sent() []string {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	return append([]string(nil), notifier.recipients...)
}

type testApp struct {
	app      *fiber.App
	database *gorm.DB
	notifier *stubNotifier
	metrics  *metrics.Metrics
}

type trainedFixture struct {
	table    *dataset.Table
	model    *ml.Model
	accuracy float64
}

var loadTrainedFixture = sync.OnceValues(func() (trainedFixture, error) {
	table, err := dataset.Load(filepath.Join(internalDir(), "dataset", "testdata", "heart.csv"))
	if err != nil {
		return trainedFixture{}, err
	}
	model, accuracy, err := ml.Train(table.Rows(), ml.DefaultParams())
	if err != nil {
		return trainedFixture{}, err
	}
	return trainedFixture{table: table, model: model, accuracy: accuracy}, nil
})

func internalDir() string {
	_, testFile, _, _ := runtime.Caller(0)
	return filepath.Dir(filepath.Dir(testFile))
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithNotifier(t, &stubNotifier{})
}

func newTestAppWithNotifier(t *testing.T, notifier *stubNotifier) *testApp {
	t.Helper()

	fixture, err := loadTrainedFixture()
	if err != nil {
		t.Fatalf("load trained fixture: %v", err)
	}

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "cardiocheck-api-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(database)
	})

	i18nManager, err := i18n.NewManager(i18n.LangEN, i18n.Locales())
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	repositories := db.NewRepositories(database)
	registry := metrics.New()
	auth := services.NewAuthServiceWithCost(repositories.Users, bcrypt.MinCost)
	handler, err := NewHandler(Dependencies{
		Auth:       auth,
		Login:      services.NewLoginService(auth, notifier),
		Prediction: services.NewPredictionService(fixture.model, fixture.accuracy, registry),
		Feedback:   services.NewFeedbackService(repositories.Feedback),
		Table:      fixture.table,
		Analysis:   dataset.Analyze(fixture.table),
		Metrics:    registry,
		I18n:       i18nManager,
	}, testSecretKey, filepath.Join(internalDir(), "templates"), false)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return &testApp{app: app, database: database, notifier: notifier, metrics: registry}
}
