package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/terraincognita07/cardiocheck/internal/db"
	"github.com/terraincognita07/cardiocheck/internal/security"
	"github.com/terraincognita07/cardiocheck/internal/services"
)

const temporaryPasswordLength = 12

// RunResetPasswordCommand replaces the password of username with a random
// temporary one and prints it to out.
func RunResetPasswordCommand(dbPath string, username string, out io.Writer) error {
	temporaryPassword, err := security.TemporaryPassword(temporaryPasswordLength)
	if err != nil {
		return fmt.Errorf("generate temporary password: %w", err)
	}
	if err := setPassword(dbPath, username, temporaryPassword); err != nil {
		return err
	}

	fmt.Fprintln(out, "Password reset successful")
	fmt.Fprintf(out, "Temporary password: %s\n", temporaryPassword)
	return nil
}

// RunSetPasswordCommand prompts for a new password twice and stores it for username.
func RunSetPasswordCommand(dbPath string, username string, stdin *os.File, out io.Writer) error {
	password, err := promptNewPassword(stdin, out)
	if err != nil {
		return err
	}
	if err := setPassword(dbPath, username, password); err != nil {
		return err
	}
	fmt.Fprintln(out, "Password updated")
	return nil
}

func setPassword(dbPath string, username string, password string) error {
	if strings.TrimSpace(username) == "" {
		return errors.New("username is required")
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer func() {
		_ = db.Close(database)
	}()

	auth := services.NewAuthService(db.NewRepositories(database).Users)
	if err := auth.SetPassword(username, password); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return fmt.Errorf("user %s not found", services.NormalizeUsername(username))
		}
		return err
	}
	return nil
}

func promptNewPassword(stdin *os.File, out io.Writer) (string, error) {
	lines := bufio.NewReader(stdin)
	fmt.Fprint(out, "New password: ")
	first, err := readPassword(stdin, lines)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	fmt.Fprint(out, "Repeat password: ")
	second, err := readPassword(stdin, lines)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if first != second {
		return "", errors.New("passwords do not match")
	}
	if err := services.ValidatePassword(first); err != nil {
		return "", err
	}
	return first, nil
}

// readPassword hides the typed line when stdin is a terminal. Pipes are read as is.
func readPassword(stdin *os.File, lines *bufio.Reader) (string, error) {
	if restore, err := disableEcho(stdin); err == nil {
		defer restore()
	}
	line, err := lines.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
