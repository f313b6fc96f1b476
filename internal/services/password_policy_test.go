package services

import (
	"errors"
	"strings"
	"testing"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     error
	}{
		{name: "short password allowed", password: "pw123", want: nil},
		{name: "exactly 72 bytes", password: strings.Repeat("x", MaxPasswordBytes), want: nil},
		{name: "empty", password: "", want: ErrPasswordRequired},
		{name: "73 bytes", password: strings.Repeat("x", MaxPasswordBytes+1), want: ErrPasswordTooLong},
		{name: "multibyte over limit", password: strings.Repeat("é", 37), want: ErrPasswordTooLong},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := ValidatePassword(testCase.password)
			if testCase.want == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if !errors.Is(err, testCase.want) {
				t.Fatalf("expected %v, got %v", testCase.want, err)
			}
		})
	}
}
