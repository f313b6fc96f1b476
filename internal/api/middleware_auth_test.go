package api

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/cardiocheck/internal/models"
)

func TestProtectedRoutesWithoutSession(t *testing.T) {
	env := newTestApp(t)

	pagePaths := []string{"/", "/home", "/predict", "/eda", "/history", "/feedback"}
	for _, path := range pagePaths {
		response := env.do(t, getRequest(path, ""))
		if response.StatusCode != http.StatusSeeOther {
			t.Fatalf("%s: expected status 303, got %d", path, response.StatusCode)
		}
		if location := response.Header.Get("Location"); location != "/login" {
			t.Fatalf("%s: expected redirect to /login, got %q", path, location)
		}
	}

	apiPaths := []string{"/api/eda", "/api/history", "/api/model", "/api/feedback", "/api/history/export"}
	for _, path := range apiPaths {
		response := env.do(t, getRequest(path, ""))
		if response.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s: expected status 401, got %d", path, response.StatusCode)
		}
		if got := readAPIError(t, response.Body); got != "unauthorized" {
			t.Fatalf("%s: expected unauthorized error, got %q", path, got)
		}
	}

	predict := env.do(t, jsonRequest(http.MethodPost, "/api/predict", `{}`, ""))
	if predict.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected predict without session to return 401, got %d", predict.StatusCode)
	}
}

func TestSessionTokenValidation(t *testing.T) {
	env := newTestApp(t)
	user := models.User{ID: 7, Username: "alice", Email: "a@x.io"}

	handler := &Handler{secretKey: []byte(testSecretKey)}
	valid, _, err := handler.buildToken(user, time.Now())
	if err != nil {
		t.Fatalf("build token: %v", err)
	}
	expired, _, err := handler.buildToken(user, time.Now().Add(-2*sessionTTL))
	if err != nil {
		t.Fatalf("build expired token: %v", err)
	}
	foreign, _, err := (&Handler{secretKey: []byte("another-secret-another-secret-xx")}).buildToken(user, time.Now())
	if err != nil {
		t.Fatalf("build foreign token: %v", err)
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, sessionClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("build unsigned token: %v", err)
	}

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{name: "valid", token: valid, want: http.StatusOK},
		{name: "expired", token: expired, want: http.StatusUnauthorized},
		{name: "wrong secret", token: foreign, want: http.StatusUnauthorized},
		{name: "alg none", token: unsigned, want: http.StatusUnauthorized},
		{name: "garbage", token: "not-a-jwt", want: http.StatusUnauthorized},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			response := env.do(t, getRequest("/api/model", authCookieName+"="+test.token))
			if response.StatusCode != test.want {
				t.Fatalf("expected status %d, got %d", test.want, response.StatusCode)
			}
		})
	}
}

func TestParseSessionTokenCarriesIdentity(t *testing.T) {
	handler := &Handler{secretKey: []byte(testSecretKey)}
	now := time.Now()
	token, expiresAt, err := handler.buildToken(models.User{ID: 3, Username: "bob", Email: "b@x.io"}, now)
	if err != nil {
		t.Fatalf("build token: %v", err)
	}

	session, err := handler.parseSessionToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if session.UserID != 3 || session.Username != "bob" || session.Email != "b@x.io" {
		t.Fatalf("unexpected session %+v", session)
	}
	if !session.ExpiresAt.Equal(expiresAt.Truncate(time.Second)) {
		t.Fatalf("expected expiry %v, got %v", expiresAt.Truncate(time.Second), session.ExpiresAt)
	}

	other, _, err := handler.buildToken(models.User{ID: 3, Username: "bob", Email: "b@x.io"}, now)
	if err != nil {
		t.Fatalf("build second token: %v", err)
	}
	if other == token {
		t.Fatal("expected every token to carry a unique id")
	}
}

func TestConcurrentSessionsStayIndependent(t *testing.T) {
	env := newTestApp(t)
	alice := env.registerAndLogin(t, "alice")
	bob := env.registerAndLogin(t, "bob")

	for cookie, username := range map[string]string{alice: "alice", bob: "bob"} {
		response := env.do(t, getRequest("/feedback", cookie))
		if response.StatusCode != http.StatusOK {
			t.Fatalf("expected status 200 for %s, got %d", username, response.StatusCode)
		}
		if body := readBody(t, response.Body); !strings.Contains(body, "<span>"+username+"</span>") {
			t.Fatalf("expected page to render for %s", username)
		}
	}
}

func TestLanguageMiddlewareUsesAcceptLanguage(t *testing.T) {
	env := newTestApp(t)

	request := getRequest("/login", "")
	request.Header.Set("Accept-Language", "es-ES,es;q=0.9")
	response := env.do(t, request)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	if body := readBody(t, response.Body); !strings.Contains(body, "Iniciar sesión") {
		t.Fatal("expected spanish login page")
	}
	if value := responseCookieValue(response.Cookies(), languageCookieName); value != "es" {
		t.Fatalf("expected language cookie es, got %q", value)
	}
}

func TestSetLanguageRejectsOpenRedirect(t *testing.T) {
	env := newTestApp(t)

	response := env.do(t, getRequest("/lang/es?next=//evil.example", ""))
	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", response.StatusCode)
	}
	if location := response.Header.Get("Location"); location != "/" {
		t.Fatalf("expected fallback redirect, got %q", location)
	}
}

func TestLanguageQueryOverridesCookie(t *testing.T) {
	env := newTestApp(t)

	request := getRequest("/login?lang=es", languageCookieName+"=en")
	request.Header.Set("Accept-Language", "en-US")
	response := env.do(t, request)
	if body := readBody(t, response.Body); !strings.Contains(body, "Iniciar sesión") {
		t.Fatal("expected query language to win over the cookie")
	}
	if value := responseCookieValue(response.Cookies(), languageCookieName); value != "es" {
		t.Fatalf("expected language cookie es, got %q", value)
	}

	unknown := env.do(t, getRequest("/login?lang=xx", ""))
	if body := readBody(t, unknown.Body); strings.Contains(body, "Iniciar sesión") {
		t.Fatal("expected unknown language to fall back to the default")
	}
}
