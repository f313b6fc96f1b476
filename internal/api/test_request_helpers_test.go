package api

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func (env *testApp) do(t *testing.T, request *http.Request) *http.Response {
	t.Helper()

	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", request.Method, request.URL.Path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func formRequest(method string, path string, form url.Values, cookie string) *http.Request {
	request := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}
	return request
}

func jsonRequest(method string, path string, body string, cookie string) *http.Request {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}
	return request
}

func getRequest(path string, cookie string) *http.Request {
	request := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}
	return request
}

func (env *testApp) register(t *testing.T, username string, password string, email string) {
	t.Helper()

	response := env.do(t, formRequest(http.MethodPost, "/api/auth/register", url.Values{
		"username": {username},
		"password": {password},
		"email":    {email},
	}, ""))
	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected register status 303, got %d", response.StatusCode)
	}
	if location := response.Header.Get("Location"); location != "/login" {
		t.Fatalf("expected register redirect to /login, got %q", location)
	}
}

// loginCookie logs in through the form endpoint and returns a Cookie header value.
func (env *testApp) loginCookie(t *testing.T, username string, password string) string {
	t.Helper()

	response := env.do(t, formRequest(http.MethodPost, "/api/auth/login", url.Values{
		"username": {username},
		"password": {password},
	}, ""))
	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected login status 303, got %d", response.StatusCode)
	}

	value := responseCookieValue(response.Cookies(), authCookieName)
	if value == "" {
		t.Fatal("auth cookie is missing in login response")
	}
	return authCookieName + "=" + value
}

func (env *testApp) registerAndLogin(t *testing.T, username string) string {
	t.Helper()
	env.register(t, username, "pw123", username+"@example.com")
	return env.loginCookie(t, username, "pw123")
}

func responseCookieValue(cookies []*http.Cookie, name string) string {
	if cookie := responseCookie(cookies, name); cookie != nil {
		return cookie.Value
	}
	return ""
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func decodeFlashPayload(t *testing.T, raw string) FlashPayload {
	t.Helper()

	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		t.Fatalf("decode flash payload: %v", err)
	}
	payload := FlashPayload{}
	if err := json.Unmarshal(decoded, &payload); err != nil {
		t.Fatalf("unmarshal flash payload: %v", err)
	}
	return payload
}

func readBody(t *testing.T, body io.Reader) string {
	t.Helper()

	bytes, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return string(bytes)
}

func readJSON(t *testing.T, body io.Reader, target any) {
	t.Helper()

	if err := json.NewDecoder(body).Decode(target); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func readAPIError(t *testing.T, body io.Reader) string {
	t.Helper()

	payload := map[string]any{}
	readJSON(t, body, &payload)
	message, _ := payload["error"].(string)
	return message
}
