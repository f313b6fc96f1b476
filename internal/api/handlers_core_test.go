package api

import (
	"net/http"
	"strings"
	"testing"

	dto "github.com/prometheus/client_model/go"
)

func TestHealthReportsRecords(t *testing.T) {
	env := newTestApp(t)

	response := env.do(t, getRequest("/healthz", ""))
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	payload := struct {
		Status  string `json:"status"`
		Records int    `json:"records"`
	}{}
	readJSON(t, response.Body, &payload)
	if payload.Status != "ok" || payload.Records != 48 {
		t.Fatalf("unexpected health payload %+v", payload)
	}
}

func TestNotFoundResponses(t *testing.T) {
	env := newTestApp(t)

	api := env.do(t, getRequest("/api/unknown", ""))
	if api.StatusCode != http.StatusNotFound {
		t.Fatalf("expected api status 404, got %d", api.StatusCode)
	}
	if got := readAPIError(t, api.Body); got != "not found" {
		t.Fatalf("expected not found error, got %q", got)
	}

	anonymous := env.do(t, getRequest("/missing-page", ""))
	if anonymous.StatusCode != http.StatusNotFound {
		t.Fatalf("expected page status 404, got %d", anonymous.StatusCode)
	}
	if body := readBody(t, anonymous.Body); !strings.Contains(body, "Go to login") {
		t.Fatal("expected anonymous not found page to link to login")
	}

	cookie := env.registerAndLogin(t, "alice")
	signedIn := env.do(t, getRequest("/missing-page", cookie))
	if body := readBody(t, signedIn.Body); !strings.Contains(body, "Go to home") {
		t.Fatal("expected signed-in not found page to link home")
	}
}

func TestAuthenticatedPagesRender(t *testing.T) {
	env := newTestApp(t)
	cookie := env.registerAndLogin(t, "alice")

	pages := map[string]string{
		"/":         "Model accuracy",
		"/home":     "Model accuracy",
		"/predict":  "Asymptomatic",
		"/eda":      "Column summary",
		"/history":  "Export CSV",
		"/feedback": "You have not sent any feedback yet.",
	}
	for path, marker := range pages {
		response := env.do(t, getRequest(path, cookie))
		if response.StatusCode != http.StatusOK {
			t.Fatalf("%s: expected status 200, got %d", path, response.StatusCode)
		}
		body := readBody(t, response.Body)
		if !strings.Contains(body, marker) {
			t.Fatalf("%s: expected %q in page", path, marker)
		}
		if !strings.Contains(body, "<span>alice</span>") {
			t.Fatalf("%s: expected username in navigation", path)
		}
	}
}

func counterByLabel(t *testing.T, env *testApp, family string, label string, value string) float64 {
	t.Helper()

	families, err := env.metrics.Registry().Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, candidate := range families {
		if candidate.GetName() != family {
			continue
		}
		for _, metric := range candidate.GetMetric() {
			if labelMatches(metric, label, value) {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func labelMatches(metric *dto.Metric, name string, value string) bool {
	for _, pair := range metric.GetLabel() {
		if pair.GetName() == name && pair.GetValue() == value {
			return true
		}
	}
	return false
}

func TestHandlersRecordMetrics(t *testing.T) {
	env := newTestApp(t)
	cookie := env.registerAndLogin(t, "alice")

	env.do(t, jsonRequest(http.MethodPost, "/api/auth/login", `{"username":"alice","password":"wrong"}`, ""))
	env.do(t, jsonRequest(http.MethodPost, "/api/auth/login", `{"username":`, ""))
	env.do(t, jsonRequest(http.MethodPost, "/api/feedback", `{"feedback":"nice","category":"Suggestions"}`, cookie))
	env.do(t, jsonRequest(http.MethodPost, "/api/predict", positiveVectorJSON, cookie))

	checks := []struct {
		family string
		label  string
		value  string
		want   float64
	}{
		{family: "cardiocheck_registrations_total", label: "outcome", value: "success", want: 1},
		{family: "cardiocheck_logins_total", label: "outcome", value: "success", want: 1},
		{family: "cardiocheck_logins_total", label: "outcome", value: "failure", want: 1},
		{family: "cardiocheck_logins_total", label: "outcome", value: "invalid", want: 1},
		{family: "cardiocheck_login_notifications_total", label: "outcome", value: "success", want: 1},
		{family: "cardiocheck_feedback_total", label: "category", value: "Suggestions", want: 1},
		{family: "cardiocheck_predictions_total", label: "label", value: "positive", want: 1},
	}
	for _, check := range checks {
		if got := counterByLabel(t, env, check.family, check.label, check.value); got != check.want {
			t.Fatalf("%s{%s=%q}: expected %v, got %v", check.family, check.label, check.value, check.want, got)
		}
	}
}
