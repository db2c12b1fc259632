package api

import (
	"net/http"
	"testing"
)

func TestRegisterThenMe(t *testing.T) {
	app := newTestApp(t, nil)

	session := registerUser(t, app, "ada@example.com")

	response := doRequest(t, app, jsonRequest(t, http.MethodGet, "/api/auth/me", nil, session))
	if response.StatusCode != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", response.StatusCode)
	}
	var me struct {
		Email string `json:"email"`
	}
	decodeBody(t, response, &me)
	if me.Email != "ada@example.com" {
		t.Fatalf("unexpected email %q", me.Email)
	}
}

func TestRegisterNormalizesEmail(t *testing.T) {
	app := newTestApp(t, nil)

	response := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "  Ada@Example.com ",
		"password": "correct horse battery",
	}))
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", response.StatusCode)
	}
	var created struct {
		Email string `json:"email"`
	}
	decodeBody(t, response, &created)
	if created.Email != "ada@example.com" {
		t.Fatalf("expected a normalized email, got %q", created.Email)
	}
}

func TestRegisterRejectsBadInput(t *testing.T) {
	app := newTestApp(t, nil)

	cases := []struct {
		name     string
		email    string
		password string
		want     int
	}{
		{"missing email", "", "correct horse battery", http.StatusBadRequest},
		{"malformed email", "not-an-email", "correct horse battery", http.StatusBadRequest},
		{"short password", "ada@example.com", "short", http.StatusBadRequest},
	}
	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			response := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/auth/register", map[string]any{
				"email":    testCase.email,
				"password": testCase.password,
			}))
			if response.StatusCode != testCase.want {
				t.Fatalf("expected %d, got %d", testCase.want, response.StatusCode)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := newTestApp(t, nil)
	registerUser(t, app, "ada@example.com")

	response := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "ADA@example.com",
		"password": "correct horse battery",
	}))
	if response.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for a duplicate email, got %d", response.StatusCode)
	}
}

func TestLoginFlow(t *testing.T) {
	app := newTestApp(t, nil)
	registerUser(t, app, "ada@example.com")

	response := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "Ada@Example.com",
		"password": "correct horse battery",
	}))
	if response.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", response.StatusCode)
	}

	var sessionSet bool
	for _, cookie := range response.Cookies() {
		if cookie.Name == authCookieName && cookie.Value != "" {
			sessionSet = true
		}
	}
	if !sessionSet {
		t.Fatal("login did not set an auth cookie")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	app := newTestApp(t, nil)
	registerUser(t, app, "ada@example.com")

	response := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "ada@example.com",
		"password": "wrong password!",
	}))
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", response.StatusCode)
	}
}

func TestLoginUnknownAccountLooksLikeWrongPassword(t *testing.T) {
	app := newTestApp(t, nil)

	response := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "nobody@example.com",
		"password": "correct horse battery",
	}))
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", response.StatusCode)
	}
}

func TestLoginLocksOutAfterRepeatedFailures(t *testing.T) {
	app := newTestApp(t, nil)
	registerUser(t, app, "ada@example.com")

	for attempt := 0; attempt < loginRateLimit; attempt++ {
		response := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]any{
			"email":    "ada@example.com",
			"password": "wrong password!",
		}))
		if response.StatusCode != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", attempt, response.StatusCode)
		}
	}

	response := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "ada@example.com",
		"password": "correct horse battery",
	}))
	if response.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after repeated failures, got %d", response.StatusCode)
	}
}

func TestLoginSuccessResetsFailureCount(t *testing.T) {
	app := newTestApp(t, nil)
	registerUser(t, app, "ada@example.com")

	for attempt := 0; attempt < loginRateLimit-1; attempt++ {
		doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]any{
			"email":    "ada@example.com",
			"password": "wrong password!",
		}))
	}

	response := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "ada@example.com",
		"password": "correct horse battery",
	}))
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected the correct password accepted, got %d", response.StatusCode)
	}

	for attempt := 0; attempt < 2; attempt++ {
		response := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]any{
			"email":    "ada@example.com",
			"password": "wrong password!",
		}))
		if response.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected the counter reset after success, got %d", response.StatusCode)
		}
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	app := newTestApp(t, nil)
	session := registerUser(t, app, "ada@example.com")

	response := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/auth/logout", nil, session))
	if response.StatusCode != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", response.StatusCode)
	}

	var cleared bool
	for _, cookie := range response.Cookies() {
		if cookie.Name == authCookieName && cookie.Value == "" {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("logout did not clear the auth cookie")
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	app := newTestApp(t, nil)

	for _, path := range []string{"/api/auth/me", "/api/journal", "/api/meals", "/api/plans"} {
		response := doRequest(t, app, jsonRequest(t, http.MethodGet, path, nil))
		if response.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, response.StatusCode)
		}
	}
}

func TestGarbageTokenIsRejected(t *testing.T) {
	app := newTestApp(t, nil)

	request := jsonRequest(t, http.MethodGet, "/api/auth/me", nil)
	request.AddCookie(&http.Cookie{Name: authCookieName, Value: "not-a-jwt"})
	response := doRequest(t, app, request)
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", response.StatusCode)
	}
}
