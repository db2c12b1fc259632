package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/evamaren/daybook/internal/assistant"
	"github.com/evamaren/daybook/internal/db"
	"github.com/evamaren/daybook/internal/store"
	"github.com/gofiber/fiber/v2"
)

type stubGenerator struct {
	reply   string
	fail    error
	prompts []string
}

func (stub *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	stub.prompts = append(stub.prompts, prompt)
	if stub.fail != nil {
		return "", stub.fail
	}
	return stub.reply, nil
}

func newTestApp(t *testing.T, generator assistant.Generator) *fiber.App {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	cache, err := store.OpenCache(t.TempDir())
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}

	handler, err := NewHandler(HandlerConfig{
		Database:  database,
		SecretKey: "test-secret-key",
		Location:  time.UTC,
		Cache:     cache,
		Generator: generator,
	})
	if err != nil {
		t.Fatalf("build handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app
}

func jsonRequest(t *testing.T, method string, path string, body any, cookies ...*http.Cookie) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		request.AddCookie(cookie)
	}
	return request
}

func doRequest(t *testing.T, app *fiber.App, request *http.Request) *http.Response {
	t.Helper()

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("perform request: %v", err)
	}
	return response
}

func decodeBody(t *testing.T, response *http.Response, target any) {
	t.Helper()

	defer response.Body.Close()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func registerUser(t *testing.T, app *fiber.App, email string) *http.Cookie {
	t.Helper()

	response := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/auth/register", fiber.Map{
		"email":    email,
		"password": "correct horse battery",
	}))
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d", email, response.StatusCode)
	}

	for _, cookie := range response.Cookies() {
		if cookie.Name == authCookieName && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatalf("register %s: no auth cookie set", email)
	return nil
}

func createEntry(t *testing.T, app *fiber.App, session *http.Cookie, date string, content string) string {
	t.Helper()

	response := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/journal", fiber.Map{
		"date":    date,
		"content": content,
	}, session))
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("create entry: expected 201, got %d", response.StatusCode)
	}

	var created struct {
		ID string `json:"id"`
	}
	decodeBody(t, response, &created)
	if created.ID == "" {
		t.Fatal("create entry: empty id")
	}
	return created.ID
}

func entryPath(id string) string {
	return fmt.Sprintf("/api/journal/%s", id)
}
