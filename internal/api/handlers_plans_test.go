package api

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/evamaren/daybook/internal/models"
)

func TestPlanLifecycleOverHTTP(t *testing.T) {
	app := newTestApp(t, nil)
	session := registerUser(t, app, "ada@example.com")

	response := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/plans", map[string]any{
		"week_start": "2026-08-16",
		"days": map[string]any{
			"2026-08-17": map[string]any{"breakfast": "meal-a", "snacks": []string{"meal-b"}},
		},
	}, session))
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("create plan: expected 201, got %d", response.StatusCode)
	}
	var created models.WeeklyPlan
	decodeBody(t, response, &created)
	if created.Days["2026-08-17"].Breakfast != "meal-a" {
		t.Fatalf("day assignment lost: %+v", created.Days)
	}

	path := fmt.Sprintf("/api/plans/%s", created.ID)

	response = doRequest(t, app, jsonRequest(t, http.MethodPatch, path, map[string]any{
		"days": map[string]any{
			"2026-08-18": map[string]any{"dinner": "meal-c"},
		},
	}, session))
	if response.StatusCode != http.StatusOK {
		t.Fatalf("update plan: expected 200, got %d", response.StatusCode)
	}
	var updated models.WeeklyPlan
	decodeBody(t, response, &updated)
	if _, stale := updated.Days["2026-08-17"]; stale {
		t.Fatal("expected days to be replaced wholesale")
	}
	if updated.Days["2026-08-18"].Dinner != "meal-c" {
		t.Fatalf("unexpected days after update: %+v", updated.Days)
	}

	request := jsonRequest(t, http.MethodDelete, path, nil, session)
	request.Header.Set("X-Confirm-Delete", "true")
	response = doRequest(t, app, request)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("delete plan: expected 200, got %d", response.StatusCode)
	}

	response = doRequest(t, app, jsonRequest(t, http.MethodGet, path, nil, session))
	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after deletion, got %d", response.StatusCode)
	}
}

func TestPlanRejectsDayOutsideWeek(t *testing.T) {
	app := newTestApp(t, nil)
	session := registerUser(t, app, "ada@example.com")

	response := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/plans", map[string]any{
		"week_start": "2026-08-16",
		"days": map[string]any{
			"2026-08-25": map[string]any{"lunch": "meal-a"},
		},
	}, session))
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", response.StatusCode)
	}
}

func TestCurrentPlanResolvesThisWeek(t *testing.T) {
	app := newTestApp(t, nil)
	session := registerUser(t, app, "ada@example.com")

	response := doRequest(t, app, jsonRequest(t, http.MethodGet, "/api/plans/current", nil, session))
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}
	var before struct {
		WeekStart string            `json:"week_start"`
		Plan      *models.WeeklyPlan `json:"plan"`
	}
	decodeBody(t, response, &before)
	if before.Plan != nil {
		t.Fatalf("expected no plan yet, got %+v", before.Plan)
	}

	weekStart := models.WeekStartOf(time.Now().UTC())
	if before.WeekStart != weekStart {
		t.Fatalf("expected week start %s, got %s", weekStart, before.WeekStart)
	}

	response = doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/plans", map[string]any{
		"week_start": weekStart,
	}, session))
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("create plan: expected 201, got %d", response.StatusCode)
	}

	response = doRequest(t, app, jsonRequest(t, http.MethodGet, "/api/plans/current", nil, session))
	var after struct {
		Plan *models.WeeklyPlan `json:"plan"`
	}
	decodeBody(t, response, &after)
	if after.Plan == nil || after.Plan.WeekStart != weekStart {
		t.Fatalf("expected the current week's plan, got %+v", after.Plan)
	}
}
