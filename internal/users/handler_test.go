package users_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/chaudhari-piyush/talentlens/internal/bootstrap"
	"github.com/chaudhari-piyush/talentlens/internal/shared/auth"
	"github.com/chaudhari-piyush/talentlens/internal/shared/config"
	"github.com/chaudhari-piyush/talentlens/internal/users"
)

func buildApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LocalStoreDir:   t.TempDir(),
		Env:             "dev",
		ObjectStoreType: "local",
	}
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app
}

func bearer(t *testing.T, sub string) string {
	t.Helper()
	token, err := auth.SignJWT(auth.Claims{Sub: sub, Email: "recruiter@example.com", Name: "Test Recruiter"})
	if err != nil {
		t.Fatalf("sign jwt: %v", err)
	}
	return "Bearer " + token
}

func TestMeReturnsStoredUser(t *testing.T) {
	app := buildApp(t)

	err := app.UsersService.UpsertFromAuth(context.Background(), users.User{
		ID:       "google:sub-1",
		Email:    "recruiter@example.com",
		FullName: "Test Recruiter",
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", bearer(t, "google:sub-1"))
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var me struct {
		ID       string `json:"id"`
		Email    string `json:"email"`
		FullName string `json:"fullName"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&me); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if me.ID != "google:sub-1" || me.Email != "recruiter@example.com" {
		t.Fatalf("unexpected identity %+v", me)
	}
}

func TestAcceptTermsIsOneShot(t *testing.T) {
	app := buildApp(t)

	err := app.UsersService.UpsertFromAuth(context.Background(), users.User{
		ID:    "google:sub-1",
		Email: "recruiter@example.com",
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/me/accept-terms", nil)
	req.Header.Set("Authorization", bearer(t, "google:sub-1"))
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var accepted struct {
		TermsAccepted   bool   `json:"termsAccepted"`
		TermsAcceptedAt string `json:"termsAcceptedAt"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&accepted); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !accepted.TermsAccepted || accepted.TermsAcceptedAt == "" {
		t.Fatalf("expected acceptance recorded, got %+v", accepted)
	}

	// A second acceptance is rejected.
	reqAgain := httptest.NewRequest(http.MethodPost, "/api/v1/me/accept-terms", nil)
	reqAgain.Header.Set("Authorization", bearer(t, "google:sub-1"))
	respAgain := httptest.NewRecorder()
	app.Router.ServeHTTP(respAgain, reqAgain)

	if respAgain.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on repeat acceptance, got %d", respAgain.Code)
	}

	// Re-login must not reset the flag.
	err = app.UsersService.UpsertFromAuth(context.Background(), users.User{
		ID:    "google:sub-1",
		Email: "recruiter@example.com",
	})
	if err != nil {
		t.Fatalf("re-upsert: %v", err)
	}
	reqMe := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	reqMe.Header.Set("Authorization", bearer(t, "google:sub-1"))
	respMe := httptest.NewRecorder()
	app.Router.ServeHTTP(respMe, reqMe)

	if respMe.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", respMe.Code)
	}
	var me struct {
		TermsAccepted bool `json:"termsAccepted"`
	}
	if err := json.NewDecoder(respMe.Body).Decode(&me); err != nil {
		t.Fatalf("decode me response: %v", err)
	}
	if !me.TermsAccepted {
		t.Fatalf("expected terms acceptance to survive re-login")
	}
}

func TestMeUnknownUserIs404(t *testing.T) {
	app := buildApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", bearer(t, "google:never-signed-in"))
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
