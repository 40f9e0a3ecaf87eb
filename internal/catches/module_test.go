package catches

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"samakicash_backend/internal/catches/repository"
	apphttp "samakicash_backend/internal/http"
	"samakicash_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const testSecret = "test-secret"

type stubJWTConfig struct{}

func (stubJWTConfig) GetJWTAccessSecret() string { return testSecret }

type fakeStore struct {
	catches []repository.Catch
}

func (f *fakeStore) ListByUser(_ context.Context, _ string) ([]repository.Catch, error) {
	return f.catches, nil
}

func (f *fakeStore) CountByUser(_ context.Context, _ string) (int, error) {
	return len(f.catches), nil
}

func newCatchesEngine(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	v1 := engine.Group("/api/v1")
	protected := v1.Group("")
	protected.Use(httpkit.AuthRequired(stubJWTConfig{}))

	NewModule(store).RegisterRoutes(&apphttp.RouterContext{
		Engine:    engine,
		V1:        v1,
		Protected: protected,
		Config:    stubJWTConfig{},
	})

	return engine
}

func signToken(t *testing.T, userID uuid.UUID, userType string) string {
	t.Helper()

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":       userID.String(),
		"user_type": userType,
		"exp":       now.Add(time.Hour).Unix(),
		"iat":       now.Unix(),
	})

	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func doGet(engine *gin.Engine, path, token string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	engine.ServeHTTP(rec, req)
	return rec
}

func TestCatchHistoryRequiresToken(t *testing.T) {
	engine := newCatchesEngine(&fakeStore{})

	rec := doGet(engine, "/api/v1/users/"+uuid.NewString()+"/catches", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestCatchHistoryRejectsBuyers(t *testing.T) {
	engine := newCatchesEngine(&fakeStore{})
	userID := uuid.New()

	rec := doGet(engine, "/api/v1/users/"+userID.String()+"/catches", signToken(t, userID, "buyer"))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestCatchHistoryRejectsOtherUsers(t *testing.T) {
	engine := newCatchesEngine(&fakeStore{})

	rec := doGet(engine, "/api/v1/users/"+uuid.NewString()+"/stats", signToken(t, uuid.New(), "fisher"))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestCatchHistoryForOwner(t *testing.T) {
	store := &fakeStore{catches: []repository.Catch{
		{ID: uuid.New(), FishType: "tilapia", QuantityKg: 10, Location: "Mwanza"},
	}}
	engine := newCatchesEngine(store)
	userID := uuid.New()

	rec := doGet(engine, "/api/v1/users/"+userID.String()+"/catches", signToken(t, userID, "fisher"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var body struct {
		UserID string `json:"user_id"`
		Count  int    `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.UserID != userID.String() || body.Count != 1 {
		t.Fatalf("body = %+v", body)
	}
}

func TestTransactionsAlwaysEmpty(t *testing.T) {
	engine := newCatchesEngine(&fakeStore{})
	userID := uuid.New()

	rec := doGet(engine, "/api/v1/users/"+userID.String()+"/transactions", signToken(t, userID, "seller"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body struct {
		Count        int   `json:"count"`
		Transactions []any `json:"transactions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Count != 0 || len(body.Transactions) != 0 {
		t.Fatalf("body = %+v", body)
	}
}
