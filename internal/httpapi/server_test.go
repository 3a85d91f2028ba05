package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/origen-app/origen-server/gen/ent"
	"github.com/origen-app/origen-server/internal/auth"
	"github.com/origen-app/origen-server/internal/common"
	"github.com/origen-app/origen-server/internal/entity"
	"github.com/origen-app/origen-server/internal/export"
	"github.com/origen-app/origen-server/internal/receipts"
	"github.com/origen-app/origen-server/internal/repository"
	"github.com/origen-app/origen-server/internal/storage"
	"github.com/origen-app/origen-server/internal/users"
)

type memUserRepo struct {
	byEmail map[string]*ent.User
}

func (m *memUserRepo) Create(_ context.Context, name, email, hash string) (*ent.User, error) {
	if _, ok := m.byEmail[email]; ok {
		return nil, common.ConflictError("User with this email already exists")
	}
	u := &ent.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	m.byEmail[email] = u
	return u, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*ent.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, common.NotFoundError("user")
	}
	return u, nil
}

func (m *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (*ent.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.NotFoundError("user")
}

type memReceiptRepo struct {
	receipts map[uuid.UUID]*entity.Receipt
}

func (m *memReceiptRepo) Create(_ context.Context, params *repository.CreateReceiptParams) (*entity.Receipt, error) {
	rec := &entity.Receipt{
		ID:         uuid.New(),
		UserID:     params.UserID,
		SourceType: string(params.SourceType),
		Merchant:   params.Merchant,
		Items:      []*entity.LineItem{},
	}
	for _, it := range params.Items {
		rec.Items = append(rec.Items, &entity.LineItem{
			ID: uuid.New(), ReceiptID: rec.ID,
			Description: it.Description, Quantity: it.Quantity,
			UnitPrice: it.UnitPrice, Total: it.Total,
		})
	}
	m.receipts[rec.ID] = rec
	return rec, nil
}

func (m *memReceiptRepo) Get(_ context.Context, id, userID uuid.UUID) (*entity.Receipt, error) {
	rec, ok := m.receipts[id]
	if !ok || rec.UserID != userID {
		return nil, common.NotFoundError("receipt")
	}
	return rec, nil
}

func (m *memReceiptRepo) Update(_ context.Context, id, userID uuid.UUID, params *repository.UpdateReceiptParams) (*entity.Receipt, error) {
	rec, ok := m.receipts[id]
	if !ok || rec.UserID != userID {
		return nil, common.NotFoundError("receipt")
	}
	if params.Merchant != nil {
		rec.Merchant = params.Merchant
	}
	return rec, nil
}

func (m *memReceiptRepo) List(_ context.Context, userID uuid.UUID, _ *repository.ListReceiptsParams) ([]*entity.Receipt, int, error) {
	var out []*entity.Receipt
	for _, rec := range m.receipts {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, len(out), nil
}

func newTestAPI(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	authSvc := auth.NewService(common.AuthConfig{
		JWTSecret:  "test-secret",
		TokenTTL:   time.Hour,
		BcryptCost: 4,
	})
	store, err := storage.NewStore(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	userRepo := &memUserRepo{byEmail: map[string]*ent.User{}}
	receiptRepo := &memReceiptRepo{receipts: map[uuid.UUID]*entity.Receipt{}}

	srv := NewServer(
		users.NewService(userRepo, authSvc, logger),
		receipts.NewService(receiptRepo, store, logger),
		export.NewService(receiptRepo, logger),
		authSvc,
		logger,
		Options{},
	)
	return srv.Handler()
}

func doJSON(t *testing.T, h http.Handler, method, path, token, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var env envelope
	if rr.Body.Len() > 0 {
		if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s %s response: %v (%s)", method, path, err, rr.Body.String())
		}
	}
	return rr, env
}

func signup(t *testing.T, h http.Handler, email string) string {
	t.Helper()
	body := `{"name":"Ada","email":"` + email + `","password":"hunter2hunter2"}`
	rr, env := doJSON(t, h, http.MethodPost, "/auth/signup", "", body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("signup status = %d (%s)", rr.Code, rr.Body.String())
	}
	data, _ := env.Data.(map[string]any)
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatalf("signup returned no token: %s", rr.Body.String())
	}
	return token
}

func TestHealth(t *testing.T) {
	h := newTestAPI(t)
	rr, env := doJSON(t, h, http.MethodGet, "/health", "", "")
	if rr.Code != http.StatusOK || !env.Success {
		t.Fatalf("status = %d, success = %v", rr.Code, env.Success)
	}
}

func TestReceiptsRequireToken(t *testing.T) {
	h := newTestAPI(t)
	rr, env := doJSON(t, h, http.MethodGet, "/receipts/", "", "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
	if env.Success || env.Error == nil || env.Error.Code != "UNAUTHORIZED" {
		t.Errorf("envelope = %+v", env)
	}

	rr, _ = doJSON(t, h, http.MethodGet, "/receipts/", "not-a-token", "")
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("garbage token status = %d, want 401", rr.Code)
	}
}

func TestSignupLoginAndDuplicate(t *testing.T) {
	h := newTestAPI(t)
	signup(t, h, "ada@example.com")

	rr, env := doJSON(t, h, http.MethodPost, "/auth/login", "",
		`{"email":"ada@example.com","password":"hunter2hunter2"}`)
	if rr.Code != http.StatusOK || !env.Success {
		t.Fatalf("login status = %d (%s)", rr.Code, rr.Body.String())
	}

	rr, env = doJSON(t, h, http.MethodPost, "/auth/login", "",
		`{"email":"ada@example.com","password":"wrong-password"}`)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("bad login status = %d, want 401", rr.Code)
	}
	if env.Error == nil || env.Error.Message != "Invalid email or password" {
		t.Errorf("bad login envelope = %+v", env)
	}

	rr, env = doJSON(t, h, http.MethodPost, "/auth/signup", "",
		`{"name":"Ada","email":"ada@example.com","password":"hunter2hunter2"}`)
	if rr.Code != http.StatusConflict {
		t.Errorf("duplicate signup status = %d, want 409", rr.Code)
	}
	if env.Error == nil || env.Error.Code != "CONFLICT" {
		t.Errorf("duplicate signup envelope = %+v", env)
	}
}

func TestManualReceiptLifecycle(t *testing.T) {
	h := newTestAPI(t)
	token := signup(t, h, "crud@example.com")

	create := `{
		"merchant": "Woolworths",
		"purchaseDate": "2024-05-01T00:00:00Z",
		"currency": "ZAR",
		"items": [{"description":"Milk","quantity":2,"unitPrice":10.00,"total":20.00}]
	}`
	rr, env := doJSON(t, h, http.MethodPost, "/receipts/manual", token, create)
	if rr.Code != http.StatusCreated || !env.Success {
		t.Fatalf("create status = %d (%s)", rr.Code, rr.Body.String())
	}
	data := env.Data.(map[string]any)
	id := data["id"].(string)

	rr, env = doJSON(t, h, http.MethodGet, "/receipts/"+id, token, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("get status = %d (%s)", rr.Code, rr.Body.String())
	}

	rr, env = doJSON(t, h, http.MethodPatch, "/receipts/"+id, token, `{"merchant":"Renamed"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("patch status = %d (%s)", rr.Code, rr.Body.String())
	}
	if got := env.Data.(map[string]any)["merchant"]; got != "Renamed" {
		t.Errorf("merchant = %v", got)
	}

	rr, env = doJSON(t, h, http.MethodGet, "/receipts/", token, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("list status = %d (%s)", rr.Code, rr.Body.String())
	}
	page := env.Data.(map[string]any)
	if pg, ok := page["pagination"].(map[string]any); !ok || pg["total"].(float64) != 1 {
		t.Errorf("pagination = %v", page["pagination"])
	}
}

func TestValidationErrorsCarryFieldDetails(t *testing.T) {
	h := newTestAPI(t)
	token := signup(t, h, "valid@example.com")

	rr, env := doJSON(t, h, http.MethodPost, "/receipts/manual", token, `{"merchant":""}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("envelope = %+v", env)
	}
	if len(env.Error.Details) == 0 {
		t.Error("expected field details")
	}
}

func TestUnknownReceiptIDIs404(t *testing.T) {
	h := newTestAPI(t)
	token := signup(t, h, "miss@example.com")

	rr, env := doJSON(t, h, http.MethodGet, "/receipts/"+uuid.NewString(), token, "")
	if rr.Code != http.StatusNotFound || env.Error == nil || env.Error.Code != "NOT_FOUND" {
		t.Errorf("status = %d, envelope = %+v", rr.Code, env)
	}

	// an unparseable id is indistinguishable from a missing one
	rr, _ = doJSON(t, h, http.MethodGet, "/receipts/not-a-uuid", token, "")
	if rr.Code != http.StatusNotFound {
		t.Errorf("bad id status = %d, want 404", rr.Code)
	}
}
