package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/plandesk/admin-api/internal/api/dto"
	"github.com/plandesk/admin-api/internal/api/http/handlers"
	"github.com/plandesk/admin-api/internal/auth"
	"github.com/plandesk/admin-api/internal/domain"
	"github.com/plandesk/admin-api/internal/observability"
	"github.com/plandesk/admin-api/internal/repository"
	"github.com/plandesk/admin-api/internal/service"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (s *stubUserRepo) Create(ctx context.Context, user *domain.User) error { return nil }

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubUserRepo) ListByRole(ctx context.Context, role domain.Role, limit, offset int) ([]domain.User, int, error) {
	return nil, 0, nil
}

func (s *stubUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return nil
}

type stubPlanRepo struct {
	plans []domain.Plan
}

func (s *stubPlanRepo) Create(ctx context.Context, plan *domain.Plan) error { return nil }
func (s *stubPlanRepo) Update(ctx context.Context, plan *domain.Plan) error { return nil }

func (s *stubPlanRepo) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	for i := range s.plans {
		if s.plans[i].ID == id {
			return &s.plans[i], nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubPlanRepo) List(ctx context.Context) ([]domain.Plan, error) { return s.plans, nil }
func (s *stubPlanRepo) Delete(ctx context.Context, id string) error     { return nil }

func (s *stubPlanRepo) UpdateSerials(ctx context.Context, serials map[string]int) error {
	return nil
}

type stubActivityRepo struct {
	entries []domain.ActivityLogEntry
}

func (s *stubActivityRepo) Create(ctx context.Context, entry *domain.ActivityLogEntry) error {
	return nil
}

func (s *stubActivityRepo) ListByTicket(ctx context.Context, ticketID string, types []domain.ActivityType, limit, offset int) ([]domain.ActivityLogEntry, error) {
	return s.entries, nil
}

func (s *stubActivityRepo) CountByTicket(ctx context.Context, ticketID string, types []domain.ActivityType) (int, error) {
	return len(s.entries), nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)
var _ repository.PlanRepository = (*stubPlanRepo)(nil)
var _ repository.ActivityRepository = (*stubActivityRepo)(nil)

type testEnv struct {
	app        *fiber.App
	adminToken string
	agentToken string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	admin := &domain.User{ID: "u-admin", Name: "Avery", Email: "avery@example.com", Role: domain.RoleAdmin, Active: true}
	agent := &domain.User{ID: "u-agent", Name: "Dana", Email: "dana@example.com", Role: domain.RoleSupportAgent, Active: true}
	users := &stubUserRepo{users: map[string]*domain.User{admin.ID: admin, agent.ID: agent}}

	plans := &stubPlanRepo{plans: []domain.Plan{
		{ID: "p1", Name: "Starter", Slug: "starter", IsActive: true, Serial: 0},
		{ID: "p2", Name: "Growth", Slug: "growth", IsActive: true, Serial: 1},
	}}
	activityRepo := &stubActivityRepo{entries: []domain.ActivityLogEntry{
		{ID: "a-1", TicketID: "t-1", Type: domain.ActivityCreated, PerformedByName: "Dana"},
	}}

	tokens := auth.NewTokenManager("router-test-secret", 30)
	adminToken, _, err := tokens.GenerateToken(admin.ID, admin.Role)
	if err != nil {
		t.Fatalf("admin token: %v", err)
	}
	agentToken, _, err := tokens.GenerateToken(agent.ID, agent.Role)
	if err != nil {
		t.Fatalf("agent token: %v", err)
	}

	resolver := dto.AttachmentResolver{BaseURL: "http://localhost:8080"}

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("test", "dev", nil, nil),
		Users:          handlers.NewUsersHandler(nil),
		Tickets:        handlers.NewTicketsHandler(service.NewTicketService(service.TicketDependencies{}), resolver),
		Transfers:      handlers.NewTransfersHandler(service.NewTransferService(service.TransferDependencies{})),
		Activity:       handlers.NewActivityHandler(service.NewActivityService(activityRepo)),
		Comments:       handlers.NewCommentsHandler(service.NewCommentService(service.CommentDependencies{})),
		Plans:          handlers.NewPlansHandler(service.NewPlanService(plans, nil, nil)),
		Categories:     handlers.NewCategoriesHandler(service.NewCategoryService(nil)),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, users),
	})

	return &testEnv{app: app, adminToken: adminToken, agentToken: agentToken}
}

func (e *testEnv) do(t *testing.T, method, path, token, body string) (*http.Response, map[string]any) {
	t.Helper()
	var reqBody io.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reqBody)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	payload := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			t.Fatalf("decode body %q: %v", raw, err)
		}
	}
	return resp, payload
}

func errorCode(t *testing.T, payload map[string]any) string {
	t.Helper()
	errObj, ok := payload["error"].(map[string]any)
	if !ok {
		t.Fatalf("no error envelope in %v", payload)
	}
	code, _ := errObj["code"].(string)
	return code
}

func TestHealthLive(t *testing.T) {
	env := newTestEnv(t)
	resp, payload := env.do(t, http.MethodGet, "/health/live", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if payload["service"] != "test" {
		t.Errorf("service = %v, want test", payload["service"])
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)
	resp, payload := env.do(t, http.MethodGet, "/admin/plans", "", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if code := errorCode(t, payload); code != "UNAUTHORIZED" {
		t.Errorf("code = %s, want UNAUTHORIZED", code)
	}
}

func TestPlanRoutesRequireAdminRole(t *testing.T) {
	env := newTestEnv(t)
	resp, payload := env.do(t, http.MethodGet, "/admin/plans", env.agentToken, "")
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
	if code := errorCode(t, payload); code != "FORBIDDEN" {
		t.Errorf("code = %s, want FORBIDDEN", code)
	}
}

func TestListPlansAsAdmin(t *testing.T) {
	env := newTestEnv(t)
	resp, payload := env.do(t, http.MethodGet, "/admin/plans", env.adminToken, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	data, ok := payload["data"].([]any)
	if !ok {
		t.Fatalf("data = %v, want an array", payload["data"])
	}
	if len(data) != 2 {
		t.Errorf("plans = %d, want 2", len(data))
	}
}

func TestReorderPlansRejectsIncompleteOrder(t *testing.T) {
	env := newTestEnv(t)
	resp, payload := env.do(t, http.MethodPut, "/admin/plans/order", env.adminToken, `{"orderedIds":["p1"]}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if code := errorCode(t, payload); code != "VALIDATION_FAILED" {
		t.Errorf("code = %s, want VALIDATION_FAILED", code)
	}
}

func TestReorderPlansPersistsNewOrder(t *testing.T) {
	env := newTestEnv(t)
	resp, payload := env.do(t, http.MethodPut, "/admin/plans/order", env.adminToken, `{"orderedIds":["p2","p1"]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if _, ok := payload["data"].([]any); !ok {
		t.Fatalf("data = %v, want an array", payload["data"])
	}
}

func TestTicketActivityPage(t *testing.T) {
	env := newTestEnv(t)
	resp, payload := env.do(t, http.MethodGet, "/admin/tickets/t-1/activity?page=1&limit=10", env.agentToken, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	data, ok := payload["data"].(map[string]any)
	if !ok {
		t.Fatalf("data = %v, want an object", payload["data"])
	}
	items, ok := data["items"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("items = %v, want one entry", data["items"])
	}
	entry := items[0].(map[string]any)
	if entry["message"] != "Dana created the ticket" {
		t.Errorf("message = %v", entry["message"])
	}
	if data["totalPages"].(float64) != 1 {
		t.Errorf("totalPages = %v, want 1", data["totalPages"])
	}
}
