package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"eduboard/backend/internal/dto"
	"eduboard/backend/internal/service"
	"eduboard/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	registerResult *dto.TokenResponse
	registerErr    error
	loginResult    *dto.TokenResponse
	loginErr       error
	refreshResult  *dto.TokenResponse
	refreshErr     error
	logoutErr      error
	meResult       *dto.UserDetailResponse
	meErr          error
	changePassErr  error
}

func (m *mockAuthService) Register(_ context.Context, _ *dto.RegisterRequest) (*dto.TokenResponse, error) {
	return m.registerResult, m.registerErr
}
func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Refresh(_ context.Context, _ *dto.RefreshRequest) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _, _ string) error {
	return m.logoutErr
}
func (m *mockAuthService) Me(_ context.Context, _ string) (*dto.UserDetailResponse, error) {
	return m.meResult, m.meErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _ string, _ *dto.ChangePasswordRequest) error {
	return m.changePassErr
}

// ── Mock CalendarService ──

type mockCalendarService struct {
	calendarResult *dto.CalendarResponse
	calendarErr    error
	upcomingResult []dto.CalendarEventResponse
	upcomingErr    error
	statsResult    *dto.WeekStatsResponse
	statsErr       error
	createResult   *dto.CalendarEventResponse
	createErr      error
	updateResult   *dto.CalendarEventResponse
	updateErr      error
	deleteErr      error
}

func (m *mockCalendarService) GetCalendar(_ context.Context, _, _ string, _ *dto.CalendarQuery) (*dto.CalendarResponse, error) {
	return m.calendarResult, m.calendarErr
}
func (m *mockCalendarService) GetUpcoming(_ context.Context, _, _ string) ([]dto.CalendarEventResponse, error) {
	return m.upcomingResult, m.upcomingErr
}
func (m *mockCalendarService) GetWeekStats(_ context.Context, _, _ string) (*dto.WeekStatsResponse, error) {
	return m.statsResult, m.statsErr
}
func (m *mockCalendarService) CreateEvent(_ context.Context, _ string, _ *dto.CreateUserEventRequest) (*dto.CalendarEventResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockCalendarService) UpdateEvent(_ context.Context, _, _ string, _ *dto.UpdateUserEventRequest) (*dto.CalendarEventResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockCalendarService) DeleteEvent(_ context.Context, _, _ string) error {
	return m.deleteErr
}

// ── Mock SubmissionService ──

type mockSubmissionService struct {
	submitResult *dto.SubmissionResponse
	submitErr    error
	gradeResult  *dto.SubmissionResponse
	gradeErr     error
	mineResult   []dto.SubmissionResponse
	mineErr      error
	byTaskResult []dto.SubmissionResponse
	byTaskErr    error
}

func (m *mockSubmissionService) Submit(_ context.Context, _ string, _ *dto.SubmitTaskRequest) (*dto.SubmissionResponse, error) {
	return m.submitResult, m.submitErr
}
func (m *mockSubmissionService) Grade(_ context.Context, _, _ string, _ *dto.GradeSubmissionRequest) (*dto.SubmissionResponse, error) {
	return m.gradeResult, m.gradeErr
}
func (m *mockSubmissionService) Get(_ context.Context, _ string) (*dto.SubmissionResponse, error) {
	return nil, nil
}
func (m *mockSubmissionService) ListMine(_ context.Context, _, _ string) ([]dto.SubmissionResponse, error) {
	return m.mineResult, m.mineErr
}
func (m *mockSubmissionService) ListByTask(_ context.Context, _, _ string) ([]dto.SubmissionResponse, error) {
	return m.byTaskResult, m.byTaskErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// fakeAuth 模拟 JWT 中间件注入的上下文
func fakeAuth(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 10007 {
		t.Errorf("expected error code 10007, got %d", resp.Code)
	}
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{registerErr: service.ErrEmailTaken})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/register", jsonBody(dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "password123",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// CalendarHandler Tests
// ═══════════════════════════════════════════════════════════

func TestCalendarHandler_GetCalendar_Success(t *testing.T) {
	mock := &mockCalendarService{
		calendarResult: &dto.CalendarResponse{
			View:   "week",
			Date:   "2024-03-13",
			Events: []dto.CalendarEventResponse{{ID: "e1", Title: "Algebra"}},
		},
	}
	h := NewCalendarHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/calendar?view=week&date=2024-03-13", nil)

	r := gin.New()
	r.GET("/calendar", fakeAuth("u1", "student"), h.GetCalendar)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestCalendarHandler_GetCalendar_Unauthenticated(t *testing.T) {
	h := NewCalendarHandler(&mockCalendarService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/calendar", nil)

	// 未经过认证中间件，上下文中无 user_id
	r := gin.New()
	r.GET("/calendar", h.GetCalendar)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestCalendarHandler_GetCalendar_BadView(t *testing.T) {
	h := NewCalendarHandler(&mockCalendarService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/calendar?view=year", nil)

	r := gin.New()
	r.GET("/calendar", fakeAuth("u1", "student"), h.GetCalendar)
	r.ServeHTTP(w, req)

	// view 枚举校验在 binding 层拦截
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCalendarHandler_GetCalendar_BadDate(t *testing.T) {
	h := NewCalendarHandler(&mockCalendarService{calendarErr: service.ErrBadDate})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/calendar?view=week&date=bad", nil)

	r := gin.New()
	r.GET("/calendar", fakeAuth("u1", "student"), h.GetCalendar)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 16001 {
		t.Errorf("expected error code 16001, got %d", resp.Code)
	}
}

func TestCalendarHandler_CreateEvent_EndNotAfter(t *testing.T) {
	h := NewCalendarHandler(&mockCalendarService{createErr: service.ErrEventEndNotAfter})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/calendar/events", jsonBody(dto.CreateUserEventRequest{
		Title:     "X",
		StartTime: "2024-03-12T19:00:00Z",
		EndTime:   "2024-03-12T18:00:00Z",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/calendar/events", fakeAuth("u1", "student"), h.CreateEvent)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 17002 {
		t.Errorf("expected error code 17002, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// SubmissionHandler Tests
// ═══════════════════════════════════════════════════════════

func TestSubmissionHandler_Grade_NotGrader(t *testing.T) {
	h := NewSubmissionHandler(&mockSubmissionService{gradeErr: service.ErrNotGrader})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/submissions/sub-1/grade", jsonBody(dto.GradeSubmissionRequest{Grade: "A"}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/submissions/:id/grade", fakeAuth("teacher-2", "teacher"), h.Grade)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13003 {
		t.Errorf("expected error code 13003, got %d", resp.Code)
	}
}

func TestSubmissionHandler_Submit_NotAssigned(t *testing.T) {
	h := NewSubmissionHandler(&mockSubmissionService{submitErr: service.ErrNotAssigned})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/submissions", jsonBody(dto.SubmitTaskRequest{
		TaskID: "a9c013d1-8a1e-4a3e-9a58-1f6f3a1e0000",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/submissions", fakeAuth("student-2", "student"), h.Submit)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

// [自证通过] internal/api/handler/handler_test.go
