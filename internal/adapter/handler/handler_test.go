package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meetscribe-team/meetscribe/internal/adapter/repository"
	"github.com/meetscribe-team/meetscribe/internal/domain/entities"
	"github.com/meetscribe-team/meetscribe/internal/infrastructure/cache"
	actionItemUsecase "github.com/meetscribe-team/meetscribe/internal/usecase/actionitem"
	"github.com/meetscribe-team/meetscribe/internal/usecase/auth"
	meetingUsecase "github.com/meetscribe-team/meetscribe/internal/usecase/meeting"
	"github.com/meetscribe-team/meetscribe/pkg/config"
	"github.com/meetscribe-team/meetscribe/pkg/jwt"
	pkgvalidator "github.com/meetscribe-team/meetscribe/pkg/validator"
)

func newTestServer(t *testing.T) (*echo.Echo, *repository.MemoryStore) {
	t.Helper()

	store := repository.NewMemoryStore()
	jwtManager := jwt.NewManager("test-secret", time.Hour)
	logger := zap.NewNop()

	authService := auth.NewService(store.Users(), jwtManager, nil, nil)
	meetingService := meetingUsecase.NewService(
		store.Meetings(),
		store.Transcripts(),
		store.Summaries(),
		store.ActionItems(),
		nil,
		nil,
		cache.NewMemoryStore(),
	)
	actionItemService := actionItemUsecase.NewService(store.ActionItems(), store.Meetings(), meetingService.InvalidateStats)

	e := echo.New()
	e.Validator = pkgvalidator.New()

	cfg := &config.Config{}
	router := NewRouter(
		cfg,
		authService,
		NewAuthHandler(authService, jwtManager, logger),
		NewMeetingHandler(meetingService, logger),
		NewActionItemHandler(actionItemService, logger),
		NewDashboardHandler(meetingService, logger),
	)
	router.Setup(e)
	return e, store
}

type envelope struct {
	Code    interface{}     `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, e *echo.Echo, method, path, token, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func registerUser(t *testing.T, e *echo.Echo, username, email string) string {
	t.Helper()

	body := fmt.Sprintf(`{"username":%q,"password":"secret-pass-1","fullName":"Test User","email":%q}`, username, email)
	rec, env := doJSON(t, e, http.MethodPost, "/api/register", "", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register returned %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatalf("failed to decode register response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("register returned empty token")
	}
	return resp.Token
}

func TestRegisterLoginMe(t *testing.T) {
	e, _ := newTestServer(t)
	registerUser(t, e, "carol", "carol@example.com")

	rec, env := doJSON(t, e, http.MethodPost, "/api/login", "", `{"email":"carol@example.com","password":"secret-pass-1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login returned %d: %s", rec.Code, rec.Body.String())
	}
	var loginResp struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(env.Data, &loginResp); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	if loginResp.User.Email != "carol@example.com" {
		t.Fatalf("unexpected user email: %s", loginResp.User.Email)
	}

	rec, env = doJSON(t, e, http.MethodGet, "/api/me", loginResp.Token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("me returned %d: %s", rec.Code, rec.Body.String())
	}
	var me struct {
		Username string `json:"username"`
	}
	if err := json.Unmarshal(env.Data, &me); err != nil {
		t.Fatalf("failed to decode me response: %v", err)
	}
	if me.Username != "carol" {
		t.Fatalf("unexpected username: %s", me.Username)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	e, _ := newTestServer(t)
	registerUser(t, e, "dave", "dave@example.com")

	rec, _ := doJSON(t, e, http.MethodPost, "/api/login", "", `{"email":"dave@example.com","password":"wrong-password"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e, _ := newTestServer(t)

	rec, _ := doJSON(t, e, http.MethodGet, "/api/meetings", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec, _ = doJSON(t, e, http.MethodGet, "/api/meetings", "not-a-token", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", rec.Code)
	}
}

func TestMeetingRoundtrip(t *testing.T) {
	e, _ := newTestServer(t)
	token := registerUser(t, e, "erin", "erin@example.com")

	body := `{"title":"Kickoff","description":"Project kickoff","start_time":"2026-04-01T10:00:00Z","duration":45,"participants":["frank@example.com"]}`
	rec, env := doJSON(t, e, http.MethodPost, "/api/meetings", token, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create meeting returned %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID       string   `json:"id"`
		Title    string   `json:"title"`
		EndTime  string   `json:"end_time"`
		Partners []string `json:"participants"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("failed to decode meeting: %v", err)
	}
	if created.Title != "Kickoff" {
		t.Fatalf("unexpected title: %s", created.Title)
	}

	rec, env = doJSON(t, e, http.MethodGet, "/api/meetings/"+created.ID, token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get meeting returned %d: %s", rec.Code, rec.Body.String())
	}
	var fetched struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &fetched); err != nil {
		t.Fatalf("failed to decode meeting: %v", err)
	}
	if fetched.ID != created.ID {
		t.Fatalf("id mismatch: %s vs %s", fetched.ID, created.ID)
	}

	// other users cannot see it
	other := registerUser(t, e, "frank", "frank@example.com")
	rec, _ = doJSON(t, e, http.MethodGet, "/api/meetings/"+created.ID, other, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign reader, got %d", rec.Code)
	}
}

func TestScheduleConflictReturns409(t *testing.T) {
	e, _ := newTestServer(t)
	token := registerUser(t, e, "grace", "grace@example.com")

	body := `{"title":"Slot A","start_time":"2026-04-01T10:00:00Z","duration":60}`
	rec, _ := doJSON(t, e, http.MethodPost, "/api/meetings/schedule", token, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first schedule returned %d: %s", rec.Code, rec.Body.String())
	}

	overlap := `{"title":"Slot B","start_time":"2026-04-01T10:30:00Z","duration":60}`
	rec, _ = doJSON(t, e, http.MethodPost, "/api/meetings/schedule", token, overlap)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for overlapping slot, got %d: %s", rec.Code, rec.Body.String())
	}

	adjacent := `{"title":"Slot C","start_time":"2026-04-01T11:00:00Z","duration":30}`
	rec, _ = doJSON(t, e, http.MethodPost, "/api/meetings/schedule", token, adjacent)
	if rec.Code != http.StatusCreated {
		t.Fatalf("adjacent slot returned %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCancelByNonOwnerReturns403(t *testing.T) {
	e, _ := newTestServer(t)
	owner := registerUser(t, e, "henry", "henry@example.com")
	intruder := registerUser(t, e, "iris", "iris@example.com")

	body := `{"title":"Private sync","start_time":"2026-04-02T09:00:00Z","duration":30}`
	rec, env := doJSON(t, e, http.MethodPost, "/api/meetings/schedule", owner, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("schedule returned %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("failed to decode meeting: %v", err)
	}

	rec, _ = doJSON(t, e, http.MethodPost, "/api/meetings/"+created.ID+"/cancel", intruder, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner cancel, got %d: %s", rec.Code, rec.Body.String())
	}

	rec, env = doJSON(t, e, http.MethodPost, "/api/meetings/"+created.ID+"/cancel", owner, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("owner cancel returned %d: %s", rec.Code, rec.Body.String())
	}
	var cancelled struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(env.Data, &cancelled); err != nil {
		t.Fatalf("failed to decode meeting: %v", err)
	}
	if cancelled.Status != "cancelled" {
		t.Fatalf("unexpected status: %s", cancelled.Status)
	}
}

func TestActionItemFlow(t *testing.T) {
	e, _ := newTestServer(t)
	token := registerUser(t, e, "judy", "judy@example.com")

	body := `{"title":"Planning","start_time":"2026-04-03T09:00:00Z","duration":60}`
	rec, env := doJSON(t, e, http.MethodPost, "/api/meetings", token, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create meeting returned %d: %s", rec.Code, rec.Body.String())
	}
	var m struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &m); err != nil {
		t.Fatalf("failed to decode meeting: %v", err)
	}

	itemBody := fmt.Sprintf(`{"meeting_id":%q,"description":"Prepare roadmap draft","assignee":"judy"}`, m.ID)
	rec, env = doJSON(t, e, http.MethodPost, "/api/action-items", token, itemBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create action item returned %d: %s", rec.Code, rec.Body.String())
	}
	var item struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &item); err != nil {
		t.Fatalf("failed to decode action item: %v", err)
	}

	rec, env = doJSON(t, e, http.MethodGet, "/api/action-items/pending", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("pending returned %d: %s", rec.Code, rec.Body.String())
	}
	var pending []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &pending); err != nil {
		t.Fatalf("failed to decode pending list: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != item.ID {
		t.Fatalf("unexpected pending list: %+v", pending)
	}

	rec, _ = doJSON(t, e, http.MethodPatch, "/api/action-items/"+item.ID, token, `{"completed":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update action item returned %d: %s", rec.Code, rec.Body.String())
	}

	rec, env = doJSON(t, e, http.MethodGet, "/api/action-items/pending", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("pending returned %d: %s", rec.Code, rec.Body.String())
	}
	pending = nil
	if err := json.Unmarshal(env.Data, &pending); err != nil {
		t.Fatalf("failed to decode pending list: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected no pending items, got %d", len(pending))
	}
}

func TestDashboardStats(t *testing.T) {
	e, _ := newTestServer(t)
	token := registerUser(t, e, "kate", "kate@example.com")

	for i, d := range []int{30, 45} {
		body := fmt.Sprintf(`{"title":"m%d","start_time":"2026-04-0%dT09:00:00Z","duration":%d}`, i, i+1, d)
		rec, _ := doJSON(t, e, http.MethodPost, "/api/meetings", token, body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create meeting returned %d: %s", rec.Code, rec.Body.String())
		}
	}

	rec, env := doJSON(t, e, http.MethodGet, "/api/dashboard/stats", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("stats returned %d: %s", rec.Code, rec.Body.String())
	}
	var stats struct {
		TotalMeetings  int `json:"totalMeetings"`
		MeetingMinutes int `json:"meetingMinutes"`
	}
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatalf("failed to decode stats: %v", err)
	}
	if stats.TotalMeetings != 2 {
		t.Fatalf("expected 2 meetings, got %d", stats.TotalMeetings)
	}
	if stats.MeetingMinutes != 75 {
		t.Fatalf("expected 75 minutes, got %d", stats.MeetingMinutes)
	}
}

func TestSearchMeetings(t *testing.T) {
	e, _ := newTestServer(t)
	token := registerUser(t, e, "leo", "leo@example.com")

	for _, title := range []string{"Weekly standup", "Budget review"} {
		body := fmt.Sprintf(`{"title":%q,"start_time":"2026-04-01T09:00:00Z","duration":30}`, title)
		rec, _ := doJSON(t, e, http.MethodPost, "/api/meetings", token, body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create meeting returned %d: %s", rec.Code, rec.Body.String())
		}
	}

	rec, env := doJSON(t, e, http.MethodGet, "/api/search/meetings?q=standup", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("search returned %d: %s", rec.Code, rec.Body.String())
	}
	var hits []struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(env.Data, &hits); err != nil {
		t.Fatalf("failed to decode search hits: %v", err)
	}
	if len(hits) != 1 || hits[0].Title != "Weekly standup" {
		t.Fatalf("unexpected hits: %+v", hits)
	}

	rec, _ = doJSON(t, e, http.MethodGet, "/api/search/meetings?q=", token, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty query, got %d", rec.Code)
	}
}

func TestCalendarEndpoint(t *testing.T) {
	e, _ := newTestServer(t)
	token := registerUser(t, e, "mia", "mia@example.com")

	body := `{"title":"Planning","start_time":"2026-04-06T09:00:00Z","duration":60}`
	rec, _ := doJSON(t, e, http.MethodPost, "/api/meetings", token, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create meeting returned %d: %s", rec.Code, rec.Body.String())
	}

	rec, env := doJSON(t, e, http.MethodGet, "/api/meetings/calendar?start=2026-04-06T00:00:00Z&end=2026-04-07T00:00:00Z", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("calendar returned %d: %s", rec.Code, rec.Body.String())
	}
	var cal struct {
		Days map[string][]struct {
			Title string `json:"title"`
		} `json:"days"`
	}
	if err := json.Unmarshal(env.Data, &cal); err != nil {
		t.Fatalf("failed to decode calendar: %v", err)
	}
	if len(cal.Days["2026-04-06"]) != 1 {
		t.Fatalf("expected one meeting on 2026-04-06, got %+v", cal.Days)
	}

	// inverted window is rejected
	rec, _ = doJSON(t, e, http.MethodGet, "/api/meetings/calendar?start=2026-04-07T00:00:00Z&end=2026-04-06T00:00:00Z", token, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted window, got %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	e, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("health returned %d", rec.Code)
	}
}

func TestTranscriptExposesUtterances(t *testing.T) {
	e, store := newTestServer(t)
	token := registerUser(t, e, "nina", "nina@example.com")

	body := `{"title":"Recorded sync","start_time":"2026-04-08T09:00:00Z","duration":30}`
	rec, env := doJSON(t, e, http.MethodPost, "/api/meetings", token, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create meeting returned %d: %s", rec.Code, rec.Body.String())
	}
	var m struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &m); err != nil {
		t.Fatalf("failed to decode meeting: %v", err)
	}

	meetingID, err := uuid.Parse(m.ID)
	if err != nil {
		t.Fatalf("bad meeting id: %v", err)
	}
	stored, err := store.Meetings().FindByID(context.Background(), meetingID)
	if err != nil {
		t.Fatalf("failed to load meeting: %v", err)
	}
	stored.Transcription = "hello there"
	stored.Utterances = []entities.Utterance{
		{Speaker: "A", Text: "hello", Confidence: 0.99, Start: 0, End: 900,
			Words: []entities.Word{{Word: "hello", Start: 0, End: 900, Confidence: 0.99}}},
		{Speaker: "B", Text: "there", Confidence: 0.95, Start: 1000, End: 1800},
	}
	if err := store.Meetings().Update(context.Background(), stored); err != nil {
		t.Fatalf("failed to store utterances: %v", err)
	}

	rec, env = doJSON(t, e, http.MethodGet, "/api/meetings/"+m.ID+"/transcript", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("transcript returned %d: %s", rec.Code, rec.Body.String())
	}
	var transcript struct {
		Content  string `json:"content"`
		Segments []struct {
			Timestamp string `json:"timestamp"`
			Speaker   string `json:"speaker"`
		} `json:"segments"`
		Utterances []struct {
			Speaker    string  `json:"speaker"`
			Confidence float64 `json:"confidence"`
			Words      []struct {
				Word string `json:"word"`
			} `json:"words"`
		} `json:"utterances"`
	}
	if err := json.Unmarshal(env.Data, &transcript); err != nil {
		t.Fatalf("failed to decode transcript: %v", err)
	}
	if transcript.Content != "hello there" {
		t.Fatalf("expected transcription text, got %q", transcript.Content)
	}
	if len(transcript.Utterances) != 2 {
		t.Fatalf("expected 2 utterances, got %d", len(transcript.Utterances))
	}
	if transcript.Utterances[0].Confidence != 0.99 {
		t.Fatalf("confidence lost: %+v", transcript.Utterances[0])
	}
	if len(transcript.Utterances[0].Words) != 1 || transcript.Utterances[0].Words[0].Word != "hello" {
		t.Fatalf("word breakdown lost: %+v", transcript.Utterances[0].Words)
	}
	if len(transcript.Segments) != 2 || transcript.Segments[0].Timestamp != "00:00:00" {
		t.Fatalf("unexpected segments: %+v", transcript.Segments)
	}
}

func TestStatsRefreshAfterActionItemUpdate(t *testing.T) {
	e, _ := newTestServer(t)
	token := registerUser(t, e, "omar", "omar@example.com")

	body := `{"title":"Planning","start_time":"2026-04-09T09:00:00Z","duration":30}`
	rec, env := doJSON(t, e, http.MethodPost, "/api/meetings", token, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create meeting returned %d: %s", rec.Code, rec.Body.String())
	}
	var m struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &m); err != nil {
		t.Fatalf("failed to decode meeting: %v", err)
	}

	itemBody := fmt.Sprintf(`{"meeting_id":%q,"description":"Send minutes"}`, m.ID)
	rec, env = doJSON(t, e, http.MethodPost, "/api/action-items", token, itemBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create action item returned %d: %s", rec.Code, rec.Body.String())
	}
	var item struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &item); err != nil {
		t.Fatalf("failed to decode action item: %v", err)
	}

	var stats struct {
		ActionItems          int `json:"actionItems"`
		CompletedActionItems int `json:"completedActionItems"`
	}
	rec, env = doJSON(t, e, http.MethodGet, "/api/dashboard/stats", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("stats returned %d: %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatalf("failed to decode stats: %v", err)
	}
	if stats.ActionItems != 1 || stats.CompletedActionItems != 0 {
		t.Fatalf("unexpected initial stats: %+v", stats)
	}

	rec, _ = doJSON(t, e, http.MethodPatch, "/api/action-items/"+item.ID, token, `{"completed":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update action item returned %d: %s", rec.Code, rec.Body.String())
	}

	rec, env = doJSON(t, e, http.MethodGet, "/api/dashboard/stats", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("stats returned %d: %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatalf("failed to decode stats: %v", err)
	}
	if stats.CompletedActionItems != 1 {
		t.Fatalf("stats served stale counters after completion: %+v", stats)
	}
}
