package botservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/meetscribe-team/meetscribe/pkg/config"
)

func newTestClient(url string) *Client {
	return NewClient(&config.BotConfig{
		BaseURL: url,
		Timeout: 5 * time.Second,
	})
}

func TestStartRecording(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		var req startRecordingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.MeetingID != "meet-1" {
			t.Fatalf("unexpected meeting id: %s", req.MeetingID)
		}

		json.NewEncoder(w).Encode(startRecordingResponse{BotID: "bot-42"})
	}))
	defer srv.Close()

	botID, err := newTestClient(srv.URL).StartRecording(context.Background(), "meet-1")
	if err != nil {
		t.Fatalf("start recording failed: %v", err)
	}
	if botID != "bot-42" {
		t.Fatalf("unexpected bot id: %s", botID)
	}
	if gotPath != "/bots/recording/start" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
}

func TestStartRecordingRetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(startRecordingResponse{BotID: "bot-7"})
	}))
	defer srv.Close()

	botID, err := newTestClient(srv.URL).StartRecording(context.Background(), "meet-2")
	if err != nil {
		t.Fatalf("start recording failed: %v", err)
	}
	if botID != "bot-7" {
		t.Fatalf("unexpected bot id: %s", botID)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestStopRecording(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bots/recording/stop" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		var req stopRecordingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.BotID != "bot-42" {
			t.Fatalf("unexpected bot id: %s", req.BotID)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if err := newTestClient(srv.URL).StopRecording(context.Background(), "bot-42"); err != nil {
		t.Fatalf("stop recording failed: %v", err)
	}
}

func TestListBots(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bots/all" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(listBotsResponse{Bots: []BotMeeting{
			{ID: "bot-1", UserID: "u1", Status: "completed"},
			{ID: "bot-2", UserID: "u2", Status: "in_progress", IsRecording: true},
		}})
	}))
	defer srv.Close()

	bots, err := newTestClient(srv.URL).ListBots(context.Background())
	if err != nil {
		t.Fatalf("list bots failed: %v", err)
	}
	if len(bots) != 2 {
		t.Fatalf("expected 2 bots, got %d", len(bots))
	}
	if !bots[1].IsRecording {
		t.Fatal("expected second bot to be recording")
	}
}

func TestListBotsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).ListBots(context.Background()); err == nil {
		t.Fatal("expected error from failing service")
	}
}
