package entities

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestMeetingStatus_IsValid(t *testing.T) {
	valid := []MeetingStatus{
		MeetingStatusPending, MeetingStatusScheduled, MeetingStatusInProgress,
		MeetingStatusCompleted, MeetingStatusCancelled, MeetingStatusFailed,
	}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if MeetingStatus("archived").IsValid() {
		t.Error("expected unknown status to be invalid")
	}
}

func TestMeetingOverlaps(t *testing.T) {
	base := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	m := &Meeting{StartTime: base, Duration: 60} // [10:00, 11:00)

	cases := []struct {
		name     string
		start    time.Time
		duration int
		want     bool
	}{
		{"contained", base.Add(30 * time.Minute), 60, true},   // [10:30, 11:30)
		{"touching after", base.Add(60 * time.Minute), 60, false}, // [11:00, 12:00)
		{"touching before", base.Add(-30 * time.Minute), 30, false},
		{"covering", base.Add(-30 * time.Minute), 120, true},
		{"disjoint", base.Add(3 * time.Hour), 30, false},
	}

	for _, tc := range cases {
		if got := m.Overlaps(tc.start, tc.duration); got != tc.want {
			t.Errorf("%s: Overlaps=%v want %v", tc.name, got, tc.want)
		}
	}
}

func TestNewMeetingTimestamps(t *testing.T) {
	m := NewMeeting(uuid.New(), "Weekly Team Standup")
	if m.CreatedAt.After(m.UpdatedAt) {
		t.Fatal("created_at must not be after updated_at")
	}

	before := m.UpdatedAt
	time.Sleep(5 * time.Millisecond)
	m.Touch()
	if !m.UpdatedAt.After(before) {
		t.Fatal("Touch must advance updated_at")
	}
	if m.CreatedAt.After(m.UpdatedAt) {
		t.Fatal("created_at must stay <= updated_at")
	}
}

func TestMeetingCancel(t *testing.T) {
	m := NewMeeting(uuid.New(), "Planning")
	m.Status = MeetingStatusScheduled
	m.Cancel()
	if m.Status != MeetingStatusCancelled {
		t.Fatalf("expected cancelled, got %s", m.Status)
	}
	if !m.Status.IsTerminal() {
		t.Fatal("cancelled should be terminal")
	}
}
