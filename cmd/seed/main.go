package main

import (
	"context"
	"log"
	"time"

	"github.com/meetscribe-team/meetscribe/internal/adapter/repository"
	"github.com/meetscribe-team/meetscribe/internal/domain/entities"
	"github.com/meetscribe-team/meetscribe/internal/infrastructure/database"
	"github.com/meetscribe-team/meetscribe/pkg/config"
	"github.com/meetscribe-team/meetscribe/pkg/password"
)

// Seeds a demo account with a few meetings and action items so a fresh
// environment has something to look at.
func main() {
	log.Println("🚀 Seeding demo data...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	itemRepo := repository.NewActionItemRepository(db)

	if _, err := userRepo.FindByEmail(ctx, "demo@meetscribe.local"); err == nil {
		log.Println("✅ Demo user already exists, nothing to do")
		return
	}

	hash, err := password.Hash("demo1234")
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	demo := entities.NewUser("demo", "Demo User", "demo@meetscribe.local")
	demo.PasswordHash = hash
	if err := userRepo.Create(ctx, demo); err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}
	log.Printf("👤 Created demo user %s (password: demo1234)", demo.Email)

	now := time.Now()

	standup := entities.NewMeeting(demo.ID, "Daily standup")
	standup.Status = entities.MeetingStatusScheduled
	standup.Description = "Quick sync on yesterday and today"
	standup.StartTime = now.Add(24 * time.Hour)
	standup.Duration = 15
	if err := standup.SetParticipants([]string{"alice@meetscribe.local", "bob@meetscribe.local"}); err != nil {
		log.Fatalf("Failed to set participants: %v", err)
	}

	botID := "seed-bot-1"
	retro := entities.NewMeeting(demo.ID, "Sprint retrospective")
	retro.Type = entities.MeetingTypeBotRecorded
	retro.Status = entities.MeetingStatusCompleted
	retro.BotID = &botID
	retro.StartTime = now.Add(-48 * time.Hour)
	retro.Duration = 60
	retro.Summarization = "The team shipped the reporting feature and agreed to cut review latency."
	retro.Utterances = []entities.Utterance{
		{Speaker: "Alice", Text: "Let's start with what went well.", Start: 0, End: 2500},
		{Speaker: "Bob", Text: "The reporting feature shipped on time.", Start: 2600, End: 6100},
	}

	for _, m := range []*entities.Meeting{standup, retro} {
		if err := meetingRepo.Create(ctx, m); err != nil {
			log.Fatalf("Failed to create meeting %q: %v", m.Title, err)
		}
		log.Printf("📅 Created meeting %q", m.Title)
	}

	due := now.Add(72 * time.Hour)
	followUp := entities.NewActionItem(retro.ID, "Write up review latency proposal", "Alice")
	followUp.DueDate = &due

	done := entities.NewActionItem(retro.ID, "Publish retro notes", "Bob")
	done.Completed = true

	for _, item := range []*entities.ActionItem{followUp, done} {
		if err := itemRepo.Create(ctx, item); err != nil {
			log.Fatalf("Failed to create action item %q: %v", item.Description, err)
		}
		log.Printf("✅ Created action item %q", item.Description)
	}

	log.Println("✅ Demo data seeded")
}
