package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/scoutline/scoutline-api/internal/mail"
	"github.com/scoutline/scoutline-api/internal/repository"
)

// unreadAge is how long a message must sit unread before a reminder goes out.
const unreadAge = 24 * time.Hour

// ReminderService wraps robfig/cron and periodically mails users who have
// messages waiting unread past the threshold.
type ReminderService struct {
	cron   *cron.Cron
	repo   repository.ReminderRepository
	mailer mail.Mailer
	spec   string // cron spec, e.g. "@every 6h"
}

// NewReminderService creates a scheduler that fires every intervalHours hours.
func NewReminderService(repo repository.ReminderRepository, mailer mail.Mailer, intervalHours int) *ReminderService {
	return &ReminderService{
		cron:   cron.New(cron.WithLogger(cron.DefaultLogger)),
		repo:   repo,
		mailer: mailer,
		spec:   fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the job and starts the scheduler.
func (s *ReminderService) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	s.cron.Start()
	log.Printf("[reminder] Cron started with spec %s", s.spec)
	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *ReminderService) Stop() {
	s.cron.Stop()
	log.Println("[reminder] Cron stopped")
}

func (s *ReminderService) runOnce(ctx context.Context) {
	log.Println("[reminder] Reminder cycle started")

	rooms, err := s.repo.ListRoomsWithUnread(ctx, time.Now().Add(-unreadAge))
	if err != nil {
		log.Printf("[reminder] ListRoomsWithUnread error: %v", err)
		return
	}
	if len(rooms) == 0 {
		log.Println("[reminder] Nothing unread past threshold")
		return
	}

	for _, r := range rooms {
		subject := "You have unread messages"
		body := fmt.Sprintf(
			"Hello %s,\n\nYou have %d unread message(s) waiting since %s.\nPlease sign in to reply.\n",
			r.RecipientName, r.Count, r.OldestSentAt.Format("2006/01/02 15:04"),
		)
		if err := s.mailer.Send(r.RecipientEmail, subject, body); err != nil {
			log.Printf("[reminder] mail to %s failed: %v", r.RecipientEmail, err)
		}
	}

	log.Printf("[reminder] Reminder cycle complete, %d room(s)", len(rooms))
}
