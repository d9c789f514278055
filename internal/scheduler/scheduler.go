// Package scheduler runs the recurring background jobs: meeting reminders,
// overdue-todo digests and streak resets.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/adhocore/gronx"

	"mentorhub/backend/internal/email"
	"mentorhub/backend/internal/models"
)

const (
	// reminderLookahead is how far ahead the meeting reminder job looks.
	reminderLookahead = 15 * time.Minute
	// messageRetentionMonths is how long chat messages are kept before the
	// weekly cleanup removes them.
	messageRetentionMonths = 6
)

// Store is the slice of the storage layer the jobs need.
type Store interface {
	MeetingsNeedingReminder(from, to time.Time) ([]models.Meeting, error)
	MarkReminderSent(meetingID uint) error
	GetUserByID(id string) (*models.User, error)
	GetUsersByRoles(roles []string) ([]models.User, error)
	GetOverdueTodos(userID string, now time.Time) ([]models.Todo, error)
	ResetStaleStreaks(from, to time.Time) (int64, error)
	DeleteMessagesBefore(cutoff time.Time) (int64, error)
}

// MeetingNotifier is the optional Telegram side of meeting reminders.
type MeetingNotifier interface {
	NotifyMeetingReminder(userID string, meeting *models.Meeting)
}

type job struct {
	name string
	cron string
	run  func(now time.Time) error
}

// Scheduler fires cron-scheduled jobs from a one-minute ticker. Job errors
// are logged and never stop the loop.
type Scheduler struct {
	Store    Store
	Mailer   email.Mailer
	Notifier MeetingNotifier

	gron gronx.Gronx
	jobs []job
}

// New wires the standard job set. mailer and notifier may be nil; the jobs
// skip the corresponding channel.
func New(store Store, mailer email.Mailer, notifier MeetingNotifier) (*Scheduler, error) {
	s := &Scheduler{
		Store:    store,
		Mailer:   mailer,
		Notifier: notifier,
		gron:     *gronx.New(),
	}
	s.jobs = []job{
		{name: "meeting-reminders", cron: "* * * * *", run: s.RunMeetingReminders},
		{name: "todo-digest", cron: "0 9 * * *", run: s.RunTodoDigest},
		{name: "streak-reset", cron: "0 0 * * *", run: s.RunStreakReset},
		{name: "message-cleanup", cron: "0 2 * * 0", run: s.RunMessageCleanup},
	}
	for _, j := range s.jobs {
		if !gronx.IsValid(j.cron) {
			return nil, fmt.Errorf("invalid cron expression for job %s: %s", j.name, j.cron)
		}
	}
	return s, nil
}

// Run ticks once a minute until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	log.Printf("Scheduler started with %d jobs", len(s.jobs))
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Scheduler stopping")
			return
		case now := <-ticker.C:
			s.tick(now)
		}
	}
}

func (s *Scheduler) tick(now time.Time) {
	for _, j := range s.jobs {
		due, err := s.gron.IsDue(j.cron, now)
		if err != nil {
			log.Printf("Job %s: cron check failed: %v", j.name, err)
			continue
		}
		if !due {
			continue
		}
		if err := j.run(now); err != nil {
			log.Printf("Job %s failed: %v", j.name, err)
		}
	}
}

// RunMeetingReminders mails and pings both participants of every scheduled
// meeting starting within the lookahead window, then marks it reminded.
func (s *Scheduler) RunMeetingReminders(now time.Time) error {
	meetings, err := s.Store.MeetingsNeedingReminder(now, now.Add(reminderLookahead))
	if err != nil {
		return err
	}

	for i := range meetings {
		meeting := &meetings[i]
		for _, userID := range []string{meeting.MentorID, meeting.StudentID} {
			user, err := s.Store.GetUserByID(userID)
			if err != nil {
				log.Printf("Reminder for meeting %d: user %s not found: %v", meeting.ID, userID, err)
				continue
			}
			if s.Mailer != nil {
				if err := s.Mailer.SendMeetingReminder(user.Email, user.Name, meeting); err != nil {
					log.Printf("Reminder mail to %s failed: %v", user.Email, err)
				}
			}
			if s.Notifier != nil {
				s.Notifier.NotifyMeetingReminder(userID, meeting)
			}
		}
		if err := s.Store.MarkReminderSent(meeting.ID); err != nil {
			log.Printf("Failed to mark meeting %d as reminded: %v", meeting.ID, err)
		}
	}
	return nil
}

// RunTodoDigest mails each user a list of their overdue tasks.
func (s *Scheduler) RunTodoDigest(now time.Time) error {
	if s.Mailer == nil {
		return nil
	}
	users, err := s.Store.GetUsersByRoles([]string{models.RoleStudent, models.RoleMentor})
	if err != nil {
		return err
	}

	for i := range users {
		user := &users[i]
		todos, err := s.Store.GetOverdueTodos(user.ID, now)
		if err != nil {
			log.Printf("Todo digest: lookup for %s failed: %v", user.ID, err)
			continue
		}
		if len(todos) == 0 {
			continue
		}
		if err := s.Mailer.SendTodoDigest(user.Email, user.Name, todos); err != nil {
			log.Printf("Todo digest to %s failed: %v", user.Email, err)
		}
	}
	return nil
}

// RunStreakReset zeroes the streak of everyone who did not study yesterday.
func (s *Scheduler) RunStreakReset(now time.Time) error {
	todayStart := now.Truncate(24 * time.Hour)
	yesterdayStart := todayStart.AddDate(0, 0, -1)

	reset, err := s.Store.ResetStaleStreaks(yesterdayStart, todayStart)
	if err != nil {
		return err
	}
	if reset > 0 {
		log.Printf("Reset streaks for %d users", reset)
	}
	return nil
}

// RunMessageCleanup prunes chat messages past the retention horizon.
func (s *Scheduler) RunMessageCleanup(now time.Time) error {
	cutoff := now.AddDate(0, -messageRetentionMonths, 0)
	deleted, err := s.Store.DeleteMessagesBefore(cutoff)
	if err != nil {
		return err
	}
	if deleted > 0 {
		log.Printf("Deleted %d messages older than %d months", deleted, messageRetentionMonths)
	}
	return nil
}
