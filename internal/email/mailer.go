// Package email sends transactional mail over SMTP.
package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"mentorhub/backend/internal/models"
)

// Mailer is the sending side the handlers and scheduler depend on.
type Mailer interface {
	SendWelcome(to, name string) error
	SendMeetingReminder(to, name string, meeting *models.Meeting) error
	SendTodoDigest(to, name string, todos []models.Todo) error
}

// SMTPMailer sends mail through a plain-auth SMTP relay.
type SMTPMailer struct {
	Addr        string
	Username    string
	Password    string
	From        string
	FrontendURL string
}

// NewSMTPMailer returns nil when addr is empty, which callers treat as
// mail disabled.
func NewSMTPMailer(addr, username, password, frontendURL string) *SMTPMailer {
	if addr == "" {
		return nil
	}
	return &SMTPMailer{
		Addr:        addr,
		Username:    username,
		Password:    password,
		From:        username,
		FrontendURL: frontendURL,
	}
}

func (m *SMTPMailer) send(to, subject, body string) error {
	host := m.Addr
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}

	msg := fmt.Sprintf("From: MentorHub <%s>\r\nTo: %s\r\nSubject: %s\r\n"+
		"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		m.From, to, subject, body)

	auth := smtp.PlainAuth("", m.Username, m.Password, host)
	if err := smtp.SendMail(m.Addr, auth, m.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

// SendWelcome greets a freshly registered user.
func (m *SMTPMailer) SendWelcome(to, name string) error {
	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Welcome to MentorHub! Your account is ready.\n\n"+
			"Find a mentor, plan your studies and track your progress at %s.\n\n"+
			"Happy learning,\nThe MentorHub team\n",
		name, m.FrontendURL)
	return m.send(to, "Welcome to MentorHub", body)
}

// SendMeetingReminder warns a participant that a meeting starts soon.
func (m *SMTPMailer) SendMeetingReminder(to, name string, meeting *models.Meeting) error {
	var where string
	switch meeting.Type {
	case models.MeetingTypeInPerson:
		where = "Location: " + meeting.Location
	default:
		where = "Link: " + meeting.MeetingLink
	}
	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your meeting \"%s\" starts at %s (in about 15 minutes).\n"+
			"%s\n\n"+
			"See you there,\nThe MentorHub team\n",
		name, meeting.Title, meeting.Date.Format("15:04, 2 Jan 2006"), where)
	return m.send(to, "Upcoming meeting: "+meeting.Title, body)
}

// SendTodoDigest lists a user's overdue tasks.
func (m *SMTPMailer) SendTodoDigest(to, name string, todos []models.Todo) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nYou have %d overdue task(s):\n\n", name, len(todos))
	for _, t := range todos {
		fmt.Fprintf(&b, "  - [%s] %s", t.Priority, t.Text)
		if t.DueDate != nil {
			fmt.Fprintf(&b, " (due %s)", t.DueDate.Format("2 Jan"))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nReview them at %s/planner.\n\nThe MentorHub team\n", m.FrontendURL)
	return m.send(to, "Your overdue tasks on MentorHub", b.String())
}
