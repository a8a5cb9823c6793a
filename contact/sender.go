package contact

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultDelay is how long SimulatedSender pretends to send.
const DefaultDelay = 1500 * time.Millisecond

// Message is a validated submission handed to a Sender.
type Message struct {
	ID         string
	Name       string
	Email      string
	Body       string
	RemoteAddr string
	ReceivedAt time.Time
}

// NewMessage builds a Message from submitted fields.
func NewMessage(f Fields, remoteAddr string) Message {
	return Message{
		ID:         uuid.NewString(),
		Name:       f.Name,
		Email:      f.Email,
		Body:       f.Message,
		RemoteAddr: remoteAddr,
		ReceivedAt: time.Now().UTC(),
	}
}

// Sender delivers a contact message.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, m Message) error

func (f SenderFunc) Send(ctx context.Context, m Message) error { return f(ctx, m) }

// SimulatedSender waits Delay and reports success. It stands in for a real
// backend during development.
type SimulatedSender struct {
	Delay time.Duration
}

func (s SimulatedSender) Send(ctx context.Context, _ Message) error {
	d := s.Delay
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return &NetworkError{Op: "simulated send", Err: ctx.Err()}
	}
}

// SMTPConfig configures SMTPSender.
type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	To   string
}

// SMTPSender mails each message to a fixed recipient.
type SMTPSender struct {
	cfg      SMTPConfig
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender returns a sender for cfg. User and Pass are required.
func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	if cfg.User == "" || cfg.Pass == "" {
		return nil, fmt.Errorf("contact: smtp credentials not configured")
	}
	if cfg.Host == "" {
		return nil, fmt.Errorf("contact: smtp host not configured")
	}
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	if cfg.To == "" {
		cfg.To = cfg.User
	}
	return &SMTPSender{cfg: cfg, sendMail: smtp.SendMail}, nil
}

func (s *SMTPSender) Send(ctx context.Context, m Message) error {
	msg := s.compose(m)
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
	addr := s.cfg.Host + ":" + s.cfg.Port

	// net/smtp has no context support; give up waiting when ctx ends.
	errc := make(chan error, 1)
	go func() {
		errc <- s.sendMail(addr, auth, s.cfg.User, []string{s.cfg.To}, msg)
	}()
	select {
	case err := <-errc:
		if err != nil {
			return &NetworkError{Op: "smtp send", Err: err}
		}
		return nil
	case <-ctx.Done():
		return &NetworkError{Op: "smtp send", Err: ctx.Err()}
	}
}

func (s *SMTPSender) compose(m Message) []byte {
	var b strings.Builder
	b.WriteString("To: " + s.cfg.To + "\r\n")
	b.WriteString("From: " + s.cfg.User + "\r\n")
	b.WriteString("Reply-To: " + headerSafe(m.Email) + "\r\n")
	b.WriteString("Subject: Portfolio Contact: " + headerSafe(m.Name) + "\r\n")
	b.WriteString("Date: " + m.ReceivedAt.Format(time.RFC1123Z) + "\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "New contact form submission from your portfolio:\r\n\r\nName: %s\r\nEmail: %s\r\nMessage:\r\n%s\r\n",
		m.Name, m.Email, m.Body)
	return []byte(b.String())
}

// headerSafe strips CR and LF so visitor input cannot inject headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
