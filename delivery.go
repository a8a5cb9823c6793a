package folio

import (
	"context"
	"fmt"

	"github.com/alexchen-dev/folio/contact"
)

// InboxSender delivers contact messages into the SQLite inbox.
type InboxSender struct {
	Store *Store
}

func (s InboxSender) Send(ctx context.Context, m contact.Message) error {
	if err := s.Store.SaveMessage(ctx, m); err != nil {
		return &contact.NetworkError{Op: "inbox save", Err: err}
	}
	return nil
}

// newSender picks the delivery backend named in cfg.
func newSender(cfg SiteConfig, store *Store) (contact.Sender, error) {
	switch cfg.Delivery {
	case DeliverySimulate:
		return contact.SimulatedSender{Delay: cfg.SimulatedDelay.Duration}, nil
	case DeliverySMTP:
		s, err := contact.NewSMTPSender(contact.SMTPConfig{
			Host: cfg.SMTP.Host,
			Port: cfg.SMTP.Port,
			User: cfg.SMTP.User,
			Pass: cfg.SMTP.Pass,
			To:   cfg.SMTP.To,
		})
		if err != nil {
			return nil, fmt.Errorf("folio: %w", err)
		}
		return s, nil
	case DeliveryInbox:
		if store == nil {
			return nil, fmt.Errorf("folio: delivery %q requires database_path", cfg.Delivery)
		}
		return InboxSender{Store: store}, nil
	}
	return nil, fmt.Errorf("folio: unknown delivery %q", cfg.Delivery)
}
