package folio

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/alexchen-dev/folio/contact"
)

// ErrNotFound is returned when a requested message does not exist.
var ErrNotFound = errors.New("folio: not found")

// StoredMessage is a contact message as kept in the inbox.
type StoredMessage struct {
	ID         string
	Name       string
	Email      string
	Body       string
	RemoteAddr string
	ReceivedAt time.Time
	Read       bool
}

// Subscriber is a newsletter sign-up.
type Subscriber struct {
	Email     string
	CreatedAt time.Time
}

// Store wraps a SQLite database holding the contact inbox and newsletter list.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the admin inbox read while a submission writes; writers wait
	// on busy_timeout instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA foreign_keys=ON;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS messages (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    body TEXT NOT NULL,
    remote_addr TEXT NOT NULL DEFAULT '',
    received_at INTEGER NOT NULL,
    read INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS messages_received_at ON messages(received_at DESC);
CREATE TABLE IF NOT EXISTS subscribers (
    email TEXT PRIMARY KEY,
    created_at INTEGER NOT NULL
);
`)
	return err
}

// SaveMessage stores m in the inbox.
func (s *Store) SaveMessage(ctx context.Context, m contact.Message) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (id, name, email, body, remote_addr, received_at) VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Email, m.Body, m.RemoteAddr, m.ReceivedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("folio: save message: %w", err)
	}
	return nil
}

// ListMessages returns up to limit messages, newest first. limit <= 0 means all.
func (s *Store) ListMessages(ctx context.Context, limit int) ([]StoredMessage, error) {
	q := `SELECT id, name, email, body, remote_addr, received_at, read FROM messages ORDER BY received_at DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []StoredMessage
	for rows.Next() {
		var m StoredMessage
		var received int64
		var read int
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Body, &m.RemoteAddr, &received, &read); err != nil {
			return nil, err
		}
		m.ReceivedAt = time.UnixMilli(received).UTC()
		m.Read = read == 1
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// GetMessage returns one message by id.
func (s *Store) GetMessage(ctx context.Context, id string) (StoredMessage, error) {
	var m StoredMessage
	var received int64
	var read int
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, body, remote_addr, received_at, read FROM messages WHERE id = ?`, id).
		Scan(&m.ID, &m.Name, &m.Email, &m.Body, &m.RemoteAddr, &received, &read)
	if errors.Is(err, sql.ErrNoRows) {
		return StoredMessage{}, ErrNotFound
	}
	if err != nil {
		return StoredMessage{}, err
	}
	m.ReceivedAt = time.UnixMilli(received).UTC()
	m.Read = read == 1
	return m, nil
}

// MarkRead flags a message as read.
func (s *Store) MarkRead(ctx context.Context, id string) error {
	return s.execOne(ctx, `UPDATE messages SET read = 1 WHERE id = ?`, id)
}

// DeleteMessage removes a message.
func (s *Store) DeleteMessage(ctx context.Context, id string) error {
	return s.execOne(ctx, `DELETE FROM messages WHERE id = ?`, id)
}

func (s *Store) execOne(ctx context.Context, q string, args ...any) error {
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountUnread returns the number of unread messages.
func (s *Store) CountUnread(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages WHERE read = 0`).Scan(&n)
	return n, err
}

// AddSubscriber records a newsletter sign-up. Emails are compared
// case-insensitively; adding an existing address is a no-op and reports false.
func (s *Store) AddSubscriber(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO subscribers (email, created_at) VALUES (?, ?) ON CONFLICT(email) DO NOTHING`,
		email, time.Now().UnixMilli())
	if err != nil {
		return false, fmt.Errorf("folio: add subscriber: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// ListSubscribers returns every subscriber, oldest first.
func (s *Store) ListSubscribers(ctx context.Context) ([]Subscriber, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT email, created_at FROM subscribers ORDER BY created_at, email`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []Subscriber
	for rows.Next() {
		var sub Subscriber
		var created int64
		if err := rows.Scan(&sub.Email, &created); err != nil {
			return nil, err
		}
		sub.CreatedAt = time.UnixMilli(created).UTC()
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
