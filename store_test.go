package folio

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexchen-dev/folio/contact"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "data", "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testMessage(name string, at time.Time) contact.Message {
	m := contact.NewMessage(contact.Fields{Name: name, Email: name + "@example.com", Message: "hello from " + name}, "203.0.113.5")
	m.ReceivedAt = at
	return m
}

func TestSaveAndListMessages(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

	for i, name := range []string{"ann", "bob", "cat"} {
		if err := s.SaveMessage(ctx, testMessage(name, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("SaveMessage failed: %v", err)
		}
	}

	msgs, err := s.ListMessages(ctx, 0)
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3", len(msgs))
	}
	if msgs[0].Name != "cat" || msgs[2].Name != "ann" {
		t.Errorf("order = %s,%s,%s; want newest first", msgs[0].Name, msgs[1].Name, msgs[2].Name)
	}
	if !msgs[0].ReceivedAt.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("ReceivedAt = %v", msgs[0].ReceivedAt)
	}
	if msgs[0].RemoteAddr != "203.0.113.5" || msgs[0].Read {
		t.Errorf("unexpected message %+v", msgs[0])
	}

	limited, err := s.ListMessages(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("limit 2 returned %d", len(limited))
	}
}

func TestMarkReadAndCountUnread(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	m := testMessage("ann", time.Now())
	if err := s.SaveMessage(ctx, m); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveMessage(ctx, testMessage("bob", time.Now())); err != nil {
		t.Fatal(err)
	}

	n, err := s.CountUnread(ctx)
	if err != nil || n != 2 {
		t.Fatalf("CountUnread = %d, %v; want 2", n, err)
	}
	if err := s.MarkRead(ctx, m.ID); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}
	if n, _ := s.CountUnread(ctx); n != 1 {
		t.Errorf("CountUnread after MarkRead = %d, want 1", n)
	}
	got, err := s.GetMessage(ctx, m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Read {
		t.Error("message should be read")
	}
	if err := s.MarkRead(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("MarkRead(missing) = %v, want ErrNotFound", err)
	}
}

func TestDeleteMessage(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	m := testMessage("ann", time.Now())
	if err := s.SaveMessage(ctx, m); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteMessage(ctx, m.ID); err != nil {
		t.Fatalf("DeleteMessage failed: %v", err)
	}
	if _, err := s.GetMessage(ctx, m.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetMessage after delete = %v, want ErrNotFound", err)
	}
	if err := s.DeleteMessage(ctx, m.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}

func TestAddSubscriberIsIdempotent(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	added, err := s.AddSubscriber(ctx, "Reader@Example.com ")
	if err != nil || !added {
		t.Fatalf("first AddSubscriber = %v, %v", added, err)
	}
	added, err = s.AddSubscriber(ctx, "reader@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if added {
		t.Error("duplicate subscriber should not be added")
	}
	subs, err := s.ListSubscribers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(subs) != 1 || subs[0].Email != "reader@example.com" {
		t.Fatalf("subscribers = %+v", subs)
	}
}
