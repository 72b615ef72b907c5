package services

import (
	"fmt"
	"testing"
)

func TestChatHistoryChronologicalOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewChatService(db)

	for i := 0; i < 3; i++ {
		msg := fmt.Sprintf("turn %d", i)
		if _, err := svc.Append(1, msg, i%2 == 1, ""); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	rows, err := svc.History(1, 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for i, r := range rows {
		if want := fmt.Sprintf("turn %d", i); r.Message != want {
			t.Fatalf("row %d = %q, want %q", i, r.Message, want)
		}
	}
}

func TestChatHistoryScopedToUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewChatService(db)

	if _, err := svc.Append(1, "mine", false, ""); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := svc.Append(2, "theirs", false, ""); err != nil {
		t.Fatalf("append: %v", err)
	}

	rows, err := svc.History(1, 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(rows) != 1 || rows[0].Message != "mine" {
		t.Fatalf("history leaked across users: %+v", rows)
	}
}

func TestChatAppendAssignsMessageID(t *testing.T) {
	db := newTestDB(t)
	svc := NewChatService(db)

	a, err := svc.Append(1, "hello", false, "")
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	b, err := svc.Append(1, "hello again", false, "")
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if a.MessageID == "" || a.MessageID == b.MessageID {
		t.Fatalf("message ids not unique: %q %q", a.MessageID, b.MessageID)
	}
}
