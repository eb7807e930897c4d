package session_object

import (
	"testing"
	"time"

	"github.com/supportdesk/aisha/models"
	"github.com/supportdesk/aisha/session"
)

func entry(text string, vec ...float32) session.Entry {
	return session.Entry{ID: text, Text: text, Vec: vec}
}

func texts(entries []session.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Text)
	}
	return out
}

func TestVectorSearchNearestFirst(t *testing.T) {
	s := NewSession("s", time.Hour)
	s.AddEntry(entry("far", 10, 0, 0))
	s.AddEntry(entry("near", 1, 0, 0))
	s.AddEntry(entry("mid", 5, 0, 0))

	got := texts(s.VectorSearch([]float32{0, 0, 0}, 3))
	want := []string{"near", "mid", "far"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestVectorSearchTiesBreakOnInsertionOrder(t *testing.T) {
	s := NewSession("s", time.Hour)
	s.AddEntry(entry("first", 0, 1, 0))
	s.AddEntry(entry("second", 0, -1, 0))
	s.AddEntry(entry("third", 1, 0, 0))

	got := texts(s.VectorSearch([]float32{0, 0, 0}, 3))
	want := []string{"first", "second", "third"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestVectorSearchCapsAtStoredEntries(t *testing.T) {
	s := NewSession("s", time.Hour)
	s.AddEntry(entry("only", 1, 1, 1))

	if got := s.VectorSearch([]float32{0, 0, 0}, 5); len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}
	if got := s.VectorSearch([]float32{0, 0, 0}, 0); got != nil {
		t.Fatalf("k=0 should return nil, got %v", got)
	}
}

func TestVectorSearchEmptyStore(t *testing.T) {
	s := NewSession("s", time.Hour)
	if got := s.VectorSearch([]float32{0, 0, 0}, 5); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestVectorSearchLimitsToKNearest(t *testing.T) {
	s := NewSession("s", time.Hour)
	s.AddEntry(entry("a", 1, 0, 0))
	s.AddEntry(entry("b", 2, 0, 0))
	s.AddEntry(entry("c", 3, 0, 0))

	got := texts(s.VectorSearch([]float32{0, 0, 0}, 2))
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("got %v, want [a b]", got)
	}
}

func TestTicketClaimOnce(t *testing.T) {
	s := NewSession("s", time.Hour)
	if !s.TryClaimTicket("AB1234") {
		t.Fatal("first claim should succeed")
	}
	if s.TryClaimTicket("CD5678") {
		t.Fatal("second claim should fail")
	}
	if got := s.TicketNo(); got != "AB1234" {
		t.Fatalf("TicketNo = %q, want AB1234", got)
	}

	s.ReleaseTicket()
	if !s.TryClaimTicket("CD5678") {
		t.Fatal("claim after release should succeed")
	}
}

func TestHistoryAppendOnly(t *testing.T) {
	s := NewSession("s", time.Hour)
	s.AppendTurn(models.Turn{Role: models.RoleUser, Text: "hi"})
	s.AppendTurn(models.Turn{Role: models.RoleAssistant, Text: "hello"})

	h := s.History()
	if len(h) != 2 || h[0].Text != "hi" || h[1].Text != "hello" {
		t.Fatalf("history = %+v", h)
	}

	// mutating the returned slice must not touch session state
	h[0].Text = "changed"
	if got := s.History()[0].Text; got != "hi" {
		t.Fatalf("history leaked: %q", got)
	}
}

func TestExpiry(t *testing.T) {
	s := NewSession("s", time.Minute)
	if s.ExpiredAt(time.Now()) {
		t.Fatal("fresh session should not be expired")
	}
	if !s.ExpiredAt(time.Now().Add(2 * time.Minute)) {
		t.Fatal("session should expire after its TTL")
	}
	s.Expire(time.Hour)
	if s.ExpiredAt(time.Now().Add(2 * time.Minute)) {
		t.Fatal("Expire should extend the TTL")
	}
}
