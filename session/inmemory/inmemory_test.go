package inmemory

import (
	"testing"
	"time"

	"github.com/supportdesk/aisha/session"
)

func fakeClock(start time.Time) func() time.Time {
	now := start
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func TestEnsureIdempotent(t *testing.T) {
	st := NewStore(time.Hour, 10)

	a := st.Ensure("a")
	a.AddEntry(session.Entry{Text: "fact", Vec: []float32{1}})

	again := st.Ensure("a")
	if len(again.Entries()) != 1 {
		t.Fatal("Ensure should return the existing session")
	}
	if st.Len() != 1 {
		t.Fatalf("Len = %d, want 1", st.Len())
	}
}

func TestSessionIsolation(t *testing.T) {
	st := NewStore(time.Hour, 10)

	a := st.Ensure("a")
	b := st.Ensure("b")
	a.AddEntry(session.Entry{Text: "a-fact", Vec: []float32{1}})

	if len(b.Entries()) != 0 {
		t.Fatal("entries leaked across sessions")
	}
}

func TestEmptyKeyIsAValidDistinctSession(t *testing.T) {
	st := NewStore(time.Hour, 10)

	empty := st.Ensure("")
	named := st.Ensure("a")
	empty.AddEntry(session.Entry{Text: "fact", Vec: []float32{1}})

	if len(named.Entries()) != 0 {
		t.Fatal("empty-key session must be distinct")
	}
	if st.Len() != 2 {
		t.Fatalf("Len = %d, want 2", st.Len())
	}
}

func TestTTLExpiry(t *testing.T) {
	st := NewStore(time.Minute, 10)
	st.now = fakeClock(time.Now())

	st.Ensure("a")
	if st.Get("a") == nil {
		t.Fatal("session should be live")
	}

	st.now = fakeClock(time.Now().Add(2 * time.Minute))
	if st.Get("a") != nil {
		t.Fatal("expired session should not be returned")
	}

	// ensuring anything sweeps the expired session out
	st.Ensure("b")
	if st.Len() != 1 {
		t.Fatalf("Len = %d, want 1 after sweep", st.Len())
	}
}

func TestLRUEvictionAtCapacity(t *testing.T) {
	st := NewStore(time.Hour, 2)
	st.now = fakeClock(time.Now())

	st.Ensure("a")
	st.Ensure("b")
	st.Ensure("a") // refresh a, b is now the oldest
	st.Ensure("c")

	if st.Get("b") != nil {
		t.Fatal("least recently ensured session should be evicted")
	}
	if st.Get("a") == nil || st.Get("c") == nil {
		t.Fatal("recently used sessions should survive eviction")
	}
	if st.Len() != 2 {
		t.Fatalf("Len = %d, want 2", st.Len())
	}
}
