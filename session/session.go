package session

import (
	"time"

	"github.com/supportdesk/aisha/models"
)

// Entry packs the rendered fact and its embedding in one record so the vector
// index and the display text cannot drift apart. Phone is captured at store
// time for the facts that carry one; the ticket gate reads it from here
// instead of re-parsing prose.
type Entry struct {
	ID    string
	Text  string
	Phone string
	Vec   []float32
}

// Store is the session registry: one logical conversation per opaque
// caller-supplied key. The empty key is a valid, distinct session.
type Store interface {
	Ensure(id string) Session
	Get(id string) Session
	Len() int
}

// Session owns one conversation's state: history, vector entries and the
// ticket flag. Lock serializes a whole conversational turn; individual
// operations are additionally safe on their own.
type Session interface {
	ID() string
	Expire(ttl time.Duration)

	Lock()
	Unlock()

	History() []models.Turn
	AppendTurn(turn models.Turn)

	AddEntry(e Entry)
	Entries() []Entry
	VectorSearch(q []float32, k int) []Entry

	TryClaimTicket(ticketNo string) bool
	ReleaseTicket()
	TicketNo() string
}
