package session_object

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/supportdesk/aisha/models"
	"github.com/supportdesk/aisha/session"
)

// Session holds one conversation's state. History and entries are append-only;
// the ticket flag transitions unset -> set at most once.
type Session struct {
	id        string
	expiresAt time.Time
	lastSeen  time.Time

	turns    []models.Turn
	entries  []session.Entry
	ticketNo string

	mu     sync.RWMutex // guards the fields above
	turnMu sync.Mutex   // serializes a full conversational turn
}

func NewSession(id string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		id:        id,
		expiresAt: now.Add(ttl),
		lastSeen:  now,
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) Expire(ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.expiresAt = now.Add(ttl)
	s.lastSeen = now
}

// ExpiredAt reports whether the session's TTL elapsed before now.
func (s *Session) ExpiredAt(now time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return now.After(s.expiresAt)
}

// LastSeen returns the time of the most recent Ensure for this session.
func (s *Session) LastSeen() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSeen
}

// Lock serializes a whole turn: extract, lookup, append, search, completion
// and the ticket gate read-modify-write this state non-atomically.
func (s *Session) Lock()   { s.turnMu.Lock() }
func (s *Session) Unlock() { s.turnMu.Unlock() }

func (s *Session) History() []models.Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

func (s *Session) AppendTurn(turn models.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, turn)
}

func (s *Session) AddEntry(e session.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
}

func (s *Session) Entries() []session.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]session.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// VectorSearch returns the k stored entries nearest to q by Euclidean
// distance, nearest first. Ties break on lowest insertion index. Fewer than k
// entries returns all of them; an empty store returns nil.
func (s *Session) VectorSearch(q []float32, k int) []session.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if k <= 0 || len(s.entries) == 0 {
		return nil
	}

	type scored struct {
		idx  int
		dist float64
	}
	scoreds := make([]scored, len(s.entries))
	for i, e := range s.entries {
		scoreds[i] = scored{idx: i, dist: l2(q, e.Vec)}
	}
	// stable keeps insertion order among equal distances
	sort.SliceStable(scoreds, func(i, j int) bool { return scoreds[i].dist < scoreds[j].dist })

	if k > len(scoreds) {
		k = len(scoreds)
	}
	out := make([]session.Entry, 0, k)
	for _, sc := range scoreds[:k] {
		out = append(out, s.entries[sc.idx])
	}
	return out
}

// TryClaimTicket atomically sets the session's ticket flag. It returns false
// when a ticket was already recorded for this session.
func (s *Session) TryClaimTicket(ticketNo string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ticketNo != "" {
		return false
	}
	s.ticketNo = ticketNo
	return true
}

// ReleaseTicket clears the flag again when persisting the complaint failed, so
// a later turn may retry.
func (s *Session) ReleaseTicket() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ticketNo = ""
}

func (s *Session) TicketNo() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ticketNo
}

func l2(a, b []float32) float64 {
	var sum float64
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
