// Package tickets enforces at-most-one complaint record per session and
// rewrites the model's reply so the bookkeeping line never reaches the user.
package tickets

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/supportdesk/aisha/internal/extract"
	"github.com/supportdesk/aisha/models"
	"github.com/supportdesk/aisha/session"
)

// ComplaintStore persists complaint records.
type ComplaintStore interface {
	InsertComplaint(ctx context.Context, c models.Complaint) error
}

// Claimer coordinates the ticket claim across replicas. The session object's
// flag is always the in-process guard; a Claimer adds a shared one on top.
type Claimer interface {
	TryClaim(ctx context.Context, sessionID, ticketNo string) (bool, error)
	Release(ctx context.Context, sessionID string) error
}

type Gate struct {
	Store  ComplaintStore
	Claims Claimer // optional, nil keeps the claim in-process only
	Logger *log.Logger
}

// Process scans the model's reply for a ticket code. On the first hit for a
// session it persists a complaint built from the reply and the retrieved
// context entries, then strips the issue clause from the reply. Any later hit
// passes through unchanged. The returned reply is always usable; a non-nil
// error only signals that persistence was skipped this turn.
func (g *Gate) Process(ctx context.Context, sess session.Session, reply string, retrieved []session.Entry) (string, error) {
	ticketNo := extract.TicketNo(reply)
	if ticketNo == "" {
		return reply, nil
	}
	if !sess.TryClaimTicket(ticketNo) {
		return reply, nil
	}

	if g.Claims != nil {
		ok, err := g.Claims.TryClaim(ctx, sess.ID(), ticketNo)
		if err != nil {
			sess.ReleaseTicket()
			return reply, fmt.Errorf("ticket claim: %w", err)
		}
		if !ok {
			// another replica already recorded a ticket for this session;
			// keep the local flag set so this one stops trying too
			return reply, nil
		}
	}

	issue := extract.Issue(reply)
	phone := firstPhone(retrieved)
	if err := g.Store.InsertComplaint(ctx, models.Complaint{TicketNo: ticketNo, Phone: phone, Issue: issue}); err != nil {
		sess.ReleaseTicket()
		if g.Claims != nil {
			_ = g.Claims.Release(ctx, sess.ID())
		}
		return reply, fmt.Errorf("persist complaint: %w", err)
	}
	ticketsIssued.Inc()
	if g.Logger != nil {
		g.Logger.Printf("complaint recorded: ticket=%s session=%q", ticketNo, sess.ID())
	}

	cleaned := strings.Replace(reply, " Issue: "+issue+".", "", 1)
	return strings.TrimSpace(cleaned), nil
}

// firstPhone returns the phone captured on the first retrieved entry that has
// one. The field is set when the fact is stored, so no prose is re-parsed here.
func firstPhone(entries []session.Entry) string {
	for _, e := range entries {
		if e.Phone != "" {
			return e.Phone
		}
	}
	return ""
}
