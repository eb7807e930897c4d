package chat

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/supportdesk/aisha/internal/extract"
	"github.com/supportdesk/aisha/internal/store"
	"github.com/supportdesk/aisha/internal/tickets"
	"github.com/supportdesk/aisha/models"
	"github.com/supportdesk/aisha/provider"
	"github.com/supportdesk/aisha/session"
	"github.com/supportdesk/aisha/tools/embedding"
)

// RecordStore is the read side of the relational collaborator.
type RecordStore interface {
	GetCustomerByPhone(ctx context.Context, phone string) (models.Customer, error)
	GetOrderByID(ctx context.Context, orderID string) (models.Order, error)
}

// Manager orchestrates one conversational turn: entity extraction, record
// lookup, fact storage, retrieval, prompt assembly, the completion call,
// history bookkeeping and the ticket gate.
type Manager struct {
	Sessions        session.Store
	Records         RecordStore
	Embed           *embedding.Embedding
	LLM             provider.Provider
	Gate            *tickets.Gate
	TopK            int
	DefaultLanguage string
	Logger          *log.Logger
}

// HandleTurn runs a full turn for (sessionID, content). The whole turn holds
// the session's lock, so concurrent turns for the same session serialize while
// different sessions proceed in parallel.
//
// A completion-service failure is returned as an error and leaves the
// history untouched; it is never recorded as an assistant turn.
func (m *Manager) HandleTurn(ctx context.Context, sessionID, content, language string) (string, error) {
	if language == "" {
		language = m.DefaultLanguage
	}
	if language == "" {
		language = "en"
	}
	turnsTotal.Inc()

	sess := m.Sessions.Ensure(sessionID)
	sess.Lock()
	defer sess.Unlock()

	if err := m.collectFacts(ctx, sess, content); err != nil {
		return "", err
	}

	hits, err := m.retrieve(ctx, sess, content)
	if err != nil {
		return "", err
	}

	msgs := BuildMessages(language, ContextBlock(hits), sess.History(), content)

	reply, err := m.LLM.Complete(ctx, msgs)
	if err != nil {
		completionFailures.Inc()
		return "", fmt.Errorf("completion service: %w", err)
	}

	sess.AppendTurn(models.Turn{Role: models.RoleUser, Text: content})
	sess.AppendTurn(models.Turn{Role: models.RoleAssistant, Text: reply})

	cleaned, gerr := m.Gate.Process(ctx, sess, reply, hits)
	if gerr != nil {
		m.logf("ticket gate for session %q: %v", sess.ID(), gerr)
	}
	return cleaned, nil
}

// collectFacts tries both identifier patterns independently every turn,
// regardless of whether the other matched.
func (m *Manager) collectFacts(ctx context.Context, sess session.Session, content string) error {
	if phone := extract.PhoneNumber(content); phone != "" {
		cust, err := m.Records.GetCustomerByPhone(ctx, phone)
		switch {
		case err == nil:
			if err := m.addFact(ctx, sess, cust.ContextSentence(), cust.Phone); err != nil {
				return err
			}
		case errors.Is(err, store.ErrNotFound):
			// negative fact, so a later query about the same number retrieves
			// the miss instead of re-querying
			if err := m.addFact(ctx, sess, fmt.Sprintf("Customer with phone number %s not found", phone), ""); err != nil {
				return err
			}
		default:
			return fmt.Errorf("customer lookup: %w", err)
		}
	}

	if orderID := extract.OrderID(content); orderID != "" {
		order, err := m.Records.GetOrderByID(ctx, orderID)
		switch {
		case err == nil:
			if err := m.addFact(ctx, sess, order.ContextSentence(), ""); err != nil {
				return err
			}
		case errors.Is(err, store.ErrNotFound):
			if err := m.addFact(ctx, sess, fmt.Sprintf("Order with orderId %s not found", orderID), ""); err != nil {
				return err
			}
		default:
			return fmt.Errorf("order lookup: %w", err)
		}
	}
	return nil
}

func (m *Manager) addFact(ctx context.Context, sess session.Session, text, phone string) error {
	vec, err := m.Embed.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("embed fact: %w", err)
	}
	id := uuid.NewString()
	sess.AddEntry(session.Entry{ID: id, Text: text, Phone: phone, Vec: vec})
	m.logf("fact %s stored for session %q: %s", id, sess.ID(), text)
	return nil
}

func (m *Manager) retrieve(ctx context.Context, sess session.Session, query string) ([]session.Entry, error) {
	vec, err := m.Embed.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	k := m.TopK
	if k <= 0 {
		k = 5
	}
	hits := sess.VectorSearch(vec, k)
	if len(hits) > 0 {
		m.logf("retrieved %v for session %q", entryIDs(hits), sess.ID())
	}
	return hits, nil
}

func entryIDs(entries []session.Entry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids
}

func (m *Manager) logf(format string, args ...interface{}) {
	if m.Logger != nil {
		m.Logger.Printf(format, args...)
	}
}
