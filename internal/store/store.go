package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/supportdesk/aisha/models"
)

// ErrNotFound is returned when a lookup matches no record. A miss is recorded
// as a negative fact upstream, not surfaced as a failure.
var ErrNotFound = errors.New("record not found")

type Store struct {
	DB *sql.DB
}

// NewWithDSN opens a postgres connection with the provided DSN and verifies it.
func NewWithDSN(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{DB: db}, nil
}

// GetCustomerByPhone looks up the customer record for an exact phone match.
func (s *Store) GetCustomerByPhone(ctx context.Context, phone string) (models.Customer, error) {
	var c models.Customer
	err := s.DB.QueryRowContext(ctx, `
SELECT user_id, first_name, last_name, email, phone, address, registration_date
FROM customers WHERE phone=$1
`, phone).Scan(&c.UserID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Address, &c.RegisteredAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Customer{}, ErrNotFound
	}
	if err != nil {
		return models.Customer{}, fmt.Errorf("query customer: %w", err)
	}
	return c, nil
}

// GetOrderByID looks up the order record for an exact order code match.
func (s *Store) GetOrderByID(ctx context.Context, orderID string) (models.Order, error) {
	var o models.Order
	err := s.DB.QueryRowContext(ctx, `
SELECT order_id, user_id, order_date, total_amount, status, shipping_address
FROM orders WHERE order_id=$1
`, orderID).Scan(&o.OrderID, &o.UserID, &o.OrderDate, &o.TotalAmount, &o.Status, &o.ShippingAddress)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Order{}, ErrNotFound
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("query order: %w", err)
	}
	return o, nil
}

// InsertComplaint persists a complaint keyed uniquely by ticket number. A
// duplicate ticket number is a store-level error.
func (s *Store) InsertComplaint(ctx context.Context, c models.Complaint) error {
	if c.TicketNo == "" {
		return fmt.Errorf("ticket_no required")
	}
	phone := sql.NullString{String: c.Phone, Valid: c.Phone != ""}
	_, err := s.DB.ExecContext(ctx, `
INSERT INTO complaints (ticket_no, phone, issue, created_at)
VALUES ($1, $2, $3, NOW())
`, c.TicketNo, phone, c.Issue)
	if err != nil {
		return fmt.Errorf("insert complaint: %w", err)
	}
	return nil
}
