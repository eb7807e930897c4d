package models

import (
	"fmt"
	"time"
)

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single chat message in the wire format the completion service expects.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Turn is one entry of a session's conversation history.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Customer mirrors a row of the customers table. Field order matches the
// canonical context sentence.
type Customer struct {
	UserID       string    `json:"user_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	RegisteredAt time.Time `json:"registered_at"`
}

// ContextSentence renders the customer as the sentence stored in the session
// vector store and shown to the model as retrieved context.
func (c Customer) ContextSentence() string {
	return fmt.Sprintf("User ID: %s, Name: %s %s, Email: %s, Phone: %s, Address: %s, Registration Date: %s",
		c.UserID, c.FirstName, c.LastName, c.Email, c.Phone, c.Address, c.RegisteredAt.Format("2006-01-02"))
}

// Order mirrors a row of the orders table.
type Order struct {
	OrderID         string    `json:"order_id"`
	UserID          string    `json:"user_id"`
	OrderDate       time.Time `json:"order_date"`
	TotalAmount     float64   `json:"total_amount"`
	Status          string    `json:"status"`
	ShippingAddress string    `json:"shipping_address"`
}

// ContextSentence renders the order as the sentence stored in the session
// vector store.
func (o Order) ContextSentence() string {
	return fmt.Sprintf("Order ID: %s, User ID: %s, Order Date: %s, Total Amount: %.2f, Status: %s, Shipping Address: %s",
		o.OrderID, o.UserID, o.OrderDate.Format("2006-01-02"), o.TotalAmount, o.Status, o.ShippingAddress)
}

// Complaint is the record persisted when the ticket gate fires. Phone is empty
// when no phone number was present in the retrieved context.
type Complaint struct {
	TicketNo string `json:"ticket_no"`
	Phone    string `json:"phone,omitempty"`
	Issue    string `json:"issue"`
}
