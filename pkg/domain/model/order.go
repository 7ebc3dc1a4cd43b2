package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrOrderNotFound = errors.New("order not found")

// Order is an immutable record of a single purchase. Product title and price
// are snapshotted at checkout time so later catalog edits never change what
// the buyer was charged for.
type Order struct {
	ID            uuid.UUID
	ProductID     uuid.UUID
	ProductTitle  string
	BuyerEmail    string
	Amount        float64
	Currency      string
	InvoiceNumber string
	DownloadURL   string
	CreatedAt     time.Time
}

type OrderRepository interface {
	NextID() (uuid.UUID, error)
	Create(order *Order) error
	Find(id uuid.UUID) (*Order, error)
	FindByDownloadURL(downloadURL string) (*Order, error)
}

// InvoiceSender delivers the purchase invoice to the buyer. Delivery is
// best-effort: callers must not fail an order on a send error.
type InvoiceSender interface {
	Send(recipient, subject, body string) error
}
