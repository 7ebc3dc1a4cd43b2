package model

import "github.com/google/uuid"

type ProductCreated struct {
	ProductID uuid.UUID
	Title     string
}

func (e ProductCreated) Type() string { return "ProductCreated" }

type ProductDeleted struct {
	ProductID uuid.UUID
}

func (e ProductDeleted) Type() string { return "ProductDeleted" }

type OrderPlaced struct {
	OrderID       uuid.UUID
	ProductID     uuid.UUID
	InvoiceNumber string
	BuyerEmail    string
}

func (e OrderPlaced) Type() string { return "OrderPlaced" }

type InvoiceEmailFailed struct {
	OrderID   uuid.UUID
	Recipient string
	Reason    string
}

func (e InvoiceEmailFailed) Type() string { return "InvoiceEmailFailed" }
