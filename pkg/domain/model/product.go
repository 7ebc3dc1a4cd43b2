package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrProductNotFound = errors.New("product not found")

type Product struct {
	ID          uuid.UUID
	Title       string
	Description string
	Price       float64
	FileURL     string
	CreatedAt   time.Time
}

type ProductRepository interface {
	NextID() (uuid.UUID, error)
	Create(product *Product) error
	Find(id uuid.UUID) (*Product, error)
	FindAll() ([]*Product, error)
	Delete(id uuid.UUID) error
}
