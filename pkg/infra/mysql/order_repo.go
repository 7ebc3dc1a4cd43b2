package mysql

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"storefront/pkg/domain/model"
)

func NewOrderRepository(db *sqlx.DB) model.OrderRepository {
	return &orderRepository{db: db}
}

type orderRepository struct {
	db *sqlx.DB
}

type orderRow struct {
	ID            string    `db:"id"`
	ProductID     string    `db:"product_id"`
	ProductTitle  string    `db:"product_title"`
	BuyerEmail    string    `db:"buyer_email"`
	Amount        float64   `db:"amount"`
	Currency      string    `db:"currency"`
	InvoiceNumber string    `db:"invoice_number"`
	DownloadURL   string    `db:"download_url"`
	CreatedAt     time.Time `db:"created_at"`
}

func (r *orderRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *orderRepository) Create(order *model.Order) error {
	const query = `
		INSERT INTO orders (id, product_id, product_title, buyer_email, amount,
		                    currency, invoice_number, download_url, created_at)
		VALUES (:id, :product_id, :product_title, :buyer_email, :amount,
		        :currency, :invoice_number, :download_url, :created_at)`

	_, err := r.db.NamedExec(query, orderRow{
		ID:            order.ID.String(),
		ProductID:     order.ProductID.String(),
		ProductTitle:  order.ProductTitle,
		BuyerEmail:    order.BuyerEmail,
		Amount:        order.Amount,
		Currency:      order.Currency,
		InvoiceNumber: order.InvoiceNumber,
		DownloadURL:   order.DownloadURL,
		CreatedAt:     order.CreatedAt,
	})
	return errors.Wrap(err, "failed to insert order")
}

func (r *orderRepository) Find(id uuid.UUID) (*model.Order, error) {
	return r.findOne(`WHERE id = ?`, id.String())
}

func (r *orderRepository) FindByDownloadURL(downloadURL string) (*model.Order, error) {
	return r.findOne(`WHERE download_url = ?`, downloadURL)
}

func (r *orderRepository) findOne(where string, arg interface{}) (*model.Order, error) {
	query := `
		SELECT id, product_id, product_title, buyer_email, amount,
		       currency, invoice_number, download_url, created_at
		FROM orders ` + where

	var row orderRow
	if err := r.db.Get(&row, query, arg); err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrOrderNotFound
		}
		return nil, errors.Wrap(err, "failed to find order")
	}

	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "corrupt order id %q", row.ID)
	}
	productID, err := uuid.Parse(row.ProductID)
	if err != nil {
		return nil, errors.Wrapf(err, "corrupt product id %q on order %s", row.ProductID, row.ID)
	}

	return &model.Order{
		ID:            id,
		ProductID:     productID,
		ProductTitle:  row.ProductTitle,
		BuyerEmail:    row.BuyerEmail,
		Amount:        row.Amount,
		Currency:      row.Currency,
		InvoiceNumber: row.InvoiceNumber,
		DownloadURL:   row.DownloadURL,
		CreatedAt:     row.CreatedAt,
	}, nil
}
