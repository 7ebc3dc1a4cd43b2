package mysql

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"storefront/pkg/domain/model"
)

func NewProductRepository(db *sqlx.DB) model.ProductRepository {
	return &productRepository{db: db}
}

type productRepository struct {
	db *sqlx.DB
}

type productRow struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Price       float64   `db:"price"`
	FileURL     string    `db:"file_url"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r *productRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *productRepository) Create(product *model.Product) error {
	const query = `
		INSERT INTO product (id, title, description, price, file_url, created_at)
		VALUES (:id, :title, :description, :price, :file_url, :created_at)`

	_, err := r.db.NamedExec(query, productRow{
		ID:          product.ID.String(),
		Title:       product.Title,
		Description: product.Description,
		Price:       product.Price,
		FileURL:     product.FileURL,
		CreatedAt:   product.CreatedAt,
	})
	return errors.Wrap(err, "failed to insert product")
}

func (r *productRepository) Find(id uuid.UUID) (*model.Product, error) {
	const query = `
		SELECT id, title, description, price, file_url, created_at
		FROM product
		WHERE id = ?`

	var row productRow
	if err := r.db.Get(&row, query, id.String()); err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrProductNotFound
		}
		return nil, errors.Wrap(err, "failed to find product")
	}
	return hydrateProduct(&row)
}

func (r *productRepository) FindAll() ([]*model.Product, error) {
	const query = `
		SELECT id, title, description, price, file_url, created_at
		FROM product
		ORDER BY created_at`

	var rows []productRow
	if err := r.db.Select(&rows, query); err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	products := make([]*model.Product, 0, len(rows))
	for i := range rows {
		product, err := hydrateProduct(&rows[i])
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

func (r *productRepository) Delete(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM product WHERE id = ?`, id.String())
	if err != nil {
		return errors.Wrap(err, "failed to delete product")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to delete product")
	}
	if affected == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

func hydrateProduct(row *productRow) (*model.Product, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "corrupt product id %q", row.ID)
	}
	return &model.Product{
		ID:          id,
		Title:       row.Title,
		Description: row.Description,
		Price:       row.Price,
		FileURL:     row.FileURL,
		CreatedAt:   row.CreatedAt,
	}, nil
}
