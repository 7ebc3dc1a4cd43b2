package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"storefront/pkg/domain/model"
)

var (
	ErrEmptyTitle    = errors.New("product title must not be empty")
	ErrNegativePrice = errors.New("product price cannot be negative")
	ErrEmptyFileURL  = errors.New("product file url must not be empty")
)

type CatalogService interface {
	CreateProduct(title, description string, price float64, fileURL string) (*model.Product, error)
	ListProducts() ([]*model.Product, error)
	DeleteProduct(productID string) error
}

func NewCatalogService(repo model.ProductRepository, dispatcher EventDispatcher) CatalogService {
	return &catalogService{repo: repo, dispatcher: dispatcher}
}

type catalogService struct {
	repo       model.ProductRepository
	dispatcher EventDispatcher
}

func (s *catalogService) CreateProduct(title, description string, price float64, fileURL string) (*model.Product, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if price < 0 {
		return nil, ErrNegativePrice
	}
	if fileURL == "" {
		return nil, ErrEmptyFileURL
	}

	productID, err := s.repo.NextID()
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		ID:          productID,
		Title:       title,
		Description: description,
		Price:       price,
		FileURL:     fileURL,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(product); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.ProductCreated{ProductID: productID, Title: title})
	return product, nil
}

func (s *catalogService) ListProducts() ([]*model.Product, error) {
	return s.repo.FindAll()
}

func (s *catalogService) DeleteProduct(productID string) error {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return model.ErrProductNotFound
	}

	if err := s.repo.Delete(pid); err != nil {
		return err
	}

	_ = s.dispatcher.Dispatch(model.ProductDeleted{ProductID: pid})
	return nil
}
