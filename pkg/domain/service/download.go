package service

import (
	"storefront/pkg/domain/model"
)

type DownloadService interface {
	ResolveDownload(token string) (string, error)
}

func NewDownloadService(orders model.OrderRepository, products model.ProductRepository) DownloadService {
	return &downloadService{orders: orders, products: products}
}

type downloadService struct {
	orders   model.OrderRepository
	products model.ProductRepository
}

// ResolveDownload exchanges a download token for the purchased file URL.
// Tokens are not consumed: a valid token resolves any number of times.
func (s *downloadService) ResolveDownload(token string) (string, error) {
	order, err := s.orders.FindByDownloadURL(downloadPath(token))
	if err != nil {
		return "", err
	}

	// The order snapshots the product, but the file location is read live: an
	// order pointing at a deleted product is a reportable inconsistency.
	product, err := s.products.Find(order.ProductID)
	if err != nil {
		return "", err
	}

	return product.FileURL, nil
}
