package tests

import (
	"errors"

	"github.com/google/uuid"

	"storefront/pkg/domain/model"
	"storefront/pkg/domain/service"
)

var _ model.ProductRepository = &mockProductRepository{}

type mockProductRepository struct {
	store map[uuid.UUID]*model.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{store: make(map[uuid.UUID]*model.Product)}
}

func (m *mockProductRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (m *mockProductRepository) Create(product *model.Product) error {
	if _, exists := m.store[product.ID]; exists {
		return errors.New("product with this ID already exists")
	}
	stored := *product
	m.store[product.ID] = &stored
	return nil
}

func (m *mockProductRepository) Find(id uuid.UUID) (*model.Product, error) {
	if product, ok := m.store[id]; ok {
		clone := *product
		return &clone, nil
	}
	return nil, model.ErrProductNotFound
}

func (m *mockProductRepository) FindAll() ([]*model.Product, error) {
	products := make([]*model.Product, 0, len(m.store))
	for _, product := range m.store {
		clone := *product
		products = append(products, &clone)
	}
	return products, nil
}

func (m *mockProductRepository) Delete(id uuid.UUID) error {
	if _, ok := m.store[id]; !ok {
		return model.ErrProductNotFound
	}
	delete(m.store, id)
	return nil
}

var _ model.OrderRepository = &mockOrderRepository{}

type mockOrderRepository struct {
	store map[uuid.UUID]*model.Order
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{store: make(map[uuid.UUID]*model.Order)}
}

func (m *mockOrderRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (m *mockOrderRepository) Create(order *model.Order) error {
	if _, exists := m.store[order.ID]; exists {
		return errors.New("order with this ID already exists")
	}
	stored := *order
	m.store[order.ID] = &stored
	return nil
}

func (m *mockOrderRepository) Find(id uuid.UUID) (*model.Order, error) {
	if order, ok := m.store[id]; ok {
		clone := *order
		return &clone, nil
	}
	return nil, model.ErrOrderNotFound
}

func (m *mockOrderRepository) FindByDownloadURL(downloadURL string) (*model.Order, error) {
	for _, order := range m.store {
		if order.DownloadURL == downloadURL {
			clone := *order
			return &clone, nil
		}
	}
	return nil, model.ErrOrderNotFound
}

var _ model.InvoiceSender = &mockInvoiceSender{}

type sentInvoice struct {
	recipient string
	subject   string
	body      string
}

type mockInvoiceSender struct {
	sent    []sentInvoice
	sendErr error
}

func (m *mockInvoiceSender) Send(recipient, subject, body string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, sentInvoice{recipient: recipient, subject: subject, body: body})
	return nil
}

var _ service.EventDispatcher = &mockEventDispatcher{}

type mockEventDispatcher struct {
	events []service.Event
}

func (m *mockEventDispatcher) Dispatch(event service.Event) error {
	m.events = append(m.events, event)
	return nil
}

func (m *mockEventDispatcher) Reset() {
	m.events = nil
}
