package tests

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/domain/model"
	"storefront/pkg/domain/service"
)

func setupCheckout(clock service.Clock) (service.CheckoutService, *mockProductRepository, *mockOrderRepository, *mockInvoiceSender, *mockEventDispatcher) {
	products := newMockProductRepository()
	orders := newMockOrderRepository()
	sender := &mockInvoiceSender{}
	dispatcher := &mockEventDispatcher{}
	checkout := service.NewCheckoutService(products, orders, sender, dispatcher, clock)
	return checkout, products, orders, sender, dispatcher
}

func seedProduct(t *testing.T, products *mockProductRepository, title string, price float64, fileURL string) *model.Product {
	t.Helper()
	id, err := products.NextID()
	require.NoError(t, err)
	product := &model.Product{
		ID:        id,
		Title:     title,
		Price:     price,
		FileURL:   fileURL,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, products.Create(product))
	return product
}

func fixedClock(at time.Time) service.Clock {
	return func() time.Time { return at }
}

func TestCheckout(t *testing.T) {
	checkout, products, orders, sender, dispatcher := setupCheckout(nil)
	product := seedProduct(t, products, "Ebook", 9.99, "https://cdn/x.pdf")

	order, err := checkout.Checkout(product.ID.String(), "a@b.com")

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, product.ID, order.ProductID)
	assert.Equal(t, "Ebook", order.ProductTitle)
	assert.Equal(t, 9.99, order.Amount)
	assert.Equal(t, "USD", order.Currency)
	assert.Equal(t, "a@b.com", order.BuyerEmail)
	assert.Regexp(t, `^[0-9A-F]{10}$`, order.InvoiceNumber)
	assert.Regexp(t, `^/download/[0-9a-f]{64}$`, order.DownloadURL)
	assert.False(t, order.CreatedAt.IsZero())

	saved, ok := orders.store[order.ID]
	require.True(t, ok)
	assert.Equal(t, order.DownloadURL, saved.DownloadURL)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "a@b.com", sender.sent[0].recipient)
	assert.Contains(t, sender.sent[0].subject, order.InvoiceNumber)
	assert.Contains(t, sender.sent[0].body, order.InvoiceNumber)
	assert.Contains(t, sender.sent[0].body, order.DownloadURL)
	assert.Contains(t, sender.sent[0].body, "$9.99 USD")

	require.Len(t, dispatcher.events, 1)
	placed, ok := dispatcher.events[0].(model.OrderPlaced)
	require.True(t, ok)
	assert.Equal(t, order.ID, placed.OrderID)

	t.Run("Fail on unknown product", func(t *testing.T) {
		before := len(orders.store)
		_, err := checkout.Checkout(uuid.New().String(), "a@b.com")
		assert.ErrorIs(t, err, model.ErrProductNotFound)
		assert.Len(t, orders.store, before)
	})

	t.Run("Fail on malformed product id", func(t *testing.T) {
		before := len(orders.store)
		_, err := checkout.Checkout("not-a-store-key", "a@b.com")
		assert.ErrorIs(t, err, model.ErrProductNotFound)
		assert.Len(t, orders.store, before)
	})

	t.Run("Fail on empty buyer email", func(t *testing.T) {
		_, err := checkout.Checkout(product.ID.String(), "")
		assert.ErrorIs(t, err, service.ErrEmptyBuyerEmail)
	})
}

func TestCheckoutDerivationIsTimeSalted(t *testing.T) {
	first := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	second := first.Add(137 * time.Millisecond)

	products := newMockProductRepository()
	orders := newMockOrderRepository()
	product := seedProduct(t, products, "Ebook", 9.99, "https://cdn/x.pdf")

	clockCalls := 0
	clock := func() time.Time {
		clockCalls++
		if clockCalls == 1 {
			return first
		}
		return second
	}
	checkout := service.NewCheckoutService(products, orders, &mockInvoiceSender{}, &mockEventDispatcher{}, clock)

	one, err := checkout.Checkout(product.ID.String(), "a@b.com")
	require.NoError(t, err)
	two, err := checkout.Checkout(product.ID.String(), "a@b.com")
	require.NoError(t, err)

	assert.NotEqual(t, one.ID, two.ID)
	assert.NotEqual(t, one.InvoiceNumber, two.InvoiceNumber)
	assert.NotEqual(t, one.DownloadURL, two.DownloadURL)
}

func TestCheckoutDerivationIsDeterministic(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 123456000, time.UTC)

	products := newMockProductRepository()
	product := seedProduct(t, products, "Ebook", 9.99, "https://cdn/x.pdf")

	run := func() *model.Order {
		orders := newMockOrderRepository()
		checkout := service.NewCheckoutService(products, orders, &mockInvoiceSender{}, &mockEventDispatcher{}, fixedClock(at))
		order, err := checkout.Checkout(product.ID.String(), "a@b.com")
		require.NoError(t, err)
		return order
	}

	one := run()
	two := run()
	assert.Equal(t, one.InvoiceNumber, two.InvoiceNumber)
	assert.Equal(t, one.DownloadURL, two.DownloadURL)
}

func TestCheckoutSnapshotsProduct(t *testing.T) {
	checkout, products, orders, _, _ := setupCheckout(nil)
	product := seedProduct(t, products, "Ebook", 9.99, "https://cdn/x.pdf")

	order, err := checkout.Checkout(product.ID.String(), "a@b.com")
	require.NoError(t, err)

	// Later catalog edits must not leak into the recorded order.
	products.store[product.ID].Title = "Ebook (2nd edition)"
	products.store[product.ID].Price = 19.99

	saved := orders.store[order.ID]
	assert.Equal(t, "Ebook", saved.ProductTitle)
	assert.Equal(t, 9.99, saved.Amount)
}

func TestCheckoutSurvivesInvoiceEmailFailure(t *testing.T) {
	products := newMockProductRepository()
	orders := newMockOrderRepository()
	sender := &mockInvoiceSender{sendErr: errors.New("smtp unreachable")}
	dispatcher := &mockEventDispatcher{}
	checkout := service.NewCheckoutService(products, orders, sender, dispatcher, nil)
	product := seedProduct(t, products, "Ebook", 9.99, "https://cdn/x.pdf")

	order, err := checkout.Checkout(product.ID.String(), "a@b.com")

	require.NoError(t, err)
	require.NotNil(t, order)
	_, ok := orders.store[order.ID]
	assert.True(t, ok, "order must be persisted despite the failed email")

	var failed *model.InvoiceEmailFailed
	for _, event := range dispatcher.events {
		if e, ok := event.(model.InvoiceEmailFailed); ok {
			failed = &e
			break
		}
	}
	require.NotNil(t, failed)
	assert.Equal(t, order.ID, failed.OrderID)
	assert.Equal(t, "a@b.com", failed.Recipient)
	assert.Equal(t, "smtp unreachable", failed.Reason)
}
