package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"storefront/pkg/domain/model"
)

var ErrEmptyBuyerEmail = errors.New("buyer email must not be empty")

const currencyUSD = "USD"

type Event interface {
	Type() string
}

type EventDispatcher interface {
	Dispatch(event Event) error
}

// Clock supplies wall-clock time to time-salted derivations.
type Clock func() time.Time

type CheckoutService interface {
	Checkout(productID, buyerEmail string) (*model.Order, error)
}

func NewCheckoutService(products model.ProductRepository, orders model.OrderRepository, invoices model.InvoiceSender, dispatcher EventDispatcher, clock Clock) CheckoutService {
	if clock == nil {
		clock = time.Now
	}
	return &checkoutService{
		products:   products,
		orders:     orders,
		invoices:   invoices,
		dispatcher: dispatcher,
		clock:      clock,
	}
}

type checkoutService struct {
	products   model.ProductRepository
	orders     model.OrderRepository
	invoices   model.InvoiceSender
	dispatcher EventDispatcher
	clock      Clock
}

func (s *checkoutService) Checkout(productID, buyerEmail string) (*model.Order, error) {
	if buyerEmail == "" {
		return nil, ErrEmptyBuyerEmail
	}

	pid, err := uuid.Parse(productID)
	if err != nil {
		// A malformed id must be indistinguishable from a missing product.
		return nil, model.ErrProductNotFound
	}

	product, err := s.products.Find(pid)
	if err != nil {
		return nil, err
	}

	now := s.clock().UTC()
	invoice := invoiceNumber(buyerEmail, now, productID)
	url := downloadPath(downloadToken(invoice, buyerEmail))

	orderID, err := s.orders.NextID()
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		ID:            orderID,
		ProductID:     product.ID,
		ProductTitle:  product.Title,
		BuyerEmail:    buyerEmail,
		Amount:        product.Price,
		Currency:      currencyUSD,
		InvoiceNumber: invoice,
		DownloadURL:   url,
		CreatedAt:     now,
	}

	if err := s.orders.Create(order); err != nil {
		return nil, err
	}

	s.sendInvoice(order)

	_ = s.dispatcher.Dispatch(model.OrderPlaced{
		OrderID:       orderID,
		ProductID:     product.ID,
		InvoiceNumber: invoice,
		BuyerEmail:    buyerEmail,
	})
	return order, nil
}

// sendInvoice delivers the invoice email. A failed send never fails the
// order; it is reported through the dispatcher and otherwise dropped.
func (s *checkoutService) sendInvoice(order *model.Order) {
	subject := fmt.Sprintf("Your invoice #%s", order.InvoiceNumber)
	if err := s.invoices.Send(order.BuyerEmail, subject, invoiceBody(order)); err != nil {
		_ = s.dispatcher.Dispatch(model.InvoiceEmailFailed{
			OrderID:   order.ID,
			Recipient: order.BuyerEmail,
			Reason:    err.Error(),
		})
	}
}

func invoiceBody(order *model.Order) string {
	return fmt.Sprintf(
		"Thanks for your purchase!\n\n"+
			"Product: %s\n"+
			"Amount: $%v %s\n"+
			"Invoice: %s\n\n"+
			"Download your file: %s\n",
		order.ProductTitle, order.Amount, order.Currency, order.InvoiceNumber, order.DownloadURL,
	)
}
