package controller

import (
	"github.com/hupe1980/shopmesh/catalog"
	"github.com/hupe1980/shopmesh/checkout"
	"github.com/hupe1980/shopmesh/order"
)

// ProductView is the catalog entry shape returned by search and the catalog
// resource. Money is rendered as a fixed two-decimal string.
type ProductView struct {
	ProductID   string `json:"product_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	Currency    string `json:"currency"`
}

// ItemRef identifies the product behind a line item.
type ItemRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ItemView is one rendered checkout line.
type ItemView struct {
	Item      ItemRef `json:"item"`
	Quantity  int     `json:"quantity"`
	UnitPrice string  `json:"unit_price"`
	Subtotal  string  `json:"subtotal"`
}

// AddressView mirrors the external address dict.
type AddressView struct {
	Name       string `json:"name,omitempty"`
	Street     string `json:"address_line1"`
	City       string `json:"city"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// CustomerView is the rendered customer details block.
type CustomerView struct {
	Address AddressView `json:"address"`
	Email   string      `json:"email"`
}

// OrderRef is the confirmation embedded in a completed checkout projection.
type OrderRef struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// CheckoutView is the projection returned by get_checkout and embedded in
// every mutating operation's response.
type CheckoutView struct {
	ID           string        `json:"id"`
	Status       string        `json:"status"`
	PaymentState string        `json:"payment_state"`
	LineItems    []ItemView    `json:"line_items"`
	Total        string        `json:"total"`
	Currency     string        `json:"currency"`
	Customer     *CustomerView `json:"customer,omitempty"`
	Order        *OrderRef     `json:"order,omitempty"`
}

// OrderView is the full order confirmation served at orders/{order_id}.
type OrderView struct {
	ID         string       `json:"id"`
	CheckoutID string       `json:"checkout_id"`
	Status     string       `json:"status"`
	LineItems  []ItemView   `json:"line_items"`
	Total      string       `json:"total"`
	Currency   string       `json:"currency"`
	Customer   CustomerView `json:"customer"`
	PlacedAt   string       `json:"placed_at"`
}

func renderProduct(p catalog.Product) ProductView {
	return ProductView{
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		Currency:    p.Currency,
	}
}

func renderItems(items []checkout.LineItem) []ItemView {
	views := make([]ItemView, 0, len(items))
	for _, li := range items {
		views = append(views, ItemView{
			Item:      ItemRef{ID: li.ProductID, Name: li.Name},
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice.StringFixed(2),
			Subtotal:  li.Subtotal().StringFixed(2),
		})
	}
	return views
}

func renderAddress(a checkout.Address) AddressView {
	return AddressView{
		Name:       a.Name,
		Street:     a.Street,
		City:       a.City,
		Region:     a.Region,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

func renderCheckout(snap checkout.Snapshot) CheckoutView {
	view := CheckoutView{
		ID:           snap.ID,
		Status:       string(snap.State),
		PaymentState: string(snap.Payment),
		LineItems:    renderItems(snap.Items),
		Total:        snap.Total().StringFixed(2),
		Currency:     snap.Currency,
	}
	if snap.Customer != nil {
		view.Customer = &CustomerView{
			Address: renderAddress(snap.Customer.Address),
			Email:   snap.Customer.Email,
		}
	}
	if snap.OrderID != "" {
		view.Order = &OrderRef{ID: snap.OrderID, Status: string(order.StatusPlaced)}
	}
	return view
}

func renderOrder(o order.Order) OrderView {
	return OrderView{
		ID:         o.ID,
		CheckoutID: o.CheckoutID,
		Status:     string(o.Status),
		LineItems:  renderItems(o.Items),
		Total:      o.Total.StringFixed(2),
		Currency:   o.Currency,
		Customer: CustomerView{
			Address: renderAddress(o.Customer.Address),
			Email:   o.Customer.Email,
		},
		PlacedAt: o.PlacedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}
