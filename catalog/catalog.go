package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/pulsepixeltech/chatcore/core"
)

// ErrNotFound is returned when a lookup matches nothing.
var ErrNotFound = errors.New("catalog: not found")

// Product is one sellable catalog item. Prices are in INR.
type Product struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Brand    string   `json:"brand"`
	Price    float64  `json:"price"`
	Features []string `json:"features,omitempty"`
	Rating   float64  `json:"rating,omitempty"`
	InStock  bool     `json:"in_stock"`
}

// OrderStatus is the fulfillment state of an order.
type OrderStatus string

const (
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderInTransit  OrderStatus = "in_transit"
	OrderDelivered  OrderStatus = "delivered"
)

// Order is one customer order visible to the chat assistant.
type Order struct {
	Number            string      `json:"number"`
	Status            OrderStatus `json:"status"`
	Items             []string    `json:"items"`
	EstimatedDelivery time.Time   `json:"estimated_delivery,omitzero"`
}

// FAQ is one frequently-asked-question entry. Topic is a short routing key
// ("shipping", "returns") matched against the user's question.
type FAQ struct {
	Topic    string `json:"topic"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Query narrows a product search. Zero-valued fields do not filter. Budget is
// interpreted through BudgetKind the same way extracted entities are.
type Query struct {
	Category   string
	Brand      string
	Budget     float64
	BudgetKind core.BudgetKind
	Features   []string
	Limit      int
}

// Catalog is the read-side contract the chat engine depends on.
type Catalog interface {
	// SearchProducts returns in-stock products matching the query, best
	// rated first.
	SearchProducts(ctx context.Context, q Query) ([]Product, error)

	// GetProducts resolves product ids in order. Unknown ids yield
	// ErrNotFound.
	GetProducts(ctx context.Context, ids []string) ([]Product, error)

	// GetOrder looks up an order by its number, case-insensitively.
	GetOrder(ctx context.Context, number string) (Order, error)

	// FAQs returns all FAQ entries.
	FAQs(ctx context.Context) ([]FAQ, error)
}
