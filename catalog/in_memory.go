package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pulsepixeltech/chatcore/core"
)

// InMemoryCatalog is a Catalog backed by in-process slices. It is immutable
// after construction and therefore safe for concurrent use.
type InMemoryCatalog struct {
	products []Product
	orders   map[string]Order
	faqs     []FAQ
}

var _ Catalog = (*InMemoryCatalog)(nil)

// Options seeds the in-memory catalog. Empty fields fall back to the built-in
// demo inventory.
type Options struct {
	Products []Product
	Orders   []Order
	FAQs     []FAQ
}

// NewInMemoryCatalog creates a catalog, seeding the demo inventory for any
// unset option.
func NewInMemoryCatalog(optFns ...func(o *Options)) *InMemoryCatalog {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Products == nil {
		opts.Products = demoProducts()
	}
	if opts.Orders == nil {
		opts.Orders = demoOrders()
	}
	if opts.FAQs == nil {
		opts.FAQs = demoFAQs()
	}

	orders := make(map[string]Order, len(opts.Orders))
	for _, o := range opts.Orders {
		orders[strings.ToUpper(o.Number)] = o
	}

	return &InMemoryCatalog{
		products: opts.Products,
		orders:   orders,
		faqs:     opts.FAQs,
	}
}

// SearchProducts implements Catalog.
func (c *InMemoryCatalog) SearchProducts(ctx context.Context, q Query) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var matches []Product
	for _, p := range c.products {
		if !p.InStock {
			continue
		}
		if q.Category != "" && !strings.EqualFold(p.Category, q.Category) {
			continue
		}
		if q.Brand != "" && !strings.EqualFold(p.Brand, q.Brand) {
			continue
		}
		if !withinBudget(p.Price, q.Budget, q.BudgetKind) {
			continue
		}
		if !hasFeatures(p.Features, q.Features) {
			continue
		}
		matches = append(matches, p)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Rating > matches[j].Rating
	})

	if q.Limit > 0 && len(matches) > q.Limit {
		matches = matches[:q.Limit]
	}
	return matches, nil
}

// GetProducts implements Catalog.
func (c *InMemoryCatalog) GetProducts(ctx context.Context, ids []string) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	products := make([]Product, 0, len(ids))
	for _, id := range ids {
		found := false
		for _, p := range c.products {
			if p.ID == id {
				products = append(products, p)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("product %q: %w", id, ErrNotFound)
		}
	}
	return products, nil
}

// GetOrder implements Catalog.
func (c *InMemoryCatalog) GetOrder(ctx context.Context, number string) (Order, error) {
	if err := ctx.Err(); err != nil {
		return Order{}, err
	}

	order, ok := c.orders[strings.ToUpper(number)]
	if !ok {
		return Order{}, fmt.Errorf("order %q: %w", number, ErrNotFound)
	}
	return order, nil
}

// FAQs implements Catalog.
func (c *InMemoryCatalog) FAQs(ctx context.Context) ([]FAQ, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	faqs := make([]FAQ, len(c.faqs))
	copy(faqs, c.faqs)
	return faqs, nil
}

func withinBudget(price, budget float64, kind core.BudgetKind) bool {
	if budget <= 0 {
		return true
	}
	if kind == core.BudgetFloor {
		return price >= budget
	}
	return price <= budget
}

func hasFeatures(have, want []string) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if strings.EqualFold(h, w) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func demoProducts() []Product {
	return []Product{
		{ID: "lap-001", Name: "Predator Helios Neo 16", Category: "laptop", Brand: "acer",
			Price: 89999, Features: []string{"gaming", "performance"}, Rating: 4.5, InStock: true},
		{ID: "lap-002", Name: "ASUS TUF Gaming F15", Category: "laptop", Brand: "asus",
			Price: 64990, Features: []string{"gaming", "budget"}, Rating: 4.3, InStock: true},
		{ID: "lap-003", Name: "MacBook Air M3", Category: "laptop", Brand: "apple",
			Price: 114900, Features: []string{"lightweight", "portable"}, Rating: 4.8, InStock: true},
		{ID: "lap-004", Name: "Lenovo IdeaPad Slim 5", Category: "laptop", Brand: "lenovo",
			Price: 52990, Features: []string{"portable", "budget"}, Rating: 4.1, InStock: true},
		{ID: "pho-001", Name: "Galaxy S24", Category: "smartphone", Brand: "samsung",
			Price: 74999, Features: []string{"camera", "photography"}, Rating: 4.6, InStock: true},
		{ID: "pho-002", Name: "iPhone 15", Category: "smartphone", Brand: "apple",
			Price: 79900, Features: []string{"camera", "photography"}, Rating: 4.7, InStock: true},
		{ID: "pho-003", Name: "Redmi Note 13 Pro", Category: "smartphone", Brand: "xiaomi",
			Price: 24999, Features: []string{"budget", "camera"}, Rating: 4.2, InStock: true},
		{ID: "pho-004", Name: "Pixel 8a", Category: "smartphone", Brand: "google",
			Price: 52999, Features: []string{"camera", "photography", "compact"}, Rating: 4.5, InStock: false},
		{ID: "aud-001", Name: "Sony WH-1000XM5", Category: "headphones", Brand: "sony",
			Price: 29990, Features: []string{"noise-cancelling", "wireless"}, Rating: 4.7, InStock: true},
		{ID: "aud-002", Name: "JBL Tune 770NC", Category: "headphones", Brand: "jbl",
			Price: 7999, Features: []string{"noise-cancelling", "wireless", "budget"}, Rating: 4.0, InStock: true},
		{ID: "tab-001", Name: "iPad Air 11", Category: "tablet", Brand: "apple",
			Price: 59900, Features: []string{"portable", "stylus"}, Rating: 4.6, InStock: true},
		{ID: "cam-001", Name: "Canon EOS R50", Category: "camera", Brand: "canon",
			Price: 75990, Features: []string{"photography", "mirrorless"}, Rating: 4.4, InStock: true},
	}
}

func demoOrders() []Order {
	return []Order{
		{Number: "ORD12345", Status: OrderInTransit,
			Items:             []string{"ASUS TUF Gaming F15"},
			EstimatedDelivery: time.Now().UTC().Add(48 * time.Hour).Truncate(time.Hour)},
		{Number: "ORD67890", Status: OrderDelivered,
			Items: []string{"Sony WH-1000XM5", "iPad Air 11"}},
		{Number: "ORD24680", Status: OrderProcessing,
			Items:             []string{"Galaxy S24"},
			EstimatedDelivery: time.Now().UTC().Add(5 * 24 * time.Hour).Truncate(time.Hour)},
	}
}

func demoFAQs() []FAQ {
	return []FAQ{
		{Topic: "shipping", Question: "How long does delivery take?",
			Answer: "Standard delivery takes 3-5 business days. Express delivery is available at checkout for 1-2 day delivery."},
		{Topic: "returns", Question: "What is your return policy?",
			Answer: "You can return most items within 30 days of delivery for a full refund. Items must be unused and in original packaging."},
		{Topic: "payments", Question: "What payment methods do you accept?",
			Answer: "We accept credit and debit cards, UPI, net banking and cash on delivery for eligible orders."},
		{Topic: "warranty", Question: "Do products come with a warranty?",
			Answer: "All electronics carry the manufacturer's warranty, typically 1 year. Extended warranty plans are available on select items."},
		{Topic: "cancellation", Question: "Can I cancel my order?",
			Answer: "Orders can be cancelled free of charge any time before they are shipped from our warehouse."},
	}
}
