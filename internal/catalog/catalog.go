// Package catalog serves the read-only storefront data: promoted items, nearby
// vendors and accepted payment methods.
package catalog

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"
)

// Item is a purchasable product.
type Item struct {
	ID            int             `toml:"id"`
	Name          string          `toml:"name"`
	Price         decimal.Decimal `toml:"price"`
	OriginalPrice decimal.Decimal `toml:"original_price"`
}

// DiscountPercent is the markdown from OriginalPrice, rounded to a whole percent.
// Zero when the item is not on sale.
func (i Item) DiscountPercent() int {
	if !i.OriginalPrice.IsPositive() || i.Price.GreaterThanOrEqual(i.OriginalPrice) {
		return 0
	}
	off := i.OriginalPrice.Sub(i.Price).Div(i.OriginalPrice).Mul(decimal.NewFromInt(100))
	return int(off.Round(0).IntPart())
}

// Vendor is a pharmacy the user can order from.
type Vendor struct {
	ID         int     `toml:"id"`
	Name       string  `toml:"name"`
	DistanceKM float64 `toml:"distance_km"`
	Rating     float64 `toml:"rating"`
}

// PaymentMethod is an accepted way to pay.
type PaymentMethod struct {
	ID   int    `toml:"id"`
	Name string `toml:"name"`
	Icon string `toml:"icon"`
}

type document struct {
	Items    []Item          `toml:"item"`
	Vendors  []Vendor        `toml:"vendor"`
	Payments []PaymentMethod `toml:"payment"`
}

// Catalog is immutable once built. Accessors return copies.
type Catalog struct {
	items    []Item
	vendors  []Vendor
	payments []PaymentMethod

	itemByID    map[int]Item
	vendorByID  map[int]Vendor
	paymentByID map[int]PaymentMethod
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse([]byte(defaultCatalogTOML))
	if err != nil {
		panic(fmt.Sprintf("catalog: built-in document invalid: %v", err))
	}
	return c
}

// Load reads a catalog document from path. An empty path yields Default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a TOML catalog document and checks ids and prices.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(doc.Items, doc.Vendors, doc.Payments)
}

// New builds a catalog from in-memory slices.
func New(items []Item, vendors []Vendor, payments []PaymentMethod) (*Catalog, error) {
	c := &Catalog{
		items:       append([]Item(nil), items...),
		vendors:     append([]Vendor(nil), vendors...),
		payments:    append([]PaymentMethod(nil), payments...),
		itemByID:    make(map[int]Item, len(items)),
		vendorByID:  make(map[int]Vendor, len(vendors)),
		paymentByID: make(map[int]PaymentMethod, len(payments)),
	}
	for _, it := range c.items {
		if _, dup := c.itemByID[it.ID]; dup {
			return nil, fmt.Errorf("duplicate item id %d", it.ID)
		}
		if it.Name == "" {
			return nil, fmt.Errorf("item %d: name required", it.ID)
		}
		if it.Price.IsNegative() {
			return nil, fmt.Errorf("item %d: negative price", it.ID)
		}
		c.itemByID[it.ID] = it
	}
	for _, v := range c.vendors {
		if _, dup := c.vendorByID[v.ID]; dup {
			return nil, fmt.Errorf("duplicate vendor id %d", v.ID)
		}
		c.vendorByID[v.ID] = v
	}
	for _, p := range c.payments {
		if _, dup := c.paymentByID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate payment method id %d", p.ID)
		}
		c.paymentByID[p.ID] = p
	}
	return c, nil
}

func (c *Catalog) PromotedItems() []Item { return append([]Item(nil), c.items...) }

func (c *Catalog) Vendors() []Vendor { return append([]Vendor(nil), c.vendors...) }

func (c *Catalog) PaymentMethods() []PaymentMethod {
	return append([]PaymentMethod(nil), c.payments...)
}

func (c *Catalog) Item(id int) (Item, bool) {
	it, ok := c.itemByID[id]
	return it, ok
}

func (c *Catalog) Vendor(id int) (Vendor, bool) {
	v, ok := c.vendorByID[id]
	return v, ok
}

func (c *Catalog) PaymentMethod(id int) (PaymentMethod, bool) {
	p, ok := c.paymentByID[id]
	return p, ok
}
