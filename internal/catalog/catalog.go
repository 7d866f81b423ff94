// Package catalog holds the immutable product data the rest of the store
// reads from. The built-in catalog is embedded; an external YAML catalog can
// be loaded at startup and live-reloaded via the Watcher.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalogYAML []byte

// Product is a single catalog entry. Products are externally supplied and
// never mutated by the store.
type Product struct {
	ID          int     `yaml:"id"`
	Name        string  `yaml:"name"`
	Price       float64 `yaml:"price"`
	Image       string  `yaml:"image"`
	Description string  `yaml:"description"`
	Category    string  `yaml:"category,omitempty"`
}

// Catalog is an ordered, read-only product list.
type Catalog struct {
	products []Product
	byID     map[int]Product
}

type catalogFile struct {
	Products []Product `yaml:"products"`
}

// New builds a Catalog from the given products, preserving their order.
func New(products []Product) (*Catalog, error) {
	byID := make(map[int]Product, len(products))
	for _, p := range products {
		if p.ID <= 0 {
			return nil, fmt.Errorf("catalog: product %q has invalid id %d", p.Name, p.ID)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("catalog: product %q has negative price", p.Name)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate product id %d", p.ID)
		}
		byID[p.ID] = p
	}
	return &Catalog{products: append([]Product(nil), products...), byID: byID}, nil
}

// Default returns the embedded reference catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalogYAML)
	if err != nil {
		// The embedded catalog is validated by tests; a parse failure here is
		// a build defect, not a runtime condition.
		panic(fmt.Sprintf("catalog: embedded default is invalid: %v", err))
	}
	return c
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: parse: %w", err)
	}
	if len(f.Products) == 0 {
		return nil, fmt.Errorf("catalog: no products defined")
	}
	return New(f.Products)
}

// Load reads a YAML catalog from disk.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data)
}

// Products returns the catalog contents in declaration order. The returned
// slice is a copy; callers may not mutate catalog state through it.
func (c *Catalog) Products() []Product {
	return append([]Product(nil), c.products...)
}

// Len reports the number of products.
func (c *Catalog) Len() int { return len(c.products) }

// ByID looks up a product by id.
func (c *Catalog) ByID(id int) (Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Categories returns the unique non-empty categories in first-seen order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range c.products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}
