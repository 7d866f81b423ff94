package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	c := Default()

	if c.Len() != 12 {
		t.Fatalf("embedded catalog has %d products, want 12", c.Len())
	}

	p, ok := c.ByID(1)
	if !ok {
		t.Fatal("product 1 missing from embedded catalog")
	}
	if p.Name != "Premium Wireless Headphones" || p.Price != 249.99 {
		t.Errorf("product 1 = %q / %.2f, want Premium Wireless Headphones / 249.99", p.Name, p.Price)
	}
}

func TestCategories_FirstSeenOrder(t *testing.T) {
	want := []string{"Electronics", "Sports", "Home", "Accessories", "Health"}
	if diff := cmp.Diff(want, Default().Categories()); diff != "" {
		t.Errorf("categories (-want +got):\n%s", diff)
	}
}

func TestCategories_SkipsEmpty(t *testing.T) {
	c, err := New([]Product{
		{ID: 1, Name: "a", Price: 1, Category: "X"},
		{ID: 2, Name: "b", Price: 1},
		{ID: 3, Name: "c", Price: 1, Category: "X"},
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"X"}
	if diff := cmp.Diff(want, c.Categories()); diff != "" {
		t.Errorf("categories (-want +got):\n%s", diff)
	}
}

func TestNew_Validation(t *testing.T) {
	cases := []struct {
		name     string
		products []Product
		wantErr  string
	}{
		{
			name:     "zero id",
			products: []Product{{ID: 0, Name: "x", Price: 1}},
			wantErr:  "invalid id",
		},
		{
			name:     "negative price",
			products: []Product{{ID: 1, Name: "x", Price: -1}},
			wantErr:  "negative price",
		},
		{
			name: "duplicate id",
			products: []Product{
				{ID: 1, Name: "x", Price: 1},
				{ID: 1, Name: "y", Price: 2},
			},
			wantErr: "duplicate product id",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.products)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	if _, err := Parse([]byte("{not yaml")); err == nil {
		t.Error("malformed YAML should not parse")
	}
	if _, err := Parse([]byte("products: []")); err == nil {
		t.Error("empty product list should not parse")
	}
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, defaultCatalogYAML, 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default().Products(), c.Products()); diff != "" {
		t.Errorf("loaded catalog differs from embedded (-want +got):\n%s", diff)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestProductsIsCopy(t *testing.T) {
	c := Default()
	snap := c.Products()
	snap[0].Name = "mutated"

	if p, _ := c.ByID(snap[0].ID); p.Name == "mutated" {
		t.Error("mutating the returned slice leaked into the catalog")
	}
	if c.Products()[0].Name == "mutated" {
		t.Error("mutating the returned slice leaked into the catalog")
	}
}
