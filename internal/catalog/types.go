package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category is one member of the storefront's enumerated category set
type Category string

// Filter selects which products a load asks for: All or a single Category
type Filter string

// All is the sentinel filter for the unfiltered catalog
const All Filter = "all"

// DefaultCategories is the category set shipped with the storefront
var DefaultCategories = []Category{"Gift Boxes", "Books", "Stationery"}

// IsAll reports whether the filter requests the whole catalog
func (f Filter) IsAll() bool {
	return f == All
}

// Category returns the category a non-All filter selects
func (f Filter) Category() Category {
	return Category(f)
}

// String returns the filter value as sent to the catalog service
func (f Filter) String() string {
	return string(f)
}

// ProductID is the catalog's stable identifier. The service has been seen to
// send both strings and numbers, so decoding accepts either.
type ProductID string

// UnmarshalJSON accepts a JSON string or number
func (id *ProductID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ProductID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("product id must be a string or number: %w", err)
	}
	*id = ProductID(n.String())
	return nil
}

// UnmarshalYAML accepts any scalar node
func (id *ProductID) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("product id must be a scalar, got kind %d", value.Kind)
	}
	*id = ProductID(value.Value)
	return nil
}

// Product is an immutable snapshot of one catalog item
type Product struct {
	ID          ProductID `json:"_id" yaml:"_id"`
	Name        string    `json:"name" yaml:"name"`
	Category    Category  `json:"category" yaml:"category"`
	Price       float64   `json:"price" yaml:"price"`
	Stock       int       `json:"inStockValue" yaml:"inStockValue"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
}

// InStock reports whether the product can be added to a cart
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// validate checks the invariants the client relies on
func (p *Product) validate() error {
	if p.ID == "" {
		return fmt.Errorf("product %q has no id", p.Name)
	}
	if p.Price < 0 {
		return fmt.Errorf("product %s has negative price %v", p.ID, p.Price)
	}
	if p.Stock < 0 {
		return fmt.Errorf("product %s has negative stock %d", p.ID, p.Stock)
	}
	return nil
}

// Envelope is the catalog service response shape for both endpoints
type Envelope struct {
	Success  *bool     `json:"success" yaml:"success"`
	Message  string    `json:"message,omitempty" yaml:"message,omitempty"`
	Products []Product `json:"products" yaml:"products"`
}

// CategorySet is the ordered set of categories a storefront offers
type CategorySet struct {
	ordered []Category
	index   map[Category]struct{}
}

// NewCategorySet builds a set from the given categories, dropping blanks and
// duplicates while keeping the first occurrence's position.
func NewCategorySet(categories []Category) *CategorySet {
	s := &CategorySet{index: make(map[Category]struct{}, len(categories))}
	for _, c := range categories {
		c = Category(strings.TrimSpace(string(c)))
		if c == "" || Filter(c) == All {
			continue
		}
		if _, dup := s.index[c]; dup {
			continue
		}
		s.index[c] = struct{}{}
		s.ordered = append(s.ordered, c)
	}
	return s
}

// Categories returns the categories in display order
func (s *CategorySet) Categories() []Category {
	out := make([]Category, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// Len returns the number of categories
func (s *CategorySet) Len() int {
	return len(s.ordered)
}

// Contains reports whether c is a known category
func (s *CategorySet) Contains(c Category) bool {
	_, ok := s.index[c]
	return ok
}

// Valid reports whether f may be requested
func (s *CategorySet) Valid(f Filter) bool {
	return f.IsAll() || s.Contains(f.Category())
}

// Parse turns user input into a Filter. Matching is case-insensitive;
// unknown values return ErrInvalidFilter.
func (s *CategorySet) Parse(value string) (Filter, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, string(All)) {
		return All, nil
	}
	for _, c := range s.ordered {
		if strings.EqualFold(string(c), value) {
			return Filter(c), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFilter, value)
}

// At returns the filter for a 1-based menu position; 0 selects All
func (s *CategorySet) At(position int) (Filter, bool) {
	if position == 0 {
		return All, true
	}
	if position < 0 || position > len(s.ordered) {
		return "", false
	}
	return Filter(s.ordered[position-1]), true
}

// Position returns the 1-based menu position of f, 0 for All
func (s *CategorySet) Position(f Filter) int {
	if f.IsAll() {
		return 0
	}
	for i, c := range s.ordered {
		if Filter(c) == f {
			return i + 1
		}
	}
	return -1
}
