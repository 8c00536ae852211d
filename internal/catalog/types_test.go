package catalog

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNewCategorySet(t *testing.T) {
	set := NewCategorySet([]Category{" Books ", "Books", "", "all", "Stationery"})

	got := set.Categories()
	if len(got) != 2 || got[0] != "Books" || got[1] != "Stationery" {
		t.Errorf("Expected [Books Stationery], got %v", got)
	}
	if set.Contains("all") {
		t.Error("The all filter must not be a category")
	}
}

func TestCategorySet_Parse(t *testing.T) {
	set := NewCategorySet(DefaultCategories)

	tests := []struct {
		input   string
		want    Filter
		wantErr bool
	}{
		{input: "", want: All},
		{input: "ALL", want: All},
		{input: "books", want: Filter("Books")},
		{input: " gift boxes ", want: Filter("Gift Boxes")},
		{input: "Toys", wantErr: true},
	}

	for _, tt := range tests {
		got, err := set.Parse(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidFilter) {
				t.Errorf("Parse(%q): expected ErrInvalidFilter, got %v", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): unexpected error %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCategorySet_Positions(t *testing.T) {
	set := NewCategorySet(DefaultCategories)

	if f, ok := set.At(0); !ok || f != All {
		t.Errorf("At(0) = %q, %v", f, ok)
	}
	if f, ok := set.At(2); !ok || f != Filter("Books") {
		t.Errorf("At(2) = %q, %v", f, ok)
	}
	if _, ok := set.At(4); ok {
		t.Error("At(4) should be out of range")
	}
	if pos := set.Position(Filter("Stationery")); pos != 3 {
		t.Errorf("Position(Stationery) = %d, want 3", pos)
	}
	if pos := set.Position(Filter("Toys")); pos != -1 {
		t.Errorf("Position(Toys) = %d, want -1", pos)
	}
}

func TestProductID_UnmarshalJSON(t *testing.T) {
	var products []Product
	data := `[{"_id": "a1"}, {"_id": 42}, {"_id": 4.5}]`
	if err := json.Unmarshal([]byte(data), &products); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}

	want := []ProductID{"a1", "42", "4.5"}
	for i, p := range products {
		if p.ID != want[i] {
			t.Errorf("products[%d].ID = %q, want %q", i, p.ID, want[i])
		}
	}
}
