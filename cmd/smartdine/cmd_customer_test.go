package main

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/itzabhishekgour/smartdine/internal/api"
)

func testMenu() *api.Menu {
	return &api.Menu{
		Menu: map[string][]api.MenuItem{
			"Starters": {
				{ID: 1, Name: "Paneer Tikka", Price: decimal.NewFromInt(150)},
			},
			"Drinks": {
				{ID: 2, Name: "Lassi", Price: decimal.NewFromInt(80)},
			},
		},
	}
}

func TestParseItems(t *testing.T) {
	c, err := parseItems(testMenu(), []string{"1:2", "2"})
	if err != nil {
		t.Fatalf("parseItems: %v", err)
	}
	if got := c.Quantity(1); got != 2 {
		t.Errorf("item 1 quantity = %d, want 2", got)
	}
	if got := c.Quantity(2); got != 1 {
		t.Errorf("item 2 quantity = %d, want 1", got)
	}
	if got := c.Totals().Total.StringFixed(2); got != "380.00" {
		t.Errorf("total = %s, want 380.00", got)
	}
}

func TestParseItemsErrors(t *testing.T) {
	cases := []struct {
		name  string
		specs []string
	}{
		{"unknown item", []string{"99"}},
		{"bad id", []string{"abc"}},
		{"zero quantity", []string{"1:0"}},
		{"bad quantity", []string{"1:many"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseItems(testMenu(), tc.specs); err == nil {
				t.Fatalf("expected error for %v", tc.specs)
			}
		})
	}
}
