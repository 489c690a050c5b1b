package service

import (
	"testing"

	"go-pharmacy-pos/internal/model"
)

func uintPtr(v uint) *uint { return &v }

func TestQuantityByProductSkipsFreeText(t *testing.T) {
	items := []model.BillItem{
		{ProductID: uintPtr(1), Quantity: 5},
		{ProductID: nil, Quantity: 3}, // free-text line
		{ProductID: uintPtr(1), Quantity: 2},
		{ProductID: uintPtr(7), Quantity: 1},
	}

	got := QuantityByProduct(items)

	if len(got) != 2 {
		t.Fatalf("got %d products, want 2", len(got))
	}
	if got[1] != 7 {
		t.Errorf("product 1 quantity = %d, want 7", got[1])
	}
	if got[7] != 1 {
		t.Errorf("product 7 quantity = %d, want 1", got[7])
	}
}

func TestReconcileStock(t *testing.T) {
	tests := []struct {
		name   string
		oldQty map[uint]int
		newQty map[uint]int
		want   map[uint]int
	}{
		{
			name:   "new completed sale deducts everything",
			oldQty: map[uint]int{},
			newQty: map[uint]int{1: 5},
			want:   map[uint]int{1: -5},
		},
		{
			name:   "edit down returns the difference",
			oldQty: map[uint]int{1: 5},
			newQty: map[uint]int{1: 3},
			want:   map[uint]int{1: 2},
		},
		{
			name:   "edit up removes only the difference",
			oldQty: map[uint]int{1: 3},
			newQty: map[uint]int{1: 10},
			want:   map[uint]int{1: -7},
		},
		{
			name:   "unchanged products drop out",
			oldQty: map[uint]int{1: 4, 2: 2},
			newQty: map[uint]int{1: 4, 3: 6},
			want:   map[uint]int{2: 2, 3: -6},
		},
		{
			name:   "held to completed behaves like a fresh sale",
			oldQty: map[uint]int{},
			newQty: map[uint]int{4: 8, 5: 1},
			want:   map[uint]int{4: -8, 5: -1},
		},
		{
			name:   "completed to held returns everything",
			oldQty: map[uint]int{4: 8},
			newQty: map[uint]int{},
			want:   map[uint]int{4: 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReconcileStock(tt.oldQty, tt.newQty)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for pid, d := range tt.want {
				if got[pid] != d {
					t.Errorf("product %d delta = %d, want %d", pid, got[pid], d)
				}
			}
		})
	}
}
