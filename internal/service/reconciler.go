package service

import "go-pharmacy-pos/internal/model"

// QuantityByProduct sums bill item quantities per referenced product.
// Free-text lines (nil ProductID) are skipped; they never touch stock.
func QuantityByProduct(items []model.BillItem) map[uint]int {
	m := make(map[uint]int)
	for _, it := range items {
		if it.ProductID == nil {
			continue
		}
		m[*it.ProductID] += it.Quantity
	}
	return m
}

// ReconcileStock computes the per-product stock delta between a bill's
// previous item set and its new one: delta = old - new, so a positive
// delta returns units to stock and a negative one removes them. A new
// Completed sale passes an empty old map; a bill leaving (or never
// reaching) Completed status passes an empty map for that side, since
// Held bills never held stock.
func ReconcileStock(oldQty, newQty map[uint]int) map[uint]int {
	deltas := make(map[uint]int)
	for pid, q := range oldQty {
		deltas[pid] += q
	}
	for pid, q := range newQty {
		deltas[pid] -= q
	}
	for pid, d := range deltas {
		if d == 0 {
			delete(deltas, pid)
		}
	}
	return deltas
}
