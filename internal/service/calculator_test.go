package service

import "testing"

func TestCalculateTotalsSingleItem(t *testing.T) {
	items := []LineItem{{Rate: 100, Quantity: 2, Discount: 10, CGST: 6, SGST: 6}}

	got := CalculateTotals(items, 0)

	if !approx(got.Subtotal, 200) {
		t.Errorf("subtotal = %v, want 200", got.Subtotal)
	}
	if !approx(got.TotalDiscount, 20) {
		t.Errorf("total discount = %v, want 20", got.TotalDiscount)
	}
	if !approx(got.TotalCGST, 10.8) {
		t.Errorf("cgst = %v, want 10.8", got.TotalCGST)
	}
	if !approx(got.TotalSGST, 10.8) {
		t.Errorf("sgst = %v, want 10.8", got.TotalSGST)
	}
	if !approx(got.GrandTotal, 201.6) {
		t.Errorf("grand total = %v, want 201.6", got.GrandTotal)
	}
}

func TestCalculateTotalsOverallDiscountCompounds(t *testing.T) {
	// Overall discount applies on top of the item discount, not added
	// to it: 200 -> -10% -> 180 -> -5% -> 171 taxable.
	items := []LineItem{{Rate: 100, Quantity: 2, Discount: 10, CGST: 6, SGST: 6}}

	got := CalculateTotals(items, 5)

	if !approx(got.Subtotal, 200) {
		t.Errorf("subtotal = %v, want 200", got.Subtotal)
	}
	if !approx(got.TotalDiscount, 29) {
		t.Errorf("total discount = %v, want 29 (20 item + 9 overall)", got.TotalDiscount)
	}
	if !approx(got.TotalCGST, 10.26) {
		t.Errorf("cgst = %v, want 10.26", got.TotalCGST)
	}
	if !approx(got.GrandTotal, 191.52) {
		t.Errorf("grand total = %v, want 191.52", got.GrandTotal)
	}
}

func TestCalculateTotalsIdentity(t *testing.T) {
	// grand_total == subtotal - total_discount + cgst + sgst must hold
	// exactly for any item list.
	cases := [][]LineItem{
		nil,
		{{Rate: 12.5, Quantity: 3, Discount: 7.5, CGST: 2.5, SGST: 2.5}},
		{
			{Rate: 99.99, Quantity: 1, CGST: 9, SGST: 9},
			{Rate: 5, Quantity: 200, Discount: 50},
			{Rate: 0, Quantity: 10},
		},
	}
	for i, items := range cases {
		for _, overall := range []float64{0, 2.5, 100} {
			got := CalculateTotals(items, overall)
			want := got.Subtotal - got.TotalDiscount + got.TotalCGST + got.TotalSGST
			if got.GrandTotal != want {
				t.Errorf("case %d overall %v: grand total %v != identity %v", i, overall, got.GrandTotal, want)
			}
		}
	}
}

func TestCalculateTotalsDeterministic(t *testing.T) {
	items := []LineItem{
		{Rate: 33.33, Quantity: 3, Discount: 1.5, CGST: 6, SGST: 6},
		{Rate: 150, Quantity: 1, CGST: 14, SGST: 14},
	}
	a := CalculateTotals(items, 3)
	b := CalculateTotals(items, 3)
	if a != b {
		t.Errorf("same input gave different totals: %+v vs %+v", a, b)
	}
	if items[0].Rate != 33.33 || items[1].Quantity != 1 {
		t.Error("input slice was mutated")
	}
}

func TestCalculateTotalsEmpty(t *testing.T) {
	got := CalculateTotals(nil, 10)
	if got != (BillTotals{}) {
		t.Errorf("empty input should produce zero totals, got %+v", got)
	}
}

func TestCalculatePurchaseTotals(t *testing.T) {
	items := []PurchaseLine{
		{PurchaseRate: 50, Quantity: 10, FreeQuantity: 2, CGST: 6, SGST: 6},
	}

	got := CalculatePurchaseTotals(items, 0)

	if !approx(got.TotalPreTax, 500) {
		t.Errorf("pre-tax = %v, want 500 (free units carry no cost)", got.TotalPreTax)
	}
	if !approx(got.TaxableAmount, 500) {
		t.Errorf("taxable = %v, want 500", got.TaxableAmount)
	}
	if !approx(got.TotalGST, 60) {
		t.Errorf("gst = %v, want 60", got.TotalGST)
	}
	if !approx(got.GrandTotal, 560) {
		t.Errorf("grand total = %v, want 560", got.GrandTotal)
	}
	if !approx(got.Rounding, 0) {
		t.Errorf("rounding = %v, want 0", got.Rounding)
	}
	if len(got.LineAmounts) != 1 || !approx(got.LineAmounts[0], 560) {
		t.Errorf("line amounts = %v, want [560]", got.LineAmounts)
	}
}

func TestCalculatePurchaseTotalsRounding(t *testing.T) {
	items := []PurchaseLine{
		{PurchaseRate: 33.33, Quantity: 3, CGST: 2.5, SGST: 2.5},
	}

	got := CalculatePurchaseTotals(items, 0)

	// 99.99 taxable + 5% gst = 104.9895, rounded to 105.
	if !approx(got.GrandTotal, 105) {
		t.Errorf("grand total = %v, want 105", got.GrandTotal)
	}
	if !approx(got.GrandTotal, got.TaxableAmount+got.TotalGST+got.Rounding) {
		t.Errorf("rounding residue %v does not reconcile grand total", got.Rounding)
	}
}

func TestCalculatePurchaseTotalsIGSTWins(t *testing.T) {
	items := []PurchaseLine{
		{PurchaseRate: 100, Quantity: 1, CGST: 9, SGST: 9, IGST: 12},
	}

	got := CalculatePurchaseTotals(items, 0)

	if !approx(got.TotalGST, 12) {
		t.Errorf("gst = %v, want 12 (IGST replaces CGST+SGST)", got.TotalGST)
	}
}

func TestCalculatePurchaseTotalsOverallDiscount(t *testing.T) {
	items := []PurchaseLine{
		{PurchaseRate: 100, Quantity: 10, Discount: 10, CGST: 6, SGST: 6},
	}

	got := CalculatePurchaseTotals(items, 5)

	// 1000 -> -10% -> 900 pre-tax -> -5% -> 855 taxable.
	if !approx(got.TotalPreTax, 900) {
		t.Errorf("pre-tax = %v, want 900", got.TotalPreTax)
	}
	if !approx(got.OverallDiscountAmount, 45) {
		t.Errorf("overall discount = %v, want 45", got.OverallDiscountAmount)
	}
	if !approx(got.TaxableAmount, 855) {
		t.Errorf("taxable = %v, want 855", got.TaxableAmount)
	}
	if !approx(got.TotalGST, 102.6) {
		t.Errorf("gst = %v, want 102.6", got.TotalGST)
	}
}
