package service

import "math"

// LineItem is the calculator's view of one sale line. Rates and
// percentages missing from the request default to zero at the DTO
// boundary, so the math here never sees NaN.
type LineItem struct {
	Rate     float64
	Quantity int
	Discount float64 // percent
	CGST     float64 // percent
	SGST     float64 // percent
}

type BillTotals struct {
	Subtotal      float64
	TotalDiscount float64
	TotalCGST     float64
	TotalSGST     float64
	GrandTotal    float64
}

// CalculateTotals derives a bill's monetary totals from its items. The
// overall discount compounds on top of each item's own discount: it is
// applied to the item's taxable value after the item discount, not
// added to the percentage. No rounding happens during accumulation.
func CalculateTotals(items []LineItem, overallDiscount float64) BillTotals {
	var t BillTotals
	for _, it := range items {
		itemSubtotal := it.Rate * float64(it.Quantity)
		itemDiscount := itemSubtotal * (it.Discount / 100)
		taxable := itemSubtotal - itemDiscount
		overallAmt := taxable * (overallDiscount / 100)
		finalTaxable := taxable - overallAmt

		t.Subtotal += itemSubtotal
		t.TotalDiscount += itemDiscount + overallAmt
		t.TotalCGST += finalTaxable * (it.CGST / 100)
		t.TotalSGST += finalTaxable * (it.SGST / 100)
	}
	t.GrandTotal = t.Subtotal - t.TotalDiscount + t.TotalCGST + t.TotalSGST
	return t
}

// PurchaseLine is the calculator's view of one purchase intake line.
// FreeQuantity affects stock only, never money.
type PurchaseLine struct {
	PurchaseRate float64
	Quantity     int
	FreeQuantity int
	Discount     float64 // percent
	CGST         float64 // percent
	SGST         float64 // percent
	IGST         float64 // percent, wins over CGST+SGST when set
}

type PurchaseTotals struct {
	TotalPreTax           float64
	OverallDiscountAmount float64
	TaxableAmount         float64
	TotalGST              float64
	Rounding              float64
	GrandTotal            float64
	// LineAmounts[i] is line i's taxable value plus its GST, after both
	// discounts. Stored on the purchase item row.
	LineAmounts []float64
}

// CalculatePurchaseTotals mirrors CalculateTotals for purchase
// documents: per-line discount, then the overall discount compounding
// on the discounted value, then GST (IGST if present on the line, else
// CGST+SGST). The grand total is rounded to the nearest rupee and the
// residue recorded separately.
func CalculatePurchaseTotals(items []PurchaseLine, overallDiscount float64) PurchaseTotals {
	t := PurchaseTotals{LineAmounts: make([]float64, len(items))}
	for i, it := range items {
		base := it.PurchaseRate * float64(it.Quantity)
		lineDiscount := base * (it.Discount / 100)
		preTax := base - lineDiscount
		overallAmt := preTax * (overallDiscount / 100)
		taxable := preTax - overallAmt

		gstRate := it.CGST + it.SGST
		if it.IGST > 0 {
			gstRate = it.IGST
		}
		gst := taxable * (gstRate / 100)

		t.TotalPreTax += preTax
		t.OverallDiscountAmount += overallAmt
		t.TaxableAmount += taxable
		t.TotalGST += gst
		t.LineAmounts[i] = taxable + gst
	}

	raw := t.TaxableAmount + t.TotalGST
	t.GrandTotal = math.Round(raw)
	t.Rounding = t.GrandTotal - raw
	return t
}
