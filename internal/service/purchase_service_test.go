package service

import (
	"testing"

	"go-pharmacy-pos/internal/model"
)

func purchaseInput(supplier string, items ...PurchaseItemInput) *PurchaseInput {
	return &PurchaseInput{
		SupplierName: supplier,
		BillNumber:   "SUP-1042",
		Items:        items,
	}
}

func TestCreatePurchaseCreatesProductWithFreeUnits(t *testing.T) {
	f := newFixture(t)

	in := purchaseInput("MedSupply Co", PurchaseItemInput{
		ProductName:  "Azithromycin 250",
		HSN:          "3004",
		Batch:        "AZ9",
		Quantity:     10,
		FreeQuantity: 2,
		MRP:          120,
		PurchaseRate: 80,
		SaleRate:     110,
		Expiry:       "2027-09",
		CGST:         6,
		SGST:         6,
	})
	if _, err := f.purchases.CreatePurchase(in); err != nil {
		t.Fatalf("create purchase: %v", err)
	}

	var p model.Product
	if err := f.db.First(&p, "name = ? AND batch = ?", "Azithromycin 250", "AZ9").Error; err != nil {
		t.Fatalf("product not created: %v", err)
	}
	if p.Quantity != 12 {
		t.Errorf("quantity = %d, want 12 (10 bought + 2 free)", p.Quantity)
	}
	if p.PurchaseRate != 80 || p.MRP != 120 || p.Expiry != "2027-09" {
		t.Errorf("master fields not taken from the purchase line: %+v", p)
	}
}

func TestCreatePurchaseAddsToExistingProduct(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "Azithromycin 250", "AZ9", 5)

	in := purchaseInput("MedSupply Co", PurchaseItemInput{
		ProductName:  "Azithromycin 250",
		Batch:        "AZ9",
		Quantity:     10,
		FreeQuantity: 2,
		MRP:          130, // supplier revised the MRP
		PurchaseRate: 85,
		SaleRate:     115,
		Expiry:       "2028-01",
		CGST:         6,
		SGST:         6,
	})
	if _, err := f.purchases.CreatePurchase(in); err != nil {
		t.Fatalf("create purchase: %v", err)
	}

	var got model.Product
	if err := f.db.First(&got, "id = ?", p.ID).Error; err != nil {
		t.Fatal(err)
	}
	if got.Quantity != 17 {
		t.Errorf("quantity = %d, want 17", got.Quantity)
	}
	// Last purchase wins on the master fields.
	if got.MRP != 130 || got.PurchaseRate != 85 || got.Expiry != "2028-01" {
		t.Errorf("master fields not overwritten: %+v", got)
	}
}

func TestCreatePurchaseResolvesSupplierOnce(t *testing.T) {
	f := newFixture(t)

	item := PurchaseItemInput{ProductName: "Cetirizine 10", Batch: "C1", Quantity: 5, PurchaseRate: 10}
	first, err := f.purchases.CreatePurchase(purchaseInput("MedSupply Co", item))
	if err != nil {
		t.Fatal(err)
	}
	second, err := f.purchases.CreatePurchase(purchaseInput("MedSupply Co", item))
	if err != nil {
		t.Fatal(err)
	}

	if first.SupplierID != second.SupplierID {
		t.Errorf("same supplier name produced different ids: %d vs %d", first.SupplierID, second.SupplierID)
	}
	var count int64
	f.db.Model(&model.Supplier{}).Count(&count)
	if count != 1 {
		t.Errorf("supplier count = %d, want 1", count)
	}
}

func TestCreatePurchasePersistsComputedTotals(t *testing.T) {
	f := newFixture(t)

	in := purchaseInput("MedSupply Co", PurchaseItemInput{
		ProductName:  "Ibuprofen 400",
		Batch:        "IB2",
		Quantity:     3,
		PurchaseRate: 33.33,
		CGST:         2.5,
		SGST:         2.5,
	})
	created, err := f.purchases.CreatePurchase(in)
	if err != nil {
		t.Fatal(err)
	}

	got, err := f.purchases.GetPurchase(created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !approx(got.GrandTotal, 105) {
		t.Errorf("grand total = %v, want 105 (rounded)", got.GrandTotal)
	}
	if !approx(got.GrandTotal, got.TaxableAmount+got.TotalGSTAmount+got.Rounding) {
		t.Errorf("stored rounding %v does not reconcile", got.Rounding)
	}
	if len(got.Items) != 1 || got.Items[0].Amount == 0 {
		t.Errorf("line amount not stored: %+v", got.Items)
	}
	if got.TaxType != model.TaxIntraState {
		t.Errorf("tax type = %s, want CGST_SGST", got.TaxType)
	}
}

func TestCreatePurchaseIGSTSetsTaxType(t *testing.T) {
	f := newFixture(t)

	in := purchaseInput("Interstate Traders", PurchaseItemInput{
		ProductName:  "Omeprazole 20",
		Batch:        "OM4",
		Quantity:     4,
		PurchaseRate: 25,
		IGST:         12,
	})
	created, err := f.purchases.CreatePurchase(in)
	if err != nil {
		t.Fatal(err)
	}
	if created.TaxType != model.TaxInterState {
		t.Errorf("tax type = %s, want IGST", created.TaxType)
	}
	if !approx(created.TotalGSTAmount, 12) {
		t.Errorf("gst = %v, want 12", created.TotalGSTAmount)
	}
}
