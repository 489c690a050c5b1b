package service

import (
	"errors"
	"fmt"
	"testing"

	"go-pharmacy-pos/internal/model"
)

func saleInput(productID uint, quantity int, status model.BillStatus) *BillInput {
	return &BillInput{
		PatientName:   "Asha Rao",
		PatientMobile: "9876543210",
		Status:        status,
		Items: []BillItemInput{{
			ProductID:   &productID,
			ProductName: "Paracetamol 500",
			Batch:       "B01",
			Rate:        40,
			Quantity:    quantity,
			CGST:        6,
			SGST:        6,
		}},
	}
}

func TestCreateCompletedSaleDeductsStock(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "Paracetamol 500", "B01", 20)

	bill, err := f.billing.CreateBill(saleInput(p.ID, 5, model.BillCompleted))
	if err != nil {
		t.Fatalf("create bill: %v", err)
	}

	if got := f.productQuantity(t, p.ID); got != 15 {
		t.Errorf("product quantity = %d, want 15", got)
	}
	want := fmt.Sprintf("INV-%d-%05d", bill.BillDate.Year(), bill.ID)
	if bill.BillNumber != want {
		t.Errorf("bill number = %q, want %q", bill.BillNumber, want)
	}
	if !approx(bill.GrandTotal, 224) { // 200 + 12% gst
		t.Errorf("grand total = %v, want 224", bill.GrandTotal)
	}
}

func TestCreateHeldSaleLeavesStockAlone(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "Paracetamol 500", "B01", 20)

	if _, err := f.billing.CreateBill(saleInput(p.ID, 5, model.BillHeld)); err != nil {
		t.Fatalf("create held bill: %v", err)
	}

	if got := f.productQuantity(t, p.ID); got != 20 {
		t.Errorf("product quantity = %d, want 20 (held bills never touch stock)", got)
	}
}

func TestUpdateSaleMovesNetDifference(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "Paracetamol 500", "B01", 20)

	bill, err := f.billing.CreateBill(saleInput(p.ID, 5, model.BillCompleted))
	if err != nil {
		t.Fatalf("create bill: %v", err)
	}

	if _, err := f.billing.UpdateBill(bill.ID, saleInput(p.ID, 3, model.BillCompleted)); err != nil {
		t.Fatalf("update bill: %v", err)
	}
	if got := f.productQuantity(t, p.ID); got != 17 {
		t.Errorf("after edit to 3: quantity = %d, want 17 (2 returned)", got)
	}
}

func TestUpdateSaleClampsAtZero(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "Paracetamol 500", "B01", 20)

	bill, err := f.billing.CreateBill(saleInput(p.ID, 5, model.BillCompleted))
	if err != nil {
		t.Fatalf("create bill: %v", err)
	}

	// Editing to far more than the shelf holds clamps at zero rather
	// than going negative.
	if _, err := f.billing.UpdateBill(bill.ID, saleInput(p.ID, 100, model.BillCompleted)); err != nil {
		t.Fatalf("update bill: %v", err)
	}
	if got := f.productQuantity(t, p.ID); got != 0 {
		t.Errorf("quantity = %d, want 0 (clamped)", got)
	}
}

func TestHeldToCompletedAppliesFreshDeduction(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "Paracetamol 500", "B01", 20)

	bill, err := f.billing.CreateBill(saleInput(p.ID, 5, model.BillHeld))
	if err != nil {
		t.Fatalf("create held bill: %v", err)
	}

	if _, err := f.billing.UpdateBill(bill.ID, saleInput(p.ID, 4, model.BillCompleted)); err != nil {
		t.Fatalf("finalize bill: %v", err)
	}
	if got := f.productQuantity(t, p.ID); got != 16 {
		t.Errorf("quantity = %d, want 16 (full new set deducted)", got)
	}
}

func TestCompletedToHeldReturnsStock(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "Paracetamol 500", "B01", 20)

	bill, err := f.billing.CreateBill(saleInput(p.ID, 5, model.BillCompleted))
	if err != nil {
		t.Fatalf("create bill: %v", err)
	}

	if _, err := f.billing.UpdateBill(bill.ID, saleInput(p.ID, 5, model.BillHeld)); err != nil {
		t.Fatalf("hold bill: %v", err)
	}
	if got := f.productQuantity(t, p.ID); got != 20 {
		t.Errorf("quantity = %d, want 20 (held bills hold no stock)", got)
	}
}

func TestDeleteHeldBill(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "Paracetamol 500", "B01", 20)

	bill, err := f.billing.CreateBill(saleInput(p.ID, 5, model.BillHeld))
	if err != nil {
		t.Fatalf("create held bill: %v", err)
	}

	if err := f.billing.DeleteBill(bill.ID); err != nil {
		t.Fatalf("delete held bill: %v", err)
	}
	if got := f.productQuantity(t, p.ID); got != 20 {
		t.Errorf("quantity = %d, want 20 (deleting a held bill moves no stock)", got)
	}

	var itemCount int64
	f.db.Model(&model.BillItem{}).Where("bill_id = ?", bill.ID).Count(&itemCount)
	if itemCount != 0 {
		t.Errorf("bill items remain after delete: %d", itemCount)
	}
}

func TestDeleteCompletedBillRejected(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "Paracetamol 500", "B01", 20)

	bill, err := f.billing.CreateBill(saleInput(p.ID, 5, model.BillCompleted))
	if err != nil {
		t.Fatalf("create bill: %v", err)
	}

	if err := f.billing.DeleteBill(bill.ID); !errors.Is(err, ErrBillFinalized) {
		t.Fatalf("delete completed bill: err = %v, want ErrBillFinalized", err)
	}

	var count int64
	f.db.Model(&model.Bill{}).Where("id = ?", bill.ID).Count(&count)
	if count != 1 {
		t.Errorf("completed bill was deleted")
	}
}

func TestCreateBillResolvesCustomerByMobile(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "Paracetamol 500", "B01", 50)

	first, err := f.billing.CreateBill(saleInput(p.ID, 1, model.BillCompleted))
	if err != nil {
		t.Fatalf("first bill: %v", err)
	}
	second, err := f.billing.CreateBill(saleInput(p.ID, 2, model.BillCompleted))
	if err != nil {
		t.Fatalf("second bill: %v", err)
	}

	if first.CustomerID == nil || second.CustomerID == nil {
		t.Fatal("bills missing customer link")
	}
	if *first.CustomerID != *second.CustomerID {
		t.Errorf("same mobile produced different customers: %d vs %d", *first.CustomerID, *second.CustomerID)
	}

	var count int64
	f.db.Model(&model.Customer{}).Count(&count)
	if count != 1 {
		t.Errorf("customer count = %d, want 1", count)
	}
}

func TestFreeTextItemsNeverTouchStock(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "Paracetamol 500", "B01", 20)

	in := saleInput(p.ID, 2, model.BillCompleted)
	in.Items = append(in.Items, BillItemInput{
		ProductName: "Syringe (loose)",
		Rate:        10,
		Quantity:    3,
	})

	if _, err := f.billing.CreateBill(in); err != nil {
		t.Fatalf("create bill: %v", err)
	}
	if got := f.productQuantity(t, p.ID); got != 18 {
		t.Errorf("quantity = %d, want 18 (only the linked line deducts)", got)
	}
}

func TestCreateBillRejectsEmptyItems(t *testing.T) {
	f := newFixture(t)

	_, err := f.billing.CreateBill(&BillInput{PatientName: "X"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestListBillsSplitsByStatus(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "Paracetamol 500", "B01", 50)

	if _, err := f.billing.CreateBill(saleInput(p.ID, 1, model.BillCompleted)); err != nil {
		t.Fatal(err)
	}
	if _, err := f.billing.CreateBill(saleInput(p.ID, 1, model.BillHeld)); err != nil {
		t.Fatal(err)
	}

	completed, err := f.billing.ListBills()
	if err != nil {
		t.Fatal(err)
	}
	held, err := f.billing.ListHeldBills()
	if err != nil {
		t.Fatal(err)
	}
	if len(completed) != 1 || len(held) != 1 {
		t.Errorf("completed = %d, held = %d, want 1 and 1", len(completed), len(held))
	}
}
