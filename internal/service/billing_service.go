package service

import (
	"errors"
	"fmt"
	"time"

	"go-pharmacy-pos/internal/model"
	"go-pharmacy-pos/internal/repository"
	"go-pharmacy-pos/internal/ws"
	"go-pharmacy-pos/pkg/validator"

	"gorm.io/gorm"
)

var (
	ErrValidation    = errors.New("validation failed")
	ErrBillNotFound  = errors.New("bill not found")
	ErrBillFinalized = errors.New("completed bills cannot be deleted")
)

// BillItemInput is the canonical request shape for one sale line.
// ProductID is nil for free-text lines.
type BillItemInput struct {
	ProductID   *uint   `json:"product_id"`
	ProductName string  `json:"product_name" validate:"required"`
	Batch       string  `json:"batch"`
	MRP         float64 `json:"mrp" validate:"gte=0"`
	Rate        float64 `json:"rate" validate:"gte=0"`
	Quantity    int     `json:"quantity" validate:"required,gt=0"`
	Expiry      string  `json:"expiry" validate:"omitempty,expiry_month"`
	Discount    float64 `json:"discount" validate:"gte=0,lte=100"`
	CGST        float64 `json:"cgst" validate:"gte=0"`
	SGST        float64 `json:"sgst" validate:"gte=0"`
}

// BillInput is the canonical request shape for creating or updating a
// sale. Totals in the request are ignored; the server recomputes them.
type BillInput struct {
	BillDate        string           `json:"bill_date" validate:"omitempty,datetime=2006-01-02"`
	PatientName     string           `json:"patient_name"`
	PatientMobile   string           `json:"patient_mobile"`
	DoctorName      string           `json:"doctor_name"`
	Status          model.BillStatus `json:"status" validate:"omitempty,oneof=Completed Held"`
	OverallDiscount float64          `json:"overall_discount" validate:"gte=0,lte=100"`
	Items           []BillItemInput  `json:"items" validate:"required,min=1,dive"`
}

type BillingService interface {
	ListBills() ([]model.Bill, error)
	ListHeldBills() ([]model.Bill, error)
	GetBill(id uint) (*model.Bill, error)
	CreateBill(in *BillInput) (*model.Bill, error)
	UpdateBill(id uint, in *BillInput) (*model.Bill, error)
	DeleteBill(id uint) error
}

type billingService struct {
	billRepo     repository.BillRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	db           *gorm.DB
	hub          *ws.Hub
}

func NewBillingService(bRepo repository.BillRepository, pRepo repository.ProductRepository, cRepo repository.CustomerRepository, db *gorm.DB, hub *ws.Hub) BillingService {
	return &billingService{
		billRepo:     bRepo,
		productRepo:  pRepo,
		customerRepo: cRepo,
		db:           db,
		hub:          hub,
	}
}

// FormatBillNumber builds the invoice number from the assigned row id.
func FormatBillNumber(year int, id uint) string {
	return fmt.Sprintf("INV-%d-%05d", year, id)
}

func (s *billingService) ListBills() ([]model.Bill, error) {
	return s.billRepo.FindByStatus(model.BillCompleted)
}

func (s *billingService) ListHeldBills() ([]model.Bill, error) {
	return s.billRepo.FindByStatus(model.BillHeld)
}

func (s *billingService) GetBill(id uint) (*model.Bill, error) {
	bill, err := s.billRepo.FindByID(id)
	if err != nil {
		return nil, ErrBillNotFound
	}
	return bill, nil
}

func (s *billingService) CreateBill(in *BillInput) (*model.Bill, error) {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, first.FailedField, first.Tag)
	}

	status := in.Status
	if status == "" {
		status = model.BillCompleted
	}
	billDate := parseBillDate(in.BillDate)
	totals := CalculateTotals(in.lineItems(), in.OverallDiscount)

	var bill model.Bill
	err := s.db.Transaction(func(tx *gorm.DB) error {
		customerID, err := s.resolveCustomer(tx, in.PatientName, in.PatientMobile, in.DoctorName)
		if err != nil {
			return err
		}

		bill = model.Bill{
			BillDate:               billDate,
			PatientName:            in.PatientName,
			PatientMobile:          in.PatientMobile,
			DoctorName:             in.DoctorName,
			CustomerID:             customerID,
			Status:                 status,
			Subtotal:               totals.Subtotal,
			TotalDiscount:          totals.TotalDiscount,
			TotalCGST:              totals.TotalCGST,
			TotalSGST:              totals.TotalSGST,
			OverallDiscountPercent: in.OverallDiscount,
			GrandTotal:             totals.GrandTotal,
		}
		if err := tx.Create(&bill).Error; err != nil {
			return err
		}

		items := in.toItems(bill.ID)
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		bill.Items = items

		// The final number needs the assigned id, so the header is
		// written twice inside the same transaction.
		bill.BillNumber = FormatBillNumber(billDate.Year(), bill.ID)
		if err := tx.Model(&model.Bill{}).Where("id = ?", bill.ID).
			Update("bill_number", bill.BillNumber).Error; err != nil {
			return err
		}

		if status == model.BillCompleted {
			for pid, qty := range QuantityByProduct(items) {
				if err := s.productRepo.AdjustQuantity(tx, pid, -qty); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.hub.Publish(ws.Event{
		Type:    "stock_update",
		Action:  "bill_created",
		Payload: map[string]interface{}{"id": bill.ID, "bill_number": bill.BillNumber, "status": bill.Status},
		Message: fmt.Sprintf("Bill %s created", bill.BillNumber),
	})
	return &bill, nil
}

func (s *billingService) UpdateBill(id uint, in *BillInput) (*model.Bill, error) {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, first.FailedField, first.Tag)
	}

	totals := CalculateTotals(in.lineItems(), in.OverallDiscount)

	var bill model.Bill
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&bill, "id = ?", id).Error; err != nil {
			return ErrBillNotFound
		}

		newStatus := in.Status
		if newStatus == "" {
			newStatus = bill.Status
		}

		newItems := in.toItems(bill.ID)

		// Stock moves by the net difference between the previous and
		// new item sets. A bill only counts while Completed: a Held
		// side contributes nothing, so Held->Completed deducts the
		// full new set and Completed->Held returns the full old set.
		oldQty := map[uint]int{}
		if bill.Status == model.BillCompleted {
			oldQty = QuantityByProduct(bill.Items)
		}
		newQty := map[uint]int{}
		if newStatus == model.BillCompleted {
			newQty = QuantityByProduct(newItems)
		}
		for pid, delta := range ReconcileStock(oldQty, newQty) {
			if err := s.productRepo.AdjustQuantity(tx, pid, delta); err != nil {
				return err
			}
		}

		if err := tx.Where("bill_id = ?", bill.ID).Delete(&model.BillItem{}).Error; err != nil {
			return err
		}
		if err := tx.Create(&newItems).Error; err != nil {
			return err
		}

		patientName := in.PatientName
		if patientName == "" {
			patientName = bill.PatientName
		}
		patientMobile := in.PatientMobile
		if patientMobile == "" {
			patientMobile = bill.PatientMobile
		}
		doctorName := in.DoctorName
		if doctorName == "" {
			doctorName = bill.DoctorName
		}

		customerID, err := s.resolveCustomer(tx, patientName, patientMobile, doctorName)
		if err != nil {
			return err
		}

		billDate := bill.BillDate
		if in.BillDate != "" {
			billDate = parseBillDate(in.BillDate)
		}

		updates := map[string]interface{}{
			"bill_date":                billDate,
			"patient_name":             patientName,
			"patient_mobile":           patientMobile,
			"doctor_name":              doctorName,
			"customer_id":              customerID,
			"status":                   newStatus,
			"subtotal":                 totals.Subtotal,
			"total_discount":           totals.TotalDiscount,
			"total_cgst":               totals.TotalCGST,
			"total_sgst":               totals.TotalSGST,
			"overall_discount_percent": in.OverallDiscount,
			"grand_total":              totals.GrandTotal,
		}
		if err := tx.Model(&model.Bill{}).Where("id = ?", bill.ID).Updates(updates).Error; err != nil {
			return err
		}

		bill.BillDate = billDate
		bill.PatientName = patientName
		bill.PatientMobile = patientMobile
		bill.DoctorName = doctorName
		bill.CustomerID = customerID
		bill.Status = newStatus
		bill.Subtotal = totals.Subtotal
		bill.TotalDiscount = totals.TotalDiscount
		bill.TotalCGST = totals.TotalCGST
		bill.TotalSGST = totals.TotalSGST
		bill.OverallDiscountPercent = in.OverallDiscount
		bill.GrandTotal = totals.GrandTotal
		bill.Items = newItems
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.hub.Publish(ws.Event{
		Type:    "stock_update",
		Action:  "bill_updated",
		Payload: map[string]interface{}{"id": bill.ID, "bill_number": bill.BillNumber, "status": bill.Status},
		Message: fmt.Sprintf("Bill %s updated", bill.BillNumber),
	})
	return &bill, nil
}

// DeleteBill removes a Held bill. Completed bills are immutable once
// finalized; there is no cancellation path. Held bills never touched
// stock, so nothing is reconciled here.
func (s *billingService) DeleteBill(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var bill model.Bill
		if err := tx.First(&bill, "id = ?", id).Error; err != nil {
			return ErrBillNotFound
		}
		if bill.Status != model.BillHeld {
			return ErrBillFinalized
		}
		if err := tx.Where("bill_id = ?", bill.ID).Delete(&model.BillItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&bill).Error
	})
	if err != nil {
		return err
	}

	s.hub.Publish(ws.Event{
		Type:    "stock_update",
		Action:  "bill_deleted",
		Payload: map[string]interface{}{"id": id},
	})
	return nil
}

// resolveCustomer finds or lazily creates the customer for a mobile
// number inside the request transaction. Sales without a mobile have
// no customer link.
func (s *billingService) resolveCustomer(tx *gorm.DB, name, mobile, doctor string) (*uint, error) {
	if mobile == "" {
		return nil, nil
	}
	existing, err := s.customerRepo.FindByMobile(tx, mobile)
	if err == nil {
		return &existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	customer := model.Customer{Name: name, Mobile: mobile, DoctorName: doctor}
	if customer.Name == "" {
		customer.Name = "Walk-in"
	}
	if err := tx.Create(&customer).Error; err != nil {
		return nil, err
	}
	return &customer.ID, nil
}

func parseBillDate(s string) time.Time {
	if s != "" {
		if d, err := time.ParseInLocation("2006-01-02", s, istZone); err == nil {
			return d
		}
	}
	return ISTToday()
}

func (in *BillInput) lineItems() []LineItem {
	items := make([]LineItem, len(in.Items))
	for i, it := range in.Items {
		items[i] = LineItem{
			Rate:     it.Rate,
			Quantity: it.Quantity,
			Discount: it.Discount,
			CGST:     it.CGST,
			SGST:     it.SGST,
		}
	}
	return items
}

func (in *BillInput) toItems(billID uint) []model.BillItem {
	items := make([]model.BillItem, len(in.Items))
	for i, it := range in.Items {
		items[i] = model.BillItem{
			BillID:      billID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Batch:       it.Batch,
			MRP:         it.MRP,
			Rate:        it.Rate,
			Quantity:    it.Quantity,
			Expiry:      it.Expiry,
			Discount:    it.Discount,
			CGST:        it.CGST,
			SGST:        it.SGST,
		}
	}
	return items
}
