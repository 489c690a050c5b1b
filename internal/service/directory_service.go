package service

import (
	"errors"
	"fmt"

	"go-pharmacy-pos/internal/model"
	"go-pharmacy-pos/internal/repository"
	"go-pharmacy-pos/pkg/validator"

	"gorm.io/gorm"
)

var (
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrDuplicateCustomer = errors.New("customer with same mobile number already exists")
)

// DirectoryService is the customer and supplier registry.
type DirectoryService interface {
	ListCustomers() ([]model.Customer, error)
	GetCustomer(id uint) (*model.Customer, error)
	SearchCustomers(query string) ([]model.Customer, error)
	CreateCustomer(customer *model.Customer) (uint, error)
	UpdateCustomer(id uint, customer *model.Customer) error
	DeleteCustomer(id uint) error
	CustomerHistory(id uint) ([]model.Bill, error)

	ListSuppliers() ([]model.Supplier, error)
}

type directoryService struct {
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
	billRepo     repository.BillRepository
}

func NewDirectoryService(cRepo repository.CustomerRepository, sRepo repository.SupplierRepository, bRepo repository.BillRepository) DirectoryService {
	return &directoryService{
		customerRepo: cRepo,
		supplierRepo: sRepo,
		billRepo:     bRepo,
	}
}

func (s *directoryService) ListCustomers() ([]model.Customer, error) {
	return s.customerRepo.FindAll()
}

func (s *directoryService) GetCustomer(id uint) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByID(id)
	if err != nil {
		return nil, ErrCustomerNotFound
	}
	return customer, nil
}

func (s *directoryService) SearchCustomers(query string) ([]model.Customer, error) {
	return s.customerRepo.Search(query, 50)
}

// CreateCustomer returns the existing row's id when the mobile number
// is already on file; two customers can never share a mobile.
func (s *directoryService) CreateCustomer(customer *model.Customer) (uint, error) {
	if errs := validator.ValidateStruct(customer); len(errs) > 0 {
		first := errs[0]
		return 0, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, first.FailedField, first.Tag)
	}

	existing, err := s.customerRepo.FindByMobile(nil, customer.Mobile)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}
	if err := s.customerRepo.Create(customer); err != nil {
		return 0, err
	}
	return customer.ID, nil
}

func (s *directoryService) UpdateCustomer(id uint, req *model.Customer) error {
	existing, err := s.customerRepo.FindByID(id)
	if err != nil {
		return ErrCustomerNotFound
	}

	if req.Mobile != existing.Mobile {
		if dup, err := s.customerRepo.FindByMobile(nil, req.Mobile); err == nil && dup.ID != id {
			return ErrDuplicateCustomer
		}
	}

	existing.Name = req.Name
	existing.Mobile = req.Mobile
	existing.DoctorName = req.DoctorName

	if errs := validator.ValidateStruct(existing); len(errs) > 0 {
		first := errs[0]
		return fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, first.FailedField, first.Tag)
	}
	return s.customerRepo.Update(existing)
}

func (s *directoryService) DeleteCustomer(id uint) error {
	if _, err := s.customerRepo.FindByID(id); err != nil {
		return ErrCustomerNotFound
	}
	return s.customerRepo.Delete(id)
}

func (s *directoryService) CustomerHistory(id uint) ([]model.Bill, error) {
	if _, err := s.customerRepo.FindByID(id); err != nil {
		return nil, ErrCustomerNotFound
	}
	return s.billRepo.FindByCustomer(id)
}

func (s *directoryService) ListSuppliers() ([]model.Supplier, error) {
	return s.supplierRepo.FindAll()
}
