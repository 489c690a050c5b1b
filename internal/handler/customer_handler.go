package handler

import (
	"errors"

	"go-pharmacy-pos/internal/model"
	"go-pharmacy-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CustomerHandler struct {
	directory service.DirectoryService
}

func NewCustomerHandler(directory service.DirectoryService) *CustomerHandler {
	return &CustomerHandler{directory: directory}
}

func (h *CustomerHandler) GetCustomers(c *fiber.Ctx) error {
	customers, err := h.directory.ListCustomers()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch customers"})
	}
	return c.JSON(customers)
}

func (h *CustomerHandler) SearchCustomers(c *fiber.Ctx) error {
	customers, err := h.directory.SearchCustomers(c.Query("query"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Search failed"})
	}
	return c.JSON(customers)
}

func (h *CustomerHandler) GetCustomer(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}
	customer, err := h.directory.GetCustomer(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Customer not found"})
	}
	return c.JSON(customer)
}

// CreateCustomer answers with the existing id when the mobile number
// is already on file, matching the lazy-create behaviour of billing.
func (h *CustomerHandler) CreateCustomer(c *fiber.Ctx) error {
	var customer model.Customer
	if err := c.BodyParser(&customer); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	id, err := h.directory.CreateCustomer(&customer)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Customer added", "id": id})
}

func (h *CustomerHandler) UpdateCustomer(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}
	var customer model.Customer
	if err := c.BodyParser(&customer); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.directory.UpdateCustomer(id, &customer); err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Customer updated successfully"})
}

func (h *CustomerHandler) DeleteCustomer(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}
	if err := h.directory.DeleteCustomer(id); err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Delete failed"})
	}
	return c.JSON(fiber.Map{"message": "Customer deleted"})
}

func (h *CustomerHandler) GetCustomerHistory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}
	bills, err := h.directory.CustomerHistory(id)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch history"})
	}
	return c.JSON(bills)
}

func (h *CustomerHandler) GetSuppliers(c *fiber.Ctx) error {
	suppliers, err := h.directory.ListSuppliers()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch suppliers"})
	}
	return c.JSON(suppliers)
}
