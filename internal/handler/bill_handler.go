package handler

import (
	"errors"

	"go-pharmacy-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type BillHandler struct {
	billing service.BillingService
}

func NewBillHandler(billing service.BillingService) *BillHandler {
	return &BillHandler{billing: billing}
}

// GetBills lists completed sales only; held drafts live behind
// /api/held-bills.
func (h *BillHandler) GetBills(c *fiber.Ctx) error {
	bills, err := h.billing.ListBills()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to list bills"})
	}
	return c.JSON(bills)
}

func (h *BillHandler) GetHeldBills(c *fiber.Ctx) error {
	bills, err := h.billing.ListHeldBills()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to list held bills"})
	}
	return c.JSON(bills)
}

func (h *BillHandler) GetBill(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid bill ID"})
	}
	bill, err := h.billing.GetBill(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Bill not found"})
	}
	return c.JSON(bill)
}

func (h *BillHandler) CreateBill(c *fiber.Ctx) error {
	var in service.BillInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	bill, err := h.billing.CreateBill(&in)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create bill"})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Bill created", "id": bill.ID, "bill_number": bill.BillNumber})
}

func (h *BillHandler) UpdateBill(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid bill ID"})
	}
	var in service.BillInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	bill, err := h.billing.UpdateBill(id, &in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBillNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrValidation):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Failed to update bill"})
		}
	}
	return c.JSON(fiber.Map{"message": "Bill updated", "data": bill})
}

func (h *BillHandler) DeleteBill(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid bill ID"})
	}
	if err := h.billing.DeleteBill(id); err != nil {
		switch {
		case errors.Is(err, service.ErrBillNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrBillFinalized):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Failed to delete bill"})
		}
	}
	return c.JSON(fiber.Map{"message": "Bill deleted"})
}
