package handler

import (
	"errors"

	"go-pharmacy-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PurchaseHandler struct {
	purchases service.PurchaseService
}

func NewPurchaseHandler(purchases service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchases: purchases}
}

func (h *PurchaseHandler) GetPurchases(c *fiber.Ctx) error {
	purchases, err := h.purchases.ListPurchases()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to list purchases"})
	}
	return c.JSON(purchases)
}

func (h *PurchaseHandler) GetPurchase(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid purchase ID"})
	}
	purchase, err := h.purchases.GetPurchase(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Purchase bill not found"})
	}
	return c.JSON(purchase)
}

func (h *PurchaseHandler) CreatePurchase(c *fiber.Ctx) error {
	var in service.PurchaseInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	purchase, err := h.purchases.CreatePurchase(&in)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create purchase bill"})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Purchase bill created", "id": purchase.ID})
}
