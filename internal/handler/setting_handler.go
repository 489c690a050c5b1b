package handler

import (
	"fmt"

	"go-pharmacy-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SettingHandler struct {
	catalog service.CatalogService
}

func NewSettingHandler(catalog service.CatalogService) *SettingHandler {
	return &SettingHandler{catalog: catalog}
}

// GetSettings returns the flat key/value object.
func (h *SettingHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.catalog.GetSettings()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch settings"})
	}
	return c.JSON(settings)
}

// SaveSettings upserts every key in the body. Values arrive as any
// JSON scalar and are stored as strings.
func (h *SettingHandler) SaveSettings(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if nested, ok := body["settings"].(map[string]interface{}); ok {
		body = nested
	}

	settings := make(map[string]string, len(body))
	for k, v := range body {
		settings[k] = fmt.Sprintf("%v", v)
	}
	if err := h.catalog.SaveSettings(settings); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save settings"})
	}
	return c.JSON(fiber.Map{"message": "Settings saved"})
}
