package handler

import (
	"errors"

	"go-pharmacy-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reports service.ReportService
}

func NewReportHandler(reports service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// GetReport runs one of the fixed aggregation templates.
// GET /api/reports?type=&fromDate=&toDate=
func (h *ReportHandler) GetReport(c *fiber.Ctx) error {
	reportType := c.Query("type")
	if reportType == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Report type is required"})
	}

	rows, err := h.reports.Run(reportType, c.Query("fromDate"), c.Query("toDate"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownReportType) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to run report"})
	}
	return c.JSON(fiber.Map{"type": reportType, "rows": rows})
}

// GET /api/dashboard-stats
func (h *ReportHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.reports.DashboardStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}
	return c.JSON(stats)
}

// GetCurrentISTDate reports the server's idea of "today" so the
// billing screen never trusts the client clock.
// GET /api/current-ist-date
func (h *ReportHandler) GetCurrentISTDate(c *fiber.Ctx) error {
	now := service.ISTNow()
	return c.JSON(fiber.Map{
		"date": now.Format("2006-01-02"),
		"time": now.Format("15:04:05"),
		"iso":  now.Format("2006-01-02T15:04:05-07:00"),
	})
}
