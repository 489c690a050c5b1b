package service

import (
	"errors"
	"time"

	"go-pharmacy-pos/internal/repository"
)

var ErrUnknownReportType = errors.New("unknown report type")

type ReportService interface {
	Run(reportType, fromDate, toDate string) (interface{}, error)
	DashboardStats() (*repository.DashboardStats, error)
}

type reportService struct {
	reportRepo  repository.ReportRepository
	settingRepo repository.SettingRepository
}

func NewReportService(rRepo repository.ReportRepository, sRepo repository.SettingRepository) ReportService {
	return &reportService{reportRepo: rRepo, settingRepo: sRepo}
}

// Run executes one of the fixed aggregation templates over the given
// date range. Missing dates default to the last 30 IST days.
func (s *reportService) Run(reportType, fromDate, toDate string) (interface{}, error) {
	from, to := parseRange(fromDate, toDate)

	switch reportType {
	case "sales":
		return s.reportRepo.Sales(from, to)
	case "gst":
		return s.reportRepo.GST(from, to)
	case "inventory":
		return s.reportRepo.Inventory()
	case "purchases":
		return s.reportRepo.Purchases(from, to)
	case "supplier_purchases":
		return s.reportRepo.SupplierPurchases(from, to)
	case "expiry":
		return s.reportRepo.Expiry(to.Format("2006-01"))
	case "profitability":
		return s.reportRepo.Profitability(from, to)
	case "movement":
		return s.reportRepo.Movement(from, to)
	case "hsn_sale":
		return s.reportRepo.HSNSales(from, to)
	default:
		return nil, ErrUnknownReportType
	}
}

func (s *reportService) DashboardStats() (*repository.DashboardStats, error) {
	threshold := s.settingRepo.LowStockThreshold()
	// Products expiring within three months count as "expiring soon".
	cutoff := ISTToday().AddDate(0, 3, 0).Format("2006-01")
	return s.reportRepo.GetDashboardStats(ISTToday(), threshold, cutoff)
}

func parseRange(fromDate, toDate string) (time.Time, time.Time) {
	to := ISTToday()
	if d, err := time.ParseInLocation("2006-01-02", toDate, istZone); err == nil {
		to = d
	}
	from := to.AddDate(0, 0, -30)
	if d, err := time.ParseInLocation("2006-01-02", fromDate, istZone); err == nil {
		from = d
	}
	return from, to
}
