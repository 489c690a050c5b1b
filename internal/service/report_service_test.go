package service

import (
	"errors"
	"testing"
	"time"
)

func TestRunRejectsUnknownReportType(t *testing.T) {
	svc := NewReportService(nil, nil)

	if _, err := svc.Run("velocity", "", ""); !errors.Is(err, ErrUnknownReportType) {
		t.Fatalf("err = %v, want ErrUnknownReportType", err)
	}
}

func TestParseRangeExplicitDates(t *testing.T) {
	from, to := parseRange("2026-01-01", "2026-01-31")

	if from.Format("2006-01-02") != "2026-01-01" {
		t.Errorf("from = %s", from.Format("2006-01-02"))
	}
	if to.Format("2006-01-02") != "2026-01-31" {
		t.Errorf("to = %s", to.Format("2006-01-02"))
	}
	if from.Location() != istZone {
		t.Errorf("from parsed in %v, want IST", from.Location())
	}
}

func TestParseRangeDefaultsToLastThirtyDays(t *testing.T) {
	from, to := parseRange("", "")

	if to.Format("2006-01-02") != ISTToday().Format("2006-01-02") {
		t.Errorf("to = %s, want today in IST", to.Format("2006-01-02"))
	}
	if got := to.Sub(from); got != 30*24*time.Hour {
		t.Errorf("range = %v, want 30 days", got)
	}
}

func TestParseRangeIgnoresMalformedDates(t *testing.T) {
	_, to := parseRange("31/01/2026", "soon")

	if to.Format("2006-01-02") != ISTToday().Format("2006-01-02") {
		t.Errorf("malformed to-date should fall back to today, got %s", to.Format("2006-01-02"))
	}
}
