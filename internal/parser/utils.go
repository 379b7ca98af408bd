package parser

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order when reading a delivery-date cell. Customer
// documents are day-first; ISO shows up when a workbook was machine-generated.
var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"2006-01-02",
	"02 Jan 2006",
	"2 January 2006",
	"02/01/06",
}

// parseDeliveryDate reads a date cell. The bool is false when no layout fits.
func parseDeliveryDate(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, text, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseQuantity reads a numeric cell, tolerating thousands separators and
// surrounding whitespace. The bool is false for non-numeric content.
func parseQuantity(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}
	text = strings.ReplaceAll(text, ",", "")
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// withinTolerance compares a recomputed sum against a document-stated total.
func withinTolerance(sum, stated, tolerance float64) bool {
	return math.Abs(sum-stated) <= tolerance
}

// isUnusualDate reports whether a delivery date breaks the lead-time rule.
// Orders in this domain are placed a fixed number of days ahead (next-day for
// every current customer), so anything that is not "processing time plus the
// lead days" is flagged, but never rejected.
func isUnusualDate(date, now time.Time, leadDays int) bool {
	expected := now.AddDate(0, 0, leadDays)
	return date.Year() != expected.Year() ||
		date.Month() != expected.Month() ||
		date.Day() != expected.Day()
}

// equalsFold is a trimmed, case-insensitive cell comparison used for layout
// fingerprints and label anchors.
func equalsFold(cell, want string) bool {
	return strings.EqualFold(strings.TrimSpace(cell), want)
}
