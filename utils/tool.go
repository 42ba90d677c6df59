package utils

import (
	"math"
	"strconv"
	"time"

	gonanoid "github.com/matoous/go-nanoid"
)

const (
	recordIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	recordIDLength   = 16

	// TimeLayout is how timestamps are stored and rendered.
	TimeLayout = "2006-01-02 15:04:05"

	defaultPageSize = 10
	maxPageSize     = 100
	// maxPage keeps (page-1)*pageSize inside int.
	maxPage = math.MaxInt / maxPageSize
)

// NewRecordID generates a 16 character public id for a stored record.
func NewRecordID() (string, error) {
	return gonanoid.Generate(recordIDAlphabet, recordIDLength)
}

// ValidateRecordID reports whether id has the shape NewRecordID produces.
func ValidateRecordID(id string) bool {
	if len(id) != recordIDLength {
		return false
	}
	for _, r := range id {
		if !(r >= '0' && r <= '9' || r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z') {
			return false
		}
	}
	return true
}

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// ParsePagination reads page and pageSize query values, falling back to
// page 1 and the default size for missing or invalid input. Pages past
// maxPage are clamped to it.
func ParsePagination(pageRaw, sizeRaw string) (page, pageSize, offset int) {
	page, err := strconv.Atoi(pageRaw)
	if err != nil || page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	pageSize, err = strconv.Atoi(sizeRaw)
	if err != nil || pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize, (page - 1) * pageSize
}
