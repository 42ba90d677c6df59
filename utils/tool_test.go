package utils

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-plantcare/models"
)

func TestNewRecordID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := NewRecordID()
		require.NoError(t, err)
		assert.True(t, ValidateRecordID(id), id)
		assert.False(t, seen[id])
		seen[id] = true
	}
	assert.False(t, ValidateRecordID("short"))
	assert.False(t, ValidateRecordID("abcdefgh-jklmnop"))
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		page, size         string
		wantPage, wantSize int
		wantOffset         int
	}{
		{"", "", 1, 10, 0},
		{"3", "20", 3, 20, 40},
		{"-1", "abc", 1, 10, 0},
		{"2", "1000", 2, 100, 100},
	}
	for _, tt := range tests {
		page, size, offset := ParsePagination(tt.page, tt.size)
		assert.Equal(t, tt.wantPage, page)
		assert.Equal(t, tt.wantSize, size)
		assert.Equal(t, tt.wantOffset, offset)
	}
}

func TestParsePagination_HugePage(t *testing.T) {
	page, size, offset := ParsePagination(strconv.Itoa(math.MaxInt), "100")
	assert.Equal(t, maxPage, page)
	assert.Equal(t, 100, size)
	assert.Positive(t, offset)
	assert.Equal(t, (maxPage-1)*100, offset)

	page, _, offset = ParsePagination(strconv.Itoa(math.MaxInt), "")
	assert.Equal(t, maxPage, page)
	assert.Positive(t, offset)

	// Beyond int range Atoi fails and the first page is used.
	page, _, offset = ParsePagination("99999999999999999999999", "")
	assert.Equal(t, 1, page)
	assert.Equal(t, 0, offset)
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2026, 3, 1, 8, 5, 9, 0, time.UTC)
	assert.Equal(t, "2026-03-01 08:05:09", FormatTime(ts))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: month 13", models.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("%w: plant x", models.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: timeout", models.ErrCatalogLoad), http.StatusBadGateway},
		{models.ErrUnauthorized, http.StatusUnauthorized},
		{models.ErrConflict, http.StatusConflict},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}
