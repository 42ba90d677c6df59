package controllers

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"go-plantcare/advisory"
	"go-plantcare/models"
)

// FlexNumber holds the raw text of a JSON number or numeric string. Slider
// controls post strings, API clients post numbers; both are accepted and
// parsed later so that non-numeric text is reported as invalid input.
type FlexNumber string

// UnmarshalJSON keeps the raw text of a number or the contents of a string.
func (n *FlexNumber) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*n = FlexNumber(str)
		return nil
	}
	*n = FlexNumber(s)
	return nil
}

// WateringRequest is the calculator input. Month is optional and defaults to
// the current month.
type WateringRequest struct {
	Temperature FlexNumber `json:"temperature" form:"temperature"`
	PotVolume   FlexNumber `json:"potVolume" form:"potVolume"`
	PlantFactor FlexNumber `json:"plantFactor" form:"plantFactor"`
	Month       *int       `json:"month" form:"month"`
}

// Inputs parses the numeric fields.
func (r WateringRequest) Inputs() (advisory.WateringInputs, error) {
	return advisory.ParseInputs(string(r.Temperature), string(r.PotVolume), string(r.PlantFactor))
}

// MonthValue returns the requested month, 0 when unset, or an error for
// anything outside 1..12.
func (r WateringRequest) MonthValue() (int, error) {
	if r.Month == nil {
		return 0, nil
	}
	if err := advisory.ValidateMonth(*r.Month); err != nil {
		return 0, err
	}
	return *r.Month, nil
}

// monthQuery reads the optional "month" query parameter.
func monthQuery(ctx *gin.Context) (int, error) {
	raw, ok := ctx.GetQuery("month")
	if !ok || raw == "" {
		return 0, nil
	}
	month, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: month %q is not a number", models.ErrInvalidInput, raw)
	}
	if err := advisory.ValidateMonth(month); err != nil {
		return 0, err
	}
	return month, nil
}

// bindError wraps a binding failure as invalid input.
func bindError(err error) error {
	return fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
}
