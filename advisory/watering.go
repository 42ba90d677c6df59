package advisory

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go-plantcare/models"
)

// Formula constants: a 30 ml/day baseline for a 250 ml pot at 20 °C and ten
// light hours, adjusted by 3% per degree of deviation.
const (
	baseVolumeMl    = 30.0
	baseLightHours  = 10.0
	baseTempC       = 20.0
	tempCoefficient = 0.03
	basePotMl       = 250.0
)

// WateringInputs are the user-supplied calculator inputs.
type WateringInputs struct {
	TemperatureC float64 `json:"temperature"`
	PotVolumeMl  float64 `json:"potVolume"`
	PlantFactor  float64 `json:"plantFactor"`
}

// DefaultInputs are the values the calculator starts from.
func DefaultInputs() WateringInputs {
	return WateringInputs{
		TemperatureC: 20,
		PotVolumeMl:  50,
		PlantFactor:  0.9,
	}
}

// Validate rejects NaN and infinite values. Any finite value is accepted.
func (in WateringInputs) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"temperature", in.TemperatureC},
		{"potVolume", in.PotVolumeMl},
		{"plantFactor", in.PlantFactor},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s is not a finite number", models.ErrInvalidInput, f.name)
		}
	}
	return nil
}

// ParseInputs converts raw form values into WateringInputs.
func ParseInputs(temperature, potVolume, plantFactor string) (WateringInputs, error) {
	var in WateringInputs
	var err error
	if in.TemperatureC, err = parseNumber("temperature", temperature); err != nil {
		return WateringInputs{}, err
	}
	if in.PotVolumeMl, err = parseNumber("potVolume", potVolume); err != nil {
		return WateringInputs{}, err
	}
	if in.PlantFactor, err = parseNumber("plantFactor", plantFactor); err != nil {
		return WateringInputs{}, err
	}
	return in, in.Validate()
}

// parseNumber parses one form value, naming field on failure.
func parseNumber(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", models.ErrInvalidInput, field, raw)
	}
	return v, nil
}

// RawWatering evaluates the formula without rounding or clamping.
func RawWatering(in WateringInputs, band SeasonBand) float64 {
	return baseVolumeMl *
		(band.LightConst / baseLightHours) *
		(1 + tempCoefficient*(in.TemperatureC-baseTempC)) *
		(in.PotVolumeMl / basePotMl) *
		band.Multiplier *
		in.PlantFactor
}

// ComputeWatering returns the recommended ml/day for month, rounded half
// away from zero and clamped at 0.
func ComputeWatering(in WateringInputs, month int) (int, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	band, err := ResolveSeason(month)
	if err != nil {
		return 0, err
	}

	rounded := math.Round(RawWatering(in, band))
	if rounded <= 0 {
		return 0, nil
	}
	// Saturate instead of overflowing the int conversion.
	if rounded >= float64(math.MaxInt) {
		return math.MaxInt, nil
	}
	return int(rounded), nil
}
