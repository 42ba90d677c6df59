package advisory

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-plantcare/models"
)

func TestComputeWatering_Reference(t *testing.T) {
	// 30 * 0.9 * 1 * 1 * 1.0 * 1 = 27
	got, err := ComputeWatering(WateringInputs{TemperatureC: 20, PotVolumeMl: 250, PlantFactor: 1}, 4)
	require.NoError(t, err)
	assert.Equal(t, 27, got)
}

func TestComputeWatering_Seasons(t *testing.T) {
	in := WateringInputs{TemperatureC: 20, PotVolumeMl: 250, PlantFactor: 1}
	tests := []struct {
		month int
		want  int
	}{
		{7, 51},  // 30 * 1.3 * 1.3 = 50.7
		{10, 13}, // 30 * 0.7 * 0.6 = 12.6
		{1, 3},   // 30 * 0.5 * 0.2 = 3
	}
	for _, tt := range tests {
		got, err := ComputeWatering(in, tt.month)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "month %d", tt.month)
	}
}

func TestComputeWatering_TemperatureCorrection(t *testing.T) {
	// 30 * 0.9 * (1 + 0.03*10) = 35.1
	got, err := ComputeWatering(WateringInputs{TemperatureC: 30, PotVolumeMl: 250, PlantFactor: 1}, 4)
	require.NoError(t, err)
	assert.Equal(t, 35, got)
}

func TestComputeWatering_Defaults(t *testing.T) {
	// 30 * 0.9 * 1 * 0.2 * 1.0 * 0.9 = 4.86
	got, err := ComputeWatering(DefaultInputs(), 3)
	require.NoError(t, err)
	assert.Equal(t, 5, got)
}

func TestComputeWatering_RoundsHalfAwayFromZero(t *testing.T) {
	// 30 * 0.9 * (125/250) = 13.5
	got, err := ComputeWatering(WateringInputs{TemperatureC: 20, PotVolumeMl: 125, PlantFactor: 1}, 4)
	require.NoError(t, err)
	assert.Equal(t, 14, got)
}

func TestComputeWatering_NeverNegative(t *testing.T) {
	inputs := []WateringInputs{
		{TemperatureC: -100, PotVolumeMl: 250, PlantFactor: 1},
		{TemperatureC: 20, PotVolumeMl: -500, PlantFactor: 1},
		{TemperatureC: 20, PotVolumeMl: 250, PlantFactor: -3},
		{TemperatureC: -40, PotVolumeMl: 10, PlantFactor: 0.1},
		{TemperatureC: -1e9, PotVolumeMl: 1e9, PlantFactor: 1e9},
	}
	for _, in := range inputs {
		for m := 1; m <= 12; m++ {
			got, err := ComputeWatering(in, m)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, got, 0, "inputs %+v month %d", in, m)
		}
	}
}

func TestComputeWatering_MonotonicInPotVolume(t *testing.T) {
	for m := 1; m <= 12; m++ {
		prev := -1
		for v := 0.0; v <= 2000; v += 25 {
			got, err := ComputeWatering(WateringInputs{TemperatureC: 22, PotVolumeMl: v, PlantFactor: 0.8}, m)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, got, prev, "month %d volume %v", m, v)
			prev = got
		}
	}
}

func TestComputeWatering_MonotonicInPlantFactor(t *testing.T) {
	for m := 1; m <= 12; m++ {
		prev := -1
		for f := 0.0; f <= 2; f += 0.05 {
			got, err := ComputeWatering(WateringInputs{TemperatureC: 18, PotVolumeMl: 400, PlantFactor: f}, m)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, got, prev, "month %d factor %v", m, f)
			prev = got
		}
	}
}

func TestComputeWatering_HugeInputsSaturate(t *testing.T) {
	got, err := ComputeWatering(WateringInputs{TemperatureC: 20, PotVolumeMl: math.MaxFloat64, PlantFactor: 1}, 7)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, got)
}

func TestComputeWatering_InvalidInput(t *testing.T) {
	_, err := ComputeWatering(WateringInputs{TemperatureC: math.NaN(), PotVolumeMl: 250, PlantFactor: 1}, 4)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = ComputeWatering(WateringInputs{TemperatureC: 20, PotVolumeMl: math.Inf(1), PlantFactor: 1}, 4)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = ComputeWatering(WateringInputs{TemperatureC: 20, PotVolumeMl: 250, PlantFactor: 1}, 0)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestParseInputs(t *testing.T) {
	in, err := ParseInputs("20", " 250 ", "0.9")
	require.NoError(t, err)
	assert.Equal(t, WateringInputs{TemperatureC: 20, PotVolumeMl: 250, PlantFactor: 0.9}, in)

	_, err = ParseInputs("warm", "250", "1")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.Contains(t, err.Error(), "temperature")

	_, err = ParseInputs("20", "", "1")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.Contains(t, err.Error(), "potVolume")

	_, err = ParseInputs("20", "250", "NaN")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestAdvisor_UsesClock(t *testing.T) {
	a := NewAdvisor(MonthClock(3))
	assert.Equal(t, 3, a.CurrentMonth())

	panel, err := a.CarePanel(0)
	require.NoError(t, err)
	assert.True(t, panel.RepotAllowed)

	panel, err = a.CarePanel(4)
	require.NoError(t, err)
	assert.False(t, panel.RepotAllowed)

	volume, month, err := a.Watering(WateringInputs{TemperatureC: 20, PotVolumeMl: 250, PlantFactor: 1}, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, month)
	assert.Equal(t, 27, volume)
}
