package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPower(t *testing.T) {
	tests := []struct {
		name  string
		pixel uint8
		cfg   PowerConfig
		want  int
	}{
		{"black full range", 0, PowerConfig{MinPower: 0, MaxPower: 100, Threshold: 1}, 100},
		{"white below threshold", 255, PowerConfig{MinPower: 0, MaxPower: 100, Threshold: 1}, 0},
		{"near white below threshold", 240, PowerConfig{MinPower: 2, MaxPower: 50, Threshold: 20}, 0},
		{"at threshold burns", 235, PowerConfig{MinPower: 2, MaxPower: 50, Threshold: 20}, 5},
		{"mid gray truncates", 128, PowerConfig{MinPower: 2, MaxPower: 50}, 25},
		{"zero threshold white gives min", 255, PowerConfig{MinPower: 2, MaxPower: 50}, 2},
		{"full intensity", 0, PowerConfig{MinPower: 2, MaxPower: 50, Intensity: 100, HasIntensity: true}, 50},
		{"half intensity", 0, PowerConfig{MinPower: 2, MaxPower: 50, Intensity: 50, HasIntensity: true}, 26},
		{"zero intensity", 0, PowerConfig{MinPower: 2, MaxPower: 50, Intensity: 0, HasIntensity: true}, 2},
		{"intensity above 100 clamps", 0, PowerConfig{MinPower: 2, MaxPower: 50, Intensity: 200, HasIntensity: true}, 50},
		{"flat range", 10, PowerConfig{MinPower: 30, MaxPower: 30}, 30},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Power(tc.pixel, tc.cfg))
		})
	}
}

func TestPowerProperties(t *testing.T) {
	configs := []PowerConfig{
		{MinPower: 0, MaxPower: 100, Threshold: 1},
		{MinPower: 2, MaxPower: 50, Threshold: 20, Intensity: 100, HasIntensity: true},
		{MinPower: 10, MaxPower: 1000, Threshold: 0, Intensity: 37, HasIntensity: true},
		{MinPower: 0, MaxPower: 255, Threshold: 128, Intensity: 150, HasIntensity: true},
	}

	for _, cfg := range configs {
		prev := -1
		// walk from white to black, darkness increasing
		for p := 255; p >= 0; p-- {
			power := Power(uint8(p), cfg)
			if 255-p < cfg.Threshold {
				require.Zero(t, power, "pixel %d below threshold %d", p, cfg.Threshold)
			}
			require.GreaterOrEqual(t, power, 0, "pixel %d", p)
			require.LessOrEqual(t, power, cfg.MaxPower, "pixel %d", p)
			require.GreaterOrEqual(t, power, prev, "power decreased at pixel %d", p)
			prev = power
		}
	}
}

func TestPowerConfigValidate(t *testing.T) {
	assert.NoError(t, PowerConfig{MinPower: 2, MaxPower: 50, Threshold: 20}.Validate())
	assert.ErrorIs(t, PowerConfig{MinPower: 60, MaxPower: 50}.Validate(), ErrInvalidPower)
	assert.ErrorIs(t, PowerConfig{MinPower: -1, MaxPower: 50}.Validate(), ErrInvalidPower)
	assert.ErrorIs(t, PowerConfig{MaxPower: 50, Threshold: -3}.Validate(), ErrInvalidPower)
	assert.ErrorIs(t, PowerConfig{MaxPower: 50, Intensity: -1, HasIntensity: true}.Validate(), ErrInvalidPower)
	assert.ErrorIs(t, PowerConfig{MaxPower: MaxSetpoint + 1}.Validate(), ErrInvalidPower)
	assert.ErrorIs(t, PowerConfig{MaxPower: 50, Intensity: MaxIntensity + 1, HasIntensity: true}.Validate(), ErrInvalidPower)
}

func TestPowerLargestSettings(t *testing.T) {
	cfg := PowerConfig{MinPower: 0, MaxPower: MaxSetpoint, Intensity: MaxIntensity, HasIntensity: true}
	require.NoError(t, cfg.Validate())

	prev := 0
	for p := 255; p >= 0; p-- {
		power := Power(uint8(p), cfg)
		require.GreaterOrEqual(t, power, prev, "power decreased at pixel %d", p)
		require.LessOrEqual(t, power, MaxSetpoint)
		prev = power
	}
	assert.Equal(t, MaxSetpoint, Power(0, cfg))
	assert.Equal(t, MaxSetpoint/2, Power(0, PowerConfig{MaxPower: MaxSetpoint, Intensity: 50, HasIntensity: true}))
}
