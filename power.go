package main

import "fmt"

// Upper bounds keep span*darkness*intensity well inside int64.
const (
	MaxSetpoint  = 1 << 24
	MaxIntensity = 1000 // percent
)

// PowerConfig maps pixel darkness onto laser S-values.
type PowerConfig struct {
	MinPower  int
	MaxPower  int
	Threshold int // minimum darkness (255 - pixel) that burns at all

	// Intensity scales the power span in percent. It only applies when
	// HasIntensity is set.
	Intensity    int
	HasIntensity bool
}

func (c PowerConfig) Validate() error {
	if c.MinPower < 0 || c.MaxPower < 0 {
		return fmt.Errorf("%w: power range %d..%d must not be negative", ErrInvalidPower, c.MinPower, c.MaxPower)
	}
	if c.MaxPower > MaxSetpoint {
		return fmt.Errorf("%w: max power %d exceeds %d", ErrInvalidPower, c.MaxPower, MaxSetpoint)
	}
	if c.MaxPower < c.MinPower {
		return fmt.Errorf("%w: max power %d is below min power %d", ErrInvalidPower, c.MaxPower, c.MinPower)
	}
	if c.Threshold < 0 {
		return fmt.Errorf("%w: negative threshold %d", ErrInvalidPower, c.Threshold)
	}
	if c.HasIntensity && (c.Intensity < 0 || c.Intensity > MaxIntensity) {
		return fmt.Errorf("%w: intensity %d%% outside 0..%d", ErrInvalidPower, c.Intensity, MaxIntensity)
	}
	return nil
}

// Power returns the S-value for a pixel. Division truncates, the controller
// reads the exact integer.
func Power(pixel uint8, cfg PowerConfig) int {
	darkness := 255 - int64(pixel)
	if darkness < int64(cfg.Threshold) {
		return 0
	}

	span := int64(cfg.MaxPower - cfg.MinPower)
	var p int64
	if cfg.HasIntensity {
		p = int64(cfg.MinPower) + span*darkness*int64(cfg.Intensity)/25500
	} else {
		p = int64(cfg.MinPower) + span*darkness/255
	}

	if p < 0 {
		return 0
	}
	if p > int64(cfg.MaxPower) {
		return cfg.MaxPower
	}
	return int(p)
}
