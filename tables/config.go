package tables

import "fmt"

// Default values, in source units (twips for both supported formats).
const (
	DefaultWidth     = 1000.0
	DefaultHeight    = 500.0
	DefaultFontSize  = 12.0
	DefaultTolerance = 5.0
)

// Config holds table reconstruction settings
type Config struct {
	// Width substituted when a cell has no usable width
	DefaultWidth float64

	// Height substituted when a row has no explicit height
	DefaultHeight float64

	// Font size stamped on every emitted cell
	FontSize float64

	// Maximum distance at which two edges are treated as the same grid boundary
	Tolerance float64

	// Divisor applied to raw widths and heights before use (1 keeps source units)
	UnitDivisor float64
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		DefaultWidth:  DefaultWidth,
		DefaultHeight: DefaultHeight,
		FontSize:      DefaultFontSize,
		Tolerance:     DefaultTolerance,
		UnitDivisor:   1,
	}
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if c.DefaultWidth <= 0 {
		return fmt.Errorf("default width must be positive, got %g", c.DefaultWidth)
	}
	if c.DefaultHeight <= 0 {
		return fmt.Errorf("default height must be positive, got %g", c.DefaultHeight)
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("font size must be positive, got %g", c.FontSize)
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, got %g", c.Tolerance)
	}
	if c.UnitDivisor <= 0 {
		return fmt.Errorf("unit divisor must be positive, got %g", c.UnitDivisor)
	}
	return nil
}

// scale converts a raw source measurement with the configured divisor.
func (c Config) scale(v float64) float64 {
	if c.UnitDivisor == 0 || c.UnitDivisor == 1 {
		return v
	}
	return v / c.UnitDivisor
}
