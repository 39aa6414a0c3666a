package difference

import (
	"errors"
	"fmt"
)

// Property keys.
const (
	PropDifferenceType     = "Difference Type"
	PropSymmetryType       = "Symmetry Type"
	PropPinPowerDifference = "Pin Power Difference"
	PropAxialPower         = "Axial Power"
	PropRadialPower        = "Radial Power"
)

// Difference types.
const (
	// Basic is loaded - reference.
	Basic = "Basic"
	// Relative is (loaded - reference) / reference; cells with a zero
	// reference are 0.
	Relative = "Relative"
)

// SymmetryFull weights every pin with 1.0.
const SymmetryFull = "Full"

const (
	yes = "yes"
	no  = "no"
)

// ErrInvalidProperty is returned by New for an unrecognized key or a value
// outside the allowed set.
var ErrInvalidProperty = errors.New("difference: invalid property")

type config struct {
	kind     string
	symmetry string
	pin      bool
	axial    bool
	radial   bool
}

func defaultConfig() config {
	return config{kind: Basic, symmetry: SymmetryFull, pin: true, axial: true, radial: true}
}

func (c config) apply(key, value string) (config, error) {
	switch key {
	case PropDifferenceType:
		if value != Basic && value != Relative {
			return c, fmt.Errorf("%w: %q must be %q or %q, got %q", ErrInvalidProperty, key, Basic, Relative, value)
		}
		c.kind = value
	case PropSymmetryType:
		if value != SymmetryFull {
			return c, fmt.Errorf("%w: unsupported symmetry %q", ErrInvalidProperty, value)
		}
		c.symmetry = value
	case PropPinPowerDifference, PropAxialPower, PropRadialPower:
		b, err := yesNo(key, value)
		if err != nil {
			return c, err
		}
		switch key {
		case PropPinPowerDifference:
			c.pin = b
		case PropAxialPower:
			c.axial = b
		default:
			c.radial = b
		}
	default:
		return c, fmt.Errorf("%w: unknown key %q", ErrInvalidProperty, key)
	}
	return c, nil
}

func (c config) properties() map[string]string {
	return map[string]string{
		PropDifferenceType:     c.kind,
		PropSymmetryType:       c.symmetry,
		PropPinPowerDifference: flag(c.pin),
		PropAxialPower:         flag(c.axial),
		PropRadialPower:        flag(c.radial),
	}
}

func yesNo(key, value string) (bool, error) {
	switch value {
	case yes:
		return true, nil
	case no:
		return false, nil
	}
	return false, fmt.Errorf("%w: %q must be %q or %q, got %q", ErrInvalidProperty, key, yes, no, value)
}

func flag(b bool) string {
	if b {
		return yes
	}
	return no
}
