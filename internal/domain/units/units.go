// Package units normalizes user-supplied lengths into parsecs.
package units

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidDistance signals a value or unit that cannot represent a
// positive length. The domain package re-exports it as
// domain.ErrInvalidDistance.
var ErrInvalidDistance = errors.New("invalid distance")

// Unit is a recognized length unit.
type Unit string

// Supported units.
const (
	Parsec     Unit = "pc"
	Kiloparsec Unit = "kpc"
	LightYear  Unit = "ly"
	AU         Unit = "au"
	Kilometer  Unit = "km"
	Mile       Unit = "mi"
	Meter      Unit = "m"
)

// Meters per parsec and friends (IAU 2015 values).
const (
	metersPerParsec    = 3.0856775814913673e16
	metersPerLightYear = 9.4607304725808e15
	metersPerAU        = 1.495978707e11
	metersPerKilometer = 1e3
	metersPerMile      = 1609.344
)

// parsecsPer maps each unit to its parsec equivalent.
var parsecsPer = map[Unit]float64{
	Parsec:     1,
	Kiloparsec: 1e3,
	LightYear:  metersPerLightYear / metersPerParsec,
	AU:         metersPerAU / metersPerParsec,
	Kilometer:  metersPerKilometer / metersPerParsec,
	Mile:       metersPerMile / metersPerParsec,
	Meter:      1 / metersPerParsec,
}

// Distance is a user-supplied length with its original unit, kept so
// presentation can echo the value exactly as entered.
type Distance struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// ParseUnit resolves a unit name, case-insensitively. "lyr" and
// "lightyear" are accepted aliases for ly.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pc", "parsec", "parsecs":
		return Parsec, nil
	case "kpc":
		return Kiloparsec, nil
	case "ly", "lyr", "lightyear", "light-year", "light-years":
		return LightYear, nil
	case "au":
		return AU, nil
	case "km":
		return Kilometer, nil
	case "mi", "mile", "miles":
		return Mile, nil
	case "m", "meter", "meters", "metre", "metres":
		return Meter, nil
	default:
		return "", fmt.Errorf("unrecognized unit %q: %w", s, ErrInvalidDistance)
	}
}

// Parse validates a raw value/unit pair from an input boundary (flag,
// query parameter, text field). Non-numeric or non-positive values never
// reach the query builder.
func Parse(value, unit string) (Distance, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return Distance{}, fmt.Errorf("distance %q is not a number: %w", value, ErrInvalidDistance)
	}
	u, err := ParseUnit(unit)
	if err != nil {
		return Distance{}, err
	}
	d := Distance{Value: v, Unit: u}
	if _, err := d.ToParsecs(); err != nil {
		return Distance{}, err
	}
	return d, nil
}

// ToParsecs converts the distance to parsecs. Fails with
// ErrInvalidDistance when the value is non-positive, not finite, or the
// unit is unknown.
func (d Distance) ToParsecs() (float64, error) {
	if math.IsNaN(d.Value) || math.IsInf(d.Value, 0) || d.Value <= 0 {
		return 0, fmt.Errorf("distance must be a positive finite number, got %v: %w", d.Value, ErrInvalidDistance)
	}
	scale, ok := parsecsPer[d.Unit]
	if !ok {
		return 0, fmt.Errorf("unrecognized unit %q: %w", d.Unit, ErrInvalidDistance)
	}
	return d.Value * scale, nil
}

// String renders the distance as entered, for titles and logs.
func (d Distance) String() string {
	return fmt.Sprintf("%.2f %s", d.Value, d.Unit)
}
