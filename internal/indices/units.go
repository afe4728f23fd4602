package indices

import "fmt"

// Physical units as they appear in CORDEX model output and in index
// definitions.
const (
	UnitKelvin  = "K"
	UnitCelsius = "degC"
	UnitFlux    = "kg m-2 s-1" // precipitation and snowfall flux
	UnitMMDay   = "mm/day"
	UnitMM      = "mm"
	UnitCM      = "cm"
	UnitMS      = "m s-1"
	UnitDays    = "days"
)

const (
	kelvinOffset = 273.15

	// A constant flux of 1 kg m-2 s-1 sustained over a day accumulates
	// 86400 mm of water equivalent, or 8640 cm of snow assuming the
	// conventional 10:1 snow-to-liquid ratio.
	fluxToMMPerDay = 86400
	fluxToCMPerDay = 8640
)

// conversion is an affine unit transform: out = in*Scale + Offset.
type conversion struct {
	Scale  float64
	Offset float64
}

func (c conversion) apply(v float64) float64 { return v*c.Scale + c.Offset }

func (c conversion) invert() conversion {
	return conversion{Scale: 1 / c.Scale, Offset: -c.Offset / c.Scale}
}

// unitConversion resolves the transform from one unit to another.
// Only the pairs that occur in CORDEX daily output are supported.
func unitConversion(from, to string) (conversion, error) {
	if from == to {
		return conversion{Scale: 1}, nil
	}
	type pair struct{ from, to string }
	table := map[pair]conversion{
		{UnitKelvin, UnitCelsius}: {Scale: 1, Offset: -kelvinOffset},
		{UnitFlux, UnitMMDay}:     {Scale: fluxToMMPerDay},
		{UnitFlux, UnitMM}:        {Scale: fluxToMMPerDay},
		{UnitFlux, UnitCM}:        {Scale: fluxToCMPerDay},
		{UnitMMDay, UnitMM}:       {Scale: 1},
	}
	if c, ok := table[pair{from, to}]; ok {
		return c, nil
	}
	if c, ok := table[pair{to, from}]; ok {
		return c.invert(), nil
	}
	return conversion{}, fmt.Errorf("unsupported unit conversion from %q to %q", from, to)
}

// thresholdInGridUnit converts a threshold declared in its natural
// unit into the unit of the input grid, so comparisons happen in the
// grid's native representation.
func thresholdInGridUnit(value float64, unit, gridUnit string) (float64, error) {
	c, err := unitConversion(unit, gridUnit)
	if err != nil {
		return 0, fmt.Errorf("converting threshold %g %s: %w", value, unit, err)
	}
	return c.apply(value), nil
}
