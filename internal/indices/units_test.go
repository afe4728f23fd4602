package indices

import (
	"math"
	"testing"
)

func TestUnitConversion(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		in   float64
		want float64
	}{
		{name: "identity", from: UnitKelvin, to: UnitKelvin, in: 280, want: 280},
		{name: "kelvin to celsius", from: UnitKelvin, to: UnitCelsius, in: 273.15, want: 0},
		{name: "celsius to kelvin", from: UnitCelsius, to: UnitKelvin, in: 25, want: 298.15},
		{name: "flux to mm per day", from: UnitFlux, to: UnitMMDay, in: 1.0 / 86400, want: 1},
		{name: "mm per day to flux", from: UnitMMDay, to: UnitFlux, in: 10, want: 10.0 / 86400},
		{name: "snow flux to cm", from: UnitFlux, to: UnitCM, in: 10.0 / 8640, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv, err := unitConversion(tt.from, tt.to)
			if err != nil {
				t.Fatalf("unitConversion: %v", err)
			}
			if got := conv.apply(tt.in); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("%v %s -> %s = %v, want %v", tt.in, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestUnitConversionUnsupported(t *testing.T) {
	if _, err := unitConversion(UnitKelvin, UnitMM); err == nil {
		t.Error("expected error for unsupported conversion")
	}
	if _, err := thresholdInGridUnit(10, UnitMS, UnitKelvin); err == nil {
		t.Error("expected error for unsupported threshold conversion")
	}
}
