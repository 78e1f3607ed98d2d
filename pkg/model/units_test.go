package model

import (
	"testing"
)

func TestUnits_BaseUnitTriState(t *testing.T) {
	u := NewUnits()

	if _, set := u.BaseUnit(); set {
		t.Error("base-unit flag should start unset")
	}

	u.SetBaseUnit(true)
	if value, set := u.BaseUnit(); !set || !value {
		t.Error("expected base-unit flag set to true")
	}

	u.SetBaseUnit(false)
	if value, set := u.BaseUnit(); !set || value {
		t.Error("expected base-unit flag set to false")
	}
}

func TestUnits_AddUnit(t *testing.T) {
	u := NewUnits()
	u.SetName("millivolt_per_second")

	u.AddUnit("volt", PrefixMilli, 1, 1, 0)
	u.AddUnit("second", "", -1, 1, 0)

	if u.UnitCount() != 2 {
		t.Fatalf("UnitCount() = %d, want 2", u.UnitCount())
	}

	tests := []struct {
		index int
		want  Unit
	}{
		{0, Unit{Reference: "volt", Prefix: "milli", Exponent: 1, Multiplier: 1}},
		{1, Unit{Reference: "second", Exponent: -1, Multiplier: 1}},
	}
	for _, tt := range tests {
		if got := u.Unit(tt.index); got != tt.want {
			t.Errorf("Unit(%d) = %+v, want %+v", tt.index, got, tt.want)
		}
	}

	if got := u.Unit(2); got != (Unit{}) {
		t.Errorf("out-of-range Unit(2) = %+v, want zero row", got)
	}
}

func TestUnits_Import(t *testing.T) {
	u := NewUnits()
	imp := NewImport()
	imp.SetSource("units-library.xml")

	u.SetSourceUnits(imp, "remote_units")

	if !u.IsImport() {
		t.Error("IsImport() = false after SetSourceUnits")
	}
	if u.ImportSource() != imp {
		t.Error("ImportSource mismatch")
	}
	if u.ImportReference() != "remote_units" {
		t.Errorf("ImportReference() = %s, want remote_units", u.ImportReference())
	}
}
