package model

import (
	"testing"
)

func TestComponent_Variables(t *testing.T) {
	c := NewComponent()

	v1 := NewVariable()
	v1.SetName("V")
	v2 := NewVariable()
	v2.SetName("t")
	c.AddVariable(v1)
	c.AddVariable(v2)

	if c.VariableCount() != 2 {
		t.Fatalf("VariableCount() = %d, want 2", c.VariableCount())
	}
	if c.Variable(0) != v1 || c.Variable(1) != v2 {
		t.Error("variables not stored in insertion order")
	}
	if c.VariableByName("t") != v2 {
		t.Error("VariableByName failed")
	}
	if !c.HasVariable("V") || c.HasVariable("x") {
		t.Error("HasVariable mismatch")
	}
	if v1.Owner() != c {
		t.Error("AddVariable should set the variable owner")
	}
}

func TestComponent_AddVariable_ReplacesByName(t *testing.T) {
	c := NewComponent()

	first := NewVariable()
	first.SetName("V")
	second := NewVariable()
	second.SetName("V")
	second.SetUnits("millivolt")

	c.AddVariable(first)
	c.AddVariable(second)

	if c.VariableCount() != 1 {
		t.Fatalf("VariableCount() = %d, want 1", c.VariableCount())
	}
	if c.Variable(0) != second {
		t.Error("expected the second variable to replace the first")
	}
	if first.Owner() != nil {
		t.Error("replaced variable should be disowned")
	}
}

func TestComponent_Encapsulation(t *testing.T) {
	parent := NewComponent()
	parent.SetName("P")
	child := NewComponent()
	child.SetName("C")

	parent.AddComponent(child)

	if parent.ComponentCount() != 1 {
		t.Fatalf("ComponentCount() = %d, want 1", parent.ComponentCount())
	}
	if parent.Component(0) != child {
		t.Error("child not attached")
	}
	if child.Parent() != parent {
		t.Error("child parent back-reference not set")
	}
	if parent.ComponentByName("C") != child {
		t.Error("ComponentByName failed")
	}
}

func TestComponent_AddComponent_Reparents(t *testing.T) {
	a := NewComponent()
	a.SetName("a")
	b := NewComponent()
	b.SetName("b")
	child := NewComponent()
	child.SetName("c")

	a.AddComponent(child)
	b.AddComponent(child)

	if a.ComponentCount() != 0 {
		t.Errorf("old parent still holds %d children", a.ComponentCount())
	}
	if child.Parent() != b {
		t.Error("child should now belong to b")
	}
}

func TestComponent_AddComponent_SelfIsNoop(t *testing.T) {
	c := NewComponent()
	c.SetName("self")
	c.AddComponent(c)

	if c.ComponentCount() != 0 {
		t.Error("a component must not become its own child")
	}
	if c.Parent() != nil {
		t.Error("a component must not become its own parent")
	}
}

func TestComponent_Math(t *testing.T) {
	c := NewComponent()
	if c.Math() != "" {
		t.Error("math should start empty")
	}

	c.SetMath("<math><apply/></math>")
	c.SetMath("<math><ci>x</ci></math>")

	if c.Math() != "<math><ci>x</ci></math>" {
		t.Errorf("Math() = %q, want the last value set", c.Math())
	}
}

func TestComponent_Import(t *testing.T) {
	c := NewComponent()
	if c.IsImport() {
		t.Error("fresh component must not be imported")
	}

	imp := NewImport()
	imp.SetSource("some-other-model.xml")
	c.SetSourceComponent(imp, "remote_component")

	if !c.IsImport() {
		t.Error("IsImport() = false after SetSourceComponent")
	}
	if c.ImportSource() != imp {
		t.Error("ImportSource mismatch")
	}
	if c.ImportReference() != "remote_component" {
		t.Errorf("ImportReference() = %s, want remote_component", c.ImportReference())
	}
}

func TestComponent_LocalUnits(t *testing.T) {
	c := NewComponent()
	u1 := NewUnits()
	u1.SetName("mV")
	u2 := NewUnits()
	u2.SetName("mV")

	c.AddUnits(u1)
	c.AddUnits(u2)

	if c.UnitsCount() != 1 {
		t.Fatalf("UnitsCount() = %d, want 1", c.UnitsCount())
	}
	if c.Units(0) != u2 {
		t.Error("expected by-name replacement for component-local units")
	}
}
