package model

// Equals reports structural equality of two models: same attributes, same
// components and units in the same order, same encapsulation shape, and the
// same equivalence relation. The models' import records are not compared;
// imported entities compare by import source and reference name, not by
// Import identity.
func (m *Model) Equals(other *Model) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.name != other.name || m.id != other.id {
		return false
	}
	if len(m.components) != len(other.components) ||
		len(m.units) != len(other.units) {
		return false
	}
	for i := range m.units {
		if !m.units[i].equals(other.units[i]) {
			return false
		}
	}
	for i := range m.components {
		if !m.components[i].equals(other.components[i]) {
			return false
		}
	}
	return equivalencesEqual(m, other)
}

func (c *Component) equals(other *Component) bool {
	if c.name != other.name || c.id != other.id || c.math != other.math {
		return false
	}
	if c.IsImport() != other.IsImport() {
		return false
	}
	if c.IsImport() {
		if c.importRef != other.importRef ||
			c.importFrom.source != other.importFrom.source {
			return false
		}
	}
	if len(c.variables) != len(other.variables) ||
		len(c.units) != len(other.units) ||
		len(c.children) != len(other.children) {
		return false
	}
	for i := range c.variables {
		if !c.variables[i].equals(other.variables[i]) {
			return false
		}
	}
	for i := range c.units {
		if !c.units[i].equals(other.units[i]) {
			return false
		}
	}
	for i := range c.children {
		if !c.children[i].equals(other.children[i]) {
			return false
		}
	}
	return true
}

func (u *Units) equals(other *Units) bool {
	if u.name != other.name || u.id != other.id {
		return false
	}
	if u.baseUnitSet != other.baseUnitSet || u.baseUnit != other.baseUnit {
		return false
	}
	if u.IsImport() != other.IsImport() {
		return false
	}
	if u.IsImport() {
		if u.importRef != other.importRef ||
			u.importFrom.source != other.importFrom.source {
			return false
		}
	}
	if len(u.units) != len(other.units) {
		return false
	}
	for i := range u.units {
		if u.units[i] != other.units[i] {
			return false
		}
	}
	return true
}

func (v *Variable) equals(other *Variable) bool {
	return v.name == other.name &&
		v.id == other.id &&
		v.units == other.units &&
		v.interfaceTyp == other.interfaceTyp &&
		v.initialValue == other.initialValue
}

// variableKey identifies a variable by the name path of its owning
// component chain plus its own name, so equivalences can be compared across
// two distinct graphs.
type variableKey struct {
	component string
	variable  string
}

func keyOf(v *Variable) variableKey {
	key := variableKey{variable: v.name}
	for c := v.owner; c != nil; c = c.parent {
		key.component = c.name + "/" + key.component
	}
	return key
}

func equivalencesEqual(m, other *Model) bool {
	return equivalenceSet(m).equal(equivalenceSet(other))
}

type pairSet map[[2]variableKey]bool

func (s pairSet) equal(o pairSet) bool {
	if len(s) != len(o) {
		return false
	}
	for k := range s {
		if !o[k] {
			return false
		}
	}
	return true
}

func equivalenceSet(m *Model) pairSet {
	set := make(pairSet)
	var walk func(c *Component)
	walk = func(c *Component) {
		for _, v := range c.variables {
			for _, eq := range v.equivalences {
				a, b := keyOf(v), keyOf(eq)
				if b.component < a.component ||
					(b.component == a.component && b.variable < a.variable) {
					a, b = b, a
				}
				set[[2]variableKey{a, b}] = true
			}
		}
		for _, child := range c.children {
			walk(child)
		}
	}
	for _, c := range m.components {
		walk(c)
	}
	return set
}
