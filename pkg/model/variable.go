package model

// Variable is a named quantity declared inside a component. Variables may
// participate in an undirected equivalence relation with variables in other
// components.
type Variable struct {
	entity
	units        string
	interfaceTyp string
	initialValue string
	owner        *Component
	equivalences []*Variable
}

// NewVariable creates a new empty Variable.
func NewVariable() *Variable {
	return &Variable{}
}

// Units returns the name of the variable's units definition.
func (v *Variable) Units() string {
	return v.units
}

// SetUnits sets the name of the variable's units definition.
func (v *Variable) SetUnits(units string) {
	v.units = units
}

// InterfaceType returns the variable's interface type.
func (v *Variable) InterfaceType() string {
	return v.interfaceTyp
}

// SetInterfaceType sets the variable's interface type.
func (v *Variable) SetInterfaceType(t string) {
	v.interfaceTyp = t
}

// InitialValue returns the variable's initial value.
func (v *Variable) InitialValue() string {
	return v.initialValue
}

// SetInitialValue sets the variable's initial value.
func (v *Variable) SetInitialValue(value string) {
	v.initialValue = value
}

// Owner returns the component the variable is declared in, or nil if the
// variable has not been added to a component.
func (v *Variable) Owner() *Component {
	return v.owner
}

// EquivalenceCount returns the number of variables equivalent to v.
func (v *Variable) EquivalenceCount() int {
	return len(v.equivalences)
}

// EquivalentVariable returns the equivalent variable at index i, or nil if
// i is out of range.
func (v *Variable) EquivalentVariable(i int) *Variable {
	if i < 0 || i >= len(v.equivalences) {
		return nil
	}
	return v.equivalences[i]
}

// HasEquivalentVariable reports whether other is equivalent to v.
func (v *Variable) HasEquivalentVariable(other *Variable) bool {
	for _, eq := range v.equivalences {
		if eq == other {
			return true
		}
	}
	return false
}

// AddEquivalence records that v1 and v2 share the same value. The relation
// is symmetric and duplicate-free; adding an existing pair is a no-op, as
// is pairing a variable with itself or with nil.
func AddEquivalence(v1, v2 *Variable) {
	if v1 == nil || v2 == nil || v1 == v2 {
		return
	}
	if !v1.HasEquivalentVariable(v2) {
		v1.equivalences = append(v1.equivalences, v2)
	}
	if !v2.HasEquivalentVariable(v1) {
		v2.equivalences = append(v2.equivalences, v1)
	}
}

// RemoveEquivalence removes the equivalence between v1 and v2 from both
// sides. It reports whether the pair was equivalent.
func RemoveEquivalence(v1, v2 *Variable) bool {
	if v1 == nil || v2 == nil {
		return false
	}
	removed := v1.dropEquivalence(v2)
	if v2.dropEquivalence(v1) {
		removed = true
	}
	return removed
}

func (v *Variable) dropEquivalence(other *Variable) bool {
	for i, eq := range v.equivalences {
		if eq == other {
			v.equivalences = append(v.equivalences[:i], v.equivalences[i+1:]...)
			return true
		}
	}
	return false
}
