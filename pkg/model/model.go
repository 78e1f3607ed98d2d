package model

// Model is the root entity of a CellML document. It owns the top-level
// components, the model-scoped units definitions, and the import records.
type Model struct {
	entity
	components []*Component
	units      []*Units
	imports    []*Import
}

// NewModel creates a new empty Model.
func NewModel() *Model {
	return &Model{}
}

// AddComponent adds a top-level component to the model. A named component
// replaces any existing top-level component with the same name in place;
// unnamed components always append. The component is detached from any
// previous owner first.
func (m *Model) AddComponent(c *Component) {
	if c == nil {
		return
	}
	c.detach()
	c.parent = nil
	if c.name != "" {
		for i, existing := range m.components {
			if existing.name == c.name {
				m.components[i] = c
				return
			}
		}
	}
	m.components = append(m.components, c)
}

// ComponentCount returns the number of top-level components.
func (m *Model) ComponentCount() int {
	return len(m.components)
}

// Component returns the top-level component at index i, or nil if i is out
// of range.
func (m *Model) Component(i int) *Component {
	if i < 0 || i >= len(m.components) {
		return nil
	}
	return m.components[i]
}

// ComponentByName returns the top-level component with the given name, or
// nil if no such component exists.
func (m *Model) ComponentByName(name string) *Component {
	for _, c := range m.components {
		if c.name == name {
			return c
		}
	}
	return nil
}

// ContainsComponent reports whether a top-level component with the given
// name exists.
func (m *Model) ContainsComponent(name string) bool {
	return m.ComponentByName(name) != nil
}

// TakeComponent removes and returns the top-level component with the given
// name. It returns nil if no such component exists.
func (m *Model) TakeComponent(name string) *Component {
	for i, c := range m.components {
		if c.name == name {
			m.components = append(m.components[:i], m.components[i+1:]...)
			return c
		}
	}
	return nil
}

// RemoveComponent removes the given component from the model's top level by
// identity. It reports whether the component was present.
func (m *Model) RemoveComponent(c *Component) bool {
	for i, existing := range m.components {
		if existing == c {
			m.components = append(m.components[:i], m.components[i+1:]...)
			return true
		}
	}
	return false
}

// AddUnits adds a units definition to the model. A named definition replaces
// any existing definition with the same name in place; unnamed definitions
// always append.
func (m *Model) AddUnits(u *Units) {
	if u == nil {
		return
	}
	if u.name != "" {
		for i, existing := range m.units {
			if existing.name == u.name {
				m.units[i] = u
				return
			}
		}
	}
	m.units = append(m.units, u)
}

// UnitsCount returns the number of model-scoped units definitions.
func (m *Model) UnitsCount() int {
	return len(m.units)
}

// Units returns the units definition at index i, or nil if i is out of range.
func (m *Model) Units(i int) *Units {
	if i < 0 || i >= len(m.units) {
		return nil
	}
	return m.units[i]
}

// UnitsByName returns the units definition with the given name, or nil if
// no such definition exists.
func (m *Model) UnitsByName(name string) *Units {
	for _, u := range m.units {
		if u.name == name {
			return u
		}
	}
	return nil
}

// ContainsUnits reports whether a units definition with the given name
// exists.
func (m *Model) ContainsUnits(name string) bool {
	return m.UnitsByName(name) != nil
}

// AddImport appends an import record to the model.
func (m *Model) AddImport(imp *Import) {
	if imp == nil {
		return
	}
	m.imports = append(m.imports, imp)
}

// ImportCount returns the number of import records.
func (m *Model) ImportCount() int {
	return len(m.imports)
}

// Import returns the import record at index i, or nil if i is out of range.
func (m *Model) Import(i int) *Import {
	if i < 0 || i >= len(m.imports) {
		return nil
	}
	return m.imports[i]
}
