package model

// Component is a named container of variables, units definitions, and an
// opaque MathML fragment. Components form an encapsulation tree: a component
// is either top-level in its model or the child of exactly one parent
// component.
type Component struct {
	entity
	math       string
	variables  []*Variable
	units      []*Units
	children   []*Component
	parent     *Component
	importFrom *Import
	importRef  string
}

// NewComponent creates a new empty Component.
func NewComponent() *Component {
	return &Component{}
}

// Math returns the component's MathML fragment, or the empty string if none
// has been set.
func (c *Component) Math() string {
	return c.math
}

// SetMath sets the component's MathML fragment. The string is carried
// opaquely, including its enclosing math element.
func (c *Component) SetMath(math string) {
	c.math = math
}

// SetSourceComponent marks the component as imported from imp, referencing
// the component named ref in the source document.
func (c *Component) SetSourceComponent(imp *Import, ref string) {
	c.importFrom = imp
	c.importRef = ref
}

// IsImport reports whether the component is imported.
func (c *Component) IsImport() bool {
	return c.importFrom != nil
}

// ImportSource returns the Import this component is drawn from, or nil for
// a local component.
func (c *Component) ImportSource() *Import {
	return c.importFrom
}

// ImportReference returns the name of the referenced component in the
// import source document.
func (c *Component) ImportReference() string {
	return c.importRef
}

// AddVariable adds a variable to the component. A named variable replaces
// any existing variable with the same name in place; unnamed variables
// always append.
func (c *Component) AddVariable(v *Variable) {
	if v == nil {
		return
	}
	v.owner = c
	if v.name != "" {
		for i, existing := range c.variables {
			if existing.name == v.name {
				existing.owner = nil
				c.variables[i] = v
				return
			}
		}
	}
	c.variables = append(c.variables, v)
}

// VariableCount returns the number of variables owned by the component.
func (c *Component) VariableCount() int {
	return len(c.variables)
}

// Variable returns the variable at index i, or nil if i is out of range.
func (c *Component) Variable(i int) *Variable {
	if i < 0 || i >= len(c.variables) {
		return nil
	}
	return c.variables[i]
}

// VariableByName returns the variable with the given name, or nil if no
// such variable exists.
func (c *Component) VariableByName(name string) *Variable {
	for _, v := range c.variables {
		if v.name == name {
			return v
		}
	}
	return nil
}

// HasVariable reports whether a variable with the given name exists.
func (c *Component) HasVariable(name string) bool {
	return c.VariableByName(name) != nil
}

// AddUnits adds a component-local units definition. A named definition
// replaces any existing definition with the same name in place; unnamed
// definitions always append.
func (c *Component) AddUnits(u *Units) {
	if u == nil {
		return
	}
	if u.name != "" {
		for i, existing := range c.units {
			if existing.name == u.name {
				c.units[i] = u
				return
			}
		}
	}
	c.units = append(c.units, u)
}

// UnitsCount returns the number of component-local units definitions.
func (c *Component) UnitsCount() int {
	return len(c.units)
}

// Units returns the units definition at index i, or nil if i is out of
// range.
func (c *Component) Units(i int) *Units {
	if i < 0 || i >= len(c.units) {
		return nil
	}
	return c.units[i]
}

// AddComponent attaches child as an encapsulated child of c. A named child
// replaces any existing child with the same name in place; unnamed children
// always append. The child is detached from any previous parent.
func (c *Component) AddComponent(child *Component) {
	if child == nil || child == c {
		return
	}
	child.detach()
	child.parent = c
	if child.name != "" {
		for i, existing := range c.children {
			if existing.name == child.name {
				existing.parent = nil
				c.children[i] = child
				return
			}
		}
	}
	c.children = append(c.children, child)
}

// ComponentCount returns the number of encapsulated child components.
func (c *Component) ComponentCount() int {
	return len(c.children)
}

// Component returns the child component at index i, or nil if i is out of
// range.
func (c *Component) Component(i int) *Component {
	if i < 0 || i >= len(c.children) {
		return nil
	}
	return c.children[i]
}

// ComponentByName returns the child component with the given name, or nil
// if no such child exists.
func (c *Component) ComponentByName(name string) *Component {
	for _, child := range c.children {
		if child.name == name {
			return child
		}
	}
	return nil
}

// Parent returns the encapsulation parent of the component, or nil for a
// top-level component.
func (c *Component) Parent() *Component {
	return c.parent
}

// detach removes c from its current parent's child list, if any.
func (c *Component) detach() {
	p := c.parent
	if p == nil {
		return
	}
	for i, child := range p.children {
		if child == c {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	c.parent = nil
}
