package cellml

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cellml-modeling/cellml-go/pkg/model"
)

// yamlModel represents the YAML rendition of a model.
type yamlModel struct {
	Name        string           `yaml:"name,omitempty"`
	ID          string           `yaml:"id,omitempty"`
	Imports     []yamlImport     `yaml:"imports,omitempty"`
	Units       []yamlUnits      `yaml:"units,omitempty"`
	Components  []yamlComponent  `yaml:"components,omitempty"`
	Connections []yamlConnection `yaml:"connections,omitempty"`
}

// yamlImport represents an import record with its bound entities.
type yamlImport struct {
	Source     string       `yaml:"source"`
	ID         string       `yaml:"id,omitempty"`
	Units      []yamlImported `yaml:"units,omitempty"`
	Components []yamlImported `yaml:"components,omitempty"`
}

// yamlImported represents an entity bound to an import.
type yamlImported struct {
	Name string `yaml:"name,omitempty"`
	Ref  string `yaml:"ref,omitempty"`
	ID   string `yaml:"id,omitempty"`
}

// yamlUnits represents a units definition.
type yamlUnits struct {
	Name     string        `yaml:"name,omitempty"`
	ID       string        `yaml:"id,omitempty"`
	BaseUnit *bool         `yaml:"base_unit,omitempty"`
	Units    []yamlUnitRow `yaml:"unit,omitempty"`
}

// yamlUnitRow represents a single unit row inside a units definition.
// Numeric fields are pointers so defaults are omitted from the output.
type yamlUnitRow struct {
	Units      string   `yaml:"units,omitempty"`
	Prefix     string   `yaml:"prefix,omitempty"`
	Exponent   *float64 `yaml:"exponent,omitempty"`
	Multiplier *float64 `yaml:"multiplier,omitempty"`
	Offset     *float64 `yaml:"offset,omitempty"`
}

// yamlComponent represents a component. Encapsulated children nest under
// their parent rather than appearing in a separate encapsulation block.
type yamlComponent struct {
	Name       string          `yaml:"name,omitempty"`
	ID         string          `yaml:"id,omitempty"`
	Variables  []yamlVariable  `yaml:"variables,omitempty"`
	Units      []yamlUnits     `yaml:"units,omitempty"`
	Math       string          `yaml:"math,omitempty"`
	Components []yamlComponent `yaml:"components,omitempty"`
}

// yamlVariable represents a variable declaration.
type yamlVariable struct {
	Name         string `yaml:"name,omitempty"`
	Units        string `yaml:"units,omitempty"`
	Interface    string `yaml:"interface,omitempty"`
	InitialValue string `yaml:"initial_value,omitempty"`
	ID           string `yaml:"id,omitempty"`
}

// yamlConnection represents the variable equivalences between one pair of
// components.
type yamlConnection struct {
	Component1 string         `yaml:"component_1"`
	Component2 string         `yaml:"component_2"`
	Variables  []yamlVarPair  `yaml:"variables"`
}

// yamlVarPair represents one equivalent variable pair.
type yamlVarPair struct {
	Variable1 string `yaml:"variable_1"`
	Variable2 string `yaml:"variable_2"`
}

// ModelYAML renders a model as YAML. The rendition is a read-side view for
// inspection and conversion tooling; it is not parsed back into a model.
func ModelYAML(m *model.Model) ([]byte, error) {
	doc := yamlModel{
		Name: m.Name(),
		ID:   m.ID(),
	}

	for i := 0; i < m.ImportCount(); i++ {
		imp := m.Import(i)
		y := yamlImport{Source: imp.Source(), ID: imp.ID()}
		for j := 0; j < m.UnitsCount(); j++ {
			if u := m.Units(j); u.ImportSource() == imp {
				y.Units = append(y.Units, yamlImported{
					Name: u.Name(),
					Ref:  u.ImportReference(),
					ID:   u.ID(),
				})
			}
		}
		for j := 0; j < m.ComponentCount(); j++ {
			if c := m.Component(j); c.ImportSource() == imp {
				y.Components = append(y.Components, yamlImported{
					Name: c.Name(),
					Ref:  c.ImportReference(),
					ID:   c.ID(),
				})
			}
		}
		doc.Imports = append(doc.Imports, y)
	}

	for i := 0; i < m.UnitsCount(); i++ {
		if u := m.Units(i); !u.IsImport() {
			doc.Units = append(doc.Units, yamlUnitsOf(u))
		}
	}

	for i := 0; i < m.ComponentCount(); i++ {
		if c := m.Component(i); !c.IsImport() {
			doc.Components = append(doc.Components, yamlComponentOf(c))
		}
	}

	doc.Connections = yamlConnectionsOf(m)

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("YAML marshal error: %w", err)
	}
	return out, nil
}

func yamlUnitsOf(u *model.Units) yamlUnits {
	y := yamlUnits{Name: u.Name(), ID: u.ID()}
	if value, set := u.BaseUnit(); set {
		v := value
		y.BaseUnit = &v
	}
	for i := 0; i < u.UnitCount(); i++ {
		row := u.Unit(i)
		r := yamlUnitRow{Units: row.Reference, Prefix: row.Prefix}
		if row.Exponent != 1 {
			v := row.Exponent
			r.Exponent = &v
		}
		if row.Multiplier != 1 {
			v := row.Multiplier
			r.Multiplier = &v
		}
		if row.Offset != 0 {
			v := row.Offset
			r.Offset = &v
		}
		y.Units = append(y.Units, r)
	}
	return y
}

func yamlComponentOf(c *model.Component) yamlComponent {
	y := yamlComponent{Name: c.Name(), ID: c.ID(), Math: c.Math()}
	for i := 0; i < c.VariableCount(); i++ {
		v := c.Variable(i)
		y.Variables = append(y.Variables, yamlVariable{
			Name:         v.Name(),
			Units:        v.Units(),
			Interface:    v.InterfaceType(),
			InitialValue: v.InitialValue(),
			ID:           v.ID(),
		})
	}
	for i := 0; i < c.UnitsCount(); i++ {
		y.Units = append(y.Units, yamlUnitsOf(c.Units(i)))
	}
	for i := 0; i < c.ComponentCount(); i++ {
		y.Components = append(y.Components, yamlComponentOf(c.Component(i)))
	}
	return y
}

// yamlConnectionsOf enumerates equivalences in the same stable order the
// XML printer uses.
func yamlConnectionsOf(m *model.Model) []yamlConnection {
	components := printableComponents(m)
	var out []yamlConnection
	for i, c1 := range components {
		for j := i; j < len(components); j++ {
			c2 := components[j]
			var pairs []yamlVarPair
			for vi := 0; vi < c1.VariableCount(); vi++ {
				v := c1.Variable(vi)
				for wi := 0; wi < c2.VariableCount(); wi++ {
					if i == j && wi <= vi {
						continue
					}
					if v.HasEquivalentVariable(c2.Variable(wi)) {
						pairs = append(pairs, yamlVarPair{
							Variable1: v.Name(),
							Variable2: c2.Variable(wi).Name(),
						})
					}
				}
			}
			if len(pairs) > 0 {
				out = append(out, yamlConnection{
					Component1: c1.Name(),
					Component2: c2.Name(),
					Variables:  pairs,
				})
			}
		}
	}
	return out
}
