package cellml

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cellml-modeling/cellml-go/internal/xmldoc"
	"github.com/cellml-modeling/cellml-go/pkg/log"
	"github.com/cellml-modeling/cellml-go/pkg/model"
)

// Format selects the serialization format a Parser or Printer works with.
type Format int

const (
	// FormatXML is the CellML XML serialization format.
	FormatXML Format = iota
)

// xlinkNamespace is the namespace import href attributes are qualified with.
const xlinkNamespace = "http://www.w3.org/1999/xlink"

// Parser builds model entity graphs from CellML documents. Faults are
// accumulated on the embedded ErrorLog; parsing never stops after the root
// node has been established, so one pass yields a complete report.
type Parser struct {
	ErrorLog

	format Format
	trace  log.Logger

	// Per-session trace state.
	sessionID string
	modelName string
}

// NewParser creates a parser for the given format.
func NewParser(format Format) *Parser {
	return &Parser{format: format}
}

// SetTraceLogger attaches a trace logger. The parser emits no events until
// one is set; pass nil to detach.
func (p *Parser) SetTraceLogger(l log.Logger) {
	p.trace = l
}

// ParseModel builds a new model from the input. Faults encountered along
// the way are recorded on the parser's error log; the returned model is
// never nil, though it may be empty or partial.
func (p *Parser) ParseModel(input string) *model.Model {
	m := model.NewModel()
	p.UpdateModel(m, input)
	return m
}

// UpdateModel parses the input into an existing model. Entities and
// attributes in m whose names match those in the input are overwritten;
// everything else in m is left alone.
func (p *Parser) UpdateModel(m *model.Model, input string) {
	if p.format == FormatXML {
		p.loadModel(m, input)
	}
}

func (p *Parser) loadModel(m *model.Model, input string) {
	p.beginSession(len(input))
	defer p.endSession()

	doc := xmldoc.Parse(input)
	// Copy any XML syntax errors into the common error log.
	for i := 0; i < doc.ErrorCount(); i++ {
		e := &Error{}
		e.SetDescription(doc.Error(i))
		e.SetKind(KindXML)
		p.addError(e)
	}
	node := doc.RootNode()
	if node == nil {
		e := &Error{}
		e.SetDescription("Could not get a valid XML root node from the provided input.")
		e.SetKind(KindXML)
		p.addError(e)
		return
	}
	if !node.IsType("model") {
		e := &Error{}
		e.SetDescription("Model root node is of invalid type '" + node.Type() +
			"'. A valid CellML root node should be of type 'model'.")
		e.SetModel(m)
		e.SetKind(KindModel)
		p.addError(e)
		return
	}
	// Get model attributes.
	for attr := node.FirstAttribute(); attr != nil; attr = attr.Next() {
		switch {
		case attr.IsType("name"):
			m.SetName(attr.Value())
		case attr.IsType("id"):
			m.SetID(attr.Value())
		default:
			e := &Error{}
			e.SetDescription("Model '" + node.Attribute("name") +
				"' has an invalid attribute '" + attr.Type() + "'.")
			e.SetModel(m)
			e.SetKind(KindModel)
			p.addError(e)
		}
	}
	p.modelName = m.Name()
	p.traceElement("model", m.Name())

	// Get model children (CellML entities).
	for child := node.FirstChild(); child != nil; child = child.Next() {
		switch {
		case child.IsType("component"):
			component := model.NewComponent()
			p.loadComponent(component, child)
			m.AddComponent(component)
			p.traceElement("component", component.Name())
		case child.IsType("units"):
			units := model.NewUnits()
			p.loadUnits(units, child)
			m.AddUnits(units)
			p.traceElement("units", units.Name())
		case child.IsType("import"):
			imp := model.NewImport()
			p.loadImport(imp, m, child)
			m.AddImport(imp)
			p.traceElement("import", imp.Source())
		case child.IsType("encapsulation"):
			// An encapsulation should not have attributes.
			for attr := child.FirstAttribute(); attr != nil; attr = attr.Next() {
				e := &Error{}
				e.SetDescription("Encapsulation in model '" + m.Name() +
					"' has an invalid attribute '" + attr.Type() + "'.")
				e.SetModel(m)
				e.SetKind(KindEncapsulation)
				p.addError(e)
			}
			// Load encapsulated component_refs.
			if refNode := child.FirstChild(); refNode != nil {
				// The component_ref and its child and sibling elements are
				// loaded and error-checked in loadEncapsulation.
				p.loadEncapsulation(m, refNode, true)
			} else {
				e := &Error{}
				e.SetDescription("Encapsulation in model '" + m.Name() +
					"' does not contain any child elements.")
				e.SetModel(m)
				e.SetKind(KindEncapsulation)
				p.addError(e)
			}
			p.traceElement("encapsulation", "")
		case child.IsType("connection"):
			p.loadConnection(m, child)
			p.traceElement("connection", "")
		case child.IsType(xmldoc.TextType):
			// Ignore whitespace when parsing.
			if text := child.ConvertToString(); isNotWhitespace(text) {
				e := &Error{}
				e.SetDescription("Model '" + m.Name() +
					"' has an invalid non-whitespace child text element '" + text + "'.")
				e.SetModel(m)
				e.SetKind(KindModel)
				p.addError(e)
			}
		default:
			e := &Error{}
			e.SetDescription("Model '" + m.Name() +
				"' has an invalid child element '" + child.Type() + "'.")
			e.SetModel(m)
			e.SetKind(KindModel)
			p.addError(e)
		}
	}
}

func (p *Parser) loadComponent(component *model.Component, node *xmldoc.Node) {
	for attr := node.FirstAttribute(); attr != nil; attr = attr.Next() {
		switch {
		case attr.IsType("name"):
			component.SetName(attr.Value())
		case attr.IsType("id"):
			component.SetID(attr.Value())
		default:
			e := &Error{}
			e.SetDescription("Component '" + node.Attribute("name") +
				"' has an invalid attribute '" + attr.Type() + "'.")
			e.SetComponent(component)
			e.SetKind(KindComponent)
			p.addError(e)
		}
	}
	for child := node.FirstChild(); child != nil; child = child.Next() {
		switch {
		case child.IsType("variable"):
			variable := model.NewVariable()
			p.loadVariable(variable, child)
			component.AddVariable(variable)
		case child.IsType("units"):
			units := model.NewUnits()
			p.loadUnits(units, child)
			component.AddUnits(units)
		case child.IsType("math"):
			component.SetMath(child.ConvertToString())
		case child.IsType(xmldoc.TextType):
			// Ignore whitespace when parsing.
			if text := child.ConvertToString(); isNotWhitespace(text) {
				e := &Error{}
				e.SetDescription("Component '" + component.Name() +
					"' has an invalid non-whitespace child text element '" + text + "'.")
				e.SetComponent(component)
				e.SetKind(KindComponent)
				p.addError(e)
			}
		default:
			e := &Error{}
			e.SetDescription("Component '" + component.Name() +
				"' has an invalid child element '" + child.Type() + "'.")
			e.SetComponent(component)
			e.SetKind(KindComponent)
			p.addError(e)
		}
	}
}

func (p *Parser) loadUnits(units *model.Units, node *xmldoc.Node) {
	for attr := node.FirstAttribute(); attr != nil; attr = attr.Next() {
		switch {
		case attr.IsType("name"):
			units.SetName(attr.Value())
		case attr.IsType("id"):
			units.SetID(attr.Value())
		case attr.IsType("base_unit"):
			switch attr.Value() {
			case "yes":
				units.SetBaseUnit(true)
			case "no":
				units.SetBaseUnit(false)
			default:
				e := &Error{}
				e.SetDescription("Units '" + units.Name() +
					"' has an invalid base_unit attribute value '" + attr.Value() +
					"'. Valid options are 'yes' or 'no'.")
				e.SetUnits(units)
				e.SetKind(KindUnits)
				p.addError(e)
			}
		default:
			e := &Error{}
			e.SetDescription("Units '" + units.Name() +
				"' has an invalid attribute '" + attr.Type() + "'.")
			e.SetUnits(units)
			e.SetKind(KindUnits)
			p.addError(e)
		}
	}
	for child := node.FirstChild(); child != nil; child = child.Next() {
		switch {
		case child.IsType("unit"):
			p.loadUnit(units, child)
		case child.IsType(xmldoc.TextType):
			// Ignore whitespace when parsing.
			if text := child.ConvertToString(); isNotWhitespace(text) {
				e := &Error{}
				e.SetDescription("Units '" + units.Name() +
					"' has an invalid non-whitespace child text element '" + text + "'.")
				e.SetUnits(units)
				e.SetKind(KindUnits)
				p.addError(e)
			}
		default:
			e := &Error{}
			e.SetDescription("Units '" + units.Name() +
				"' has an invalid child element '" + child.Type() + "'.")
			e.SetUnits(units)
			e.SetKind(KindUnits)
			p.addError(e)
		}
	}
}

func (p *Parser) loadUnit(units *model.Units, node *xmldoc.Node) {
	reference := ""
	prefix := ""
	exponent := 1.0
	multiplier := 1.0
	offset := 0.0
	// A unit should not have any children.
	for child := node.FirstChild(); child != nil; child = child.Next() {
		if child.IsType(xmldoc.TextType) {
			// Ignore whitespace when parsing.
			if text := child.ConvertToString(); isNotWhitespace(text) {
				e := &Error{}
				e.SetDescription("Unit '" + node.Attribute("units") +
					"' in units '" + units.Name() +
					"' has an invalid non-whitespace child text element '" + text + "'.")
				e.SetUnits(units)
				e.SetKind(KindUnits)
				p.addError(e)
			}
		} else {
			e := &Error{}
			e.SetDescription("Unit '" + node.Attribute("units") +
				"' in units '" + units.Name() +
				"' has an invalid child element '" + child.Type() + "'.")
			e.SetUnits(units)
			e.SetKind(KindUnits)
			p.addError(e)
		}
	}
	// Parse the unit attributes.
	for attr := node.FirstAttribute(); attr != nil; attr = attr.Next() {
		switch {
		case attr.IsType("units"):
			reference = attr.Value()
		case attr.IsType("prefix"):
			prefix = attr.Value()
		case attr.IsType("exponent"):
			exponent = p.unitAttributeValue(exponent, attr, node, units)
		case attr.IsType("multiplier"):
			multiplier = p.unitAttributeValue(multiplier, attr, node, units)
		case attr.IsType("offset"):
			offset = p.unitAttributeValue(offset, attr, node, units)
		default:
			e := &Error{}
			e.SetDescription("Unit '" + node.Attribute("units") +
				"' in units '" + units.Name() +
				"' has an invalid attribute '" + attr.Type() + "'.")
			e.SetUnits(units)
			e.SetKind(KindUnits)
			p.addError(e)
		}
	}
	// Add this unit to the parent units.
	units.AddUnit(reference, prefix, exponent, multiplier, offset)
}

// unitAttributeValue converts a numeric unit attribute to a float64. On
// failure it records a fault and returns defaultValue.
func (p *Parser) unitAttributeValue(defaultValue float64, attr *xmldoc.Attribute, node *xmldoc.Node, units *model.Units) float64 {
	value, err := strconv.ParseFloat(attr.Value(), 64)
	if err != nil {
		e := &Error{}
		e.SetDescription("Unit '" + node.Attribute("units") +
			"' in units '" + units.Name() +
			"' has an attribute '" + attr.Type() +
			"' with a value '" + attr.Value() +
			"' that cannot be converted to a decimal number.")
		e.SetUnits(units)
		e.SetKind(KindUnits)
		p.addError(e)
		return defaultValue
	}
	return value
}

func (p *Parser) loadVariable(variable *model.Variable, node *xmldoc.Node) {
	// A variable should not have any children.
	for child := node.FirstChild(); child != nil; child = child.Next() {
		if child.IsType(xmldoc.TextType) {
			// Ignore whitespace when parsing.
			if text := child.ConvertToString(); isNotWhitespace(text) {
				e := &Error{}
				e.SetDescription("Variable '" + node.Attribute("name") +
					"' has an invalid non-whitespace child text element '" + text + "'.")
				e.SetVariable(variable)
				e.SetKind(KindVariable)
				p.addError(e)
			}
		} else {
			e := &Error{}
			e.SetDescription("Variable '" + node.Attribute("name") +
				"' has an invalid child element '" + child.Type() + "'.")
			e.SetVariable(variable)
			e.SetKind(KindVariable)
			p.addError(e)
		}
	}
	for attr := node.FirstAttribute(); attr != nil; attr = attr.Next() {
		switch {
		case attr.IsType("name"):
			variable.SetName(attr.Value())
		case attr.IsType("id"):
			variable.SetID(attr.Value())
		case attr.IsType("units"):
			variable.SetUnits(attr.Value())
		case attr.IsType("interface"):
			variable.SetInterfaceType(attr.Value())
		case attr.IsType("initial_value"):
			variable.SetInitialValue(attr.Value())
		default:
			e := &Error{}
			e.SetDescription("Variable '" + node.Attribute("name") +
				"' has an invalid attribute '" + attr.Type() + "'.")
			e.SetVariable(variable)
			e.SetKind(KindVariable)
			p.addError(e)
		}
	}
}

func (p *Parser) loadConnection(m *model.Model, node *xmldoc.Node) {
	type namePair struct {
		first, second string
	}

	// A connection should not have attributes.
	for attr := node.FirstAttribute(); attr != nil; attr = attr.Next() {
		e := &Error{}
		e.SetDescription("Connection in model '" + m.Name() +
			"' has an invalid attribute '" + attr.Type() + "'.")
		e.SetModel(m)
		e.SetKind(KindConnection)
		p.addError(e)
	}
	// Check that the connection node has children.
	if node.FirstChild() == nil {
		e := &Error{}
		e.SetDescription("Connection in model '" + m.Name() +
			"' does not contain any child elements.")
		e.SetModel(m)
		e.SetKind(KindConnection)
		p.addError(e)
		return
	}

	var componentNames namePair
	var variableNames []namePair
	mapComponentsFound := false
	mapVariablesFound := false
	component1Missing := false
	component2Missing := false
	variable1Missing := false
	variable2Missing := false
	// Iterate over connection child XML nodes.
	for child := node.FirstChild(); child != nil; child = child.Next() {
		// Connection map XML nodes should not have further children.
		if grandchild := child.FirstChild(); grandchild != nil {
			if grandchild.IsType(xmldoc.TextType) {
				// Ignore whitespace when parsing.
				if text := grandchild.ConvertToString(); isNotWhitespace(text) {
					e := &Error{}
					e.SetDescription("Connection in model '" + m.Name() +
						"' has an invalid non-whitespace child text element '" + text + "'.")
					e.SetModel(m)
					e.SetKind(KindConnection)
					p.addError(e)
				}
			} else {
				e := &Error{}
				e.SetDescription("Connection in model '" + m.Name() +
					"' has an invalid child element '" + grandchild.Type() +
					"' of element '" + child.Type() + "'.")
				e.SetModel(m)
				e.SetKind(KindConnection)
				p.addError(e)
			}
		}

		switch {
		// Check for a valid map_components and get the name pair.
		case child.IsType("map_components"):
			component1Name := ""
			component2Name := ""
			for attr := child.FirstAttribute(); attr != nil; attr = attr.Next() {
				switch {
				case attr.IsType("component_1"):
					component1Name = attr.Value()
				case attr.IsType("component_2"):
					component2Name = attr.Value()
				default:
					e := &Error{}
					e.SetDescription("Connection in model '" + m.Name() +
						"' has an invalid map_components attribute '" + attr.Type() + "'.")
					e.SetModel(m)
					e.SetKind(KindConnection)
					p.addError(e)
				}
			}
			// Check that we found both components.
			if component1Name == "" {
				e := &Error{}
				e.SetDescription("Connection in model '" + m.Name() +
					"' does not have a valid component_1 in a map_components element.")
				e.SetModel(m)
				e.SetKind(KindConnection)
				p.addError(e)
				component1Missing = true
			}
			if component2Name == "" {
				e := &Error{}
				e.SetDescription("Connection in model '" + m.Name() +
					"' does not have a valid component_2 in a map_components element.")
				e.SetModel(m)
				e.SetKind(KindConnection)
				p.addError(e)
				component2Missing = true
			}
			// There should only be one map_components per connection.
			if mapComponentsFound {
				e := &Error{}
				e.SetDescription("Connection in model '" + m.Name() +
					"' has more than one map_components element.")
				e.SetModel(m)
				e.SetKind(KindConnection)
				p.addError(e)
			}
			componentNames = namePair{component1Name, component2Name}
			mapComponentsFound = true

		// Check for a valid map_variables and collect the name pair. There
		// can be multiple map_variables per connection.
		case child.IsType("map_variables"):
			variable1Name := ""
			variable2Name := ""
			for attr := child.FirstAttribute(); attr != nil; attr = attr.Next() {
				switch {
				case attr.IsType("variable_1"):
					variable1Name = attr.Value()
				case attr.IsType("variable_2"):
					variable2Name = attr.Value()
				default:
					e := &Error{}
					e.SetDescription("Connection in model '" + m.Name() +
						"' has an invalid map_variables attribute '" + attr.Type() + "'.")
					e.SetModel(m)
					e.SetKind(KindConnection)
					p.addError(e)
				}
			}
			// Check that we found both variables.
			if variable1Name == "" {
				e := &Error{}
				e.SetDescription("Connection in model '" + m.Name() +
					"' does not have a valid variable_1 in a map_variables element.")
				e.SetModel(m)
				e.SetKind(KindConnection)
				p.addError(e)
				variable1Missing = true
			}
			if variable2Name == "" {
				e := &Error{}
				e.SetDescription("Connection in model '" + m.Name() +
					"' does not have a valid variable_2 in a map_variables element.")
				e.SetModel(m)
				e.SetKind(KindConnection)
				p.addError(e)
				variable2Missing = true
			}
			variableNames = append(variableNames, namePair{variable1Name, variable2Name})
			mapVariablesFound = true

		case child.IsType(xmldoc.TextType):
			// Ignore whitespace when parsing.
			if text := child.ConvertToString(); isNotWhitespace(text) {
				e := &Error{}
				e.SetDescription("Connection in model '" + m.Name() +
					"' has an invalid non-whitespace child text element '" + text + "'.")
				e.SetModel(m)
				e.SetKind(KindConnection)
				p.addError(e)
			}
		default:
			e := &Error{}
			e.SetDescription("Connection in model '" + m.Name() +
				"' has an invalid child element '" + child.Type() + "'.")
			e.SetModel(m)
			e.SetKind(KindConnection)
			p.addError(e)
		}
	}

	// If we have a map_components, check that the components exist in the model.
	var component1, component2 *model.Component
	if mapComponentsFound {
		if m.ContainsComponent(componentNames.first) {
			component1 = m.ComponentByName(componentNames.first)
		} else if !component1Missing {
			e := &Error{}
			e.SetDescription("Connection in model '" + m.Name() +
				"' specifies '" + componentNames.first +
				"' as component_1 but it does not exist in the model.")
			e.SetModel(m)
			e.SetKind(KindConnection)
			p.addError(e)
		}
		if m.ContainsComponent(componentNames.second) {
			component2 = m.ComponentByName(componentNames.second)
		} else if !component2Missing {
			e := &Error{}
			e.SetDescription("Connection in model '" + m.Name() +
				"' specifies '" + componentNames.second +
				"' as component_2 but it does not exist in the model.")
			e.SetModel(m)
			e.SetKind(KindConnection)
			p.addError(e)
		}
	} else {
		e := &Error{}
		e.SetDescription("Connection in model '" + m.Name() +
			"' does not have a map_components element.")
		e.SetModel(m)
		e.SetKind(KindConnection)
		p.addError(e)
	}

	// If we have a map_variables, check that the variables exist in the
	// mapped components.
	if !mapVariablesFound {
		e := &Error{}
		e.SetDescription("Connection in model '" + m.Name() +
			"' does not have a map_variables element.")
		e.SetModel(m)
		e.SetKind(KindConnection)
		p.addError(e)
		return
	}
	for _, pair := range variableNames {
		var variable1, variable2 *model.Variable
		if component1 != nil {
			if component1.HasVariable(pair.first) {
				variable1 = component1.VariableByName(pair.first)
			} else if component1.IsImport() {
				// With an imported component the variable is assumed to
				// exist in the imported component.
				variable1 = model.NewVariable()
				variable1.SetName(pair.first)
				component1.AddVariable(variable1)
			} else if !variable1Missing {
				e := &Error{}
				e.SetDescription("Variable '" + pair.first +
					"' is specified as variable_1 in a connection but it does not exist in component_1 component '" +
					component1.Name() + "' of model '" + m.Name() + "'.")
				e.SetComponent(component1)
				e.SetKind(KindConnection)
				p.addError(e)
			}
		} else {
			e := &Error{}
			e.SetDescription("Connection in model '" + m.Name() +
				"' specifies '" + pair.first +
				"' as variable_1 but the corresponding component_1 is invalid.")
			e.SetModel(m)
			e.SetKind(KindConnection)
			p.addError(e)
		}
		if component2 != nil {
			if component2.HasVariable(pair.second) {
				variable2 = component2.VariableByName(pair.second)
			} else if component2.IsImport() {
				// With an imported component the variable is assumed to
				// exist in the imported component.
				variable2 = model.NewVariable()
				variable2.SetName(pair.second)
				component2.AddVariable(variable2)
			} else if !variable2Missing {
				e := &Error{}
				e.SetDescription("Variable '" + pair.second +
					"' is specified as variable_2 in a connection but it does not exist in component_2 component '" +
					component2.Name() + "' of model '" + m.Name() + "'.")
				e.SetComponent(component1)
				e.SetKind(KindConnection)
				p.addError(e)
			}
		} else {
			e := &Error{}
			e.SetDescription("Connection in model '" + m.Name() +
				"' specifies '" + pair.second +
				"' as variable_2 but the corresponding component_2 is invalid.")
			e.SetModel(m)
			e.SetKind(KindConnection)
			p.addError(e)
		}
		// Set the variable equivalence relationship for this variable pair.
		if variable1 != nil && variable2 != nil {
			model.AddEquivalence(variable1, variable2)
		}
	}
}

// loadEncapsulation loads the component_ref tree rooted at node. With
// siblings set, the elements following node are loaded as well.
func (p *Parser) loadEncapsulation(m *model.Model, node *xmldoc.Node, siblings bool) {
	for parentNode := node; parentNode != nil; parentNode = parentNode.Next() {
		if parentNode != node && !siblings {
			break
		}
		var parentComponent *model.Component
		var following []*model.Component
		parentComponentName := ""
		switch {
		case parentNode.IsType("component_ref"):
			// Check for a component in the parent component_ref.
			for attr := parentNode.FirstAttribute(); attr != nil; attr = attr.Next() {
				if attr.IsType("component") {
					parentComponentName = attr.Value()
					if m.ContainsComponent(parentComponentName) {
						for i := m.ComponentCount() - 1; i >= 0 && m.Component(i).Name() != parentComponentName; i-- {
							following = append([]*model.Component{m.Component(i)}, following...)
						}
						// Re-added to the model once the children are encapsulated.
						parentComponent = m.TakeComponent(parentComponentName)
					} else {
						e := &Error{}
						e.SetDescription("Encapsulation in model '" + m.Name() +
							"' specifies '" + parentComponentName +
							"' as a component in a component_ref but it does not exist in the model.")
						e.SetModel(m)
						e.SetKind(KindEncapsulation)
						p.addError(e)
					}
				} else {
					e := &Error{}
					e.SetDescription("Encapsulation in model '" + m.Name() +
						"' has an invalid component_ref attribute '" + attr.Type() + "'.")
					e.SetModel(m)
					e.SetKind(KindEncapsulation)
					p.addError(e)
				}
			}
			if parentComponent == nil && parentComponentName == "" {
				e := &Error{}
				e.SetDescription("Encapsulation in model '" + m.Name() +
					"' does not have a valid component attribute in a component_ref element.")
				e.SetModel(m)
				e.SetKind(KindEncapsulation)
				p.addError(e)
			}
		case parentNode.IsType(xmldoc.TextType):
			if text := parentNode.ConvertToString(); isNotWhitespace(text) {
				e := &Error{}
				e.SetDescription("Encapsulation in model '" + m.Name() +
					"' has an invalid non-whitespace child text element '" + text + "'.")
				e.SetModel(m)
				e.SetKind(KindEncapsulation)
				p.addError(e)
			} else {
				// Whitespace carries no children worth descending into.
				continue
			}
		default:
			e := &Error{}
			e.SetDescription("Encapsulation in model '" + m.Name() +
				"' has an invalid child element '" + parentNode.Type() + "'.")
			e.SetModel(m)
			e.SetKind(KindEncapsulation)
			p.addError(e)
		}

		// Get the first child of this parent component_ref.
		if parentNode.FirstChild() == nil {
			e := &Error{}
			if parentComponent != nil {
				e.SetDescription("Encapsulation in model '" + m.Name() +
					"' specifies '" + parentComponent.Name() +
					"' as a parent component_ref but it does not have any children.")
			} else {
				e.SetDescription("Encapsulation in model '" + m.Name() +
					"' specifies an invalid parent component_ref that also does not have any children.")
			}
			e.SetModel(m)
			e.SetKind(KindEncapsulation)
			p.addError(e)
		}

		// Loop over encapsulated children.
		for childNode := parentNode.FirstChild(); childNode != nil; childNode = childNode.Next() {
			var childComponent *model.Component
			switch {
			case childNode.IsType("component_ref"):
				childComponentMissing := false
				foundChildComponent := false
				for attr := childNode.FirstAttribute(); attr != nil; attr = attr.Next() {
					if attr.IsType("component") {
						childComponentName := attr.Value()
						if m.ContainsComponent(childComponentName) {
							childComponent = m.ComponentByName(childComponentName)
							foundChildComponent = true
						} else {
							e := &Error{}
							e.SetDescription("Encapsulation in model '" + m.Name() +
								"' specifies '" + childComponentName +
								"' as a component in a component_ref but it does not exist in the model.")
							e.SetModel(m)
							e.SetKind(KindEncapsulation)
							p.addError(e)
							childComponentMissing = true
						}
					} else {
						e := &Error{}
						e.SetDescription("Encapsulation in model '" + m.Name() +
							"' has an invalid component_ref attribute '" + attr.Type() + "'.")
						e.SetModel(m)
						e.SetKind(KindEncapsulation)
						p.addError(e)
					}
				}
				if !foundChildComponent && !childComponentMissing {
					e := &Error{}
					if parentComponent != nil {
						e.SetDescription("Encapsulation in model '" + m.Name() +
							"' does not have a valid component attribute in a component_ref that is a child of '" +
							parentComponent.Name() + "'.")
					} else if parentComponentName != "" {
						e.SetDescription("Encapsulation in model '" + m.Name() +
							"' does not have a valid component attribute in a component_ref that is a child of invalid parent component '" +
							parentComponentName + "'.")
					} else {
						e.SetDescription("Encapsulation in model '" + m.Name() +
							"' does not have a valid component attribute in a component_ref that is a child of an invalid parent component.")
					}
					e.SetModel(m)
					e.SetKind(KindEncapsulation)
					p.addError(e)
				}
			case childNode.IsType(xmldoc.TextType):
				if text := childNode.ConvertToString(); isNotWhitespace(text) {
					e := &Error{}
					e.SetDescription("Encapsulation in model '" + m.Name() +
						"' has an invalid non-whitespace child text element '" + text + "'.")
					e.SetModel(m)
					e.SetKind(KindEncapsulation)
					p.addError(e)
				}
			default:
				e := &Error{}
				e.SetDescription("Encapsulation in model '" + m.Name() +
					"' has an invalid child element '" + childNode.Type() + "'.")
				e.SetModel(m)
				e.SetKind(KindEncapsulation)
				p.addError(e)
			}

			// Load any further encapsulated children.
			if childNode.FirstChild() != nil {
				p.loadEncapsulation(m, childNode, false)
			}
			if parentComponent != nil && childComponent != nil {
				// Set the parent/child encapsulation relationship. A child
				// component belongs under its parent component rather than
				// the model, so remove it from the model.
				parentComponent.AddComponent(childComponent)
				m.RemoveComponent(childComponent)
			}
		}

		// Re-add the parent component to the model with its children encapsulated.
		if parentComponent != nil {
			m.AddComponent(parentComponent)
			// Move the components that followed the parent's slot back
			// behind it, so the top level keeps its source order.
			for _, c := range following {
				if m.RemoveComponent(c) {
					m.AddComponent(c)
				}
			}
		}
	}
}

func (p *Parser) loadImport(imp *model.Import, m *model.Model, node *xmldoc.Node) {
	for attr := node.FirstAttribute(); attr != nil; attr = attr.Next() {
		switch {
		case attr.IsType("href"):
			imp.SetSource(attr.Value())
		case attr.IsType("id"):
			imp.SetID(attr.Value())
		case attr.Namespace() == xlinkNamespace || attr.Namespace() == "xlink":
			// xlink attributes are allowed but carry nothing for the model.
		default:
			e := &Error{}
			e.SetDescription("Import from '" + node.Attribute("href") +
				"' has an invalid attribute '" + attr.Type() + "'.")
			e.SetImport(imp)
			e.SetKind(KindImport)
			p.addError(e)
		}
	}
	for child := node.FirstChild(); child != nil; child = child.Next() {
		switch {
		case child.IsType("component"):
			importedComponent := model.NewComponent()
			errorOccurred := false
			for attr := child.FirstAttribute(); attr != nil; attr = attr.Next() {
				switch {
				case attr.IsType("name"):
					importedComponent.SetName(attr.Value())
				case attr.IsType("id"):
					importedComponent.SetID(attr.Value())
				case attr.IsType("component_ref"):
					importedComponent.SetSourceComponent(imp, attr.Value())
				default:
					e := &Error{}
					e.SetDescription("Import of component '" + child.Attribute("name") +
						"' from '" + node.Attribute("href") +
						"' has an invalid attribute '" + attr.Type() + "'.")
					e.SetImport(imp)
					e.SetKind(KindImport)
					p.addError(e)
					errorOccurred = true
				}
			}
			if !errorOccurred {
				m.AddComponent(importedComponent)
			}
		case child.IsType("units"):
			importedUnits := model.NewUnits()
			errorOccurred := false
			for attr := child.FirstAttribute(); attr != nil; attr = attr.Next() {
				switch {
				case attr.IsType("name"):
					importedUnits.SetName(attr.Value())
				case attr.IsType("id"):
					importedUnits.SetID(attr.Value())
				case attr.IsType("units_ref"):
					importedUnits.SetSourceUnits(imp, attr.Value())
				default:
					e := &Error{}
					e.SetDescription("Import of units '" + child.Attribute("name") +
						"' from '" + node.Attribute("href") +
						"' has an invalid attribute '" + attr.Type() + "'.")
					e.SetImport(imp)
					e.SetKind(KindImport)
					p.addError(e)
					errorOccurred = true
				}
			}
			if !errorOccurred {
				m.AddUnits(importedUnits)
			}
		case child.IsType(xmldoc.TextType):
			// Ignore whitespace when parsing.
			if text := child.ConvertToString(); isNotWhitespace(text) {
				e := &Error{}
				e.SetDescription("Import from '" + node.Attribute("href") +
					"' has an invalid non-whitespace child text element '" + text + "'.")
				e.SetImport(imp)
				e.SetKind(KindImport)
				p.addError(e)
			}
		default:
			e := &Error{}
			e.SetDescription("Import from '" + node.Attribute("href") +
				"' has an invalid child element '" + child.Type() + "'.")
			e.SetImport(imp)
			e.SetKind(KindImport)
			p.addError(e)
		}
	}
}

// addError records an error on the log and mirrors it to the trace logger.
func (p *Parser) addError(e *Error) {
	p.AddError(e)
	if p.trace != nil {
		p.trace.Log(log.Event{
			Timestamp: time.Now(),
			SessionID: p.sessionID,
			Phase:     log.PhaseParse,
			Category:  log.CategoryFault,
			Model:     p.modelName,
			Fault: &log.FaultEvent{
				Kind:        e.Kind().String(),
				Description: e.Description(),
			},
		})
	}
}

func (p *Parser) beginSession(inputSize int) {
	p.modelName = ""
	if p.trace == nil {
		return
	}
	p.sessionID = uuid.NewString()
	p.trace.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: p.sessionID,
		Phase:     log.PhaseParse,
		Category:  log.CategorySession,
		Session:   &log.SessionEvent{InputSize: inputSize},
	})
}

func (p *Parser) endSession() {
	if p.trace == nil {
		return
	}
	p.trace.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: p.sessionID,
		Phase:     log.PhaseParse,
		Category:  log.CategorySession,
		Model:     p.modelName,
		Session:   &log.SessionEvent{Ended: true, ErrorCount: p.ErrorCount()},
	})
}

func (p *Parser) traceElement(element, entity string) {
	if p.trace == nil {
		return
	}
	p.trace.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: p.sessionID,
		Phase:     log.PhaseParse,
		Category:  log.CategoryElement,
		Model:     p.modelName,
		Element:   element,
		Entity:    entity,
	})
}

func isNotWhitespace(input string) bool {
	return strings.Trim(input, " \t\n\v\f\r") != ""
}
