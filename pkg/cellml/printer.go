package cellml

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cellml-modeling/cellml-go/pkg/log"
	"github.com/cellml-modeling/cellml-go/pkg/model"
)

// cellmlNamespace is the namespace emitted on the model root element.
const cellmlNamespace = "http://www.cellml.org/cellml/2.0#"

// xmlDeclaration opens every printed document.
const xmlDeclaration = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"

// attrEscaper escapes the characters that cannot appear verbatim in a
// double-quoted attribute value.
var attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", "\"", "&quot;")

// Printer serializes model entity graphs to CellML documents. Output is
// deterministic: printing the same graph twice yields the same bytes.
type Printer struct {
	format Format
	trace  log.Logger

	// Per-session trace state.
	sessionID string
	modelName string
}

// NewPrinter creates a printer for the given format.
func NewPrinter(format Format) *Printer {
	return &Printer{format: format}
}

// SetTraceLogger attaches a trace logger. The printer emits no events until
// one is set; pass nil to detach.
func (p *Printer) SetTraceLogger(l log.Logger) {
	p.trace = l
}

// PrintModel serializes a model to a complete CellML document. Top-level
// entity order is imports, units, components, encapsulation, connections;
// encapsulated components print flat at the top level and the encapsulation
// tree is re-materialized from component_ref elements.
func (p *Printer) PrintModel(m *model.Model) string {
	if p.format != FormatXML {
		return ""
	}
	p.beginSession(m.Name())
	defer p.endSession()

	var body strings.Builder
	p.writeImports(&body, m)
	for i := 0; i < m.UnitsCount(); i++ {
		u := m.Units(i)
		if u.IsImport() {
			continue
		}
		writeUnits(&body, u)
		p.traceElement("units", u.Name())
	}
	components := printableComponents(m)
	for _, c := range components {
		if c.IsImport() {
			continue
		}
		writeComponent(&body, c)
		p.traceElement("component", c.Name())
	}
	p.writeEncapsulation(&body, m)
	p.writeConnections(&body, components)

	var out strings.Builder
	out.WriteString(xmlDeclaration)
	out.WriteString("<model xmlns=\"" + cellmlNamespace + "\"")
	writeAttr(&out, "name", m.Name())
	writeAttr(&out, "id", m.ID())
	closeElement(&out, "model", body.String())
	return out.String()
}

// PrintComponent serializes a single component as an element-only fragment.
// Encapsulated child components are not included; they belong to the
// encapsulation block of a full document.
func (p *Printer) PrintComponent(c *model.Component) string {
	if p.format != FormatXML {
		return ""
	}
	var b strings.Builder
	writeComponent(&b, c)
	return b.String()
}

// PrintUnits serializes a units definition as an element-only fragment. A
// units with no name, no id, no base-unit flag, and no unit rows prints as
// the empty string.
func (p *Printer) PrintUnits(u *model.Units) string {
	if p.format != FormatXML {
		return ""
	}
	_, set := u.BaseUnit()
	if u.Name() == "" && u.ID() == "" && !set && u.UnitCount() == 0 {
		return ""
	}
	var b strings.Builder
	writeUnits(&b, u)
	return b.String()
}

// PrintVariable serializes a single variable as an element-only fragment.
func (p *Printer) PrintVariable(v *model.Variable) string {
	if p.format != FormatXML {
		return ""
	}
	var b strings.Builder
	writeVariable(&b, v)
	return b.String()
}

// PrintReset serializes a single reset rule as an element-only fragment.
func (p *Printer) PrintReset(r *model.Reset) string {
	if p.format != FormatXML {
		return ""
	}
	var b strings.Builder
	b.WriteString("<reset")
	writeAttr(&b, "variable", r.Variable())
	writeAttr(&b, "order", r.Order())
	writeAttr(&b, "id", r.ID())
	b.WriteString("/>")
	return b.String()
}

func (p *Printer) writeImports(b *strings.Builder, m *model.Model) {
	for i := 0; i < m.ImportCount(); i++ {
		imp := m.Import(i)
		var body strings.Builder
		for j := 0; j < m.UnitsCount(); j++ {
			u := m.Units(j)
			if u.ImportSource() != imp {
				continue
			}
			body.WriteString("<units")
			writeAttr(&body, "units_ref", u.ImportReference())
			writeAttr(&body, "name", u.Name())
			writeAttr(&body, "id", u.ID())
			body.WriteString("/>")
		}
		for j := 0; j < m.ComponentCount(); j++ {
			c := m.Component(j)
			if c.ImportSource() != imp {
				continue
			}
			body.WriteString("<component")
			writeAttr(&body, "component_ref", c.ImportReference())
			writeAttr(&body, "name", c.Name())
			writeAttr(&body, "id", c.ID())
			body.WriteString("/>")
		}
		b.WriteString("<import xlink:href=\"" + attrEscaper.Replace(imp.Source()) +
			"\" xmlns:xlink=\"" + xlinkNamespace + "\"")
		writeAttr(b, "id", imp.ID())
		closeElement(b, "import", body.String())
		p.traceElement("import", imp.Source())
	}
}

func (p *Printer) writeEncapsulation(b *strings.Builder, m *model.Model) {
	var body strings.Builder
	for i := 0; i < m.ComponentCount(); i++ {
		if c := m.Component(i); c.ComponentCount() > 0 {
			writeComponentRef(&body, c)
		}
	}
	if body.Len() == 0 {
		return
	}
	b.WriteString("<encapsulation>")
	b.WriteString(body.String())
	b.WriteString("</encapsulation>")
	p.traceElement("encapsulation", "")
}

func writeComponentRef(b *strings.Builder, c *model.Component) {
	b.WriteString("<component_ref")
	writeAttr(b, "component", c.Name())
	if c.ComponentCount() == 0 {
		b.WriteString("/>")
		return
	}
	b.WriteString(">")
	for i := 0; i < c.ComponentCount(); i++ {
		writeComponentRef(b, c.Component(i))
	}
	b.WriteString("</component_ref>")
}

// writeConnections emits one connection element per pair of components that
// share variable equivalences. Pairs are ordered by component print index,
// variable pairs by variable insertion index, so output is stable across
// round trips.
func (p *Printer) writeConnections(b *strings.Builder, components []*model.Component) {
	for i, c1 := range components {
		for j := i; j < len(components); j++ {
			c2 := components[j]
			var pairs strings.Builder
			for vi := 0; vi < c1.VariableCount(); vi++ {
				v := c1.Variable(vi)
				for wi := 0; wi < c2.VariableCount(); wi++ {
					if i == j && wi <= vi {
						continue
					}
					w := c2.Variable(wi)
					if !v.HasEquivalentVariable(w) {
						continue
					}
					pairs.WriteString("<map_variables")
					writeAttr(&pairs, "variable_1", v.Name())
					writeAttr(&pairs, "variable_2", w.Name())
					pairs.WriteString("/>")
				}
			}
			if pairs.Len() == 0 {
				continue
			}
			b.WriteString("<connection><map_components")
			writeAttr(b, "component_1", c1.Name())
			writeAttr(b, "component_2", c2.Name())
			b.WriteString("/>")
			b.WriteString(pairs.String())
			b.WriteString("</connection>")
			p.traceElement("connection", "")
		}
	}
}

// printableComponents returns every component of the model in print order:
// top-level components in insertion order, each followed by its encapsulated
// descendants pre-order. Connection enumeration indexes into this order.
func printableComponents(m *model.Model) []*model.Component {
	var out []*model.Component
	var walk func(c *model.Component)
	walk = func(c *model.Component) {
		out = append(out, c)
		for i := 0; i < c.ComponentCount(); i++ {
			walk(c.Component(i))
		}
	}
	for i := 0; i < m.ComponentCount(); i++ {
		walk(m.Component(i))
	}
	return out
}

func writeComponent(b *strings.Builder, c *model.Component) {
	var body strings.Builder
	for i := 0; i < c.VariableCount(); i++ {
		writeVariable(&body, c.Variable(i))
	}
	for i := 0; i < c.UnitsCount(); i++ {
		writeUnits(&body, c.Units(i))
	}
	body.WriteString(c.Math())

	b.WriteString("<component")
	writeAttr(b, "name", c.Name())
	writeAttr(b, "id", c.ID())
	closeElement(b, "component", body.String())
}

func writeUnits(b *strings.Builder, u *model.Units) {
	var body strings.Builder
	for i := 0; i < u.UnitCount(); i++ {
		row := u.Unit(i)
		body.WriteString("<unit")
		writeAttr(&body, "units", row.Reference)
		writeAttr(&body, "prefix", row.Prefix)
		if row.Exponent != 1 {
			writeAttr(&body, "exponent", formatNumber(row.Exponent))
		}
		if row.Multiplier != 1 {
			writeAttr(&body, "multiplier", formatNumber(row.Multiplier))
		}
		if row.Offset != 0 {
			writeAttr(&body, "offset", formatNumber(row.Offset))
		}
		body.WriteString("/>")
	}

	b.WriteString("<units")
	writeAttr(b, "name", u.Name())
	if value, set := u.BaseUnit(); set {
		if value {
			writeAttr(b, "base_unit", "yes")
		} else {
			writeAttr(b, "base_unit", "no")
		}
	}
	writeAttr(b, "id", u.ID())
	closeElement(b, "units", body.String())
}

func writeVariable(b *strings.Builder, v *model.Variable) {
	b.WriteString("<variable")
	writeAttr(b, "name", v.Name())
	writeAttr(b, "units", v.Units())
	writeAttr(b, "interface", v.InterfaceType())
	writeAttr(b, "initial_value", v.InitialValue())
	writeAttr(b, "id", v.ID())
	b.WriteString("/>")
}

// writeAttr appends name="value" with the value escaped. Empty values are
// omitted entirely.
func writeAttr(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	b.WriteString(" " + name + "=\"" + attrEscaper.Replace(value) + "\"")
}

// closeElement finishes an element whose opening tag is already in b. Empty
// bodies self-close.
func closeElement(b *strings.Builder, name, body string) {
	if body == "" {
		b.WriteString("/>")
		return
	}
	b.WriteString(">")
	b.WriteString(body)
	b.WriteString("</" + name + ">")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (p *Printer) beginSession(modelName string) {
	p.modelName = modelName
	if p.trace == nil {
		return
	}
	p.sessionID = uuid.NewString()
	p.trace.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: p.sessionID,
		Phase:     log.PhasePrint,
		Category:  log.CategorySession,
		Model:     p.modelName,
		Session:   &log.SessionEvent{},
	})
}

func (p *Printer) endSession() {
	if p.trace == nil {
		return
	}
	p.trace.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: p.sessionID,
		Phase:     log.PhasePrint,
		Category:  log.CategorySession,
		Model:     p.modelName,
		Session:   &log.SessionEvent{Ended: true},
	})
}

func (p *Printer) traceElement(element, entity string) {
	if p.trace == nil {
		return
	}
	p.trace.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: p.sessionID,
		Phase:     log.PhasePrint,
		Category:  log.CategoryElement,
		Model:     p.modelName,
		Element:   element,
		Entity:    entity,
	})
}
