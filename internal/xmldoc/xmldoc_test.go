package xmldoc

import (
	"strings"
	"testing"
)

func TestParse_EmptyInput(t *testing.T) {
	doc := Parse("")

	if doc.RootNode() != nil {
		t.Error("empty input should produce no root node")
	}
	if doc.ErrorCount() != 0 {
		t.Errorf("ErrorCount() = %d, want 0", doc.ErrorCount())
	}
}

func TestParse_SimpleElement(t *testing.T) {
	doc := Parse(`<model name="m" id="i"/>`)

	root := doc.RootNode()
	if root == nil {
		t.Fatal("expected a root node")
	}
	if !root.IsType("model") {
		t.Errorf("Type() = %s, want model", root.Type())
	}
	if root.Attribute("name") != "m" || root.Attribute("id") != "i" {
		t.Error("attribute lookup mismatch")
	}
	if root.Attribute("missing") != "" {
		t.Error("missing attribute should yield empty string")
	}
	if root.FirstChild() != nil {
		t.Error("self-closing element should have no children")
	}
}

func TestParse_AttributeChain(t *testing.T) {
	doc := Parse(`<unit units="volt" prefix="milli" exponent="2"/>`)

	var got []string
	for a := doc.RootNode().FirstAttribute(); a != nil; a = a.Next() {
		got = append(got, a.Type()+"="+a.Value())
	}
	want := []string{"units=volt", "prefix=milli", "exponent=2"}
	if len(got) != len(want) {
		t.Fatalf("attribute count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("attribute %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestParse_ChildrenAndSiblings(t *testing.T) {
	doc := Parse(`<model><component name="a"/><units name="u"/></model>`)

	first := doc.RootNode().FirstChild()
	if first == nil || !first.IsType("component") {
		t.Fatal("expected first child 'component'")
	}
	second := first.Next()
	if second == nil || !second.IsType("units") {
		t.Fatal("expected sibling 'units'")
	}
	if second.Next() != nil {
		t.Error("expected exactly two children")
	}
	if first.Parent() != doc.RootNode() {
		t.Error("parent back-reference mismatch")
	}
}

func TestParse_TextNodes(t *testing.T) {
	doc := Parse("<model>\n  <component/>text</model>")

	first := doc.RootNode().FirstChild()
	if first == nil || !first.IsType(TextType) {
		t.Fatal("expected leading whitespace text node")
	}
	if first.ConvertToString() != "\n  " {
		t.Errorf("text = %q, want whitespace run", first.ConvertToString())
	}

	comp := first.Next()
	if comp == nil || !comp.IsType("component") {
		t.Fatal("expected component after text")
	}
	trailing := comp.Next()
	if trailing == nil || trailing.ConvertToString() != "text" {
		t.Error("expected trailing text node 'text'")
	}
}

func TestParse_EntityDecodedText(t *testing.T) {
	doc := Parse(`<a>x &amp; y</a>`)

	text := doc.RootNode().FirstChild()
	if text == nil || text.ConvertToString() != "x & y" {
		t.Errorf("entity references should decode into one text node, got %q",
			text.ConvertToString())
	}
}

func TestNode_ConvertToString_RawSubtree(t *testing.T) {
	input := `<component><math xmlns="http://www.w3.org/1998/Math/MathML"><apply><eq/></apply></math></component>`
	doc := Parse(input)

	math := doc.RootNode().FirstChild()
	if math == nil || !math.IsType("math") {
		t.Fatal("expected math child")
	}
	want := `<math xmlns="http://www.w3.org/1998/Math/MathML"><apply><eq/></apply></math>`
	if got := math.ConvertToString(); got != want {
		t.Errorf("ConvertToString() = %q, want %q", got, want)
	}
}

func TestParse_SyntaxErrorKeepsPartialTree(t *testing.T) {
	doc := Parse(`<model><component name="a"/><component`)

	if doc.ErrorCount() != 1 {
		t.Fatalf("ErrorCount() = %d, want 1", doc.ErrorCount())
	}
	if doc.Error(0) == "" {
		t.Error("recorded error should carry a description")
	}
	root := doc.RootNode()
	if root == nil {
		t.Fatal("partial tree should still expose the root")
	}
	if child := root.FirstChild(); child == nil || child.Attribute("name") != "a" {
		t.Error("children parsed before the fault should be retained")
	}
}

func TestParse_ExtraRootElement(t *testing.T) {
	doc := Parse(`<model/><extra><nested/></extra>`)

	if doc.RootNode() == nil || !doc.RootNode().IsType("model") {
		t.Fatal("first root element should win")
	}
	if doc.ErrorCount() != 1 {
		t.Fatalf("ErrorCount() = %d, want 1", doc.ErrorCount())
	}
	if !strings.Contains(doc.Error(0), "extra") {
		t.Errorf("error %q should mention the extra element", doc.Error(0))
	}
}

func TestParse_XlinkAttributes(t *testing.T) {
	doc := Parse(`<import xlink:href="other.xml" xmlns:xlink="http://www.w3.org/1999/xlink" id="i"/>`)

	root := doc.RootNode()
	var names []string
	var spaces []string
	for a := root.FirstAttribute(); a != nil; a = a.Next() {
		names = append(names, a.Type())
		spaces = append(spaces, a.Namespace())
	}
	// The xmlns:xlink declaration must not surface as an attribute.
	if len(names) != 2 {
		t.Fatalf("attribute count = %d, want 2 (%v)", len(names), names)
	}
	if names[0] != "href" || spaces[0] != "http://www.w3.org/1999/xlink" {
		t.Errorf("expected namespaced href attribute, got %s (%s)", names[0], spaces[0])
	}
	if names[1] != "id" || spaces[1] != "" {
		t.Errorf("expected plain id attribute, got %s (%s)", names[1], spaces[1])
	}
}

func TestParse_UndeclaredPrefixKept(t *testing.T) {
	doc := Parse(`<import xlink:href="other.xml"/>`)

	a := doc.RootNode().FirstAttribute()
	if a == nil {
		t.Fatal("expected one attribute")
	}
	if a.Type() != "href" || a.Namespace() != "xlink" {
		t.Errorf("undeclared prefix should be kept, got %s (%s)", a.Type(), a.Namespace())
	}
}

func TestParse_CommentsDropped(t *testing.T) {
	doc := Parse(`<model><!-- note --><component/></model>`)

	child := doc.RootNode().FirstChild()
	if child == nil || !child.IsType("component") {
		t.Error("comments should not appear in the tree")
	}
}
