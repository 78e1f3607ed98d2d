package model

// Import is a reference to another model document from which components or
// units definitions will later be instantiated. Imported components and
// units hold a non-owning reference to their Import; the Import itself owns
// nothing.
type Import struct {
	entity
	source string
}

// NewImport creates a new empty Import.
func NewImport() *Import {
	return &Import{}
}

// Source returns the URI of the imported document.
func (i *Import) Source() string {
	return i.source
}

// SetSource sets the URI of the imported document.
func (i *Import) SetSource(source string) {
	i.source = source
}
