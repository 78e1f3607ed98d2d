package model

// Unit is a single row inside a Units definition: a scaled reference to
// another units definition.
type Unit struct {
	// Reference is the name of the referenced units definition.
	Reference string

	// Prefix is the SI prefix name, or empty for none.
	Prefix string

	// Exponent the referenced units are raised to. Defaults to 1.
	Exponent float64

	// Multiplier applied to the referenced units. Defaults to 1.
	Multiplier float64

	// Offset applied to the referenced units. Defaults to 0.
	Offset float64
}

// Units is a named units definition composed of an ordered sequence of Unit
// rows. A Units may alternatively be flagged as a base unit, or be imported
// from another document.
type Units struct {
	entity
	baseUnit    bool
	baseUnitSet bool
	units       []Unit
	importFrom  *Import
	importRef   string
}

// NewUnits creates a new empty Units definition.
func NewUnits() *Units {
	return &Units{}
}

// SetBaseUnit sets the base-unit flag to the given value.
func (u *Units) SetBaseUnit(v bool) {
	u.baseUnit = v
	u.baseUnitSet = true
}

// BaseUnit returns the base-unit flag value and whether the flag has been
// set at all.
func (u *Units) BaseUnit() (value, set bool) {
	return u.baseUnit, u.baseUnitSet
}

// AddUnit appends a unit row referencing the units definition named
// reference, with the given prefix, exponent, multiplier, and offset.
func (u *Units) AddUnit(reference, prefix string, exponent, multiplier, offset float64) {
	u.units = append(u.units, Unit{
		Reference:  reference,
		Prefix:     prefix,
		Exponent:   exponent,
		Multiplier: multiplier,
		Offset:     offset,
	})
}

// UnitCount returns the number of unit rows.
func (u *Units) UnitCount() int {
	return len(u.units)
}

// Unit returns the unit row at index i. It returns the zero Unit if i is
// out of range.
func (u *Units) Unit(i int) Unit {
	if i < 0 || i >= len(u.units) {
		return Unit{}
	}
	return u.units[i]
}

// SetSourceUnits marks the definition as imported from imp, referencing the
// units named ref in the source document.
func (u *Units) SetSourceUnits(imp *Import, ref string) {
	u.importFrom = imp
	u.importRef = ref
}

// IsImport reports whether the units definition is imported.
func (u *Units) IsImport() bool {
	return u.importFrom != nil
}

// ImportSource returns the Import this definition is drawn from, or nil for
// a local definition.
func (u *Units) ImportSource() *Import {
	return u.importFrom
}

// ImportReference returns the name of the referenced units definition in
// the import source document.
func (u *Units) ImportReference() string {
	return u.importRef
}
