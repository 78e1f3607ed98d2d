package model

// entity carries the name and id attributes common to all CellML entities.
type entity struct {
	name string
	id   string
}

// Name returns the entity name.
func (e *entity) Name() string {
	return e.name
}

// SetName sets the entity name.
func (e *entity) SetName(name string) {
	e.name = name
}

// ID returns the entity id.
func (e *entity) ID() string {
	return e.id
}

// SetID sets the entity id.
func (e *entity) SetID(id string) {
	e.id = id
}
