// Package mapstruct implements the field-mapping engine behind the
// MapStruct mapping editor: catalogs of extracted DTO/DAO fields,
// many-to-many associations with undo/redo history, name-based
// auto-mapping and the exported mapping document.
package mapstruct

// Field is a single field extracted from a source or target class.
// Fields are immutable once extracted.
type Field struct {
	// Name is the declared field name.
	Name string

	// Type is the declared type, verbatim (e.g. "String", "List<Long>").
	Type string

	// Owner is the declaring class name.
	Owner string
}

// ID returns the identity of the field.
func (f Field) ID() FieldID {
	return FieldID{Owner: f.Owner, Name: f.Name}
}

// FieldID identifies a field by (owner class, name).
type FieldID struct {
	Owner string `json:"owner" yaml:"owner"`
	Name  string `json:"name"  yaml:"name"`
}

// String returns "Owner.Name".
func (id FieldID) String() string {
	return id.Owner + "." + id.Name
}

// ClassGroup is the ordered list of fields declared by one source class.
type ClassGroup struct {
	Name   string
	Fields []Field
}

// Catalog holds the two field universes for a mapping session.
// Source fields are grouped by declaring class in declaration order;
// target fields are a flat list, each carrying its own owner class.
type Catalog struct {
	Source []ClassGroup
	Target []Field
}

// AddSource appends fields to the group for class, creating the group
// on first use. Group order follows first insertion, field order
// follows declaration order.
func (c *Catalog) AddSource(class string, fields ...Field) {
	for i := range c.Source {
		if c.Source[i].Name == class {
			c.Source[i].Fields = append(c.Source[i].Fields, fields...)
			return
		}
	}

	c.Source = append(c.Source, ClassGroup{Name: class, Fields: fields})
}

// AddTarget appends fields to the flat target list.
func (c *Catalog) AddTarget(fields ...Field) {
	c.Target = append(c.Target, fields...)
}

// SourceFields returns every source field, flattened in catalog order.
func (c *Catalog) SourceFields() []Field {
	var out []Field
	for _, g := range c.Source {
		out = append(out, g.Fields...)
	}

	return out
}

// SourceByID looks up a source field by identity.
func (c *Catalog) SourceByID(id FieldID) (Field, bool) {
	for _, g := range c.Source {
		for _, f := range g.Fields {
			if f.ID() == id {
				return f, true
			}
		}
	}

	return Field{}, false
}

// TargetByID looks up a target field by identity.
func (c *Catalog) TargetByID(id FieldID) (Field, bool) {
	for _, f := range c.Target {
		if f.ID() == id {
			return f, true
		}
	}

	return Field{}, false
}
