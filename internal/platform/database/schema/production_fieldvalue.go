package schema

// ProductionFieldValueTable represents the 'production.field_value' table
type ProductionFieldValueTable struct {
	Table       string
	ID          string
	ReferenceID string
	ElementID   string
	Position    string
	Name        string
	Type        string
	Language    string
	ValueString string
	ValueInt    string
	ValueFloat  string
	ValueMedia  string
}

// ProductionFieldValue is the schema definition for production.field_value
var ProductionFieldValue = ProductionFieldValueTable{
	Table:       "production.field_value",
	ID:          "id",
	ReferenceID: "reference_id",
	ElementID:   "element_id",
	Position:    "position",
	Name:        "name",
	Type:        "type",
	Language:    "language",
	ValueString: "value_string",
	ValueInt:    "value_int",
	ValueFloat:  "value_float",
	ValueMedia:  "value_media",
}

func (t ProductionFieldValueTable) Columns() []string {
	return []string{
		t.ID, t.ReferenceID, t.ElementID, t.Position, t.Name, t.Type, t.Language, t.ValueString,
		t.ValueInt, t.ValueFloat, t.ValueMedia,
	}
}
