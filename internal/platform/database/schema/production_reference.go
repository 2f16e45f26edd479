package schema

// ProductionReferenceTable represents the 'production.reference' table
type ProductionReferenceTable struct {
	Table         string
	ID            string
	Type          string
	Icon          string
	Version       string
	CreatedBy     string
	CreatedByName string
	CreatedAt     string
	UpdatedAt     string
}

// ProductionReference is the schema definition for production.reference
var ProductionReference = ProductionReferenceTable{
	Table:         "production.reference",
	ID:            "id",
	Type:          "type",
	Icon:          "icon",
	Version:       "version",
	CreatedBy:     "created_by",
	CreatedByName: "created_by_name",
	CreatedAt:     "created_at",
	UpdatedAt:     "updated_at",
}

func (t ProductionReferenceTable) Columns() []string {
	return []string{
		t.ID, t.Type, t.Icon, t.Version, t.CreatedBy, t.CreatedByName, t.CreatedAt, t.UpdatedAt,
	}
}
