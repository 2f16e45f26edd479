package schema

// ProductionSheetTable represents the 'production.sheet' table
type ProductionSheetTable struct {
	Table         string
	ID            string
	Name          string
	BusinessID    string
	Language      string
	CreatedBy     string
	CreatedByName string
	CreatedAt     string
	UpdatedAt     string
}

// ProductionSheet is the schema definition for production.sheet
var ProductionSheet = ProductionSheetTable{
	Table:         "production.sheet",
	ID:            "id",
	Name:          "name",
	BusinessID:    "business_id",
	Language:      "language",
	CreatedBy:     "created_by",
	CreatedByName: "created_by_name",
	CreatedAt:     "created_at",
	UpdatedAt:     "updated_at",
}

func (t ProductionSheetTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.BusinessID, t.Language, t.CreatedBy, t.CreatedByName, t.CreatedAt, t.UpdatedAt,
	}
}
