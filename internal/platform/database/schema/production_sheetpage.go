package schema

// ProductionSheetPageTable represents the 'production.sheet_page' table
type ProductionSheetPageTable struct {
	Table         string
	ID            string
	SheetID       string
	Number        string
	Description   string
	CreatedBy     string
	CreatedByName string
	CreatedAt     string
	UpdatedAt     string
}

// ProductionSheetPage is the schema definition for production.sheet_page
var ProductionSheetPage = ProductionSheetPageTable{
	Table:         "production.sheet_page",
	ID:            "id",
	SheetID:       "sheet_id",
	Number:        "number",
	Description:   "description",
	CreatedBy:     "created_by",
	CreatedByName: "created_by_name",
	CreatedAt:     "created_at",
	UpdatedAt:     "updated_at",
}

func (t ProductionSheetPageTable) Columns() []string {
	return []string{
		t.ID, t.SheetID, t.Number, t.Description, t.CreatedBy, t.CreatedByName, t.CreatedAt, t.UpdatedAt,
	}
}
