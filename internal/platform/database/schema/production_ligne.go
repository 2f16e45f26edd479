package schema

// ProductionLigneTable represents the 'production.ligne' table
type ProductionLigneTable struct {
	Table      string
	ID         string
	InternalID string
	Name       string
}

// ProductionLigne is the schema definition for production.ligne
var ProductionLigne = ProductionLigneTable{
	Table:      "production.ligne",
	ID:         "id",
	InternalID: "internal_id",
	Name:       "name",
}

func (t ProductionLigneTable) Columns() []string {
	return []string{
		t.ID, t.InternalID, t.Name,
	}
}
