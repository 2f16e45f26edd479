package schema

// ProductionPosteTable represents the 'production.poste' table
type ProductionPosteTable struct {
	Table      string
	ID         string
	InternalID string
	LigneID    string
}

// ProductionPoste is the schema definition for production.poste
var ProductionPoste = ProductionPosteTable{
	Table:      "production.poste",
	ID:         "id",
	InternalID: "internal_id",
	LigneID:    "ligne_id",
}

func (t ProductionPosteTable) Columns() []string {
	return []string{
		t.ID, t.InternalID, t.LigneID,
	}
}
