package schema

// ProductionCabineTable represents the 'production.cabine' table
type ProductionCabineTable struct {
	Table           string
	ID              string
	InternalID      string
	VarianteGammeID string
}

// ProductionCabine is the schema definition for production.cabine
var ProductionCabine = ProductionCabineTable{
	Table:           "production.cabine",
	ID:              "id",
	InternalID:      "internal_id",
	VarianteGammeID: "variante_gamme_id",
}

func (t ProductionCabineTable) Columns() []string {
	return []string{
		t.ID, t.InternalID, t.VarianteGammeID,
	}
}
