package schema

// ProductionVarianteGammeTable represents the 'production.variante_gamme' table
type ProductionVarianteGammeTable struct {
	Table      string
	ID         string
	InternalID string
	GammeID    string
}

// ProductionVarianteGamme is the schema definition for production.variante_gamme
var ProductionVarianteGamme = ProductionVarianteGammeTable{
	Table:      "production.variante_gamme",
	ID:         "id",
	InternalID: "internal_id",
	GammeID:    "gamme_id",
}

func (t ProductionVarianteGammeTable) Columns() []string {
	return []string{
		t.ID, t.InternalID, t.GammeID,
	}
}
