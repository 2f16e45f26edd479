package schema

// ProductionPosteVarianteDocTable represents the 'production.poste_variante_documentation' table
type ProductionPosteVarianteDocTable struct {
	Table           string
	ID              string
	PosteID         string
	VarianteGammeID string
	LigneSens       string
	SheetID         string
}

// ProductionPosteVarianteDoc is the schema definition for production.poste_variante_documentation
var ProductionPosteVarianteDoc = ProductionPosteVarianteDocTable{
	Table:           "production.poste_variante_documentation",
	ID:              "id",
	PosteID:         "poste_id",
	VarianteGammeID: "variante_gamme_id",
	LigneSens:       "ligne_sens",
	SheetID:         "sheet_id",
}

func (t ProductionPosteVarianteDocTable) Columns() []string {
	return []string{
		t.ID, t.PosteID, t.VarianteGammeID, t.LigneSens, t.SheetID,
	}
}
