package schema

// ProductionGammeCabineTable represents the 'production.gamme_cabine' table
type ProductionGammeCabineTable struct {
	Table      string
	ID         string
	InternalID string
	BoatID     string
}

// ProductionGammeCabine is the schema definition for production.gamme_cabine
var ProductionGammeCabine = ProductionGammeCabineTable{
	Table:      "production.gamme_cabine",
	ID:         "id",
	InternalID: "internal_id",
	BoatID:     "boat_id",
}

func (t ProductionGammeCabineTable) Columns() []string {
	return []string{
		t.ID, t.InternalID, t.BoatID,
	}
}
