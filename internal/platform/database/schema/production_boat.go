package schema

// ProductionBoatTable represents the 'production.boat' table
type ProductionBoatTable struct {
	Table      string
	ID         string
	InternalID string
	Name       string
}

// ProductionBoat is the schema definition for production.boat
var ProductionBoat = ProductionBoatTable{
	Table:      "production.boat",
	ID:         "id",
	InternalID: "internal_id",
	Name:       "name",
}

func (t ProductionBoatTable) Columns() []string {
	return []string{
		t.ID, t.InternalID, t.Name,
	}
}
