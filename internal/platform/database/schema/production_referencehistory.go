package schema

// ProductionReferenceHistoryTable represents the 'production.reference_history' table
type ProductionReferenceHistoryTable struct {
	Table         string
	ID            string
	ReferenceID   string
	Version       string
	Changes       string
	ChangedBy     string
	ChangedByName string
	ChangedAt     string
}

// ProductionReferenceHistory is the schema definition for production.reference_history
var ProductionReferenceHistory = ProductionReferenceHistoryTable{
	Table:         "production.reference_history",
	ID:            "id",
	ReferenceID:   "reference_id",
	Version:       "version",
	Changes:       "changes",
	ChangedBy:     "changed_by",
	ChangedByName: "changed_by_name",
	ChangedAt:     "changed_at",
}

func (t ProductionReferenceHistoryTable) Columns() []string {
	return []string{
		t.ID, t.ReferenceID, t.Version, t.Changes, t.ChangedBy, t.ChangedByName, t.ChangedAt,
	}
}
