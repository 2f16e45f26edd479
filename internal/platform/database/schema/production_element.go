package schema

// ProductionElementTable represents the 'production.interactive_element' table
type ProductionElementTable struct {
	Table         string
	ID            string
	PageID        string
	BusinessID    string
	Type          string
	ZOrder        string
	Descriptions  string
	KonvaJSONs    string
	ReferenceID   string
	HasImage      string
	ImageMediaID  string
	ImageWidth    string
	ImageHeight   string
	CreatedBy     string
	CreatedByName string
	CreatedAt     string
	UpdatedAt     string
}

// ProductionElement is the schema definition for production.interactive_element
var ProductionElement = ProductionElementTable{
	Table:         "production.interactive_element",
	ID:            "id",
	PageID:        "page_id",
	BusinessID:    "business_id",
	Type:          "type",
	ZOrder:        "z_order",
	Descriptions:  "descriptions",
	KonvaJSONs:    "konva_jsons",
	ReferenceID:   "reference_id",
	HasImage:      "has_image",
	ImageMediaID:  "image_media_id",
	ImageWidth:    "image_width",
	ImageHeight:   "image_height",
	CreatedBy:     "created_by",
	CreatedByName: "created_by_name",
	CreatedAt:     "created_at",
	UpdatedAt:     "updated_at",
}

func (t ProductionElementTable) Columns() []string {
	return []string{
		t.ID, t.PageID, t.BusinessID, t.Type, t.ZOrder, t.Descriptions, t.KonvaJSONs, t.ReferenceID,
		t.HasImage, t.ImageMediaID, t.ImageWidth, t.ImageHeight, t.CreatedBy, t.CreatedByName,
		t.CreatedAt, t.UpdatedAt,
	}
}
