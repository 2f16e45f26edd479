package schema

// ProductionMediaTable represents the 'production.media' table
type ProductionMediaTable struct {
	Table        string
	ID           string
	Name         string
	Description  string
	MediaType    string
	StorageKey   string
	ThumbnailKey string
	Language     string
	Width        string
	Height       string
	Duration     string
	FileSize     string
	CreatedAt    string
}

// ProductionMedia is the schema definition for production.media
var ProductionMedia = ProductionMediaTable{
	Table:        "production.media",
	ID:           "id",
	Name:         "name",
	Description:  "description",
	MediaType:    "media_type",
	StorageKey:   "storage_key",
	ThumbnailKey: "thumbnail_key",
	Language:     "language",
	Width:        "width",
	Height:       "height",
	Duration:     "duration",
	FileSize:     "file_size",
	CreatedAt:    "created_at",
}

func (t ProductionMediaTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Description, t.MediaType, t.StorageKey, t.ThumbnailKey, t.Language, t.Width,
		t.Height, t.Duration, t.FileSize, t.CreatedAt,
	}
}
