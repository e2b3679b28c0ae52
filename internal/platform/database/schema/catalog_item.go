package schema

// CatalogItemTable represents the 'catalog.item' table
type CatalogItemTable struct {
	Table       string
	ID          string
	Slug        string
	Title       string
	Category    string
	Images      string
	Videos      string
	Description string
	Features    string
	Rating      string
	Reviews     string
	CreatedBy   string
	CreatedAt   string
	UpdatedAt   string
}

// CatalogItem is the schema definition for catalog.item
var CatalogItem = CatalogItemTable{
	Table:       "catalog.item",
	ID:          "id",
	Slug:        "slug",
	Title:       "title",
	Category:    "category",
	Images:      "images",
	Videos:      "videos",
	Description: "description",
	Features:    "features",
	Rating:      "rating",
	Reviews:     "reviews",
	CreatedBy:   "createdby",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t CatalogItemTable) Columns() []string {
	return []string{
		t.ID, t.Slug, t.Title, t.Category, t.Images, t.Videos, t.Description,
		t.Features, t.Rating, t.Reviews, t.CreatedBy, t.CreatedAt, t.UpdatedAt,
	}
}
