package schema

// ArtistTable represents the 'catalog.artist' table
type ArtistTable struct {
	Table           string
	ID              string
	Name            string
	Slug            string
	SortName        string
	SortSlug        string
	IllustrationURL string
	CreatedAt       string
	UpdatedAt       string
}

// Artist is the schema definition for catalog.artist
var Artist = ArtistTable{
	Table:           "catalog.artist",
	ID:              "id",
	Name:            "name",
	Slug:            "slug",
	SortName:        "sortname",
	SortSlug:        "sortslug",
	IllustrationURL: "illustrationurl",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
}
