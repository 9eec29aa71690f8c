package schema

// AlbumTable represents the 'catalog.album' table
type AlbumTable struct {
	Table           string
	ID              string
	ArtistID        string
	Name            string
	Slug            string
	SortName        string
	SortSlug        string
	Type            string
	ReleaseDate     string
	IllustrationURL string
	CreatedAt       string
	UpdatedAt       string
}

// Album is the schema definition for catalog.album
var Album = AlbumTable{
	Table:           "catalog.album",
	ID:              "id",
	ArtistID:        "artistid",
	Name:            "name",
	Slug:            "slug",
	SortName:        "sortname",
	SortSlug:        "sortslug",
	Type:            "type",
	ReleaseDate:     "releasedate",
	IllustrationURL: "illustrationurl",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
}
