package schema

// SongTable represents the 'catalog.song' table
type SongTable struct {
	Table     string
	ID        string
	ArtistID  string
	Name      string
	Slug      string
	SortName  string
	SortSlug  string
	Type      string
	Lyrics    string
	PlayCount string
	CreatedAt string
	UpdatedAt string
}

// Song is the schema definition for catalog.song
var Song = SongTable{
	Table:     "catalog.song",
	ID:        "id",
	ArtistID:  "artistid",
	Name:      "name",
	Slug:      "slug",
	SortName:  "sortname",
	SortSlug:  "sortslug",
	Type:      "type",
	Lyrics:    "lyrics",
	PlayCount: "playcount",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
