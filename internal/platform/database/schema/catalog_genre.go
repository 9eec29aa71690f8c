package schema

// GenreTable represents the 'catalog.genre' table
type GenreTable struct {
	Table     string
	ID        string
	Name      string
	Slug      string
	CreatedAt string
}

// Genre is the schema definition for catalog.genre
var Genre = GenreTable{
	Table:     "catalog.genre",
	ID:        "id",
	Name:      "name",
	Slug:      "slug",
	CreatedAt: "createdat",
}

// AlbumGenreTable represents the 'catalog.albumgenre' table
type AlbumGenreTable struct {
	Table   string
	AlbumID string
	GenreID string
}

// AlbumGenre is the schema definition for catalog.albumgenre
var AlbumGenre = AlbumGenreTable{
	Table:   "catalog.albumgenre",
	AlbumID: "albumid",
	GenreID: "genreid",
}

// SongGenreTable represents the 'catalog.songgenre' table
type SongGenreTable struct {
	Table   string
	SongID  string
	GenreID string
}

// SongGenre is the schema definition for catalog.songgenre
var SongGenre = SongGenreTable{
	Table:   "catalog.songgenre",
	SongID:  "songid",
	GenreID: "genreid",
}
