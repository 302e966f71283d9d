package catalog

// Entry is one tournament in the catalog file.
type Entry struct {
	ID   int
	Name string
	Type string
}

// ArchiveTournament is a tournament link found on an archive overview page,
// before its type has been resolved.
type ArchiveTournament struct {
	ID   int
	Name string
}
