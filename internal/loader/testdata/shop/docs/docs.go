package docs

// Generated holds nothing.
type Generated struct{}
