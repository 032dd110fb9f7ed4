package domain

// Track represents a musical track in the domain layer. Identity and display
// metadata are opaque; the engine only interprets Features. A track is
// immutable once it is part of a catalog snapshot.
type Track struct {
	ID          string
	Title       string
	Artist      string
	Album       string // optional
	Popularity  int    // 0-100, from the provider
	PreviewURL  string // optional 30s audio preview
	ExternalURL string // optional link back to the provider
	Features    AudioFeatures
}
