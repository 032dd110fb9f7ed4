package spotify

import (
	"strings"

	"github.com/jeredson/Spoti-Finder/internal/core/domain"
)

// mapTrack converts a wire track and its audio features to a domain.Track.
// Bounded features are clamped at this boundary so nothing out of range
// reaches the engine.
func mapTrack(wt wireTrack, af wireAudioFeatures) domain.Track {
	return domain.Track{
		ID:          wt.ID,
		Title:       wt.Name,
		Artist:      joinArtistNames(wt),
		Album:       wt.Album.Name,
		Popularity:  wt.Popularity,
		PreviewURL:  wt.PreviewURL,
		ExternalURL: wt.ExternalURLs["spotify"],
		Features: domain.AudioFeatures{
			Valence:          af.Valence,
			Energy:           af.Energy,
			Danceability:     af.Danceability,
			Tempo:            af.Tempo,
			Acousticness:     af.Acousticness,
			Loudness:         af.Loudness,
			Instrumentalness: af.Instrumentalness,
			Speechiness:      af.Speechiness,
		}.Clamp(),
	}
}

func joinArtistNames(wt wireTrack) string {
	if len(wt.Artists) == 0 {
		return ""
	}
	parts := make([]string, 0, len(wt.Artists))
	for _, a := range wt.Artists {
		parts = append(parts, a.Name)
	}
	return strings.Join(parts, ", ")
}
