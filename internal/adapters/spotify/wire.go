package spotify

// wireSearchResponse represents the Spotify API response for a track search.
type wireSearchResponse struct {
	Tracks struct {
		Items []wireTrack `json:"items"`
		Total int         `json:"total"`
	} `json:"tracks"`
}

// wireTrack represents a track object on the wire.
type wireTrack struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
	Album struct {
		Name string `json:"name"`
	} `json:"album"`
	Popularity   int               `json:"popularity"`
	PreviewURL   string            `json:"preview_url"`
	ExternalURLs map[string]string `json:"external_urls"`
}

// wireFeaturesResponse represents the batched audio-features response. The
// API returns null for ids it does not know, hence the pointer elements.
type wireFeaturesResponse struct {
	AudioFeatures []*wireAudioFeatures `json:"audio_features"`
}

// wireAudioFeatures represents an audio-features object on the wire.
type wireAudioFeatures struct {
	ID               string  `json:"id"`
	Valence          float64 `json:"valence"`
	Energy           float64 `json:"energy"`
	Danceability     float64 `json:"danceability"`
	Tempo            float64 `json:"tempo"`
	Acousticness     float64 `json:"acousticness"`
	Loudness         float64 `json:"loudness"`
	Instrumentalness float64 `json:"instrumentalness"`
	Speechiness      float64 `json:"speechiness"`
}
