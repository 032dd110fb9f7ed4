package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jeredson/Spoti-Finder/internal/core/domain"
	"github.com/jeredson/Spoti-Finder/internal/worker"
)

// featuresPayload carries audio features on the wire.
type featuresPayload struct {
	Valence      float64 `json:"valence"`
	Energy       float64 `json:"energy"`
	Danceability float64 `json:"danceability"`
	Tempo        float64 `json:"tempo"`
	Acousticness float64 `json:"acousticness"`
}

func (p featuresPayload) toDomain() domain.AudioFeatures {
	return domain.AudioFeatures{
		Valence:      p.Valence,
		Energy:       p.Energy,
		Danceability: p.Danceability,
		Tempo:        p.Tempo,
		Acousticness: p.Acousticness,
	}
}

// trackPayload is one recommended track on the wire.
type trackPayload struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Artist      string  `json:"artist"`
	Album       string  `json:"album,omitempty"`
	Popularity  int     `json:"popularity,omitempty"`
	PreviewURL  string  `json:"preview_url,omitempty"`
	ExternalURL string  `json:"external_url,omitempty"`
	Score       float64 `json:"score"`
}

func toTrackPayloads(result domain.RecommendationResult) []trackPayload {
	out := make([]trackPayload, len(result))
	for i, st := range result {
		out[i] = trackPayload{
			ID:          st.Track.ID,
			Title:       st.Track.Title,
			Artist:      st.Track.Artist,
			Album:       st.Track.Album,
			Popularity:  st.Track.Popularity,
			PreviewURL:  st.Track.PreviewURL,
			ExternalURL: st.Track.ExternalURL,
			Score:       st.Score,
		}
	}
	return out
}

type recommendRequest struct {
	Emotion    string           `json:"emotion"`
	Limit      int              `json:"limit"`
	Preference *featuresPayload `json:"preference,omitempty"`
}

type recommendResponse struct {
	Emotion string         `json:"emotion"`
	Tracks  []trackPayload `json:"tracks"`
}

// Recommendations handles POST /api/recommendations. The emotion label is
// expected to be pre-classified (e.g. by the client-side face detector).
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Emotion == "" {
		writeError(w, http.StatusBadRequest, "emotion is required")
		return
	}

	emotion, err := domain.ParseEmotion(req.Emotion)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var pref *domain.AudioFeatures
	if req.Preference != nil {
		f := req.Preference.toDomain()
		pref = &f
	}

	result, err := h.rec.RecommendForEmotion(emotion, h.library.Snapshot(), h.clampLimit(req.Limit), pref)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recommendResponse{
		Emotion: string(emotion),
		Tracks:  toTrackPayloads(result),
	})
}

type similarResponse struct {
	TrackID string         `json:"track_id"`
	Tracks  []trackPayload `json:"tracks"`
}

// SimilarTracks handles GET /api/tracks/{id}/similar.
func (h *Handler) SimilarTracks(w http.ResponseWriter, r *http.Request) {
	trackID := chi.URLParam(r, "id")
	if trackID == "" {
		writeError(w, http.StatusBadRequest, "track id is required")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}

	result, err := h.rec.RecommendSimilar(trackID, h.library.Snapshot(), h.clampLimit(limit))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, similarResponse{
		TrackID: trackID,
		Tracks:  toTrackPayloads(result),
	})
}

type catalogResponse struct {
	Version  string `json:"version"`
	Tracks   int    `json:"tracks"`
	Clusters int    `json:"clusters"`
}

func catalogInfo(c *domain.Catalog) catalogResponse {
	info := catalogResponse{Version: c.Version(), Tracks: c.Len()}
	if a := c.Clusters(); a != nil {
		info.Clusters = a.K
	}
	return info
}

// CatalogInfo handles GET /api/catalog.
func (h *Handler) CatalogInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalogInfo(h.library.Snapshot()))
}

// RefreshCatalog handles POST /api/catalog/refresh. The refresh runs
// synchronously; clustering happens inside the library before the snapshot
// is swapped in. Tracks whose features came back empty are queued for
// preview analysis.
func (h *Handler) RefreshCatalog(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.library.Refresh(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	if h.pool != nil {
		queued := 0
		for _, t := range catalog.Tracks() {
			if t.Features.Energy == 0 && t.PreviewURL != "" {
				h.pool.Submit(worker.Job{TrackID: t.ID, PreviewURL: t.PreviewURL})
				queued++
			}
		}
		if queued > 0 {
			h.log.Info().Int("queued", queued).Msg("queued preview backfill jobs")
		}
	}

	writeJSON(w, http.StatusOK, catalogInfo(catalog))
}
