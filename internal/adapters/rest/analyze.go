package rest

import (
	"encoding/json"
	"net/http"
)

type analyzeTextRequest struct {
	Text  string `json:"text"`
	Limit int    `json:"limit"`
}

type analyzeTextResponse struct {
	Emotion    string         `json:"emotion"`
	Confidence float64        `json:"confidence"`
	Tracks     []trackPayload `json:"tracks"`
}

// AnalyzeText handles POST /api/analyze-text: detect the emotion in the text
// and recommend tracks for it in one round trip.
func (h *Handler) AnalyzeText(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req analyzeTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	estimate, err := h.detector.Detect(r.Context(), req.Text)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	result, err := h.rec.RecommendForEmotion(estimate.Emotion, h.library.Snapshot(), h.clampLimit(req.Limit), nil)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, analyzeTextResponse{
		Emotion:    string(estimate.Emotion),
		Confidence: estimate.Confidence,
		Tracks:     toTrackPayloads(result),
	})
}
