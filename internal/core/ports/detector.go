package ports

import (
	"context"

	"github.com/jeredson/Spoti-Finder/internal/core/domain"
)

// EmotionDetector turns free text into an emotion estimate on the closed
// set. Face classification stays outside the process; its output enters the
// API as an already-normalized label.
type EmotionDetector interface {
	Detect(ctx context.Context, text string) (domain.EmotionEstimate, error)
}
