package domain

import (
	"fmt"
	"strings"
)

// Emotion is one of the closed set of emotional states the engine maps to
// music. Raw classifier output must be normalized onto this set with
// ParseEmotion before it reaches the core.
type Emotion string

const (
	EmotionHappy    Emotion = "happy"
	EmotionSad      Emotion = "sad"
	EmotionAngry    Emotion = "angry"
	EmotionCalm     Emotion = "calm"
	EmotionFear     Emotion = "fear"
	EmotionSurprise Emotion = "surprise"
	EmotionDisgust  Emotion = "disgust"
	EmotionNeutral  Emotion = "neutral"
)

// Emotions lists the closed set in a stable order.
var Emotions = []Emotion{
	EmotionHappy,
	EmotionSad,
	EmotionAngry,
	EmotionCalm,
	EmotionFear,
	EmotionSurprise,
	EmotionDisgust,
	EmotionNeutral,
}

// ParseEmotion maps a raw label onto the closed set. A few common classifier
// aliases are folded in; anything else is ErrUnknownEmotion.
func ParseEmotion(label string) (Emotion, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "happy", "happiness", "joy":
		return EmotionHappy, nil
	case "sad", "sadness":
		return EmotionSad, nil
	case "angry", "anger":
		return EmotionAngry, nil
	case "calm", "relaxed":
		return EmotionCalm, nil
	case "fear", "fearful", "afraid":
		return EmotionFear, nil
	case "surprise", "surprised":
		return EmotionSurprise, nil
	case "disgust", "disgusted":
		return EmotionDisgust, nil
	case "neutral":
		return EmotionNeutral, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEmotion, label)
	}
}

// EmotionEstimate is what an emotion classifier hands to the engine: a
// normalized label plus the classifier's confidence in [0,1].
type EmotionEstimate struct {
	Emotion    Emotion
	Confidence float64
}
