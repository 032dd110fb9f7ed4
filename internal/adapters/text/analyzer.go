// Package text provides a lexicon-based emotion analyzer for free text.
// It covers the text-input path of the service; facial classification runs
// client-side and enters the API as an already-normalized label.
package text

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/jeredson/Spoti-Finder/internal/core/domain"
	"github.com/jeredson/Spoti-Finder/internal/core/ports"
)

// emotionKeywords maps each emotion to the words that directly signal it.
// A keyword hit outweighs the polarity fallback.
var emotionKeywords = map[domain.Emotion][]string{
	domain.EmotionHappy: {
		"happy", "joy", "excited", "cheerful", "delighted", "glad", "pleased", "upbeat",
		"love", "romantic", "adore", "cherish",
	},
	domain.EmotionSad: {
		"sad", "depressed", "down", "melancholy", "gloomy", "sorrowful", "blue", "dejected",
	},
	domain.EmotionAngry: {
		"angry", "mad", "furious", "irritated", "annoyed", "rage", "hostile", "bitter",
	},
	domain.EmotionFear: {
		"afraid", "scared", "fearful", "anxious", "worried", "nervous", "terrified", "panic",
	},
	domain.EmotionSurprise: {
		"surprised", "shocked", "amazed", "astonished", "stunned", "bewildered",
	},
	domain.EmotionDisgust: {
		"disgusted", "revolted", "repulsed", "sickened", "nauseated",
	},
	domain.EmotionCalm: {
		"calm", "peaceful", "relaxed", "serene", "tranquil", "zen",
	},
}

// polarity lexicon for the fallback path when no emotion keyword matches.
var positiveWords = map[string]struct{}{
	"good": {}, "great": {}, "wonderful": {}, "awesome": {}, "amazing": {},
	"fantastic": {}, "nice": {}, "beautiful": {}, "best": {}, "fun": {},
	"enjoy": {}, "like": {}, "sweet": {}, "perfect": {}, "win": {}, "won": {},
}

var negativeWords = map[string]struct{}{
	"bad": {}, "terrible": {}, "awful": {}, "horrible": {}, "worst": {},
	"hate": {}, "lost": {}, "lose": {}, "fail": {}, "failed": {}, "hurt": {},
	"pain": {}, "cry": {}, "alone": {}, "tired": {}, "sick": {}, "broke": {},
}

// polarityAlpha normalizes the raw polarity sum onto (-1,1), the same
// squashing VADER applies to its compound score.
const polarityAlpha = 15.0

// maxKeywordBoost caps how much keyword evidence can raise confidence.
const maxKeywordBoost = 0.3

// Analyzer detects emotion from text using keyword counting with a polarity
// fallback. It is stateless and safe for concurrent use.
type Analyzer struct{}

var _ ports.EmotionDetector = (*Analyzer)(nil)

// NewAnalyzer constructs an Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Detect returns the strongest emotion signalled by the text plus a
// confidence in [0,1]. Empty input fails with ErrInvalidArgument.
func (a *Analyzer) Detect(_ context.Context, input string) (domain.EmotionEstimate, error) {
	tokens := tokenize(input)
	if len(tokens) == 0 {
		return domain.EmotionEstimate{}, fmt.Errorf("text adapter: %w: empty text", domain.ErrInvalidArgument)
	}

	emotion, hits := strongestKeywordEmotion(tokens)
	compound := polarityScore(tokens)

	if hits == 0 {
		emotion = emotionFromPolarity(compound)
	}

	confidence := math.Abs(compound)
	if boost := float64(hits) * 0.1; boost > 0 {
		if boost > maxKeywordBoost {
			boost = maxKeywordBoost
		}
		confidence += boost
	}
	if confidence > 1 {
		confidence = 1
	}

	return domain.EmotionEstimate{Emotion: emotion, Confidence: confidence}, nil
}

// tokenize lowercases the input and splits it on anything that is not a
// letter or digit.
func tokenize(input string) []string {
	return strings.FieldsFunc(strings.ToLower(input), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// strongestKeywordEmotion counts lexicon hits per emotion and returns the
// winner. Ties resolve in the stable order of domain.Emotions.
func strongestKeywordEmotion(tokens []string) (domain.Emotion, int) {
	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}

	best := domain.EmotionNeutral
	bestHits := 0
	for _, emotion := range domain.Emotions {
		hits := 0
		for _, kw := range emotionKeywords[emotion] {
			hits += counts[kw]
		}
		if hits > bestHits {
			best = emotion
			bestHits = hits
		}
	}
	return best, bestHits
}

// polarityScore sums positive and negative lexicon hits and squashes the
// result onto (-1,1).
func polarityScore(tokens []string) float64 {
	raw := 0.0
	for _, tok := range tokens {
		if _, ok := positiveWords[tok]; ok {
			raw++
		}
		if _, ok := negativeWords[tok]; ok {
			raw--
		}
	}
	return raw / math.Sqrt(raw*raw+polarityAlpha)
}

// emotionFromPolarity maps a compound polarity score onto the closed set
// when no keyword gave a direct signal.
func emotionFromPolarity(compound float64) domain.Emotion {
	switch {
	case compound >= 0.5:
		return domain.EmotionHappy
	case compound <= -0.7:
		return domain.EmotionAngry
	case compound <= -0.1:
		return domain.EmotionSad
	case compound > 0.1:
		return domain.EmotionHappy
	default:
		return domain.EmotionNeutral
	}
}
