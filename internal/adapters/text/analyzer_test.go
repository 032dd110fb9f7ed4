package text

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeredson/Spoti-Finder/internal/core/domain"
)

func TestDetectKeywordEmotions(t *testing.T) {
	tests := []struct {
		name string
		text string
		want domain.Emotion
	}{
		{name: "happy keyword", text: "I'm so happy and excited today!", want: domain.EmotionHappy},
		{name: "sad keyword", text: "feeling really down and gloomy", want: domain.EmotionSad},
		{name: "angry keyword", text: "this makes me furious, absolutely furious", want: domain.EmotionAngry},
		{name: "fear keyword", text: "I'm anxious and worried about tomorrow", want: domain.EmotionFear},
		{name: "surprise keyword", text: "wow, I am completely astonished", want: domain.EmotionSurprise},
		{name: "disgust keyword", text: "that was revolting", want: domain.EmotionDisgust},
		{name: "calm keyword", text: "a peaceful, tranquil evening", want: domain.EmotionCalm},
		{name: "love maps to happy", text: "I adore this song, I love it", want: domain.EmotionHappy},
		{name: "punctuation ignored", text: "HAPPY!!! happy... happy?!", want: domain.EmotionHappy},
	}

	a := NewAnalyzer()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := a.Detect(context.Background(), tc.text)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Emotion)
			assert.Greater(t, got.Confidence, 0.0)
			assert.LessOrEqual(t, got.Confidence, 1.0)
		})
	}
}

func TestDetectPolarityFallback(t *testing.T) {
	a := NewAnalyzer()

	t.Run("positive text without emotion keywords", func(t *testing.T) {
		got, err := a.Detect(context.Background(), "what a wonderful amazing fantastic great day")
		require.NoError(t, err)
		assert.Equal(t, domain.EmotionHappy, got.Emotion)
	})

	t.Run("negative text without emotion keywords", func(t *testing.T) {
		got, err := a.Detect(context.Background(), "everything is terrible and awful, the worst")
		require.NoError(t, err)
		assert.Equal(t, domain.EmotionSad, got.Emotion)
	})

	t.Run("flat text is neutral", func(t *testing.T) {
		got, err := a.Detect(context.Background(), "the meeting is on tuesday at three")
		require.NoError(t, err)
		assert.Equal(t, domain.EmotionNeutral, got.Emotion)
	})
}

func TestDetectKeywordBeatsPolarity(t *testing.T) {
	// Negative polarity words surround a direct emotion keyword; the
	// keyword wins.
	a := NewAnalyzer()

	got, err := a.Detect(context.Background(), "terrible awful day but somehow I feel calm")
	require.NoError(t, err)
	assert.Equal(t, domain.EmotionCalm, got.Emotion)
}

func TestDetectEmptyText(t *testing.T) {
	a := NewAnalyzer()

	for _, input := range []string{"", "   ", "!!! ???"} {
		_, err := a.Detect(context.Background(), input)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument, "input %q", input)
	}
}

func TestDetectRepeatedKeywordsRaiseConfidence(t *testing.T) {
	a := NewAnalyzer()

	once, err := a.Detect(context.Background(), "happy")
	require.NoError(t, err)
	thrice, err := a.Detect(context.Background(), "happy happy happy")
	require.NoError(t, err)

	assert.Greater(t, thrice.Confidence, once.Confidence)
}
