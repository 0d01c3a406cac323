package grading

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shahdhi/SHaBridge-English-Mastery-Framework/internal/domain"
	"github.com/shahdhi/SHaBridge-English-Mastery-Framework/internal/testutils"
)

func TestEssayStrategyGrade(t *testing.T) {
	question := domain.Question{ID: 44, Skill: domain.SkillReadingWriting}

	tests := []struct {
		name        string
		submitted   string
		wantCorrect bool
	}{
		{
			name:        "in window with signal word",
			submitted:   testutils.EssayText(120, "advantage"),
			wantCorrect: true,
		},
		{
			name:        "lower bound is inclusive",
			submitted:   testutils.EssayText(80, "benefit"),
			wantCorrect: true,
		},
		{
			name:        "upper bound is inclusive",
			submitted:   testutils.EssayText(200, "challenge"),
			wantCorrect: true,
		},
		{
			name:        "one word under the window",
			submitted:   testutils.EssayText(79, "advantage"),
			wantCorrect: false,
		},
		{
			name:        "one word over the window",
			submitted:   testutils.EssayText(201, "advantage"),
			wantCorrect: false,
		},
		{
			name:        "in window without signal word",
			submitted:   testutils.EssayText(120, ""),
			wantCorrect: false,
		},
		{
			name:        "signal word matched case-insensitively",
			submitted:   testutils.EssayText(100, "Disadvantage"),
			wantCorrect: true,
		},
		{
			name:        "empty submission",
			submitted:   "",
			wantCorrect: false,
		},
		{
			name:        "whitespace-only submission",
			submitted:   "   \n\t",
			wantCorrect: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy, err := NewEssayStrategy("essay", DefaultEssayConfig())
			require.NoError(t, err)

			score, err := strategy.Grade(context.Background(), question, tt.submitted)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCorrect, score.Correct)
			assert.NotEmpty(t, score.Reasoning)
		})
	}
}

func TestNewEssayStrategyValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  EssayConfig
		wantErr bool
	}{
		{"defaults", DefaultEssayConfig(), false},
		{"custom window", EssayConfig{MinWords: 50, MaxWords: 300, SignalWords: []string{"because"}}, false},
		{"inverted window", EssayConfig{MinWords: 200, MaxWords: 80, SignalWords: []string{"because"}}, true},
		{"no signal words", EssayConfig{MinWords: 80, MaxWords: 200}, true},
		{"blank signal word", EssayConfig{MinWords: 80, MaxWords: 200, SignalWords: []string{""}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEssayStrategy("essay", tt.config)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEssayStrategyUnmarshalParameters(t *testing.T) {
	strategy, err := NewEssayStrategy("test", DefaultEssayConfig())
	require.NoError(t, err)

	require.NoError(t, strategy.UnmarshalParameters(paramsNode(t, `
min_words: 50
max_words: 150
signal_words: [because, therefore]
`)))
	assert.Equal(t, 50, strategy.config.MinWords)
	assert.Equal(t, 150, strategy.config.MaxWords)
	assert.Equal(t, []string{"because", "therefore"}, strategy.config.SignalWords)

	err = strategy.UnmarshalParameters(paramsNode(t, `
min_words: 200
max_words: 80
signal_words: [because]
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parameter validation failed")
	assert.Equal(t, 50, strategy.config.MinWords, "configuration is unchanged on error")
}

func TestNewEssayFromConfig(t *testing.T) {
	strategy, err := NewEssayFromConfig("q44", map[string]any{
		"min_words":    10,
		"max_words":    20,
		"signal_words": []string{"because"},
	})
	require.NoError(t, err)

	score, err := strategy.Grade(context.Background(), domain.Question{ID: 44},
		testutils.EssayText(15, "because"))
	require.NoError(t, err)
	assert.True(t, score.Correct)
}
