package grading

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shahdhi/SHaBridge-English-Mastery-Framework/internal/domain"
)

func TestKeywordStrategyGrade(t *testing.T) {
	question := domain.Question{
		ID:       41,
		Skill:    domain.SkillReadingWriting,
		Keywords: []string{"remote", "work", "productivity", "flexibility"},
	}

	tests := []struct {
		name        string
		submitted   string
		wantCorrect bool
	}{
		{
			name:        "two hits over minimum length",
			submitted:   "Remote work suits many people.",
			wantCorrect: true,
		},
		{
			name:        "hits are case-insensitive",
			submitted:   "REMOTE WORK changed everything for teams.",
			wantCorrect: true,
		},
		{
			name:        "one hit is not enough",
			submitted:   "Productivity is a broad and debated topic.",
			wantCorrect: false,
		},
		{
			name:        "two hits but answer too short",
			submitted:   "remote work",
			wantCorrect: false,
		},
		{
			name:        "no hits",
			submitted:   "This answer talks about something else entirely.",
			wantCorrect: false,
		},
		{
			name:        "empty submission",
			submitted:   "",
			wantCorrect: false,
		},
		{
			name:        "hits inside larger words still count",
			submitted:   "Remotely networking helps coworkers stay aligned.",
			wantCorrect: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy, err := NewKeywordStrategy("keyword", DefaultKeywordConfig())
			require.NoError(t, err)

			score, err := strategy.Grade(context.Background(), question, tt.submitted)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCorrect, score.Correct)
			assert.NotEmpty(t, score.Reasoning)
		})
	}
}

func TestKeywordStrategyMissingKeywords(t *testing.T) {
	strategy, err := NewKeywordStrategy("keyword", DefaultKeywordConfig())
	require.NoError(t, err)

	_, err = strategy.Grade(context.Background(), domain.Question{ID: 42}, "remote work answer text")
	assert.ErrorIs(t, err, ErrMissingKeywords)
}

func TestNewKeywordStrategyValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  KeywordConfig
		wantErr bool
	}{
		{"defaults", DefaultKeywordConfig(), false},
		{"custom thresholds", KeywordConfig{MinHits: 3, MinLength: 40}, false},
		{"zero min hits", KeywordConfig{MinHits: 0, MinLength: 20}, true},
		{"zero min length", KeywordConfig{MinHits: 2, MinLength: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewKeywordStrategy("keyword", tt.config)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestKeywordStrategyUnmarshalParameters(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     string
		validate    func(t *testing.T, s *KeywordStrategy)
	}{
		{
			name: "valid parameters",
			yamlContent: `
min_hits: 3
min_length: 40
`,
			validate: func(t *testing.T, s *KeywordStrategy) {
				assert.Equal(t, 3, s.config.MinHits)
				assert.Equal(t, 40, s.config.MinLength)
			},
		},
		{
			name: "threshold below floor",
			yamlContent: `
min_hits: 0
min_length: 20
`,
			wantErr: "parameter validation failed",
		},
		{
			name:        "malformed parameter type",
			yamlContent: `min_hits: many`,
			wantErr:     "failed to decode parameters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy, err := NewKeywordStrategy("test", DefaultKeywordConfig())
			require.NoError(t, err)

			err = strategy.UnmarshalParameters(paramsNode(t, tt.yamlContent))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Equal(t, DefaultKeywordConfig(), strategy.config,
					"configuration is unchanged on error")
				return
			}
			require.NoError(t, err)
			tt.validate(t, strategy)
		})
	}
}

func TestNewKeywordFromConfig(t *testing.T) {
	strategy, err := NewKeywordFromConfig("q41", map[string]any{"min_hits": 1, "min_length": 5})
	require.NoError(t, err)

	score, err := strategy.Grade(context.Background(),
		domain.Question{ID: 41, Keywords: []string{"climate"}}, "climate matters")
	require.NoError(t, err)
	assert.True(t, score.Correct)
}
