package application

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shahdhi/SHaBridge-English-Mastery-Framework/internal/domain"
)

// minimalExamYAML is a small but complete exam form: four single-letter
// grammar questions with the standard bands and tie-break parameters.
const minimalExamYAML = `
version: "1.0.0"
metadata:
  name: "Mini Form"
  description: "Four-question smoke form."
total_questions: 4
sections:
  - id: grammar
    skill: grammar_vocabulary
    strategy: single_choice
    start: 1
    end: 4
answer_key:
  - question: 1
    expected: "A"
  - question: 2
    expected: "B"
  - question: 3
    expected: "C"
  - question: 4
    expected: "D"
bands:
  - {level: S1, min: 0, max: 15}
  - {level: S2, min: 16, max: 25}
  - {level: S3, min: 26, max: 33}
  - {level: S4, min: 34, max: 42}
  - {level: S5, min: 43, max: 50}
tie_break:
  window: 2
  grammar_threshold: 35
levels:
  - {level: S1, description: "Beginner.", recommendation: "Practice basics."}
  - {level: S2, description: "Elementary.", recommendation: "Extend range."}
  - {level: S3, description: "Intermediate.", recommendation: "Push further."}
  - {level: S4, description: "Upper-intermediate.", recommendation: "Refine precision."}
  - {level: S5, description: "Advanced.", recommendation: "Deepen mastery."}
`

func newTestLoader(t *testing.T) *ExamLoader {
	t.Helper()

	loader, err := NewExamLoader(NewDefaultStrategyRegistry())
	require.NoError(t, err)
	return loader
}

func TestExamLoaderLoad(t *testing.T) {
	loader := newTestLoader(t)

	exam, err := loader.Load([]byte(minimalExamYAML))
	require.NoError(t, err)

	assert.Equal(t, "Mini Form", exam.Name)
	assert.Equal(t, 4, exam.TotalQuestions)
	require.Len(t, exam.Sections, 1)
	assert.Equal(t, 4, exam.MaxRaw[domain.SkillGrammarVocabulary])
	assert.Equal(t, "A", exam.Questions[1].Expected)
	assert.Equal(t, 2.0, exam.TieBreakWindow)
	assert.Equal(t, 35.0, exam.GrammarThreshold)
	assert.Len(t, exam.LevelTexts, 5)
}

func TestExamLoaderLoadCaches(t *testing.T) {
	loader := newTestLoader(t)

	first, err := loader.Load([]byte(minimalExamYAML))
	require.NoError(t, err)
	second, err := loader.Load([]byte(minimalExamYAML))
	require.NoError(t, err)

	assert.Same(t, first, second, "identical YAML compiles once")
}

func TestExamLoaderLoadFromReader(t *testing.T) {
	loader := newTestLoader(t)

	exam, err := loader.LoadFromReader(strings.NewReader(minimalExamYAML))
	require.NoError(t, err)
	assert.Equal(t, "Mini Form", exam.Name)
}

func TestExamLoaderStrictDecoding(t *testing.T) {
	loader := newTestLoader(t)

	withUnknownField := strings.Replace(minimalExamYAML,
		"total_questions: 4", "total_questions: 4\nnot_a_field: true", 1)

	_, err := loader.Load([]byte(withUnknownField))
	assert.Error(t, err, "unknown top-level fields are rejected")
}

func TestExamLoaderLoadInvalidYAML(t *testing.T) {
	loader := newTestLoader(t)

	_, err := loader.Load([]byte("version: [unclosed"))
	assert.Error(t, err)
}

func TestCompileDefaultExam(t *testing.T) {
	loader := newTestLoader(t)

	exam, err := loader.Compile(DefaultExamConfig())
	require.NoError(t, err)

	assert.Equal(t, 56, exam.TotalQuestions)
	assert.Len(t, exam.Sections, 6)
	assert.Len(t, exam.Questions, 56)
	assert.Equal(t, 20, exam.MaxRaw[domain.SkillGrammarVocabulary])
	assert.Equal(t, 24, exam.MaxRaw[domain.SkillReadingWriting])
	assert.Equal(t, 12, exam.MaxRaw[domain.SkillListening])

	assert.Equal(t, "B, C, D, A", exam.Questions[36].Expected)
	assert.Equal(t, []string{"remote", "work", "productivity", "flexibility"}, exam.Questions[41].Keywords)
	assert.Empty(t, exam.Questions[44].Expected, "the essay question is not keyed")
	assert.Empty(t, exam.Questions[44].Keywords)
}

func TestCompileRejectsInvalidConfigs(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ExamConfig)
		wantMsg string
	}{
		{
			name:    "overlapping sections",
			mutate:  func(c *ExamConfig) { c.Sections[1].Start = 15 },
			wantMsg: "claimed by both",
		},
		{
			name:    "section coverage disagrees with total",
			mutate:  func(c *ExamConfig) { c.TotalQuestions = 60 },
			wantMsg: "total_questions",
		},
		{
			name:    "band gap",
			mutate:  func(c *ExamConfig) { c.Bands[1].Min = 17 },
			wantMsg: "does not follow",
		},
		{
			name:    "first band not anchored at zero",
			mutate:  func(c *ExamConfig) { c.Bands[0].Min = 1 },
			wantMsg: "must start at 0",
		},
		{
			name:    "last band short of the scale ceiling",
			mutate:  func(c *ExamConfig) { c.Bands[4].Max = 49 },
			wantMsg: "must end at 50",
		},
		{
			name: "duplicate answer key entry",
			mutate: func(c *ExamConfig) {
				c.AnswerKey = append(c.AnswerKey, KeyEntryConfig{Question: 1, Expected: "A"})
			},
			wantMsg: "duplicate answer key entry",
		},
		{
			name: "answer key entry outside every section",
			mutate: func(c *ExamConfig) {
				c.AnswerKey = append(c.AnswerKey, KeyEntryConfig{Question: 99, Expected: "A"})
			},
			wantMsg: "outside every section",
		},
		{
			name: "single choice question without a key",
			mutate: func(c *ExamConfig) {
				c.AnswerKey = c.AnswerKey[1:]
			},
			wantMsg: "requires an expected answer",
		},
		{
			name: "keyword question without keywords",
			mutate: func(c *ExamConfig) {
				for i, entry := range c.AnswerKey {
					if entry.Question == 41 {
						c.AnswerKey[i].Keywords = nil
					}
				}
			},
			wantMsg: "requires a keyword set",
		},
		{
			name: "keyed essay question",
			mutate: func(c *ExamConfig) {
				c.AnswerKey = append(c.AnswerKey, KeyEntryConfig{Question: 44, Expected: "A"})
			},
			wantMsg: "must not be keyed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := newTestLoader(t)
			config := DefaultExamConfig()
			tt.mutate(config)

			_, err := loader.Compile(config)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantMsg)
		})
	}
}

func TestCompileRejectsBadStructTags(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ExamConfig)
	}{
		{"missing version", func(c *ExamConfig) { c.Version = "" }},
		{"malformed version", func(c *ExamConfig) { c.Version = "one" }},
		{"unknown level in band", func(c *ExamConfig) { c.Bands[0].Level = "S9" }},
		{"unknown strategy", func(c *ExamConfig) { c.Sections[0].Strategy = "semantic" }},
		{"unknown skill", func(c *ExamConfig) { c.Sections[0].Skill = "speaking" }},
		{"inverted section range", func(c *ExamConfig) { c.Sections[0].End = 0 }},
		{"missing levels", func(c *ExamConfig) { c.Levels = c.Levels[:3] }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := newTestLoader(t)
			config := DefaultExamConfig()
			tt.mutate(config)

			_, err := loader.Compile(config)
			assert.Error(t, err)
		})
	}
}

func TestNewExamLoaderNilRegistry(t *testing.T) {
	_, err := NewExamLoader(nil)
	assert.Error(t, err)
}
