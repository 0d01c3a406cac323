package domain

import "time"

// SkillResult is the scored outcome for one leveled skill
// (ReadingWriting or Listening).
type SkillResult struct {
	// Skill identifies which skill this result belongs to.
	Skill Skill `json:"skill"`

	// RawScore is the count of correctly answered questions in the
	// skill's question range.
	RawScore int `json:"raw_score"`

	// MaxRaw is the number of questions in the skill's range.
	MaxRaw int `json:"max_raw"`

	// NormalizedScore is the full-precision score on the common 0-50
	// scale, as used for classification and tie-break comparison.
	NormalizedScore float64 `json:"normalized_score"`

	// DisplayScore is the normalized score rounded to one decimal place.
	DisplayScore float64 `json:"display_score"`

	// Level is the assigned SEMF level after any tie-break adjustment.
	Level Level `json:"level"`

	// TieBreakApplied reports whether a boundary tie-break adjustment
	// changed the base level.
	TieBreakApplied bool `json:"tie_break_applied"`
}

// TieBreakerSkillResult is the scored outcome for the GrammarVocabulary
// skill. It is reported but never itself leveled; its normalized score
// only decides the adjustment direction for the other two skills.
type TieBreakerSkillResult struct {
	// Skill is always SkillGrammarVocabulary.
	Skill Skill `json:"skill"`

	// RawScore is the count of correctly answered grammar questions.
	RawScore int `json:"raw_score"`

	// MaxRaw is the number of questions in the grammar range.
	MaxRaw int `json:"max_raw"`

	// NormalizedScore is the full-precision 0-50 score used as the
	// tie-break signal.
	NormalizedScore float64 `json:"normalized_score"`

	// DisplayScore is the normalized score rounded to one decimal place.
	DisplayScore float64 `json:"display_score"`
}

// Report is the complete outcome of scoring one answer set. It is a plain
// immutable value built fresh per scoring call, with no persisted identity
// across calls. Renderers treat it as opaque read-only data.
type Report struct {
	// Skills holds one result per leveled skill, in exam order:
	// ReadingWriting then Listening.
	Skills []SkillResult `json:"skills"`

	// TieBreaker is the GrammarVocabulary result.
	TieBreaker TieBreakerSkillResult `json:"tie_breaker"`

	// OverallLevel is the headline level: the lower of the two leveled
	// skills' levels after tie-break adjustment.
	OverallLevel Level `json:"overall_level"`

	// LevelDescriptions maps each level actually present in the report
	// (skill levels and the overall level) to its static description.
	LevelDescriptions map[Level]string `json:"level_descriptions"`

	// AnsweredQuestions counts the questions with a non-blank submission.
	AnsweredQuestions int `json:"answered_questions"`

	// TotalQuestions is the fixed size of the exam form, 56 for SEMF.
	TotalQuestions int `json:"total_questions"`

	// CompletionPercent is AnsweredQuestions over TotalQuestions as a
	// percentage, rounded to one decimal place.
	CompletionPercent float64 `json:"completion_percent"`

	// Summary is the multi-line narrative: overall level header,
	// per-skill breakdown, completion figure, and the level-specific
	// recommendation paragraph.
	Summary string `json:"summary"`

	// GeneratedAt records when this report was produced.
	GeneratedAt time.Time `json:"generated_at"`
}
