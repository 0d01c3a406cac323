// Package application wires exam definitions, grading strategies, and the
// scoring pipeline into the SEMF engine.
package application

import "gopkg.in/yaml.v3"

// ExamConfig is the complete declarative specification of an exam form
// and serves as the primary configuration entry point for the engine.
// The standard SEMF placement exam ships as an embedded default
// (DefaultExamConfig); YAML files describe alternative forms.
type ExamConfig struct {
	// Version specifies the configuration schema version using semantic
	// versioning to ensure compatibility across updates.
	Version string `yaml:"version" validate:"required,semver"`
	// Metadata contains descriptive information about the exam form.
	Metadata Metadata `yaml:"metadata" validate:"required"`
	// TotalQuestions is the fixed size of the exam form, the denominator
	// of the report's completion percentage.
	TotalQuestions int `yaml:"total_questions" validate:"required,min=1"`
	// Sections defines the question ranges, each bound to a skill and a
	// grading strategy.
	Sections []SectionConfig `yaml:"sections" validate:"required,min=1,dive"`
	// AnswerKey holds the reference entries for every keyed question.
	AnswerKey []KeyEntryConfig `yaml:"answer_key" validate:"required,min=1,dive"`
	// Bands declares the level cutoff table in ascending order.
	Bands []BandConfig `yaml:"bands" validate:"required,len=5,dive"`
	// TieBreak configures the boundary-adjustment step.
	TieBreak TieBreakConfig `yaml:"tie_break" validate:"required"`
	// Levels carries the static description and recommendation text for
	// each level.
	Levels []LevelTextConfig `yaml:"levels" validate:"required,len=5,dive"`
}

// Metadata provides descriptive information about an exam form for
// organization and discovery.
type Metadata struct {
	// Name is the human-readable identifier for this exam form.
	Name string `yaml:"name" validate:"required,min=1,max=255"`
	// Description explains the exam form's purpose and intended use.
	Description string `yaml:"description" validate:"max=1000"`
	// Tags are categorical labels for filtering and grouping exam forms.
	Tags []string `yaml:"tags" validate:"max=20,dive,min=1,max=50"`
}

// SectionConfig binds a contiguous question range to a skill and a
// grading strategy. Ranges across sections must not overlap.
type SectionConfig struct {
	// ID is the unique identifier for this section within the exam.
	ID string `yaml:"id" validate:"required,alphanum,min=1,max=100"`
	// Skill is the skill whose raw score this section counts toward.
	Skill string `yaml:"skill" validate:"required,oneof=grammar_vocabulary reading_writing listening"`
	// Strategy selects the grading policy for every question in the
	// section's range.
	Strategy string `yaml:"strategy" validate:"required,oneof=single_choice ordered_sequence keyword essay fuzzy_keyword"`
	// Start is the first question identifier of the range, inclusive.
	Start int `yaml:"start" validate:"required,min=1"`
	// End is the last question identifier of the range, inclusive.
	End int `yaml:"end" validate:"required,gtefield=Start"`
	// Parameters contains strategy-specific configuration as flexible
	// YAML, validated by the strategy itself during construction.
	Parameters yaml.Node `yaml:"parameters"`
}

// KeyEntryConfig is one answer-key entry. Exact and ordered-sequence
// questions carry Expected; keyword questions carry Keywords. The essay
// question has no entry: it is scored by its heuristic alone.
type KeyEntryConfig struct {
	// Question is the question identifier this entry keys.
	Question int `yaml:"question" validate:"required,min=1"`
	// Expected is the reference value for exact and sequence matching.
	Expected string `yaml:"expected,omitempty"`
	// Keywords is the fixed keyword set for heuristic free-text grading.
	Keywords []string `yaml:"keywords,omitempty" validate:"omitempty,min=1,dive,min=1"`
}

// BandConfig declares one level cutoff band on the 0-50 scale.
type BandConfig struct {
	// Level is the SEMF level assigned to scores inside this band.
	Level string `yaml:"level" validate:"required,semflevel"`
	// Min is the inclusive lower boundary.
	Min float64 `yaml:"min" validate:"min=0"`
	// Max is the inclusive upper boundary.
	Max float64 `yaml:"max" validate:"gtefield=Min"`
}

// TieBreakConfig controls the boundary-sensitive adjustment step.
type TieBreakConfig struct {
	// Window is the distance in scale points from a band boundary within
	// which an adjustment may fire. The SEMF standard is 2.
	Window float64 `yaml:"window" validate:"required,gt=0"`
	// GrammarThreshold is the grammar normalized score at or above which
	// near-miss scores promote, and below which near-exceed scores
	// demote. The SEMF standard is 35.
	GrammarThreshold float64 `yaml:"grammar_threshold" validate:"required,gt=0"`
}

// LevelTextConfig carries the static narrative text for one level.
type LevelTextConfig struct {
	// Level is the SEMF level this text belongs to.
	Level string `yaml:"level" validate:"required,semflevel"`
	// Description is the one-sentence description attached to reports.
	Description string `yaml:"description" validate:"required,min=1"`
	// Recommendation is the canned recommendation paragraph selected when
	// this is the overall level.
	Recommendation string `yaml:"recommendation" validate:"required,min=1"`
}
