package domain

import "math"

// ScaleMax is the upper bound of the common scale that every skill's raw
// score is normalized onto for cross-skill comparison and leveling.
const ScaleMax = 50.0

// QuestionScore is the outcome of grading a single question. Grading is
// binary: a question is either awarded its point or not. Reasoning carries
// a short deterministic explanation for traceability.
type QuestionScore struct {
	// Correct reports whether the question's point was awarded.
	Correct bool `json:"correct"`

	// Reasoning explains the grading decision in one short sentence.
	Reasoning string `json:"reasoning"`
}

// RawScores holds the per-skill counts of correctly answered questions.
// Each count is structurally bounded by the number of questions in the
// skill's range; the engine never clamps it explicitly. Derived once per
// AnswerSet and never mutated afterward.
type RawScores struct {
	// GrammarVocabulary counts correct answers in the grammar range (max 20).
	GrammarVocabulary int `json:"grammar_vocabulary"`

	// ReadingWriting counts correct answers in the reading and writing
	// ranges, including the free-text and essay questions (max 24).
	ReadingWriting int `json:"reading_writing"`

	// Listening counts correct answers in the listening range (max 12).
	Listening int `json:"listening"`
}

// Normalize rescales a raw count onto the common 0-ScaleMax scale using
// exact real-number arithmetic: (raw / max) * ScaleMax. The unrounded
// value is what level classification and tie-break comparison consume;
// only report display rounds it. A non-positive max yields 0 so that a
// degenerate exam definition degrades rather than dividing by zero.
func Normalize(raw, max int) float64 {
	if max <= 0 {
		return 0
	}
	return float64(raw) / float64(max) * ScaleMax
}

// Round1 rounds a normalized score to one decimal place for display.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}
