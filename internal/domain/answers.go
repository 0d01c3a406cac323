package domain

// Skill identifies one of the three measured exam skills.
type Skill string

// The three SEMF exam skills. GrammarVocabulary is the tie-breaker skill:
// it is scored and reported but never assigned a level of its own.
const (
	SkillGrammarVocabulary Skill = "grammar_vocabulary"
	SkillReadingWriting    Skill = "reading_writing"
	SkillListening         Skill = "listening"
)

// DisplayName returns the human-readable name of the skill as it appears
// in report narratives.
func (s Skill) DisplayName() string {
	switch s {
	case SkillGrammarVocabulary:
		return "Grammar & Vocabulary"
	case SkillReadingWriting:
		return "Reading & Writing"
	case SkillListening:
		return "Listening"
	default:
		return string(s)
	}
}

// Valid reports whether the skill is one of the three recognized skills.
func (s Skill) Valid() bool {
	switch s {
	case SkillGrammarVocabulary, SkillReadingWriting, SkillListening:
		return true
	}
	return false
}

// AnswerSet maps a question identifier to the submitted answer text.
// Entries may be missing or empty; both degrade to "no point" during
// grading rather than causing an error. The set is supplied wholesale by
// the caller and treated as immutable by the engine.
type AnswerSet map[int]string

// Answer returns the submitted text for a question. A missing entry
// returns the empty string, which every grading policy treats as a
// non-match.
func (a AnswerSet) Answer(id int) string { return a[id] }

// Question is the graded view of a single exam question: its identifier,
// the skill it counts toward, and the reference data its grading policy
// consumes. Expected holds the answer-key value for exact and
// ordered-sequence questions; Keywords holds the fixed keyword set for
// heuristic free-text questions. Essay questions carry neither.
type Question struct {
	// ID is the question identifier, 1-56 for the standard SEMF exam.
	ID int `json:"id"`

	// Skill is the skill whose raw score this question counts toward.
	Skill Skill `json:"skill"`

	// Expected is the answer-key value, empty for heuristic questions.
	Expected string `json:"expected,omitempty"`

	// Keywords is the fixed keyword set for keyword-heuristic questions.
	Keywords []string `json:"keywords,omitempty"`
}
