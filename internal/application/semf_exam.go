package application

// This file carries the built-in SEMF placement exam: the fixed
// 56-question structure, its answer key, the cutoff table, and the level
// narrative text. The definition is configuration data owned by the
// engine; YAML files are only needed for alternative exam forms.

// singleLetterKey builds consecutive answer-key entries from a run of
// expected letters starting at the given question identifier.
func singleLetterKey(start int, letters ...string) []KeyEntryConfig {
	entries := make([]KeyEntryConfig, 0, len(letters))
	for i, letter := range letters {
		entries = append(entries, KeyEntryConfig{Question: start + i, Expected: letter})
	}
	return entries
}

// DefaultExamConfig returns the standard SEMF placement exam definition:
// questions 1-20 Grammar & Vocabulary single-letter, 21-35 Reading &
// Writing single-letter, 36-40 Reading & Writing ordered-sequence, 41-43
// Reading & Writing keyword free-text, 44 Reading & Writing essay, and
// 45-56 Listening single-letter.
func DefaultExamConfig() *ExamConfig {
	key := make([]KeyEntryConfig, 0, 55)
	key = append(key, singleLetterKey(1,
		"B", "A", "C", "D", "B", "C", "A", "D", "B", "A",
		"C", "B", "D", "A", "C", "D", "B", "A", "C", "B",
	)...)
	key = append(key, singleLetterKey(21,
		"C", "A", "D", "B", "C", "A", "B", "D", "C", "A",
		"B", "C", "D", "A", "B",
	)...)
	key = append(key,
		KeyEntryConfig{Question: 36, Expected: "B, C, D, A"},
		KeyEntryConfig{Question: 37, Expected: "C, A, B, D"},
		KeyEntryConfig{Question: 38, Expected: "D, B, A, C"},
		KeyEntryConfig{Question: 39, Expected: "A, D, C, B"},
		KeyEntryConfig{Question: 40, Expected: "B, D, A, C"},
	)
	key = append(key,
		KeyEntryConfig{Question: 41, Keywords: []string{"remote", "work", "productivity", "flexibility"}},
		KeyEntryConfig{Question: 42, Keywords: []string{"climate", "energy", "renewable", "emissions"}},
		KeyEntryConfig{Question: 43, Keywords: []string{"online", "learning", "students", "technology"}},
	)
	key = append(key, singleLetterKey(45,
		"A", "C", "B", "D", "A", "B", "C", "D", "B", "A",
		"C", "D",
	)...)

	return &ExamConfig{
		Version: "1.0.0",
		Metadata: Metadata{
			Name:        "SEMF Placement Exam",
			Description: "Standard 56-question SHaBridge English Mastery Framework placement exam.",
			Tags:        []string{"semf", "placement", "english"},
		},
		TotalQuestions: 56,
		Sections: []SectionConfig{
			{ID: "grammar", Skill: "grammar_vocabulary", Strategy: "single_choice", Start: 1, End: 20},
			{ID: "reading", Skill: "reading_writing", Strategy: "single_choice", Start: 21, End: 35},
			{ID: "reorder", Skill: "reading_writing", Strategy: "ordered_sequence", Start: 36, End: 40},
			{ID: "freetext", Skill: "reading_writing", Strategy: "keyword", Start: 41, End: 43},
			{ID: "essay", Skill: "reading_writing", Strategy: "essay", Start: 44, End: 44},
			{ID: "listening", Skill: "listening", Strategy: "single_choice", Start: 45, End: 56},
		},
		AnswerKey: key,
		Bands: []BandConfig{
			{Level: "S1", Min: 0, Max: 15},
			{Level: "S2", Min: 16, Max: 25},
			{Level: "S3", Min: 26, Max: 33},
			{Level: "S4", Min: 34, Max: 42},
			{Level: "S5", Min: 43, Max: 50},
		},
		TieBreak: TieBreakConfig{Window: 2, GrammarThreshold: 35},
		Levels: []LevelTextConfig{
			{
				Level:       "S1",
				Description: "Beginner: understands and uses only the most basic everyday expressions.",
				Recommendation: "Focus on foundational vocabulary and simple sentence patterns. " +
					"Short daily practice with graded readers and beginner listening material will build the base the next level requires.",
			},
			{
				Level:       "S2",
				Description: "Elementary: handles routine exchanges on familiar topics with simple language.",
				Recommendation: "Extend your range beyond memorized phrases. " +
					"Practice connecting sentences with linking words and work through elementary reading passages with comprehension questions.",
			},
			{
				Level:       "S3",
				Description: "Intermediate: deals with most everyday situations and produces connected text on familiar subjects.",
				Recommendation: "Push into unfamiliar topics. " +
					"Read opinion articles, summarize them in writing, and practice listening to natural-speed conversations to close the gap to upper-intermediate.",
			},
			{
				Level:       "S4",
				Description: "Upper-intermediate: interacts fluently on a wide range of topics and argues a viewpoint in writing.",
				Recommendation: "Refine precision and register. " +
					"Work with academic and professional texts, draft structured essays under time pressure, and review advanced grammar points that still cause hesitation.",
			},
			{
				Level:       "S5",
				Description: "Advanced: uses language flexibly and effectively for social, academic, and professional purposes.",
				Recommendation: "Maintain and deepen mastery. " +
					"Engage with specialized material in your field, polish nuance and idiom, and seek settings that demand spontaneous, extended argument.",
			},
		},
	}
}

// NewDefaultExam compiles the built-in SEMF placement exam with the
// standard strategy registry.
func NewDefaultExam() (*Exam, error) {
	loader, err := NewExamLoader(NewDefaultStrategyRegistry())
	if err != nil {
		return nil, err
	}
	return loader.Compile(DefaultExamConfig())
}
