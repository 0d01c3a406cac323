package application

import (
	"fmt"
	"strings"
	"time"

	"github.com/shahdhi/SHaBridge-English-Mastery-Framework/internal/domain"
)

// genericRecommendation is the fallback paragraph for a level value with
// no configured text. Band coverage makes this unreachable for well-formed
// exams; it exists so report assembly can never produce an empty summary.
const genericRecommendation = "Keep practicing across all three skills and retake the placement exam " +
	"to track your progress."

// reportInputs bundles the pipeline's intermediate values for report
// assembly.
type reportInputs struct {
	grammarNorm       float64
	readingNorm       float64
	listeningNorm     float64
	readingLevel      domain.Level
	readingAdjusted   bool
	listeningLevel    domain.Level
	listeningAdjusted bool
	overall           domain.Level
}

// buildReport assembles the immutable Report value: per-skill results,
// the tie-breaker result, descriptions for the levels actually present,
// the completion figure, and the narrative summary.
func (e *Engine) buildReport(answers domain.AnswerSet, raw domain.RawScores, in reportInputs) domain.Report {
	skills := []domain.SkillResult{
		{
			Skill:           domain.SkillReadingWriting,
			RawScore:        raw.ReadingWriting,
			MaxRaw:          e.exam.MaxRaw[domain.SkillReadingWriting],
			NormalizedScore: in.readingNorm,
			DisplayScore:    domain.Round1(in.readingNorm),
			Level:           in.readingLevel,
			TieBreakApplied: in.readingAdjusted,
		},
		{
			Skill:           domain.SkillListening,
			RawScore:        raw.Listening,
			MaxRaw:          e.exam.MaxRaw[domain.SkillListening],
			NormalizedScore: in.listeningNorm,
			DisplayScore:    domain.Round1(in.listeningNorm),
			Level:           in.listeningLevel,
			TieBreakApplied: in.listeningAdjusted,
		},
	}

	tieBreaker := domain.TieBreakerSkillResult{
		Skill:           domain.SkillGrammarVocabulary,
		RawScore:        raw.GrammarVocabulary,
		MaxRaw:          e.exam.MaxRaw[domain.SkillGrammarVocabulary],
		NormalizedScore: in.grammarNorm,
		DisplayScore:    domain.Round1(in.grammarNorm),
	}

	descriptions := make(map[domain.Level]string)
	for _, level := range []domain.Level{in.readingLevel, in.listeningLevel, in.overall} {
		if _, ok := descriptions[level]; ok {
			continue
		}
		if text, ok := e.exam.LevelTexts[level]; ok {
			descriptions[level] = text.Description
		}
	}

	// Only questions inside the exam form count toward completion; stray
	// identifiers and blank submissions are ignored.
	answered := 0
	for id := range e.exam.Questions {
		if strings.TrimSpace(answers.Answer(id)) != "" {
			answered++
		}
	}
	completion := 0.0
	if e.exam.TotalQuestions > 0 {
		completion = domain.Round1(float64(answered) / float64(e.exam.TotalQuestions) * 100)
	}

	report := domain.Report{
		Skills:            skills,
		TieBreaker:        tieBreaker,
		OverallLevel:      in.overall,
		LevelDescriptions: descriptions,
		AnsweredQuestions: answered,
		TotalQuestions:    e.exam.TotalQuestions,
		CompletionPercent: completion,
		GeneratedAt:       time.Now().UTC(),
	}
	report.Summary = e.buildSummary(report)
	return report
}

// buildSummary renders the multi-line narrative: overall level header,
// per-skill breakdown for all three skills, completion figure, and the
// recommendation paragraph for the overall level.
func (e *Engine) buildSummary(report domain.Report) string {
	var b strings.Builder

	header := fmt.Sprintf("Overall Level: %s", report.OverallLevel)
	if desc, ok := report.LevelDescriptions[report.OverallLevel]; ok {
		header += " - " + desc
	}
	b.WriteString(header)
	b.WriteString("\n")

	writeSkillLine(&b, domain.SkillGrammarVocabulary.DisplayName(),
		report.TieBreaker.RawScore, report.TieBreaker.MaxRaw)
	for _, result := range report.Skills {
		writeSkillLine(&b, result.Skill.DisplayName(), result.RawScore, result.MaxRaw)
	}
	fmt.Fprintf(&b, "Completion: %d/%d (%.1f%%)\n", report.AnsweredQuestions,
		report.TotalQuestions, report.CompletionPercent)

	b.WriteString("\n")
	b.WriteString(e.recommendationFor(report.OverallLevel))
	return b.String()
}

// writeSkillLine appends one per-skill breakdown line with the raw count
// and its rounded percentage.
func writeSkillLine(b *strings.Builder, name string, raw, max int) {
	percent := 0.0
	if max > 0 {
		percent = domain.Round1(float64(raw) / float64(max) * 100)
	}
	fmt.Fprintf(b, "%s: %d/%d (%.1f%%)\n", name, raw, max, percent)
}

// recommendationFor selects the canned recommendation paragraph for the
// overall level, falling back to a generic message for any level value
// without configured text.
func (e *Engine) recommendationFor(level domain.Level) string {
	switch level {
	case domain.LevelS1, domain.LevelS2, domain.LevelS3, domain.LevelS4, domain.LevelS5:
		if text, ok := e.exam.LevelTexts[level]; ok {
			return text.Recommendation
		}
	}
	return genericRecommendation
}
