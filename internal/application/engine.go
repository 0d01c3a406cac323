package application

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/shahdhi/SHaBridge-English-Mastery-Framework/internal/domain"
	"github.com/shahdhi/SHaBridge-English-Mastery-Framework/internal/ports"
)

// Engine is the SEMF scoring engine: a deterministic pipeline from an
// AnswerSet to a Report. It owns an immutable compiled exam definition
// and holds no per-call state, so a single Engine is safe for concurrent
// use across independent scoring calls.
//
// Score cannot fail: degraded input grades as "no point" and every call
// returns a complete Report.
type Engine struct {
	// exam is the compiled, read-only exam definition.
	exam *Exam
	// metrics is the optional metrics collector; nil disables recording.
	metrics ports.MetricsCollector
	// tracer is the OpenTelemetry tracer for observability.
	tracer trace.Tracer
}

// Option configures optional Engine collaborators.
type Option func(*Engine)

// WithMetrics attaches a metrics collector to the engine.
func WithMetrics(collector ports.MetricsCollector) Option {
	return func(e *Engine) { e.metrics = collector }
}

// NewEngine creates an engine for the given compiled exam.
func NewEngine(exam *Exam, opts ...Option) (*Engine, error) {
	if exam == nil {
		return nil, fmt.Errorf("exam definition is required")
	}

	e := &Engine{
		exam:   exam,
		tracer: otel.Tracer("semf-engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Exam returns the engine's compiled exam definition.
func (e *Engine) Exam() *Exam { return e.exam }

// Score runs the full pipeline over one answer set: grading, per-skill
// normalization, level classification, tie-break adjustment, overall
// aggregation, and report assembly. Sections grade concurrently; their
// ranges never interact until aggregation, so no ordering is required.
func (e *Engine) Score(ctx context.Context, answers domain.AnswerSet) domain.Report {
	ctx, span := e.tracer.Start(ctx, "Engine.Score",
		trace.WithAttributes(attribute.String("exam.name", e.exam.Name)),
	)
	defer span.End()

	start := time.Now()

	// Grade every section. Strategy errors degrade to "no point" rather
	// than failing the call, so the group's error is always nil; the
	// group exists for the per-section fan-out.
	counts := make([]int, len(e.exam.Sections))
	g, gctx := errgroup.WithContext(ctx)
	for i, section := range e.exam.Sections {
		i, section := i, section
		g.Go(func() error {
			counts[i] = e.gradeSection(gctx, section, answers)
			return nil
		})
	}
	_ = g.Wait()

	var raw domain.RawScores
	for i, section := range e.exam.Sections {
		switch section.Skill {
		case domain.SkillGrammarVocabulary:
			raw.GrammarVocabulary += counts[i]
		case domain.SkillReadingWriting:
			raw.ReadingWriting += counts[i]
		case domain.SkillListening:
			raw.Listening += counts[i]
		}
	}

	grammarNorm := domain.Normalize(raw.GrammarVocabulary, e.exam.MaxRaw[domain.SkillGrammarVocabulary])
	readingNorm := domain.Normalize(raw.ReadingWriting, e.exam.MaxRaw[domain.SkillReadingWriting])
	listeningNorm := domain.Normalize(raw.Listening, e.exam.MaxRaw[domain.SkillListening])

	readingLevel, readingAdjusted := e.applyTieBreak(readingNorm, grammarNorm)
	listeningLevel, listeningAdjusted := e.applyTieBreak(listeningNorm, grammarNorm)

	overall := domain.MinLevel(readingLevel, listeningLevel)

	report := e.buildReport(answers, raw, reportInputs{
		grammarNorm:       grammarNorm,
		readingNorm:       readingNorm,
		listeningNorm:     listeningNorm,
		readingLevel:      readingLevel,
		readingAdjusted:   readingAdjusted,
		listeningLevel:    listeningLevel,
		listeningAdjusted: listeningAdjusted,
		overall:           overall,
	})

	span.SetAttributes(
		attribute.String("score.overall_level", string(overall)),
		attribute.Float64("score.reading_writing", readingNorm),
		attribute.Float64("score.listening", listeningNorm),
		attribute.Float64("score.grammar_vocabulary", grammarNorm),
	)

	e.recordMetrics(report, time.Since(start))
	return report
}

// ScoreBatch scores independent answer sets concurrently, one Report per
// AnswerSet in input order. The fan-out is bounded by the number of CPUs.
func (e *Engine) ScoreBatch(ctx context.Context, sets []domain.AnswerSet) []domain.Report {
	reports := make([]domain.Report, len(sets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, set := range sets {
		i, set := i, set
		g.Go(func() error {
			reports[i] = e.Score(gctx, set)
			return nil
		})
	}
	_ = g.Wait()

	return reports
}

// gradeSection counts the correctly answered questions in one section's
// range. A strategy error is recorded on the span and contributes zero,
// preserving the engine's no-failure contract.
func (e *Engine) gradeSection(ctx context.Context, section Section, answers domain.AnswerSet) int {
	ctx, span := e.tracer.Start(ctx, "Engine.gradeSection",
		trace.WithAttributes(
			attribute.String("section.id", section.ID),
			attribute.String("section.skill", string(section.Skill)),
		),
	)
	defer span.End()

	correct := 0
	for id := section.Start; id <= section.End; id++ {
		score, err := section.Strategy.Grade(ctx, e.exam.Questions[id], answers.Answer(id))
		if err != nil {
			span.RecordError(err)
			continue
		}
		if score.Correct {
			correct++
		}
	}

	span.SetAttributes(attribute.Int("section.correct", correct))
	return correct
}

// applyTieBreak computes the base level for a normalized score and then
// scans every band, in ascending order and without early exit, for a
// boundary window the score falls into:
//
//   - within [band.min-window, band.min) with the grammar signal at or
//     above the threshold, the score promotes to that band;
//   - within (band.max, band.max+window] with the grammar signal below
//     the threshold, the score demotes one table position below the band
//     holding its base level. S1 has no band below it, so the base level
//     stands.
//
// Because the scan covers all bands, a score whose windows overlap takes
// whichever match evaluates last in ascending band order. That last-match
// behavior is kept for compatibility with established SEMF results; see
// DESIGN.md before changing it.
func (e *Engine) applyTieBreak(norm, grammarNorm float64) (domain.Level, bool) {
	bands := e.exam.Cutoffs.Bands()
	base := e.exam.Cutoffs.LevelFor(norm)

	baseIdx := 0
	for i, b := range bands {
		if b.Level == base {
			baseIdx = i
			break
		}
	}

	level := base
	applied := false
	for _, b := range bands {
		if norm >= b.Min-e.exam.TieBreakWindow && norm < b.Min && grammarNorm >= e.exam.GrammarThreshold {
			level = b.Level
			applied = true
		}
		if norm > b.Max && norm <= b.Max+e.exam.TieBreakWindow && grammarNorm < e.exam.GrammarThreshold {
			if baseIdx > 0 {
				level = bands[baseIdx-1].Level
				applied = true
			}
		}
	}

	return level, applied
}

// recordMetrics publishes per-call metrics when a collector is attached.
func (e *Engine) recordMetrics(report domain.Report, elapsed time.Duration) {
	if e.metrics == nil {
		return
	}

	examLabels := map[string]string{"exam": e.exam.Name}
	e.metrics.RecordLatency("score", elapsed, examLabels)
	e.metrics.RecordCounter("scorings_total", 1, examLabels)
	e.metrics.RecordCounter("level_assigned_total", 1, map[string]string{
		"skill": "overall", "level": string(report.OverallLevel),
	})
	for _, result := range report.Skills {
		e.metrics.RecordCounter("level_assigned_total", 1, map[string]string{
			"skill": string(result.Skill), "level": string(result.Level),
		})
		if result.TieBreakApplied {
			e.metrics.RecordCounter("tie_breaks_total", 1, map[string]string{
				"skill": string(result.Skill),
			})
		}
	}
}
