package application

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"

	"github.com/shahdhi/SHaBridge-English-Mastery-Framework/internal/domain"
	"github.com/shahdhi/SHaBridge-English-Mastery-Framework/internal/ports"
)

// Section is a compiled question range bound to a skill and a ready
// grading strategy instance.
type Section struct {
	// ID is the section identifier from the configuration.
	ID string
	// Skill is the skill this section's correct answers count toward.
	Skill domain.Skill
	// Strategy is the grading policy instance for the section's range.
	Strategy ports.GradingStrategy
	// Start and End bound the section's question identifiers, inclusive.
	Start, End int
}

// LevelText holds the static narrative text for one level.
type LevelText struct {
	// Description is the one-sentence level description.
	Description string
	// Recommendation is the canned recommendation paragraph.
	Recommendation string
}

// Exam is a compiled, immutable exam definition: sections with their
// strategy instances, the per-question reference data, the cutoff table,
// and the tie-break parameters. An Exam is built once by the loader and
// shared read-only across concurrent scoring calls.
type Exam struct {
	// Name is the exam form's human-readable name.
	Name string
	// TotalQuestions is the fixed size of the exam form.
	TotalQuestions int
	// Sections are the compiled question ranges in declaration order.
	Sections []Section
	// Questions maps each question identifier to its graded view.
	Questions map[int]domain.Question
	// MaxRaw maps each skill to the number of questions counting toward it.
	MaxRaw map[domain.Skill]int
	// Cutoffs is the level cutoff table.
	Cutoffs domain.CutoffTable
	// TieBreakWindow is the boundary distance within which an adjustment
	// may fire.
	TieBreakWindow float64
	// GrammarThreshold is the grammar normalized score deciding the
	// adjustment direction.
	GrammarThreshold float64
	// LevelTexts maps each level to its static narrative text.
	LevelTexts map[domain.Level]LevelText
}

// ExamLoader provides YAML parsing, validation, and caching for exam
// definitions, transforming declarative specifications into compiled
// Exam structures ready for the engine.
type ExamLoader struct {
	// validator performs struct field validation and custom validation
	// rules for exam configurations.
	validator *validator.Validate
	// registry provides factory methods for creating grading strategies
	// by type and configuration.
	registry ports.StrategyRegistry
	// cache stores compiled exams indexed by SHA256 hash of the source
	// YAML to avoid recompiling identical configurations.
	cache map[string]*Exam
	// cacheMu provides thread-safe access to the cache map.
	cacheMu sync.RWMutex
	// sf prevents duplicate compilation when multiple goroutines request
	// the same exam simultaneously.
	sf singleflight.Group
}

// NewExamLoader creates an exam loader with validation capabilities and
// an empty cache. It registers the custom validators used for semantic
// validation beyond basic struct tags.
func NewExamLoader(registry ports.StrategyRegistry) (*ExamLoader, error) {
	if registry == nil {
		return nil, fmt.Errorf("strategy registry is required")
	}

	v := validator.New()
	if err := registerCustomValidators(v); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	return &ExamLoader{
		validator: v,
		registry:  registry,
		cache:     make(map[string]*Exam),
	}, nil
}

// LoadFromFile loads and compiles an exam definition from a YAML file.
// The returned Exam is a pointer to a cached instance and must be treated
// as read-only.
func (el *ExamLoader) LoadFromFile(path string) (*Exam, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read exam file %s: %w", path, err)
	}
	return el.Load(data)
}

// LoadFromReader loads and compiles an exam definition from a reader.
func (el *ExamLoader) LoadFromReader(r io.Reader) (*Exam, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read exam config: %w", err)
	}
	return el.Load(data)
}

// Load parses, validates, and compiles an exam definition from YAML
// bytes, using SHA256-based caching and singleflight so identical
// configurations compile once even under concurrent requests.
func (el *ExamLoader) Load(data []byte) (*Exam, error) {
	var config ExamConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to parse exam YAML: %w", err)
	}

	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	v, err, _ := el.sf.Do(hash, func() (any, error) {
		el.cacheMu.RLock()
		cached, ok := el.cache[hash]
		el.cacheMu.RUnlock()
		if ok {
			return cached, nil
		}

		exam, err := el.Compile(&config)
		if err != nil {
			return nil, err
		}

		el.cacheMu.Lock()
		el.cache[hash] = exam
		el.cacheMu.Unlock()
		return exam, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Exam), nil
}

// Compile validates an exam configuration and builds the compiled Exam,
// instantiating one grading strategy per section through the registry.
func (el *ExamLoader) Compile(config *ExamConfig) (*Exam, error) {
	if err := el.validator.Struct(config); err != nil {
		return nil, fmt.Errorf("exam config validation failed: %w", err)
	}
	if err := validateExamSemantics(config); err != nil {
		return nil, err
	}

	bands := make([]domain.Band, 0, len(config.Bands))
	for _, b := range config.Bands {
		bands = append(bands, domain.Band{Level: domain.Level(b.Level), Min: b.Min, Max: b.Max})
	}
	cutoffs, err := domain.NewCutoffTable(bands)
	if err != nil {
		return nil, fmt.Errorf("invalid cutoff table: %w", err)
	}

	keyByQuestion := make(map[int]KeyEntryConfig, len(config.AnswerKey))
	for _, entry := range config.AnswerKey {
		keyByQuestion[entry.Question] = entry
	}

	exam := &Exam{
		Name:             config.Metadata.Name,
		TotalQuestions:   config.TotalQuestions,
		Sections:         make([]Section, 0, len(config.Sections)),
		Questions:        make(map[int]domain.Question),
		MaxRaw:           make(map[domain.Skill]int),
		Cutoffs:          cutoffs,
		TieBreakWindow:   config.TieBreak.Window,
		GrammarThreshold: config.TieBreak.GrammarThreshold,
		LevelTexts:       make(map[domain.Level]LevelText, len(config.Levels)),
	}

	for _, lt := range config.Levels {
		exam.LevelTexts[domain.Level(lt.Level)] = LevelText{
			Description:    lt.Description,
			Recommendation: lt.Recommendation,
		}
	}

	for _, sc := range config.Sections {
		params, err := decodeParameters(sc.Parameters)
		if err != nil {
			return nil, fmt.Errorf("section %s: %w", sc.ID, err)
		}

		strategy, err := el.registry.Create(sc.Strategy, sc.ID, params)
		if err != nil {
			return nil, fmt.Errorf("section %s: %w", sc.ID, err)
		}
		if err := strategy.Validate(); err != nil {
			return nil, fmt.Errorf("section %s: %w", sc.ID, err)
		}

		skill := domain.Skill(sc.Skill)
		exam.Sections = append(exam.Sections, Section{
			ID:       sc.ID,
			Skill:    skill,
			Strategy: strategy,
			Start:    sc.Start,
			End:      sc.End,
		})

		for id := sc.Start; id <= sc.End; id++ {
			q := domain.Question{ID: id, Skill: skill}
			if entry, ok := keyByQuestion[id]; ok {
				q.Expected = entry.Expected
				q.Keywords = entry.Keywords
			}
			exam.Questions[id] = q
			exam.MaxRaw[skill]++
		}
	}

	return exam, nil
}

// validateExamSemantics runs the consistency checks that struct tags
// cannot express: non-overlapping sections, contiguous bands covering the
// full scale, and an answer key that matches each section's policy.
func validateExamSemantics(config *ExamConfig) error {
	verr := domain.NewValidationError("exam config")

	// Sections must not overlap and must account for every question.
	claimed := make(map[int]string)
	total := 0
	for _, sc := range config.Sections {
		for id := sc.Start; id <= sc.End; id++ {
			if prev, ok := claimed[id]; ok {
				verr.AddError(fmt.Sprintf("question %d claimed by both section %s and %s", id, prev, sc.ID))
				continue
			}
			claimed[id] = sc.ID
			total++
		}
	}
	if total != config.TotalQuestions {
		verr.AddError(fmt.Sprintf("sections cover %d questions, total_questions is %d", total, config.TotalQuestions))
	}

	// Bands must tile [0, ScaleMax] contiguously at integer boundaries.
	for i, b := range config.Bands {
		if i == 0 && b.Min != 0 {
			verr.AddError(fmt.Sprintf("first band must start at 0, got %.1f", b.Min))
		}
		if i > 0 && b.Min != config.Bands[i-1].Max+1 {
			verr.AddError(fmt.Sprintf("band %s min %.1f does not follow previous max %.1f", b.Level, b.Min, config.Bands[i-1].Max))
		}
		if i == len(config.Bands)-1 && b.Max != domain.ScaleMax {
			verr.AddError(fmt.Sprintf("last band must end at %.0f, got %.1f", domain.ScaleMax, b.Max))
		}
	}

	// Each keyed question appears exactly once, inside a section, with
	// the reference data its section's policy needs.
	seen := make(map[int]bool, len(config.AnswerKey))
	keyed := make(map[int]KeyEntryConfig, len(config.AnswerKey))
	for _, entry := range config.AnswerKey {
		if seen[entry.Question] {
			verr.AddError(fmt.Sprintf("duplicate answer key entry for question %d", entry.Question))
			continue
		}
		seen[entry.Question] = true
		keyed[entry.Question] = entry
		if _, ok := claimed[entry.Question]; !ok {
			verr.AddError(fmt.Sprintf("answer key entry for question %d outside every section", entry.Question))
		}
	}

	for _, sc := range config.Sections {
		for id := sc.Start; id <= sc.End; id++ {
			entry, ok := keyed[id]
			switch sc.Strategy {
			case "single_choice", "ordered_sequence":
				if !ok || entry.Expected == "" {
					verr.AddError(fmt.Sprintf("question %d (section %s) requires an expected answer", id, sc.ID))
				}
			case "keyword", "fuzzy_keyword":
				if !ok || len(entry.Keywords) == 0 {
					verr.AddError(fmt.Sprintf("question %d (section %s) requires a keyword set", id, sc.ID))
				}
			case "essay":
				if ok {
					verr.AddError(fmt.Sprintf("question %d (section %s) is essay-scored and must not be keyed", id, sc.ID))
				}
			}
		}
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

// decodeParameters converts a section's flexible YAML parameters node
// into the configuration map consumed by strategy factories. A zero node
// yields an empty map so strategies fall back to their defaults.
func decodeParameters(node yaml.Node) (map[string]any, error) {
	if node.IsZero() {
		return map[string]any{}, nil
	}
	var params map[string]any
	if err := node.Decode(&params); err != nil {
		return nil, fmt.Errorf("failed to decode parameters: %w", err)
	}
	if params == nil {
		params = map[string]any{}
	}
	return params, nil
}
