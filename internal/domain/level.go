// Package domain contains pure, dependency-free domain models and types
// for the SEMF scoring engine.
package domain

import "fmt"

// Level represents one of the five ordinal SEMF proficiency bands,
// from S1 (lowest) to S5 (highest). Levels are assigned per skill and
// once overall per scored attempt.
type Level string

// The five SEMF proficiency levels in ascending order.
const (
	LevelS1 Level = "S1"
	LevelS2 Level = "S2"
	LevelS3 Level = "S3"
	LevelS4 Level = "S4"
	LevelS5 Level = "S5"
)

// Levels lists all SEMF levels in ascending order. The slice is used for
// validation and for ordinal arithmetic; callers must not mutate it.
var Levels = []Level{LevelS1, LevelS2, LevelS3, LevelS4, LevelS5}

// Ordinal returns the numeric rank of the level, 1 for S1 through 5 for S5.
// Unknown level values rank as 1 so that aggregation can never promote a
// result past a recognized level.
func (l Level) Ordinal() int {
	switch l {
	case LevelS1:
		return 1
	case LevelS2:
		return 2
	case LevelS3:
		return 3
	case LevelS4:
		return 4
	case LevelS5:
		return 5
	default:
		return 1
	}
}

// Valid reports whether the level is one of the five recognized SEMF levels.
func (l Level) Valid() bool {
	switch l {
	case LevelS1, LevelS2, LevelS3, LevelS4, LevelS5:
		return true
	}
	return false
}

// MinLevel returns the lower of two levels by ordinal rank.
// It implements the "weakest skill governs" aggregation policy.
func MinLevel(a, b Level) Level {
	if b.Ordinal() < a.Ordinal() {
		return b
	}
	return a
}

// Band is one inclusive range on the common 0-50 scale that maps a
// normalized score to a level. Bands are declared in ascending order and
// cover the scale contiguously with no overlaps.
type Band struct {
	// Level is the SEMF level assigned to scores inside this band.
	Level Level `json:"level"`

	// Min is the inclusive lower boundary of the band on the 0-50 scale.
	Min float64 `json:"min"`

	// Max is the inclusive upper boundary of the band on the 0-50 scale.
	Max float64 `json:"max"`
}

// Contains reports whether the normalized score falls inside the band's
// inclusive [Min, Max] range.
func (b Band) Contains(score float64) bool {
	return score >= b.Min && score <= b.Max
}

// CutoffTable holds the ordered level bands used to classify normalized
// scores. The table is immutable after construction and safe for
// concurrent use; it is configuration data with no lifecycle beyond
// process startup.
type CutoffTable struct {
	bands []Band
}

// NewCutoffTable builds a CutoffTable from bands declared in ascending
// order. It rejects tables whose bands are out of order, overlapping, or
// assigned to unrecognized levels. Integer-boundary gaps between adjacent
// bands (for example 15 to 16) are part of the SEMF table shape and are
// accepted; real-valued scores inside such a gap fall back to the lowest
// level during classification.
func NewCutoffTable(bands []Band) (CutoffTable, error) {
	if len(bands) == 0 {
		return CutoffTable{}, ErrNoBands
	}

	for i, b := range bands {
		if !b.Level.Valid() {
			return CutoffTable{}, fmt.Errorf("band %d: %w: %q", i, ErrUnknownLevel, b.Level)
		}
		if b.Max < b.Min {
			return CutoffTable{}, fmt.Errorf("band %d (%s): %w: max %.1f below min %.1f",
				i, b.Level, ErrInvalidBand, b.Max, b.Min)
		}
		if i > 0 && b.Min <= bands[i-1].Max {
			return CutoffTable{}, fmt.Errorf("band %d (%s): %w: min %.1f does not clear previous max %.1f",
				i, b.Level, ErrBandOverlap, b.Min, bands[i-1].Max)
		}
	}

	copied := make([]Band, len(bands))
	copy(copied, bands)
	return CutoffTable{bands: copied}, nil
}

// DefaultCutoffTable returns the standard SEMF table:
// S1 [0,15], S2 [16,25], S3 [26,33], S4 [34,42], S5 [43,50].
func DefaultCutoffTable() CutoffTable {
	table, err := NewCutoffTable([]Band{
		{Level: LevelS1, Min: 0, Max: 15},
		{Level: LevelS2, Min: 16, Max: 25},
		{Level: LevelS3, Min: 26, Max: 33},
		{Level: LevelS4, Min: 34, Max: 42},
		{Level: LevelS5, Min: 43, Max: 50},
	})
	if err != nil {
		// The standard table is statically correct; reaching this
		// indicates programmer error, not bad input.
		panic(err)
	}
	return table
}

// LevelFor classifies a normalized score by scanning the bands in their
// declared ascending order and returning the level of the first band whose
// inclusive range contains the score. Scores outside every band fall back
// to the lowest level; this is a policy decision, not input validation,
// and callers must not treat the fallback as an error.
func (t CutoffTable) LevelFor(score float64) Level {
	for _, b := range t.bands {
		if b.Contains(score) {
			return b.Level
		}
	}
	return LevelS1
}

// Bands returns a copy of the table's bands in ascending order.
func (t CutoffTable) Bands() []Band {
	out := make([]Band, len(t.bands))
	copy(out, t.bands)
	return out
}

// Len returns the number of bands in the table.
func (t CutoffTable) Len() int { return len(t.bands) }
