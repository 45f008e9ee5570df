package swiftcsv

import "math"

// epsilon is the scoring floor used so that single-field rows (f=1, where
// f-1 would be zero) still contribute a small positive amount rather than
// zeroing out an otherwise-regular dialect.
const epsilon = 0.001

// candidatePair is a (field index, row index) pair used to order
// generated dialect candidates by i+j ascending, so that earlier-listed
// delimiters in each slot are preferred roughly equally before either
// list is exhausted.
type candidatePair struct {
	fieldIdx int
	rowIdx   int
}

// Inferrer picks the best dialect for a sample of scalars by speculatively
// tokenizing the sample under every viable (field, row) candidate pair and
// scoring the resulting row-pattern regularity.
type Inferrer struct {
	logger InferenceLogger
}

// NewInferrer returns an Inferrer that reports candidate scores to logger,
// which may be nil for silence.
func NewInferrer(logger InferenceLogger) *Inferrer {
	return &Inferrer{logger: logger}
}

// Infer scores every (field, row) candidate pair generated from
// fieldCandidates and rowCandidateSets and returns the winning Dialect.
func (inf *Inferrer) Infer(sample []rune, fieldCandidates []Delimiter, rowCandidateSets []RowDelimiterSet, escape EscapeStrategy) (Dialect, error) {
	if len(fieldCandidates) == 0 || len(rowCandidateSets) == 0 {
		return Dialect{}, newError(ErrInvalidConfiguration, "inference requires at least one field and one row candidate")
	}

	fieldCandidates = dedupeDelimiters(fieldCandidates)
	rowCandidateSets = dedupeRowSets(rowCandidateSets)

	pairs := generateCandidatePairs(len(fieldCandidates), len(rowCandidateSets))

	var (
		best      Dialect
		bestScore float64
		haveBest  bool
	)

	for _, p := range pairs {
		dialect := Dialect{Field: fieldCandidates[p.fieldIdx], Row: rowCandidateSets[p.rowIdx], Escape: escape}
		if err := validateDelimiters(dialect.Field, dialect.Row, dialect.Escape, TrimSet{}); err != nil {
			continue
		}

		score := inf.score(sample, dialect)
		inf.logCandidate(dialect, score)

		if score <= 0 {
			continue
		}
		if !haveBest || isBetterCandidate(dialect, score, best, bestScore) {
			best, bestScore, haveBest = dialect, score, true
		}
	}

	if !haveBest {
		return Dialect{}, newError(ErrInferenceFailure, "no dialect candidate produced a positive pattern score")
	}
	return best, nil
}

// score speculatively tokenizes sample under dialect with a throw-away
// Reader and computes the pattern-regularity score described in §4.4. A
// catastrophic tokenization failure scores 0 rather than propagating.
func (inf *Inferrer) score(sample []rune, dialect Dialect) float64 {
	cfg := Config{
		FieldDelimiter: UseFieldDelimiter(dialect.Field),
		RowDelimiter:   UseRowDelimiter(dialect.Row),
		Escape:         dialect.Escape,
		Header:         HeaderNone,
	}

	// The re-entrant reader is built over a fresh copy of the sample so it
	// never touches the main reader's buffer (§9 "Recursive inference").
	speculative := append([]rune(nil), sample...)
	src := FromString(string(speculative))

	r, err := NewReader(src, cfg)
	if err != nil {
		return 0
	}
	rows, err := r.ReadAll()
	if err != nil {
		return 0
	}

	counts := make(map[int]int)
	for _, row := range rows {
		counts[len(row)]++
	}
	if len(counts) == 0 {
		return 0
	}

	var sum float64
	for f, c := range counts {
		if f == 0 {
			continue
		}
		contribution := float64(c) * math.Max(epsilon, float64(f-1)) / float64(f)
		sum += contribution * typeAwarenessMultiplier(f, c)
	}
	return sum / float64(len(counts))
}

// typeAwarenessMultiplier is the hook described in §4.4 step 6 / §9 Open
// Question (ii): a pluggable per-pattern score multiplier. It is kept in
// the scoring pipeline but left disabled, always returning 1.0.
func typeAwarenessMultiplier(fieldCount, occurrences int) float64 {
	_ = fieldCount
	_ = occurrences
	return 1.0
}

// isBetterCandidate reports whether candidate (score cs) should replace
// the current best (score bs), applying the §4.4 tie-breaking order:
// larger pattern score, then smaller row-delimiter-set cardinality, then
// longer total delimiter scalar length.
func isBetterCandidate(candidate Dialect, cs float64, best Dialect, bs float64) bool {
	if cs != bs {
		return cs > bs
	}
	if candidate.Row.Len() != best.Row.Len() {
		return candidate.Row.Len() < best.Row.Len()
	}
	return candidate.totalScalarLen() > best.totalScalarLen()
}

// generateCandidatePairs produces every (i, j) index pair across
// [0, fieldN) x [0, rowN), sorted by i+j ascending and, within a tie, by i
// ascending.
func generateCandidatePairs(fieldN, rowN int) []candidatePair {
	pairs := make([]candidatePair, 0, fieldN*rowN)
	for i := 0; i < fieldN; i++ {
		for j := 0; j < rowN; j++ {
			pairs = append(pairs, candidatePair{fieldIdx: i, rowIdx: j})
		}
	}
	for i := 1; i < len(pairs); i++ {
		for k := i; k > 0; k-- {
			a, b := pairs[k-1], pairs[k]
			if a.fieldIdx+a.rowIdx > b.fieldIdx+b.rowIdx ||
				(a.fieldIdx+a.rowIdx == b.fieldIdx+b.rowIdx && a.fieldIdx > b.fieldIdx) {
				pairs[k-1], pairs[k] = pairs[k], pairs[k-1]
				continue
			}
			break
		}
	}
	return pairs
}

// dedupeRowSets removes sets recognizing an identical member delimiter
// list, preserving first-seen order.
func dedupeRowSets(sets []RowDelimiterSet) []RowDelimiterSet {
	seen := make(map[string]struct{}, len(sets))
	out := make([]RowDelimiterSet, 0, len(sets))
	for _, s := range sets {
		k := s.String()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}
