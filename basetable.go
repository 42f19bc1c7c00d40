package imm

import "github.com/pkg/errors"

// BaseTable holds four log-probability parameters for a nucleotide-frequency
// model, one per base in the alphabet's order, used by the frame-state
// algorithm to score insertion-hypothesis positions against the background
// distribution. It also carries an explicit wildcard entry (queried when an
// observed position is the wildcard symbol).
type BaseTable struct {
	abc  *Alphabet
	dist *Dist
}

// NewBaseTable creates a base table over a 4-symbol base alphabet with
// per-base log-probabilities a, b, c, d (in alphabet order) and an explicit
// wildcard log-probability.
func NewBaseTable(abc *Alphabet, a, b, c, d, wildcard float64) (*BaseTable, error) {
	if abc.Len() != 4 {
		return nil, errors.Errorf("imm: base table requires a 4-symbol alphabet, got %d", abc.Len())
	}
	dist := NewDist(abc, []float64{a, b, c, d, wildcard})
	return &BaseTable{abc: abc, dist: dist}, nil
}

// Alphabet returns the base table's (4-symbol) alphabet.
func (t *BaseTable) Alphabet() *Alphabet {
	return t.abc
}

// Lprob returns the stored log-probability for nucleotide (or the wildcard).
func (t *BaseTable) Lprob(nucleotide byte) float64 {
	return t.dist.Lprob(nucleotide)
}
