package imm

// Dist is a log-probability vector over an Alphabet: one entry per symbol
// plus one for the wildcard. It is the "abc-table" of the spec — used
// directly by Normal states and as the per-position insertion distribution
// inside the frame-state algorithm.
type Dist struct {
	abc    *Alphabet
	lprobs []float64 // len == abc.Len()+1, index abc.Len() is the wildcard
}

// NewDist builds a Dist from |A|+1 log-probabilities ordered as
// [symbol0, symbol1, ..., symbolN-1, wildcard]. The wildcard value is taken
// verbatim, never derived, per the spec.
func NewDist(abc *Alphabet, lprobs []float64) *Dist {
	cp := make([]float64, abc.Len()+1)
	copy(cp, lprobs)
	return &Dist{abc: abc, lprobs: cp}
}

// Alphabet returns the distribution's alphabet.
func (d *Dist) Alphabet() *Alphabet {
	return d.abc
}

// Lprob returns the stored log-probability for sym. Symbols outside
// A ∪ {any} return negInf rather than panicking, consistent with the
// spec's "impossible, not an error" convention for lprob-returning calls.
func (d *Dist) Lprob(sym byte) float64 {
	i := d.abc.Idx(sym)
	if i == noSymbol {
		return negInf
	}
	return d.lprobs[i]
}

// set writes the log-probability at alphabet index idx directly.
func (d *Dist) set(idx int, lprob float64) {
	d.lprobs[idx] = lprob
}

// at returns the raw log-probability by alphabet index (0..Len(), Len() is
// the wildcard), without a bounds check; idx must already be valid.
func (d *Dist) at(idx int) float64 {
	return d.lprobs[idx]
}
