package imm

import "github.com/pkg/errors"

// Triplet is an ordered triplet of nucleotide symbols, each either a
// concrete base or the alphabet's wildcard.
type Triplet struct {
	A, B, C byte
}

// CodonLprob is a builder for the joint (user-supplied) distribution over
// concrete codons: one log-probability per (a,b,c) triplet of concrete
// bases, no wildcards. CodonTable consumes it to pre-compute the dense,
// wildcard-aware lookup table.
type CodonLprob struct {
	abc    *Alphabet
	values map[Triplet]float64
}

// NewCodonLprob creates an empty codon-probability builder over a 4-symbol
// base alphabet.
func NewCodonLprob(abc *Alphabet) (*CodonLprob, error) {
	if abc.Len() != 4 {
		return nil, errors.Errorf("imm: codon probability requires a 4-symbol base alphabet, got %d", abc.Len())
	}
	return &CodonLprob{abc: abc, values: map[Triplet]float64{}}, nil
}

// Alphabet returns the underlying base alphabet.
func (c *CodonLprob) Alphabet() *Alphabet {
	return c.abc
}

// Set stores the log-probability of a concrete (non-wildcard) triplet.
func (c *CodonLprob) Set(t Triplet, lprob float64) error {
	for _, b := range [...]byte{t.A, t.B, t.C} {
		if b == c.abc.Any() || !c.abc.HasSymbol(b) {
			return errors.Wrapf(ErrSymbolNotInAlphabet, "codon position %q is not a concrete base", b)
		}
	}
	c.values[t] = lprob
	return nil
}

// Get returns the stored log-probability for t, or negInf if never set.
func (c *CodonLprob) Get(t Triplet) float64 {
	v, ok := c.values[t]
	if !ok {
		return negInf
	}
	return v
}

// Normalize rescales every stored entry by Z = logsumexp(all values), so the
// 64 (or |Σ|^3) concrete-codon probabilities sum to 1. Fails with
// ErrNonNormalisable when Z == -inf.
func (c *CodonLprob) Normalize() error {
	if len(c.values) == 0 {
		return errors.Wrap(ErrNonNormalisable, "codon distribution is empty")
	}
	vals := make([]float64, 0, len(c.values))
	for _, v := range c.values {
		vals = append(vals, v)
	}
	z := logSumExp(vals...)
	if isNegInf(z) {
		return errors.Wrap(ErrNonNormalisable, "codon distribution total mass is zero")
	}
	for k, v := range c.values {
		c.values[k] = logMul(v, -z)
	}
	return nil
}

// CodonTable is a pre-computed dense lookup of size (|A|+1)^3 holding the
// log-probability for every triplet including wildcards. Wildcard entries
// are the logsumexp marginal of the user-supplied distribution over the
// dimensions that carry a wildcard, composably per axis.
type CodonTable struct {
	abc   *Alphabet
	n     int // abc.Len() + 1 (the extra slot is the wildcard)
	table []float64
}

// NewCodonTable builds a CodonTable from a fully-populated CodonLprob.
func NewCodonTable(codonp *CodonLprob) *CodonTable {
	abc := codonp.abc
	n := abc.Len() + 1
	t := &CodonTable{abc: abc, n: n, table: make([]float64, n*n*n)}

	axisRange := func(i int) []int {
		if i == abc.Len() {
			r := make([]int, abc.Len())
			for k := range r {
				r[k] = k
			}
			return r
		}
		return []int{i}
	}

	for i := 0; i < n; i++ {
		as := axisRange(i)
		for j := 0; j < n; j++ {
			bs := axisRange(j)
			for k := 0; k < n; k++ {
				cs := axisRange(k)
				var terms []float64
				for _, a := range as {
					for _, b := range bs {
						for _, c := range cs {
							triplet := Triplet{abc.SymbolAt(a), abc.SymbolAt(b), abc.SymbolAt(c)}
							terms = append(terms, codonp.Get(triplet))
						}
					}
				}
				t.table[t.index(i, j, k)] = logSumExp(terms...)
			}
		}
	}
	return t
}

func (t *CodonTable) index(i, j, k int) int {
	return i*t.n*t.n + j*t.n + k
}

// Alphabet returns the table's base alphabet.
func (t *CodonTable) Alphabet() *Alphabet {
	return t.abc
}

// Lprob returns the (possibly marginalised) log-probability of triplet,
// which may contain wildcard positions. Symbols outside the base alphabet
// (and not the wildcard) yield negInf.
func (t *CodonTable) Lprob(triplet Triplet) float64 {
	i := t.abc.Idx(triplet.A)
	j := t.abc.Idx(triplet.B)
	k := t.abc.Idx(triplet.C)
	if i == noSymbol || j == noSymbol || k == noSymbol {
		return negInf
	}
	return t.table[t.index(i, j, k)]
}
