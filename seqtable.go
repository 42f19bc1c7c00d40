package imm

import "github.com/pkg/errors"

// SeqTable maps fixed-length-range byte strings to log-probabilities, with
// normalisation and min/max length bookkeeping, as specified for the
// "sequence table" component. It backs the Table state variant.
type SeqTable struct {
	abc      *Alphabet
	entries  map[string]float64
	minLen   int
	maxLen   int
	hasEntry bool
}

// NewSeqTable creates an empty sequence table over abc.
func NewSeqTable(abc *Alphabet) *SeqTable {
	return &SeqTable{abc: abc, entries: map[string]float64{}}
}

// Alphabet returns the table's alphabet.
func (t *SeqTable) Alphabet() *Alphabet {
	return t.abc
}

// Add stores (seq, lprob), overwriting any prior entry with identical bytes,
// and updates the tracked [min_len, max_len] range.
func (t *SeqTable) Add(seq *Sequence, lprob float64) {
	key := string(seq.Bytes())
	t.entries[key] = lprob
	n := seq.Len()
	if !t.hasEntry || n < t.minLen {
		t.minLen = n
	}
	if !t.hasEntry || n > t.maxLen {
		t.maxLen = n
	}
	t.hasEntry = true
}

// Lprob returns the stored log-probability for ss's bytes, or negInf if
// absent.
func (t *SeqTable) Lprob(ss Subsequence) float64 {
	v, ok := t.entries[ss.String()]
	if !ok {
		return negInf
	}
	return v
}

// MinLen and MaxLen report the length range of inserted sequences. Both are
// zero on an empty table.
func (t *SeqTable) MinLen() int { return t.minLen }
func (t *SeqTable) MaxLen() int { return t.maxLen }

// Normalize rescales every entry by subtracting Z = logsumexp(all values),
// so the stored values sum (in probability space) to 1. Fails with
// ErrNonNormalisable if Z == -inf (nothing to normalise) and leaves the
// table unchanged.
func (t *SeqTable) Normalize() error {
	if len(t.entries) == 0 {
		return errors.Wrap(ErrNonNormalisable, "sequence table is empty")
	}
	vals := make([]float64, 0, len(t.entries))
	for _, v := range t.entries {
		vals = append(vals, v)
	}
	z := logSumExp(vals...)
	if isNegInf(z) {
		return errors.Wrap(ErrNonNormalisable, "sequence table total mass is zero")
	}
	for k, v := range t.entries {
		t.entries[k] = logMul(v, -z)
	}
	return nil
}

func isNegInf(v float64) bool {
	return v == negInf
}
