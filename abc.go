package imm

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// noSymbol is returned by Alphabet.Idx for a byte that is neither one of the
// ordered symbols nor the wildcard. The wildcard's own index is always the
// alphabet's length (idx(any) = |A|).
const noSymbol = -1

// Alphabet is a finite ordered set of byte symbols plus one distinguished
// wildcard ("any") symbol not present in the ordered set. It is immutable
// after construction and safe to share by reference across states, tables
// and HMMs, the way the teacher's Alphabet type (TuftsBCB-seq/BergerLab-seq
// seq.Alphabet) is shared across HMM nodes.
type Alphabet struct {
	symbols []byte
	any     byte
	index   [256]int // byte -> index in symbols, or noSymbol/any-index
}

// NewAlphabet builds an Alphabet from an ordered, duplicate-free list of
// symbols and a wildcard symbol that must not appear in that list.
func NewAlphabet(symbols []byte, any byte) (*Alphabet, error) {
	a := &Alphabet{
		symbols: append([]byte(nil), symbols...),
		any:     any,
	}
	for i := range a.index {
		a.index[i] = noSymbol
	}
	for i, s := range a.symbols {
		if s == any {
			return nil, errors.Wrapf(ErrDuplicateSymbol, "wildcard %q present in symbol list", any)
		}
		if a.index[s] != noSymbol {
			return nil, errors.Wrapf(ErrDuplicateSymbol, "symbol %q repeated", s)
		}
		a.index[s] = i
	}
	a.index[any] = len(a.symbols)
	glog.V(3).Infof("imm: alphabet created, %d symbols + wildcard %q", len(a.symbols), any)
	return a, nil
}

// NewBaseAlphabet is a convenience constructor for the 4-symbol nucleotide
// alphabets that BaseTable and CodonTable require. It mirrors the
// nmm_base_abc_create precondition from the original C library: the
// underlying alphabet must have exactly 4 ordered symbols.
func NewBaseAlphabet(symbols [4]byte, any byte) (*Alphabet, error) {
	return NewAlphabet(symbols[:], any)
}

// Len returns |A|, excluding the wildcard.
func (a *Alphabet) Len() int {
	return len(a.symbols)
}

// Any returns the wildcard symbol.
func (a *Alphabet) Any() byte {
	return a.any
}

// Symbols returns the ordered symbol tuple (excluding the wildcard). The
// caller must not modify the returned slice.
func (a *Alphabet) Symbols() []byte {
	return a.symbols
}

// HasSymbol reports whether b is a member of A or equals the wildcard.
func (a *Alphabet) HasSymbol(b byte) bool {
	return a.index[b] != noSymbol
}

// Idx returns the index of symbol b: its position in the ordered tuple, or
// |A| for the wildcard. Returns noSymbol (-1) if b is not in A nor the
// wildcard.
func (a *Alphabet) Idx(b byte) int {
	return a.index[b]
}

// SymbolAt returns the symbol at position i (0 <= i < Len()), or the
// wildcard when i == Len().
func (a *Alphabet) SymbolAt(i int) byte {
	if i == len(a.symbols) {
		return a.any
	}
	return a.symbols[i]
}
