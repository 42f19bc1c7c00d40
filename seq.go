package imm

import "github.com/pkg/errors"

// Sequence is an immutable byte string bound to an Alphabet. Every byte must
// be a member of the alphabet (including the wildcard); this is checked once
// at construction, the same validate-on-construct discipline as
// TuftsBCB-seq/BergerLab-seq's Sequence type, but with an explicit alphabet
// membership check (those teacher types trusted the caller).
type Sequence struct {
	abc   *Alphabet
	bytes []byte
}

// NewSequence validates bs against abc and returns an immutable Sequence.
func NewSequence(abc *Alphabet, bs []byte) (*Sequence, error) {
	for i, b := range bs {
		if !abc.HasSymbol(b) {
			return nil, errors.Wrapf(ErrSymbolNotInAlphabet, "byte %q at position %d", b, i)
		}
	}
	return &Sequence{abc: abc, bytes: append([]byte(nil), bs...)}, nil
}

// Alphabet returns the sequence's alphabet.
func (s *Sequence) Alphabet() *Alphabet {
	return s.abc
}

// Len returns the number of symbols in the sequence.
func (s *Sequence) Len() int {
	return len(s.bytes)
}

// Bytes returns the raw bytes. The caller must not modify the result.
func (s *Sequence) Bytes() []byte {
	return s.bytes
}

// Whole returns a Subsequence covering the entire sequence.
func (s *Sequence) Whole() Subsequence {
	return Subsequence{seq: s, start: 0, length: len(s.bytes)}
}

// Subsequence is a zero-copy (sequence, start, length) view into a
// Sequence, mirroring TuftsBCB-seq's Sequence.Slice (which shares the
// backing array rather than copying).
type Subsequence struct {
	seq    *Sequence
	start  int
	length int
}

// Slice returns the subsequence [start, start+length) of s.
func (s *Sequence) Slice(start, length int) (Subsequence, error) {
	if start < 0 || length < 0 || start+length > len(s.bytes) {
		return Subsequence{}, errors.Wrapf(ErrOutOfRange, "slice [%d,%d) of sequence of length %d", start, start+length, len(s.bytes))
	}
	return Subsequence{seq: s, start: start, length: length}, nil
}

// Len returns the length of the subsequence.
func (ss Subsequence) Len() int {
	return ss.length
}

// Bytes returns the subsequence's bytes as a fresh slice view (shares the
// parent sequence's backing array; no copy).
func (ss Subsequence) Bytes() []byte {
	return ss.seq.bytes[ss.start : ss.start+ss.length]
}

// Alphabet returns the subsequence's alphabet.
func (ss Subsequence) Alphabet() *Alphabet {
	return ss.seq.Alphabet()
}

// Sequence returns the parent sequence.
func (ss Subsequence) Sequence() *Sequence {
	return ss.seq
}

// Start returns the subsequence's start offset within its parent.
func (ss Subsequence) Start() int {
	return ss.start
}

// String returns the subsequence's bytes as a string, used as the lookup
// key in sequence tables.
func (ss Subsequence) String() string {
	return string(ss.Bytes())
}

// Slice returns the sub-window [relStart, relStart+relLength) of ss, itself
// a zero-copy view into the same parent sequence.
func (ss Subsequence) Slice(relStart, relLength int) (Subsequence, error) {
	if relStart < 0 || relLength < 0 || relStart+relLength > ss.length {
		return Subsequence{}, errors.Wrapf(ErrOutOfRange, "slice [%d,%d) of subsequence of length %d", relStart, relStart+relLength, ss.length)
	}
	return Subsequence{seq: ss.seq, start: ss.start + relStart, length: relLength}, nil
}
