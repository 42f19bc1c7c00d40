package imm

import "github.com/pkg/errors"

// Sentinel errors for the three violation kinds the spec distinguishes from
// "not found / impossible" (which is surfaced as -inf, never as an error).
// Mutators wrap one of these with errors.Wrapf to carry the offending
// name, matching the errors.Wrap/Wrapf idiom used across the retrieved
// corpus (e.g. unikmer's cmd/map.go, LexicMap's cmd/index.go) rather than
// building ad-hoc fmt.Errorf chains at each call site.
var (
	// ErrDuplicateSymbol: alphabet construction saw a repeated symbol, or
	// the wildcard symbol appeared in the ordered symbol list.
	ErrDuplicateSymbol = errors.New("imm: duplicate symbol in alphabet")

	// ErrOutOfRange: a subsequence slice fell outside its parent's bounds, or
	// Viterbi was given a negative window.
	ErrOutOfRange = errors.New("imm: index out of range")

	// ErrSymbolNotInAlphabet: a sequence byte is not a member of its alphabet.
	ErrSymbolNotInAlphabet = errors.New("imm: symbol not in alphabet")

	// ErrDuplicateState: HMM.AddState called with an already-registered state.
	ErrDuplicateState = errors.New("imm: state already registered")

	// ErrUnknownState: a transition or deletion referenced a state that is
	// not a member of the HMM.
	ErrUnknownState = errors.New("imm: unknown state")

	// ErrNonNormalisable: Normalize was asked to rescale a distribution (or
	// HMM row) whose total mass is zero (logsumexp == -inf).
	ErrNonNormalisable = errors.New("imm: nothing to normalize, total mass is zero")

	// ErrMuteCycle: the mute subgraph (mute -> mute transitions) contains a
	// cycle, so topological order does not exist.
	ErrMuteCycle = errors.New("imm: cycle in mute state subgraph")
)
