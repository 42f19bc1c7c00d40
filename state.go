package imm

// State is the uniform interface every emission-state variant implements:
// Normal, Mute, Table, Frame. It is a tagged-variant polymorphism (§9 of the
// spec) rather than a C-style vtable, so the HMM graph stays agnostic to
// which concrete variant it holds. Identity is by object, not by Name —
// two distinct *NormalState values with the same name are different states.
type State interface {
	// Name returns the state's advisory (non-identifying) label.
	Name() string

	// Lprob returns the log-probability of emitting ss under this state.
	// Returns negInf, never an error, when ss is outside [MinSeq, MaxSeq]
	// or otherwise impossible.
	Lprob(ss Subsequence) float64

	// MinSeq and MaxSeq bound the number of symbols this state consumes
	// on a single step.
	MinSeq() int
	MaxSeq() int
}

// NormalState emits exactly one symbol, scored against a Dist.
type NormalState struct {
	name string
	dist *Dist
}

// NewNormalState creates a Normal state with a fixed length-1 emission.
func NewNormalState(name string, dist *Dist) *NormalState {
	return &NormalState{name: name, dist: dist}
}

func (s *NormalState) Name() string { return s.name }
func (s *NormalState) MinSeq() int  { return 1 }
func (s *NormalState) MaxSeq() int  { return 1 }

// Lprob returns dist.Lprob(ss[0]) when |ss| == 1, else negInf.
func (s *NormalState) Lprob(ss Subsequence) float64 {
	if ss.Len() != 1 {
		return negInf
	}
	return s.dist.Lprob(ss.Bytes()[0])
}

// MuteState is a zero-length (epsilon-emitting) state. Lprob is 0 (certain)
// for the empty subsequence and negInf otherwise.
type MuteState struct {
	name string
}

// NewMuteState creates a Mute state.
func NewMuteState(name string) *MuteState {
	return &MuteState{name: name}
}

func (s *MuteState) Name() string { return s.name }
func (s *MuteState) MinSeq() int  { return 0 }
func (s *MuteState) MaxSeq() int  { return 0 }

func (s *MuteState) Lprob(ss Subsequence) float64 {
	if ss.Len() != 0 {
		return negInf
	}
	return 0
}

// TableState looks up its emission likelihood directly in a SeqTable,
// restricted to the table's tracked [min_len, max_len] range.
type TableState struct {
	name  string
	table *SeqTable
}

// NewTableState creates a Table state backed by table.
func NewTableState(name string, table *SeqTable) *TableState {
	return &TableState{name: name, table: table}
}

func (s *TableState) Name() string { return s.name }
func (s *TableState) MinSeq() int  { return s.table.MinLen() }
func (s *TableState) MaxSeq() int  { return s.table.MaxLen() }

func (s *TableState) Lprob(ss Subsequence) float64 {
	if ss.Len() < s.table.MinLen() || ss.Len() > s.table.MaxLen() {
		return negInf
	}
	return s.table.Lprob(ss)
}
