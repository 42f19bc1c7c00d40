package imm

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// HMM is a directed graph of States with per-state start log-probabilities
// and per-edge transition log-probabilities, all in log space. Absent
// transitions read as negInf. The HMM owns its start/transition tables but
// only holds States by reference (it never frees them).
//
// States are kept in a stable-index arena (states/live/start/trans are all
// parallel, indexed identically) so that DelState can tombstone a slot
// without disturbing the indices of the states that remain — the "arena +
// tombstone" layout the spec's design notes call for instead of rebuilding
// pointer-keyed maps on every mutation.
type HMM struct {
	abc   *Alphabet
	index map[State]int

	states []State
	live   []bool
	start  []float64
	trans  [][]float64
}

// NewHMM creates an empty HMM over abc.
func NewHMM(abc *Alphabet) *HMM {
	return &HMM{abc: abc, index: map[State]int{}}
}

// Alphabet returns the HMM's alphabet.
func (h *HMM) Alphabet() *Alphabet {
	return h.abc
}

// AddState registers s with the given start log-probability (negInf if the
// state cannot start a path). Fails with ErrDuplicateState if s is already a
// member.
func (h *HMM) AddState(s State, startLprob float64) error {
	if _, ok := h.index[s]; ok {
		glog.V(1).Infof("imm: rejecting duplicate state %q", s.Name())
		return errors.Wrapf(ErrDuplicateState, "state %q", s.Name())
	}
	i := len(h.states)
	h.index[s] = i
	h.states = append(h.states, s)
	h.live = append(h.live, true)
	h.start = append(h.start, startLprob)

	for r := range h.trans {
		h.trans[r] = append(h.trans[r], negInf)
	}
	row := make([]float64, len(h.states))
	for j := range row {
		row[j] = negInf
	}
	h.trans = append(h.trans, row)

	glog.V(2).Infof("imm: added state %q at index %d, start=%v", s.Name(), i, startLprob)
	return nil
}

// DelState removes s and tombstones all of its incident transitions
// atomically: after this call, GetTrans involving s returns negInf and s
// can be re-added as a fresh state.
func (h *HMM) DelState(s State) error {
	i, ok := h.index[s]
	if !ok {
		return errors.Wrapf(ErrUnknownState, "state %q", s.Name())
	}
	delete(h.index, s)
	h.live[i] = false
	h.states[i] = nil
	h.start[i] = negInf
	for j := range h.trans[i] {
		h.trans[i][j] = negInf
	}
	for r := range h.trans {
		h.trans[r][i] = negInf
	}
	glog.V(2).Infof("imm: deleted state %q (index %d)", s.Name(), i)
	return nil
}

// SetTrans sets the transition log-probability from src to dst. Both must
// already be members.
func (h *HMM) SetTrans(src, dst State, lprob float64) error {
	i, ok := h.index[src]
	if !ok {
		return errors.Wrapf(ErrUnknownState, "source state %q", src.Name())
	}
	j, ok := h.index[dst]
	if !ok {
		return errors.Wrapf(ErrUnknownState, "destination state %q", dst.Name())
	}
	h.trans[i][j] = lprob
	return nil
}

// GetTrans returns the transition log-probability from src to dst, or
// negInf if absent or either state is unknown.
func (h *HMM) GetTrans(src, dst State) float64 {
	i, ok := h.index[src]
	if !ok {
		return negInf
	}
	j, ok := h.index[dst]
	if !ok {
		return negInf
	}
	return h.trans[i][j]
}

// StartLprob returns the start log-probability of s, or negInf if s is not
// a member or has no recorded start probability.
func (h *HMM) StartLprob(s State) float64 {
	i, ok := h.index[s]
	if !ok {
		return negInf
	}
	return h.start[i]
}

// States returns the live member states, in registration order.
func (h *HMM) States() []State {
	res := make([]State, 0, len(h.states))
	for i, s := range h.states {
		if h.live[i] {
			res = append(res, s)
		}
	}
	return res
}

// Normalize rescales the start distribution and every state's outgoing
// transition row so each sums to 1 in probability space (0 in log space).
// Fails with ErrNonNormalisable, leaving the HMM unchanged, if the start
// row or any state's outgoing row has zero total mass, and with ErrMuteCycle,
// also leaving it unchanged, if the mute subgraph contains a cycle.
func (h *HMM) Normalize() error {
	if _, err := muteTopoOrder(h); err != nil {
		return err
	}
	startVals := h.liveValues(h.start)
	z := logSumExp(startVals...)
	if isNegInf(z) {
		return errors.Wrap(ErrNonNormalisable, "start distribution has zero mass")
	}

	rowZ := make([]float64, len(h.states))
	for i := range h.states {
		if !h.live[i] {
			continue
		}
		rz := logSumExp(h.liveValues(h.trans[i])...)
		if isNegInf(rz) {
			return errors.Wrapf(ErrNonNormalisable, "outgoing transitions of state %q have zero mass", h.states[i].Name())
		}
		rowZ[i] = rz
	}

	for i := range h.start {
		if h.live[i] {
			h.start[i] = logMul(h.start[i], -z)
		}
	}
	for i := range h.states {
		if !h.live[i] {
			continue
		}
		for j := range h.trans[i] {
			if h.live[j] {
				h.trans[i][j] = logMul(h.trans[i][j], -rowZ[i])
			}
		}
	}
	glog.V(2).Infof("imm: normalized HMM with %d live states", len(h.States()))
	return nil
}

func (h *HMM) liveValues(vals []float64) []float64 {
	res := make([]float64, 0, len(vals))
	for i, v := range vals {
		if h.live[i] {
			res = append(res, v)
		}
	}
	return res
}

// Likelihood walks path against seq: start-lprob(first state) plus, for
// every step, that state's emission lprob over its slice of seq, plus every
// edge's transition lprob. Returns negInf if any term is negInf or if the
// path's total emission length does not equal seq.Len().
func (h *HMM) Likelihood(seq *Sequence, path *Path) float64 {
	first := path.First()
	if first == nil {
		if seq.Len() == 0 {
			return 0
		}
		return negInf
	}

	total := h.StartLprob(first.State())
	offset := 0
	var prev State
	for step := first; step != nil; step = path.Next(step) {
		ss, err := seq.Slice(offset, step.Length())
		if err != nil {
			return negInf
		}
		total = logMul(total, step.State().Lprob(ss))
		if prev != nil {
			total = logMul(total, h.GetTrans(prev, step.State()))
		}
		offset += step.Length()
		prev = step.State()
	}
	if offset != seq.Len() {
		return negInf
	}
	return total
}
