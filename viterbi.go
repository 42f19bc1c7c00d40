package imm

import (
	"math"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// backPointer records how a DP cell's optimum was reached: a step of length
// k out of predecessor state index pred, or pred == -1 when the cell is
// itself the first step of the path (no incoming transition charged, only
// the destination state's own start log-probability).
type backPointer struct {
	k    int
	pred int
}

// viterbiTable holds one decode's V/B matrices, sized (T+1) x len(h.states).
type viterbiTable struct {
	h     *HMM
	win   Subsequence
	t     int // T = win.Len()
	v     [][]float64
	b     [][]backPointer
	order []int // topological order of live mute-state indices
}

// better reports whether (cand, k, pred) beats (best, bestK, bestPred) under
// the tie-break "higher score first, then lower k, then lower predecessor
// registration order" (a fresh start, pred == -1, ranks after every real
// predecessor in a tie).
func better(cand float64, k, pred int, best float64, bestK, bestPred int) bool {
	if cand > best {
		return true
	}
	if cand < best || isNegInf(cand) {
		return false
	}
	if k != bestK {
		return k < bestK
	}
	pa, pb := pred, bestPred
	if pa == -1 {
		pa = math.MaxInt32
	}
	if pb == -1 {
		pb = math.MaxInt32
	}
	return pa < pb
}

// muteTopoOrder returns live mute-state indices ordered so that every
// mute->mute edge runs from an earlier to a later position, or an
// ErrMuteCycle if the mute subgraph has a cycle.
func muteTopoOrder(h *HMM) ([]int, error) {
	var mutes []int
	for i, s := range h.states {
		if h.live[i] {
			if _, ok := s.(*MuteState); ok {
				mutes = append(mutes, i)
			}
		}
	}
	indeg := make(map[int]int, len(mutes))
	for _, i := range mutes {
		indeg[i] = 0
	}
	for _, i := range mutes {
		for _, j := range mutes {
			if i != j && !isNegInf(h.trans[i][j]) {
				indeg[j]++
			}
		}
	}
	var queue []int
	for _, i := range mutes {
		if indeg[i] == 0 {
			queue = append(queue, i)
		}
	}
	order := make([]int, 0, len(mutes))
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		order = append(order, i)
		for _, j := range mutes {
			if i != j && !isNegInf(h.trans[i][j]) {
				indeg[j]--
				if indeg[j] == 0 {
					queue = append(queue, j)
				}
			}
		}
	}
	if len(order) != len(mutes) {
		return nil, errors.Wrap(ErrMuteCycle, "mute subgraph has a cycle")
	}
	return order, nil
}

// decodeWindow runs the Viterbi recurrence over win, a single contiguous
// observation window, returning the best path ending at end together with
// its log-likelihood. A negInf result with a nil path means no path reaches
// end within this window.
func decodeWindow(h *HMM, win Subsequence, end State) (float64, *Path, error) {
	endIdx, ok := h.index[end]
	if !ok || !h.live[endIdx] {
		return negInf, nil, errors.Wrapf(ErrUnknownState, "end state %q", end.Name())
	}

	order, err := muteTopoOrder(h)
	if err != nil {
		return negInf, nil, err
	}

	n := len(h.states)
	T := win.Len()
	tbl := &viterbiTable{h: h, win: win, t: T, order: order}
	tbl.v = make([][]float64, T+1)
	tbl.b = make([][]backPointer, T+1)

	empty, _ := win.Slice(0, 0)

	for t := 0; t <= T; t++ {
		tbl.v[t] = make([]float64, n)
		tbl.b[t] = make([]backPointer, n)
		for i := range tbl.v[t] {
			tbl.v[t][i] = negInf
			tbl.b[t][i] = backPointer{k: 0, pred: -1}
		}

		if t > 0 {
			glog.V(5).Infof("imm: viterbi column %d/%d", t, T)
			for i, s := range h.states {
				if !h.live[i] {
					continue
				}
				if _, mute := s.(*MuteState); mute {
					continue
				}
				tbl.fillEmitting(i, s, t)
			}
		}

		tbl.fillMute(t, empty)
	}

	loglik := tbl.v[T][endIdx]
	if isNegInf(loglik) {
		return negInf, nil, nil
	}

	path := NewPath()
	curT, curI := T, endIdx
	for {
		bp := tbl.b[curT][curI]
		path.Prepend(h.states[curI], bp.k)
		if bp.pred == -1 {
			break
		}
		curT -= bp.k
		curI = bp.pred
	}
	return loglik, path, nil
}

// fillEmitting computes V[t][i] for a non-mute state, considering every
// admissible step length k (the state's own [MinSeq,MaxSeq] clamped to
// >=1 and <=t) and, for each k, every live predecessor's value at column
// t-k plus the edge's transition log-probability, along with the
// "fresh start" alternative of s being the very first state in the path
// (valid only when k == t, i.e. s's own emission covers the whole window).
func (tbl *viterbiTable) fillEmitting(i int, s State, t int) {
	h := tbl.h
	minK := s.MinSeq()
	if minK < 1 {
		minK = 1
	}
	maxK := s.MaxSeq()
	if maxK > t {
		maxK = t
	}

	best, bestK, bestPred := negInf, 0, -1
	for k := minK; k <= maxK; k++ {
		ss, err := tbl.win.Slice(t-k, k)
		if err != nil {
			continue
		}
		emitLp := s.Lprob(ss)
		if isNegInf(emitLp) {
			continue
		}

		if k == t {
			cand := logMul(h.StartLprob(s), emitLp)
			if better(cand, k, -1, best, bestK, bestPred) {
				best, bestK, bestPred = cand, k, -1
			}
		}

		for p := range h.states {
			if !h.live[p] {
				continue
			}
			prev := tbl.v[t-k][p]
			if isNegInf(prev) {
				continue
			}
			trans := h.trans[p][i]
			if isNegInf(trans) {
				continue
			}
			cand := logMul(logMul(prev, trans), emitLp)
			if better(cand, k, p, best, bestK, bestPred) {
				best, bestK, bestPred = cand, k, p
			}
		}
	}
	tbl.v[t][i] = best
	tbl.b[t][i] = backPointer{k: bestK, pred: bestPred}
}

// fillMute resolves every live mute state's V[t][*] in topological order,
// since a mute state may chain from another mute state at the very same
// column (both consume zero symbols). At t == 0 a mute state may also be
// the fresh first step of the path.
func (tbl *viterbiTable) fillMute(t int, empty Subsequence) {
	h := tbl.h
	glog.V(6).Infof("imm: viterbi mute pass at column %d", t)
	for _, i := range tbl.order {
		s := h.states[i]
		best, bestK, bestPred := negInf, 0, -1

		if t == 0 {
			cand := logMul(h.StartLprob(s), s.Lprob(empty))
			if better(cand, 0, -1, best, bestK, bestPred) {
				best, bestK, bestPred = cand, 0, -1
			}
		}

		for p := range h.states {
			if !h.live[p] {
				continue
			}
			prev := tbl.v[t][p]
			if isNegInf(prev) {
				continue
			}
			trans := h.trans[p][i]
			if isNegInf(trans) {
				continue
			}
			cand := logMul(prev, trans)
			if better(cand, 0, p, best, bestK, bestPred) {
				best, bestK, bestPred = cand, 0, p
			}
		}
		tbl.v[t][i] = best
		tbl.b[t][i] = backPointer{k: bestK, pred: bestPred}
	}
}

// Viterbi decodes seq against h, returning a Result for each window.
// window == 0 decodes the whole sequence in one pass, producing one
// Result. window > 0 splits seq into ceil(T/window) consecutive,
// non-overlapping windows (the last one possibly shorter), decoding each
// independently as if it were the full sequence, and returns one Result
// per window in order.
func Viterbi(h *HMM, seq *Sequence, end State, window int) (*Results, error) {
	if window < 0 {
		return nil, errors.Wrapf(ErrOutOfRange, "negative window %d", window)
	}

	results := NewResults(seq)

	if window == 0 {
		whole := seq.Whole()
		loglik, path, err := decodeWindow(h, whole, end)
		if err != nil {
			return nil, err
		}
		results.add(loglik, whole, path)
		return results, nil
	}

	T := seq.Len()
	numWindows := (T + window - 1) / window
	if numWindows == 0 {
		numWindows = 1
	}
	for wi := 0; wi < numWindows; wi++ {
		start := wi * window
		length := window
		if start+length > T {
			length = T - start
		}
		sub, err := seq.Slice(start, length)
		if err != nil {
			return nil, err
		}
		loglik, path, err := decodeWindow(h, sub, end)
		if err != nil {
			return nil, err
		}
		results.add(loglik, sub, path)
	}
	return results, nil
}
