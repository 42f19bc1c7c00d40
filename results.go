package imm

// Result is one window's decode outcome: the best path's log-likelihood,
// the subsequence (window) it was computed over, and the path itself. A
// negInf log-likelihood with a nil path means no path reached the end
// state within that window.
type Result struct {
	loglik float64
	subseq Subsequence
	path   *Path
}

// Loglik returns the result's log-likelihood.
func (r *Result) Loglik() float64 {
	return r.loglik
}

// Subseq returns the window this result was decoded over, a zero-copy
// view into the original sequence passed to Viterbi.
func (r *Result) Subseq() Subsequence {
	return r.subseq
}

// Path returns the result's best path, or nil if no path was found.
func (r *Result) Path() *Path {
	return r.path
}

// Results holds one Result per decoded window, in window order, all
// referencing into a single shared parent Sequence.
type Results struct {
	seq     *Sequence
	results []*Result
}

// NewResults creates an empty Results bound to seq.
func NewResults(seq *Sequence) *Results {
	return &Results{seq: seq}
}

func (rs *Results) add(loglik float64, subseq Subsequence, path *Path) {
	rs.results = append(rs.results, &Result{loglik: loglik, subseq: subseq, path: path})
}

// Sequence returns the shared parent sequence every result's subseq views
// into.
func (rs *Results) Sequence() *Sequence {
	return rs.seq
}

// Size returns the number of results.
func (rs *Results) Size() int {
	return len(rs.results)
}

// Get returns the i-th result.
func (rs *Results) Get(i int) *Result {
	return rs.results[i]
}
