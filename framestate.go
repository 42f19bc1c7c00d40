package imm

import "math"

// FrameState models codon observation with per-nucleotide insertion/deletion
// noise: the intended codon (x,y,z) is observed as a run sigma of length
// 1..5, where a pair of per-position error events (survive-or-delete on each
// of the 3 codon positions, plus up to 2 independent insertions drawn from
// the background) explain any departure from the literal 3-symbol codon.
//
// As epsilon -> 0 every hypothesis carrying an indel vanishes, leaving only
// the exact-length-3, exact-match hypothesis: Lprob converges to the codon
// table's entry for sigma and to -inf for any other observed length, which
// is the sanity property the spec requires of this state.
type FrameState struct {
	name    string
	base    *BaseTable
	codons  *CodonTable
	epsilon float64
	ell     float64 // log(1-epsilon)
	epsHat  float64 // log(epsilon)
}

// NewFrameState creates a Frame state. epsilon is the per-position indel
// rate and must be in [0, 1/2).
func NewFrameState(name string, base *BaseTable, codons *CodonTable, epsilon float64) *FrameState {
	return &FrameState{
		name:    name,
		base:    base,
		codons:  codons,
		epsilon: epsilon,
		ell:     math.Log1p(-epsilon),
		epsHat:  math.Log(epsilon),
	}
}

func (s *FrameState) Name() string { return s.name }
func (s *FrameState) MinSeq() int  { return 1 }
func (s *FrameState) MaxSeq() int  { return 5 }

// Lprob is the marginal emission likelihood of ss, defined only for
// |ss| in {1..5}: logsumexp over all 64 concrete codons of
// c[(x,y,z)] + joint(ss, (x,y,z)).
func (s *FrameState) Lprob(ss Subsequence) float64 {
	n := ss.Len()
	if n < 1 || n > 5 {
		return negInf
	}
	obs := ss.Bytes()
	var terms []float64
	s.eachCodon(func(t Triplet) {
		c := s.codons.Lprob(t)
		if isNegInf(c) {
			return
		}
		terms = append(terms, logMul(c, s.joint(obs, t)))
	})
	return logSumExp(terms...)
}

// Lposterior returns c[codon] + L_|sigma|(sigma|codon) - lprob(sigma), the
// posterior log-probability of codon having produced sigma.
func (s *FrameState) Lposterior(codon Triplet, ss Subsequence) float64 {
	total := s.Lprob(ss)
	if isNegInf(total) {
		return negInf
	}
	c := s.codons.Lprob(codon)
	joint := logMul(c, s.joint(ss.Bytes(), codon))
	return logMul(joint, -total)
}

// Decode returns the codon maximising c[codon] + L_|sigma|(sigma|codon),
// with ties broken by lexicographic order of the triplet (A < C < G < T in
// the underlying alphabet's symbol order), and the winning joint log-prob.
func (s *FrameState) Decode(ss Subsequence) (Triplet, float64) {
	obs := ss.Bytes()
	abc := s.codons.Alphabet()
	best := Triplet{}
	bestScore := negInf
	haveBest := false
	s.eachCodon(func(t Triplet) {
		c := s.codons.Lprob(t)
		if isNegInf(c) {
			return
		}
		score := logMul(c, s.joint(obs, t))
		if !haveBest || score > bestScore || (score == bestScore && lessTriplet(abc, t, best)) {
			best = t
			bestScore = score
			haveBest = true
		}
	})
	return best, bestScore
}

func lessTriplet(abc *Alphabet, a, b Triplet) bool {
	if a.A != b.A {
		return abc.Idx(a.A) < abc.Idx(b.A)
	}
	if a.B != b.B {
		return abc.Idx(a.B) < abc.Idx(b.B)
	}
	return abc.Idx(a.C) < abc.Idx(b.C)
}

// eachCodon iterates the 64 concrete (non-wildcard) codons in the base
// alphabet's order.
func (s *FrameState) eachCodon(fn func(Triplet)) {
	abc := s.codons.Alphabet()
	syms := abc.Symbols()
	for _, a := range syms {
		for _, b := range syms {
			for _, c := range syms {
				fn(Triplet{a, b, c})
			}
		}
	}
}

// joint computes L_n(obs | codon) = logsumexp over every (k, survivor-set,
// match-set) hypothesis consistent with n = len(obs): k of the 3 codon
// positions survive in order, (3-k) are deleted, and the (n-k) observed
// positions not used by survivors are insertions scored against the
// background base distribution.
func (s *FrameState) joint(obs []byte, codon Triplet) float64 {
	n := len(obs)
	codonSyms := [3]byte{codon.A, codon.B, codon.C}

	var terms []float64
	minK := n - 2
	if minK < 1 {
		minK = 1
	}
	maxK := 3
	if n < maxK {
		maxK = n
	}
	for k := minK; k <= maxK; k++ {
		deletions := 3 - k
		insertions := n - k
		errorEvents := deletions + insertions
		epsTerm := 0.0
		if errorEvents > 0 {
			epsTerm = float64(errorEvents) * s.epsHat
		}
		prefix := logMul(float64(k)*s.ell, epsTerm)

		for _, survivors := range combinations(3, k) {
			for _, matched := range combinations(n, k) {
				term := prefix
				for i := 0; i < k; i++ {
					term = logMul(term, matchFactor(codonSyms[survivors[i]], obs[matched[i]], s.base))
					if isNegInf(term) {
						break
					}
				}
				if isNegInf(term) {
					continue
				}
				insSet := complement(n, matched)
				for _, j := range insSet {
					term = logMul(term, s.base.Lprob(obs[j]))
					if isNegInf(term) {
						break
					}
				}
				terms = append(terms, term)
			}
		}
	}
	return logSumExp(terms...)
}

// matchFactor scores a surviving codon position against the observed
// symbol it aligns to. A literal match costs nothing (indels, not
// substitutions, are the only modelled noise). A wildcard observation is
// compatible with any base, scored via the base table's explicit wildcard
// entry rather than derived from the codon symbol.
func matchFactor(codonSym, obsSym byte, base *BaseTable) float64 {
	if obsSym == codonSym {
		return 0
	}
	if obsSym == base.Alphabet().Any() {
		return base.Lprob(obsSym)
	}
	return negInf
}

// combinations returns every size-k subset of {0,...,m-1}, each in
// increasing order, enumerated in lexicographic order.
func combinations(m, k int) [][]int {
	if k < 0 || k > m {
		return nil
	}
	if k == 0 {
		return [][]int{{}}
	}
	var res [][]int
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		res = append(res, append([]int(nil), idx...))
		i := k - 1
		for i >= 0 && idx[i] == m-k+i {
			i--
		}
		if i < 0 {
			break
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
	return res
}

// complement returns {0,...,n-1} \ subset, where subset is sorted.
func complement(n int, subset []int) []int {
	in := make([]bool, n)
	for _, i := range subset {
		in[i] = true
	}
	var res []int
	for i := 0; i < n; i++ {
		if !in[i] {
			res = append(res, i)
		}
	}
	return res
}
