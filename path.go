package imm

// Step is one (state, emission-length) pair in a Path. emission-length must
// lie in [state.MinSeq(), state.MaxSeq()]; this is enforced by whoever
// constructs the step (the Viterbi engine, or a caller building a path by
// hand), not by Step itself.
type Step struct {
	state  State
	length int
	next   *Step
	prev   *Step
}

// State returns the step's state.
func (s *Step) State() State { return s.state }

// Length returns the number of symbols this step emits.
func (s *Step) Length() int { return s.length }

// Path is an ordered, doubly-linked list of Steps supporting O(1) append and
// prepend and forward-only iteration via First/Next, matching the spec's
// imm_path_append/imm_path_prepend/imm_path_first/imm_path_next interface.
// The empty path is valid.
type Path struct {
	head *Step
	tail *Step
	size int
}

// NewPath returns an empty path.
func NewPath() *Path {
	return &Path{}
}

// Len returns the number of steps.
func (p *Path) Len() int { return p.size }

// Append adds a (state, length) step at the end of the path in O(1).
func (p *Path) Append(state State, length int) *Step {
	step := &Step{state: state, length: length}
	if p.tail == nil {
		p.head = step
		p.tail = step
	} else {
		step.prev = p.tail
		p.tail.next = step
		p.tail = step
	}
	p.size++
	return step
}

// Prepend adds a (state, length) step at the start of the path in O(1).
func (p *Path) Prepend(state State, length int) *Step {
	step := &Step{state: state, length: length}
	if p.head == nil {
		p.head = step
		p.tail = step
	} else {
		step.next = p.head
		p.head.prev = step
		p.head = step
	}
	p.size++
	return step
}

// First returns the first step, or nil for an empty path.
func (p *Path) First() *Step { return p.head }

// Next returns the step following s, or nil at the end of the path.
func (p *Path) Next(s *Step) *Step { return s.next }

// TotalLength returns the sum of every step's emission length.
func (p *Path) TotalLength() int {
	total := 0
	for s := p.First(); s != nil; s = p.Next(s) {
		total += s.Length()
	}
	return total
}

// Clone returns a deep copy of the path; the returned path owns its own
// Steps and is independent of p.
func (p *Path) Clone() *Path {
	cp := NewPath()
	for s := p.First(); s != nil; s = p.Next(s) {
		cp.Append(s.State(), s.Length())
	}
	return cp
}
