package imm

import (
	"math"
	"testing"
)

func uniformNormalState(t *testing.T, abc *Alphabet, name string) *NormalState {
	t.Helper()
	lp := math.Log(0.25)
	dist := NewDist(abc, []float64{lp, lp, lp, lp, negInf})
	return NewNormalState(name, dist)
}

func TestHMMAddGetSetTrans(t *testing.T) {
	abc := testDNAAlphabet(t)
	h := NewHMM(abc)
	s1 := uniformNormalState(t, abc, "S1")
	s2 := NewMuteState("S2")

	if err := h.AddState(s1, 0); err != nil {
		t.Fatalf("AddState(s1): %v", err)
	}
	if err := h.AddState(s2, negInf); err != nil {
		t.Fatalf("AddState(s2): %v", err)
	}
	if err := h.AddState(s1, 0); err == nil {
		t.Fatal("expected ErrDuplicateState on re-adding s1")
	}

	if err := h.SetTrans(s1, s1, math.Log(0.5)); err != nil {
		t.Fatalf("SetTrans(s1,s1): %v", err)
	}
	if err := h.SetTrans(s1, s2, math.Log(0.5)); err != nil {
		t.Fatalf("SetTrans(s1,s2): %v", err)
	}

	if got := h.GetTrans(s1, s1); math.Abs(got-math.Log(0.5)) > 1e-12 {
		t.Errorf("GetTrans(s1,s1) = %v, want %v", got, math.Log(0.5))
	}
	if got := h.GetTrans(s2, s1); got != negInf {
		t.Errorf("GetTrans(s2,s1) = %v, want negInf (never set)", got)
	}
	if got := h.StartLprob(s1); got != 0 {
		t.Errorf("StartLprob(s1) = %v, want 0", got)
	}

	unknown := NewMuteState("ghost")
	if err := h.SetTrans(unknown, s1, 0); err == nil {
		t.Fatal("expected ErrUnknownState for unregistered source")
	}
	if got := h.GetTrans(unknown, s1); got != negInf {
		t.Errorf("GetTrans with unknown state = %v, want negInf", got)
	}
}

func TestHMMDelStateTombstonesTransitions(t *testing.T) {
	abc := testDNAAlphabet(t)
	h := NewHMM(abc)
	s1 := uniformNormalState(t, abc, "S1")
	s2 := NewMuteState("S2")
	s3 := NewMuteState("S3")
	for _, s := range []State{s1, s2, s3} {
		if err := h.AddState(s, 0); err != nil {
			t.Fatalf("AddState: %v", err)
		}
	}
	if err := h.SetTrans(s1, s2, 0); err != nil {
		t.Fatalf("SetTrans: %v", err)
	}
	if err := h.SetTrans(s2, s3, 0); err != nil {
		t.Fatalf("SetTrans: %v", err)
	}

	if err := h.DelState(s2); err != nil {
		t.Fatalf("DelState: %v", err)
	}
	if got := h.GetTrans(s1, s2); got != negInf {
		t.Errorf("GetTrans(s1,s2) after deleting s2 = %v, want negInf", got)
	}
	if got := h.GetTrans(s2, s3); got != negInf {
		t.Errorf("GetTrans(s2,s3) after deleting s2 = %v, want negInf", got)
	}
	live := h.States()
	for _, s := range live {
		if s == s2 {
			t.Fatal("States() still lists a deleted state")
		}
	}
	if len(live) != 2 {
		t.Fatalf("len(States()) = %d, want 2", len(live))
	}

	// s2 can be re-added as a fresh member.
	if err := h.AddState(s2, negInf); err != nil {
		t.Fatalf("AddState (re-add after delete): %v", err)
	}
}

func TestHMMNormalize(t *testing.T) {
	abc := testDNAAlphabet(t)
	h := NewHMM(abc)
	s1 := uniformNormalState(t, abc, "S1")
	s2 := uniformNormalState(t, abc, "S2")
	if err := h.AddState(s1, math.Log(2)); err != nil {
		t.Fatalf("AddState: %v", err)
	}
	if err := h.AddState(s2, math.Log(2)); err != nil {
		t.Fatalf("AddState: %v", err)
	}
	if err := h.SetTrans(s1, s2, math.Log(3)); err != nil {
		t.Fatalf("SetTrans: %v", err)
	}
	if err := h.SetTrans(s2, s1, math.Log(1)); err != nil {
		t.Fatalf("SetTrans: %v", err)
	}

	if err := h.Normalize(); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got := math.Exp(h.StartLprob(s1)) + math.Exp(h.StartLprob(s2)); math.Abs(got-1) > 1e-9 {
		t.Errorf("start distribution sums to %v, want 1", got)
	}
	if got := math.Exp(h.GetTrans(s1, s2)); math.Abs(got-1) > 1e-9 {
		t.Errorf("S1's only outgoing transition should carry all mass after Normalize, got %v", got)
	}
}

func TestHMMNormalizeFailsOnZeroMassRow(t *testing.T) {
	abc := testDNAAlphabet(t)
	h := NewHMM(abc)
	s1 := uniformNormalState(t, abc, "S1")
	if err := h.AddState(s1, 0); err != nil {
		t.Fatalf("AddState: %v", err)
	}
	// s1 has no outgoing transitions at all: its row is entirely negInf.
	if err := h.Normalize(); err == nil {
		t.Fatal("expected ErrNonNormalisable for a state with zero-mass outgoing row")
	}
}

func TestHMMLikelihood(t *testing.T) {
	abc := testDNAAlphabet(t)
	h := NewHMM(abc)
	s1 := uniformNormalState(t, abc, "S1")
	s2 := NewMuteState("S2")
	if err := h.AddState(s1, 0); err != nil {
		t.Fatalf("AddState: %v", err)
	}
	if err := h.AddState(s2, negInf); err != nil {
		t.Fatalf("AddState: %v", err)
	}
	if err := h.SetTrans(s1, s1, math.Log(0.5)); err != nil {
		t.Fatalf("SetTrans: %v", err)
	}
	if err := h.SetTrans(s1, s2, math.Log(0.5)); err != nil {
		t.Fatalf("SetTrans: %v", err)
	}

	seq, err := NewSequence(abc, []byte("ACGT"))
	if err != nil {
		t.Fatalf("NewSequence: %v", err)
	}
	path := NewPath()
	path.Append(s1, 1)
	path.Append(s1, 1)
	path.Append(s1, 1)
	path.Append(s1, 1)
	path.Append(s2, 0)

	got := h.Likelihood(seq, path)
	want := 4*math.Log(0.25) + 4*math.Log(0.5) // start(S1)=0, 4 emissions, 4 transition edges
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Likelihood = %v, want %v", got, want)
	}

	// A path whose total length doesn't match the sequence is impossible.
	short := NewPath()
	short.Append(s1, 1)
	if got := h.Likelihood(seq, short); got != negInf {
		t.Errorf("Likelihood with mismatched total length = %v, want negInf", got)
	}
}

func TestHMMLikelihoodEmptyPathEmptySeq(t *testing.T) {
	abc := testDNAAlphabet(t)
	h := NewHMM(abc)
	seq, err := NewSequence(abc, nil)
	if err != nil {
		t.Fatalf("NewSequence: %v", err)
	}
	if got := h.Likelihood(seq, NewPath()); got != 0 {
		t.Errorf("Likelihood(empty, empty) = %v, want 0", got)
	}
}
