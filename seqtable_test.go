package imm

import (
	"math"
	"testing"
)

func TestSeqTableAddAndLookup(t *testing.T) {
	abc := testDNAAlphabet(t)
	tbl := NewSeqTable(abc)

	for _, entry := range []struct {
		bs   string
		lp   float64
	}{
		{"AC", math.Log(0.5)},
		{"ACG", math.Log(0.25)},
		{"ACGT", math.Log(0.25)},
	} {
		seq, err := NewSequence(abc, []byte(entry.bs))
		if err != nil {
			t.Fatalf("NewSequence(%q): %v", entry.bs, err)
		}
		tbl.Add(seq, entry.lp)
	}

	if tbl.MinLen() != 2 || tbl.MaxLen() != 4 {
		t.Fatalf("MinLen/MaxLen = %d/%d, want 2/4", tbl.MinLen(), tbl.MaxLen())
	}

	full, err := NewSequence(abc, []byte("ACG"))
	if err != nil {
		t.Fatalf("NewSequence: %v", err)
	}
	if got := tbl.Lprob(full.Whole()); math.Abs(got-math.Log(0.25)) > 1e-12 {
		t.Errorf("Lprob(ACG) = %v, want %v", got, math.Log(0.25))
	}

	missing, err := NewSequence(abc, []byte("TTTT"))
	if err != nil {
		t.Fatalf("NewSequence: %v", err)
	}
	if got := tbl.Lprob(missing.Whole()); got != negInf {
		t.Errorf("Lprob(TTTT) = %v, want negInf", got)
	}
}

func TestSeqTableNormalize(t *testing.T) {
	abc := testDNAAlphabet(t)
	tbl := NewSeqTable(abc)
	a, _ := NewSequence(abc, []byte("A"))
	c, _ := NewSequence(abc, []byte("C"))
	tbl.Add(a, math.Log(1))
	tbl.Add(c, math.Log(1))

	if err := tbl.Normalize(); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got := tbl.Lprob(a.Whole()); math.Abs(got-math.Log(0.5)) > 1e-9 {
		t.Errorf("Lprob(A) after Normalize = %v, want %v", got, math.Log(0.5))
	}
}

func TestSeqTableNormalizeEmptyFails(t *testing.T) {
	abc := testDNAAlphabet(t)
	tbl := NewSeqTable(abc)
	if err := tbl.Normalize(); err == nil {
		t.Fatal("expected ErrNonNormalisable on empty table")
	}
}
