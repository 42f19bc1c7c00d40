package imm

import "testing"

func testDNAAlphabet(t *testing.T) *Alphabet {
	t.Helper()
	abc, err := NewAlphabet([]byte("ACGT"), '*')
	if err != nil {
		t.Fatalf("NewAlphabet: %v", err)
	}
	return abc
}

func TestNewSequence(t *testing.T) {
	abc := testDNAAlphabet(t)
	seq, err := NewSequence(abc, []byte("ACGTACGT"))
	if err != nil {
		t.Fatalf("NewSequence: %v", err)
	}
	if seq.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", seq.Len())
	}
	if _, err := NewSequence(abc, []byte("ACGX")); err == nil {
		t.Fatal("expected error for out-of-alphabet byte")
	}
}

func TestSequenceSliceAndWhole(t *testing.T) {
	abc := testDNAAlphabet(t)
	seq, err := NewSequence(abc, []byte("ACGTACGT"))
	if err != nil {
		t.Fatalf("NewSequence: %v", err)
	}
	whole := seq.Whole()
	if whole.Len() != 8 || whole.String() != "ACGTACGT" {
		t.Fatalf("Whole() = %q (len %d), want %q (len 8)", whole.String(), whole.Len(), "ACGTACGT")
	}

	sub, err := seq.Slice(2, 3)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	if sub.String() != "GTA" {
		t.Fatalf("Slice(2,3).String() = %q, want %q", sub.String(), "GTA")
	}
	if sub.Start() != 2 {
		t.Fatalf("Start() = %d, want 2", sub.Start())
	}

	if _, err := seq.Slice(6, 4); err == nil {
		t.Fatal("expected out-of-range error")
	}
	if _, err := seq.Slice(-1, 2); err == nil {
		t.Fatal("expected out-of-range error for negative start")
	}
}

func TestSubsequenceRelativeSlice(t *testing.T) {
	abc := testDNAAlphabet(t)
	seq, err := NewSequence(abc, []byte("ACGTACGT"))
	if err != nil {
		t.Fatalf("NewSequence: %v", err)
	}
	window, err := seq.Slice(2, 5) // "GTACG"
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	inner, err := window.Slice(1, 3) // "TAC"
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	if inner.String() != "TAC" {
		t.Fatalf("inner.String() = %q, want %q", inner.String(), "TAC")
	}
	if inner.Start() != 3 {
		t.Fatalf("inner.Start() = %d, want 3 (absolute within parent)", inner.Start())
	}
	if _, err := window.Slice(0, 6); err == nil {
		t.Fatal("expected out-of-range error beyond the window's own length")
	}
}
