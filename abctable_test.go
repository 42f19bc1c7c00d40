package imm

import (
	"math"
	"testing"
)

func TestDistLprob(t *testing.T) {
	abc, err := NewAlphabet([]byte("ACGT"), '*')
	if err != nil {
		t.Fatalf("NewAlphabet: %v", err)
	}
	lp := math.Log(0.25)
	d := NewDist(abc, []float64{lp, lp, lp, lp, 0})
	for _, sym := range []byte("ACGT") {
		if got := d.Lprob(sym); math.Abs(got-lp) > 1e-12 {
			t.Errorf("Lprob(%q) = %v, want %v", sym, got, lp)
		}
	}
	if got := d.Lprob('*'); got != 0 {
		t.Errorf("Lprob('*') = %v, want 0", got)
	}
	if got := d.Lprob('N'); got != negInf {
		t.Errorf("Lprob('N') = %v, want negInf", got)
	}
}
