package core

import "testing"

func TestRNGDeterministicStreams(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 64; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("streams diverged at draw %d", i)
		}
	}

	c := NewRNG(43)
	same := true
	d := NewRNG(42)
	for i := 0; i < 16; i++ {
		if c.Float64() != d.Float64() {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds should produce different streams")
	}
}

func TestJitterBounds(t *testing.T) {
	rng := NewRNG(7)
	for i := 0; i < 1000; i++ {
		j := rng.Jitter(0.1)
		if j < -0.05 || j >= 0.05 {
			t.Fatalf("jitter %f outside (-0.05, 0.05)", j)
		}
	}
}
