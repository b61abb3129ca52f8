package nn

import (
	"math"
	"testing"
)

func TestActivationValues(t *testing.T) {
	cases := []struct {
		kind string
		x    float64
		want float64
	}{
		{"Linear", -1.5, -1.5},
		{"ReLU", 2, 2},
		{"ReLU", -2, 0},
		{"LeakyReLU", -2, -0.02},
		{"ELU", 3, 3},
		{"ELU", -1, 0.1 * (math.Exp(-1) - 1)},
		{"GELU", 0, 0},
		{"Gaussian", 0, 1},
		{"Binary", 0.1, 1},
		{"Binary", 0, 0},
		{"SoftStep", 0, 0.5},
		{"SoftSign", 1, 0.5},
		{"SoftSign", -3, -0.75},
		{"TanH", 0, 0},
		{"ArcTan", 1, math.Pi / 4},
		{"ISRU", 0, 0},
		{"ISRU", 1, 1 / math.Sqrt2},
		{"Swish", 0, 0},
	}
	for _, c := range cases {
		a, err := ResolveActivation(c.kind)
		if err != nil {
			t.Fatalf("resolve %s: %v", c.kind, err)
		}
		got := a.Value(c.x)
		if math.Abs(got-c.want) > 1e-12 {
			t.Errorf("%s(%v) = %v, want %v", c.kind, c.x, got, c.want)
		}
	}
}

// Large-magnitude inputs must not blow up the exponential forms.
func TestActivationOverflowGuards(t *testing.T) {
	for _, kind := range ListActivations() {
		a, err := ResolveActivation(kind)
		if err != nil {
			t.Fatalf("resolve %s: %v", kind, err)
		}
		for _, x := range []float64{1e6, -1e6, 1e4, -1e4, 1e200, -1e200} {
			y := a.Value(x)
			if math.IsNaN(y) || math.IsInf(y, 0) {
				t.Errorf("%s(%v) = %v", kind, x, y)
			}
			d := a.Derivative(x)
			if math.IsNaN(d) || math.IsInf(d, 0) {
				t.Errorf("%s'(%v) = %v", kind, x, d)
			}
		}
	}
}

func TestSoftStepSaturation(t *testing.T) {
	a, _ := ResolveActivation("SoftStep")
	if got := a.Value(1e6); got != 1 {
		t.Fatalf("SoftStep(1e6) = %v", got)
	}
	if got := a.Value(-1e6); got < 0 || got > 1e-300 {
		t.Fatalf("SoftStep(-1e6) = %v", got)
	}
}
