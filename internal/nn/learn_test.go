package nn

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"mmnn/internal/model"
)

func TestLearnRequiresForward(t *testing.T) {
	net, err := NewNetwork(validConfig())
	if err != nil {
		t.Fatalf("network: %v", err)
	}
	if _, err := net.Learn([]float64{1}, 0.1); !errors.Is(err, ErrLearnWithoutForward) {
		t.Fatalf("got %v, want ErrLearnWithoutForward", err)
	}

	if _, err := net.Propagate([]float64{1}); err != nil {
		t.Fatalf("propagate: %v", err)
	}
	if _, err := net.Learn([]float64{1}, 0.1); err != nil {
		t.Fatalf("learn: %v", err)
	}
	// One Learn per Forward.
	if _, err := net.Learn([]float64{1}, 0.1); !errors.Is(err, ErrLearnWithoutForward) {
		t.Fatalf("second learn: got %v, want ErrLearnWithoutForward", err)
	}
}

func TestLearnTargetArity(t *testing.T) {
	net, err := NewNetwork(validConfig())
	if err != nil {
		t.Fatalf("network: %v", err)
	}
	if _, err := net.Propagate([]float64{1}); err != nil {
		t.Fatalf("propagate: %v", err)
	}
	if _, err := net.Learn([]float64{1, 2}, 0.1); !errors.Is(err, ErrArity) {
		t.Fatalf("got %v, want ErrArity", err)
	}
}

func TestLearnSingleNeuronStepExact(t *testing.T) {
	net, err := NewNetwork(model.Config{
		Inputs:  []string{"x"},
		Outputs: []string{"n"},
		Neurons: []model.NeuronDef{
			{Name: "n", Activation: "Linear", Bias: 0.1, Synapses: []model.SynapseDef{{Source: "x", Weight: 0.5}}},
		},
	})
	if err != nil {
		t.Fatalf("network: %v", err)
	}

	out, err := net.Propagate([]float64{1})
	if err != nil {
		t.Fatalf("propagate: %v", err)
	}
	if out[0] != 0.6 {
		t.Fatalf("forward: %v", out[0])
	}

	loss, err := net.Learn([]float64{1}, 0.5)
	if err != nil {
		t.Fatalf("learn: %v", err)
	}
	// e = 0.6 - 1 = -0.4, loss = e^2/2
	if math.Abs(loss-0.08) > 1e-15 {
		t.Fatalf("loss: %v", loss)
	}
	g := net.Graph()
	if w, _ := g.Weight("x", "n"); math.Abs(w-0.7) > 1e-15 {
		t.Fatalf("weight after step: %v, want 0.7", w)
	}
	if b, _ := g.Bias("n"); math.Abs(b-0.3) > 1e-15 {
		t.Fatalf("bias after step: %v, want 0.3", b)
	}
}

// A two-neuron chain must route error through the pre-update weight.
func TestLearnRoutesErrorThroughChain(t *testing.T) {
	net, err := NewNetwork(model.Config{
		Inputs:  []string{"x"},
		Outputs: []string{"b"},
		Neurons: []model.NeuronDef{
			{Name: "a", Activation: "Linear", Synapses: []model.SynapseDef{{Source: "x", Weight: 2}}},
			{Name: "b", Activation: "Linear", Synapses: []model.SynapseDef{{Source: "a", Weight: 3}}},
		},
	})
	if err != nil {
		t.Fatalf("network: %v", err)
	}

	out, err := net.Propagate([]float64{1})
	if err != nil {
		t.Fatalf("propagate: %v", err)
	}
	if out[0] != 6 {
		t.Fatalf("forward: %v", out[0])
	}

	loss, err := net.Learn([]float64{0}, 0.01)
	if err != nil {
		t.Fatalf("learn: %v", err)
	}
	if loss != 18 {
		t.Fatalf("loss: %v", loss)
	}

	// delta_b = 6; w_b = 3 - 0.01*6*2 = 2.88; routed = 6*3 = 18
	// delta_a = 18; w_a = 2 - 0.01*18*1 = 1.82
	g := net.Graph()
	if w, _ := g.Weight("a", "b"); math.Abs(w-2.88) > 1e-12 {
		t.Fatalf("w_b: %v", w)
	}
	if w, _ := g.Weight("x", "a"); math.Abs(w-1.82) > 1e-12 {
		t.Fatalf("w_a: %v", w)
	}
	if b, _ := g.Bias("b"); math.Abs(b+0.06) > 1e-12 {
		t.Fatalf("bias_b: %v", b)
	}
	if b, _ := g.Bias("a"); math.Abs(b+0.18) > 1e-12 {
		t.Fatalf("bias_a: %v", b)
	}
}

// Feedback edges take no gradient within a tick. On the first tick the
// self-loop weight also sees a zero previous value, so it must come out
// of Learn untouched while the input weight moves.
func TestLearnTruncatesAtBackEdge(t *testing.T) {
	net, err := NewNetwork(model.Config{
		Inputs:  []string{"x"},
		Outputs: []string{"n"},
		Neurons: []model.NeuronDef{
			{Name: "n", Activation: "Linear", Synapses: []model.SynapseDef{
				{Source: "x", Weight: 1},
				{Source: "n", Weight: 0.5},
			}},
		},
	})
	if err != nil {
		t.Fatalf("network: %v", err)
	}

	if _, err := net.Propagate([]float64{1}); err != nil {
		t.Fatalf("propagate: %v", err)
	}
	if _, err := net.Learn([]float64{0}, 0.1); err != nil {
		t.Fatalf("learn: %v", err)
	}

	g := net.Graph()
	if w, _ := g.Weight("n", "n"); w != 0.5 {
		t.Fatalf("self-loop weight moved on zero previous value: %v", w)
	}
	if w, _ := g.Weight("x", "n"); w == 1 {
		t.Fatal("input weight did not move")
	}

	// Second tick: previous value is nonzero, so the self-loop weight
	// updates against it, still without routing gradient.
	if _, err := net.Propagate([]float64{1}); err != nil {
		t.Fatalf("propagate: %v", err)
	}
	if _, err := net.Learn([]float64{0}, 0.1); err != nil {
		t.Fatalf("learn: %v", err)
	}
	if w, _ := g.Weight("n", "n"); w == 0.5 {
		t.Fatal("self-loop weight ignored nonzero previous value")
	}
}

// Training a single logistic neuron on the boolean target functions
// must show window-over-window squared error decay.
func TestLearnBooleanFunctionsConverge(t *testing.T) {
	targets := map[string]func(a, b float64) float64{
		"AND": func(a, b float64) float64 {
			if a == 1 && b == 1 {
				return 1
			}
			return 0
		},
		"OR": func(a, b float64) float64 {
			if a == 1 || b == 1 {
				return 1
			}
			return 0
		},
		"NOR": func(a, b float64) float64 {
			if a == 0 && b == 0 {
				return 1
			}
			return 0
		},
	}

	const (
		pairs      = 30000
		windowSize = 5000
		rate       = 0.1
	)

	for name, fn := range targets {
		t.Run(name, func(t *testing.T) {
			net, err := NewNetwork(model.Config{
				Inputs:  []string{"a", "b"},
				Outputs: []string{"o"},
				Neurons: []model.NeuronDef{
					{Name: "o", Activation: "SoftStep", Bias: 0.1, Synapses: []model.SynapseDef{
						{Source: "a", Weight: 0.3}, {Source: "b", Weight: -0.2},
					}},
				},
			})
			if err != nil {
				t.Fatalf("network: %v", err)
			}

			rng := rand.New(rand.NewSource(42))
			var windows []float64
			sum := 0.0
			for i := 0; i < pairs; i++ {
				a, b := float64(rng.Intn(2)), float64(rng.Intn(2))
				if _, err := net.Propagate([]float64{a, b}); err != nil {
					t.Fatalf("propagate: %v", err)
				}
				loss, err := net.Learn([]float64{fn(a, b)}, rate)
				if err != nil {
					t.Fatalf("learn: %v", err)
				}
				sum += loss
				if (i+1)%windowSize == 0 {
					windows = append(windows, sum/windowSize)
					sum = 0
				}
			}

			for i := 1; i < len(windows); i++ {
				if windows[i] > windows[i-1]*1.02+1e-9 {
					t.Fatalf("window error rose: %v", windows)
				}
			}
			first, last := windows[0], windows[len(windows)-1]
			if last >= first/2 {
				t.Fatalf("insufficient decay: first=%v last=%v", first, last)
			}
			if last > 0.05 {
				t.Fatalf("final window error too high: %v", last)
			}
		})
	}
}
