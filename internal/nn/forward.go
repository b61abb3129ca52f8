package nn

import "fmt"

// Forward runs one propagation tick: it commits the previous tick's
// outputs into the previous-tick slots, then evaluates every neuron in
// schedule order and returns the declared-output vector. The result is
// a pure function of (graph weights/biases, previous-tick memory, input
// vector).
func Forward(g *Graph, sched *Schedule, st *State, input []float64) ([]float64, error) {
	if len(input) != len(g.inputs) {
		return nil, fmt.Errorf("%w: got %d input values, want %d", ErrArity, len(input), len(g.inputs))
	}

	// Tick boundary commit. Doing it on entry rather than on exit keeps
	// the previous-tick slots stable through a following Learn call, so
	// learning resolves back edges against the same values this pass
	// consumed.
	copy(st.previous, st.current)
	copy(st.input, input)

	for _, i := range sched.Order {
		neuron := g.neurons[i]
		sum := neuron.Bias
		for k, syn := range neuron.In {
			sum += syn.Weight * st.sourceValue(sched, i, k, syn)
		}
		st.preact[i] = sum
		st.current[i] = neuron.Activation.Value(sum)
	}
	st.ticked = true

	out := make([]float64, len(g.outputIdx))
	for j, idx := range g.outputIdx {
		out[j] = st.current[idx]
	}
	return out, nil
}
