package nn

import "fmt"

// Learn runs one backpropagation tick against the immediately preceding
// Forward call and returns that tick's squared-error loss. Neurons are
// processed in reverse schedule order, so every downstream consumer has
// contributed its routed error before a neuron computes its own delta.
//
// Gradient is truncated at feedback edges: a back edge's weight still
// updates (against the source's previous-tick value), but no delta is
// routed through it within the tick. Unrolling through time would need
// per-tick activation history; the one-step truncation keeps learning
// local to the tick and converges on the recurrent topologies this
// engine targets.
//
// Learn mutates only weights and biases. Retained current/previous
// memory belongs to Forward and is left untouched.
func Learn(g *Graph, sched *Schedule, st *State, targets []float64, rate float64) (float64, error) {
	if !st.ticked {
		return 0, ErrLearnWithoutForward
	}
	if len(targets) != len(g.outputIdx) {
		return 0, fmt.Errorf("%w: got %d target values, want %d", ErrArity, len(targets), len(g.outputIdx))
	}

	outputs := make([]float64, len(g.outputIdx))
	for j, idx := range g.outputIdx {
		outputs[j] = st.current[idx]
	}
	loss, err := SquaredError(outputs, targets)
	if err != nil {
		return 0, err
	}

	// pending accumulates each neuron's error: the loss gradient for
	// declared outputs, plus whatever its consumers route back.
	pending := make([]float64, len(g.neurons))
	for j, idx := range g.outputIdx {
		pending[idx] += squaredErrorGrad(outputs[j], targets[j])
	}

	for i := len(sched.Order) - 1; i >= 0; i-- {
		idx := sched.Order[i]
		neuron := g.neurons[idx]
		delta := pending[idx] * neuron.Activation.Derivative(st.preact[idx])
		for k := range neuron.In {
			syn := &neuron.In[k]
			// Route the error backward through the pre-update weight;
			// back edges and input sources take no gradient.
			if !syn.IsInput && !sched.IsBack(idx, k) {
				pending[syn.SourceIndex] += delta * syn.Weight
			}
			syn.Weight -= rate * delta * st.sourceValue(sched, idx, k, *syn)
		}
		neuron.Bias -= rate * delta
	}

	// One Learn per Forward: a second call would backpropagate against
	// stale intermediates.
	st.ticked = false
	return loss, nil
}
