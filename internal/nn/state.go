package nn

// State is the retained per-run memory: each neuron's current-tick and
// previous-tick output, the pre-activation sums of the latest forward
// pass, and the input vector that pass consumed. It is owned by the
// processing loop and handed into every Forward/Learn call; it is never
// serialized with the graph.
//
// The previous-tick slot is what turns a feedback edge into a one-step
// delay: a back-edge consumer reads its source's previous value, so a
// mutually-inhibiting pair of neurons behaves like a flip-flop.
type State struct {
	current  []float64
	previous []float64
	preact   []float64
	input    []float64
	ticked   bool
}

// NewState allocates zeroed memory for one run over g. All slots start
// at 0: before the first tick a neuron has produced nothing, bias not
// yet applied.
func NewState(g *Graph) *State {
	return &State{
		current:  make([]float64, len(g.neurons)),
		previous: make([]float64, len(g.neurons)),
		preact:   make([]float64, len(g.neurons)),
		input:    make([]float64, len(g.inputs)),
	}
}

// Value returns a neuron's current-tick output by name.
func (st *State) Value(g *Graph, name string) (float64, bool) {
	idx, ok := g.index[name]
	if !ok {
		return 0, false
	}
	return st.current[idx], true
}

// sourceValue resolves what a synapse contributes this tick: the input
// vector entry for input sources, the source's previous-tick output on
// back edges, its already-computed current-tick output otherwise. The
// forward and learning engines share this rule so weight updates see
// exactly the values the forward pass multiplied.
func (st *State) sourceValue(sched *Schedule, target, k int, syn Synapse) float64 {
	if syn.IsInput {
		return st.input[syn.SourceIndex]
	}
	if sched.IsBack(target, k) {
		return st.previous[syn.SourceIndex]
	}
	return st.current[syn.SourceIndex]
}
