package nn

import "mmnn/internal/model"

// Network bundles a validated graph, its cached schedule and one run's
// retained memory behind a tick-at-a-time API. This is the unit the
// session drivers and the public facade operate on.
type Network struct {
	graph *Graph
	sched *Schedule
	state *State
}

// NewNetwork builds and schedules a network from a config.
func NewNetwork(cfg model.Config) (*Network, error) {
	graph, err := Build(cfg)
	if err != nil {
		return nil, err
	}
	sched, err := NewSchedule(graph)
	if err != nil {
		return nil, err
	}
	return &Network{graph: graph, sched: sched, state: NewState(graph)}, nil
}

// Propagate runs one forward tick.
func (n *Network) Propagate(input []float64) ([]float64, error) {
	return Forward(n.graph, n.sched, n.state, input)
}

// Learn runs one backpropagation tick against the preceding Propagate
// call and returns the tick's loss.
func (n *Network) Learn(targets []float64, rate float64) (float64, error) {
	return Learn(n.graph, n.sched, n.state, targets, rate)
}

// Snapshot renders the current weights and biases in the config schema.
func (n *Network) Snapshot() model.Config {
	return n.graph.Snapshot()
}

// Reset discards retained memory, as if no tick had run yet.
func (n *Network) Reset() {
	n.state = NewState(n.graph)
}

// Inputs returns the declared input names in order.
func (n *Network) Inputs() []string { return n.graph.Inputs() }

// Outputs returns the declared output names in order.
func (n *Network) Outputs() []string { return n.graph.Outputs() }

// Graph exposes the underlying graph for weight/bias access.
func (n *Network) Graph() *Graph { return n.graph }

// EvaluationOrder returns neuron names in schedule order.
func (n *Network) EvaluationOrder() []string {
	names := make([]string, len(n.sched.Order))
	for i, idx := range n.sched.Order {
		names[i] = n.graph.neurons[idx].Name
	}
	return names
}

// FeedbackEdges returns the schedule's back edges as (source, target)
// name pairs.
func (n *Network) FeedbackEdges() [][2]string {
	return n.sched.BackEdges(n.graph)
}
