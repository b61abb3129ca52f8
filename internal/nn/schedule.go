package nn

import "fmt"

// Schedule is the cached per-graph evaluation plan: a dependency-first
// neuron order plus the set of synapses classified as feedback (back)
// edges. Topology never changes between ticks, so one schedule serves
// the whole run.
type Schedule struct {
	// Order holds neuron indices; every non-back-edge source precedes
	// its consumer, ties broken by declaration order.
	Order []int

	// back[target][k] marks the k-th incoming synapse of neuron target
	// as a feedback edge.
	back [][]bool
}

const (
	colorWhite = iota
	colorGray
	colorBlack
)

// NewSchedule linearizes the graph with a depth-first traversal seeded
// in declaration order. An edge whose source is still open on the
// traversal stack (including the neuron itself) is a back edge:
// excluded from the ordering constraint and resolved against
// previous-tick memory by the forward and learning engines.
func NewSchedule(g *Graph) (*Schedule, error) {
	n := len(g.neurons)
	s := &Schedule{
		Order: make([]int, 0, n),
		back:  make([][]bool, n),
	}
	for i, neuron := range g.neurons {
		s.back[i] = make([]bool, len(neuron.In))
	}

	color := make([]int, n)
	var visit func(i int)
	visit = func(i int) {
		color[i] = colorGray
		for k, syn := range g.neurons[i].In {
			if syn.IsInput {
				continue
			}
			switch color[syn.SourceIndex] {
			case colorGray:
				s.back[i][k] = true
			case colorWhite:
				visit(syn.SourceIndex)
			}
		}
		color[i] = colorBlack
		s.Order = append(s.Order, i)
	}
	for i := 0; i < n; i++ {
		if color[i] == colorWhite {
			visit(i)
		}
	}

	if err := s.verify(g); err != nil {
		return nil, err
	}
	return s, nil
}

// verify re-checks the linearization: with back edges removed, every
// remaining dependency must be satisfied by the order. A failure here
// is a scheduler bug, not bad user input.
func (s *Schedule) verify(g *Graph) error {
	if len(s.Order) != len(g.neurons) {
		return fmt.Errorf("%w: ordered %d of %d neurons", ErrScheduleInvariant, len(s.Order), len(g.neurons))
	}
	pos := make([]int, len(g.neurons))
	for p, idx := range s.Order {
		pos[idx] = p
	}
	for i, neuron := range g.neurons {
		for k, syn := range neuron.In {
			if syn.IsInput || s.back[i][k] {
				continue
			}
			if pos[syn.SourceIndex] >= pos[i] {
				return fmt.Errorf("%w: %s not resolved before %s", ErrScheduleInvariant, syn.Source, neuron.Name)
			}
		}
	}
	return nil
}

// IsBack reports whether the k-th incoming synapse of neuron target is
// a feedback edge.
func (s *Schedule) IsBack(target, k int) bool {
	return s.back[target][k]
}

// BackEdges lists the feedback edges as (source, target) name pairs in
// declaration order.
func (s *Schedule) BackEdges(g *Graph) [][2]string {
	var edges [][2]string
	for i, neuron := range g.neurons {
		for k, syn := range neuron.In {
			if s.back[i][k] {
				edges = append(edges, [2]string{syn.Source, neuron.Name})
			}
		}
	}
	return edges
}
