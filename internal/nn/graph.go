package nn

import (
	"fmt"

	"mmnn/internal/model"
)

// Synapse is one resolved incoming edge. SourceIndex points into the
// declared-input list when IsInput is set, otherwise into the graph's
// neuron store.
type Synapse struct {
	Source      string
	Weight      float64
	IsInput     bool
	SourceIndex int
}

// Neuron is the runtime form of a config NeuronDef: bias, resolved
// activation, incoming synapses in declaration order.
type Neuron struct {
	Name       string
	Bias       float64
	Activation *Activation
	In         []Synapse
}

// Graph is the validated in-memory network. Neurons live in a flat
// declaration-ordered store indexed by name; cycles are plain index
// references, never pointer cycles, so feedback costs nothing to
// represent and the schedule can mark it explicitly.
type Graph struct {
	inputs     []string
	outputs    []string
	outputIdx  []int
	neurons    []*Neuron
	index      map[string]int
	inputIndex map[string]int
}

// Build validates a config and constructs the graph. Every failure is an
// ErrInvalidConfig naming the offending identifier.
func Build(cfg model.Config) (*Graph, error) {
	if len(cfg.Inputs) == 0 {
		return nil, fmt.Errorf("%w: no inputs declared", ErrInvalidConfig)
	}
	if len(cfg.Outputs) == 0 {
		return nil, fmt.Errorf("%w: no outputs declared", ErrInvalidConfig)
	}

	g := &Graph{
		inputs:     append([]string(nil), cfg.Inputs...),
		outputs:    append([]string(nil), cfg.Outputs...),
		index:      make(map[string]int, len(cfg.Neurons)),
		inputIndex: make(map[string]int, len(cfg.Inputs)),
	}

	for i, name := range g.inputs {
		if _, dup := g.inputIndex[name]; dup {
			return nil, fmt.Errorf("%w: duplicate input %q", ErrInvalidConfig, name)
		}
		g.inputIndex[name] = i
	}

	for _, def := range cfg.Neurons {
		if _, dup := g.index[def.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate neuron %q", ErrInvalidConfig, def.Name)
		}
		if _, taken := g.inputIndex[def.Name]; taken {
			return nil, fmt.Errorf("%w: neuron %q collides with an input name", ErrInvalidConfig, def.Name)
		}
		activation, err := ResolveActivation(def.Activation)
		if err != nil {
			return nil, fmt.Errorf("%w: neuron %q: %v", ErrInvalidConfig, def.Name, err)
		}
		g.index[def.Name] = len(g.neurons)
		g.neurons = append(g.neurons, &Neuron{
			Name:       def.Name,
			Bias:       def.Bias,
			Activation: activation,
		})
	}

	// Synapse sources resolve in a second pass so forward references
	// between neurons work regardless of declaration order.
	for i, def := range cfg.Neurons {
		neuron := g.neurons[i]
		for _, syn := range def.Synapses {
			resolved := Synapse{Source: syn.Source, Weight: syn.Weight}
			if idx, ok := g.inputIndex[syn.Source]; ok {
				resolved.IsInput = true
				resolved.SourceIndex = idx
			} else if idx, ok := g.index[syn.Source]; ok {
				resolved.SourceIndex = idx
			} else {
				return nil, fmt.Errorf("%w: neuron %q: synapse source %q does not exist", ErrInvalidConfig, def.Name, syn.Source)
			}
			neuron.In = append(neuron.In, resolved)
		}
	}

	seenOutputs := make(map[string]bool, len(g.outputs))
	for _, name := range g.outputs {
		if seenOutputs[name] {
			return nil, fmt.Errorf("%w: duplicate output %q", ErrInvalidConfig, name)
		}
		seenOutputs[name] = true
		idx, ok := g.index[name]
		if !ok {
			return nil, fmt.Errorf("%w: output %q does not name a neuron", ErrInvalidConfig, name)
		}
		g.outputIdx = append(g.outputIdx, idx)
	}

	return g, nil
}

// Inputs returns the declared input names in order.
func (g *Graph) Inputs() []string { return g.inputs }

// Outputs returns the declared output names in order.
func (g *Graph) Outputs() []string { return g.outputs }

// Len returns the neuron count.
func (g *Graph) Len() int { return len(g.neurons) }

// Neuron looks a neuron up by name.
func (g *Graph) Neuron(name string) (*Neuron, bool) {
	idx, ok := g.index[name]
	if !ok {
		return nil, false
	}
	return g.neurons[idx], true
}

// Weight returns the weight of the synapse from source into target.
func (g *Graph) Weight(source, target string) (float64, error) {
	syn, err := g.findSynapse(source, target)
	if err != nil {
		return 0, err
	}
	return syn.Weight, nil
}

// SetWeight overwrites the weight of the synapse from source into target.
func (g *Graph) SetWeight(source, target string, weight float64) error {
	syn, err := g.findSynapse(source, target)
	if err != nil {
		return err
	}
	syn.Weight = weight
	return nil
}

// Bias returns a neuron's bias.
func (g *Graph) Bias(name string) (float64, error) {
	neuron, ok := g.Neuron(name)
	if !ok {
		return 0, fmt.Errorf("no neuron %q", name)
	}
	return neuron.Bias, nil
}

// SetBias overwrites a neuron's bias.
func (g *Graph) SetBias(name string, bias float64) error {
	neuron, ok := g.Neuron(name)
	if !ok {
		return fmt.Errorf("no neuron %q", name)
	}
	neuron.Bias = bias
	return nil
}

func (g *Graph) findSynapse(source, target string) (*Synapse, error) {
	neuron, ok := g.Neuron(target)
	if !ok {
		return nil, fmt.Errorf("no neuron %q", target)
	}
	for i := range neuron.In {
		if neuron.In[i].Source == source {
			return &neuron.In[i], nil
		}
	}
	return nil, fmt.Errorf("no synapse %s -> %s", source, target)
}

// Snapshot renders the graph back into the config schema it was built
// from: same topology and declaration order, current weights and biases,
// canonical activation casing.
func (g *Graph) Snapshot() model.Config {
	cfg := model.Config{
		Inputs:  append([]string(nil), g.inputs...),
		Outputs: append([]string(nil), g.outputs...),
	}
	for _, neuron := range g.neurons {
		def := model.NeuronDef{
			Name:       neuron.Name,
			Activation: neuron.Activation.Name,
			Bias:       neuron.Bias,
		}
		for _, syn := range neuron.In {
			def.Synapses = append(def.Synapses, model.SynapseDef{Source: syn.Source, Weight: syn.Weight})
		}
		cfg.Neurons = append(cfg.Neurons, def)
	}
	return cfg
}
