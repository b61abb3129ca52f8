// Package mmnn is the embedding facade for the micro managed neural
// network engine: load a graph config, drive it tick by tick, save the
// trained result.
package mmnn

import (
	"mmnn/internal/model"
	"mmnn/internal/nn"
)

// Network is a loaded, validated, scheduled network with one run's
// retained memory. It is not safe for concurrent use; ticks are
// strictly sequential because memory carries state between them.
type Network struct {
	net        *nn.Network
	sourcePath string
}

// Load reads, validates and schedules a network config file.
func Load(path string) (*Network, error) {
	cfg, err := model.ReadConfigFile(path)
	if err != nil {
		return nil, err
	}
	net, err := nn.NewNetwork(cfg)
	if err != nil {
		return nil, err
	}
	return &Network{net: net, sourcePath: path}, nil
}

// Parse builds a network from an in-memory config document.
func Parse(data []byte) (*Network, error) {
	cfg, err := model.ParseConfig(data)
	if err != nil {
		return nil, err
	}
	net, err := nn.NewNetwork(cfg)
	if err != nil {
		return nil, err
	}
	return &Network{net: net}, nil
}

// Propagate runs one forward tick over the input vector (declared-input
// order) and returns the declared-output vector.
func (n *Network) Propagate(input []float64) ([]float64, error) {
	return n.net.Propagate(input)
}

// Learn backpropagates the target vector against the immediately
// preceding Propagate tick and returns the tick's squared-error loss.
func (n *Network) Learn(targets []float64, rate float64) (float64, error) {
	return n.net.Learn(targets, rate)
}

// Snapshot renders current weights and biases in the config schema.
func (n *Network) Snapshot() model.Config {
	return n.net.Snapshot()
}

// SaveFile writes the snapshot to path in the load schema.
func (n *Network) SaveFile(path string) error {
	return model.WriteConfigFile(path, n.net.Snapshot())
}

// Reset clears retained memory, as if no tick had run.
func (n *Network) Reset() {
	n.net.Reset()
}

// Inputs returns the declared input names in order.
func (n *Network) Inputs() []string { return n.net.Inputs() }

// Outputs returns the declared output names in order.
func (n *Network) Outputs() []string { return n.net.Outputs() }

// SourcePath returns the file the network was loaded from, if any.
func (n *Network) SourcePath() string { return n.sourcePath }

// EvaluationOrder returns neuron names in the order one tick evaluates
// them.
func (n *Network) EvaluationOrder() []string { return n.net.EvaluationOrder() }

// FeedbackEdges returns the (source, target) pairs resolved against
// previous-tick memory.
func (n *Network) FeedbackEdges() [][2]string { return n.net.FeedbackEdges() }

// Activations lists the supported activation kinds.
func Activations() []string {
	return nn.ListActivations()
}
