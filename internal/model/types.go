package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// Config is the on-disk network description: declared input and output
// names plus the neuron map. Declaration order of neurons and of each
// neuron's synapses is significant (it drives scheduling tie-breaks and
// deterministic summation), so Config keeps slices rather than maps and
// carries its own JSON codec (see config.go).
type Config struct {
	Inputs  []string
	Outputs []string
	Neurons []NeuronDef
}

// NeuronDef is one neuron's stored form. Activation defaults to
// "Linear", Bias to 0 and Synapses to empty when omitted.
type NeuronDef struct {
	Name       string
	Activation string
	Bias       float64
	Synapses   []SynapseDef
}

// SynapseDef is one weighted incoming edge. Source names either a
// declared input or another neuron.
type SynapseDef struct {
	Source string
	Weight float64
}

// RunRecord summarizes one completed (or interrupted-at-a-tick-boundary)
// learn run for the run-history store.
type RunRecord struct {
	VersionedRecord
	ID               string  `json:"id"`
	CreatedAtUTC     string  `json:"created_at_utc"`
	ConfigPath       string  `json:"config_path"`
	OutputPath       string  `json:"output_path"`
	LearningRate     float64 `json:"learning_rate"`
	WindowSize       int     `json:"window_size"`
	Pairs            int     `json:"pairs"`
	FinalWindowError float64 `json:"final_window_error"`
}
