package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ErrConfigSyntax wraps any structural problem in a config document:
// malformed JSON, wrong value types, or duplicate object keys.
var ErrConfigSyntax = errors.New("invalid config document")

// ParseConfig decodes a network config from JSON. encoding/json maps
// lose object key order, so this walks json.Decoder tokens directly
// and records neuron and synapse declaration order; duplicate keys
// inside one object are rejected instead of silently last-wins.
func ParseConfig(data []byte) (Config, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var cfg Config
	if err := expectDelim(dec, '{'); err != nil {
		return Config{}, err
	}
	seen := map[string]bool{}
	for dec.More() {
		key, err := readKey(dec, seen, "config")
		if err != nil {
			return Config{}, err
		}
		switch key {
		case "inputs":
			cfg.Inputs, err = readStringList(dec, "inputs")
		case "outputs":
			cfg.Outputs, err = readStringList(dec, "outputs")
		case "neurons":
			cfg.Neurons, err = readNeurons(dec)
		default:
			err = skipValue(dec)
		}
		if err != nil {
			return Config{}, err
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readNeurons(dec *json.Decoder) ([]NeuronDef, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	var defs []NeuronDef
	seen := map[string]bool{}
	for dec.More() {
		name, err := readKey(dec, seen, "neurons")
		if err != nil {
			return nil, err
		}
		def, err := readNeuron(dec, name)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return defs, nil
}

func readNeuron(dec *json.Decoder, name string) (NeuronDef, error) {
	def := NeuronDef{Name: name, Activation: "Linear"}
	if err := expectDelim(dec, '{'); err != nil {
		return NeuronDef{}, err
	}
	seen := map[string]bool{}
	for dec.More() {
		key, err := readKey(dec, seen, "neuron "+name)
		if err != nil {
			return NeuronDef{}, err
		}
		switch key {
		case "activation":
			def.Activation, err = readString(dec, "activation")
		case "bias":
			def.Bias, err = readNumber(dec, "bias")
		case "synapses":
			def.Synapses, err = readSynapses(dec, name)
		default:
			err = skipValue(dec)
		}
		if err != nil {
			return NeuronDef{}, err
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return NeuronDef{}, err
	}
	return def, nil
}

func readSynapses(dec *json.Decoder, neuron string) ([]SynapseDef, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	var defs []SynapseDef
	seen := map[string]bool{}
	for dec.More() {
		source, err := readKey(dec, seen, "synapses of "+neuron)
		if err != nil {
			return nil, err
		}
		weight, err := readNumber(dec, "synapse "+source)
		if err != nil {
			return nil, err
		}
		defs = append(defs, SynapseDef{Source: source, Weight: weight})
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return defs, nil
}

func readKey(dec *json.Decoder, seen map[string]bool, where string) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConfigSyntax, err)
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("%w: expected object key in %s", ErrConfigSyntax, where)
	}
	if seen[key] {
		return "", fmt.Errorf("%w: duplicate key %q in %s", ErrConfigSyntax, key, where)
	}
	seen[key] = true
	return key, nil
}

func readString(dec *json.Decoder, what string) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConfigSyntax, err)
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string", ErrConfigSyntax, what)
	}
	return s, nil
}

func readNumber(dec *json.Decoder, what string) (float64, error) {
	tok, err := dec.Token()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrConfigSyntax, err)
	}
	num, ok := tok.(json.Number)
	if !ok {
		return 0, fmt.Errorf("%w: %s must be a number", ErrConfigSyntax, what)
	}
	value, err := num.Float64()
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrConfigSyntax, what, err)
	}
	return value, nil
}

func readStringList(dec *json.Decoder, what string) ([]string, error) {
	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}
	var list []string
	for dec.More() {
		s, err := readString(dec, "entry of "+what)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	return list, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return fmt.Errorf("%w: unexpected end of document", ErrConfigSyntax)
		}
		return fmt.Errorf("%w: %v", ErrConfigSyntax, err)
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != want {
		return fmt.Errorf("%w: expected %q, got %v", ErrConfigSyntax, want, tok)
	}
	return nil
}

func skipValue(dec *json.Decoder) error {
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigSyntax, err)
	}
	return nil
}

// EncodeConfig renders a config back to indented JSON with neurons and
// synapses in declaration order. Weights and biases round-trip
// bit-exactly through FormatFloat/ParseFloat.
func EncodeConfig(cfg Config) []byte {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	buf.WriteString("  \"inputs\": ")
	writeStringList(&buf, cfg.Inputs)
	buf.WriteString(",\n  \"outputs\": ")
	writeStringList(&buf, cfg.Outputs)
	buf.WriteString(",\n  \"neurons\": {")
	for i, def := range cfg.Neurons {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString("\n    ")
		writeJSONString(&buf, def.Name)
		buf.WriteString(": {\n      \"activation\": ")
		writeJSONString(&buf, def.Activation)
		buf.WriteString(",\n      \"bias\": ")
		buf.WriteString(formatNumber(def.Bias))
		buf.WriteString(",\n      \"synapses\": {")
		for j, syn := range def.Synapses {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString("\n        ")
			writeJSONString(&buf, syn.Source)
			buf.WriteString(": ")
			buf.WriteString(formatNumber(syn.Weight))
		}
		if len(def.Synapses) > 0 {
			buf.WriteString("\n      ")
		}
		buf.WriteString("}\n    }")
	}
	if len(cfg.Neurons) > 0 {
		buf.WriteString("\n  ")
	}
	buf.WriteString("}\n}\n")
	return buf.Bytes()
}

func writeStringList(buf *bytes.Buffer, list []string) {
	buf.WriteByte('[')
	for i, s := range list {
		if i > 0 {
			buf.WriteString(", ")
		}
		writeJSONString(buf, s)
	}
	buf.WriteByte(']')
}

func writeJSONString(buf *bytes.Buffer, s string) {
	encoded, _ := json.Marshal(s)
	buf.Write(encoded)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ReadConfigFile loads and parses a config file.
func ReadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// WriteConfigFile writes a config in the same schema it is loaded from.
func WriteConfigFile(path string, cfg Config) error {
	return os.WriteFile(path, EncodeConfig(cfg), 0o644)
}
