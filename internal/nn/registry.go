package nn

import (
	"fmt"
	"sort"
	"strings"
)

// Activation pairs a forward function with its analytic derivative. The
// set is closed: configs name members of this table, resolved once at
// load time, so there is no runtime registration surface.
type Activation struct {
	Name       string
	Value      func(x float64) float64
	Derivative func(x float64) float64
}

var activationTable = map[string]*Activation{}

func init() {
	for _, a := range []*Activation{
		{Name: "Linear", Value: linearValue, Derivative: linearDerivative},
		{Name: "ReLU", Value: reluValue, Derivative: reluDerivative},
		{Name: "LeakyReLU", Value: leakyReLUValue, Derivative: leakyReLUDerivative},
		{Name: "ELU", Value: eluValue, Derivative: eluDerivative},
		{Name: "GELU", Value: geluValue, Derivative: geluDerivative},
		{Name: "Gaussian", Value: gaussianValue, Derivative: gaussianDerivative},
		{Name: "Binary", Value: binaryValue, Derivative: binaryDerivative},
		{Name: "SoftStep", Value: softStepValue, Derivative: softStepDerivative},
		{Name: "SoftSign", Value: softSignValue, Derivative: softSignDerivative},
		{Name: "TanH", Value: tanhValue, Derivative: tanhDerivative},
		{Name: "ArcTan", Value: arcTanValue, Derivative: arcTanDerivative},
		{Name: "ISRU", Value: isruValue, Derivative: isruDerivative},
		{Name: "Swish", Value: swishValue, Derivative: swishDerivative},
	} {
		activationTable[strings.ToLower(a.Name)] = a
	}
	// Common alias for the logistic sigmoid.
	activationTable["sigmoid"] = activationTable["softstep"]
}

// ResolveActivation looks an activation up by name, case-insensitively.
func ResolveActivation(name string) (*Activation, error) {
	a, ok := activationTable[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownActivation, name)
	}
	return a, nil
}

// ListActivations returns the canonical activation names, sorted.
func ListActivations() []string {
	seen := map[string]bool{}
	names := make([]string, 0, len(activationTable))
	for _, a := range activationTable {
		if seen[a.Name] {
			continue
		}
		seen[a.Name] = true
		names = append(names, a.Name)
	}
	sort.Strings(names)
	return names
}
