package nn

import "fmt"

// SquaredError returns the half sum of squared differences between the
// output and target vectors, the loss the learning engine descends.
func SquaredError(outputs, targets []float64) (float64, error) {
	if len(outputs) != len(targets) {
		return 0, fmt.Errorf("%w: got %d target values, want %d", ErrArity, len(targets), len(outputs))
	}
	loss := 0.0
	for i := range outputs {
		d := outputs[i] - targets[i]
		loss += 0.5 * d * d
	}
	return loss, nil
}

// squaredErrorGrad is the loss derivative for one output component.
func squaredErrorGrad(output, target float64) float64 {
	return output - target
}
