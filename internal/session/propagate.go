package session

import (
	"context"
	"fmt"
	"io"
	"strings"

	"mmnn/internal/nn"
)

// PropagateOptions control output rendering.
type PropagateOptions struct {
	// Names prefixes each value with its output neuron name.
	Names bool
}

// Propagate streams forward ticks: one input vector per line in, one
// output vector per line out. A stop request is observed only between
// ticks; it ends the stream cleanly. Returns the number of ticks run.
func Propagate(ctx context.Context, net *nn.Network, in io.Reader, out io.Writer, opts PropagateOptions) (int, error) {
	sc := NewScanner(in)
	outputs := net.Outputs()
	ticks := 0
	for {
		if ctx.Err() != nil {
			return ticks, nil
		}
		vec, ok, err := sc.Next(len(net.Inputs()))
		if err != nil {
			return ticks, err
		}
		if !ok {
			return ticks, nil
		}
		values, err := net.Propagate(vec)
		if err != nil {
			return ticks, err
		}
		if _, err := fmt.Fprintln(out, renderVector(outputs, values, opts.Names)); err != nil {
			return ticks, err
		}
		ticks++
	}
}

func renderVector(names []string, values []float64, withNames bool) string {
	parts := make([]string, len(values))
	for i, v := range values {
		if withNames {
			parts[i] = names[i] + ":" + formatValue(v)
		} else {
			parts[i] = formatValue(v)
		}
	}
	return strings.Join(parts, " ")
}
