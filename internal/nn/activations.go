package nn

import "math"

const (
	leakySlope = 0.01
	eluAlpha   = 0.1
	// math.Exp overflows past ~709.78; clamping the argument keeps the
	// exponential forms finite for any input.
	expArgLimit = 709.0
)

// expSafe is math.Exp with the argument clamped to avoid overflow to +Inf.
func expSafe(x float64) float64 {
	if x > expArgLimit {
		x = expArgLimit
	} else if x < -expArgLimit {
		x = -expArgLimit
	}
	return math.Exp(x)
}

// sigmoid evaluates the logistic function in its numerically stable form.
func sigmoid(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + expSafe(-x))
	}
	e := expSafe(x)
	return e / (1 + e)
}

func linearValue(x float64) float64 { return x }

func reluValue(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

func leakyReLUValue(x float64) float64 {
	if x > 0 {
		return x
	}
	return leakySlope * x
}

func eluValue(x float64) float64 {
	if x > 0 {
		return x
	}
	return eluAlpha * (expSafe(x) - 1)
}

const (
	geluScale = 0.7978845608028654 // sqrt(2/pi)
	geluCubic = 0.044715
)

// geluValue is the tanh approximation of GELU.
func geluValue(x float64) float64 {
	inner := geluScale * (x + geluCubic*x*x*x)
	return 0.5 * x * (1 + math.Tanh(inner))
}

func gaussianValue(x float64) float64 {
	return expSafe(-(x * x))
}

func binaryValue(x float64) float64 {
	if x > 0 {
		return 1
	}
	return 0
}

func softStepValue(x float64) float64 { return sigmoid(x) }

func softSignValue(x float64) float64 {
	return x / (1 + math.Abs(x))
}

func tanhValue(x float64) float64 { return math.Tanh(x) }

func arcTanValue(x float64) float64 { return math.Atan(x) }

func isruValue(x float64) float64 {
	return x / math.Sqrt(1+x*x)
}

func swishValue(x float64) float64 {
	return x * sigmoid(x)
}
