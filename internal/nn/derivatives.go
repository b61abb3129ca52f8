package nn

import "math"

// Derivatives are the exact analytic derivatives of the forward forms in
// activations.go, evaluated at the pre-activation weighted sum. The
// learning engine relies on this algebraic correspondence; a numeric
// approximation here would bias every gradient step.

func linearDerivative(float64) float64 { return 1 }

func reluDerivative(x float64) float64 {
	if x > 0 {
		return 1
	}
	return 0
}

func leakyReLUDerivative(x float64) float64 {
	if x > 0 {
		return 1
	}
	return leakySlope
}

func eluDerivative(x float64) float64 {
	if x > 0 {
		return 1
	}
	return eluAlpha * expSafe(x)
}

func geluDerivative(x float64) float64 {
	inner := geluScale * (x + geluCubic*x*x*x)
	t := math.Tanh(inner)
	sech2 := 1 - t*t
	// tanh saturates to exactly ±1 around |x| ≈ 25, far below where x²
	// overflows; once it has, the correction term is an exact zero and
	// multiplying it out would produce 0·Inf for huge x.
	if sech2 == 0 {
		return 0.5 * (1 + t)
	}
	return 0.5*(1+t) + 0.5*x*sech2*geluScale*(1+3*geluCubic*x*x)
}

func gaussianDerivative(x float64) float64 {
	return -2 * x * expSafe(-(x * x))
}

// The step function has zero slope everywhere it is differentiable.
func binaryDerivative(float64) float64 { return 0 }

func softStepDerivative(x float64) float64 {
	s := sigmoid(x)
	return s * (1 - s)
}

func softSignDerivative(x float64) float64 {
	d := 1 + math.Abs(x)
	return 1 / (d * d)
}

func tanhDerivative(x float64) float64 {
	y := math.Tanh(x)
	return 1 - y*y
}

func arcTanDerivative(x float64) float64 {
	return 1 / (1 + x*x)
}

func isruDerivative(x float64) float64 {
	r := 1 / math.Sqrt(1+x*x)
	return r * r * r
}

func swishDerivative(x float64) float64 {
	s := sigmoid(x)
	return s + x*s*(1-s)
}
