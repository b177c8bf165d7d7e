package regression

import "math"

// StudentTPValue returns the two-sided p-value for a t-statistic with the
// given degrees of freedom, i.e. P(|T| >= |t|) under the null hypothesis
// that the slope is zero. Uses the identity
//
//	P(|T| >= t) = I_{df/(df+t²)}(df/2, 1/2)
//
// where I is the regularized incomplete beta function.
func StudentTPValue(t float64, df int) float64 {
	if df <= 0 {
		return math.NaN()
	}
	if math.IsInf(t, 0) {
		return 0
	}
	v := float64(df)
	return incompleteBeta(v/2, 0.5, v/(v+t*t))
}

// incompleteBeta computes the regularized incomplete beta function I_x(a, b)
// by Lentz's continued fraction, split at the symmetry point for convergence.
func incompleteBeta(a, b, x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}

	lnBeta, _ := math.Lgamma(a + b)
	lnA, _ := math.Lgamma(a)
	lnB, _ := math.Lgamma(b)
	front := math.Exp(lnBeta - lnA - lnB + a*math.Log(x) + b*math.Log(1-x))

	if x < (a+1)/(a+b+2) {
		return front * betaContinuedFraction(a, b, x) / a
	}
	return 1 - front*betaContinuedFraction(b, a, 1-x)/b
}

func betaContinuedFraction(a, b, x float64) float64 {
	const (
		maxIterations = 200
		epsilon       = 3e-16
		tiny          = 1e-300
	)

	qab := a + b
	qap := a + 1
	qam := a - 1

	c := 1.0
	d := 1 - qab*x/qap
	if math.Abs(d) < tiny {
		d = tiny
	}
	d = 1 / d
	h := d

	for m := 1; m <= maxIterations; m++ {
		m2 := float64(2 * m)
		mf := float64(m)

		aa := mf * (b - mf) * x / ((qam + m2) * (a + m2))
		d = 1 + aa*d
		if math.Abs(d) < tiny {
			d = tiny
		}
		c = 1 + aa/c
		if math.Abs(c) < tiny {
			c = tiny
		}
		d = 1 / d
		h *= d * c

		aa = -(a + mf) * (qab + mf) * x / ((a + m2) * (qap + m2))
		d = 1 + aa*d
		if math.Abs(d) < tiny {
			d = tiny
		}
		c = 1 + aa/c
		if math.Abs(c) < tiny {
			c = tiny
		}
		d = 1 / d
		delta := d * c
		h *= delta

		if math.Abs(delta-1) < epsilon {
			break
		}
	}
	return h
}
