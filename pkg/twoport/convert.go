package twoport

// All conversions divide by their determinant as-is. A singular network gives
// Inf/NaN entries, which callers must inspect rather than expect an error.

// SToY converts S-parameters to normalized Y-parameters.
func SToY(s TwoPort) TwoPort {
	det := SToYDet(s)
	return TwoPort{
		P11: ((1-s.P11)*(1+s.P22) + s.P12*s.P21) / det,
		P12: -2 * s.P12 / det,
		P21: -2 * s.P21 / det,
		P22: ((1+s.P11)*(1-s.P22) + s.P12*s.P21) / det,
	}
}

// SToYDet returns (1+S11)(1+S22) - S12*S21.
func SToYDet(s TwoPort) complex128 {
	return (1+s.P11)*(1+s.P22) - s.P12*s.P21
}

// YToS converts normalized Y-parameters to S-parameters.
func YToS(y TwoPort) TwoPort {
	det := YToSDet(y)
	return TwoPort{
		P11: ((1-y.P11)*(1+y.P22) + y.P12*y.P21) / det,
		P12: -2 * y.P12 / det,
		P21: -2 * y.P21 / det,
		P22: ((1+y.P11)*(1-y.P22) + y.P12*y.P21) / det,
	}
}

// YToSDet returns (1+Y11)(1+Y22) - Y12*Y21.
func YToSDet(y TwoPort) complex128 {
	return (1+y.P11)*(1+y.P22) - y.P12*y.P21
}

// SToZ converts S-parameters to Z-parameters in ohms.
func SToZ(s TwoPort, z0 float64) TwoPort {
	det := SToZDet(s)
	r := complex(z0, 0)
	return TwoPort{
		P11: r * ((1+s.P11)*(1-s.P22) + s.P12*s.P21) / det,
		P12: r * (2 * s.P12) / det,
		P21: r * (2 * s.P21) / det,
		P22: r * ((1+s.P22)*(1-s.P11) + s.P12*s.P21) / det,
	}
}

// SToZDet returns (1-S11)(1-S22) - S12*S21.
func SToZDet(s TwoPort) complex128 {
	return (1-s.P11)*(1-s.P22) - s.P12*s.P21
}

// ZToS converts Z-parameters in ohms to S-parameters.
func ZToS(z TwoPort, z0 float64) TwoPort {
	n := Normalize(z, z0)
	det := ZToSDet(n)
	return TwoPort{
		P11: ((n.P11-1)*(n.P22+1) - n.P12*n.P21) / det,
		P12: 2 * n.P12 / det,
		P21: 2 * n.P21 / det,
		P22: ((n.P11+1)*(n.P22-1) - n.P12*n.P21) / det,
	}
}

// ZToSDet returns (1+z11)(1+z22) - z12*z21 for normalized z.
func ZToSDet(z TwoPort) complex128 {
	return (z.P11+1)*(z.P22+1) - z.P12*z.P21
}

// Normalize divides every entry by z0.
func Normalize(z TwoPort, z0 float64) TwoPort {
	r := complex(z0, 0)
	return TwoPort{P11: z.P11 / r, P12: z.P12 / r, P21: z.P21 / r, P22: z.P22 / r}
}

// Denormalize multiplies every entry by z0.
func Denormalize(z TwoPort, z0 float64) TwoPort {
	return z.Scale(complex(z0, 0))
}

// Invert returns the matrix inverse. With normalized parameters this maps
// Y to Z and back.
func Invert(t TwoPort) TwoPort {
	det := t.Det()
	return TwoPort{
		P11: t.P22 / det,
		P12: -t.P12 / det,
		P21: -t.P21 / det,
		P22: t.P11 / det,
	}
}

func YToZ(y TwoPort) TwoPort { return Invert(y) }

func ZToY(z TwoPort) TwoPort { return Invert(z) }
