// Package twoport holds the 2x2 complex parameter matrix of a two-port network
// and the closed-form conversions between its S, Y and Z representations.
//
// A TwoPort carries no domain or normalization tag. Whether a value holds
// scattering, admittance or impedance parameters, and whether impedance is
// normalized to Z0 or in ohms, is decided by the caller.
package twoport

import (
	"fmt"
	"math/cmplx"
)

// SingularTol is the default tolerance of Singular.
const SingularTol = 1e-15

type TwoPort struct {
	P11, P12 complex128
	P21, P22 complex128
}

func New(p11, p12, p21, p22 complex128) TwoPort {
	return TwoPort{P11: p11, P12: p12, P21: p21, P22: p22}
}

// Det returns p11*p22 - p12*p21.
func (t TwoPort) Det() complex128 {
	return t.P11*t.P22 - t.P12*t.P21
}

// AddAll adds v to every entry.
func (t TwoPort) AddAll(v complex128) TwoPort {
	return TwoPort{P11: t.P11 + v, P12: t.P12 + v, P21: t.P21 + v, P22: t.P22 + v}
}

func (t TwoPort) Scale(k complex128) TwoPort {
	return TwoPort{P11: t.P11 * k, P12: t.P12 * k, P21: t.P21 * k, P22: t.P22 * k}
}

func (t TwoPort) Entries() [4]complex128 {
	return [4]complex128{t.P11, t.P12, t.P21, t.P22}
}

// IsFinite reports whether no entry is Inf or NaN.
func (t TwoPort) IsFinite() bool {
	for _, v := range t.Entries() {
		if cmplx.IsInf(v) || cmplx.IsNaN(v) {
			return false
		}
	}
	return true
}

func (t TwoPort) String() string {
	return fmt.Sprintf("[[%g %g] [%g %g]]", t.P11, t.P12, t.P21, t.P22)
}

// Singular reports whether det is zero, non-finite or smaller than tol in
// magnitude. A tol <= 0 selects SingularTol.
func Singular(det complex128, tol float64) bool {
	if tol <= 0 {
		tol = SingularTol
	}
	if cmplx.IsNaN(det) || cmplx.IsInf(det) {
		return true
	}
	return cmplx.Abs(det) < tol
}
