package twoport

// CommonSourceToGate re-derives common-gate admittance parameters from
// common-source admittance parameters by exchanging the gate and source
// terminals. The sign and combination rules are fixed:
//
//	Y11g = Y11s + Y12s + Y21s + Y22s
//	Y12g = -(Y12s + Y22s)
//	Y21g = -(Y21s + Y22s)
//	Y22g = Y22s
func CommonSourceToGate(ys TwoPort) TwoPort {
	return TwoPort{
		P11: ys.P11 + ys.P12 + ys.P21 + ys.P22,
		P12: -(ys.P12 + ys.P22),
		P21: -(ys.P21 + ys.P22),
		P22: ys.P22,
	}
}
