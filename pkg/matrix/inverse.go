package matrix

import (
	"fmt"

	"github.com/edp1096/cs2cg/pkg/twoport"
)

// Inverse inverts a two-port matrix by LU factorization, solving one column of
// the identity at a time. Unlike twoport.Invert it reports a singular matrix
// as an error.
func Inverse(t twoport.TwoPort) (twoport.TwoPort, error) {
	if !t.IsFinite() {
		return twoport.TwoPort{}, fmt.Errorf("non-finite matrix %v", t)
	}

	m, err := NewMatrix(2)
	if err != nil {
		return twoport.TwoPort{}, err
	}
	defer m.Destroy()

	entries := [2][2]complex128{{t.P11, t.P12}, {t.P21, t.P22}}
	for i := range 2 {
		for j := range 2 {
			if err := m.AddComplexElement(i+1, j+1, entries[i][j]); err != nil {
				return twoport.TwoPort{}, err
			}
		}
	}

	if err := m.Factor(); err != nil {
		return twoport.TwoPort{}, err
	}

	var cols [2][2]complex128
	for j := range 2 {
		m.ClearRHS()
		if err := m.SetComplexRHS(j+1, 1); err != nil {
			return twoport.TwoPort{}, err
		}
		if err := m.Solve(); err != nil {
			return twoport.TwoPort{}, fmt.Errorf("column %d: %v", j+1, err)
		}
		cols[j] = [2]complex128{m.ComplexSolution(1), m.ComplexSolution(2)}
	}

	inv := twoport.New(cols[0][0], cols[1][0], cols[0][1], cols[1][1])
	if !inv.IsFinite() {
		return twoport.TwoPort{}, fmt.Errorf("singular matrix %v", t)
	}
	return inv, nil
}
