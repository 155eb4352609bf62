package matrix

import (
	"fmt"

	"github.com/edp1096/sparse"
)

// ComplexMatrix is a small complex system A x = b backed by the sparse LU
// solver. Indices are 1-based like the solver's.
type ComplexMatrix struct {
	Size         int
	matrix       *sparse.Matrix
	rhs          []float64
	rhsImag      []float64
	solution     []float64
	solutionImag []float64
	config       *sparse.Configuration
}

func NewMatrix(size int) (*ComplexMatrix, error) {
	config := &sparse.Configuration{
		Real:                    true,
		Complex:                 true,
		SeparatedComplexVectors: true,
		Expandable:              true,
		Translate:               false,
		ModifiedNodal:           true,
		TiesMultiplier:          5,
		PrinterWidth:            140,
		Annotate:                0,
	}

	mat, err := sparse.Create(int64(size), config)
	if err != nil {
		return nil, fmt.Errorf("creating sparse matrix: %v", err)
	}

	return &ComplexMatrix{
		Size:         size,
		matrix:       mat,
		rhs:          make([]float64, size+1), // 1-based indexing
		rhsImag:      make([]float64, size+1),
		solution:     make([]float64, size+1),
		solutionImag: make([]float64, size+1),
		config:       config,
	}, nil
}

func (m *ComplexMatrix) inBounds(i int) bool {
	return i > 0 && i <= m.Size
}

func (m *ComplexMatrix) AddComplexElement(i, j int, value complex128) error {
	if !m.inBounds(i) || !m.inBounds(j) {
		return fmt.Errorf("matrix index out of bounds (i=%d, j=%d, size=%d)", i, j, m.Size)
	}

	element := m.matrix.GetElement(int64(i), int64(j))
	element.Real += real(value)
	element.Imag += imag(value)
	return nil
}

func (m *ComplexMatrix) SetComplexRHS(i int, value complex128) error {
	if !m.inBounds(i) {
		return fmt.Errorf("rhs index out of bounds (i=%d, size=%d)", i, m.Size)
	}
	m.rhs[i] = real(value)
	m.rhsImag[i] = imag(value)
	return nil
}

func (m *ComplexMatrix) ClearRHS() {
	for i := range m.rhs {
		m.rhs[i] = 0
		m.rhsImag[i] = 0
	}
}

func (m *ComplexMatrix) Factor() error {
	if err := m.matrix.Factor(); err != nil {
		return fmt.Errorf("matrix factorization failed: %v", err)
	}
	return nil
}

// Solve uses the current factorization, so Factor must be called after the
// last element change.
func (m *ComplexMatrix) Solve() error {
	var err error
	m.solution, m.solutionImag, err = m.matrix.SolveComplex(m.rhs, m.rhsImag)
	if err != nil {
		return fmt.Errorf("matrix solve failed: %v", err)
	}
	return nil
}

func (m *ComplexMatrix) ComplexSolution(i int) complex128 {
	if !m.inBounds(i) || i >= len(m.solution) || i >= len(m.solutionImag) {
		return 0
	}
	return complex(m.solution[i], m.solutionImag[i])
}

func (m *ComplexMatrix) Destroy() {
	if m.matrix != nil {
		m.matrix.Destroy()
		m.matrix = nil
	}
}
