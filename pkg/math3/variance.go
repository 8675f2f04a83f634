package math3

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Variance3 is a variance matrix in 3d, kept together with its
// eigendecomposition so that callers can reason about the principal
// directions of the variation.
type Variance3 struct {
	// Sigma is the variation matrix.
	Sigma Matrix3

	// EigenValues are the variations along the eigen axes.
	EigenValues Vector3

	// Axis is the matrix whose columns are the eigenvectors of Sigma.
	Axis Matrix3
}

// NewVariance3 builds a Variance3 from a symmetric variation matrix and
// computes its eigendecomposition.
func NewVariance3(sigma Matrix3) Variance3 {
	v := Variance3{Sigma: sigma}
	v.init()
	return v
}

// init refreshes the eigendecomposition of Sigma.
func (v *Variance3) init() {
	s := mat.NewSymDense(3, []float64{
		v.Sigma[0][0], v.Sigma[0][1], v.Sigma[0][2],
		v.Sigma[1][0], v.Sigma[1][1], v.Sigma[1][2],
		v.Sigma[2][0], v.Sigma[2][1], v.Sigma[2][2],
	})

	var es mat.EigenSym
	if !es.Factorize(s, true) {
		// A symmetric 3x3 always factorizes; a failure here means the
		// matrix held NaN or Inf entries.
		panic("math3: eigendecomposition of variance matrix failed")
	}

	var values [3]float64
	es.Values(values[:])

	var vectors mat.Dense
	es.VectorsTo(&vectors)

	v.EigenValues = Vector3(values)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v.Axis[i][j] = vectors.At(i, j)
		}
	}
}

// Sqrt replaces Sigma with its matrix square root, computed from the
// eigendecomposition. This is useful when the uncertainty is initialized
// as a squared variation matrix. Negative eigenvalues are clamped to
// zero before taking the root.
func (v *Variance3) Sqrt() *Variance3 {
	var d Matrix3
	for i := 0; i < 3; i++ {
		d[i][i] = math.Sqrt(math.Max(v.EigenValues[i], 0))
	}

	v.Sigma = v.Axis.MulMat(d).MulMat(v.Axis.Transpose())
	v.init()

	return v
}
