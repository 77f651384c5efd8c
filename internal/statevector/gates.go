package statevector

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/bloch-ml/bloch/internal/circuit"
)

var (
	invSqrt2 = complex(1/math.Sqrt2, 0)

	matH   = [4]complex128{invSqrt2, invSqrt2, invSqrt2, -invSqrt2}
	matX   = [4]complex128{0, 1, 1, 0}
	matY   = [4]complex128{0, complex(0, -1), complex(0, 1), 0}
	matZ   = [4]complex128{1, 0, 0, -1}
	matS   = [4]complex128{1, 0, 0, complex(0, 1)}
	matSdg = [4]complex128{1, 0, 0, complex(0, -1)}
	matT   = [4]complex128{1, 0, 0, cmplx.Exp(complex(0, math.Pi/4))}
	matTdg = [4]complex128{1, 0, 0, cmplx.Exp(complex(0, -math.Pi/4))}
)

// BaseMatrix returns the 2x2 unitary (row-major) applied to the target
// qubit of the given gate kind. For controlled kinds this is the matrix
// applied when the control is set. Swap has no base matrix and panics.
// Exported for backends that assemble their own kernels.
func BaseMatrix(kind circuit.Kind, theta float64) [4]complex128 {
	return baseMatrix(kind, theta)
}

func baseMatrix(kind circuit.Kind, theta float64) [4]complex128 {
	switch kind {
	case circuit.KindH:
		return matH
	case circuit.KindX, circuit.KindCX:
		return matX
	case circuit.KindY, circuit.KindCY:
		return matY
	case circuit.KindZ, circuit.KindCZ:
		return matZ
	case circuit.KindS:
		return matS
	case circuit.KindSdg:
		return matSdg
	case circuit.KindT:
		return matT
	case circuit.KindTdg:
		return matTdg
	case circuit.KindRX, circuit.KindCRX:
		c := complex(math.Cos(theta/2), 0)
		s := complex(0, -math.Sin(theta/2))
		return [4]complex128{c, s, s, c}
	case circuit.KindRY, circuit.KindCRY:
		c := complex(math.Cos(theta/2), 0)
		s := complex(math.Sin(theta/2), 0)
		return [4]complex128{c, -s, s, c}
	case circuit.KindRZ, circuit.KindCRZ:
		return [4]complex128{cmplx.Exp(complex(0, -theta/2)), 0, 0, cmplx.Exp(complex(0, theta/2))}
	case circuit.KindP, circuit.KindCP:
		return [4]complex128{1, 0, 0, cmplx.Exp(complex(0, theta))}
	default:
		panic(fmt.Sprintf("statevector: no base matrix for gate %s", kind))
	}
}
