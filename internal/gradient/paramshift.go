// Package gradient implements backward-pass machinery for parametrized
// circuits: exact parameter-shift gradients for estimator and sampler
// outputs, and a stochastic SPSA estimator for wide parameter spaces.
//
// The parameter-shift engines work at the gate-instance level. For each
// gate whose angle depends on a differentiated parameter they evaluate
// the circuit with that single gate's angle shifted, then assemble the
// parameter gradient through the chain rule with the angle's local
// derivative. This stays correct when one parameter feeds several gates
// (feature maps with repetitions) and when an angle is a function of its
// parameters rather than the parameter itself.
package gradient

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/bloch-ml/bloch/internal/circuit"
	"github.com/bloch-ml/bloch/internal/operator"
	"github.com/bloch-ml/bloch/internal/primitive"
)

// shiftTerm is one evaluation of the shift rule: coeff * f(angle + delta).
type shiftTerm struct {
	delta float64
	coeff float64
}

// Shift-rule coefficients for controlled rotations, whose generators
// carry two frequencies and need the four-term rule.
var (
	crPlus  = (math.Sqrt2 + 1) / (4 * math.Sqrt2)
	crMinus = (math.Sqrt2 - 1) / (4 * math.Sqrt2)
)

// shiftRule returns the shift evaluations for a gate kind, or nil if the
// kind admits no shift rule.
func shiftRule(kind circuit.Kind) []shiftTerm {
	switch kind {
	case circuit.KindRX, circuit.KindRY, circuit.KindRZ, circuit.KindP, circuit.KindCP:
		return []shiftTerm{
			{delta: math.Pi / 2, coeff: 0.5},
			{delta: -math.Pi / 2, coeff: -0.5},
		}
	case circuit.KindCRX, circuit.KindCRY, circuit.KindCRZ:
		return []shiftTerm{
			{delta: math.Pi / 2, coeff: crPlus},
			{delta: -math.Pi / 2, coeff: -crPlus},
			{delta: 3 * math.Pi / 2, coeff: -crMinus},
			{delta: -3 * math.Pi / 2, coeff: crMinus},
		}
	default:
		return nil
	}
}

// shiftPlan holds the shifted circuits for one differentiation pass and
// the bookkeeping to fold their evaluations back into parameter space.
type shiftPlan struct {
	circuits []*circuit.Circuit
	// derivs[i] are the chain-rule weights of evaluation i with respect
	// to each differentiated parameter.
	derivs [][]float64
}

// buildShiftPlan enumerates the shifted evaluations for differentiating
// c at values with respect to params.
func buildShiftPlan(c *circuit.Circuit, values []float64, params []*circuit.Parameter) (*shiftPlan, error) {
	bind, err := c.Binder(values)
	if err != nil {
		return nil, err
	}
	bound, err := c.Bind(values)
	if err != nil {
		return nil, err
	}
	plan := &shiftPlan{}
	for i := 0; i < c.NumGates(); i++ {
		g := c.Gate(i)
		if g.Angle == nil || len(g.Angle.Parameters()) == 0 {
			continue
		}
		local := make([]float64, len(params))
		relevant := false
		for k, p := range params {
			local[k] = g.Angle.Deriv(p, bind)
			if local[k] != 0 {
				relevant = true
			}
		}
		if !relevant {
			continue
		}
		rule := shiftRule(g.Kind)
		if rule == nil {
			return nil, fmt.Errorf("gradient: gate %d (%s) has no parameter-shift rule", i, g.Kind)
		}
		for _, term := range rule {
			weights := make([]float64, len(params))
			for k := range weights {
				weights[k] = local[k] * term.coeff
			}
			plan.circuits = append(plan.circuits, bound.ShiftGateAngle(i, term.delta))
			plan.derivs = append(plan.derivs, weights)
		}
	}
	return plan, nil
}

// ParamShiftEstimator computes gradients of estimator expectation values
// with the parameter-shift rule.
type ParamShiftEstimator struct {
	est *primitive.Estimator
}

// NewParamShiftEstimator wraps an estimator. The estimator's shot and
// backend configuration carries over to the shifted evaluations.
func NewParamShiftEstimator(est *primitive.Estimator) *ParamShiftEstimator {
	return &ParamShiftEstimator{est: est}
}

// Gradient returns d<obs_j>/dp_k as a [len(observables) x len(params)]
// matrix, evaluated at the given parameter values (which follow
// c.Parameters() order and must bind the full circuit).
func (g *ParamShiftEstimator) Gradient(c *circuit.Circuit, observables []*operator.SparsePauliOp,
	values []float64, params []*circuit.Parameter,
) (*mat.Dense, error) {
	plan, err := buildShiftPlan(c, values, params)
	if err != nil {
		return nil, err
	}
	grad := mat.NewDense(len(observables), len(params), nil)
	if len(plan.circuits) == 0 {
		return grad, nil
	}
	for j, obs := range observables {
		evals, err := g.est.Run(plan.circuits, []*operator.SparsePauliOp{obs}, nil)
		if err != nil {
			return nil, err
		}
		for e, v := range evals {
			for k, w := range plan.derivs[e] {
				if w != 0 {
					grad.Set(j, k, grad.At(j, k)+w*v)
				}
			}
		}
	}
	return grad, nil
}

// ParamShiftSampler computes gradients of sampler output probabilities
// with the parameter-shift rule.
type ParamShiftSampler struct {
	smp *primitive.Sampler
}

// NewParamShiftSampler wraps a sampler.
func NewParamShiftSampler(smp *primitive.Sampler) *ParamShiftSampler {
	return &ParamShiftSampler{smp: smp}
}

// Gradient returns dP(outcome)/dp_k as a [2^n x len(params)] matrix.
func (g *ParamShiftSampler) Gradient(c *circuit.Circuit, values []float64, params []*circuit.Parameter) (*mat.Dense, error) {
	plan, err := buildShiftPlan(c, values, params)
	if err != nil {
		return nil, err
	}
	dim := 1 << c.NumQubits()
	grad := mat.NewDense(dim, len(params), nil)
	if len(plan.circuits) == 0 {
		return grad, nil
	}
	dists, err := g.smp.Run(plan.circuits, nil)
	if err != nil {
		return nil, err
	}
	for e, dist := range dists {
		for k, w := range plan.derivs[e] {
			if w == 0 {
				continue
			}
			for outcome, p := range dist {
				if p != 0 {
					grad.Set(outcome, k, grad.At(outcome, k)+w*p)
				}
			}
		}
	}
	return grad, nil
}
