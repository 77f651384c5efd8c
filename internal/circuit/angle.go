package circuit

import "fmt"

// Angle is a rotation angle that may depend on symbolic parameters.
//
// An Angle evaluates to a float64 once every parameter it references is
// bound, and can report its partial derivative with respect to any
// parameter at the bound point. Gradient engines use Deriv for the chain
// rule when a gate angle is a function of a parameter rather than the
// parameter itself.
//
// *Parameter implements Angle, as do the composites returned by Value,
// Scaled and ShiftProduct.
type Angle interface {
	// Eval computes the numeric angle using bind to resolve parameters.
	Eval(bind func(*Parameter) float64) float64

	// Parameters returns the parameters the angle depends on, in a
	// deterministic order. Constant angles return nil.
	Parameters() []*Parameter

	// Deriv computes the partial derivative of the angle with respect to
	// p at the bound point. Returns 0 for parameters the angle does not
	// depend on.
	Deriv(p *Parameter, bind func(*Parameter) float64) float64

	// String renders the angle for circuit dumps.
	String() string
}

// constAngle is a parameter-free angle.
type constAngle float64

// Value returns a constant angle.
func Value(v float64) Angle { return constAngle(v) }

func (a constAngle) Eval(func(*Parameter) float64) float64 { return float64(a) }

func (a constAngle) Parameters() []*Parameter { return nil }

func (a constAngle) Deriv(*Parameter, func(*Parameter) float64) float64 { return 0 }

func (a constAngle) String() string { return fmt.Sprintf("%g", float64(a)) }

// scaledAngle is coeff*p + bias.
type scaledAngle struct {
	coeff float64
	p     *Parameter
	bias  float64
}

// Scaled returns the angle coeff*p.
func Scaled(coeff float64, p *Parameter) Angle {
	return &scaledAngle{coeff: coeff, p: p}
}

// ScaledBias returns the angle coeff*p + bias.
func ScaledBias(coeff float64, p *Parameter, bias float64) Angle {
	return &scaledAngle{coeff: coeff, p: p, bias: bias}
}

func (a *scaledAngle) Eval(bind func(*Parameter) float64) float64 {
	return a.coeff*bind(a.p) + a.bias
}

func (a *scaledAngle) Parameters() []*Parameter { return []*Parameter{a.p} }

func (a *scaledAngle) Deriv(p *Parameter, _ func(*Parameter) float64) float64 {
	if p == a.p {
		return a.coeff
	}
	return 0
}

func (a *scaledAngle) String() string {
	if a.bias == 0 {
		return fmt.Sprintf("%g*%s", a.coeff, a.p)
	}
	return fmt.Sprintf("%g*%s + %g", a.coeff, a.p, a.bias)
}

// shiftProductAngle is coeff*(offA - pA)*(offB - pB), the entangling
// phase shape used by second-order feature maps.
type shiftProductAngle struct {
	coeff      float64
	offA, offB float64
	pA, pB     *Parameter
}

// ShiftProduct returns the angle coeff*(offA - pA)*(offB - pB).
func ShiftProduct(coeff, offA float64, pA *Parameter, offB float64, pB *Parameter) Angle {
	return &shiftProductAngle{coeff: coeff, offA: offA, offB: offB, pA: pA, pB: pB}
}

func (a *shiftProductAngle) Eval(bind func(*Parameter) float64) float64 {
	return a.coeff * (a.offA - bind(a.pA)) * (a.offB - bind(a.pB))
}

func (a *shiftProductAngle) Parameters() []*Parameter {
	if a.pA == a.pB {
		return []*Parameter{a.pA}
	}
	return []*Parameter{a.pA, a.pB}
}

func (a *shiftProductAngle) Deriv(p *Parameter, bind func(*Parameter) float64) float64 {
	d := 0.0
	if p == a.pA {
		d += -a.coeff * (a.offB - bind(a.pB))
	}
	if p == a.pB {
		d += -a.coeff * (a.offA - bind(a.pA))
	}
	return d
}

func (a *shiftProductAngle) String() string {
	return fmt.Sprintf("%g*(%g - %s)*(%g - %s)", a.coeff, a.offA, a.pA, a.offB, a.pB)
}

// partialAngle overlays fixed values on a subset of an angle's
// parameters, leaving the rest symbolic.
type partialAngle struct {
	base  Angle
	fixed map[*Parameter]float64
}

// bindAngle fixes the parameters of a that appear in values. Angles
// with no remaining free parameter collapse to constants; angles
// untouched by values are returned as-is.
func bindAngle(a Angle, values map[*Parameter]float64) Angle {
	var fixed map[*Parameter]float64
	free := 0
	for _, p := range a.Parameters() {
		if v, ok := values[p]; ok {
			if fixed == nil {
				fixed = make(map[*Parameter]float64)
			}
			fixed[p] = v
		} else {
			free++
		}
	}
	if fixed == nil {
		return a
	}
	pa := &partialAngle{base: a, fixed: fixed}
	if free == 0 {
		return Value(pa.Eval(nil))
	}
	return pa
}

func (a *partialAngle) resolve(bind func(*Parameter) float64) func(*Parameter) float64 {
	return func(p *Parameter) float64 {
		if v, ok := a.fixed[p]; ok {
			return v
		}
		return bind(p)
	}
}

func (a *partialAngle) Eval(bind func(*Parameter) float64) float64 {
	return a.base.Eval(a.resolve(bind))
}

func (a *partialAngle) Parameters() []*Parameter {
	var free []*Parameter
	for _, p := range a.base.Parameters() {
		if _, ok := a.fixed[p]; !ok {
			free = append(free, p)
		}
	}
	return free
}

func (a *partialAngle) Deriv(p *Parameter, bind func(*Parameter) float64) float64 {
	if _, ok := a.fixed[p]; ok {
		return 0
	}
	return a.base.Deriv(p, a.resolve(bind))
}

func (a *partialAngle) String() string { return a.base.String() }
