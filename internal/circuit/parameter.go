package circuit

import "fmt"

// Parameter is a named symbolic placeholder for a rotation angle.
//
// Parameters are compared by identity, not by name: two calls to
// NewParameter("x") yield distinct symbols. A Parameter is itself an
// Angle, so it can be passed directly to gate builders:
//
//	theta := circuit.NewParameter("θ")
//	c := circuit.New(1)
//	c.RY(theta, 0)
type Parameter struct {
	name string
}

// NewParameter creates a new symbolic parameter with the given name.
func NewParameter(name string) *Parameter {
	return &Parameter{name: name}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// String implements fmt.Stringer.
func (p *Parameter) String() string {
	return p.name
}

// Eval returns the bound value of the parameter. Implements Angle.
func (p *Parameter) Eval(bind func(*Parameter) float64) float64 {
	return bind(p)
}

// Parameters returns the parameter itself. Implements Angle.
func (p *Parameter) Parameters() []*Parameter {
	return []*Parameter{p}
}

// Deriv returns the derivative of the angle with respect to q.
// Implements Angle.
func (p *Parameter) Deriv(q *Parameter, _ func(*Parameter) float64) float64 {
	if p == q {
		return 1
	}
	return 0
}

// ParameterVector is an indexed family of parameters sharing a base name.
//
// Element i renders as "name[i]". Feature maps and ansatz builders use
// vectors so that parameter names self-describe their role:
//
//	x := circuit.NewParameterVector("x", 4)
//	c.RY(x.At(0), 0)
type ParameterVector struct {
	name   string
	params []*Parameter
}

// NewParameterVector creates a vector of n parameters named name[0..n-1].
func NewParameterVector(name string, n int) *ParameterVector {
	params := make([]*Parameter, n)
	for i := range params {
		params[i] = NewParameter(fmt.Sprintf("%s[%d]", name, i))
	}
	return &ParameterVector{name: name, params: params}
}

// Name returns the base name of the vector.
func (v *ParameterVector) Name() string {
	return v.name
}

// Len returns the number of parameters in the vector.
func (v *ParameterVector) Len() int {
	return len(v.params)
}

// At returns the i-th parameter.
func (v *ParameterVector) At(i int) *Parameter {
	return v.params[i]
}

// Params returns the underlying parameter slice.
// The slice is shared; callers must not modify it.
func (v *ParameterVector) Params() []*Parameter {
	return v.params
}
