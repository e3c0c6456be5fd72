package autodiff

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/ember-ml/ember/internal/tensor"
)

// ErrUnsupportedType is returned by AsVariable when given a value that is not
// a recognized tensor representation.
var ErrUnsupportedType = errors.New("unsupported variable type")

// Variable is a differentiable value handle: a node in the computation graph.
//
// A Variable owns its tensor value, its lazily accumulated gradient, and a
// strong reference to the Function that created it (nil for graph leaves).
// The generation is the node's depth in the graph and is fixed at creation;
// the backward scheduler uses it to order traversal.
type Variable struct {
	name       string
	data       *tensor.RawTensor
	grad       *Variable
	creator    *Function
	generation int
}

// NewVariable wraps a tensor value as a leaf Variable.
// A nil data is permitted for parameter placeholders, but data must be set
// before the variable participates in forward evaluation.
func NewVariable(data *tensor.RawTensor) *Variable {
	return &Variable{data: data}
}

// AsVariable coerces a value into a Variable.
//
// Variables pass through, raw tensors are wrapped, and plain scalars and
// float slices are wrapped as leaf variables. Anything else fails with
// ErrUnsupportedType. This is the boundary that lets composition layers pass
// plain numbers into graph-building expressions.
func AsVariable(v any) (*Variable, error) {
	switch x := v.(type) {
	case *Variable:
		return x, nil
	case *tensor.RawTensor:
		return NewVariable(x), nil
	case float64:
		return NewVariable(tensor.FromScalar(x)), nil
	case float32:
		return NewVariable(tensor.FromScalar(x)), nil
	case int:
		return NewVariable(tensor.FromScalar(float64(x))), nil
	case []float64:
		raw, err := tensor.FromSlice(x, tensor.Shape{len(x)})
		if err != nil {
			return nil, err
		}
		return NewVariable(raw), nil
	case []float32:
		raw, err := tensor.FromSlice(x, tensor.Shape{len(x)})
		if err != nil {
			return nil, err
		}
		return NewVariable(raw), nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedType, "%T", v)
	}
}

// MustVariable is AsVariable that panics on unsupported input.
// Convenient for tests and literal constants in expressions.
func MustVariable(v any) *Variable {
	out, err := AsVariable(v)
	if err != nil {
		panic(err)
	}
	return out
}

// Data returns the variable's tensor value, nil for placeholders.
func (v *Variable) Data() *tensor.RawTensor {
	return v.data
}

// SetData replaces the tensor value. Used by parameter placeholders and
// optimizer updates; graph-building code never mutates data in place.
func (v *Variable) SetData(data *tensor.RawTensor) {
	v.data = data
}

// Grad returns the accumulated gradient, or nil before any backward pass.
func (v *Variable) Grad() *Variable {
	return v.grad
}

// ClearGrad discards the accumulated gradient.
// Call before each training step to avoid accumulation across steps.
func (v *Variable) ClearGrad() {
	v.grad = nil
}

// Creator returns the Function that produced this variable, nil for leaves.
func (v *Variable) Creator() *Function {
	return v.creator
}

// Generation returns the variable's depth in the graph: its creator's
// generation + 1, or 0 for leaves.
func (v *Variable) Generation() int {
	return v.generation
}

// Name returns the variable's optional name.
func (v *Variable) Name() string {
	return v.name
}

// SetName assigns a name, used for parameters and debugging.
func (v *Variable) SetName(name string) {
	v.name = name
}

// Shape returns the shape of the underlying data.
// Panics when data is absent.
func (v *Variable) Shape() tensor.Shape {
	return v.mustData().Shape()
}

// NDim returns the number of dimensions of the underlying data.
func (v *Variable) NDim() int {
	return v.mustData().NDim()
}

// Size returns the total number of elements of the underlying data.
func (v *Variable) Size() int {
	return v.mustData().NumElements()
}

// DType returns the element type of the underlying data.
func (v *Variable) DType() tensor.DataType {
	return v.mustData().DType()
}

// Item returns the value of a single-element variable as float64.
func (v *Variable) Item() float64 {
	return v.mustData().Item()
}

func (v *Variable) mustData() *tensor.RawTensor {
	if v.data == nil {
		panic("autodiff: variable has no data")
	}
	return v.data
}

// String returns a human-readable representation.
func (v *Variable) String() string {
	if v.data == nil {
		return "variable(nil)"
	}
	if v.name != "" {
		return fmt.Sprintf("variable(%s, %s%v)", v.name, v.data.DType(), v.data.Shape())
	}
	return fmt.Sprintf("variable(%s%v)", v.data.DType(), v.data.Shape())
}

// Arithmetic and reduction sugar. Go has no operator overloading, so these
// methods stand in for the expression syntax of the named operations; they
// carry no state beyond what the invoked operation defines.

// Add returns v + other.
func (v *Variable) Add(other *Variable) *Variable { return Add(v, other) }

// Sub returns v - other.
func (v *Variable) Sub(other *Variable) *Variable { return Sub(v, other) }

// Mul returns v * other elementwise.
func (v *Variable) Mul(other *Variable) *Variable { return Mul(v, other) }

// Div returns v / other elementwise.
func (v *Variable) Div(other *Variable) *Variable { return Div(v, other) }

// Neg returns -v.
func (v *Variable) Neg() *Variable { return Neg(v) }

// Pow returns v ** a elementwise.
func (v *Variable) Pow(a float64) *Variable { return Pow(v, a) }

// Reshape returns v with a new shape.
func (v *Variable) Reshape(dims ...int) *Variable { return Reshape(v, tensor.Shape(dims)) }

// Transpose returns v with permuted axes (reversed when none are given).
func (v *Variable) Transpose(axes ...int) *Variable { return Transpose(v, axes...) }

// T is the plain matrix transpose.
func (v *Variable) T() *Variable { return Transpose(v) }

// Sum reduces v by summing over the given axes (all axes when none given).
func (v *Variable) Sum(axes ...int) *Variable {
	if len(axes) == 0 {
		return Sum(v, nil, false)
	}
	return Sum(v, axes, false)
}

// MatMul returns the matrix product v @ other.
func (v *Variable) MatMul(other *Variable) *Variable { return MatMul(v, other) }
