package autodiff

import (
	"math"
	"testing"

	"github.com/pkg/errors"

	"github.com/ember-ml/ember/internal/tensor"
)

func variableOf(t *testing.T, data []float64, shape tensor.Shape) *Variable {
	t.Helper()
	raw, err := tensor.FromSlice(data, shape)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	return NewVariable(raw)
}

func gradValues(t *testing.T, v *Variable) []float64 {
	t.Helper()
	if v.Grad() == nil {
		t.Fatalf("variable %s has no gradient", v)
	}
	return v.Grad().Data().AsFloat64()
}

func almostEqual(t *testing.T, got, want, tol float64, msg string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %v, want %v", msg, got, want)
	}
}

func TestBackward_Tanh(t *testing.T) {
	x := MustVariable(2.0)
	y := Tanh(x)

	if err := y.Backward(false); err != nil {
		t.Fatalf("Backward: %v", err)
	}

	th := math.Tanh(2.0)
	almostEqual(t, x.Grad().Item(), 1-th*th, 1e-12, "d tanh(x)/dx at x=2")
}

func TestBackward_Polynomial(t *testing.T) {
	// y = x^4, via y = a * a with a = x^2. The graph is a diamond: both
	// multiplication inputs are the same node, so its gradient accumulates.
	x := MustVariable(3.0)
	a := Pow(x, 2)
	y := Mul(a, a)

	if err := y.Backward(false); err != nil {
		t.Fatalf("Backward: %v", err)
	}

	almostEqual(t, y.Item(), 81.0, 1e-12, "3^4")
	almostEqual(t, x.Grad().Item(), 108.0, 1e-12, "d x^4/dx = 4x^3 at x=3")
}

func TestBackward_SharedInput(t *testing.T) {
	// y = x + x: the same leaf feeds one invocation twice.
	x := MustVariable(5.0)
	y := Add(x, x)

	if err := y.Backward(false); err != nil {
		t.Fatalf("Backward: %v", err)
	}
	almostEqual(t, x.Grad().Item(), 2.0, 1e-12, "d(x+x)/dx")
}

func TestBackward_BroadcastAdd(t *testing.T) {
	// (2, 3) + (3,): the row vector's gradient must be summed back to (3,).
	a := variableOf(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b := variableOf(t, []float64{10, 20, 30}, tensor.Shape{3})

	y := Sum(Add(a, b), nil, false)
	if err := y.Backward(false); err != nil {
		t.Fatalf("Backward: %v", err)
	}

	if !a.Grad().Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("grad of a has shape %v, want [2 3]", a.Grad().Shape())
	}
	if !b.Grad().Shape().Equal(tensor.Shape{3}) {
		t.Fatalf("grad of b has shape %v, want [3]", b.Grad().Shape())
	}
	for _, g := range gradValues(t, b) {
		almostEqual(t, g, 2.0, 1e-12, "each b element feeds both rows")
	}
}

func TestBackward_MatMul(t *testing.T) {
	x := NewVariable(tensor.Ones(tensor.Shape{2, 3}, tensor.Float64))
	w := NewVariable(tensor.Ones(tensor.Shape{3, 4}, tensor.Float64))

	y := Sum(MatMul(x, w), nil, false)
	if err := y.Backward(false); err != nil {
		t.Fatalf("Backward: %v", err)
	}

	if !x.Grad().Shape().Equal(x.Shape()) {
		t.Errorf("grad of x has shape %v, want %v", x.Grad().Shape(), x.Shape())
	}
	if !w.Grad().Shape().Equal(w.Shape()) {
		t.Errorf("grad of w has shape %v, want %v", w.Grad().Shape(), w.Shape())
	}
	// Every w element is hit by both rows of an all-ones x.
	for _, g := range gradValues(t, w) {
		almostEqual(t, g, 2.0, 1e-12, "grad of w")
	}
}

func TestBackward_DivSub(t *testing.T) {
	x0 := MustVariable(6.0)
	x1 := MustVariable(2.0)

	y := Sub(Div(x0, x1), x1)
	if err := y.Backward(false); err != nil {
		t.Fatalf("Backward: %v", err)
	}

	almostEqual(t, y.Item(), 1.0, 1e-12, "6/2 - 2")
	almostEqual(t, x0.Grad().Item(), 0.5, 1e-12, "d(x0/x1)/dx0 = 1/x1")
	almostEqual(t, x1.Grad().Item(), -6.0/4.0-1.0, 1e-12, "d(x0/x1 - x1)/dx1")
}

func TestBackward_Neg(t *testing.T) {
	x := MustVariable(3.0)
	y := Neg(x)

	if err := y.Backward(false); err != nil {
		t.Fatalf("Backward: %v", err)
	}
	almostEqual(t, x.Grad().Item(), -1.0, 1e-12, "d(-x)/dx")
}

func TestBackward_GradientAccumulatesAcrossCalls(t *testing.T) {
	x := MustVariable(4.0)

	y := Pow(x, 2)
	if err := y.Backward(false); err != nil {
		t.Fatalf("Backward: %v", err)
	}
	almostEqual(t, x.Grad().Item(), 8.0, 1e-12, "first backward")

	z := Pow(x, 2)
	if err := z.Backward(false); err != nil {
		t.Fatalf("Backward: %v", err)
	}
	almostEqual(t, x.Grad().Item(), 16.0, 1e-12, "second backward accumulates")

	x.ClearGrad()
	if x.Grad() != nil {
		t.Error("ClearGrad must discard the gradient")
	}
	w := Pow(x, 2)
	if err := w.Backward(false); err != nil {
		t.Fatalf("Backward: %v", err)
	}
	almostEqual(t, x.Grad().Item(), 8.0, 1e-12, "fresh backward after ClearGrad")
}

func TestBackward_InteriorGradsDiscarded(t *testing.T) {
	x := MustVariable(2.0)
	a := Pow(x, 2)
	y := Exp(a)

	if err := y.Backward(false); err != nil {
		t.Fatalf("Backward: %v", err)
	}
	if a.Grad() != nil {
		t.Error("interior gradient should be discarded when retainGrad is false")
	}
	if y.Grad() != nil {
		t.Error("seed gradient should be discarded when retainGrad is false")
	}
	if x.Grad() == nil {
		t.Fatal("leaf gradient is always retained")
	}
}

func TestBackward_RetainGrad(t *testing.T) {
	x := MustVariable(2.0)
	a := Pow(x, 2)
	y := Exp(a)

	if err := y.Backward(true); err != nil {
		t.Fatalf("Backward: %v", err)
	}
	if a.Grad() == nil {
		t.Fatal("retainGrad must keep interior gradients")
	}
	almostEqual(t, a.Grad().Item(), math.Exp(4.0), 1e-9, "d exp(a)/da at a=4")
	almostEqual(t, x.Grad().Item(), 4.0*math.Exp(4.0), 1e-9, "chain through x^2")
}

func TestBackward_RerunAfterClearingAllGrads(t *testing.T) {
	x := MustVariable(3.0)
	a := Pow(x, 2)
	y := Mul(a, a)

	if err := y.Backward(true); err != nil {
		t.Fatalf("Backward: %v", err)
	}
	first := x.Grad().Item()

	// Clearing every node's gradient and rerunning from the same seed shape
	// reproduces the original result.
	x.ClearGrad()
	a.ClearGrad()
	y.ClearGrad()
	if err := y.Backward(true); err != nil {
		t.Fatalf("second Backward: %v", err)
	}
	almostEqual(t, x.Grad().Item(), first, 1e-12, "rerun after full clear")
}

func TestBackward_LeafOnly(t *testing.T) {
	x := MustVariable(1.5)
	if err := x.Backward(false); err != nil {
		t.Fatalf("Backward on leaf: %v", err)
	}
	almostEqual(t, x.Grad().Item(), 1.0, 1e-12, "leaf seeds its own gradient")
}

func TestBackward_NoData(t *testing.T) {
	v := NewVariable(nil)
	if err := v.Backward(false); err == nil {
		t.Fatal("Backward on a data-less variable must fail")
	}
}

func TestGenerations(t *testing.T) {
	x := MustVariable(1.0)
	if x.Generation() != 0 {
		t.Fatalf("leaf generation = %d, want 0", x.Generation())
	}

	a := Pow(x, 2)
	b := Exp(a)
	y := Add(a, b) // inputs of generation 1 and 2

	if a.Generation() != 1 || b.Generation() != 2 {
		t.Fatalf("generations a=%d b=%d, want 1 and 2", a.Generation(), b.Generation())
	}
	if y.Creator().Generation() != 2 {
		t.Errorf("function generation = %d, want max(inputs) = 2", y.Creator().Generation())
	}
	if y.Generation() != 3 {
		t.Errorf("output generation = %d, want 3", y.Generation())
	}
}

func TestGenerationOrdering(t *testing.T) {
	// y = (x^2)^2 + (x^2)^2 built so a naive LIFO traversal would process
	// the shared x^2 node before both of its consumers.
	x := MustVariable(2.0)
	a := Pow(x, 2)
	b := Pow(a, 2)
	c := Pow(a, 2)
	y := Add(b, c)

	if err := y.Backward(false); err != nil {
		t.Fatalf("Backward: %v", err)
	}

	// y = 2 * x^4, dy/dx = 8 x^3 = 64.
	almostEqual(t, y.Item(), 32.0, 1e-12, "forward value")
	almostEqual(t, x.Grad().Item(), 64.0, 1e-12, "gradient through shared subexpression")
}

func TestNoGrad(t *testing.T) {
	x := MustVariable(2.0)

	restore := NoGrad()
	y := Pow(x, 2)
	restore()

	if y.Creator() != nil {
		t.Fatal("operations under NoGrad must not record creators")
	}
	if y.Generation() != 0 {
		t.Errorf("untracked output generation = %d, want 0", y.Generation())
	}
	almostEqual(t, y.Item(), 4.0, 1e-12, "forward still computes")

	// Backward from an untracked node only seeds its own gradient.
	if err := y.Backward(false); err != nil {
		t.Fatalf("Backward: %v", err)
	}
	if x.Grad() != nil {
		t.Error("no gradient should reach x through an untracked graph")
	}
	if !BackpropEnabled() {
		t.Error("restore must re-enable gradient tracking")
	}
}

func TestEnableBackprop_Restore(t *testing.T) {
	restore := EnableBackprop(false)
	if BackpropEnabled() {
		t.Fatal("tracking should be disabled")
	}
	inner := EnableBackprop(true)
	if !BackpropEnabled() {
		t.Fatal("nested enable should take effect")
	}
	inner()
	if BackpropEnabled() {
		t.Fatal("inner restore should return to disabled")
	}
	restore()
	if !BackpropEnabled() {
		t.Fatal("outer restore should return to enabled")
	}
}

func TestAsVariable(t *testing.T) {
	v := MustVariable(1.5)
	if got, err := AsVariable(v); err != nil || got != v {
		t.Errorf("AsVariable must pass *Variable through, got %v, %v", got, err)
	}

	raw := tensor.Ones(tensor.Shape{2}, tensor.Float64)
	got, err := AsVariable(raw)
	if err != nil || got.Data() != raw {
		t.Errorf("AsVariable must wrap *RawTensor, got %v, %v", got, err)
	}

	slice, err := AsVariable([]float64{1, 2, 3})
	if err != nil {
		t.Fatalf("AsVariable([]float64): %v", err)
	}
	if !slice.Shape().Equal(tensor.Shape{3}) {
		t.Errorf("slice variable shape = %v, want [3]", slice.Shape())
	}

	if _, err := AsVariable("not a tensor"); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("AsVariable(string) error = %v, want ErrUnsupportedType", err)
	}
}

func TestReshapeTranspose_Backward(t *testing.T) {
	x := variableOf(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	y := Sum(Transpose(Reshape(x, tensor.Shape{3, 2})), nil, false)
	if err := y.Backward(false); err != nil {
		t.Fatalf("Backward: %v", err)
	}

	if !x.Grad().Shape().Equal(x.Shape()) {
		t.Fatalf("grad shape %v, want %v", x.Grad().Shape(), x.Shape())
	}
	for _, g := range gradValues(t, x) {
		almostEqual(t, g, 1.0, 1e-12, "pure shape ops pass gradients through")
	}
}

func TestReshape_SameShapeIsIdentity(t *testing.T) {
	x := variableOf(t, []float64{1, 2}, tensor.Shape{2})
	if y := Reshape(x, tensor.Shape{2}); y != x {
		t.Error("same-shape reshape should return the input variable")
	}
	if y := BroadcastTo(x, tensor.Shape{2}); y != x {
		t.Error("same-shape broadcast should return the input variable")
	}
	if y := SumTo(x, tensor.Shape{2}); y != x {
		t.Error("same-shape sum-to should return the input variable")
	}
}

func TestSumKeepDims_Backward(t *testing.T) {
	x := variableOf(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	s := Sum(x, []int{1}, true) // shape (2, 1)
	if !s.Shape().Equal(tensor.Shape{2, 1}) {
		t.Fatalf("sum shape %v, want [2 1]", s.Shape())
	}
	y := Sum(s, nil, false)
	if err := y.Backward(false); err != nil {
		t.Fatalf("Backward: %v", err)
	}
	for _, g := range gradValues(t, x) {
		almostEqual(t, g, 1.0, 1e-12, "sum gradient broadcasts back")
	}
}

func TestSoftmax(t *testing.T) {
	x := variableOf(t, []float64{1, 2, 3, 1, 1, 1}, tensor.Shape{2, 3})

	y := Softmax(x, -1)
	rows := Sum(y, []int{1}, false)
	for _, r := range rows.Data().AsFloat64() {
		almostEqual(t, r, 1.0, 1e-9, "softmax rows sum to one")
	}

	// The softmax of a constant-sum seed has zero gradient.
	z := Sum(y, nil, false)
	if err := z.Backward(false); err != nil {
		t.Fatalf("Backward: %v", err)
	}
	for _, g := range gradValues(t, x) {
		almostEqual(t, g, 0.0, 1e-9, "gradient of sum of softmax")
	}
}

func TestMeanSquaredError(t *testing.T) {
	pred := variableOf(t, []float64{1, 2, 3}, tensor.Shape{3})
	target := variableOf(t, []float64{2, 2, 5}, tensor.Shape{3})

	loss := MeanSquaredError(pred, target)
	almostEqual(t, loss.Item(), 5.0/3.0, 1e-12, "mean of squared differences")

	if err := loss.Backward(false); err != nil {
		t.Fatalf("Backward: %v", err)
	}
	want := []float64{-2.0 / 3.0, 0, -4.0 / 3.0}
	for i, g := range gradValues(t, pred) {
		almostEqual(t, g, want[i], 1e-12, "mse gradient")
	}
}

func TestReLU_Backward(t *testing.T) {
	x := variableOf(t, []float64{-1, 0, 2}, tensor.Shape{3})

	y := Sum(ReLU(x), nil, false)
	if err := y.Backward(false); err != nil {
		t.Fatalf("Backward: %v", err)
	}
	want := []float64{0, 0, 1}
	for i, g := range gradValues(t, x) {
		almostEqual(t, g, want[i], 1e-12, "relu mask gradient")
	}
}

func TestLinear(t *testing.T) {
	x := NewVariable(tensor.Ones(tensor.Shape{2, 3}, tensor.Float64))
	w := NewVariable(tensor.Ones(tensor.Shape{3, 4}, tensor.Float64))
	b := variableOf(t, []float64{1, 2, 3, 4}, tensor.Shape{4})

	y := Linear(x, w, b)
	if !y.Shape().Equal(tensor.Shape{2, 4}) {
		t.Fatalf("linear output shape %v, want [2 4]", y.Shape())
	}
	almostEqual(t, y.Data().At(0, 0), 4.0, 1e-12, "1*3 + bias 1")
	almostEqual(t, y.Data().At(1, 3), 7.0, 1e-12, "1*3 + bias 4")

	if err := Sum(y, nil, false).Backward(false); err != nil {
		t.Fatalf("Backward: %v", err)
	}
	if !b.Grad().Shape().Equal(tensor.Shape{4}) {
		t.Fatalf("bias grad shape %v, want [4]", b.Grad().Shape())
	}
	for _, g := range gradValues(t, b) {
		almostEqual(t, g, 2.0, 1e-12, "bias gradient sums over the batch")
	}

	// No bias.
	y = Linear(x, w, nil)
	almostEqual(t, y.Data().At(0, 0), 3.0, 1e-12, "matmul only")
}

func TestVariable_Sugar(t *testing.T) {
	x := MustVariable(3.0)
	y := MustVariable(2.0)

	almostEqual(t, x.Add(y).Item(), 5.0, 1e-12, "Add")
	almostEqual(t, x.Sub(y).Item(), 1.0, 1e-12, "Sub")
	almostEqual(t, x.Mul(y).Item(), 6.0, 1e-12, "Mul")
	almostEqual(t, x.Div(y).Item(), 1.5, 1e-12, "Div")
	almostEqual(t, x.Neg().Item(), -3.0, 1e-12, "Neg")
	almostEqual(t, x.Pow(2).Item(), 9.0, 1e-12, "Pow")

	m := NewVariable(tensor.Ones(tensor.Shape{2, 3}, tensor.Float64))
	if !m.T().Shape().Equal(tensor.Shape{3, 2}) {
		t.Error("T should transpose")
	}
	if !m.Reshape(6).Shape().Equal(tensor.Shape{6}) {
		t.Error("Reshape sugar")
	}
	almostEqual(t, m.Sum().Item(), 6.0, 1e-12, "Sum sugar")
}

func TestUnimplementedOperation(t *testing.T) {
	var op UnimplementedOperation

	assertPanics := func(name string, f func()) {
		defer func() {
			if recover() == nil {
				t.Errorf("%s did not panic", name)
			}
		}()
		f()
	}
	assertPanics("Forward", func() { op.Forward(nil) })
	assertPanics("Backward", func() { op.Backward(nil, nil) })
}

func TestVariable_Naming(t *testing.T) {
	x := MustVariable(1.0)
	x.SetName("weight")
	if x.Name() != "weight" {
		t.Errorf("name = %q", x.Name())
	}
}
