package autodiff

import (
	"container/heap"

	"github.com/pkg/errors"

	"github.com/ember-ml/ember/internal/tensor"
)

// Backward runs reverse-mode differentiation from this variable.
//
// If the gradient is absent it is seeded with an all-ones tensor matching the
// data's shape. The scheduler then visits producing Functions exactly once
// each, highest generation first: since generation strictly increases along
// every edge, each Function's outputs have received every downstream
// contribution before the Function itself is processed (a reverse topological
// order without an explicit sort of the whole graph).
//
// Unless retainGrad is set, interior gradients are discarded as soon as they
// have been propagated, bounding peak memory to the live frontier plus leaf
// gradients. Calling Backward on a leaf only seeds its own gradient.
//
// A failed backward pass leaves ancestor gradients partially populated;
// callers must not rely on them after an error.
func (v *Variable) Backward(retainGrad bool) error {
	if v.data == nil {
		return errors.New("autodiff: cannot run backward on a variable with no data")
	}
	if v.grad == nil {
		v.grad = NewVariable(tensor.OnesLike(v.data))
	}
	if v.creator == nil {
		return nil
	}

	wl := worklist{}
	seen := make(map[*Function]struct{})
	push := func(f *Function) {
		if _, ok := seen[f]; !ok {
			seen[f] = struct{}{}
			heap.Push(&wl, f)
		}
	}
	push(v.creator)

	for wl.Len() > 0 {
		f := heap.Pop(&wl).(*Function)

		gys := make([]*Variable, len(f.outputs))
		for i := range f.outputs {
			out := f.Output(i)
			if out == nil {
				return errors.Errorf("autodiff: output %d of %T was collected before backward", i, f.op)
			}
			if out.grad == nil {
				// A multi-output invocation where only some outputs feed the
				// seed: the missing contributions are zero.
				out.grad = NewVariable(tensor.ZerosLike(out.data))
			}
			gys[i] = out.grad
		}

		gxs := f.op.Backward(f, gys)
		if len(gxs) != len(f.inputs) {
			return errors.Errorf("autodiff: %T backward returned %d gradients for %d inputs",
				f.op, len(gxs), len(f.inputs))
		}

		for i, x := range f.inputs {
			gx := gxs[i]
			if gx == nil {
				continue
			}
			checkGradShape(f.op, x, gx)
			if x.grad == nil {
				x.grad = gx
			} else {
				x.grad = Add(x.grad, gx)
			}
			if x.creator != nil {
				push(x.creator)
			}
		}

		if !retainGrad {
			for i := range f.outputs {
				if out := f.Output(i); out != nil {
					out.grad = nil
				}
			}
		}
	}

	return nil
}

// worklist is a max-heap of Functions keyed by generation. Ties break
// arbitrarily: two simultaneously ready entries of equal generation cannot
// depend on each other, because generation strictly increases along edges.
type worklist []*Function

func (wl worklist) Len() int           { return len(wl) }
func (wl worklist) Less(i, j int) bool { return wl[i].generation > wl[j].generation }
func (wl worklist) Swap(i, j int)      { wl[i], wl[j] = wl[j], wl[i] }
func (wl *worklist) Push(x any)        { *wl = append(*wl, x.(*Function)) }

func (wl *worklist) Pop() any {
	old := *wl
	n := len(old)
	f := old[n-1]
	old[n-1] = nil
	*wl = old[:n-1]
	return f
}
