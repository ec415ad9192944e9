// Package mock provides recording stand-ins for function dependencies.
package mock

import (
	"slices"

	testify "github.com/stretchr/testify/mock"
)

const method = "Call"

// Func is a recording function double taking A and returning R, built on
// testify's mock.Mock. One-shot implementations are consumed in order before
// the default one; with neither configured Call returns the zero R.
//
// Configure a Func before calling it from several goroutines, and inspect it
// after those calls return.
type Func[A, R any] struct {
	m        testify.Mock
	fallback *testify.Call
}

// NewFunc returns a Func whose default implementation is impl (may be nil).
func NewFunc[A, R any](impl func(A) R) *Func[A, R] {
	f := &Func[A, R]{}
	f.fallback = f.m.On(method, testify.Anything, testify.Anything).Run(run(impl))
	return f
}

// run stores impl's result in the *R passed as the second argument.
func run[A, R any](impl func(A) R) func(testify.Arguments) {
	return func(args testify.Arguments) {
		if impl == nil {
			return
		}
		a, _ := args.Get(0).(A)
		*args.Get(1).(*R) = impl(a)
	}
}

// Implement replaces the default implementation.
func (f *Func[A, R]) Implement(impl func(A) R) *Func[A, R] {
	f.fallback.Run(run(impl))
	return f
}

// ImplementOnce queues impl for a single call.
func (f *Func[A, R]) ImplementOnce(impl func(A) R) *Func[A, R] {
	f.m.On(method, testify.Anything, testify.Anything).Run(run(impl)).Once()
	// testify matches expectations in registration order
	calls := f.m.ExpectedCalls
	if i := slices.Index(calls, f.fallback); i >= 0 {
		f.m.ExpectedCalls = append(slices.Delete(calls, i, i+1), f.fallback)
	}
	return f
}

// Return makes every call return r.
func (f *Func[A, R]) Return(r R) *Func[A, R] {
	return f.Implement(func(A) R { return r })
}

// ReturnOnce queues r for a single call.
func (f *Func[A, R]) ReturnOnce(r R) *Func[A, R] {
	return f.ImplementOnce(func(A) R { return r })
}

// Call records a and runs the next implementation.
func (f *Func[A, R]) Call(a A) R {
	out := new(R)
	f.m.MethodCalled(method, a, out)
	return *out
}

// Calls returns the recorded arguments in call order.
func (f *Func[A, R]) Calls() []A {
	out := make([]A, 0, len(f.m.Calls))
	for _, c := range f.m.Calls {
		a, _ := c.Arguments.Get(0).(A)
		out = append(out, a)
	}
	return out
}

// CallCount returns the number of calls so far.
func (f *Func[A, R]) CallCount() int { return len(f.m.Calls) }

// CalledWith reports whether any call received an argument equal to a, as
// testify's ObjectsAreEqual sees it.
func (f *Func[A, R]) CalledWith(a A) bool {
	want := testify.Arguments{a, testify.Anything}
	for _, c := range f.m.Calls {
		if _, diffs := want.Diff(c.Arguments); diffs == 0 {
			return true
		}
	}
	return false
}

// LastCall returns the most recent argument.
func (f *Func[A, R]) LastCall() (A, bool) {
	n := len(f.m.Calls)
	if n == 0 {
		var zero A
		return zero, false
	}
	a, _ := f.m.Calls[n-1].Arguments.Get(0).(A)
	return a, true
}

// Results returns the returned values; Results()[i] belongs to Calls()[i].
func (f *Func[A, R]) Results() []R {
	out := make([]R, 0, len(f.m.Calls))
	for _, c := range f.m.Calls {
		out = append(out, *c.Arguments.Get(1).(*R))
	}
	return out
}

// Reset clears the call log and every implementation.
func (f *Func[A, R]) Reset() {
	f.m.ExpectedCalls = nil
	f.m.Calls = nil
	f.fallback = f.m.On(method, testify.Anything, testify.Anything).Run(run[A, R](nil))
}

// Clear clears the call log but keeps the implementations.
func (f *Func[A, R]) Clear() {
	f.m.Calls = nil
}
