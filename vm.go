package jqcore

import "io"

// Vm encloses a compiled filter together with the Evaluator it runs
// against. Unlike a VM wrapping a C library handle, a Vm here owns no
// external resource -- Close exists only for API parity with that
// shape, and is safe to skip.
type Vm struct {
	filter *Filter
	eval   *Evaluator
}

// Compile closes f (it must carry no unsubstituted Arg nodes) and binds
// it to a fresh Evaluator using the core builtins table.
func Compile(f *Filter) (*Vm, error) {
	if err := checkClosed(f); err != nil {
		return nil, err
	}
	return &Vm{filter: f, eval: NewEvaluator()}, nil
}

// MustCompile panics instead of returning an error, for wiring a known
// good filter into a package-level variable.
func MustCompile(f *Filter) *Vm {
	vm, err := Compile(f)
	if err != nil {
		panic(err)
	}
	return vm
}

// checkClosed walks f looking for an FArg node that Subst should have
// already replaced.
func checkClosed(f *Filter) error {
	if f == nil {
		return nil
	}
	if f.Kind == FArg {
		return strErr("filter is not closed: unsubstituted argument %d", f.N)
	}
	for _, c := range []*Filter{f.A, f.B, f.C} {
		if err := checkClosed(c); err != nil {
			return err
		}
	}
	for _, p := range f.Pairs {
		if err := checkClosed(p.K); err != nil {
			return err
		}
		if err := checkClosed(p.V); err != nil {
			return err
		}
	}
	for _, part := range f.PathSpec {
		for _, c := range []*Filter{part.Index, part.From, part.Until} {
			if err := checkClosed(c); err != nil {
				return err
			}
		}
	}
	return nil
}

// Run starts the filter against one JSON input, streaming JSON-encoded
// results over a channel. When the channel closes, *e holds the first
// error encountered, if any. Run may be called again on the same Vm for
// additional inputs, but not concurrently -- same contract as before,
// minus the actual need for it (nothing here is non-reentrant), kept so
// callers written against the channel-based shape still work unchanged.
func (vm *Vm) Run(input []byte, e *error) chan []byte {
	out := make(chan []byte)
	if len(input) < 1 {
		close(out)
		return out
	}
	val, err := DecodeVal(input)
	if err != nil {
		provideError(e, err)
		close(out)
		return out
	}
	go func() {
		defer close(out)
		s := vm.eval.Run(vm.filter, NewCtx(), val)
		for {
			r, ok := s.Next()
			if !ok {
				return
			}
			if r.IsErr() {
				provideError(e, r.Err)
				return
			}
			js, err := r.Val.ToJSON()
			if err != nil {
				provideError(e, err)
				return
			}
			out <- []byte(js)
		}
	}()
	return out
}

func provideError(e *error, err error) {
	if e == nil || err == nil {
		return
	}
	*e = err
}

// Close exists for API parity with VM-handle-owning callers; this Vm
// holds nothing that needs releasing.
func (vm *Vm) Close() error { return nil }

// UseTracer swaps in a tracer for this Vm's Evaluator, observing every
// subsequent Run call.
func (vm *Vm) UseTracer(t Tracer) { vm.eval.Tracer = t }

// Apply runs the filter against each input in turn, collecting every
// JSON-encoded result. It stops at the first error, which could come
// from a malformed input or from the filter itself.
func (vm *Vm) Apply(inputs ...[]byte) ([][]byte, error) {
	seq := make([][]byte, 0, len(inputs)*4)
	for _, in := range inputs {
		var err error
		for ret := range vm.Run(in, &err) {
			seq = append(seq, ret)
		}
		if err != nil {
			return seq, err
		}
	}
	return seq, nil
}

// Dump runs Apply and writes each result to w, one per line.
func (vm *Vm) Dump(w io.Writer, inputs ...[]byte) error {
	seq, err := vm.Apply(inputs...)
	if err != nil {
		return err
	}
	for _, item := range seq {
		if _, err := w.Write(item); err != nil {
			return err
		}
		if _, err := w.Write([]byte{'\n'}); err != nil {
			return err
		}
	}
	return nil
}

// Dump compiles f and dumps its output against input to w in one call.
func Dump(w io.Writer, f *Filter, input ...[]byte) error {
	vm, err := Compile(f)
	if err != nil {
		return err
	}
	defer vm.Close()
	return vm.Dump(w, input...)
}

// Apply compiles f and applies it to one or more inputs in one call.
func Apply(f *Filter, input ...[]byte) ([][]byte, error) {
	vm, err := Compile(f)
	if err != nil {
		return nil, err
	}
	defer vm.Close()
	return vm.Apply(input...)
}
