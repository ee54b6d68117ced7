package jqcore

// ValR is one element of a filter's output: a successful value or an
// error, never both.
type ValR struct {
	Val Val
	Err error
}

func OkR(v Val) ValR  { return ValR{Val: v} }
func ErrR(e error) ValR { return ValR{Err: e} }

func (r ValR) IsErr() bool { return r.Err != nil }

// Stream is a pull-driven, possibly-infinite lazy sequence of ValR. It
// is the Go shape of "lazy sequence of value-or-error outcomes": a
// single-result-type, cancellation-free adaptation of the Iterator[T]
// interface (Next/HasNext/Close) used for lazy, composable data
// pipelines elsewhere in the examples pool, trimmed down since the
// evaluator needs no context-based cancellation beyond the consumer
// simply not calling Next again.
type Stream interface {
	// Next returns the next result and true, or a zero ValR and false
	// once the stream is exhausted. Must not be called again after
	// returning false.
	Next() (ValR, bool)
}

// funcStream adapts a plain closure to a Stream.
type funcStream struct {
	next func() (ValR, bool)
}

func (f *funcStream) Next() (ValR, bool) { return f.next() }

func streamOf(next func() (ValR, bool)) Stream { return &funcStream{next: next} }

// Empty is the stream with no elements.
func Empty() Stream {
	return streamOf(func() (ValR, bool) { return ValR{}, false })
}

// Once yields a single result.
func Once(r ValR) Stream {
	done := false
	return streamOf(func() (ValR, bool) {
		if done {
			return ValR{}, false
		}
		done = true
		return r, true
	})
}

// FromSlice serves pre-collected results one at a time.
func FromSlice(rs []ValR) Stream {
	i := 0
	return streamOf(func() (ValR, bool) {
		if i >= len(rs) {
			return ValR{}, false
		}
		r := rs[i]
		i++
		return r, true
	})
}

// Concat exhausts a entirely before pulling from b, matching Comma's
// left-before-right, fully-lazy concatenation.
func Concat(a, b Stream) Stream {
	first := true
	return streamOf(func() (ValR, bool) {
		if first {
			if r, ok := a.Next(); ok {
				return r, true
			}
			first = false
		}
		return b.Next()
	})
}

// FlatMap pulls from s; each Ok value is expanded via f into a
// substream that is fully drained before s is pulled again. Each Err
// from s becomes a single output element (the error propagates without
// aborting the outer stream), matching Pipe/Logic/IfThenElse's "emit the
// error and continue" rule.
func FlatMap(s Stream, f func(Val) Stream) Stream {
	var cur Stream
	return streamOf(func() (ValR, bool) {
		for {
			if cur != nil {
				if r, ok := cur.Next(); ok {
					return r, true
				}
				cur = nil
			}
			r, ok := s.Next()
			if !ok {
				return ValR{}, false
			}
			if r.IsErr() {
				return r, true
			}
			cur = f(r.Val)
		}
	})
}

// Take yields at most n elements of s (errors count toward the cap,
// exactly like a plain counting take -- Limit does not special-case
// errors).
func Take(s Stream, n int) Stream {
	taken := 0
	return streamOf(func() (ValR, bool) {
		if taken >= n {
			return ValR{}, false
		}
		r, ok := s.Next()
		if !ok {
			return ValR{}, false
		}
		taken++
		return r, true
	})
}

// Thunk defers computing a whole result slice until the first Next
// call, then serves it element by element. Used by combinators that
// must observe their entire input before producing output (Array,
// Object, SortBy, Last, Reduce).
func Thunk(compute func() []ValR) Stream {
	var vals []ValR
	started := false
	i := 0
	return streamOf(func() (ValR, bool) {
		if !started {
			vals = compute()
			started = true
		}
		if i >= len(vals) {
			return ValR{}, false
		}
		r := vals[i]
		i++
		return r, true
	})
}

// Map transforms every element (Ok or Err) of s through f.
func Map(s Stream, f func(ValR) ValR) Stream {
	return streamOf(func() (ValR, bool) {
		r, ok := s.Next()
		if !ok {
			return ValR{}, false
		}
		return f(r), true
	})
}

// Cartesian pairs every element of l with every element of rVals, in
// that nested order (l outer, rVals inner) -- exactly m*k elements when
// l yields m and rVals has k, regardless of how many of either are
// errors, matching the cardinality property of binary value operators.
func Cartesian(l Stream, rVals []ValR, combine func(ValR, ValR) ValR) Stream {
	var curL ValR
	haveL := false
	rIdx := 0
	return streamOf(func() (ValR, bool) {
		for {
			if !haveL {
				lv, ok := l.Next()
				if !ok {
					return ValR{}, false
				}
				curL, haveL, rIdx = lv, true, 0
			}
			if rIdx >= len(rVals) {
				haveL = false
				continue
			}
			rv := rVals[rIdx]
			rIdx++
			return combine(curL, rv), true
		}
	})
}

// Collect drains s, stopping at (and including) the first error.
func Collect(s Stream) ([]Val, error) {
	var out []Val
	for {
		r, ok := s.Next()
		if !ok {
			return out, nil
		}
		if r.IsErr() {
			return out, r.Err
		}
		out = append(out, r.Val)
	}
}

// CollectR drains s into a plain slice of ValR, never stopping early.
func CollectR(s Stream) []ValR {
	var out []ValR
	for {
		r, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, r)
	}
}
