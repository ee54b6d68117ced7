package jqcore

import "math"

// Evaluator runs a *Filter tree against a (Ctx, Val) pair. It holds no
// mutable state of its own beyond the optional tracer hook, so the same
// Evaluator can be shared across concurrent Run calls.
type Evaluator struct {
	Table  *Table
	Tracer Tracer
}

// NewEvaluator returns an Evaluator wired with the core builtins table
// and a no-op tracer.
func NewEvaluator() *Evaluator {
	return &Evaluator{Table: NewCoreTable(), Tracer: noopTracer{}}
}

// Run evaluates f against (ctx, val) and returns its output stream,
// grounded directly in the reference interpreter's Filter::run match.
func (e *Evaluator) Run(f *Filter, ctx Ctx, val Val) Stream {
	if e.Tracer == nil {
		return e.run(f, ctx, val)
	}
	node := fkindName(f.Kind)
	e.Tracer.Enter(node, val)
	s := e.run(f, ctx, val)
	n := 0
	left := false
	return streamOf(func() (ValR, bool) {
		r, ok := s.Next()
		if !ok {
			if !left {
				left = true
				e.Tracer.Leave(node, n)
			}
			return ValR{}, false
		}
		n++
		return r, true
	})
}

func (e *Evaluator) run(f *Filter, ctx Ctx, val Val) Stream {
	switch f.Kind {
	case FId:
		return Once(OkR(val))
	case FNull:
		return Once(OkR(Null()))
	case FInt:
		return Once(OkR(Int(f.IntV)))
	case FFloat:
		return Once(OkR(Float(f.FloatV)))
	case FStr:
		return Once(OkR(Str(f.StrV)))
	case FEmpty:
		return Empty()
	case FError:
		return Once(ErrR(valErr(val)))

	case FArray:
		return Thunk(func() []ValR {
			if f.A == nil {
				return []ValR{OkR(EmptyArr())}
			}
			vs, err := Collect(e.Run(f.A, ctx, val))
			if err != nil {
				return []ValR{ErrR(err)}
			}
			return []ValR{OkR(Arr(vs))}
		})

	case FObject:
		return Thunk(func() []ValR { return e.runObject(f.Pairs, ctx, val) })

	case FTry:
		s := e.Run(f.A, ctx, val)
		return streamOf(func() (ValR, bool) {
			for {
				r, ok := s.Next()
				if !ok {
					return ValR{}, false
				}
				if r.IsErr() {
					continue
				}
				return r, true
			}
		})

	case FNeg:
		return Map(e.Run(f.A, ctx, val), func(r ValR) ValR {
			if r.IsErr() {
				return r
			}
			nv, err := Neg(r.Val)
			if err != nil {
				return ErrR(err)
			}
			return OkR(nv)
		})

	case FPipe:
		if f.PipeBind {
			return FlatMap(e.Run(f.A, ctx, val), func(y Val) Stream {
				return e.Run(f.B, ctx.Cons(y), val)
			})
		}
		return FlatMap(e.Run(f.A, ctx, val), func(y Val) Stream {
			return e.Run(f.B, ctx, y)
		})

	case FComma:
		return Concat(e.Run(f.A, ctx, val), e.Run(f.B, ctx, val))

	case FAlt:
		return e.runAlt(f.A, f.B, ctx, val)

	case FIfThenElse:
		return e.ifThenElse(f.Pairs, f.A, ctx, val, func(then *Filter, v Val) Stream {
			return e.Run(then, ctx, v)
		})

	case FReduce:
		return e.runReduce(f.A, f.B, f.C, ctx, val)

	case FPath:
		return Thunk(func() []ValR {
			vs, err := e.runPath(f.PathSpec, ctx, val, []Val{val})
			if err != nil {
				return []ValR{ErrR(err)}
			}
			out := make([]ValR, len(vs))
			for i, v := range vs {
				out[i] = OkR(v)
			}
			return out
		})

	case FAssign:
		return FlatMap(e.Run(f.B, ctx, val), func(fv Val) Stream {
			return e.Update(f.A, ctx, val, func(Val) Stream { return Once(OkR(fv)) })
		})

	case FUpdate:
		return e.Update(f.A, ctx, val, func(old Val) Stream {
			vs := CollectR(e.Run(f.B, ctx, old))
			if len(vs) == 0 {
				return Once(OkR(old))
			}
			return Once(vs[0])
		})

	case FLogic:
		return FlatMap(e.Run(f.A, ctx, val), func(lv Val) Stream {
			if lv.AsBool() == f.LogicStop {
				return Once(OkR(Bool(f.LogicStop)))
			}
			return Map(e.Run(f.B, ctx, val), func(r ValR) ValR {
				if r.IsErr() {
					return r
				}
				return OkR(Bool(r.Val.AsBool()))
			})
		})

	case FMath:
		rVals := CollectR(e.Run(f.B, ctx, val))
		return Cartesian(e.Run(f.A, ctx, val), rVals, func(l, r ValR) ValR {
			if l.IsErr() {
				return l
			}
			if r.IsErr() {
				return r
			}
			res, err := f.MathOp.Run(l.Val, r.Val)
			if err != nil {
				return ErrR(err)
			}
			return OkR(res)
		})

	case FOrd:
		rVals := CollectR(e.Run(f.B, ctx, val))
		return Cartesian(e.Run(f.A, ctx, val), rVals, func(l, r ValR) ValR {
			if l.IsErr() {
				return l
			}
			if r.IsErr() {
				return r
			}
			return OkR(Bool(f.OrdOp.Run(l.Val, r.Val)))
		})

	case FLength:
		return mapVal(val, func(v Val) (Val, error) { return v.Len() })
	case FKeys:
		return mapVal(val, func(v Val) (Val, error) { return v.Keys() })
	case FFloor:
		return mapVal(val, func(v Val) (Val, error) { return roundOp(v, math.Floor) })
	case FRound:
		return mapVal(val, func(v Val) (Val, error) { return roundOp(v, math.Round) })
	case FCeil:
		return mapVal(val, func(v Val) (Val, error) { return roundOp(v, math.Ceil) })
	case FFromJson:
		return mapVal(val, func(v Val) (Val, error) {
			s, err := v.AsStr()
			if err != nil {
				return Val{}, err
			}
			return DecodeVal([]byte(s))
		})
	case FToJson:
		return mapVal(val, func(v Val) (Val, error) {
			s, err := v.ToJSON()
			if err != nil {
				return Val{}, err
			}
			return Str(s), nil
		})
	case FExplode:
		return mapVal(val, explodeVal)
	case FImplode:
		return mapVal(val, implodeVal)
	case FAsciiDowncase:
		return mapVal(val, asciiDowncaseVal)
	case FAsciiUpcase:
		return mapVal(val, asciiUpcaseVal)
	case FReverse:
		return mapVal(val, reverseVal)
	case FSort:
		return mapVal(val, sortVal)

	case FSortBy:
		return Thunk(func() []ValR { return e.runSortBy(f.A, ctx, val) })

	case FHas:
		return FlatMap(e.Run(f.A, ctx, val), func(k Val) Stream {
			r, err := hasVal(val, k)
			if err != nil {
				return Once(ErrR(err))
			}
			return Once(OkR(r))
		})

	case FContains:
		return FlatMap(e.Run(f.A, ctx, val), func(needle Val) Stream {
			return Once(OkR(Bool(Contains(val, needle))))
		})

	case FSplit:
		return FlatMap(e.Run(f.A, ctx, val), func(sep Val) Stream {
			s, err := val.AsStr()
			if err != nil {
				return Once(ErrR(err))
			}
			sepS, err := sep.AsStr()
			if err != nil {
				return Once(ErrR(err))
			}
			parts, err := splitStr(s, sepS)
			if err != nil {
				return Once(ErrR(err))
			}
			return Once(OkR(parts))
		})

	case FFirst:
		return Take(e.Run(f.A, ctx, val), 1)

	case FLast:
		return e.runLast(f.A, ctx, val)

	case FRecurse:
		return e.runRecurse(f.A, ctx, val)

	case FLimit:
		return FlatMap(e.Run(f.A, ctx, val), func(nv Val) Stream {
			n, err := nv.AsInt()
			if err != nil {
				return Once(ErrR(err))
			}
			if n < 0 {
				n = 0
			}
			return Take(e.Run(f.B, ctx, val), int(n))
		})

	case FRange:
		return e.runRange(f.A, f.B, ctx, val)

	case FSkipCtx:
		return e.Run(f.A, ctx.Skip(f.N), val)

	case FVar:
		v, ok := ctx.Get(f.N)
		if !ok {
			return Once(ErrR(strErr("unbound variable")))
		}
		return Once(OkR(v))

	case FArg:
		panic("jqcore: unsubstituted Arg reached evaluation -- Subst must run first")

	default:
		return Once(ErrR(strErr("unimplemented filter kind")))
	}
}

func mapVal(val Val, f func(Val) (Val, error)) Stream {
	v, err := f(val)
	if err != nil {
		return Once(ErrR(err))
	}
	return Once(OkR(v))
}

// runObject implements the cartesian construction of `{k: v, ...}`:
// every pair's key and value expressions are evaluated, and one output
// object is produced per combination across every pair (left to right).
// A pair whose key or value expression yields nothing makes the whole
// object expression yield nothing, same as any other cartesian factor.
func (e *Evaluator) runObject(pairs []Pair, ctx Ctx, val Val) []ValR {
	type kv struct{ k, v ValR }
	rows := [][]kv{{}}
	for _, p := range pairs {
		keys := CollectR(e.Run(p.K, ctx, val))
		vals := CollectR(e.Run(p.V, ctx, val))
		var factor []kv
		for _, k := range keys {
			for _, v := range vals {
				factor = append(factor, kv{k: k, v: v})
			}
		}
		if len(factor) == 0 {
			rows = nil
			break
		}
		var next [][]kv
		for _, prefix := range rows {
			for _, f := range factor {
				row := append(append([]kv{}, prefix...), f)
				next = append(next, row)
			}
		}
		rows = next
	}
	out := make([]ValR, 0, len(rows))
	for _, row := range rows {
		entries := make([]ObjEntry, 0, len(row))
		var bad error
		for _, pair := range row {
			if pair.k.IsErr() {
				bad = pair.k.Err
				break
			}
			if pair.v.IsErr() {
				bad = pair.v.Err
				break
			}
			key, err := pair.k.Val.AsStr()
			if err != nil {
				bad = err
				break
			}
			entries = append(entries, ObjEntry{Key: key, Val: pair.v.Val})
		}
		if bad != nil {
			out = append(out, ErrR(bad))
			continue
		}
		out = append(out, OkR(Obj(entries)))
	}
	return out
}

// runAlt implements `l // r`: the filtered (non-error, truthy) output of
// l if it has any element, else the output of r. Checking for the first
// element of the filtered stream is itself a single eager pull, matching
// the reference interpreter's own `match l.next()` dispatch.
func (e *Evaluator) runAlt(l, r *Filter, ctx Ctx, val Val) Stream {
	filtered := filterStream(e.Run(l, ctx, val), func(v ValR) bool {
		return !v.IsErr() && v.Val.AsBool()
	})
	first, ok := filtered.Next()
	if !ok {
		return e.Run(r, ctx, val)
	}
	return Concat(Once(first), filtered)
}

// filterStream keeps only elements satisfying keep.
func filterStream(s Stream, keep func(ValR) bool) Stream {
	return streamOf(func() (ValR, bool) {
		for {
			r, ok := s.Next()
			if !ok {
				return ValR{}, false
			}
			if keep(r) {
				return r, true
			}
		}
	})
}

// ifThenElse walks an if/elif chain; body renders the chosen branch.
func (e *Evaluator) ifThenElse(pairs []Pair, elseF *Filter, ctx Ctx, val Val, body func(*Filter, Val) Stream) Stream {
	if len(pairs) == 0 {
		return body(elseF, val)
	}
	head := pairs[0]
	return FlatMap(e.Run(head.K, ctx, val), func(cond Val) Stream {
		if cond.AsBool() {
			return body(head.V, val)
		}
		return e.ifThenElse(pairs[1:], elseF, ctx, val, body)
	})
}

// runReduce implements `reduce xs as $_ (init; f)`: fold every xs output
// through f, threading the accumulator (itself possibly multi-valued)
// as f's input and carrying $_ through ctx.
func (e *Evaluator) runReduce(xs, init, f *Filter, ctx Ctx, val Val) Stream {
	return Thunk(func() []ValR {
		acc, err := Collect(e.Run(init, ctx, val))
		if err != nil {
			return []ValR{ErrR(err)}
		}
		xStream := e.Run(xs, ctx, val)
		for {
			x, ok := xStream.Next()
			if !ok {
				break
			}
			if x.IsErr() {
				return []ValR{x}
			}
			var next []Val
			for _, a := range acc {
				vs, err := Collect(e.Run(f, ctx.Cons(x.Val), a))
				if err != nil {
					return []ValR{ErrR(err)}
				}
				next = append(next, vs...)
			}
			acc = next
		}
		out := make([]ValR, len(acc))
		for i, a := range acc {
			out[i] = OkR(a)
		}
		return out
	})
}

// runSortBy sorts an array by the key(s) each element's filter produces,
// stably, erroring the whole operation if any key computation errors or
// the input is not an array.
func (e *Evaluator) runSortBy(keyF *Filter, ctx Ctx, val Val) []ValR {
	arr, err := val.AsArr()
	if err != nil {
		return []ValR{ErrR(err)}
	}
	type keyed struct {
		key Val
		val Val
	}
	ks := make([]keyed, len(arr))
	for i, x := range arr {
		kvs, err := Collect(e.Run(keyF, ctx, x))
		if err != nil {
			return []ValR{ErrR(err)}
		}
		ks[i] = keyed{key: Arr(kvs), val: x}
	}
	for i := 1; i < len(ks); i++ {
		for j := i; j > 0 && Compare(ks[j-1].key, ks[j].key) > 0; j-- {
			ks[j-1], ks[j] = ks[j], ks[j-1]
		}
	}
	out := make([]Val, len(ks))
	for i, k := range ks {
		out[i] = k.val
	}
	return []ValR{OkR(Arr(out))}
}

// runLast consumes f's entire output, keeping the final Ok element (or
// the first error, which aborts immediately). Over an infinite stream
// this never returns -- last is not a total function, matching the
// reference semantics it is drawn from.
func (e *Evaluator) runLast(f *Filter, ctx Ctx, val Val) Stream {
	return Thunk(func() []ValR {
		s := e.Run(f, ctx, val)
		var last ValR
		have := false
		for {
			r, ok := s.Next()
			if !ok {
				break
			}
			if r.IsErr() {
				return []ValR{r}
			}
			last, have = r, true
		}
		if !have {
			return nil
		}
		return []ValR{last}
	})
}

// runRecurse implements `recurse(f)`: emit the current value, then for
// every value f produces, recurse into it. Uses an explicit worklist
// (stack of pending substreams) rather than Go call-stack recursion, so
// an unbounded recursion depth cannot overflow the goroutine stack.
func (e *Evaluator) runRecurse(f *Filter, ctx Ctx, val Val) Stream {
	type frame struct{ s Stream }
	stack := []frame{{s: Once(OkR(val))}}
	return streamOf(func() (ValR, bool) {
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			r, ok := top.s.Next()
			if !ok {
				stack = stack[:len(stack)-1]
				continue
			}
			if r.IsErr() {
				return r, true
			}
			stack = append(stack, frame{s: e.Run(f, ctx, r.Val)})
			return r, true
		}
		return ValR{}, false
	})
}

// runRange implements `range(from; until)`: for every (from, until) pair
// produced by the two expressions, lazily emit from, from+1, ..., until-1.
func (e *Evaluator) runRange(fromF, untilF *Filter, ctx Ctx, val Val) Stream {
	untilVals := CollectR(e.Run(untilF, ctx, val))
	lStream := e.Run(fromF, ctx, val)
	var curL ValR
	haveL := false
	rIdx := 0
	var sub Stream
	return streamOf(func() (ValR, bool) {
		for {
			if sub != nil {
				if r, ok := sub.Next(); ok {
					return r, true
				}
				sub = nil
			}
			if !haveL {
				l, ok := lStream.Next()
				if !ok {
					return ValR{}, false
				}
				curL, haveL, rIdx = l, true, 0
			}
			if rIdx >= len(untilVals) {
				haveL = false
				continue
			}
			u := untilVals[rIdx]
			rIdx++
			if curL.IsErr() {
				sub = Once(curL)
				continue
			}
			if u.IsErr() {
				sub = Once(u)
				continue
			}
			li, err := curL.Val.AsInt()
			if err != nil {
				sub = Once(ErrR(err))
				continue
			}
			ui, err := u.Val.AsInt()
			if err != nil {
				sub = Once(ErrR(err))
				continue
			}
			sub = intRangeStream(li, ui)
		}
	})
}

func intRangeStream(lo, hi int64) Stream {
	cur := lo
	return streamOf(func() (ValR, bool) {
		if cur >= hi {
			return ValR{}, false
		}
		v := cur
		cur++
		return OkR(Int(v)), true
	})
}

func fkindName(k FKind) string {
	names := [...]string{
		"id", "null", "int", "float", "str", "array", "object", "try", "neg",
		"pipe", "comma", "alt", "if", "reduce", "path", "assign", "update",
		"logic", "math", "ord", "empty", "error", "length", "floor",
		"round", "ceil", "fromjson", "tojson", "keys", "explode",
		"implode", "ascii_downcase", "ascii_upcase", "reverse", "sort",
		"sort_by", "has", "split", "first", "last", "recurse", "contains",
		"limit", "range", "skipctx", "var", "arg",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}
