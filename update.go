package jqcore

// Replace is the leaf transform threaded through Update: given the old
// value at one addressed path, it yields the candidate replacement(s).
// Assign's replace ignores its argument and always yields the same
// precomputed value; Update's replace runs the modifier filter against
// the old value and keeps only its first output.
type Replace func(Val) Stream

// Update is a separate recursion from Run for path-expression filters: it
// walks the subset of filter shapes that are valid path expressions
// (Id, Path, Pipe, Comma, IfThenElse, Recurse, Empty) and threads replace
// down to every addressed leaf, producing the whole rewritten document
// for each combination Pipe/Comma/IfThenElse/Recurse can fan out.
// Anything else reaching this recursion is not a path expression and is
// a caller bug, not a user-triggerable runtime error.
func (e *Evaluator) Update(f *Filter, ctx Ctx, val Val, replace Replace) Stream {
	switch f.Kind {
	case FId:
		return replace(val)

	case FPath:
		return e.Update(f.A, ctx, val, func(v Val) Stream {
			nv, err := e.pathUpdate(f.PathSpec, ctx, v, replace)
			if err != nil {
				return Once(ErrR(err))
			}
			return Once(OkR(nv))
		})

	case FPipe:
		if f.PipeBind {
			return FlatMap(e.Run(f.A, ctx, val), func(y Val) Stream {
				return e.Update(f.B, ctx.Cons(y), val, replace)
			})
		}
		return e.Update(f.A, ctx, val, func(v Val) Stream {
			return e.Update(f.B, ctx, v, replace)
		})

	case FComma:
		return FlatMap(e.Update(f.A, ctx, val, replace), func(v Val) Stream {
			return e.Update(f.B, ctx, v, replace)
		})

	case FIfThenElse:
		return e.ifThenElse(f.Pairs, f.A, ctx, val, func(then *Filter, v Val) Stream {
			return e.Update(then, ctx, v, replace)
		})

	case FRecurse:
		var rec Replace
		rec = func(v Val) Stream { return e.Update(f, ctx, v, replace) }
		return FlatMap(replace(val), func(v Val) Stream {
			return e.Update(f.A, ctx, v, rec)
		})

	case FEmpty:
		return Once(OkR(val))

	default:
		return Once(ErrR(strErr("invalid path expression")))
	}
}

// pathUpdate applies one fully concrete Path's parts against val,
// threading replace through to the deepest addressed slot. The leaf
// only ever consults the first element replace produces for a given
// slot, so multi-valued fan-out of whole documents must come from the
// filter-level recursion above (Comma/Pipe/IfThenElse/Recurse over
// distinct path expressions), not from the parts of a single Path.
func (e *Evaluator) pathUpdate(path Path, ctx Ctx, val Val, replace Replace) (Val, error) {
	parts, err := e.materializePath(path, ctx, val)
	if err != nil {
		return Val{}, err
	}
	leaf := func(v Val) (Val, error) {
		r, ok := replace(v).Next()
		if !ok {
			return v, nil
		}
		if r.IsErr() {
			return Val{}, r.Err
		}
		return r.Val, nil
	}
	return applyParts(val, parts, leaf)
}

func applyParts(v Val, parts []concretePart, leaf func(Val) (Val, error)) (Val, error) {
	if len(parts) == 0 {
		return leaf(v)
	}
	p := parts[0]
	rest := func(x Val) (Val, error) { return applyParts(x, parts[1:], leaf) }
	return setAt(v, p, rest)
}
