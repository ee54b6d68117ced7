package jqcore

// FKind tags the variant of a Filter node.
type FKind uint8

const (
	FId FKind = iota
	FNull
	FInt
	FFloat
	FStr
	FArray
	FObject
	FTry
	FNeg
	FPipe
	FComma
	FAlt
	FIfThenElse
	FReduce
	FPath
	FAssign
	FUpdate
	FLogic
	FMath
	FOrd
	FEmpty
	FError
	FLength
	FFloor
	FRound
	FCeil
	FFromJson
	FToJson
	FKeys
	FExplode
	FImplode
	FAsciiDowncase
	FAsciiUpcase
	FReverse
	FSort
	FSortBy
	FHas
	FSplit
	FFirst
	FLast
	FRecurse
	FContains
	FLimit
	FRange
	FSkipCtx
	FVar
	FArg
)

// Pair is a key/value filter pair (Object construction) or a
// condition/then pair (IfThenElse).
type Pair struct {
	K, V *Filter
}

// Filter is a tagged-variant filter expression tree (see the FKind
// constants and the constructors below for its shapes). It is built programmatically (by an external
// parser+elaborator, or directly by a caller) and is immutable once
// constructed; the evaluator only ever reads it.
type Filter struct {
	Kind FKind

	IntV   int64
	FloatV float64
	StrV   string

	// A, B, C are the generic children used by most variants; see the
	// constructors below for which fields a given Kind populates.
	A, B, C *Filter

	Pairs []Pair

	PathSpec Path

	MathOp    MathOp
	OrdOp     OrdOp
	LogicStop bool
	PipeBind  bool

	N int // Var(n) / Arg(n) / SkipCtx(n)
}

func Id() *Filter                 { return &Filter{Kind: FId} }
func NullLit() *Filter            { return &Filter{Kind: FNull} }
func IntLit(n int64) *Filter      { return &Filter{Kind: FInt, IntV: n} }
func FloatLit(x float64) *Filter  { return &Filter{Kind: FFloat, FloatV: x} }
func StrLit(s string) *Filter     { return &Filter{Kind: FStr, StrV: s} }
func ArrayF(f *Filter) *Filter    { return &Filter{Kind: FArray, A: f} }
func ObjectF(pairs []Pair) *Filter { return &Filter{Kind: FObject, Pairs: pairs} }
func TryF(f *Filter) *Filter      { return &Filter{Kind: FTry, A: f} }
func NegF(f *Filter) *Filter      { return &Filter{Kind: FNeg, A: f} }

func PipeF(l *Filter, bind bool, r *Filter) *Filter {
	return &Filter{Kind: FPipe, A: l, B: r, PipeBind: bind}
}
func CommaF(l, r *Filter) *Filter { return &Filter{Kind: FComma, A: l, B: r} }
func AltF(l, r *Filter) *Filter   { return &Filter{Kind: FAlt, A: l, B: r} }

func IfThenElseF(ifThens []Pair, else_ *Filter) *Filter {
	return &Filter{Kind: FIfThenElse, Pairs: ifThens, A: else_}
}
func ReduceF(xs, init, f *Filter) *Filter {
	return &Filter{Kind: FReduce, A: xs, B: init, C: f}
}
func PathF(init *Filter, path Path) *Filter {
	return &Filter{Kind: FPath, A: init, PathSpec: path}
}
func AssignF(path, f *Filter) *Filter { return &Filter{Kind: FAssign, A: path, B: f} }
func UpdateF(path, f *Filter) *Filter { return &Filter{Kind: FUpdate, A: path, B: f} }

func LogicF(l *Filter, stop bool, r *Filter) *Filter {
	return &Filter{Kind: FLogic, A: l, B: r, LogicStop: stop}
}
func MathF(l *Filter, op MathOp, r *Filter) *Filter {
	return &Filter{Kind: FMath, A: l, B: r, MathOp: op}
}
func OrdF(l *Filter, op OrdOp, r *Filter) *Filter {
	return &Filter{Kind: FOrd, A: l, B: r, OrdOp: op}
}

func EmptyF() *Filter          { return &Filter{Kind: FEmpty} }
func ErrorF() *Filter          { return &Filter{Kind: FError} }
func LengthF() *Filter         { return &Filter{Kind: FLength} }
func FloorF() *Filter          { return &Filter{Kind: FFloor} }
func RoundF() *Filter          { return &Filter{Kind: FRound} }
func CeilF() *Filter           { return &Filter{Kind: FCeil} }
func FromJsonF() *Filter       { return &Filter{Kind: FFromJson} }
func ToJsonF() *Filter         { return &Filter{Kind: FToJson} }
func KeysF() *Filter           { return &Filter{Kind: FKeys} }
func ExplodeF() *Filter        { return &Filter{Kind: FExplode} }
func ImplodeF() *Filter        { return &Filter{Kind: FImplode} }
func AsciiDowncaseF() *Filter  { return &Filter{Kind: FAsciiDowncase} }
func AsciiUpcaseF() *Filter    { return &Filter{Kind: FAsciiUpcase} }
func ReverseF() *Filter        { return &Filter{Kind: FReverse} }
func SortF() *Filter           { return &Filter{Kind: FSort} }
func SortByF(f *Filter) *Filter { return &Filter{Kind: FSortBy, A: f} }
func HasF(f *Filter) *Filter    { return &Filter{Kind: FHas, A: f} }
func SplitF(f *Filter) *Filter  { return &Filter{Kind: FSplit, A: f} }
func FirstF(f *Filter) *Filter  { return &Filter{Kind: FFirst, A: f} }
func LastF(f *Filter) *Filter   { return &Filter{Kind: FLast, A: f} }
func RecurseF(f *Filter) *Filter { return &Filter{Kind: FRecurse, A: f} }
func ContainsF(f *Filter) *Filter { return &Filter{Kind: FContains, A: f} }
func LimitF(n, f *Filter) *Filter { return &Filter{Kind: FLimit, A: n, B: f} }
func RangeF(from, until *Filter) *Filter { return &Filter{Kind: FRange, A: from, B: until} }

func SkipCtxF(n int, f *Filter) *Filter { return &Filter{Kind: FSkipCtx, N: n, A: f} }
func VarF(n int) *Filter                { return &Filter{Kind: FVar, N: n} }
func ArgF(n int) *Filter                { return &Filter{Kind: FArg, N: n} }

// RecurseDot builds `.[]?` (an optional PartIter part) as a Path
// filter, used as the default body of `..` (recurse(.[]?)).
func RecurseDot() *Filter {
	part := PathPart{Kind: PartIter, Opt: Optional}
	return PathF(Id(), Path{part})
}

// Subst replaces every Arg(i) in f with args[i], recursively, producing
// a new closed filter tree. It is the one substitution pass that must
// run before Run/Update ever see the tree -- encountering an Arg node at
// evaluation time is a bug, not a user error.
func Subst(f *Filter, args []*Filter) *Filter {
	if f == nil {
		return nil
	}
	sub := func(c *Filter) *Filter { return Subst(c, args) }
	subPairs := func(ps []Pair) []Pair {
		if ps == nil {
			return nil
		}
		out := make([]Pair, len(ps))
		for i, p := range ps {
			out[i] = Pair{K: sub(p.K), V: sub(p.V)}
		}
		return out
	}
	subPath := func(p Path) Path {
		if p == nil {
			return nil
		}
		out := make(Path, len(p))
		for i, part := range p {
			out[i] = PathPart{
				Kind:  part.Kind,
				Opt:   part.Opt,
				Index: sub(part.Index),
				From:  sub(part.From),
				Until: sub(part.Until),
			}
		}
		return out
	}

	switch f.Kind {
	case FArg:
		return args[f.N]
	case FVar, FId, FNull, FInt, FFloat, FStr, FEmpty, FError,
		FLength, FFloor, FRound, FCeil, FFromJson, FToJson, FKeys,
		FExplode, FImplode, FAsciiDowncase, FAsciiUpcase, FReverse, FSort:
		return f
	case FArray:
		return &Filter{Kind: FArray, A: sub(f.A)}
	case FObject:
		return &Filter{Kind: FObject, Pairs: subPairs(f.Pairs)}
	case FTry:
		return &Filter{Kind: FTry, A: sub(f.A)}
	case FNeg:
		return &Filter{Kind: FNeg, A: sub(f.A)}
	case FPipe:
		return &Filter{Kind: FPipe, A: sub(f.A), B: sub(f.B), PipeBind: f.PipeBind}
	case FComma:
		return &Filter{Kind: FComma, A: sub(f.A), B: sub(f.B)}
	case FAlt:
		return &Filter{Kind: FAlt, A: sub(f.A), B: sub(f.B)}
	case FIfThenElse:
		return &Filter{Kind: FIfThenElse, Pairs: subPairs(f.Pairs), A: sub(f.A)}
	case FReduce:
		return &Filter{Kind: FReduce, A: sub(f.A), B: sub(f.B), C: sub(f.C)}
	case FPath:
		return &Filter{Kind: FPath, A: sub(f.A), PathSpec: subPath(f.PathSpec)}
	case FAssign:
		return &Filter{Kind: FAssign, A: sub(f.A), B: sub(f.B)}
	case FUpdate:
		return &Filter{Kind: FUpdate, A: sub(f.A), B: sub(f.B)}
	case FLogic:
		return &Filter{Kind: FLogic, A: sub(f.A), B: sub(f.B), LogicStop: f.LogicStop}
	case FMath:
		return &Filter{Kind: FMath, A: sub(f.A), B: sub(f.B), MathOp: f.MathOp}
	case FOrd:
		return &Filter{Kind: FOrd, A: sub(f.A), B: sub(f.B), OrdOp: f.OrdOp}
	case FSortBy:
		return &Filter{Kind: FSortBy, A: sub(f.A)}
	case FHas:
		return &Filter{Kind: FHas, A: sub(f.A)}
	case FSplit:
		return &Filter{Kind: FSplit, A: sub(f.A)}
	case FFirst:
		return &Filter{Kind: FFirst, A: sub(f.A)}
	case FLast:
		return &Filter{Kind: FLast, A: sub(f.A)}
	case FRecurse:
		return &Filter{Kind: FRecurse, A: sub(f.A)}
	case FContains:
		return &Filter{Kind: FContains, A: sub(f.A)}
	case FLimit:
		return &Filter{Kind: FLimit, A: sub(f.A), B: sub(f.B)}
	case FRange:
		return &Filter{Kind: FRange, A: sub(f.A), B: sub(f.B)}
	case FSkipCtx:
		return &Filter{Kind: FSkipCtx, N: f.N, A: sub(f.A)}
	default:
		return f
	}
}
