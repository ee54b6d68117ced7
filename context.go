package jqcore

// Ctx is an immutable singly-linked stack of variable bindings, indexed
// from the most recently bound frame. It mirrors the Rc<Node<T>> list
// used by the reference interpreter for the same purpose: nodes are
// shared by reference (here, simply by pointer -- Go's garbage collector
// makes the manual try_unwrap/clone-on-non-unique-owner dance in the
// reference implementation unnecessary, since nothing ever mutates a
// node in place).
type Ctx struct {
	node *ctxNode
}

type ctxNode struct {
	val  Val
	tail *Ctx
}

// NewCtx returns the empty context.
func NewCtx() Ctx { return Ctx{} }

// Cons pushes a new binding, returning a new stack that shares the tail
// with the receiver.
func (c Ctx) Cons(v Val) Ctx {
	return Ctx{node: &ctxNode{val: v, tail: &c}}
}

// Head returns the most recently bound value, or false if the stack is
// empty.
func (c Ctx) Head() (Val, bool) {
	if c.node == nil {
		return Val{}, false
	}
	return c.node.val, true
}

// Skip drops the n most recently bound frames, returning the tail. If n
// exceeds the stack depth, the empty context is returned.
func (c Ctx) Skip(n int) Ctx {
	cur := c
	for i := 0; i < n; i++ {
		if cur.node == nil {
			return cur
		}
		cur = *cur.node.tail
	}
	return cur
}

// Get reads the n-th frame from the top (Get(0) == Head()).
func (c Ctx) Get(n int) (Val, bool) {
	return c.Skip(n).Head()
}
