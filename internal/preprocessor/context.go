package preprocessor

// Context tracks the set of files currently being expanded. It is owned by a
// single Engine call stack for the duration of one run; there is no locking
// because expansion is strictly synchronous recursion.
//
// Invariant: a path is in the active set exactly when it is on the stack.
// Enter pushes both, Leave pops both.
type Context struct {
	active   map[string]struct{}
	stack    []string
	maxDepth int
}

// NewContext creates an empty context with the given depth limit. The
// top-level input file occupies depth 1 once entered.
func NewContext(maxDepth int) *Context {
	return &Context{
		active:   make(map[string]struct{}),
		maxDepth: maxDepth,
	}
}

// Depth returns the current include nesting, defined as the stack length.
func (c *Context) Depth() int {
	return len(c.stack)
}

// Chain returns a copy of the current include chain, outermost file first.
func (c *Context) Chain() []string {
	chain := make([]string, len(c.stack))
	copy(chain, c.stack)
	return chain
}

// Enter marks path as being expanded. It fails if path is already on the
// active chain or if pushing it would exceed the depth limit. Every
// successful Enter must be paired with exactly one Leave, including on error
// exit from the expansion it guards, or a later independent include of the
// same file would be falsely flagged as circular.
func (c *Context) Enter(path string) error {
	if _, ok := c.active[path]; ok {
		return &CircularDependencyError{Path: path, Chain: append(c.Chain(), path)}
	}
	if len(c.stack)+1 > c.maxDepth {
		return &MaxDepthError{Path: path, MaxDepth: c.maxDepth}
	}

	c.active[path] = struct{}{}
	c.stack = append(c.stack, path)
	return nil
}

// Leave unmarks the most recently entered file.
func (c *Context) Leave() {
	if len(c.stack) == 0 {
		return
	}
	top := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	delete(c.active, top)
}
