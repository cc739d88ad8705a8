package runtime

import "sort"

// Scope is the index of a frame inside an Environment.
type Scope int

// NoScope is the parent of the global frame.
const NoScope Scope = -1

type frame struct {
	values map[string]Value
	parent Scope
}

// Environment is an arena of frames. Frames are linked to their parent by
// index, and a function call pushes a frame whose parent is the caller's
// frame. Frames are discarded in LIFO order when calls return.
type Environment struct {
	frames []frame
}

// NewEnvironment creates an arena holding only the global frame.
func NewEnvironment() *Environment {
	e := &Environment{}
	e.frames = append(e.frames, frame{values: make(map[string]Value), parent: NoScope})
	return e
}

// Global returns the outermost frame.
func (e *Environment) Global() Scope {
	return 0
}

// Push creates a child frame of parent and returns its scope.
func (e *Environment) Push(parent Scope) Scope {
	e.frames = append(e.frames, frame{values: make(map[string]Value), parent: parent})
	return Scope(len(e.frames) - 1)
}

// Pop discards scope and every frame created after it. The global frame is
// never discarded.
func (e *Environment) Pop(scope Scope) {
	if scope <= 0 || int(scope) >= len(e.frames) {
		return
	}
	for idx := int(scope); idx < len(e.frames); idx++ {
		e.frames[idx] = frame{}
	}
	e.frames = e.frames[:scope]
}

// Len reports how many frames are live.
func (e *Environment) Len() int {
	return len(e.frames)
}

// Valid reports whether scope refers to a live frame.
func (e *Environment) Valid(scope Scope) bool {
	return scope >= 0 && int(scope) < len(e.frames)
}

// Define inserts or shadows a binding in scope itself, never in an ancestor.
func (e *Environment) Define(scope Scope, name string, value Value) {
	e.frames[scope].values[name] = value
}

// Get retrieves a binding, searching outward through the parent chain.
func (e *Environment) Get(scope Scope, name string) (Value, error) {
	for cur := scope; e.Valid(cur); cur = e.frames[cur].parent {
		if v, ok := e.frames[cur].values[name]; ok {
			return v, nil
		}
	}
	return nil, NameNotFound(name)
}

// Has reports whether the binding exists anywhere in the chain.
func (e *Environment) Has(scope Scope, name string) bool {
	_, err := e.Get(scope, name)
	return err == nil
}

// Depth counts the frames on the chain from scope to the global frame.
func (e *Environment) Depth(scope Scope) int {
	depth := 0
	for cur := scope; e.Valid(cur); cur = e.frames[cur].parent {
		depth++
	}
	return depth
}

// Keys returns the local bindings of scope in sorted order.
func (e *Environment) Keys(scope Scope) []string {
	if !e.Valid(scope) {
		return nil
	}
	keys := make([]string, 0, len(e.frames[scope].values))
	for k := range e.frames[scope].values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
