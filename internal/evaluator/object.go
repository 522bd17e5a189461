package evaluator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"monkey-lang/impl/internal/parser"
)

// Kind is the runtime type tag of an Object, used in error messages.
type Kind string

const (
	INTEGER  Kind = "INTEGER"
	BOOLEAN  Kind = "BOOLEAN"
	STRING   Kind = "STRING"
	NULL     Kind = "NULL"
	RETURN   Kind = "RETURN"
	ERROR    Kind = "ERROR"
	FUNCTION Kind = "FUNCTION"
	BUILTIN  Kind = "BUILTIN"
	ARRAY    Kind = "ARRAY"
	HASH     Kind = "HASH"
)

// Object is a runtime value. The set of implementations is closed.
type Object interface {
	Kind() Kind
	Inspect() string
	isObject()
}

type (
	Integer struct{ Value int64 }
	Boolean struct{ Value bool }
	String  struct{ Value string }
	Null    struct{}

	// ReturnValue marks a value travelling out of a return statement. It
	// never escapes a function call or the top-level program.
	ReturnValue struct{ Value Object }

	// Error is a failed evaluation. It propagates like ReturnValue until the
	// top-level caller sees it.
	Error struct{ Message string }

	// Function is a closure. Env is a snapshot of the defining scope.
	Function struct {
		Parameters []string
		Env        *Environment
		Body       parser.Block
	}

	Builtin struct {
		Name string
		Fn   BuiltinFunc
	}

	Array struct{ Elements []Object }
)

var (
	NullValue  Object = Null{}
	TrueValue  Object = Boolean{Value: true}
	FalseValue Object = Boolean{Value: false}
)

func (Integer) Kind() Kind     { return INTEGER }
func (Boolean) Kind() Kind     { return BOOLEAN }
func (String) Kind() Kind      { return STRING }
func (Null) Kind() Kind        { return NULL }
func (ReturnValue) Kind() Kind { return RETURN }
func (Error) Kind() Kind       { return ERROR }
func (*Function) Kind() Kind   { return FUNCTION }
func (Builtin) Kind() Kind     { return BUILTIN }
func (Array) Kind() Kind       { return ARRAY }
func (*Hash) Kind() Kind       { return HASH }

func (Integer) isObject()     {}
func (Boolean) isObject()     {}
func (String) isObject()      {}
func (Null) isObject()        {}
func (ReturnValue) isObject() {}
func (Error) isObject()       {}
func (*Function) isObject()   {}
func (Builtin) isObject()     {}
func (Array) isObject()       {}
func (*Hash) isObject()       {}

func (o Integer) Inspect() string     { return strconv.FormatInt(o.Value, 10) }
func (o Boolean) Inspect() string     { return strconv.FormatBool(o.Value) }
func (o String) Inspect() string      { return o.Value }
func (Null) Inspect() string          { return "null" }
func (o ReturnValue) Inspect() string { return o.Value.Inspect() }
func (o Error) Inspect() string       { return "Error: " + o.Message }
func (o Builtin) Inspect() string     { return "builtin function " + o.Name }

func (o *Function) Inspect() string {
	return "fn(" + strings.Join(o.Parameters, ", ") + ") { " + o.Body.String() + " }"
}

func (o Array) Inspect() string {
	parts := make([]string, len(o.Elements))
	for i, e := range o.Elements {
		parts[i] = e.Inspect()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func nativeBool(b bool) Object {
	if b {
		return TrueValue
	}
	return FalseValue
}

func newError(format string, args ...any) Error {
	return Error{Message: fmt.Sprintf(format, args...)}
}

func isError(o Object) bool {
	_, ok := o.(Error)
	return ok
}

// HashKey identifies a hashable Object. Only integers, booleans and strings
// produce one.
type HashKey struct {
	Kind Kind
	Int  int64
	Str  string
}

func hashKeyOf(o Object) (HashKey, bool) {
	switch v := o.(type) {
	case Integer:
		return HashKey{Kind: INTEGER, Int: v.Value}, true
	case Boolean:
		k := HashKey{Kind: BOOLEAN}
		if v.Value {
			k.Int = 1
		}
		return k, true
	case String:
		return HashKey{Kind: STRING, Str: v.Value}, true
	default:
		return HashKey{}, false
	}
}

// HashPair keeps the original key Object next to its value for rendering.
type HashPair struct {
	Key   Object
	Value Object
}

// Hash is an insertion-ordered mapping. Writing an existing key replaces the
// value but keeps the key's first position.
type Hash struct {
	pairs *linkedhashmap.Map
}

func NewHash() *Hash {
	return &Hash{pairs: linkedhashmap.New()}
}

// Put stores key/value and reports false when key is not hashable.
func (h *Hash) Put(key, value Object) bool {
	hk, ok := hashKeyOf(key)
	if !ok {
		return false
	}
	h.pairs.Put(hk, HashPair{Key: key, Value: value})
	return true
}

// Get looks key up; ok is false when the key is missing or not hashable.
func (h *Hash) Get(key Object) (Object, bool) {
	hk, ok := hashKeyOf(key)
	if !ok {
		return nil, false
	}
	v, found := h.pairs.Get(hk)
	if !found {
		return nil, false
	}
	return v.(HashPair).Value, true
}

func (h *Hash) Len() int { return h.pairs.Size() }

// Pairs returns the entries in insertion order.
func (h *Hash) Pairs() []HashPair {
	out := make([]HashPair, 0, h.pairs.Size())
	it := h.pairs.Iterator()
	for it.Next() {
		out = append(out, it.Value().(HashPair))
	}
	return out
}

func (h *Hash) Inspect() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, p := range h.Pairs() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Key.Inspect())
		b.WriteString(": ")
		b.WriteString(p.Value.Inspect())
	}
	b.WriteByte('}')
	return b.String()
}
