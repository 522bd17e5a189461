package evaluator

import (
	"fmt"
	"strings"
)

// BuiltinFunc is a native function. It validates its own arguments and
// reports misuse as an Error object.
type BuiltinFunc func(ev *Evaluator, args ...Object) Object

// builtins is the closed registry of native functions. It is consulted only
// for names with no binding in the environment.
var builtins = map[string]BuiltinFunc{
	"len":     builtinLen,
	"first":   builtinFirst,
	"last":    builtinLast,
	"rest":    builtinRest,
	"push":    builtinPush,
	"puts":    builtinPuts,
	"println": builtinPuts,
	"print":   builtinPrint,
	"exit":    builtinExit,
}

func lookupBuiltin(name string) (Builtin, bool) {
	fn, ok := builtins[name]
	if !ok {
		return Builtin{}, false
	}
	return Builtin{Name: name, Fn: fn}, true
}

func wrongArgCount(got, want int) Error {
	return newError("wrong number of arguments. got=%d, want=%d", got, want)
}

func builtinLen(_ *Evaluator, args ...Object) Object {
	if len(args) != 1 {
		return wrongArgCount(len(args), 1)
	}
	switch arg := args[0].(type) {
	case String:
		return Integer{Value: int64(len(arg.Value))}
	case Array:
		return Integer{Value: int64(len(arg.Elements))}
	default:
		return newError("argument to \"len\" not supported, got %s", args[0].Kind())
	}
}

// arrayArg checks the single-array signature shared by first, last and rest.
func arrayArg(name string, args []Object) (Array, Object) {
	if len(args) != 1 {
		return Array{}, wrongArgCount(len(args), 1)
	}
	arr, ok := args[0].(Array)
	if !ok {
		return Array{}, newError("argument to %q must be ARRAY, got %s", name, args[0].Kind())
	}
	return arr, nil
}

func builtinFirst(_ *Evaluator, args ...Object) Object {
	arr, errObj := arrayArg("first", args)
	if errObj != nil {
		return errObj
	}
	if len(arr.Elements) == 0 {
		return NullValue
	}
	return arr.Elements[0]
}

func builtinLast(_ *Evaluator, args ...Object) Object {
	arr, errObj := arrayArg("last", args)
	if errObj != nil {
		return errObj
	}
	if len(arr.Elements) == 0 {
		return NullValue
	}
	return arr.Elements[len(arr.Elements)-1]
}

func builtinRest(_ *Evaluator, args ...Object) Object {
	arr, errObj := arrayArg("rest", args)
	if errObj != nil {
		return errObj
	}
	if len(arr.Elements) == 0 {
		return NullValue
	}
	rest := make([]Object, len(arr.Elements)-1)
	copy(rest, arr.Elements[1:])
	return Array{Elements: rest}
}

// builtinPush returns a new array; the argument is left untouched.
func builtinPush(_ *Evaluator, args ...Object) Object {
	if len(args) != 2 {
		return wrongArgCount(len(args), 2)
	}
	arr, ok := args[0].(Array)
	if !ok {
		return newError("argument to \"push\" must be ARRAY, got %s", args[0].Kind())
	}
	out := make([]Object, 0, len(arr.Elements)+1)
	out = append(out, arr.Elements...)
	out = append(out, args[1])
	return Array{Elements: out}
}

func builtinPuts(ev *Evaluator, args ...Object) Object {
	for _, a := range args {
		fmt.Fprintln(ev.out, a.Inspect())
	}
	return NullValue
}

func builtinPrint(ev *Evaluator, args ...Object) Object {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Inspect()
	}
	fmt.Fprintln(ev.out, strings.Join(parts, " "))
	return NullValue
}

// builtinExit hands control to the evaluator's exit function, os.Exit by
// default, which does not return.
func builtinExit(ev *Evaluator, args ...Object) Object {
	if len(args) > 1 {
		return newError("wrong number of arguments. got=%d, want=0 or 1", len(args))
	}
	code := 0
	if len(args) == 1 {
		i, ok := args[0].(Integer)
		if !ok {
			return newError("argument to \"exit\" not supported, got %s", args[0].Kind())
		}
		code = int(i.Value)
	}
	ev.logger.Debug("exit requested", "code", code)
	ev.exit(code)
	return NullValue
}
