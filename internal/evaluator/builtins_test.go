package evaluator

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuiltinFunctions(t *testing.T) {
	tests := []struct {
		input string
		want  Object
	}{
		{`len("")`, Integer{Value: 0}},
		{`len("four")`, Integer{Value: 4}},
		{`len("hello world")`, Integer{Value: 11}},
		{`len([1, 2, 3])`, Integer{Value: 3}},
		{`len([])`, Integer{Value: 0}},
		{`len(1)`, Error{Message: `argument to "len" not supported, got INTEGER`}},
		{`len("one", "two")`, Error{Message: "wrong number of arguments. got=2, want=1"}},
		{`first([1, 2, 3])`, Integer{Value: 1}},
		{`first([])`, NullValue},
		{`first(1)`, Error{Message: `argument to "first" must be ARRAY, got INTEGER`}},
		{`last([1, 2, 3])`, Integer{Value: 3}},
		{`last([])`, NullValue},
		{`last(1)`, Error{Message: `argument to "last" must be ARRAY, got INTEGER`}},
		{`rest([1, 2, 3])`, Array{Elements: []Object{Integer{Value: 2}, Integer{Value: 3}}}},
		{`rest([1])`, Array{Elements: []Object{}}},
		{`rest([])`, NullValue},
		{`rest()`, Error{Message: "wrong number of arguments. got=0, want=1"}},
		{`push([], 1)`, Array{Elements: []Object{Integer{Value: 1}}}},
		{`push(1, 1)`, Error{Message: `argument to "push" must be ARRAY, got INTEGER`}},
		{`push([1])`, Error{Message: "wrong number of arguments. got=1, want=2"}},
		{`let a = [1]; let b = push(a, 2); [a, b]`, Array{Elements: []Object{
			Array{Elements: []Object{Integer{Value: 1}}},
			Array{Elements: []Object{Integer{Value: 1}, Integer{Value: 2}}},
		}}},
		{`len(rest(rest([1, 2, 3])))`, Integer{Value: 1}},
	}
	for _, tt := range tests {
		got := testEval(t, tt.input, WithOutput(&bytes.Buffer{}))
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%q mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}

func TestOutputBuiltins(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`puts("hello", 1, [1, 2])`, "hello\n1\n[1, 2]\n"},
		{`println("x")`, "x\n"},
		{`puts()`, ""},
		{`print("a", 1, true)`, "a 1 true\n"},
		{`print()`, "\n"},
		{`let h = {"k": "v"}; puts(h)`, "{k: v}\n"},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got := testEval(t, tt.input, WithOutput(&out))
		if diff := cmp.Diff(NullValue, got); diff != "" {
			t.Errorf("%q result mismatch (-want +got):\n%s", tt.input, diff)
		}
		if diff := cmp.Diff(tt.want, out.String()); diff != "" {
			t.Errorf("%q output mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}

func TestExitBuiltin(t *testing.T) {
	tests := []struct {
		input    string
		wantCode int
		wantErr  string
	}{
		{input: `exit()`, wantCode: 0},
		{input: `exit(3)`, wantCode: 3},
		{input: `exit(1, 2)`, wantCode: -1, wantErr: "wrong number of arguments. got=2, want=0 or 1"},
		{input: `exit("x")`, wantCode: -1, wantErr: `argument to "exit" not supported, got STRING`},
	}
	for _, tt := range tests {
		code := -1
		got := testEval(t, tt.input, WithExit(func(c int) { code = c }))
		if code != tt.wantCode {
			t.Errorf("%q exit code = %d, want %d", tt.input, code, tt.wantCode)
		}
		if tt.wantErr == "" {
			continue
		}
		if diff := cmp.Diff(Object(Error{Message: tt.wantErr}), got); diff != "" {
			t.Errorf("%q mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}
