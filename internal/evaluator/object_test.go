package evaluator

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInspect(t *testing.T) {
	h := NewHash()
	h.Put(String{Value: "a"}, Integer{Value: 1})
	h.Put(Integer{Value: 2}, Array{Elements: []Object{TrueValue, NullValue}})

	tests := []struct {
		obj  Object
		want string
	}{
		{Integer{Value: -42}, "-42"},
		{TrueValue, "true"},
		{FalseValue, "false"},
		{String{Value: "hi there"}, "hi there"},
		{NullValue, "null"},
		{Error{Message: "boom"}, "Error: boom"},
		{ReturnValue{Value: Integer{Value: 3}}, "3"},
		{Array{Elements: []Object{Integer{Value: 1}, String{Value: "x"}}}, "[1, x]"},
		{Array{}, "[]"},
		{h, "{a: 1, 2: [true, null]}"},
		{NewHash(), "{}"},
		{Builtin{Name: "len"}, "builtin function len"},
	}
	for _, tt := range tests {
		if got := tt.obj.Inspect(); got != tt.want {
			t.Errorf("%T.Inspect() = %q, want %q", tt.obj, got, tt.want)
		}
	}
}

func TestFormatNil(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}
	if got := Format(Integer{Value: 7}); got != "7" {
		t.Errorf("Format(7) = %q", got)
	}
}

func TestHashKeys(t *testing.T) {
	h := NewHash()
	if !h.Put(Integer{Value: 1}, String{Value: "int"}) {
		t.Fatal("integer key rejected")
	}
	if !h.Put(String{Value: "1"}, String{Value: "str"}) {
		t.Fatal("string key rejected")
	}
	if !h.Put(TrueValue, String{Value: "bool"}) {
		t.Fatal("boolean key rejected")
	}
	if h.Put(Array{}, NullValue) {
		t.Error("array key accepted")
	}
	if h.Put(NullValue, NullValue) {
		t.Error("null key accepted")
	}
	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}

	tests := []struct {
		key  Object
		want Object
	}{
		{Integer{Value: 1}, String{Value: "int"}},
		{String{Value: "1"}, String{Value: "str"}},
		{TrueValue, String{Value: "bool"}},
	}
	for _, tt := range tests {
		got, ok := h.Get(tt.key)
		if !ok {
			t.Errorf("Get(%s) missing", tt.key.Inspect())
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Get(%s) mismatch (-want +got):\n%s", tt.key.Inspect(), diff)
		}
	}
	if _, ok := h.Get(FalseValue); ok {
		t.Error("Get(false) found a value")
	}
	if _, ok := h.Get(Array{}); ok {
		t.Error("Get(array) found a value")
	}
}

func TestHashOverwriteKeepsPosition(t *testing.T) {
	h := NewHash()
	h.Put(String{Value: "x"}, Integer{Value: 1})
	h.Put(String{Value: "y"}, Integer{Value: 2})
	h.Put(String{Value: "x"}, Integer{Value: 3})

	want := []HashPair{
		{Key: String{Value: "x"}, Value: Integer{Value: 3}},
		{Key: String{Value: "y"}, Value: Integer{Value: 2}},
	}
	if diff := cmp.Diff(want, h.Pairs()); diff != "" {
		t.Errorf("pairs mismatch (-want +got):\n%s", diff)
	}
}
