package evaluator

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEnvironmentSnapshotIsolation(t *testing.T) {
	env := NewEnvironment()
	env.Set("a", Integer{Value: 1})

	snap := env.Snapshot()
	env.Set("a", Integer{Value: 2})
	env.Set("b", Integer{Value: 3})

	if v, _ := snap.Get("a"); v != Object(Integer{Value: 1}) {
		t.Errorf("snapshot sees a = %v, want 1", v)
	}
	if _, ok := snap.Get("b"); ok {
		t.Error("snapshot sees b bound after capture")
	}

	snap.Set("c", Integer{Value: 4})
	if _, ok := env.Get("c"); ok {
		t.Error("write to snapshot leaked into original")
	}
}

func TestEnvironmentChild(t *testing.T) {
	root := NewEnvironment()
	root.Set("outer", String{Value: "o"})

	child := root.NewChild()
	child.Set("inner", String{Value: "i"})
	child.Set("outer", String{Value: "shadow"})

	if v, _ := child.Get("outer"); v != Object(String{Value: "shadow"}) {
		t.Errorf("child outer = %v, want shadow", v)
	}
	if v, _ := root.Get("outer"); v != Object(String{Value: "o"}) {
		t.Errorf("root outer = %v, want o", v)
	}
	if _, ok := root.Get("inner"); ok {
		t.Error("child binding visible from root")
	}

	root.Set("late", TrueValue)
	if _, ok := child.Get("late"); ok {
		t.Error("child sees binding added to root after it was created")
	}

	grandchild := child.NewChild()
	if v, ok := grandchild.Get("inner"); !ok || v != Object(String{Value: "i"}) {
		t.Errorf("grandchild inner = %v, %v", v, ok)
	}
}

func TestEnvironmentNames(t *testing.T) {
	env := NewEnvironment()
	for _, n := range []string{"zeta", "alpha", "mid"} {
		env.Set(n, NullValue)
	}
	if diff := cmp.Diff([]string{"alpha", "mid", "zeta"}, env.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	if got := env.NewChild().Names(); len(got) != 0 {
		t.Errorf("child Names() = %v, want none", got)
	}
}
