package value_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/basekit-go/basekit/value"
)

func expectPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Error("expected panic, got none")
		}
	}()
	fn()
}

func TestValue_ZeroValueIsNull(t *testing.T) {
	var v value.Value
	if !v.IsNull() {
		t.Errorf("zero Value type: got = %v, want null", v.Type())
	}
}

func TestValue_Constructors(t *testing.T) {
	cases := []struct {
		name string
		v    value.Value
		typ  value.Type
	}{
		{"null", value.NewNull(), value.TypeNull},
		{"bool", value.NewBool(true), value.TypeBool},
		{"number", value.NewNumber(1.5), value.TypeNumber},
		{"int", value.NewInt(42), value.TypeNumber},
		{"string", value.NewString("hi"), value.TypeString},
		{"array", value.NewArray(nil), value.TypeArray},
		{"object", value.NewObject(nil), value.TypeObject},
	}
	for _, c := range cases {
		if got := c.v.Type(); got != c.typ {
			t.Errorf("%s: type got = %v, want %v", c.name, got, c.typ)
		}
	}
}

func TestValue_Accessors(t *testing.T) {
	if got := value.NewBool(true).GetBool(); got != true {
		t.Errorf("GetBool: got = %v, want true", got)
	}
	if got := value.NewNumber(2.5).GetFloat64(); got != 2.5 {
		t.Errorf("GetFloat64: got = %v, want 2.5", got)
	}
	if got := value.NewInt(7).GetInt(); got != 7 {
		t.Errorf("GetInt: got = %d, want 7", got)
	}
	if got := value.NewInt64(1 << 40).GetInt64(); got != 1<<40 {
		t.Errorf("GetInt64: got = %d, want %d", got, int64(1)<<40)
	}
	if got := value.NewString("hi").GetString(); got != "hi" {
		t.Errorf("GetString: got = %q, want %q", got, "hi")
	}
}

func TestValue_AccessorTypeMismatchPanics(t *testing.T) {
	expectPanic(t, func() { value.NewBool(true).GetString() })
	expectPanic(t, func() { value.NewString("x").GetBool() })
	expectPanic(t, func() { value.NewNull().GetObject() })
	expectPanic(t, func() { value.NewNumber(1.5e300).GetInt64() })
}

func TestValue_NonFiniteNumberPanics(t *testing.T) {
	expectPanic(t, func() { value.NewNumber(math.NaN()) })
	expectPanic(t, func() { value.NewNumber(math.Inf(1)) })
}

func TestValue_UnsafeIntegerPanics(t *testing.T) {
	expectPanic(t, func() { value.NewInt64(value.MaxSafeInteger + 1) })
	expectPanic(t, func() { value.NewInt64(-(value.MaxSafeInteger + 1)) })
}

func TestValue_IntPredicates(t *testing.T) {
	if !value.NewInt(10).IsInt() {
		t.Error("IsInt on 10: got = false, want true")
	}
	if value.NewNumber(1e15).IsInt() {
		t.Error("IsInt on 1e15: got = true, want false")
	}
	if !value.NewNumber(1e15).IsInt64() {
		t.Error("IsInt64 on 1e15: got = false, want true")
	}
	if value.NewString("x").IsInt64() {
		t.Error("IsInt64 on string: got = true, want false")
	}
}

func TestValue_KeyOperations(t *testing.T) {
	obj := value.NewObject(nil)
	obj.SetKey("flag", value.NewBool(true))
	obj.SetKey("count", value.NewInt(3))
	obj.SetKey("name", value.NewString("kit"))

	if got, ok := obj.FindBoolKey("flag"); !ok || got != true {
		t.Errorf("FindBoolKey: got = (%v, %v), want (true, true)", got, ok)
	}
	if got, ok := obj.FindIntKey("count"); !ok || got != 3 {
		t.Errorf("FindIntKey: got = (%d, %v), want (3, true)", got, ok)
	}
	if got, ok := obj.FindStringKey("name"); !ok || got != "kit" {
		t.Errorf("FindStringKey: got = (%q, %v), want (kit, true)", got, ok)
	}

	// Wrong type lookups miss instead of converting.
	if _, ok := obj.FindStringKey("flag"); ok {
		t.Error("FindStringKey on bool: got ok, want miss")
	}
	if _, ok := obj.FindKey("absent"); ok {
		t.Error("FindKey on absent key: got ok, want miss")
	}

	if !obj.RemoveKey("flag") {
		t.Error("RemoveKey existing: got = false, want true")
	}
	if obj.RemoveKey("flag") {
		t.Error("RemoveKey removed: got = true, want false")
	}
}

func TestValue_KeyOperationsOnNonObjectPanic(t *testing.T) {
	expectPanic(t, func() { value.NewString("x").FindKey("k") })
	expectPanic(t, func() { value.NewArray(nil).SetKey("k", value.NewNull()) })
}

func TestValue_Paths(t *testing.T) {
	root := value.NewObject(nil)
	root.SetPath("window.size.width", value.NewInt(1280))
	root.SetPath("window.size.height", value.NewInt(720))
	root.SetPath("window.title", value.NewString("basekit"))

	if got, ok := root.FindPath("window.size.width"); !ok || got.GetInt() != 1280 {
		t.Errorf("FindPath width: got = (%v, %v), want (1280, true)", got, ok)
	}
	if got, ok := root.FindPath("window.title"); !ok || got.GetString() != "basekit" {
		t.Errorf("FindPath title: got = (%v, %v), want (basekit, true)", got, ok)
	}
	if _, ok := root.FindPath("window.size.depth"); ok {
		t.Error("FindPath absent leaf: got ok, want miss")
	}
	if _, ok := root.FindPath("window.title.sub"); ok {
		t.Error("FindPath through a string: got ok, want miss")
	}

	// Replacing a non-object intermediate.
	root.SetPath("window.title.sub", value.NewBool(true))
	if got, ok := root.FindPath("window.title.sub"); !ok || got.GetBool() != true {
		t.Errorf("FindPath after replace: got = (%v, %v), want (true, true)", got, ok)
	}
}

func TestValue_CloneIsDeep(t *testing.T) {
	original := value.NewObject(value.Object{
		"list": value.NewArray(value.Array{value.NewInt(1)}),
	})
	clone := original.Clone()

	original.SetPath("list", value.NewInt(9))

	got, ok := clone.FindPath("list")
	if !ok || !got.IsArray() {
		t.Fatalf("clone mutated through original: got = (%v, %v)", got, ok)
	}
}

func TestValue_Equal(t *testing.T) {
	a := value.NewObject(value.Object{
		"n":   value.NewNumber(1),
		"arr": value.NewArray(value.Array{value.NewString("x"), value.NewNull()}),
	})
	b := a.Clone()

	if !value.Equal(a, b) {
		t.Error("Equal on clone: got = false, want true")
	}

	b.SetKey("n", value.NewNumber(2))
	if value.Equal(a, b) {
		t.Error("Equal after mutation: got = true, want false")
	}

	if value.Equal(value.NewInt(1), value.NewBool(true)) {
		t.Error("Equal across types: got = true, want false")
	}
}

func TestValue_JSONRoundTrip(t *testing.T) {
	original := value.NewObject(value.Object{
		"null":   value.NewNull(),
		"bool":   value.NewBool(true),
		"number": value.NewNumber(1.25),
		"string": value.NewString("hello"),
		"array":  value.NewArray(value.Array{value.NewInt(1), value.NewString("two")}),
		"object": value.NewObject(value.Object{"nested": value.NewBool(false)}),
	})

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded value.Value
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if !value.Equal(original, decoded) {
		t.Errorf("round trip mismatch: got %s", data)
	}
}

func TestValue_UnmarshalRejectsGarbage(t *testing.T) {
	var v value.Value
	if err := json.Unmarshal([]byte("{not json"), &v); err == nil {
		t.Error("Unmarshal garbage: got nil error, want error")
	}
}
