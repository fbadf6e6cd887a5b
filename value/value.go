// Package value provides a JSON-like tagged-union value.
//
// A Value stores exactly one of {null, bool, number, string, array, object}.
// It is a recursive data storage type intended for settings and other
// persistable data, not a generalized variant: only the types representable
// in JSON are supported. In particular there are no unsigned or full-range
// 64-bit integers; integers are stored as float64 and asserted to stay within
// the maximum safe integer (2^53 - 1).
//
// Assigning a Value replaces the previous payload wholesale; the old payload
// is simply dropped for the garbage collector, never reinterpreted in place.
// Copying a Value shares underlying array and object storage; use Clone for
// an independent deep copy.
package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Type enumerates the payload kinds supported by JSON.
type Type int8

const (
	TypeNull Type = iota
	TypeBool
	TypeNumber
	TypeString
	TypeArray
	TypeObject
)

func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	default:
		return "invalid"
	}
}

// Array is the payload of an array Value.
type Array = []Value

// Object is the payload of an object Value.
type Object = map[string]Value

// MaxSafeInteger is the largest integer magnitude a Value number can hold
// without loss, matching JavaScript's Number.MAX_SAFE_INTEGER.
const MaxSafeInteger = 1<<53 - 1

// Value is the tagged union. The zero Value is null.
type Value struct {
	typ     Type
	boolean bool
	number  float64
	str     string
	array   Array
	object  Object
}

// NewNull returns a null Value.
func NewNull() Value {
	return Value{typ: TypeNull}
}

// NewBool returns a bool Value.
func NewBool(b bool) Value {
	return Value{typ: TypeBool, boolean: b}
}

// NewNumber returns a number Value. Non-finite numbers cannot be represented
// in JSON and panic.
func NewNumber(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		panic("value: non-finite numbers cannot be represented in JSON")
	}
	return Value{typ: TypeNumber, number: f}
}

// NewInt64 returns a number Value. Magnitudes beyond MaxSafeInteger lose
// precision and panic.
func NewInt64(i int64) Value {
	if i > MaxSafeInteger || i < -MaxSafeInteger {
		panic(fmt.Sprintf("value: %d exceeds the maximum safe integer", i))
	}
	return NewNumber(float64(i))
}

// NewInt returns a number Value.
func NewInt(i int) Value {
	return NewInt64(int64(i))
}

// NewString returns a string Value.
func NewString(s string) Value {
	return Value{typ: TypeString, str: s}
}

// NewArray returns an array Value taking ownership of arr. A nil arr yields
// an empty array.
func NewArray(arr Array) Value {
	if arr == nil {
		arr = Array{}
	}
	return Value{typ: TypeArray, array: arr}
}

// NewObject returns an object Value taking ownership of obj. A nil obj yields
// an empty object.
func NewObject(obj Object) Value {
	if obj == nil {
		obj = Object{}
	}
	return Value{typ: TypeObject, object: obj}
}

// Type returns the kind of the stored payload.
func (v Value) Type() Type { return v.typ }

func (v Value) IsNull() bool   { return v.typ == TypeNull }
func (v Value) IsBool() bool   { return v.typ == TypeBool }
func (v Value) IsNumber() bool { return v.typ == TypeNumber }
func (v Value) IsString() bool { return v.typ == TypeString }
func (v Value) IsArray() bool  { return v.typ == TypeArray }
func (v Value) IsObject() bool { return v.typ == TypeObject }

// IsInt64 reports whether the value is a number within the safe integer
// range.
func (v Value) IsInt64() bool {
	return v.IsNumber() && math.Abs(v.number) <= MaxSafeInteger
}

// IsInt reports whether the value is a number representable as int.
func (v Value) IsInt() bool {
	return v.IsNumber() && v.number >= math.MinInt32 && v.number <= math.MaxInt32
}

// The accessors assert the payload type; a mismatch is a caller bug and
// panics.

func (v Value) GetBool() bool {
	v.mustBe(TypeBool)
	return v.boolean
}

func (v Value) GetFloat64() float64 {
	v.mustBe(TypeNumber)
	return v.number
}

func (v Value) GetInt64() int64 {
	if !v.IsInt64() {
		panic("value: not a safe integer, actual type " + v.typ.String())
	}
	return int64(v.number)
}

func (v Value) GetInt() int {
	if !v.IsInt() {
		panic("value: not an int, actual type " + v.typ.String())
	}
	return int(v.number)
}

func (v Value) GetString() string {
	v.mustBe(TypeString)
	return v.str
}

func (v Value) GetArray() Array {
	v.mustBe(TypeArray)
	return v.array
}

func (v Value) GetObject() Object {
	v.mustBe(TypeObject)
	return v.object
}

func (v Value) mustBe(t Type) {
	if v.typ != t {
		panic("value: not a " + t.String() + ", actual type " + v.typ.String())
	}
}

// Clone returns a deep copy: nested arrays and objects are copied, not
// shared.
func (v Value) Clone() Value {
	switch v.typ {
	case TypeArray:
		arr := make(Array, len(v.array))
		for i, elem := range v.array {
			arr[i] = elem.Clone()
		}
		return Value{typ: TypeArray, array: arr}
	case TypeObject:
		obj := make(Object, len(v.object))
		for k, elem := range v.object {
			obj[k] = elem.Clone()
		}
		return Value{typ: TypeObject, object: obj}
	default:
		return v
	}
}

// Equal reports deep equality of type and payload.
func Equal(a, b Value) bool {
	if a.typ != b.typ {
		return false
	}
	switch a.typ {
	case TypeNull:
		return true
	case TypeBool:
		return a.boolean == b.boolean
	case TypeNumber:
		return a.number == b.number
	case TypeString:
		return a.str == b.str
	case TypeArray:
		if len(a.array) != len(b.array) {
			return false
		}
		for i := range a.array {
			if !Equal(a.array[i], b.array[i]) {
				return false
			}
		}
		return true
	case TypeObject:
		if len(a.object) != len(b.object) {
			return false
		}
		for k, av := range a.object {
			bv, ok := b.object[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// =============================================================================
// Object key and path operations (assert the value is an object)
// =============================================================================

// FindKey looks up key in the underlying object.
func (v Value) FindKey(key string) (Value, bool) {
	obj := v.GetObject()
	found, ok := obj[key]
	return found, ok
}

// FindKeyOfType is FindKey with an additional type requirement on the found
// value.
func (v Value) FindKeyOfType(key string, t Type) (Value, bool) {
	found, ok := v.FindKey(key)
	if !ok || found.typ != t {
		return Value{}, false
	}
	return found, true
}

// FindBoolKey returns the bool mapped to key, if any.
func (v Value) FindBoolKey(key string) (bool, bool) {
	found, ok := v.FindKeyOfType(key, TypeBool)
	if !ok {
		return false, false
	}
	return found.boolean, true
}

// FindInt64Key returns the safe integer mapped to key, if any.
func (v Value) FindInt64Key(key string) (int64, bool) {
	found, ok := v.FindKeyOfType(key, TypeNumber)
	if !ok || !found.IsInt64() {
		return 0, false
	}
	return int64(found.number), true
}

// FindIntKey returns the int mapped to key, if any.
func (v Value) FindIntKey(key string) (int, bool) {
	found, ok := v.FindKeyOfType(key, TypeNumber)
	if !ok || !found.IsInt() {
		return 0, false
	}
	return int(found.number), true
}

// FindFloat64Key returns the number mapped to key, if any.
func (v Value) FindFloat64Key(key string) (float64, bool) {
	found, ok := v.FindKeyOfType(key, TypeNumber)
	if !ok {
		return 0, false
	}
	return found.number, true
}

// FindStringKey returns the string mapped to key, if any.
func (v Value) FindStringKey(key string) (string, bool) {
	found, ok := v.FindKeyOfType(key, TypeString)
	if !ok {
		return "", false
	}
	return found.str, true
}

// SetKey maps key to val, inserting or replacing.
func (v Value) SetKey(key string, val Value) {
	v.GetObject()[key] = val
}

// RemoveKey deletes key from the object. Returns false if key was absent.
func (v Value) RemoveKey(key string) bool {
	obj := v.GetObject()
	if _, ok := obj[key]; !ok {
		return false
	}
	delete(obj, key)
	return true
}

// SetPath sets val at a dotted path of the form "key" or "key.key[...]",
// creating intermediate objects as needed. Existing non-object intermediates
// are replaced.
func (v Value) SetPath(path string, val Value) {
	keys := strings.Split(path, ".")
	obj := v.GetObject()
	for _, key := range keys[:len(keys)-1] {
		next, ok := obj[key]
		if !ok || !next.IsObject() {
			next = NewObject(nil)
			obj[key] = next
		}
		obj = next.object
	}
	obj[keys[len(keys)-1]] = val
}

// FindPath looks up a dotted path starting from this object.
func (v Value) FindPath(path string) (Value, bool) {
	keys := strings.Split(path, ".")
	cur := v
	for i, key := range keys {
		if !cur.IsObject() {
			return Value{}, false
		}
		next, ok := cur.object[key]
		if !ok {
			return Value{}, false
		}
		if i == len(keys)-1 {
			return next, true
		}
		cur = next
	}
	return Value{}, false
}

// =============================================================================
// JSON interop
// =============================================================================

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.typ {
	case TypeNull:
		return []byte("null"), nil
	case TypeBool:
		return json.Marshal(v.boolean)
	case TypeNumber:
		return json.Marshal(v.number)
	case TypeString:
		return json.Marshal(v.str)
	case TypeArray:
		return json.Marshal(v.array)
	case TypeObject:
		return json.Marshal(v.object)
	default:
		return nil, fmt.Errorf("value: invalid type %d", v.typ)
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed, err := fromJSON(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func fromJSON(raw any) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return NewNull(), nil
	case bool:
		return NewBool(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("value: bad number %q: %w", t.String(), err)
		}
		return NewNumber(f), nil
	case string:
		return NewString(t), nil
	case []any:
		arr := make(Array, len(t))
		for i, elem := range t {
			parsed, err := fromJSON(elem)
			if err != nil {
				return Value{}, err
			}
			arr[i] = parsed
		}
		return NewArray(arr), nil
	case map[string]any:
		obj := make(Object, len(t))
		for k, elem := range t {
			parsed, err := fromJSON(elem)
			if err != nil {
				return Value{}, err
			}
			obj[k] = parsed
		}
		return NewObject(obj), nil
	default:
		return Value{}, fmt.Errorf("value: unsupported JSON token %T", raw)
	}
}
