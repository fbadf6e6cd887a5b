// Package preferences provides typed, default-backed preference access over a
// pluggable Store (in-memory, SQLite, or user-supplied).
//
// Every preference path must be registered with a default before it is read
// or written; accessing an unregistered path, registering a path twice, or
// mixing types on one path are caller bugs and panic. Store failures on read
// fall back to the registered default, so getters always return a usable
// value.
package preferences

import (
	"github.com/basekit-go/basekit/status"
	"github.com/basekit-go/basekit/value"
)

// Preferences is the typed facade. Register all paths at startup, before the
// first Get/Set; registration itself is not synchronized.
type Preferences struct {
	store    Store
	defaults map[string]value.Value
}

// New creates a Preferences facade over store.
func New(store Store) *Preferences {
	if store == nil {
		panic("preferences: nil store")
	}
	return &Preferences{
		store:    store,
		defaults: make(map[string]value.Value),
	}
}

// RegisterBoolPreference registers path with a bool default.
func (p *Preferences) RegisterBoolPreference(path string, def bool) {
	p.register(path, value.NewBool(def))
}

// RegisterIntPreference registers path with an int default.
func (p *Preferences) RegisterIntPreference(path string, def int) {
	p.register(path, value.NewInt(def))
}

// RegisterFloat64Preference registers path with a float64 default.
func (p *Preferences) RegisterFloat64Preference(path string, def float64) {
	p.register(path, value.NewNumber(def))
}

// RegisterStringPreference registers path with a string default.
func (p *Preferences) RegisterStringPreference(path string, def string) {
	p.register(path, value.NewString(def))
}

// RegisterArrayPreference registers path with an array default.
func (p *Preferences) RegisterArrayPreference(path string, def value.Array) {
	p.register(path, value.NewArray(def))
}

// RegisterObjectPreference registers path with an object default.
func (p *Preferences) RegisterObjectPreference(path string, def value.Object) {
	p.register(path, value.NewObject(def))
}

func (p *Preferences) register(path string, def value.Value) {
	if _, ok := p.defaults[path]; ok {
		panic("preferences: " + path + " is already registered")
	}
	p.defaults[path] = def
}

// GetBool returns the stored bool at path, or the registered default.
func (p *Preferences) GetBool(path string) bool {
	return p.get(path, value.TypeBool).GetBool()
}

// GetInt returns the stored int at path, or the registered default.
func (p *Preferences) GetInt(path string) int {
	return p.get(path, value.TypeNumber).GetInt()
}

// GetFloat64 returns the stored number at path, or the registered default.
func (p *Preferences) GetFloat64(path string) float64 {
	return p.get(path, value.TypeNumber).GetFloat64()
}

// GetString returns the stored string at path, or the registered default.
func (p *Preferences) GetString(path string) string {
	return p.get(path, value.TypeString).GetString()
}

// GetArray returns the stored array at path, or the registered default.
func (p *Preferences) GetArray(path string) value.Array {
	return p.get(path, value.TypeArray).GetArray()
}

// GetObject returns the stored object at path, or the registered default.
func (p *Preferences) GetObject(path string) value.Object {
	return p.get(path, value.TypeObject).GetObject()
}

// SetBool stores a bool at path.
func (p *Preferences) SetBool(path string, v bool) error {
	return p.set(path, value.NewBool(v))
}

// SetInt stores an int at path.
func (p *Preferences) SetInt(path string, v int) error {
	return p.set(path, value.NewInt(v))
}

// SetFloat64 stores a number at path.
func (p *Preferences) SetFloat64(path string, v float64) error {
	return p.set(path, value.NewNumber(v))
}

// SetString stores a string at path.
func (p *Preferences) SetString(path string, v string) error {
	return p.set(path, value.NewString(v))
}

// SetArray stores an array at path.
func (p *Preferences) SetArray(path string, v value.Array) error {
	return p.set(path, value.NewArray(v))
}

// SetObject stores an object at path.
func (p *Preferences) SetObject(path string, v value.Object) error {
	return p.set(path, value.NewObject(v))
}

// get returns the stored value at path when present and well-typed, otherwise
// the registered default.
func (p *Preferences) get(path string, t value.Type) value.Value {
	def := p.registered(path, t)
	stored, err := p.store.GetValue(path)
	if err != nil || stored.Type() != t {
		return def
	}
	return stored
}

func (p *Preferences) set(path string, v value.Value) error {
	p.registered(path, v.Type())
	if err := p.store.SetValue(path, v); err != nil {
		return status.Wrap(status.CodeOf(err), err, "can't set preference "+path)
	}
	return nil
}

func (p *Preferences) registered(path string, t value.Type) value.Value {
	def, ok := p.defaults[path]
	if !ok {
		panic("preferences: " + path + " is not registered")
	}
	if def.Type() != t {
		panic("preferences: " + path + " is registered as " + def.Type().String() +
			", accessed as " + t.String())
	}
	return def
}
