// Property tables: typed, size-bounded metadata for documents and groups.
//
// Limits are enforced in Set so that a table can always be serialised:
// names are 1-64 bytes, String values 1-255 bytes. A rejected Set leaves the
// table untouched, logs a warning and returns the reason.
package cktext

import (
	"iter"
	"log/slog"
	"maps"
	"slices"
)

// Properties maps names to typed values. Iteration is in name order. The
// zero value is an empty table ready for use.
type Properties struct {
	m   map[string]Value
	log *slog.Logger
}

// NewProperties returns an empty table.
func NewProperties() *Properties {
	return &Properties{}
}

// Get returns the value stored under name, or nil if there is none.
func (p *Properties) Get(name string) Value {
	return p.m[name]
}

// Lookup is Get with an explicit presence flag.
func (p *Properties) Lookup(name string) (Value, bool) {
	v, ok := p.m[name]
	return v, ok
}

// Set stores v under name, replacing any previous value.
func (p *Properties) Set(name string, v Value) error {
	if v == nil {
		return ErrInvalidValue // untyped values are skipped quietly
	}
	if err := validateProperty(name, v); err != nil {
		p.logger().Warn("property rejected",
			slog.Int("name_len", len(name)),
			slog.String("kind", KindOf(v).String()),
			slog.Any("error", err))
		return err
	}
	if p.m == nil {
		p.m = make(map[string]Value)
	}
	p.m[name] = v
	return nil
}

// Remove deletes name. Removing a missing name is a no-op.
func (p *Properties) Remove(name string) {
	delete(p.m, name)
}

// Clear deletes every entry.
func (p *Properties) Clear() {
	clear(p.m)
}

// Len returns the number of entries.
func (p *Properties) Len() int {
	return len(p.m)
}

// Empty reports whether the table has no entries.
func (p *Properties) Empty() bool {
	return len(p.m) == 0
}

// All yields every entry in name order.
func (p *Properties) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, name := range slices.Sorted(maps.Keys(p.m)) {
			if !yield(name, p.m[name]) {
				return
			}
		}
	}
}

// Clone returns an independent copy of the table.
func (p *Properties) Clone() *Properties {
	if p == nil {
		return &Properties{}
	}
	return &Properties{m: maps.Clone(p.m), log: p.log}
}

// copyFrom replaces the contents of p with those of src.
func (p *Properties) copyFrom(src *Properties) {
	p.m = nil
	if src != nil && len(src.m) > 0 {
		p.m = maps.Clone(src.m)
	}
}

func (p *Properties) logger() *slog.Logger {
	if p.log != nil {
		return p.log
	}
	return slog.Default()
}

// validateProperty checks name and value bounds before any write.
func validateProperty(name string, v Value) error {
	if len(name) < 1 || len(name) > MaxNameSize {
		return ErrInvalidName
	}
	switch x := v.(type) {
	case nil:
		return ErrInvalidValue
	case String:
		if len(x) < 1 || len(x) > MaxStringSize {
			return ErrInvalidValue
		}
	case Bool, Int, Float:
	}
	return nil
}

// priorityOf derives a group priority from its "priority" property. Only an
// Int property counts; negative values are clamped to zero.
func priorityOf(p *Properties) uint32 {
	v, ok := p.Get(PriorityProperty).(Int)
	if !ok {
		return DefaultPriority
	}
	if v < 0 {
		return 0
	}
	return uint32(v)
}
