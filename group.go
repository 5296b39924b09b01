// Translation groups.
//
// A group maps source text to translation text. An empty translation is
// legal and means "known, not yet translated": Lookup reports it as present
// and substitutes the caller's default, which is what lets a higher-priority
// group claim a source string and hide lower groups without supplying text.
package cktext

import (
	"iter"
	"log/slog"
	"maps"
	"slices"
)

// Group is a named overlay of source to translation pairs with its own
// properties and priority.
type Group struct {
	name     string
	items    map[string]string
	props    Properties
	priority uint32
	owner    *Document
}

// newGroup builds a group whose priority is derived from props.
func newGroup(name string, props *Properties, log *slog.Logger) *Group {
	g := &Group{
		name:  name,
		items: make(map[string]string),
		props: Properties{log: log},
	}
	g.props.copyFrom(props)
	g.priority = priorityOf(&g.props)
	return g
}

// Name returns the group name. The default group has the empty name.
func (g *Group) Name() string {
	return g.name
}

// Priority returns the resolution priority; higher is consulted first.
func (g *Group) Priority() uint32 {
	return g.priority
}

// Properties returns the group's property table. Changing "priority" here
// takes effect on the next load; use Document.Reprioritize to apply it now.
func (g *Group) Properties() *Properties {
	return &g.props
}

// Set stores the translation for src. src must be 1 to MaxTextSize bytes and
// trs at most MaxTextSize bytes.
func (g *Group) Set(src, trs string) error {
	if err := validateItem(src, trs); err != nil {
		g.props.logger().Warn("translation rejected",
			slog.String("group", g.name),
			slog.Int("src_len", len(src)),
			slog.Int("trs_len", len(trs)),
			slog.Any("error", err))
		return err
	}
	g.items[src] = trs
	return nil
}

// Lookup returns the translation of src. When src is present with an empty
// translation, def is returned instead. The second result is false only when
// src is not in the group at all.
func (g *Group) Lookup(src, def string) (string, bool) {
	trs, ok := g.items[src]
	if !ok {
		return "", false
	}
	if trs == "" {
		return def, true
	}
	return trs, true
}

// Lookup32 is Lookup with the result decoded to code points.
func (g *Group) Lookup32(src, def string) ([]rune, bool) {
	trs, ok := g.Lookup(src, def)
	if !ok {
		return nil, false
	}
	return U8To32(trs), true
}

// Remove deletes src from the group.
func (g *Group) Remove(src string) {
	delete(g.items, src)
}

// Clear empties the group, its properties, and resets its priority.
func (g *Group) Clear() {
	g.props.Clear()
	clear(g.items)
	if g.priority != DefaultPriority {
		g.priority = DefaultPriority
		if g.owner != nil {
			g.owner.resort()
		}
	}
}

// Len returns the number of translation pairs.
func (g *Group) Len() int {
	return len(g.items)
}

// Empty reports whether the group holds no translation pairs.
func (g *Group) Empty() bool {
	return len(g.items) == 0
}

// All yields every source/translation pair in source order.
func (g *Group) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, src := range slices.Sorted(maps.Keys(g.items)) {
			if !yield(src, g.items[src]) {
				return
			}
		}
	}
}

// merge copies every pair of other into g; other wins on conflict.
func (g *Group) merge(other *Group) {
	maps.Copy(g.items, other.items)
}

// validateItem checks source and translation bounds before any write.
func validateItem(src, trs string) error {
	if len(src) < 1 || len(src) > MaxTextSize {
		return ErrInvalidSource
	}
	if len(trs) > MaxTextSize {
		return ErrInvalidTranslation
	}
	return nil
}
