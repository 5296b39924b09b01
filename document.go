// Core document type and group management.
//
// Document owns the groups, the document-level properties, and the
// resolution order used by Lookup. The order is a cached slice of groups
// sorted by priority (descending) then name (ascending); it is rebuilt after
// every structural change so that reads never sort.
package cktext

import (
	"cmp"
	"iter"
	"log/slog"
	"maps"
	"slices"
)

// Config holds document configuration options.
type Config struct {
	HashAlgorithm int          // Fingerprint hash: 1=xxHash3, 2=FNV1a, 3=Blake2b
	BlockSize     int          // Compression window, rounded up to a power of two in [1KB, zstd max] (default 1MB)
	Level         int          // Compression level: 1=fastest .. 4=best (default 2); others fail Save
	MaxInflate    int64        // Upper bound on a decompressed payload (default 1GB)
	SyncWrites    bool         // fsync before the atomic rename in Save
	Logger        *slog.Logger // Diagnostics (default slog.Default())
}

// Document is a collection of translation groups. It is not safe for
// concurrent mutation.
type Document struct {
	groups map[string]*Group
	props  Properties
	sorted []*Group
	config Config
	log    *slog.Logger
}

// New returns an empty document holding only the default group.
func New(config Config) *Document {
	if config.HashAlgorithm == 0 {
		config.HashAlgorithm = AlgXXHash3
	}
	config.BlockSize = windowSize(config.BlockSize)
	if config.Level == 0 {
		config.Level = LevelDefault
	}
	if config.MaxInflate == 0 {
		config.MaxInflate = DefaultMaxInflate
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	d := &Document{
		groups: make(map[string]*Group),
		config: config,
		log:    config.Logger,
	}
	d.props.log = d.log
	d.adopt(newGroup("", nil, d.log))
	d.resort()
	return d
}

// Properties returns the document-level property table.
func (d *Document) Properties() *Properties {
	return &d.props
}

// Group returns the named group, or nil if it does not exist. The empty
// name selects the default group, which always exists.
func (d *Document) Group(name string) *Group {
	return d.groups[name]
}

// Default returns the default group.
func (d *Document) Default() *Group {
	return d.groups[""]
}

// Insert creates a named group with a copy of props. The group priority is
// taken from an Int "priority" property when present.
func (d *Document) Insert(name string, props *Properties) (*Group, error) {
	if len(name) < 1 || len(name) > MaxNameSize {
		d.log.Warn("group rejected", slog.Int("name_len", len(name)), slog.Any("error", ErrInvalidName))
		return nil, ErrInvalidName
	}
	if _, ok := d.groups[name]; ok {
		d.log.Warn("group rejected", slog.String("group", name), slog.Any("error", ErrExists))
		return nil, ErrExists
	}
	g := newGroup(name, props, d.log)
	d.adopt(g)
	d.resort()
	return g, nil
}

// Rename moves a group to a new name. The default group cannot be renamed
// and no group can be renamed onto an existing name. Renaming an existing
// group to its own name does nothing.
func (d *Document) Rename(from, to string) error {
	g, ok := d.groups[from]
	if !ok {
		return d.rejectRename(from, to, ErrNotFound)
	}
	if from == to {
		return nil
	}
	if from == "" || len(to) < 1 || len(to) > MaxNameSize {
		return d.rejectRename(from, to, ErrInvalidName)
	}
	if _, ok := d.groups[to]; ok {
		return d.rejectRename(from, to, ErrExists)
	}
	delete(d.groups, from)
	g.name = to
	d.groups[to] = g
	d.resort()
	return nil
}

func (d *Document) rejectRename(from, to string, err error) error {
	d.log.Warn("group rename rejected",
		slog.String("from", from),
		slog.Int("to_len", len(to)),
		slog.Any("error", err))
	return err
}

// Remove deletes a named group. Removing the default group clears it
// instead.
func (d *Document) Remove(name string) {
	g, ok := d.groups[name]
	if !ok {
		return
	}
	if name == "" {
		g.Clear()
	} else {
		g.owner = nil
		delete(d.groups, name)
	}
	d.resort()
}

// Reprioritize sets a group's "priority" property and applies it to the
// resolution order immediately.
func (d *Document) Reprioritize(name string, priority int32) error {
	g, ok := d.groups[name]
	if !ok {
		return ErrNotFound
	}
	if err := g.props.Set(PriorityProperty, Int(priority)); err != nil {
		return err
	}
	g.priority = priorityOf(&g.props)
	d.resort()
	return nil
}

// Clear removes every named group and empties the default group and the
// document properties.
func (d *Document) Clear() {
	d.props.Clear()
	for name, g := range d.groups {
		if name != "" {
			g.owner = nil
			delete(d.groups, name)
		}
	}
	d.groups[""].Clear()
	d.resort()
}

// Empty reports whether only the default group exists and it is empty.
func (d *Document) Empty() bool {
	return len(d.groups) == 1 && d.groups[""].Empty()
}

// Len returns the number of groups, including the default group.
func (d *Document) Len() int {
	return len(d.groups)
}

// Groups yields every group in name order; the default group comes first.
func (d *Document) Groups() iter.Seq[*Group] {
	return func(yield func(*Group) bool) {
		for _, name := range slices.Sorted(maps.Keys(d.groups)) {
			if !yield(d.groups[name]) {
				return
			}
		}
	}
}

// Sorted returns the groups in resolution order.
func (d *Document) Sorted() []*Group {
	return slices.Clone(d.sorted)
}

// Lookup resolves src through the groups in priority order. The first group
// that contains src decides the result: its translation, or def if that
// translation is empty. The second result is false when no group has src.
func (d *Document) Lookup(src, def string) (string, bool) {
	for _, g := range d.sorted {
		if trs, ok := g.Lookup(src, def); ok {
			return trs, true
		}
	}
	return "", false
}

// Lookup32 is Lookup with the result decoded to code points. Each call
// returns a fresh slice.
func (d *Document) Lookup32(src, def string) ([]rune, bool) {
	trs, ok := d.Lookup(src, def)
	if !ok {
		return nil, false
	}
	return U8To32(trs), true
}

// adopt registers g under its name.
func (d *Document) adopt(g *Group) {
	g.owner = d
	d.groups[g.name] = g
}

// resort rebuilds the resolution order.
func (d *Document) resort() {
	d.sorted = d.sorted[:0]
	for _, g := range d.groups {
		d.sorted = append(d.sorted, g)
	}
	slices.SortFunc(d.sorted, byPriorityThenName)
}

func byPriorityThenName(a, b *Group) int {
	if c := cmp.Compare(b.priority, a.priority); c != 0 {
		return c
	}
	return cmp.Compare(a.name, b.name)
}
