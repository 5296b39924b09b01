// Binary record primitives for the container format.
//
// All integers are little-endian. Counts and text lengths are signed 32-bit;
// names and property strings are prefixed by a single length byte. The
// reader keeps its own offset so that a record that fails validation can be
// rewound by exactly the number of bytes it consumed, leaving the stream at
// the start of the bad record.
package cktext

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// Format limits.
const (
	MaxNameSize   = 64       // property and group names, bytes
	MaxStringSize = 255      // String property values, bytes
	MaxTextSize   = 10 << 20 // source and translation text, bytes
)

// DefaultPriority is the priority of a group without an Int "priority"
// property.
const DefaultPriority = 100

// PriorityProperty is the property that carries a group's priority.
const PriorityProperty = "priority"

// reader decodes records from a seekable stream.
type reader struct {
	r   io.ReadSeeker
	off int64 // bytes consumed since the reader was created
	buf [4]byte
}

func newReader(r io.ReadSeeker) *reader {
	return &reader{r: r}
}

// fill reads exactly len(p) bytes. Running out of input is corruption.
func (rd *reader) fill(p []byte) error {
	n, err := io.ReadFull(rd.r, p)
	rd.off += int64(n)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: truncated at offset %d", ErrCorruptRecord, rd.off)
		}
		return err
	}
	return nil
}

func (rd *reader) u8() (uint8, error) {
	if err := rd.fill(rd.buf[:1]); err != nil {
		return 0, err
	}
	return rd.buf[0], nil
}

func (rd *reader) u32() (uint32, error) {
	if err := rd.fill(rd.buf[:4]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(rd.buf[:4]), nil
}

func (rd *reader) i32() (int32, error) {
	v, err := rd.u32()
	return int32(v), err
}

func (rd *reader) text(n int) (string, error) {
	if n == 0 {
		return "", nil
	}
	b := make([]byte, n)
	if err := rd.fill(b); err != nil {
		return "", err
	}
	return string(b), nil
}

// count reads a non-negative i32 element count.
func (rd *reader) count(what string) (int, error) {
	n, err := rd.i32()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: negative %s count %d", ErrCorruptRecord, what, n)
	}
	return int(n), nil
}

// rewind moves the stream back to offset start.
func (rd *reader) rewind(start int64) {
	if n := rd.off - start; n > 0 {
		if _, err := rd.r.Seek(-n, io.SeekCurrent); err == nil {
			rd.off = start
		}
	}
}

// property reads one attribute record into p. On failure the stream is
// rewound to the start of the record and p is not modified.
func (rd *reader) property(p *Properties) (err error) {
	start := rd.off
	defer func() {
		if err != nil {
			rd.rewind(start)
		}
	}()

	tag, err := rd.u8()
	if err != nil {
		return err
	}
	kind := Kind(tag)
	if kind < KindBool || kind > KindString {
		return fmt.Errorf("%w: attribute type %d at offset %d", ErrCorruptRecord, tag, start)
	}

	nameLen, err := rd.u8()
	if err != nil {
		return err
	}
	if nameLen < 1 || nameLen > MaxNameSize {
		return fmt.Errorf("%w: attribute name length %d at offset %d", ErrCorruptRecord, nameLen, start)
	}
	name, err := rd.text(int(nameLen))
	if err != nil {
		return err
	}

	var v Value
	switch kind {
	case KindBool:
		b, err := rd.u8()
		if err != nil {
			return err
		}
		v = Bool(b != 0)
	case KindInt:
		n, err := rd.i32()
		if err != nil {
			return err
		}
		v = Int(n)
	case KindFloat:
		bits, err := rd.u32()
		if err != nil {
			return err
		}
		v = Float(math.Float32frombits(bits))
	case KindString:
		sz, err := rd.u8()
		if err != nil {
			return err
		}
		if sz < 1 {
			return fmt.Errorf("%w: attribute %q string length %d at offset %d", ErrCorruptRecord, name, sz, start)
		}
		s, err := rd.text(int(sz))
		if err != nil {
			return err
		}
		v = String(s)
	}
	return p.Set(name, v)
}

// properties reads n attribute records into p, replacing its contents. A bad
// record discards everything read for the table.
func (rd *reader) properties(n int, p *Properties) error {
	p.Clear()
	for range n {
		if err := rd.property(p); err != nil {
			p.Clear()
			return err
		}
	}
	return nil
}

// item reads one source/translation pair.
func (rd *reader) item() (src, trs string, err error) {
	start := rd.off
	defer func() {
		if err != nil {
			rd.rewind(start)
		}
	}()

	n, err := rd.i32()
	if err != nil {
		return "", "", err
	}
	if n < 1 || n > MaxTextSize {
		return "", "", fmt.Errorf("%w: source length %d at offset %d", ErrCorruptRecord, n, start)
	}
	if src, err = rd.text(int(n)); err != nil {
		return "", "", err
	}

	if n, err = rd.i32(); err != nil {
		return "", "", err
	}
	if n < 0 || n > MaxTextSize {
		return "", "", fmt.Errorf("%w: translation length %d at offset %d", ErrCorruptRecord, n, start)
	}
	if trs, err = rd.text(int(n)); err != nil {
		return "", "", err
	}
	return src, trs, nil
}

// group reads one group record, including its properties and items.
func (rd *reader) group(d *Document) (g *Group, err error) {
	start := rd.off
	nameLen, err := rd.u8()
	if err != nil {
		return nil, err
	}
	if nameLen > MaxNameSize {
		rd.rewind(start)
		return nil, fmt.Errorf("%w: group name length %d at offset %d", ErrCorruptRecord, nameLen, start)
	}
	name, err := rd.text(int(nameLen))
	if err != nil {
		return nil, err
	}

	attrs, err := rd.count("group attribute")
	if err != nil {
		return nil, err
	}
	items, err := rd.count("item")
	if err != nil {
		return nil, err
	}

	props := Properties{log: d.log}
	if err := rd.properties(attrs, &props); err != nil {
		return nil, fmt.Errorf("group %q: %w", name, err)
	}

	g = newGroup(name, &props, d.log)
	for range items {
		src, trs, err := rd.item()
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", name, err)
		}
		g.items[src] = trs
	}
	return g, nil
}

// writer encodes records with a sticky error, in the manner of bufio.Writer.
type writer struct {
	w   io.Writer
	n   int64
	err error
	buf [4]byte
}

func (wt *writer) write(p []byte) {
	if wt.err != nil {
		return
	}
	n, err := wt.w.Write(p)
	wt.n += int64(n)
	wt.err = err
}

func (wt *writer) u8(v uint8) {
	wt.buf[0] = v
	wt.write(wt.buf[:1])
}

func (wt *writer) u32(v uint32) {
	binary.LittleEndian.PutUint32(wt.buf[:4], v)
	wt.write(wt.buf[:4])
}

func (wt *writer) i32(v int32) {
	wt.u32(uint32(v))
}

func (wt *writer) str(s string) {
	if wt.err != nil || s == "" {
		return
	}
	n, err := io.WriteString(wt.w, s)
	wt.n += int64(n)
	wt.err = err
}

// attribute is a property entry selected for writing.
type attribute struct {
	name string
	v    Value
}

// attributes returns the entries of p that can be read back, in name order.
// Entries with a bad name length, an untyped value or a bad string length
// are skipped.
func attributes(p *Properties) []attribute {
	var out []attribute
	for name, v := range p.All() {
		if validateProperty(name, v) != nil {
			continue
		}
		out = append(out, attribute{name, v})
	}
	return out
}

func (wt *writer) attributes(attrs []attribute) {
	for _, a := range attrs {
		wt.property(a.name, a.v)
	}
}

func (wt *writer) property(name string, v Value) {
	wt.u8(uint8(v.Kind()))
	wt.u8(uint8(len(name)))
	wt.str(name)
	switch x := v.(type) {
	case Bool:
		if x {
			wt.u8(1)
		} else {
			wt.u8(0)
		}
	case Int:
		wt.i32(int32(x))
	case Float:
		wt.u32(math.Float32bits(float32(x)))
	case String:
		wt.u8(uint8(len(x)))
		wt.str(string(x))
	}
}

// group writes one group record.
func (wt *writer) group(g *Group) {
	attrs := attributes(&g.props)
	wt.u8(uint8(len(g.name)))
	wt.str(g.name)
	wt.i32(int32(len(attrs)))
	wt.i32(int32(len(g.items)))
	wt.attributes(attrs)
	for src, trs := range g.All() {
		wt.i32(int32(len(src)))
		wt.str(src)
		wt.i32(int32(len(trs)))
		wt.str(trs)
	}
}
