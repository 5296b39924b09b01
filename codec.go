// Document serialisation.
//
// Payload layout, after the header:
//
//	attrCount:i32 groupCount:i32
//	attrCount × attribute
//	groupCount × group{nameLen:u8 name attrCount:i32 itemCount:i32 attributes items}
//
// Decoding merges into the document: groups already present (the default
// group always is) receive the loaded items and properties, loaded values
// winning on conflict. Document properties are replaced. Any error resets
// the document to its cleared state; a partially loaded document is never
// left behind.
package cktext

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"maps"
)

// Load decodes a container held in memory.
func (d *Document) Load(data []byte) error {
	return d.Decode(bytes.NewReader(data))
}

// Decode reads a container from r and merges it into d.
func (d *Document) Decode(r io.ReadSeeker) error {
	err := d.decode(r)
	if err != nil {
		d.Clear()
		d.log.Error("load failed", slog.Any("error", err))
	}
	d.resort()
	return err
}

func (d *Document) decode(r io.ReadSeeker) error {
	compressed, err := readHeader(r)
	if err != nil {
		return err
	}

	if compressed {
		payload, err := d.inflate(r)
		if err != nil {
			return err
		}
		r = bytes.NewReader(payload)
	}

	rd := newReader(r)
	attrs, err := rd.count("attribute")
	if err != nil {
		return err
	}
	groups, err := rd.count("group")
	if err != nil {
		return err
	}
	if err := rd.properties(attrs, &d.props); err != nil {
		return fmt.Errorf("document: %w", err)
	}

	for range groups {
		g, err := rd.group(d)
		if err != nil {
			return err
		}
		d.mergeGroup(g)
	}
	return nil
}

// mergeGroup adds a loaded group, folding it into an existing group of the
// same name.
func (d *Document) mergeGroup(g *Group) {
	existing, ok := d.groups[g.name]
	if !ok {
		d.adopt(g)
		return
	}
	existing.merge(g)
	if len(g.props.m) > 0 {
		if existing.props.m == nil {
			existing.props.m = make(map[string]Value, len(g.props.m))
		}
		maps.Copy(existing.props.m, g.props.m)
	}
	existing.priority = priorityOf(&existing.props)
}

// Encode writes d as a container to w.
func (d *Document) Encode(w io.Writer, compress bool) error {
	if _, err := w.Write(header(compress)); err != nil {
		return err
	}
	if !compress {
		bw := bufio.NewWriter(w)
		if err := d.encode(bw); err != nil {
			return err
		}
		return bw.Flush()
	}

	var payload bytes.Buffer
	if err := d.encode(&payload); err != nil {
		return err
	}
	_, err := d.deflate(w, &payload)
	return err
}

// encode writes the uncompressed payload.
func (d *Document) encode(w io.Writer) error {
	wt := &writer{w: w}
	attrs := attributes(&d.props)
	wt.i32(int32(len(attrs)))
	wt.i32(int32(len(d.groups)))
	wt.attributes(attrs)
	for g := range d.Groups() {
		wt.group(g)
	}
	return wt.err
}
