// JSON export and import of whole documents.
//
// The dump keeps property types explicit ({"type":"int","value":3}) so that
// an Int priority survives a round trip instead of turning into a float.
// Non-finite floats are written as the strings "NaN", "+Inf" and "-Inf",
// which JSON numbers cannot express. Group priorities are written for
// reference only; on import they are derived from the "priority" property as
// usual.
package cktext

import (
	"fmt"
	"io"
	"maps"
	"math"
	"strconv"

	json "github.com/goccy/go-json"
)

type dump struct {
	Properties map[string]dumpValue `json:"properties,omitempty"`
	Groups     []dumpGroup          `json:"groups"`
}

type dumpGroup struct {
	Name       string               `json:"name"`
	Priority   uint32               `json:"priority"`
	Properties map[string]dumpValue `json:"properties,omitempty"`
	Items      map[string]string    `json:"items"`
}

type dumpValue struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// Export writes d to w as indented JSON.
func (d *Document) Export(w io.Writer) error {
	out := dump{Properties: dumpProperties(&d.props)}
	for g := range d.Groups() {
		dg := dumpGroup{
			Name:       g.name,
			Priority:   g.priority,
			Properties: dumpProperties(&g.props),
			Items:      maps.Clone(g.items),
		}
		if dg.Items == nil {
			dg.Items = map[string]string{}
		}
		out.Groups = append(out.Groups, dg)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// Import reads a JSON dump produced by Export into d with the same rules as
// Decode: document properties are replaced and groups merge into existing
// groups of the same name. Nothing is applied unless the whole dump is
// valid.
func (d *Document) Import(r io.Reader) error {
	var in dump
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return fmt.Errorf("import: %w", err)
	}

	props := Properties{log: d.log}
	if err := loadProperties(in.Properties, &props); err != nil {
		return fmt.Errorf("import: document: %w", err)
	}

	staged := make([]*Group, 0, len(in.Groups))
	for _, dg := range in.Groups {
		if len(dg.Name) > MaxNameSize {
			return fmt.Errorf("import: group %q: %w", dg.Name, ErrInvalidName)
		}
		gp := Properties{log: d.log}
		if err := loadProperties(dg.Properties, &gp); err != nil {
			return fmt.Errorf("import: group %q: %w", dg.Name, err)
		}
		g := newGroup(dg.Name, &gp, d.log)
		for src, trs := range dg.Items {
			if err := g.Set(src, trs); err != nil {
				return fmt.Errorf("import: group %q: %w", dg.Name, err)
			}
		}
		staged = append(staged, g)
	}

	d.props.copyFrom(&props)
	for _, g := range staged {
		d.mergeGroup(g)
	}
	d.resort()
	return nil
}

func dumpProperties(p *Properties) map[string]dumpValue {
	if p.Empty() {
		return nil
	}
	out := make(map[string]dumpValue, p.Len())
	for name, v := range p.All() {
		raw, err := marshalValue(v)
		if err != nil {
			continue
		}
		out[name] = dumpValue{Type: v.Kind().String(), Value: raw}
	}
	return out
}

// marshalValue encodes v as a JSON value. NaN and the infinities become
// strings.
func marshalValue(v Value) ([]byte, error) {
	if f, ok := v.(Float); ok {
		x := float64(f)
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return json.Marshal(nonFinite(x))
		}
	}
	return json.Marshal(v)
}

func nonFinite(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case x > 0:
		return "+Inf"
	default:
		return "-Inf"
	}
}

func loadProperties(in map[string]dumpValue, p *Properties) error {
	for name, dv := range in {
		v, err := dv.decode()
		if err != nil {
			return fmt.Errorf("property %q: %w", name, err)
		}
		if err := p.Set(name, v); err != nil {
			return fmt.Errorf("property %q: %w", name, err)
		}
	}
	return nil
}

func (dv dumpValue) decode() (Value, error) {
	var err error
	switch dv.Type {
	case "bool":
		var b bool
		err = json.Unmarshal(dv.Value, &b)
		return Bool(b), err
	case "int":
		var n int32
		err = json.Unmarshal(dv.Value, &n)
		return Int(n), err
	case "float":
		var name string
		if json.Unmarshal(dv.Value, &name) == nil {
			f, err := strconv.ParseFloat(name, 32)
			if err != nil || (!math.IsNaN(f) && !math.IsInf(f, 0)) {
				return nil, fmt.Errorf("%w: float %q", ErrInvalidValue, name)
			}
			return Float(f), nil
		}
		var f float32
		err = json.Unmarshal(dv.Value, &f)
		return Float(f), err
	case "string":
		var s string
		err = json.Unmarshal(dv.Value, &s)
		return String(s), err
	default:
		return nil, fmt.Errorf("%w: type %q", ErrInvalidValue, dv.Type)
	}
}
