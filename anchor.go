// anchor.go: anchors, metadata bags, and relational values.
//
// An anchor is an immutable named reference point. Its metadata is an open
// key->scalar bag: the recognized keys below carry semantics (tolerance feeds
// the qualifier thresholds, confidence is range-checked), everything else is
// retained for display only. A relational value snapshots its offsets at
// creation; anchors never change, so the offsets stay valid for its lifetime.
package giant

import (
	"math"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Recognized metadata keys.
const (
	MetaUnit        = "unit"
	MetaTolerance   = "tolerance"
	MetaDescription = "description"
	MetaContext     = "context"
	MetaConfidence  = "confidence"
)

// Qualifiers describing a value's position relative to an anchor.
const (
	QualOver  = "over"
	QualUnder = "under"
	QualNear  = "near"
)

// Metadata is an insertion-ordered key -> scalar bag.
type Metadata struct {
	m *linkedhashmap.Map
}

func NewMetadata() *Metadata {
	return &Metadata{m: linkedhashmap.New()}
}

func (md *Metadata) Set(key string, v Value) { md.m.Put(key, v) }

func (md *Metadata) Get(key string) (Value, bool) {
	if v, ok := md.m.Get(key); ok {
		return v.(Value), true
	}
	return Value{}, false
}

func (md *Metadata) Keys() []string {
	raw := md.m.Keys()
	keys := make([]string, len(raw))
	for i, k := range raw {
		keys[i] = k.(string)
	}
	return keys
}

func (md *Metadata) Len() int { return md.m.Size() }

// validate enforces the recognized-key constraints. line feeds error
// positions.
func (md *Metadata) validate(line int) error {
	if v, ok := md.Get(MetaTolerance); ok {
		f, numeric := numericOf(v)
		if !numeric {
			return typeErr(line, "tolerance must be a number, not %s", kindName(v))
		}
		if f < 0 {
			return valueErr(line, "tolerance must not be negative, got %s", FormatValue(scalarOf(v)))
		}
	}
	if v, ok := md.Get(MetaConfidence); ok {
		f, numeric := numericOf(v)
		if !numeric {
			return typeErr(line, "confidence must be a number, not %s", kindName(v))
		}
		if f < 0 || f > 1 {
			return valueErr(line, "confidence must be between 0 and 1, got %s", FormatValue(scalarOf(v)))
		}
	}
	return nil
}

// Anchor is a named immutable reference point with a numeric value.
type Anchor struct {
	Name  string
	Value Value // VTInt or VTNum
	Meta  *Metadata
}

// NewAnchor validates and constructs an anchor. value must be numeric.
func NewAnchor(name string, value Value, meta *Metadata, line int) (*Anchor, error) {
	value = scalarOf(value)
	if !isNumericScalar(value) {
		return nil, typeErr(line, "anchor '%s' needs a numeric value, not %s", name, kindName(value))
	}
	if meta == nil {
		meta = NewMetadata()
	}
	if err := meta.validate(line); err != nil {
		return nil, err
	}
	return &Anchor{Name: name, Value: value, Meta: meta}, nil
}

// Numeric returns the anchor's value as a float64.
func (a *Anchor) Numeric() float64 { return asFloat(a.Value) }

// Tolerance returns the anchor's tolerance radius, 0 when unset.
func (a *Anchor) Tolerance() float64 {
	if v, ok := a.Meta.Get(MetaTolerance); ok {
		if f, numeric := numericOf(v); numeric {
			return f
		}
	}
	return 0
}

// Qualify places v relative to the anchor: over above value+tolerance, under
// below value-tolerance, near inside the closed tolerance band.
func (a *Anchor) Qualify(v float64) string {
	switch {
	case v > a.Numeric()+a.Tolerance():
		return QualOver
	case v < a.Numeric()-a.Tolerance():
		return QualUnder
	default:
		return QualNear
	}
}

// Relational is a numeric scalar bound to an ordered, non-empty anchor list.
type Relational struct {
	Value   Value // VTInt or VTNum
	Anchors []*Anchor
	Meta    *Metadata

	offsets []float64 // |value - anchor|, snapshot at creation
}

// NewRelational validates and constructs a relational value, snapshotting the
// offset to each anchor.
func NewRelational(value Value, anchors []*Anchor, meta *Metadata, line int) (*Relational, error) {
	value = scalarOf(value)
	if !isNumericScalar(value) {
		return nil, typeErr(line, "a relational value must be numeric, not %s", kindName(value))
	}
	if len(anchors) == 0 {
		return nil, valueErr(line, "a relational value needs at least one anchor")
	}
	if meta == nil {
		meta = NewMetadata()
	}
	if err := meta.validate(line); err != nil {
		return nil, err
	}
	r := &Relational{Value: value, Anchors: anchors, Meta: meta}
	v := asFloat(value)
	for _, a := range anchors {
		r.offsets = append(r.offsets, math.Abs(v-a.Numeric()))
	}
	return r, nil
}

// Numeric returns the relational's value as a float64.
func (r *Relational) Numeric() float64 { return asFloat(r.Value) }

// Offset returns the snapshot distance to the i-th anchor.
func (r *Relational) Offset(i int) float64 { return r.offsets[i] }

// AnchorNamed finds an anchor of the reference list by name.
func (r *Relational) AnchorNamed(name string) (*Anchor, bool) {
	for _, a := range r.Anchors {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}
