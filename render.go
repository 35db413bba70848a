// render.go: display strings for runtime values.
//
// Scalars print in their native form (strings verbatim, no quotes; floats
// with trailing zeros trimmed but at least one fractional digit). Anchors
// print as `name = value [key=value] ...` with tolerance shown as a ± radius.
// Relational values print the canonical positional form
// `value (offset qualifier anchor, ...)` in declaration order, with integer
// offsets whenever both participants are integers.
package giant

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatValue renders v for output.
func FormatValue(v Value) string {
	switch v.Tag {
	case VTInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case VTNum:
		return formatFloat(v.Data.(float64))
	case VTStr:
		return v.Data.(string)
	case VTBool:
		return strconv.FormatBool(v.Data.(bool))
	case VTAnchor:
		return formatAnchor(v.Data.(*Anchor))
	case VTRelational:
		return formatRelational(v.Data.(*Relational))
	default:
		return "<unknown>"
	}
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func formatAnchor(a *Anchor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s = %s", a.Name, FormatValue(a.Value))
	for _, k := range a.Meta.Keys() {
		v, _ := a.Meta.Get(k)
		if k == MetaTolerance {
			fmt.Fprintf(&b, " [tolerance=±%s]", FormatValue(scalarOf(v)))
			continue
		}
		fmt.Fprintf(&b, " [%s=%s]", k, FormatValue(v))
	}
	return b.String()
}

func formatRelational(r *Relational) string {
	parts := make([]string, 0, len(r.Anchors))
	v := r.Numeric()
	for i, a := range r.Anchors {
		parts = append(parts, fmt.Sprintf("%s %s %s",
			formatOffset(r, i, a), a.Qualify(v), a.Name))
	}
	return fmt.Sprintf("%s (%s)", FormatValue(r.Value), strings.Join(parts, ", "))
}

// formatOffset renders |value-anchor| as an integer iff both participants are
// integers, else as a float.
func formatOffset(r *Relational, i int, a *Anchor) string {
	if r.Value.Tag == VTInt && a.Value.Tag == VTInt {
		d := r.Value.Data.(int64) - a.Value.Data.(int64)
		if d < 0 {
			d = -d
		}
		return strconv.FormatInt(d, 10)
	}
	return formatFloat(r.Offset(i))
}
