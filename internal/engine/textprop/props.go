package textprop

import (
	"reflect"
	"sort"

	"github.com/dshills/textspan/internal/engine/interval"
)

// Well-known property keys the property layer maps onto node flags. The
// tree itself never inspects keys; this layer does.
const (
	KeyReadOnly    = "read-only"
	KeyInvisible   = "invisible"
	KeyFrontSticky = "front-sticky"
	KeyRearSticky  = "rear-sticky"
)

// Props is the concrete property record: an opaque mapping from property
// key to value. A nil or empty Props is the default state.
type Props map[string]any

// IsEmpty reports whether the record carries no properties.
func (p Props) IsEmpty() bool { return len(p) == 0 }

// Copy returns a deep copy of the record (values are copied by assignment;
// property values are treated as immutable).
func (p Props) Copy() interval.PropertySet {
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Equal reports whether two records hold the same keys and values.
func (p Props) Equal(other interval.PropertySet) bool {
	if other == nil {
		return len(p) == 0
	}
	o, ok := other.(Props)
	if !ok {
		return false
	}
	if len(p) != len(o) {
		return false
	}
	for k, v := range p {
		ov, present := o[k]
		if !present || !reflect.DeepEqual(v, ov) {
			return false
		}
	}
	return true
}

// Keys returns the record's keys in sorted order.
func (p Props) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// truthy treats nil and false as absent, anything else as set. Property
// values are opaque, so presence is the only signal the flag cache uses.
func truthy(v any) bool {
	return v != nil && v != false
}

// applyFlags refreshes n's flag cache from the well-known keys of its
// record. Visible defaults to true and is cleared by an invisible property.
func applyFlags(n *interval.Node, p Props) {
	n.SetFlags(
		truthy(p[KeyReadOnly]),
		!truthy(p[KeyInvisible]),
		truthy(p[KeyFrontSticky]),
		truthy(p[KeyRearSticky]),
	)
}

// nodeProps returns n's record as a Props, nil for a default node.
func nodeProps(n *interval.Node) Props {
	if n == nil || n.Properties() == nil {
		return nil
	}
	p, _ := n.Properties().(Props)
	return p
}

// mergeable reports whether two adjoining nodes may be coalesced: both
// default, or carrying equal records.
func mergeable(a, b *interval.Node) bool {
	if a.IsDefault() && b.IsDefault() {
		return true
	}
	if a.IsDefault() || b.IsDefault() {
		return false
	}
	return a.Properties().Equal(b.Properties())
}
