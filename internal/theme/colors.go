package theme

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// Well-known color groups.
const (
	GroupSidebar = "sidebar"
	GroupChart   = "chart"
	GroupRadius  = "radius"
)

// Scale is a named set of string values such as a spacing or font-size table.
type Scale map[string]string

// Clone returns an independent copy of the scale. A nil scale stays nil.
func (s Scale) Clone() Scale {
	if s == nil {
		return nil
	}
	out := make(Scale, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Keys returns the scale keys in sorted order.
func (s Scale) Keys() []string {
	keys := lo.Keys(s)
	sort.Strings(keys)
	return keys
}

// orElse returns s, or a copy of fallback when s is empty.
func (s Scale) orElse(fallback Scale) Scale {
	if len(s) == 0 {
		return fallback.Clone()
	}
	return s
}

// Colors holds the color tokens of a theme: flat tokens such as "primary" and
// named groups such as "sidebar" whose members project as "sidebar-<key>".
// Colors values are immutable; every modifier returns a new value.
type Colors struct {
	tokens map[string]string
	groups map[string]Scale
}

// NewColors builds a Colors value from copies of the given maps.
func NewColors(tokens map[string]string, groups map[string]Scale) Colors {
	c := Colors{
		tokens: make(map[string]string, len(tokens)),
		groups: make(map[string]Scale, len(groups)),
	}
	for k, v := range tokens {
		c.tokens[k] = v
	}
	for name, group := range groups {
		c.groups[name] = group.Clone()
	}
	return c
}

// IsZero reports whether c has neither tokens nor groups.
func (c Colors) IsZero() bool {
	return len(c.tokens) == 0 && len(c.groups) == 0
}

// Token returns the value of a flat token.
func (c Colors) Token(key string) (string, bool) {
	v, ok := c.tokens[key]
	return v, ok
}

// Group returns a copy of the named group.
func (c Colors) Group(name string) (Scale, bool) {
	g, ok := c.groups[name]
	if !ok {
		return nil, false
	}
	return g.Clone(), true
}

// Tokens returns a copy of the flat tokens.
func (c Colors) Tokens() map[string]string {
	return Scale(c.tokens).Clone()
}

// TokenKeys returns the flat token keys in sorted order.
func (c Colors) TokenKeys() []string {
	return Scale(c.tokens).Keys()
}

// GroupNames returns the group names in sorted order.
func (c Colors) GroupNames() []string {
	names := lo.Keys(c.groups)
	sort.Strings(names)
	return names
}

// Lookup resolves a projected name such as "primary" or "sidebar-border".
func (c Colors) Lookup(name string) (string, bool) {
	if v, ok := c.tokens[name]; ok {
		return v, true
	}
	for group, members := range c.groups {
		prefix := group + "-"
		if len(name) > len(prefix) && name[:len(prefix)] == prefix {
			if v, ok := members[name[len(prefix):]]; ok {
				return v, true
			}
		}
	}
	return "", false
}

// Keys returns every projected name: flat tokens as-is and group members as
// "<group>-<key>", sorted.
func (c Colors) Keys() []string {
	keys := make([]string, 0, len(c.tokens))
	c.Each(func(name, _ string) {
		keys = append(keys, name)
	})
	sort.Strings(keys)
	return keys
}

// Each calls fn for every projected name and value. Flat tokens come first,
// then groups, each in sorted key order.
func (c Colors) Each(fn func(name, value string)) {
	for _, k := range c.TokenKeys() {
		fn(k, c.tokens[k])
	}
	for _, group := range c.GroupNames() {
		members := c.groups[group]
		for _, k := range members.Keys() {
			fn(group+"-"+k, members[k])
		}
	}
}

// Clone returns an independent copy of c.
func (c Colors) Clone() Colors {
	return NewColors(c.tokens, c.groups)
}

// WithToken returns a copy of c with one flat token set.
func (c Colors) WithToken(key, value string) Colors {
	out := c.Clone()
	out.tokens[key] = value
	return out
}

// WithGroup returns a copy of c with the named group replaced.
func (c Colors) WithGroup(name string, members Scale) Colors {
	out := c.Clone()
	out.groups[name] = members.Clone()
	return out
}

// Merge overlays other onto c key by key. Flat tokens in other win; a group
// present in other replaces the whole group in c.
func (c Colors) Merge(other Colors) Colors {
	out := c.Clone()
	for k, v := range other.tokens {
		out.tokens[k] = v
		delete(out.groups, k)
	}
	for name, group := range other.groups {
		out.groups[name] = group.Clone()
		delete(out.tokens, name)
	}
	return out
}

// orElse returns c, or a copy of fallback when c holds no tokens.
func (c Colors) orElse(fallback Colors) Colors {
	if c.IsZero() {
		return fallback.Clone()
	}
	return c
}

// MarshalJSON writes flat tokens as strings and groups as nested objects.
func (c Colors) MarshalJSON() ([]byte, error) {
	raw := make(map[string]any, len(c.tokens)+len(c.groups))
	for k, v := range c.tokens {
		raw[k] = v
	}
	for name, group := range c.groups {
		raw[name] = map[string]string(group)
	}
	return json.Marshal(raw)
}

// UnmarshalJSON accepts an object whose values are either strings (flat
// tokens) or objects of strings (groups).
func (c *Colors) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("colors: %w", err)
	}

	out := Colors{tokens: map[string]string{}, groups: map[string]Scale{}}
	for key, value := range raw {
		trimmed := bytes.TrimSpace(value)
		if len(trimmed) == 0 {
			continue
		}
		switch trimmed[0] {
		case '"':
			var s string
			if err := json.Unmarshal(trimmed, &s); err != nil {
				return fmt.Errorf("colors.%s: %w", key, err)
			}
			out.tokens[key] = s
		case '{':
			var group map[string]string
			if err := json.Unmarshal(trimmed, &group); err != nil {
				return fmt.Errorf("colors.%s: %w", key, err)
			}
			out.groups[key] = group
		default:
			return fmt.Errorf("colors.%s: expected string or object, got %s", key, string(trimmed))
		}
	}
	*c = out
	return nil
}
