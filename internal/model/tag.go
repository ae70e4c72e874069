package model

import "strings"

// TagVariant distinguishes the three shapes a Tag can take.
type TagVariant int

const (
	TagSimple TagVariant = iota
	TagPair
	TagList
)

// Tag is a sum type over three variants: a bare string, a "key:value" pair,
// or a "key:[v1, v2, ...]" list. Key comparisons are case-insensitive;
// values are compared case-sensitively.
type Tag struct {
	Variant TagVariant
	Simple  string
	Key     string
	Value   string
	Values  []string
}

// NewSimpleTag builds a Simple-variant tag.
func NewSimpleTag(s string) Tag { return Tag{Variant: TagSimple, Simple: s} }

// NewPairTag builds a Pair-variant tag.
func NewPairTag(key, value string) Tag { return Tag{Variant: TagPair, Key: key, Value: value} }

// NewListTag builds a List-variant tag.
func NewListTag(key string, values []string) Tag {
	return Tag{Variant: TagList, Key: key, Values: values}
}

// Render serializes a Tag to its canonical string form: Pair encodes as
// "K:V", List as "K:[a, b, ...]", Simple passes the string through
// unchanged (it contains no unescaped ':').
func (t Tag) Render() string {
	switch t.Variant {
	case TagPair:
		return t.Key + ":" + t.Value
	case TagList:
		return t.Key + ":[" + strings.Join(t.Values, ", ") + "]"
	default:
		return t.Simple
	}
}

// EqualKey reports whether two tag keys refer to the same key
// (case-insensitive).
func EqualKey(a, b string) bool {
	return strings.EqualFold(a, b)
}

// ParseTag parses a tag's canonical string form back into a Tag. Any
// string without an unbracketed ':' is Simple; "K:[...]" is List; any
// other "K:V" is Pair. ParseTag(t.Render()) == t for every Tag produced
// by the New*Tag constructors (spec.md §8 tag round-trip property).
func ParseTag(s string) Tag {
	idx := strings.Index(s, ":")
	if idx < 0 {
		return NewSimpleTag(s)
	}

	key := s[:idx]
	rest := s[idx+1:]

	if strings.HasPrefix(rest, "[") && strings.HasSuffix(rest, "]") {
		inner := rest[1 : len(rest)-1]
		var values []string
		if strings.TrimSpace(inner) != "" {
			for _, v := range strings.Split(inner, ", ") {
				values = append(values, v)
			}
		}
		return NewListTag(key, values)
	}

	return NewPairTag(key, rest)
}

// RenderTags renders a slice of Tags to their canonical string forms, in
// source order.
func RenderTags(tags []Tag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.Render()
	}
	return out
}

// ParseTags parses a slice of canonical tag strings back into Tags.
func ParseTags(raw []string) []Tag {
	out := make([]Tag, len(raw))
	for i, s := range raw {
		out[i] = ParseTag(s)
	}
	return out
}
