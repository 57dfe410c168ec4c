package router

import (
	"fmt"
	"net/url"
	"strings"
)

type segmentKind uint8

const (
	literalSegment segmentKind = iota
	paramSegment
	catchAllSegment
)

// segment is one '/'-separated part of a route template.
type segment struct {
	kind        segmentKind
	value       string // literal text or parameter name
	constraints []namedConstraint
	def         string
	hasDefault  bool
	optional    bool
}

type namedConstraint struct {
	name  string
	check Constraint
}

// template is a parsed route template.
type template struct {
	raw      string
	segments []segment
}

// parseTemplate parses templates such as "test/{id:int}",
// "{controller=Home}/{action=Index}/{id?}" or "files/{*path}".
func parseTemplate(raw string, constraints map[string]Constraint) (template, error) {
	t := template{raw: raw}

	trimmed := strings.Trim(raw, "/")
	if trimmed == "" {
		return t, nil
	}

	seen := make(map[string]bool)
	parts := strings.Split(trimmed, "/")
	for i, part := range parts {
		if part == "" {
			return t, fmt.Errorf("%w %q: empty segment", ErrInvalidTemplate, raw)
		}

		if !strings.HasPrefix(part, "{") {
			if strings.ContainsAny(part, "{}") {
				return t, fmt.Errorf("%w %q: segment %q mixes literal text and parameters", ErrInvalidTemplate, raw, part)
			}
			t.segments = append(t.segments, segment{kind: literalSegment, value: part})
			continue
		}

		if !strings.HasSuffix(part, "}") || strings.Count(part, "{") != 1 || strings.Count(part, "}") != 1 {
			return t, fmt.Errorf("%w %q: malformed parameter %q", ErrInvalidTemplate, raw, part)
		}

		seg, err := parseParameter(part[1:len(part)-1], constraints)
		if err != nil {
			return t, fmt.Errorf("%w %q: %w", ErrInvalidTemplate, raw, err)
		}
		if seg.kind == catchAllSegment && i != len(parts)-1 {
			return t, fmt.Errorf("%w %q: catch-all parameter must be the last segment", ErrInvalidTemplate, raw)
		}

		key := strings.ToLower(seg.value)
		if seen[key] {
			return t, fmt.Errorf("%w %q: duplicate parameter %q", ErrInvalidTemplate, raw, seg.value)
		}
		seen[key] = true

		t.segments = append(t.segments, seg)
	}

	return t, nil
}

func parseParameter(body string, constraints map[string]Constraint) (segment, error) {
	seg := segment{kind: paramSegment}

	if strings.HasPrefix(body, "*") {
		seg.kind = catchAllSegment
		body = strings.TrimLeft(body, "*")
	}

	if idx := strings.IndexByte(body, '='); idx >= 0 {
		seg.def = body[idx+1:]
		seg.hasDefault = true
		body = body[:idx]
	} else if strings.HasSuffix(body, "?") {
		seg.optional = true
		body = strings.TrimSuffix(body, "?")
	}

	parts := strings.Split(body, ":")
	seg.value = parts[0]
	if seg.value == "" {
		return seg, fmt.Errorf("parameter name is empty")
	}
	if seg.kind == catchAllSegment && seg.optional {
		return seg, fmt.Errorf("catch-all parameter %q cannot be optional", seg.value)
	}

	for _, name := range parts[1:] {
		check, ok := constraints[strings.ToLower(name)]
		if !ok {
			return seg, fmt.Errorf("%w %q on parameter %q", ErrUnknownConstraint, name, seg.value)
		}
		seg.constraints = append(seg.constraints, namedConstraint{name: name, check: check})
	}

	return seg, nil
}

// splitPath splits an escaped request path into decoded segments.
// A root path yields no segments.
func splitPath(escaped string) []string {
	trimmed := strings.Trim(escaped, "/")
	if trimmed == "" {
		return nil
	}

	parts := strings.Split(trimmed, "/")
	for i, p := range parts {
		if decoded, err := url.PathUnescape(p); err == nil {
			parts[i] = decoded
		}
	}
	return parts
}

// match tests the path segments against the template and returns the route
// values on success. Defaults are included in the values.
func (t template) match(path []string) (map[string]string, bool) {
	values := make(map[string]string)

	for i, seg := range t.segments {
		if seg.kind == catchAllSegment {
			rest := ""
			if i < len(path) {
				rest = strings.Join(path[i:], "/")
			}
			if rest == "" && seg.hasDefault {
				rest = seg.def
			}
			if rest != "" && !seg.accepts(rest) {
				return nil, false
			}
			values[seg.value] = rest
			return values, true
		}

		if i >= len(path) {
			// Missing trailing segments are only allowed for optional or defaulted parameters.
			switch {
			case seg.kind == literalSegment:
				return nil, false
			case seg.hasDefault:
				values[seg.value] = seg.def
			case seg.optional:
			default:
				return nil, false
			}
			continue
		}

		part := path[i]
		switch seg.kind {
		case literalSegment:
			if !strings.EqualFold(part, seg.value) {
				return nil, false
			}
		case paramSegment:
			if part == "" || !seg.accepts(part) {
				return nil, false
			}
			values[seg.value] = part
		}
	}

	if len(path) > len(t.segments) {
		return nil, false
	}

	return values, true
}

func (s segment) accepts(v string) bool {
	for _, c := range s.constraints {
		if !c.check(v) {
			return false
		}
	}
	return true
}

// hasParam reports whether the template declares the named parameter.
func (t template) hasParam(name string) bool {
	for _, s := range t.segments {
		if s.kind != literalSegment && strings.EqualFold(s.value, name) {
			return true
		}
	}
	return false
}

func (t template) String() string { return t.raw }
