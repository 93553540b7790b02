package flows

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"creditflow-engine/internal/common/errors"
)

// Template is a prompt template bound to one operation, parsed once at
// process start and immutable thereafter. Supported syntax:
//
//	{{field}}            required interpolation point
//	{{#field}}...{{/field}}  section rendered only when field is present
//	{{media:field}}      reference marker for a file-bearing input
//
// Rendering is pure: the same (template, input) pair always renders
// identically. File-bearing inputs are carried as data URIs; the engine
// decodes the envelope but never parses the file contents themselves.
type Template struct {
	raw      string
	segments []segment
}

type segmentKind int

const (
	segLiteral segmentKind = iota
	segField
	segMedia
	segSection
)

type segment struct {
	kind     segmentKind
	text     string    // literal text
	field    string    // field / section / media name
	children []segment // section body
}

// MediaPart is one decoded file-bearing input, handed to the backend
// alongside the prompt text.
type MediaPart struct {
	Field    string
	MIMEType string
	Data     []byte
}

// Rendered is the result of rendering a template against validated input.
type Rendered struct {
	Text  string
	Media []MediaPart
}

// Parse compiles a template string. Section tags must be balanced and
// sections cannot nest.
func Parse(raw string) (*Template, error) {
	segments, rest, err := parseSegments(raw, "")
	if err != nil {
		return nil, err
	}
	if rest != "" {
		return nil, fmt.Errorf("template: unexpected trailing content")
	}
	return &Template{raw: raw, segments: segments}, nil
}

// MustParse is Parse for templates declared at package init.
func MustParse(raw string) *Template {
	t, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return t
}

func parseSegments(raw, section string) ([]segment, string, error) {
	var segments []segment
	for raw != "" {
		open := strings.Index(raw, "{{")
		if open < 0 {
			segments = append(segments, segment{kind: segLiteral, text: raw})
			return segments, "", nil
		}
		if open > 0 {
			segments = append(segments, segment{kind: segLiteral, text: raw[:open]})
		}
		raw = raw[open+2:]
		closeIdx := strings.Index(raw, "}}")
		if closeIdx < 0 {
			return nil, "", fmt.Errorf("template: unterminated tag")
		}
		tag := strings.TrimSpace(raw[:closeIdx])
		raw = raw[closeIdx+2:]

		switch {
		case strings.HasPrefix(tag, "#"):
			name := strings.TrimSpace(tag[1:])
			if name == "" {
				return nil, "", fmt.Errorf("template: empty section name")
			}
			children, rest, err := parseSegments(raw, name)
			if err != nil {
				return nil, "", err
			}
			segments = append(segments, segment{kind: segSection, field: name, children: children})
			raw = rest
		case strings.HasPrefix(tag, "/"):
			name := strings.TrimSpace(tag[1:])
			if section == "" || name != section {
				return nil, "", fmt.Errorf("template: unbalanced section close %q", name)
			}
			return segments, raw, nil
		case strings.HasPrefix(tag, "media:"):
			name := strings.TrimSpace(strings.TrimPrefix(tag, "media:"))
			if name == "" {
				return nil, "", fmt.Errorf("template: empty media field name")
			}
			segments = append(segments, segment{kind: segMedia, field: name})
		default:
			if tag == "" {
				return nil, "", fmt.Errorf("template: empty field name")
			}
			segments = append(segments, segment{kind: segField, field: tag})
		}
	}
	if section != "" {
		return nil, "", fmt.Errorf("template: section %q never closed", section)
	}
	return segments, "", nil
}

// Render interpolates validated input into the template. A bare {{field}}
// or {{media:field}} whose value is absent is a programming-contract
// violation and fails fast naming the field; absent section fields render
// as empty text.
func (t *Template) Render(input map[string]interface{}) (*Rendered, error) {
	var sb strings.Builder
	var media []MediaPart

	if err := renderSegments(t.segments, input, &sb, &media); err != nil {
		return nil, err
	}
	return &Rendered{Text: sb.String(), Media: media}, nil
}

func renderSegments(segments []segment, input map[string]interface{}, sb *strings.Builder, media *[]MediaPart) error {
	for _, seg := range segments {
		switch seg.kind {
		case segLiteral:
			sb.WriteString(seg.text)
		case segField:
			value, ok := input[seg.field]
			if !ok || value == nil {
				return errors.NewTemplateRenderError(seg.field)
			}
			sb.WriteString(formatValue(value))
		case segMedia:
			value, ok := input[seg.field]
			if !ok || value == nil {
				return errors.NewTemplateRenderError(seg.field)
			}
			uri, ok := value.(string)
			if !ok {
				return errors.NewTemplateRenderError(seg.field)
			}
			part, err := decodeDataURI(seg.field, uri)
			if err != nil {
				return err
			}
			*media = append(*media, part)
			fmt.Fprintf(sb, "[attached file: %s]", seg.field)
		case segSection:
			if !present(input[seg.field]) {
				continue
			}
			if err := renderSegments(seg.children, input, sb, media); err != nil {
				return err
			}
		}
	}
	return nil
}

// present decides whether a section renders. Empty strings, false booleans,
// empty collections, and nil all suppress the section so that no
// placeholder text leaks into the rendered prompt.
func present(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(v) != ""
	case bool:
		return v
	case []interface{}:
		return len(v) > 0
	case map[string]interface{}:
		return len(v) > 0
	default:
		return true
	}
}

func formatValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "yes"
		}
		return "no"
	case []interface{}, map[string]interface{}:
		b, _ := json.MarshalIndent(v, "", "  ")
		return string(b)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// decodeDataURI unwraps a "data:<mime>;base64,<payload>" envelope.
func decodeDataURI(field, uri string) (MediaPart, error) {
	const prefix = "data:"
	if !strings.HasPrefix(uri, prefix) {
		return MediaPart{}, errors.NewValidationError(field, "must be a data URI")
	}
	rest := uri[len(prefix):]
	comma := strings.Index(rest, ",")
	if comma < 0 {
		return MediaPart{}, errors.NewValidationError(field, "malformed data URI")
	}
	meta, payload := rest[:comma], rest[comma+1:]

	mime := meta
	base64Encoded := false
	if idx := strings.Index(meta, ";"); idx >= 0 {
		mime = meta[:idx]
		base64Encoded = strings.Contains(meta[idx:], "base64")
	}
	if mime == "" {
		mime = "application/octet-stream"
	}

	var data []byte
	if base64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return MediaPart{}, errors.NewValidationError(field, "invalid base64 payload")
		}
		data = decoded
	} else {
		data = []byte(payload)
	}

	return MediaPart{Field: field, MIMEType: mime, Data: data}, nil
}
