package template

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrSyntax flags unknown placeholders or unbalanced braces. Surfaces at
	// configuration time, never per file.
	ErrSyntax = errors.New("template syntax error")
	// ErrFieldMissing flags a Format call lacking a value for a placeholder.
	ErrFieldMissing = errors.New("template field missing")
	// ErrFieldInvalid flags a field value that would not survive a
	// format/parse round trip (separator characters, negative versions).
	ErrFieldInvalid = errors.New("template field invalid")
)

// DefaultVersionWidth is the zero-pad width used when {version} carries no
// explicit width.
const DefaultVersionWidth = 3

// Fields holds the structured values a template formats into a filename and
// parses back out of one. Ext is stored without a leading dot.
type Fields struct {
	Entity  string
	Task    string
	Version int
	Ext     string
}

type tokenKind int

const (
	tokenLiteral tokenKind = iota
	tokenEntity
	tokenTask
	tokenVersion
	tokenExt
)

type token struct {
	kind    tokenKind
	literal string
	width   int
}

// Template is a compiled naming template. Safe for concurrent use.
type Template struct {
	raw     string
	tokens  []token
	matcher *regexp.Regexp
	width   int
}

// Compile parses a template string into a formatter and matcher.
func Compile(raw string) (*Template, error) {
	source := normalizeNotation(raw)
	if strings.TrimSpace(source) == "" {
		return nil, fmt.Errorf("%w: empty template", ErrSyntax)
	}

	tokens, err := tokenize(source)
	if err != nil {
		return nil, err
	}

	width := 0
	hasVersion := false
	for _, tok := range tokens {
		if tok.kind == tokenVersion {
			hasVersion = true
			width = tok.width
		}
	}
	if !hasVersion {
		return nil, fmt.Errorf("%w: template %q has no {version} placeholder", ErrSyntax, raw)
	}

	matcher, err := buildMatcher(tokens)
	if err != nil {
		return nil, err
	}

	return &Template{raw: raw, tokens: tokens, matcher: matcher, width: width}, nil
}

// MustCompile is Compile for templates known valid at build time.
func MustCompile(raw string) *Template {
	tmpl, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return tmpl
}

// normalizeNotation rewrites the documentation form
// <entity>_<task>_v###.<ext> into brace placeholders.
func normalizeNotation(raw string) string {
	if !strings.ContainsAny(raw, "<#") {
		return raw
	}
	replacer := strings.NewReplacer(
		"<entity>", "{entity}",
		"<task>", "{task}",
		"<ext>", "{ext}",
		"<version>", "{version}",
	)
	out := replacer.Replace(raw)

	var b strings.Builder
	b.Grow(len(out))
	for i := 0; i < len(out); {
		if out[i] != '#' {
			b.WriteByte(out[i])
			i++
			continue
		}
		run := 0
		for i < len(out) && out[i] == '#' {
			run++
			i++
		}
		fmt.Fprintf(&b, "{version:%d}", run)
	}
	return b.String()
}

func tokenize(source string) ([]token, error) {
	var tokens []token
	var literal strings.Builder

	flush := func() {
		if literal.Len() > 0 {
			tokens = append(tokens, token{kind: tokenLiteral, literal: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(source); {
		switch source[i] {
		case '{':
			end := strings.IndexByte(source[i:], '}')
			if end < 0 {
				return nil, fmt.Errorf("%w: unbalanced brace in %q", ErrSyntax, source)
			}
			placeholder := source[i+1 : i+end]
			tok, err := parsePlaceholder(placeholder)
			if err != nil {
				return nil, err
			}
			flush()
			tokens = append(tokens, tok)
			i += end + 1
		case '}':
			return nil, fmt.Errorf("%w: unbalanced brace in %q", ErrSyntax, source)
		default:
			literal.WriteByte(source[i])
			i++
		}
	}
	flush()
	return tokens, nil
}

func parsePlaceholder(placeholder string) (token, error) {
	name, arg, hasArg := strings.Cut(placeholder, ":")
	switch name {
	case "entity":
		if hasArg {
			return token{}, fmt.Errorf("%w: placeholder {entity} takes no argument", ErrSyntax)
		}
		return token{kind: tokenEntity}, nil
	case "task":
		if hasArg {
			return token{}, fmt.Errorf("%w: placeholder {task} takes no argument", ErrSyntax)
		}
		return token{kind: tokenTask}, nil
	case "ext":
		if hasArg {
			return token{}, fmt.Errorf("%w: placeholder {ext} takes no argument", ErrSyntax)
		}
		return token{kind: tokenExt}, nil
	case "version":
		width := DefaultVersionWidth
		if hasArg {
			parsed, err := strconv.Atoi(arg)
			if err != nil || parsed < 1 {
				return token{}, fmt.Errorf("%w: bad version width %q", ErrSyntax, arg)
			}
			width = parsed
		}
		return token{kind: tokenVersion, width: width}, nil
	default:
		return token{}, fmt.Errorf("%w: unknown placeholder {%s}", ErrSyntax, placeholder)
	}
}

// fieldPattern matches entity and task values: no separators that would make
// the filename ambiguous on re-parse.
const fieldPattern = `[A-Za-z0-9][A-Za-z0-9-]*`

var fieldValueRe = regexp.MustCompile(`^` + fieldPattern + `$`)

func buildMatcher(tokens []token) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString(`^`)
	for _, tok := range tokens {
		switch tok.kind {
		case tokenLiteral:
			b.WriteString(regexp.QuoteMeta(tok.literal))
		case tokenEntity, tokenTask:
			b.WriteString(`(` + fieldPattern + `)`)
		case tokenVersion:
			fmt.Fprintf(&b, `(\d{%d,})`, tok.width)
		case tokenExt:
			b.WriteString(`([A-Za-z0-9]+)`)
		}
	}
	b.WriteString(`$`)
	matcher, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return matcher, nil
}

// Format renders a filename for the given fields. Every placeholder in the
// template must have a value.
func (t *Template) Format(fields Fields) (string, error) {
	var b strings.Builder
	for _, tok := range t.tokens {
		switch tok.kind {
		case tokenLiteral:
			b.WriteString(tok.literal)
		case tokenEntity:
			if err := checkFieldValue("entity", fields.Entity); err != nil {
				return "", err
			}
			b.WriteString(fields.Entity)
		case tokenTask:
			if err := checkFieldValue("task", fields.Task); err != nil {
				return "", err
			}
			b.WriteString(fields.Task)
		case tokenVersion:
			if fields.Version < 0 {
				return "", fmt.Errorf("%w: version %d is negative", ErrFieldInvalid, fields.Version)
			}
			fmt.Fprintf(&b, "%0*d", tok.width, fields.Version)
		case tokenExt:
			ext := NormalizeExt(fields.Ext)
			if ext == "" {
				return "", fmt.Errorf("%w: ext", ErrFieldMissing)
			}
			b.WriteString(ext)
		}
	}
	return b.String(), nil
}

func checkFieldValue(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s", ErrFieldMissing, name)
	}
	if !fieldValueRe.MatchString(value) {
		return fmt.Errorf("%w: %s value %q contains separator characters", ErrFieldInvalid, name, value)
	}
	return nil
}

// Parse extracts fields from a filename. The second return is false when the
// filename does not match the template; that is not an error.
func (t *Template) Parse(name string) (Fields, bool) {
	match := t.matcher.FindStringSubmatch(name)
	if match == nil {
		return Fields{}, false
	}

	var fields Fields
	group := 1
	for _, tok := range t.tokens {
		switch tok.kind {
		case tokenLiteral:
			continue
		case tokenEntity:
			fields.Entity = match[group]
		case tokenTask:
			fields.Task = match[group]
		case tokenVersion:
			version, err := strconv.Atoi(match[group])
			if err != nil {
				// Digit run too long for an int; treat as non-matching.
				return Fields{}, false
			}
			fields.Version = version
		case tokenExt:
			fields.Ext = strings.ToLower(match[group])
		}
		group++
	}
	return fields, true
}

// VersionWidth reports the zero-pad width of the {version} placeholder.
func (t *Template) VersionWidth() int { return t.width }

// String returns the template source as configured.
func (t *Template) String() string { return t.raw }

// NormalizeExt lowercases an extension and strips any leading dot.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
