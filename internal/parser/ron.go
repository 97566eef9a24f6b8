// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// RON documents map onto the value model as follows:
//
//	Name(a: 1, b: 2) and (a: 1)  object, struct name dropped
//	Name(1, 2) and (1, 2)         array
//	Name(x)                       x (newtype structs are transparent)
//	{ "k": v }                    object, scalar keys rendered as strings
//	[a, b]                        array
//	() None                       null
//	Some(x)                       x
//	Variant                       "Variant"
//	'c' "s" r#"s"#                string
//
// A leading #![enable(...)] attribute is skipped.

var errUnexpectedEOF = errors.New("unexpected end of input")

// maxRONDepth bounds how deeply lists, maps, tuples and Some(...) may nest.
const maxRONDepth = 10000

type ronParser struct {
	src   []byte
	pos   int
	depth int
}

func parseRON(data []byte) (any, error) {
	p := &ronParser{src: data}
	if err := p.skipAttributes(); err != nil {
		return nil, err
	}
	if p.skipSpace(); p.eof() {
		return nil, nil
	}

	v, err := p.value()
	if err != nil {
		return nil, err
	}
	if p.skipSpace(); !p.eof() {
		return nil, p.errorf("trailing characters")
	}
	return v, nil
}

func (p *ronParser) eof() bool { return p.pos >= len(p.src) }

func (p *ronParser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *ronParser) errorf(format string, args ...any) error {
	line, col := 1, 1
	for _, b := range p.src[:min(p.pos, len(p.src))] {
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return fmt.Errorf("ron %d:%d: %s", line, col, fmt.Sprintf(format, args...))
}

func (p *ronParser) expect(b byte) error {
	p.skipSpace()
	if p.eof() {
		return errUnexpectedEOF
	}
	if p.src[p.pos] != b {
		return p.errorf("expected %q, found %q", b, p.src[p.pos])
	}
	p.pos++
	return nil
}

// skipSpace skips whitespace and both comment styles.
func (p *ronParser) skipSpace() {
	for !p.eof() {
		switch c := p.src[p.pos]; {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			p.pos++
		case c == '/' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '/':
			for !p.eof() && p.src[p.pos] != '\n' {
				p.pos++
			}
		case c == '/' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '*':
			end := strings.Index(string(p.src[p.pos+2:]), "*/")
			if end < 0 {
				p.pos = len(p.src)
				return
			}
			p.pos += end + 4
		default:
			return
		}
	}
}

func (p *ronParser) skipAttributes() error {
	for {
		p.skipSpace()
		if !strings.HasPrefix(string(p.src[p.pos:]), "#!") {
			return nil
		}
		depth := 0
		for p.pos += 2; ; p.pos++ {
			if p.eof() {
				return errUnexpectedEOF
			}
			switch p.src[p.pos] {
			case '[':
				depth++
			case ']':
				depth--
			}
			if depth == 0 {
				p.pos++
				break
			}
		}
	}
}

func (p *ronParser) value() (any, error) {
	p.skipSpace()
	if p.eof() {
		return nil, errUnexpectedEOF
	}
	if p.depth++; p.depth > maxRONDepth {
		return nil, p.errorf("nesting deeper than %d", maxRONDepth)
	}
	defer func() { p.depth-- }()

	switch c := p.peek(); {
	case c == '[':
		return p.list()
	case c == '{':
		return p.object()
	case c == '(':
		return p.parens()
	case c == '"':
		return p.quoted()
	case c == '\'':
		return p.char()
	case c == 'r' && p.pos+1 < len(p.src) && (p.src[p.pos+1] == '"' || p.src[p.pos+1] == '#'):
		return p.raw()
	case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
		return p.number()
	case isIdentStart(c):
		return p.identValue()
	default:
		return nil, p.errorf("unexpected character %q", c)
	}
}

func (p *ronParser) list() (any, error) {
	p.pos++
	items := make([]any, 0)
	for {
		p.skipSpace()
		if p.peek() == ']' {
			p.pos++
			return items, nil
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
		if done, err := p.separator(']'); err != nil || done {
			return items, err
		}
	}
}

func (p *ronParser) object() (any, error) {
	p.pos++
	obj := make(map[string]any)
	for {
		p.skipSpace()
		if p.peek() == '}' {
			p.pos++
			return obj, nil
		}
		k, err := p.value()
		if err != nil {
			return nil, err
		}
		key, err := p.mapKey(k)
		if err != nil {
			return nil, err
		}
		if err := p.expect(':'); err != nil {
			return nil, err
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		obj[key] = v
		if done, err := p.separator('}'); err != nil || done {
			return obj, err
		}
	}
}

func (p *ronParser) mapKey(k any) (string, error) {
	switch k := k.(type) {
	case string:
		return k, nil
	case int64:
		return strconv.FormatInt(k, 10), nil
	case float64:
		return strconv.FormatFloat(k, 'g', -1, 64), nil
	case bool:
		return strconv.FormatBool(k), nil
	case nil:
		return "", p.errorf("null map key")
	default:
		return "", p.errorf("map key must be a scalar, got %T", k)
	}
}

// parens reads the body of a struct or tuple, the opening paren included.
func (p *ronParser) parens() (any, error) {
	p.pos++
	p.skipSpace()
	if p.peek() == ')' {
		p.pos++
		return nil, nil
	}

	if p.atField() {
		obj := make(map[string]any)
		for {
			p.skipSpace()
			if p.peek() == ')' {
				p.pos++
				return obj, nil
			}
			name := p.ident()
			if name == "" {
				return nil, p.errorf("expected field name")
			}
			if err := p.expect(':'); err != nil {
				return nil, err
			}
			v, err := p.value()
			if err != nil {
				return nil, err
			}
			obj[name] = v
			if done, err := p.separator(')'); err != nil || done {
				return obj, err
			}
		}
	}

	items := make([]any, 0)
	for {
		p.skipSpace()
		if p.peek() == ')' {
			p.pos++
			return items, nil
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
		if done, err := p.separator(')'); err != nil || done {
			return items, err
		}
	}
}

// atField reports whether the input continues with "ident :".
func (p *ronParser) atField() bool {
	save := p.pos
	defer func() { p.pos = save }()

	if p.ident() == "" {
		return false
	}
	p.skipSpace()
	return p.peek() == ':'
}

// separator consumes a comma or the closing byte. It reports true once the
// closing byte was consumed.
func (p *ronParser) separator(closing byte) (bool, error) {
	p.skipSpace()
	switch {
	case p.eof():
		return false, errUnexpectedEOF
	case p.peek() == ',':
		p.pos++
		return false, nil
	case p.peek() == closing:
		p.pos++
		return true, nil
	default:
		return false, p.errorf("expected ',' or %q, found %q", closing, p.peek())
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func (p *ronParser) ident() string {
	start := p.pos
	if p.eof() || !isIdentStart(p.src[p.pos]) {
		return ""
	}
	for !p.eof() && isIdentChar(p.src[p.pos]) {
		p.pos++
	}
	return string(p.src[start:p.pos])
}

func (p *ronParser) identValue() (any, error) {
	name := p.ident()
	switch name {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "None":
		return nil, nil
	case "inf":
		return nil, p.errorf("non-finite numbers are not supported")
	case "NaN":
		return nil, p.errorf("non-finite numbers are not supported")
	}

	p.skipSpace()
	if p.peek() != '(' {
		return name, nil
	}

	inner, err := p.parens()
	if err != nil {
		return nil, err
	}
	if items, ok := inner.([]any); ok && len(items) == 1 {
		return items[0], nil
	}
	return inner, nil
}

func (p *ronParser) number() (any, error) {
	start := p.pos
	if c := p.peek(); c == '-' || c == '+' {
		p.pos++
	}
	for !p.eof() {
		c := p.src[p.pos]
		if isIdentChar(c) || c == '.' {
			p.pos++
			continue
		}
		// exponent sign
		if (c == '-' || c == '+') && (p.src[p.pos-1] == 'e' || p.src[p.pos-1] == 'E') {
			p.pos++
			continue
		}
		break
	}

	lit := strings.ReplaceAll(string(p.src[start:p.pos]), "_", "")
	sign, body := "", lit
	if lit != "" && (lit[0] == '-' || lit[0] == '+') {
		sign, body = lit[:1], lit[1:]
	}
	if sign == "+" {
		sign = ""
	}

	lower := strings.ToLower(body)
	for _, prefix := range []string{"0x", "0b", "0o"} {
		if strings.HasPrefix(lower, prefix) {
			n, err := strconv.ParseInt(sign+lower, 0, 64)
			if err != nil {
				return nil, p.errorf("invalid number %q", lit)
			}
			return n, nil
		}
	}

	if n, err := strconv.ParseInt(sign+body, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(sign+body, 64)
	if err != nil {
		return nil, p.errorf("invalid number %q", lit)
	}
	return f, nil
}

func (p *ronParser) char() (any, error) {
	p.pos++
	if p.eof() {
		return nil, errUnexpectedEOF
	}

	var r rune
	if p.src[p.pos] == '\\' {
		s, err := p.escape()
		if err != nil {
			return nil, err
		}
		r, _ = utf8.DecodeRuneInString(s)
	} else {
		var size int
		r, size = utf8.DecodeRune(p.src[p.pos:])
		p.pos += size
	}

	if p.peek() != '\'' {
		return nil, p.errorf("unterminated char literal")
	}
	p.pos++
	return string(r), nil
}

func (p *ronParser) quoted() (any, error) {
	p.pos++
	var sb strings.Builder
	for {
		if p.eof() {
			return nil, errUnexpectedEOF
		}
		switch c := p.src[p.pos]; c {
		case '"':
			p.pos++
			return sb.String(), nil
		case '\\':
			s, err := p.escape()
			if err != nil {
				return nil, err
			}
			sb.WriteString(s)
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
}

// escape decodes the escape sequence at the current backslash.
func (p *ronParser) escape() (string, error) {
	p.pos++
	if p.eof() {
		return "", errUnexpectedEOF
	}
	c := p.src[p.pos]
	p.pos++

	switch c {
	case 'n':
		return "\n", nil
	case 't':
		return "\t", nil
	case 'r':
		return "\r", nil
	case '0':
		return "\x00", nil
	case '\\', '"', '\'', '/':
		return string(c), nil
	case 'x':
		if p.pos+2 > len(p.src) {
			return "", errUnexpectedEOF
		}
		n, err := strconv.ParseUint(string(p.src[p.pos:p.pos+2]), 16, 8)
		if err != nil {
			return "", p.errorf("invalid \\x escape")
		}
		p.pos += 2
		return string(rune(n)), nil
	case 'u':
		if err := p.expect('{'); err != nil {
			return "", err
		}
		end := strings.IndexByte(string(p.src[p.pos:]), '}')
		if end < 0 {
			return "", errUnexpectedEOF
		}
		n, err := strconv.ParseUint(string(p.src[p.pos:p.pos+end]), 16, 32)
		if err != nil || !utf8.ValidRune(rune(n)) {
			return "", p.errorf("invalid \\u escape")
		}
		p.pos += end + 1
		return string(rune(n)), nil
	default:
		return "", p.errorf("unknown escape \\%c", c)
	}
}

// raw reads r"..." or r#"..."# with any number of hashes.
func (p *ronParser) raw() (any, error) {
	p.pos++
	hashes := 0
	for p.peek() == '#' {
		hashes++
		p.pos++
	}
	if p.peek() != '"' {
		return nil, p.errorf("malformed raw string")
	}
	p.pos++

	terminator := "\"" + strings.Repeat("#", hashes)
	end := strings.Index(string(p.src[p.pos:]), terminator)
	if end < 0 {
		return nil, errUnexpectedEOF
	}
	s := string(p.src[p.pos : p.pos+end])
	p.pos += end + len(terminator)
	return s, nil
}
