package rdf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

const maxLineBytes = 1 << 20

// ParseError reports malformed N-Triples input.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("n-triples line %d: %s", e.Line, e.Msg)
}

// Decoder reads N-Triples statements one line at a time.
type Decoder struct {
	sc   *bufio.Scanner
	line int
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	return &Decoder{sc: sc}
}

// Next returns the next statement, or io.EOF when the input is exhausted.
// Blank lines and comments are skipped.
func (d *Decoder) Next() (Triple, error) {
	for d.sc.Scan() {
		d.line++

		text := strings.TrimSpace(d.sc.Text())
		if text == "" || text[0] == '#' {
			continue
		}

		t, err := parseLine(text)
		if err != nil {
			return Triple{}, &ParseError{Line: d.line, Msg: err.Error()}
		}

		return t, nil
	}

	if err := d.sc.Err(); err != nil {
		return Triple{}, &ParseError{Line: d.line + 1, Msg: err.Error()}
	}

	return Triple{}, io.EOF
}

type lineParser struct {
	s   string
	pos int
}

func parseLine(s string) (Triple, error) {
	p := &lineParser{s: s}

	subj, err := p.term()
	if err != nil {
		return Triple{}, fmt.Errorf("subject: %w", err)
	}

	if !subj.IsResource() {
		return Triple{}, fmt.Errorf("subject must be an IRI or blank node")
	}

	pred, err := p.term()
	if err != nil {
		return Triple{}, fmt.Errorf("predicate: %w", err)
	}

	if pred.Kind != KindIRI {
		return Triple{}, fmt.Errorf("predicate must be an IRI")
	}

	obj, err := p.term()
	if err != nil {
		return Triple{}, fmt.Errorf("object: %w", err)
	}

	p.skipSpace()

	if p.pos >= len(p.s) || p.s[p.pos] != '.' {
		return Triple{}, fmt.Errorf("expected '.' at column %d", p.pos+1)
	}

	p.pos++
	p.skipSpace()

	if p.pos < len(p.s) && p.s[p.pos] != '#' {
		return Triple{}, fmt.Errorf("unexpected trailing content at column %d", p.pos+1)
	}

	return Triple{Subject: subj, Predicate: pred, Object: obj}, nil
}

func (p *lineParser) skipSpace() {
	for p.pos < len(p.s) && (p.s[p.pos] == ' ' || p.s[p.pos] == '\t') {
		p.pos++
	}
}

func (p *lineParser) term() (Term, error) {
	p.skipSpace()

	if p.pos >= len(p.s) {
		return Term{}, fmt.Errorf("unexpected end of line")
	}

	switch {
	case p.s[p.pos] == '<':
		v, err := p.iri()
		if err != nil {
			return Term{}, err
		}

		return IRI(v), nil
	case strings.HasPrefix(p.s[p.pos:], "_:"):
		return p.blank()
	case p.s[p.pos] == '"':
		return p.literal()
	default:
		return Term{}, fmt.Errorf("unexpected character %q at column %d", p.s[p.pos], p.pos+1)
	}
}

func (p *lineParser) iri() (string, error) {
	start := p.pos
	p.pos++

	end := strings.IndexByte(p.s[p.pos:], '>')
	if end < 0 {
		return "", fmt.Errorf("unterminated IRI at column %d", start+1)
	}

	raw := p.s[p.pos : p.pos+end]
	p.pos += end + 1

	if strings.ContainsAny(raw, " <\"{}|^`") {
		return "", fmt.Errorf("invalid character in IRI at column %d", start+1)
	}

	v, err := unescape(raw, false)
	if err != nil {
		return "", err
	}

	if v == "" {
		return "", fmt.Errorf("empty IRI at column %d", start+1)
	}

	if !hasScheme(v) {
		return "", fmt.Errorf("relative IRI %q at column %d", v, start+1)
	}

	return v, nil
}

// hasScheme reports whether v starts with an RFC 3986 scheme followed by ':'.
func hasScheme(v string) bool {
	for i := 0; i < len(v); i++ {
		c := v[i]

		switch {
		case c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		case i > 0 && c == ':':
			return true
		default:
			return false
		}
	}

	return false
}

func (p *lineParser) blank() (Term, error) {
	p.pos += 2
	start := p.pos

	for p.pos < len(p.s) {
		c := p.s[p.pos]
		if c == ' ' || c == '\t' || c == '<' || c == '"' {
			break
		}

		p.pos++
	}

	// A label may contain '.' but cannot end with one.
	for p.pos > start && p.s[p.pos-1] == '.' {
		p.pos--
	}

	if p.pos == start {
		return Term{}, fmt.Errorf("empty blank node label at column %d", start-1)
	}

	return Blank(p.s[start:p.pos]), nil
}

func (p *lineParser) literal() (Term, error) {
	start := p.pos
	p.pos++

	i := p.pos
	for i < len(p.s) && p.s[i] != '"' {
		if p.s[i] == '\\' {
			i++
		}

		i++
	}

	if i >= len(p.s) {
		return Term{}, fmt.Errorf("unterminated literal at column %d", start+1)
	}

	lex, err := unescape(p.s[p.pos:i], true)
	if err != nil {
		return Term{}, err
	}

	p.pos = i + 1

	switch {
	case strings.HasPrefix(p.s[p.pos:], "@"):
		p.pos++
		tagStart := p.pos

		for p.pos < len(p.s) && (isAlnum(p.s[p.pos]) || p.s[p.pos] == '-') {
			p.pos++
		}

		if p.pos == tagStart {
			return Term{}, fmt.Errorf("empty language tag at column %d", tagStart)
		}

		return LangLiteral(lex, p.s[tagStart:p.pos]), nil
	case strings.HasPrefix(p.s[p.pos:], "^^"):
		p.pos += 2
		if p.pos >= len(p.s) || p.s[p.pos] != '<' {
			return Term{}, fmt.Errorf("expected datatype IRI at column %d", p.pos+1)
		}

		dt, err := p.iri()
		if err != nil {
			return Term{}, err
		}

		return TypedLiteral(lex, dt), nil
	default:
		return Literal(lex), nil
	}
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// unescape decodes \u and \U escapes, plus the string escapes when literal is set.
func unescape(s string, literal bool) (string, error) {
	if !utf8.ValidString(s) {
		return "", fmt.Errorf("invalid UTF-8")
	}

	if !strings.Contains(s, `\`) {
		return s, nil
	}

	var b strings.Builder

	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}

		i++
		if i >= len(s) {
			return "", fmt.Errorf("dangling escape")
		}

		switch s[i] {
		case 'u', 'U':
			width := 4
			if s[i] == 'U' {
				width = 8
			}

			if i+width >= len(s) {
				return "", fmt.Errorf("short \\%c escape", s[i])
			}

			code, err := strconv.ParseUint(s[i+1:i+1+width], 16, 32)
			if err != nil || !utf8.ValidRune(rune(code)) {
				return "", fmt.Errorf("invalid \\%c escape %q", s[i], s[i+1:i+1+width])
			}

			b.WriteRune(rune(code))
			i += width

			continue
		}

		if !literal {
			return "", fmt.Errorf("invalid IRI escape \\%c", s[i])
		}

		switch s[i] {
		case 't':
			b.WriteByte('\t')
		case 'b':
			b.WriteByte('\b')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 'f':
			b.WriteByte('\f')
		case '"':
			b.WriteByte('"')
		case '\'':
			b.WriteByte('\'')
		case '\\':
			b.WriteByte('\\')
		default:
			return "", fmt.Errorf("invalid escape \\%c", s[i])
		}
	}

	return b.String(), nil
}
