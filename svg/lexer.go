package svg

import (
	"fmt"
	"strconv"
	"strings"

	gl "github.com/rustyoz/genericlexer"
)

// token is a lexer item with separators dropped.
type token struct {
	kind  gl.ItemType
	value string
}

func (t token) isNumber() bool { return t.kind == gl.ItemNumber }

func (t token) float() (float64, error) {
	v, err := strconv.ParseFloat(t.value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad number %q", ErrSyntax, t.value)
	}
	return v, nil
}

// tokenize splits attribute text into letters, words, numbers and
// parentheses. Whitespace and commas are dropped.
func tokenize(name, input string) ([]token, error) {
	src := normalizeNumbers(input)
	_, items := gl.Lex(name, src)

	var toks []token
	consumed := 0
	// Drain the channel fully so the lexer goroutine exits.
	for it := range items {
		consumed += len(it.Value)
		switch it.Type {
		case gl.ItemWSP, gl.ItemComma, gl.ItemEOS:
			continue
		}
		toks = append(toks, token{kind: it.Type, value: it.Value})
	}
	if consumed != len(src) {
		return nil, fmt.Errorf("%w: unexpected character at offset %d in %s %q", ErrSyntax, consumed, name, input)
	}
	return toks, nil
}

// normalizeNumbers rewrites SVG number syntax the lexer can not split on
// its own: "1-2" becomes "1 -2", ".5" becomes "0.5", "1.5.5" becomes
// "1.5 0.5" and "1E3" becomes "1e3". Carriage returns and form feeds become
// spaces.
func normalizeNumbers(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	inNum, dot, exp := false, false, false
	var prev rune
	write := func(r rune) {
		b.WriteRune(r)
		prev = r
	}
	for _, r := range s {
		if r == '\r' || r == '\f' {
			r = ' '
		}
		switch {
		case r >= '0' && r <= '9':
			if !inNum {
				inNum, dot, exp = true, false, false
			}
		case r == '.':
			if !inNum || dot || exp {
				if inNum {
					write(' ')
				}
				write('0')
				inNum, dot, exp = true, true, false
				write(r)
				continue
			}
			dot = true
		case (r == 'e' || r == 'E') && inNum && !exp && (isDigit(prev) || prev == '.'):
			r = 'e'
			exp = true
		case r == '-' || r == '+':
			if inNum && prev == 'e' {
				break
			}
			if prev != 0 && prev != ' ' && prev != '\t' && prev != '\n' && prev != ',' && prev != '(' {
				write(' ')
			}
			inNum, dot, exp = true, false, false
		default:
			inNum = false
		}
		write(r)
	}
	return b.String()
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// numbers parses a whitespace or comma separated number list.
func numbers(name, s string) ([]float64, error) {
	toks, err := tokenize(name, s)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(toks))
	for _, t := range toks {
		if !t.isNumber() {
			return nil, fmt.Errorf("%w: %s: unexpected %q", ErrSyntax, name, t.value)
		}
		v, err := t.float()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
