// Package expr evaluates restricted arithmetic expressions from free-text
// answers. Tokens are numbers, + - * / (with unicode × ÷ − accepted),
// and parentheses; nothing else, so there is no way to execute code.
package expr

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformed is returned for input that is not a valid arithmetic expression.
var ErrMalformed = errors.New("expr: malformed expression")

// ErrDivideByZero is returned when the expression divides by zero.
var ErrDivideByZero = errors.New("expr: division by zero")

// Eval parses and evaluates an arithmetic expression.
func Eval(input string) (float64, error) {
	p := &parser{input: normalize(input)}
	v, err := p.expression()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return 0, fmt.Errorf("%w: unexpected %q", ErrMalformed, p.input[p.pos:])
	}
	return v, nil
}

// normalize maps unicode operator variants to their ASCII forms.
func normalize(s string) string {
	r := strings.NewReplacer("×", "*", "÷", "/", "−", "-", "x", "*", "X", "*")
	return r.Replace(s)
}

// parser is a recursive descent parser over expression / term / factor.
type parser struct {
	input string
	pos   int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func (p *parser) peek() (byte, bool) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos], true
}

func (p *parser) expression() (float64, error) {
	v, err := p.term()
	if err != nil {
		return 0, err
	}
	for {
		ch, ok := p.peek()
		if !ok || (ch != '+' && ch != '-') {
			return v, nil
		}
		p.pos++
		rhs, err := p.term()
		if err != nil {
			return 0, err
		}
		if ch == '+' {
			v += rhs
		} else {
			v -= rhs
		}
	}
}

func (p *parser) term() (float64, error) {
	v, err := p.factor()
	if err != nil {
		return 0, err
	}
	for {
		ch, ok := p.peek()
		if !ok || (ch != '*' && ch != '/') {
			return v, nil
		}
		p.pos++
		rhs, err := p.factor()
		if err != nil {
			return 0, err
		}
		if ch == '*' {
			v *= rhs
		} else {
			if rhs == 0 {
				return 0, ErrDivideByZero
			}
			v /= rhs
		}
	}
}

func (p *parser) factor() (float64, error) {
	ch, ok := p.peek()
	if !ok {
		return 0, fmt.Errorf("%w: unexpected end of input", ErrMalformed)
	}

	if ch == '(' {
		p.pos++
		v, err := p.expression()
		if err != nil {
			return 0, err
		}
		ch, ok = p.peek()
		if !ok || ch != ')' {
			return 0, fmt.Errorf("%w: missing closing parenthesis", ErrMalformed)
		}
		p.pos++
		return v, nil
	}

	if ch == '-' {
		p.pos++
		v, err := p.factor()
		if err != nil {
			return 0, err
		}
		return -v, nil
	}

	return p.number()
}

func (p *parser) number() (float64, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) && (isDigit(p.input[p.pos]) || p.input[p.pos] == '.') {
		p.pos++
	}
	if p.pos == start {
		return 0, fmt.Errorf("%w: expected number at %q", ErrMalformed, p.input[start:])
	}
	v, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, p.input[start:p.pos])
	}
	return v, nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

var (
	ratioPattern  = regexp.MustCompile(`(\d+\.?\d*)\s*:\s*1`)
	numberPattern = regexp.MustCompile(`-?\d+\.?\d*`)
)

// ExtractRatio pulls an X:1 ratio out of free text ("about 3.5:1" → 3.5).
// Absent a ratio, it falls back to ExtractNumber.
func ExtractRatio(text string) (float64, error) {
	if m := ratioPattern.FindStringSubmatch(text); m != nil {
		return strconv.ParseFloat(m[1], 64)
	}
	return ExtractNumber(text)
}

// ExtractNumber pulls a numeric answer out of free text. It strips common
// filler words, then tries to evaluate the remainder as an arithmetic
// expression, falling back to the first bare number found.
func ExtractNumber(text string) (float64, error) {
	cleaned := strings.ToLower(text)
	for _, word := range []string{"percent", "%", "outs", "out", "cards", "card"} {
		cleaned = strings.ReplaceAll(cleaned, word, "")
	}
	cleaned = strings.TrimSpace(cleaned)

	if v, err := Eval(cleaned); err == nil {
		return v, nil
	}

	if m := numberPattern.FindString(cleaned); m != "" {
		return strconv.ParseFloat(m, 64)
	}
	return 0, fmt.Errorf("%w: no number in %q", ErrMalformed, text)
}
