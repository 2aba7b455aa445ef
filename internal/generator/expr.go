package generator

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// evalExpr evaluates a small arithmetic expression over the drawn params.
// Supported: + - * /, parentheses, integer and decimal literals, and param
// names. Pool authors use this for numeric answers and matrix cells, e.g.
// "a + b" or "(a*d - b*c) / 2".
func evalExpr(input string, params map[string]int) (float64, error) {
	p := &exprParser{src: input, params: params}
	v, err := p.parseSum()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return 0, fmt.Errorf("unexpected %q at offset %d in expression %q", p.src[p.pos], p.pos, input)
	}
	return v, nil
}

type exprParser struct {
	src    string
	pos    int
	params map[string]int
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *exprParser) parseSum() (float64, error) {
	v, err := p.parseProduct()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return v, nil
		}
		op := p.src[p.pos]
		if op != '+' && op != '-' {
			return v, nil
		}
		p.pos++
		rhs, err := p.parseProduct()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			v += rhs
		} else {
			v -= rhs
		}
	}
}

func (p *exprParser) parseProduct() (float64, error) {
	v, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return v, nil
		}
		op := p.src[p.pos]
		if op != '*' && op != '/' {
			return v, nil
		}
		p.pos++
		rhs, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		if op == '*' {
			v *= rhs
		} else {
			if rhs == 0 {
				return 0, fmt.Errorf("division by zero in expression %q", p.src)
			}
			v /= rhs
		}
	}
}

func (p *exprParser) parseUnary() (float64, error) {
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == '-' {
		p.pos++
		v, err := p.parseUnary()
		return -v, err
	}
	return p.parseAtom()
}

func (p *exprParser) parseAtom() (float64, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0, fmt.Errorf("unexpected end of expression %q", p.src)
	}
	c := p.src[p.pos]

	if c == '(' {
		p.pos++
		v, err := p.parseSum()
		if err != nil {
			return 0, err
		}
		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != ')' {
			return 0, fmt.Errorf("missing closing parenthesis in expression %q", p.src)
		}
		p.pos++
		return v, nil
	}

	if c >= '0' && c <= '9' || c == '.' {
		start := p.pos
		for p.pos < len(p.src) && (p.src[p.pos] >= '0' && p.src[p.pos] <= '9' || p.src[p.pos] == '.') {
			p.pos++
		}
		v, err := strconv.ParseFloat(p.src[start:p.pos], 64)
		if err != nil {
			return 0, fmt.Errorf("bad number in expression %q: %w", p.src, err)
		}
		return v, nil
	}

	if unicode.IsLetter(rune(c)) || c == '_' {
		start := p.pos
		for p.pos < len(p.src) {
			r := rune(p.src[p.pos])
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
				break
			}
			p.pos++
		}
		name := p.src[start:p.pos]
		v, ok := p.params[name]
		if !ok {
			return 0, fmt.Errorf("unknown param %q in expression %q", name, p.src)
		}
		return float64(v), nil
	}

	return 0, fmt.Errorf("unexpected %q in expression %q", c, p.src)
}

// substitute replaces every {name} placeholder with the drawn param value.
// Unknown placeholders are left alone so pool typos surface visibly instead
// of producing empty prompts.
func substitute(s string, params map[string]int) string {
	if len(params) == 0 || !strings.Contains(s, "{") {
		return s
	}
	out := s
	for name, value := range params {
		out = strings.ReplaceAll(out, "{"+name+"}", strconv.Itoa(value))
	}
	return out
}
