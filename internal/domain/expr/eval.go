// Package expr evaluates user-supplied price strings.
//
// A price field may hold a plain number ("10.5") or a small arithmetic
// expression ("7.48/2", "(10+5)*2"). Input arrives on every keystroke, so
// evaluation never fails loudly: anything that cannot be evaluated degrades
// to a plain numeric parse of the leading digits, and failing that to 0.
package expr

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// allowed is the full character class for arithmetic expressions. Anything
// outside it (identifiers, quotes, function calls) skips evaluation entirely,
// which closes off injection attempts through the price field.
var allowed = regexp.MustCompile(`^[0-9+\-*/().\s]+$`)

// numberPrefix matches a leading float literal, parseFloat-style.
var numberPrefix = regexp.MustCompile(`^[+-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?`)

// Evaluate parses a price string and returns its value rounded to the cent.
// It never panics and always returns a finite number; malformed or hostile
// input resolves to the leading numeric prefix, or 0 if there is none.
func Evaluate(input string) float64 {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0
	}

	if !allowed.MatchString(trimmed) {
		return numericPrefix(trimmed)
	}

	value, err := (&parser{input: trimmed}).run()
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return numericPrefix(trimmed)
	}

	return roundToCents(value)
}

// ParseNumber parses a decimal string with leading-prefix semantics: the
// longest numeric prefix wins ("12.5 oz" parses as 12.5) and anything without
// one parses as 0. This is the degrade-to-zero parse used for stored money
// fields.
func ParseNumber(s string) float64 {
	return numericPrefix(strings.TrimSpace(s))
}

// roundToCents rounds half away from zero at the cent.
func roundToCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// numericPrefix parses the leading number of a string, returning 0 when the
// string does not start with one.
func numericPrefix(s string) float64 {
	match := numberPrefix.FindString(s)
	if match == "" {
		return 0
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// parser is a recursive-descent evaluator for the grammar:
//
//	expr   = term { ("+"|"-") term }
//	term   = factor { ("*"|"/") factor }
//	factor = { "+"|"-" } ( number | "(" expr ")" )
//
// Only literal numbers are recognized; there is no identifier or function
// support by construction.
type parser struct {
	input string
	pos   int
}

func (p *parser) run() (float64, error) {
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return 0, errors.New("unexpected trailing input")
	}
	return v, nil
}

func (p *parser) parseExpr() (float64, error) {
	v, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			v += rhs
		case '-':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			v -= rhs
		default:
			return v, nil
		}
	}
}

func (p *parser) parseTerm() (float64, error) {
	v, err := p.parseFactor()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '*':
			p.pos++
			rhs, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			v *= rhs
		case '/':
			p.pos++
			rhs, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			v /= rhs
		default:
			return v, nil
		}
	}
}

func (p *parser) parseFactor() (float64, error) {
	sign := 1.0
	for {
		switch p.peek() {
		case '+':
			p.pos++
			continue
		case '-':
			sign = -sign
			p.pos++
			continue
		}
		break
	}

	if p.peek() == '(' {
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		p.skipSpace()
		if p.pos >= len(p.input) || p.input[p.pos] != ')' {
			return 0, errors.New("missing closing parenthesis")
		}
		p.pos++
		return sign * v, nil
	}

	v, err := p.parseNumber()
	if err != nil {
		return 0, err
	}
	return sign * v, nil
}

func (p *parser) parseNumber() (float64, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if (c < '0' || c > '9') && c != '.' {
			break
		}
		p.pos++
	}
	if start == p.pos {
		return 0, errors.New("expected number")
	}
	v, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, errors.New("invalid number")
	}
	return v, nil
}

// peek returns the next non-space byte without consuming it, or 0 at EOF.
func (p *parser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}
