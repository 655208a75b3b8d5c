package symbolic

import (
	"fmt"
	"math/big"
)

// Parse reads an algebraic expression: the operators + - * / ^ with the
// usual precedence (^ binds tightest and associates right), parentheses,
// identifiers, decimal literals, and the functions ln and exp. The result
// is simplified.
func Parse(src string) (Expr, error) {
	p := &parser{lex: lexer{src: src}}
	if err := p.advance(); err != nil {
		return nil, err
	}
	e, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.unexpected()
	}
	return e.Simplify(), nil
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokCaret
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

type lexer struct {
	src string
	pos int
}

func (l *lexer) next() (token, *ParseError) {
	for l.pos < len(l.src) && (l.src[l.pos] == ' ' || l.src[l.pos] == '\t') {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, pos: l.pos}, nil
	}
	start := l.pos
	c := l.src[l.pos]

	switch {
	case c >= '0' && c <= '9':
		return l.number(start), nil
	case isIdentStart(c):
		for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
			l.pos++
		}
		return token{kind: tokIdent, text: l.src[start:l.pos], pos: start}, nil
	}

	l.pos++
	one := l.src[start:l.pos]
	switch c {
	case '+':
		return token{kind: tokPlus, text: one, pos: start}, nil
	case '-':
		return token{kind: tokMinus, text: one, pos: start}, nil
	case '*':
		return token{kind: tokStar, text: one, pos: start}, nil
	case '/':
		return token{kind: tokSlash, text: one, pos: start}, nil
	case '^':
		return token{kind: tokCaret, text: one, pos: start}, nil
	case '(':
		return token{kind: tokLParen, text: one, pos: start}, nil
	case ')':
		return token{kind: tokRParen, text: one, pos: start}, nil
	}
	return token{}, &ParseError{Offset: start, Msg: fmt.Sprintf("unexpected character %q", c)}
}

// number scans digits, an optional fraction, and an optional exponent.
func (l *lexer) number(start int) token {
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		mark := l.pos
		l.pos++
		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}
		if l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
				l.pos++
			}
		} else {
			// Not an exponent after all; leave the e for the next token.
			l.pos = mark
		}
	}
	return token{kind: tokNumber, text: l.src[start:l.pos], pos: start}
}

func isDigit(c byte) bool      { return c >= '0' && c <= '9' }
func isIdentStart(c byte) bool { return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isIdentPart(c byte) bool  { return isIdentStart(c) || isDigit(c) }

type parser struct {
	lex lexer
	tok token
}

func (p *parser) advance() *ParseError {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) unexpected() *ParseError {
	if p.tok.kind == tokEOF {
		return &ParseError{Offset: p.tok.pos, Msg: "unexpected end of input"}
	}
	return &ParseError{Offset: p.tok.pos, Msg: fmt.Sprintf("unexpected %q", p.tok.text)}
}

func (p *parser) parseSum() (Expr, *ParseError) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokPlus || p.tok.kind == tokMinus {
		op := p.tok.kind
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if op == tokPlus {
			left = Sum(left, right)
		} else {
			left = Sub(left, right)
		}
	}
	return left, nil
}

func (p *parser) parseTerm() (Expr, *ParseError) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokStar || p.tok.kind == tokSlash {
		op := p.tok.kind
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if op == tokStar {
			left = Prod(left, right)
		} else {
			left = Div(left, right)
		}
	}
	return left, nil
}

func (p *parser) parseUnary() (Expr, *ParseError) {
	if p.tok.kind == tokMinus {
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Neg(e), nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (Expr, *ParseError) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokCaret {
		return base, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	// The exponent goes through parseUnary so that k^-1 parses and
	// a^b^c associates right.
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return Power(base, exp), nil
}

func (p *parser) parseAtom() (Expr, *ParseError) {
	switch p.tok.kind {
	case tokNumber:
		r, ok := new(big.Rat).SetString(p.tok.text)
		if !ok {
			return nil, &ParseError{Offset: p.tok.pos, Msg: fmt.Sprintf("invalid number %q", p.tok.text)}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Num{val: r}, nil

	case tokIdent:
		name := p.tok.text
		pos := p.tok.pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind != tokLParen {
			return Var(name), nil
		}
		if name != "ln" && name != "exp" {
			return nil, &ParseError{Offset: pos, Msg: fmt.Sprintf("unknown function %q", name)}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		arg, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			return nil, p.unexpected()
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if name == "ln" {
			return Ln(arg), nil
		}
		return Exp(arg), nil

	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			return nil, p.unexpected()
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return e, nil
	}
	return nil, p.unexpected()
}
