package expr

import (
	"errors"
	"fmt"
	"math"
)

// parser is a recursive-descent evaluator over the lexed token stream.
// Precedence, loosest first: or, and, not, comparison, additive,
// multiplicative, unary sign, power, primary.
type parser struct {
	toks     []token
	pos      int
	vars     map[string]Value
	bareword bool
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	t := p.next()
	if t.kind != kind {
		return t, fmt.Errorf("%w: expected %s at %d", ErrSyntax, what, t.pos)
	}
	return t, nil
}

func (p *parser) parseOr() (Value, error) {
	left, err := p.parseAnd()
	for err == nil && p.peek().kind == tokOr {
		p.next()
		right, rerr := p.parseAnd()
		if left.Truthy() {
			// Short-circuit: the right side was parsed for syntax but
			// its evaluation failures don't matter.
			if rerr != nil && !errors.Is(rerr, ErrEvaluation) {
				return Number(0), rerr
			}
			left = Bool(true)
			continue
		}
		if rerr != nil {
			return Number(0), rerr
		}
		left = Bool(right.Truthy())
	}
	return left, err
}

func (p *parser) parseAnd() (Value, error) {
	left, err := p.parseNot()
	for err == nil && p.peek().kind == tokAnd {
		p.next()
		right, rerr := p.parseNot()
		if !left.Truthy() {
			if rerr != nil && !errors.Is(rerr, ErrEvaluation) {
				return Number(0), rerr
			}
			left = Bool(false)
			continue
		}
		if rerr != nil {
			return Number(0), rerr
		}
		left = Bool(left.Truthy() && right.Truthy())
	}
	return left, err
}

func (p *parser) parseNot() (Value, error) {
	if p.peek().kind == tokNot {
		p.next()
		v, err := p.parseNot()
		if err != nil {
			return Number(0), err
		}
		return Bool(!v.Truthy()), nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (Value, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return Number(0), err
	}
	op := p.peek().kind
	switch op {
	case tokEq, tokNe, tokLt, tokGt, tokLe, tokGe:
	default:
		return left, nil
	}
	p.next()
	right, err := p.parseAdditive()
	if err != nil {
		return Number(0), err
	}
	return compare(op, left, right)
}

// compare implements comparison semantics: numeric when both operands are
// numbers; equality falls back to string comparison otherwise; ordering
// of non-numeric operands cannot be computed.
func compare(op tokenKind, left, right Value) (Value, error) {
	if left.IsNumber() && right.IsNumber() {
		l, r := left.Float(), right.Float()
		switch op {
		case tokEq:
			return Bool(l == r), nil
		case tokNe:
			return Bool(l != r), nil
		case tokLt:
			return Bool(l < r), nil
		case tokGt:
			return Bool(l > r), nil
		case tokLe:
			return Bool(l <= r), nil
		case tokGe:
			return Bool(l >= r), nil
		}
	}
	switch op {
	case tokEq:
		return Bool(left.Text() == right.Text()), nil
	case tokNe:
		return Bool(left.Text() != right.Text()), nil
	}
	return Number(0), fmt.Errorf("%w: ordered comparison of non-numeric operands", ErrEvaluation)
}

func (p *parser) parseAdditive() (Value, error) {
	left, err := p.parseMultiplicative()
	for err == nil {
		switch p.peek().kind {
		case tokPlus:
			p.next()
			var right Value
			right, err = p.parseMultiplicative()
			if err == nil {
				left, err = arith('+', left, right)
			}
		case tokMinus:
			p.next()
			var right Value
			right, err = p.parseMultiplicative()
			if err == nil {
				left, err = arith('-', left, right)
			}
		default:
			return left, nil
		}
	}
	return Number(0), err
}

func (p *parser) parseMultiplicative() (Value, error) {
	left, err := p.parseUnary()
	for err == nil {
		var op byte
		switch p.peek().kind {
		case tokStar:
			op = '*'
		case tokSlash:
			op = '/'
		case tokPercent:
			op = '%'
		default:
			return left, nil
		}
		p.next()
		var right Value
		right, err = p.parseUnary()
		if err == nil {
			left, err = arith(op, left, right)
		}
	}
	return Number(0), err
}

func (p *parser) parseUnary() (Value, error) {
	switch p.peek().kind {
	case tokMinus:
		p.next()
		v, err := p.parseUnary()
		if err != nil {
			return Number(0), err
		}
		f, err := asNumber(v)
		if err != nil {
			return Number(0), err
		}
		return Number(-f), nil
	case tokPlus:
		p.next()
		v, err := p.parseUnary()
		if err != nil {
			return Number(0), err
		}
		if _, err := asNumber(v); err != nil {
			return Number(0), err
		}
		return v, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (Value, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return Number(0), err
	}
	if p.peek().kind != tokPower {
		return base, nil
	}
	p.next()
	// Right-associative; the exponent may carry its own unary sign.
	exp, err := p.parseUnary()
	if err != nil {
		return Number(0), err
	}
	b, err := asNumber(base)
	if err != nil {
		return Number(0), err
	}
	e, err := asNumber(exp)
	if err != nil {
		return Number(0), err
	}
	r := math.Pow(b, e)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return Number(0), fmt.Errorf("%w: %v ** %v is not finite", ErrEvaluation, b, e)
	}
	return Number(r), nil
}

func (p *parser) parsePrimary() (Value, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return Number(t.num), nil
	case tokLParen:
		v, err := p.parseOr()
		if err != nil {
			return Number(0), err
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return Number(0), err
		}
		return v, nil
	case tokIdent:
		if p.peek().kind == tokLParen {
			return p.parseCall(t)
		}
		if v, ok := p.vars[t.text]; ok {
			return v, nil
		}
		if c, ok := constants[t.text]; ok {
			return Number(c), nil
		}
		if p.bareword {
			return String(t.text), nil
		}
		return Number(0), fmt.Errorf("%w: unknown identifier %q", ErrEvaluation, t.text)
	default:
		return Number(0), fmt.Errorf("%w: unexpected token at %d", ErrSyntax, t.pos)
	}
}

func (p *parser) parseCall(name token) (Value, error) {
	fn, ok := functions[name.text]
	if !ok {
		return Number(0), fmt.Errorf("%w: unknown function %q", ErrEvaluation, name.text)
	}
	if _, err := p.expect(tokLParen, "'('"); err != nil {
		return Number(0), err
	}
	var args []float64
	if p.peek().kind != tokRParen {
		for {
			v, err := p.parseOr()
			if err != nil {
				return Number(0), err
			}
			f, err := asNumber(v)
			if err != nil {
				return Number(0), err
			}
			args = append(args, f)
			if p.peek().kind != tokComma {
				break
			}
			p.next()
		}
	}
	if _, err := p.expect(tokRParen, "')'"); err != nil {
		return Number(0), err
	}
	if len(args) < fn.minArgs || fn.maxArgs >= 0 && len(args) > fn.maxArgs {
		return Number(0), fmt.Errorf("%w: %s takes %d-%d arguments, got %d",
			ErrEvaluation, name.text, fn.minArgs, fn.maxArgs, len(args))
	}
	return fn.call(name.text, args)
}

func asNumber(v Value) (float64, error) {
	if !v.IsNumber() {
		return 0, fmt.Errorf("%w: string operand in arithmetic", ErrEvaluation)
	}
	return v.Float(), nil
}

func arith(op byte, left, right Value) (Value, error) {
	l, err := asNumber(left)
	if err != nil {
		return Number(0), err
	}
	r, err := asNumber(right)
	if err != nil {
		return Number(0), err
	}
	switch op {
	case '+':
		return Number(l + r), nil
	case '-':
		return Number(l - r), nil
	case '*':
		return Number(l * r), nil
	case '/':
		if r == 0 {
			return Number(0), fmt.Errorf("%w: division by zero", ErrEvaluation)
		}
		return Number(l / r), nil
	case '%':
		if r == 0 {
			return Number(0), fmt.Errorf("%w: modulo by zero", ErrEvaluation)
		}
		m := math.Mod(l, r)
		if m != 0 && (m < 0) != (r < 0) {
			m += r
		}
		return Number(m), nil
	}
	return Number(0), fmt.Errorf("%w: bad operator", ErrEvaluation)
}
