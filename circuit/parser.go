package circuit

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/scanner"
)

type parser struct {
	s     scanner.Scanner
	eof   bool   // Have we reached eof yet?
	token string // Last token read
}

// ParseExpr parses an expression from r.
// Expressions are written using the following operators (from lowest to highest priority):
//
// - for a disjunction ("or"), the "|" operator,
// - for an exclusive disjunction ("xor"), the "^" operator,
// - for a conjunction ("and"), the "&" operator,
// - for a negation, the "!" unary operator.
//
// Constants are written "true" and "false" (or "1" and "0"). Parentheses can be used to group subexpressions.
func ParseExpr(r io.Reader) (Expr, error) {
	p := newParser(r)
	e, err := p.parseOr()
	if err != nil {
		return Expr{}, err
	}
	if !p.eof {
		return Expr{}, fmt.Errorf("%w: unexpected token %q at %s", ErrExpr, p.token, p.s.Pos())
	}
	return e, nil
}

func newParser(r io.Reader) *parser {
	var p parser
	p.s.Init(r)
	p.s.Error = func(*scanner.Scanner, string) {}
	p.scan()
	return &p
}

func (p *parser) scan() {
	if p.eof {
		return
	}
	p.eof = (p.s.Scan() == scanner.EOF)
	p.token = p.s.TokenText()
}

// parseNary parses a list of operands separated by the op token, and flattens them into a single expression.
func (p *parser) parseNary(tok string, op Op, operand func() (Expr, error)) (Expr, error) {
	e, err := operand()
	if err != nil {
		return Expr{}, err
	}
	args := []Expr{e}
	for !p.eof && p.token == tok {
		p.scan()
		if p.eof {
			return Expr{}, fmt.Errorf("%w: unexpected EOF after %q", ErrExpr, tok)
		}
		e, err := operand()
		if err != nil {
			return Expr{}, err
		}
		args = append(args, e)
	}
	if len(args) == 1 {
		return args[0], nil
	}
	return Expr{Op: op, Args: args}, nil
}

func (p *parser) parseOr() (Expr, error)  { return p.parseNary("|", OpOr, p.parseXor) }
func (p *parser) parseXor() (Expr, error) { return p.parseNary("^", OpXor, p.parseAnd) }
func (p *parser) parseAnd() (Expr, error) { return p.parseNary("&", OpAnd, p.parseNot) }

func (p *parser) parseNot() (Expr, error) {
	if p.token == "!" {
		p.scan()
		if p.eof {
			return Expr{}, fmt.Errorf("%w: unexpected EOF after negation", ErrExpr)
		}
		e, err := p.parseNot()
		if err != nil {
			return Expr{}, err
		}
		return Not(e), nil
	}
	return p.parseBasic()
}

func (p *parser) parseBasic() (Expr, error) {
	if p.eof {
		return Expr{}, fmt.Errorf("%w: expected expression, found EOF", ErrExpr)
	}
	switch p.token {
	case "(":
		p.scan()
		e, err := p.parseOr()
		if err != nil {
			return Expr{}, err
		}
		if p.eof {
			return Expr{}, fmt.Errorf("%w: expected closing parenthesis, found EOF at %s", ErrExpr, p.s.Pos())
		}
		if p.token != ")" {
			return Expr{}, fmt.Errorf("%w: expected closing parenthesis, found %q at %s", ErrExpr, p.token, p.s.Pos())
		}
		p.scan()
		return e, nil
	case "true", "1":
		p.scan()
		return Const(true), nil
	case "false", "0":
		p.scan()
		return Const(false), nil
	}
	if !isIdent(p.token) {
		return Expr{}, fmt.Errorf("%w: unexpected token %q at %s", ErrExpr, p.token, p.s.Pos())
	}
	defer p.scan()
	return Var(p.token), nil
}

func isIdent(tok string) bool {
	for i, r := range tok {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (i > 0 && r >= '0' && r <= '9') {
			continue
		}
		return false
	}
	return tok != ""
}

// ParseAssignment parses an assignment of the form "out1, out2 = expr".
func ParseAssignment(s string) (Assignment, error) {
	lhs, rhs, ok := strings.Cut(s, "=")
	if !ok {
		return Assignment{}, fmt.Errorf("%w: missing '=' in %q", ErrAssignment, s)
	}
	var outputs []string
	for _, o := range strings.Split(lhs, ",") {
		o = strings.TrimSpace(o)
		if !isIdent(o) {
			return Assignment{}, fmt.Errorf("%w: invalid output name %q", ErrExpr, o)
		}
		outputs = append(outputs, o)
	}
	e, err := ParseExpr(strings.NewReader(rhs))
	if err != nil {
		return Assignment{}, err
	}
	return Assignment{Outputs: outputs, Expr: e}, nil
}

// ParseCircuit reads a circuit from r, one assignment per line.
// Empty lines and lines starting with '#' are ignored.
func ParseCircuit(r io.Reader) (Circuit, error) {
	var res Circuit
	sc := bufio.NewScanner(r)
	lineNb := 0
	for sc.Scan() {
		lineNb++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		a, err := ParseAssignment(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNb, err)
		}
		res = append(res, a)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("could not read circuit: %v", err)
	}
	return res, nil
}
