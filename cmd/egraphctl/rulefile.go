package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/gitrdm/eqsat/eqsat"
)

// parseRuleFile reads one rule per non-blank, non-comment line in the form
//
//	LHS => RHS
//
// e.g. "x * 2 => x << 1". Identifiers become eqsat.VariablePattern,
// integer literals become eqsat.ConstantPattern, and the six eqsat.BinaryOp
// operators are spelled +, -, *, /, <<, >>, with the conventional C-style
// precedence (multiplicative binds tighter than additive, which binds
// tighter than shift) and parentheses for overriding it.
//
// Lines are collected independently: a malformed line does not stop the
// rest of the file from parsing. All line errors are returned together via
// go-multierror so a caller can report every mistake in one pass instead of
// fixing the file one error at a time.
func parseRuleFile(r io.Reader) ([]eqsat.Rule, error) {
	scanner := bufio.NewScanner(r)
	var rules []eqsat.Rule
	var errs *multierror.Error

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		rule, err := parseRuleLine(line)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("line %d: %w", lineNo, err))
			continue
		}
		rules = append(rules, rule)
	}
	if err := scanner.Err(); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("reading rule file: %w", err))
	}

	return rules, errs.ErrorOrNil()
}

func parseRuleLine(line string) (eqsat.Rule, error) {
	sides := strings.SplitN(line, "=>", 2)
	if len(sides) != 2 {
		return eqsat.Rule{}, fmt.Errorf("expected %q separator in rule %q", "=>", line)
	}

	lhs, err := parsePattern(sides[0])
	if err != nil {
		return eqsat.Rule{}, fmt.Errorf("lhs: %w", err)
	}
	rhs, err := parsePattern(sides[1])
	if err != nil {
		return eqsat.Rule{}, fmt.Errorf("rhs: %w", err)
	}
	return eqsat.Rule{LHS: lhs, RHS: rhs}, nil
}

// parsePattern parses one side of a rule line into a Pattern tree.
func parsePattern(src string) (eqsat.Pattern, error) {
	p := &patternParser{tokens: tokenize(src)}
	pat, err := p.parseShift()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.tokens) {
		return nil, fmt.Errorf("unexpected trailing input near %q", p.tokens[p.pos].text)
	}
	return pat, nil
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
}

func tokenize(src string) []token {
	var toks []token
	runes := []rune(src)
	i := 0
	for i < len(runes) {
		c := runes[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '(':
			toks = append(toks, token{tokLParen, "("})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")"})
			i++
		case c == '<' && i+1 < len(runes) && runes[i+1] == '<':
			toks = append(toks, token{tokOp, "<<"})
			i += 2
		case c == '>' && i+1 < len(runes) && runes[i+1] == '>':
			toks = append(toks, token{tokOp, ">>"})
			i += 2
		case strings.ContainsRune("+-*/", c):
			toks = append(toks, token{tokOp, string(c)})
			i++
		case c >= '0' && c <= '9':
			j := i
			for j < len(runes) && runes[j] >= '0' && runes[j] <= '9' {
				j++
			}
			toks = append(toks, token{tokNumber, string(runes[i:j])})
			i = j
		default:
			j := i
			for j < len(runes) && isIdentRune(runes[j]) {
				j++
			}
			if j == i {
				// Unrecognized character: skip it rather than looping
				// forever; parsePattern will surface a trailing-input
				// error once the token stream stops making sense.
				i++
				continue
			}
			toks = append(toks, token{tokIdent, string(runes[i:j])})
			i = j
		}
	}
	return toks
}

func isIdentRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// patternParser is a small recursive-descent / precedence-climbing parser:
// shift (<< >>) over additive (+ -) over multiplicative (* /) over a
// primary (identifier, number, or parenthesized sub-expression). This
// mirrors C's precedence, where shift binds more loosely than + and -
// (x + y << 2 parses as (x + y) << 2).
type patternParser struct {
	tokens []token
	pos    int
}

func (p *patternParser) peek() token {
	if p.pos >= len(p.tokens) {
		return token{kind: tokEOF}
	}
	return p.tokens[p.pos]
}

func (p *patternParser) next() token {
	t := p.peek()
	p.pos++
	return t
}

func (p *patternParser) parseShift() (eqsat.Pattern, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokOp || (t.text != "<<" && t.text != ">>") {
			return left, nil
		}
		p.next()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		op := eqsat.LSHIFT
		if t.text == ">>" {
			op = eqsat.RSHIFT
		}
		left = eqsat.PBinary(op, left, right)
	}
}

func (p *patternParser) parseAdditive() (eqsat.Pattern, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokOp || (t.text != "+" && t.text != "-") {
			return left, nil
		}
		p.next()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		op := eqsat.ADD
		if t.text == "-" {
			op = eqsat.SUB
		}
		left = eqsat.PBinary(op, left, right)
	}
}

func (p *patternParser) parseMultiplicative() (eqsat.Pattern, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokOp || (t.text != "*" && t.text != "/") {
			return left, nil
		}
		p.next()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		op := eqsat.MUL
		if t.text == "/" {
			op = eqsat.DIV
		}
		left = eqsat.PBinary(op, left, right)
	}
}

func (p *patternParser) parsePrimary() (eqsat.Pattern, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		v, err := strconv.Atoi(t.text)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q: %w", t.text, err)
		}
		return eqsat.PConstant(v), nil
	case tokIdent:
		return eqsat.PVariable(t.text), nil
	case tokLParen:
		inner, err := p.parseShift()
		if err != nil {
			return nil, err
		}
		if p.peek().kind != tokRParen {
			return nil, fmt.Errorf("expected closing paren")
		}
		p.next()
		return inner, nil
	default:
		return nil, fmt.Errorf("unexpected token %q", t.text)
	}
}
