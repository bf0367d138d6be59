// Copyright 2024 The Optics Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package parser implements the two recursive-descent parsers described
// in spec.md: the path grammar (§4.11) and the filter-expression grammar
// (§4.9), sharing a single scanner since a path embeds filter expressions
// inside `[?...]`.
package parser

import (
	"strconv"

	"github.com/opticpath/optics/optics/ast"
	"github.com/opticpath/optics/optics/errors"
	"github.com/opticpath/optics/optics/scanner"
	"github.com/opticpath/optics/optics/token"
)

type parser struct {
	sc   *scanner.Scanner
	tok  token.Token
	errs errors.List
}

func newParser(src string) *parser {
	p := &parser{sc: scanner.New(src)}
	p.next()
	return p
}

func (p *parser) next() { p.tok = p.sc.Scan() }

func (p *parser) errorf(pos token.Pos, format string, args ...interface{}) {
	p.errs = errors.Append(p.errs, errors.Newf(errors.ParseError,
		errors.Pos{Offset: pos.Offset, Line: pos.Line, Column: pos.Column},
		format, args...))
}

func (p *parser) expect(k token.Kind) token.Token {
	tok := p.tok
	if tok.Kind != k {
		p.errorf(tok.Pos, "expected %s, found %s %q", k, tok.Kind, tok.Text)
	} else {
		p.next()
	}
	return tok
}

func (p *parser) expectIdent() string {
	tok := p.expect(token.IDENT)
	return tok.Text
}

func (p *parser) finish() error {
	p.errs = errors.Append(p.errs, p.sc.Errs())
	return p.errs.Err()
}

// ParsePath parses a path string into its syntax tree.
func ParsePath(src string) (*ast.Path, error) {
	p := newParser(src)
	path := p.parsePath()
	if err := p.finish(); err != nil {
		return nil, err
	}
	return path, nil
}

// ParseExpr parses a standalone filter expression (the body of `[?...]`,
// usable on its own for testing/tooling).
func ParseExpr(src string) (ast.Expr, error) {
	p := newParser(src)
	e := p.parseExpr()
	if err := p.finish(); err != nil {
		return nil, err
	}
	return e, nil
}

// --- path grammar ---

func (p *parser) parsePath() *ast.Path {
	path := &ast.Path{}
	if p.tok.Kind == token.EOF {
		p.errorf(p.tok.Pos, "empty path")
		return path
	}
	if c := p.parseComponent(); c != nil {
		path.Components = append(path.Components, c)
	}
	for {
		switch p.tok.Kind {
		case token.EOF:
			return path
		case token.DOT:
			p.next()
			if c := p.parseComponent(); c != nil {
				path.Components = append(path.Components, c)
			}
		case token.LBRACK, token.LBRACE_P, token.COLONCOLON, token.ATOM:
			if c := p.parseComponent(); c != nil {
				path.Components = append(path.Components, c)
			}
		default:
			p.errorf(p.tok.Pos, "unexpected %s %q in path", p.tok.Kind, p.tok.Text)
			return path
		}
	}
}

func (p *parser) parseComponent() ast.Component {
	switch p.tok.Kind {
	case token.LBRACK:
		return p.parseBracket()
	case token.LBRACE_P:
		return p.parsePrism()
	case token.COLONCOLON:
		pos := p.tok.Pos
		p.next()
		name := p.expectIdent()
		return ast.ConverterRef{Name: name, At: pos}
	case token.ATOM:
		pos := p.tok.Pos
		name := p.tok.Text[1:]
		p.next()
		return ast.AtomKey{Name: name, At: pos}
	case token.IDENT:
		pos := p.tok.Pos
		name := p.tok.Text
		p.next()
		return ast.Key{Name: name, At: pos}
	default:
		p.errorf(p.tok.Pos, "unexpected %s %q, expected a path component", p.tok.Kind, p.tok.Text)
		p.next()
		return nil
	}
}

func parseIntLiteral(text string) (int64, error) {
	return strconv.ParseInt(text, 10, 64)
}

func (p *parser) parseBracket() ast.Component {
	pos := p.tok.Pos
	p.next() // consume '['

	switch p.tok.Kind {
	case token.RBRACK:
		p.errorf(pos, "empty brackets")
		p.next()
		return ast.Bracket{Body: ast.All{}, At: pos}

	case token.STAR:
		p.next()
		p.expect(token.RBRACK)
		return ast.Bracket{Body: ast.All{}, At: pos}

	case token.QUESTION:
		p.next()
		e := p.parseExpr()
		p.expect(token.RBRACK)
		return ast.Bracket{Body: ast.FilterBody{Expr: e}, At: pos}

	case token.ATOM:
		var keys []string
		for {
			if p.tok.Kind != token.ATOM {
				p.errorf(p.tok.Pos, "expected an atom key, found %s", p.tok.Kind)
				break
			}
			keys = append(keys, p.tok.Text[1:])
			p.next()
			if p.tok.Kind == token.COMMA {
				p.next()
				continue
			}
			break
		}
		p.expect(token.RBRACK)
		return ast.Bracket{Body: ast.AtomKeyList{Keys: keys}, At: pos}

	case token.NUMBER:
		var idxs []int64
		for {
			if p.tok.Kind != token.NUMBER {
				p.errorf(p.tok.Pos, "expected an integer index, found %s", p.tok.Kind)
				break
			}
			v, err := parseIntLiteral(p.tok.Text)
			if err != nil {
				p.errorf(p.tok.Pos, "invalid integer index %q", p.tok.Text)
			}
			idxs = append(idxs, v)
			p.next()
			if p.tok.Kind == token.COMMA {
				p.next()
				continue
			}
			break
		}
		p.expect(token.RBRACK)
		return ast.Bracket{Body: ast.IndexList{Indices: idxs}, At: pos}

	case token.IDENT, token.STRING:
		var keys []string
		for {
			if p.tok.Kind != token.IDENT && p.tok.Kind != token.STRING {
				p.errorf(p.tok.Pos, "expected a key, found %s", p.tok.Kind)
				break
			}
			keys = append(keys, p.tok.Text)
			p.next()
			if p.tok.Kind == token.COMMA {
				p.next()
				continue
			}
			break
		}
		p.expect(token.RBRACK)
		return ast.Bracket{Body: ast.KeyList{Keys: keys}, At: pos}

	default:
		p.errorf(p.tok.Pos, "invalid bracket body starting with %s", p.tok.Kind)
		for p.tok.Kind != token.RBRACK && p.tok.Kind != token.EOF {
			p.next()
		}
		p.expect(token.RBRACK)
		return ast.Bracket{Body: ast.All{}, At: pos}
	}
}

func (p *parser) parsePrismElem() ast.PrismElem {
	switch p.tok.Kind {
	case token.UNDERSCORE:
		p.next()
		return ast.PrismElem{Ignore: true}
	case token.IDENT:
		name := p.tok.Text
		p.next()
		return ast.PrismElem{Name: name}
	default:
		p.errorf(p.tok.Pos, "expected a prism pattern element, found %s", p.tok.Kind)
		p.next()
		return ast.PrismElem{Ignore: true}
	}
}

func (p *parser) parsePrism() ast.Component {
	pos := p.tok.Pos
	p.next() // consume ':{'

	if p.tok.Kind != token.ATOM {
		p.errorf(p.tok.Pos, "expected a tag, found %s", p.tok.Kind)
	}
	tag := p.tok.Text
	if len(tag) > 0 {
		tag = tag[1:]
	}
	p.next()

	node := ast.Prism{Tag: tag, At: pos}

	switch p.tok.Kind {
	case token.RBRACE:
		node.Rest = true
		p.next()
	case token.COMMA:
		p.next()
		if p.tok.Kind == token.ELLIPSIS {
			node.Rest = true
			p.next()
		} else {
			for {
				node.Pattern = append(node.Pattern, p.parsePrismElem())
				if p.tok.Kind == token.COMMA {
					p.next()
					continue
				}
				break
			}
		}
		p.expect(token.RBRACE)
	default:
		p.errorf(p.tok.Pos, "expected ',' or '}' in prism pattern, found %s", p.tok.Kind)
	}

	if p.tok.Kind == token.ARROW {
		p.next()
		switch p.tok.Kind {
		case token.ATOM:
			node.HasOutputTag = true
			node.OutputTag = p.tok.Text[1:]
			p.next()
		case token.LBRACE_P:
			p.next()
			if p.tok.Kind != token.ATOM {
				p.errorf(p.tok.Pos, "expected an output tag, found %s", p.tok.Kind)
			}
			node.HasOutputTag = true
			node.OutputTag = p.tok.Text[1:]
			p.next()
			if p.tok.Kind == token.COMMA {
				p.next()
				if p.tok.Kind == token.ELLIPSIS {
					p.next()
				} else {
					node.HasOutputPattern = true
					for {
						if p.tok.Kind != token.IDENT {
							p.errorf(p.tok.Pos, "expected an output name, found %s", p.tok.Kind)
							break
						}
						node.OutputPattern = append(node.OutputPattern, p.tok.Text)
						p.next()
						if p.tok.Kind == token.COMMA {
							p.next()
							continue
						}
						break
					}
				}
			}
			p.expect(token.RBRACE)
		default:
			p.errorf(p.tok.Pos, "expected an output tag after '->', found %s", p.tok.Kind)
		}
	}

	if node.HasOutputPattern {
		valid := map[string]bool{}
		for _, e := range node.Pattern {
			if !e.Ignore {
				valid[e.Name] = true
			}
		}
		for _, n := range node.OutputPattern {
			if !valid[n] {
				p.errs = errors.Append(p.errs, errors.Newf(errors.InvalidOutputPattern,
					errors.Pos{Offset: pos.Offset, Line: pos.Line, Column: pos.Column},
					"output pattern name %q is not extracted by the input pattern", n))
			}
		}
	}

	return node
}

// --- filter-expression grammar ---

func (p *parser) parseExpr() ast.Expr { return p.parseOrExpr() }

func (p *parser) parseOrExpr() ast.Expr {
	left := p.parseAndExpr()
	for p.tok.Kind == token.OR {
		pos := p.tok.Pos
		p.next()
		right := p.parseAndExpr()
		left = ast.Logical{Op: ast.OpOr, Left: left, Right: right, At: pos}
	}
	return left
}

func (p *parser) parseAndExpr() ast.Expr {
	left := p.parseNotExpr()
	for p.tok.Kind == token.AND {
		pos := p.tok.Pos
		p.next()
		right := p.parseNotExpr()
		left = ast.Logical{Op: ast.OpAnd, Left: left, Right: right, At: pos}
	}
	return left
}

func (p *parser) parseNotExpr() ast.Expr {
	if p.tok.Kind == token.NOT {
		pos := p.tok.Pos
		p.next()
		x := p.parseNotExpr()
		return ast.Logical{Op: ast.OpNot, Left: x, At: pos}
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() ast.Expr {
	if p.tok.Kind == token.LPAREN {
		p.next()
		e := p.parseExpr()
		p.expect(token.RPAREN)
		return e
	}
	return p.parseComparison()
}

var cmpOps = map[token.Kind]ast.CompareOp{
	token.EQ: ast.OpEq, token.NEQ: ast.OpNeq,
	token.STREQ: ast.OpStrEq, token.STRNEQ: ast.OpStrNeq,
	token.LTE: ast.OpLte, token.GTE: ast.OpGte,
	token.LT: ast.OpLt, token.GT: ast.OpGt,
}

func (p *parser) parseComparison() ast.Expr {
	left := p.parseOperand()
	if op, ok := cmpOps[p.tok.Kind]; ok {
		pos := p.tok.Pos
		p.next()
		right := p.parseOperand()
		return ast.Compare{Op: op, Left: left, Right: right, At: pos}
	}
	return ast.Logical{Op: ast.OpGet, Left: left, At: left.At}
}

func (p *parser) parseOperand() ast.Operand {
	base, pos := p.parseAtomOperand()
	var converters []string
	for p.tok.Kind == token.COLONCOLON {
		p.next()
		converters = append(converters, p.expectIdent())
	}
	return ast.Operand{Base: base, Converters: converters, At: pos}
}

func (p *parser) parseFieldChainRest() []ast.FieldSeg {
	var segs []ast.FieldSeg
	for {
		switch p.tok.Kind {
		case token.DOT:
			p.next()
			if p.tok.Kind != token.IDENT {
				p.errorf(p.tok.Pos, "expected a field name after '.', found %s", p.tok.Kind)
				return segs
			}
			segs = append(segs, ast.FieldSeg{Name: p.tok.Text})
			p.next()
		case token.ATOM:
			segs = append(segs, ast.FieldSeg{IsAtom: true, Name: p.tok.Text[1:]})
			p.next()
		default:
			return segs
		}
	}
}

func (p *parser) parseAtomOperand() (ast.OperandBase, token.Pos) {
	switch p.tok.Kind {
	case token.AT:
		pos := p.tok.Pos
		p.next()
		switch p.tok.Kind {
		case token.DOT:
			p.next()
			if p.tok.Kind != token.IDENT {
				p.errorf(p.tok.Pos, "expected a field name after '@.', found %s", p.tok.Kind)
				return ast.Self{}, pos
			}
			first := ast.FieldSeg{Name: p.tok.Text}
			p.next()
			chain := append([]ast.FieldSeg{first}, p.parseFieldChainRest()...)
			return ast.Field{Chain: chain}, pos
		case token.ATOM:
			first := ast.FieldSeg{IsAtom: true, Name: p.tok.Text[1:]}
			p.next()
			chain := append([]ast.FieldSeg{first}, p.parseFieldChainRest()...)
			return ast.Field{Chain: chain}, pos
		default:
			return ast.Self{}, pos
		}

	case token.IDENT:
		pos := p.tok.Pos
		name := p.tok.Text
		p.next()
		if p.tok.Kind == token.LPAREN {
			p.next()
			var args []ast.Operand
			if p.tok.Kind != token.RPAREN {
				for {
					args = append(args, p.parseOperand())
					if p.tok.Kind == token.COMMA {
						p.next()
						continue
					}
					break
				}
			}
			p.expect(token.RPAREN)
			return ast.FunctionCall{Name: name, Args: args}, pos
		}
		first := ast.FieldSeg{Name: name}
		chain := append([]ast.FieldSeg{first}, p.parseFieldChainRest()...)
		return ast.Field{Chain: chain}, pos

	case token.STRING, token.NUMBER, token.TRUE, token.FALSE, token.NIL:
		pos := p.tok.Pos
		lit := ast.Literal{Kind: p.tok.Kind, Text: p.tok.Text}
		p.next()
		return lit, pos

	case token.ATOM:
		pos := p.tok.Pos
		lit := ast.Literal{Kind: token.ATOM, Text: p.tok.Text}
		p.next()
		return lit, pos

	default:
		pos := p.tok.Pos
		p.errorf(pos, "expected an operand, found %s %q", p.tok.Kind, p.tok.Text)
		p.next()
		return ast.Literal{Kind: token.NIL, Text: "nil"}, pos
	}
}
