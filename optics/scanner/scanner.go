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

// Package scanner implements the lexer shared by the path parser and the
// filter-expression parser (spec.md §4.9, §4.11). Whitespace is
// insignificant except inside string literals.
package scanner

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/opticpath/optics/optics/errors"
	"github.com/opticpath/optics/optics/token"
)

// Scanner tokenizes a path or filter-expression source string.
type Scanner struct {
	src string

	ch         rune
	offset     int
	rdOffset   int
	line       int
	lineOffset int

	errs errors.List
}

// New creates a Scanner over src.
func New(src string) *Scanner {
	s := &Scanner{src: src, line: 1}
	s.next()
	return s
}

func (s *Scanner) next() {
	if s.rdOffset < len(s.src) {
		s.offset = s.rdOffset
		if s.ch == '\n' {
			s.line++
			s.lineOffset = s.offset
		}
		r, w := utf8.DecodeRuneInString(s.src[s.rdOffset:])
		s.ch = r
		s.rdOffset += w
	} else {
		s.offset = len(s.src)
		if s.ch == '\n' {
			s.line++
			s.lineOffset = s.offset
		}
		s.ch = -1
	}
}

func (s *Scanner) peek() rune {
	if s.rdOffset < len(s.src) {
		r, _ := utf8.DecodeRuneInString(s.src[s.rdOffset:])
		return r
	}
	return -1
}

func (s *Scanner) pos(offset int) token.Pos {
	return token.Pos{Offset: offset, Line: s.line, Column: offset - s.lineOffset + 1}
}

func (s *Scanner) errorf(offset int, format string, args ...interface{}) {
	s.errs = errors.Append(s.errs, errors.Newf(errors.ParseError,
		errors.Pos{Offset: offset, Line: s.line, Column: offset - s.lineOffset + 1},
		format, args...))
}

// Errs returns the accumulated scan errors, if any.
func (s *Scanner) Errs() errors.List { return s.errs }

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

func (s *Scanner) skipWhitespace() {
	for s.ch == ' ' || s.ch == '\t' || s.ch == '\n' || s.ch == '\r' {
		s.next()
	}
}

func (s *Scanner) scanIdent() string {
	start := s.offset
	for isIdentPart(s.ch) {
		s.next()
	}
	return s.src[start:s.offset]
}

func (s *Scanner) scanNumber() string {
	start := s.offset
	if s.ch == '-' {
		s.next()
	}
	for unicode.IsDigit(s.ch) {
		s.next()
	}
	if s.ch == '.' && unicode.IsDigit(s.peek()) {
		s.next()
		for unicode.IsDigit(s.ch) {
			s.next()
		}
	}
	return s.src[start:s.offset]
}

func (s *Scanner) scanString(quote rune) (string, bool) {
	var b strings.Builder
	s.next() // consume opening quote
	for {
		if s.ch == quote {
			s.next()
			return b.String(), true
		}
		if s.ch < 0 || s.ch == '\n' {
			return b.String(), false
		}
		if s.ch == '\\' {
			s.next()
			switch s.ch {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '\\', '\'', '"':
				b.WriteRune(s.ch)
			default:
				b.WriteRune(s.ch)
			}
			s.next()
			continue
		}
		b.WriteRune(s.ch)
		s.next()
	}
}

// Scan returns the next token. At end of input it returns a token.EOF
// token forever.
func (s *Scanner) Scan() token.Token {
	s.skipWhitespace()
	start := s.offset
	pos := s.pos(start)

	switch ch := s.ch; {
	case ch < 0:
		return token.Token{Kind: token.EOF, Pos: pos}

	case isIdentStart(ch):
		lit := s.scanIdent()
		if lit == "_" {
			return token.Token{Kind: token.UNDERSCORE, Text: lit, Pos: pos}
		}
		if kw, ok := token.Keywords[lit]; ok {
			return token.Token{Kind: kw, Text: lit, Pos: pos}
		}
		return token.Token{Kind: token.IDENT, Text: lit, Pos: pos}

	case unicode.IsDigit(ch):
		lit := s.scanNumber()
		return token.Token{Kind: token.NUMBER, Text: lit, Pos: pos}

	case ch == '\'' || ch == '"':
		lit, ok := s.scanString(ch)
		if !ok {
			s.errorf(start, "unterminated string literal")
			return token.Token{Kind: token.ILLEGAL, Text: lit, Pos: pos}
		}
		return token.Token{Kind: token.STRING, Text: lit, Pos: pos}

	case ch == ':':
		switch {
		case s.peek() == ':':
			s.next()
			s.next()
			return token.Token{Kind: token.COLONCOLON, Text: "::", Pos: pos}
		case s.peek() == '{':
			s.next()
			s.next()
			return token.Token{Kind: token.LBRACE_P, Text: ":{", Pos: pos}
		case isIdentStart(s.peek()):
			s.next() // consume ':'
			lit := s.scanIdent()
			return token.Token{Kind: token.ATOM, Text: ":" + lit, Pos: pos}
		default:
			s.next()
			return token.Token{Kind: token.COLON, Text: ":", Pos: pos}
		}

	case ch == '.':
		if s.peek() == '.' {
			save := s.rdOffset
			s.next()
			if s.peek() == '.' {
				s.next()
				s.next()
				return token.Token{Kind: token.ELLIPSIS, Text: "...", Pos: pos}
			}
			// not actually "...": back out, treat as single DOT followed
			// by whatever the second '.' starts (rare/invalid in this
			// grammar, but don't silently eat input).
			s.rdOffset = save
			s.ch = '.'
			s.offset = start
		}
		s.next()
		return token.Token{Kind: token.DOT, Text: ".", Pos: pos}

	case ch == '@':
		s.next()
		return token.Token{Kind: token.AT, Text: "@", Pos: pos}

	case ch == ',':
		s.next()
		return token.Token{Kind: token.COMMA, Text: ",", Pos: pos}
	case ch == '[':
		s.next()
		return token.Token{Kind: token.LBRACK, Text: "[", Pos: pos}
	case ch == ']':
		s.next()
		return token.Token{Kind: token.RBRACK, Text: "]", Pos: pos}
	case ch == '(':
		s.next()
		return token.Token{Kind: token.LPAREN, Text: "(", Pos: pos}
	case ch == ')':
		s.next()
		return token.Token{Kind: token.RPAREN, Text: ")", Pos: pos}
	case ch == '}':
		s.next()
		return token.Token{Kind: token.RBRACE, Text: "}", Pos: pos}
	case ch == '*':
		s.next()
		return token.Token{Kind: token.STAR, Text: "*", Pos: pos}
	case ch == '?':
		s.next()
		return token.Token{Kind: token.QUESTION, Text: "?", Pos: pos}

	case ch == '-':
		if unicode.IsDigit(s.peek()) {
			lit := s.scanNumber()
			return token.Token{Kind: token.NUMBER, Text: lit, Pos: pos}
		}
		if s.peek() == '>' {
			s.next()
			s.next()
			return token.Token{Kind: token.ARROW, Text: "->", Pos: pos}
		}
		s.next()
		s.errorf(start, "unexpected character %q", ch)
		return token.Token{Kind: token.ILLEGAL, Text: "-", Pos: pos}

	case ch == '=':
		if s.peek() == '=' {
			s.next()
			s.next()
			return token.Token{Kind: token.EQ, Text: "==", Pos: pos}
		}
		s.next()
		s.errorf(start, "unexpected character %q, did you mean '=='?", ch)
		return token.Token{Kind: token.ILLEGAL, Text: "=", Pos: pos}

	case ch == '!':
		switch s.peek() {
		case '=':
			s.next()
			s.next()
			return token.Token{Kind: token.NEQ, Text: "!=", Pos: pos}
		case '~':
			s.next()
			s.next()
			return token.Token{Kind: token.STRNEQ, Text: "!~", Pos: pos}
		}
		s.next()
		s.errorf(start, "unexpected character %q", ch)
		return token.Token{Kind: token.ILLEGAL, Text: "!", Pos: pos}

	case ch == '~':
		if s.peek() == '~' {
			s.next()
			s.next()
			return token.Token{Kind: token.STREQ, Text: "~~", Pos: pos}
		}
		s.next()
		s.errorf(start, "unexpected character %q", ch)
		return token.Token{Kind: token.ILLEGAL, Text: "~", Pos: pos}

	case ch == '<':
		if s.peek() == '=' {
			s.next()
			s.next()
			return token.Token{Kind: token.LTE, Text: "<=", Pos: pos}
		}
		s.next()
		return token.Token{Kind: token.LT, Text: "<", Pos: pos}

	case ch == '>':
		if s.peek() == '=' {
			s.next()
			s.next()
			return token.Token{Kind: token.GTE, Text: ">=", Pos: pos}
		}
		s.next()
		return token.Token{Kind: token.GT, Text: ">", Pos: pos}

	default:
		s.next()
		s.errorf(start, "unexpected character %q", ch)
		return token.Token{Kind: token.ILLEGAL, Text: string(ch), Pos: pos}
	}
}
