// Copyright 2024 The xqpath Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xqpath

import (
	"errors"
	"fmt"
)

// parser is a recursive-descent parser over a pre-lexed token slice.
// Keeping the tokens in a slice lets filter parsing backtrack between the
// rp-comparison and parenthesized-filter readings of "(".
//
// All parse functions panic with *ParseError; Compile recovers at the
// boundary.
type parser struct {
	src  string
	toks []token
	pos  int
}

func parse(src string) AbsolutePath {
	p := &parser{src: src, toks: lex(src)}
	ap := p.parseAbsolute()
	p.expect(tokEOF)
	return ap
}

func parseRelative(src string) RelativePath {
	p := &parser{src: src, toks: lex(src)}
	rp := p.parsePair()
	p.expect(tokEOF)
	return rp
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	tok := p.toks[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) expect(kind tokenKind) token {
	tok := p.peek()
	if tok.kind != kind {
		p.fail(tok, fmt.Sprintf("expected %v, found %v", kind, tok.kind))
	}
	return p.next()
}

// keyword reports whether the next token is the given contextual keyword.
// Keywords are ordinary identifiers; "and", "or", "not", "eq", "is" and
// "doc" keep working as tag names in step position.
func (p *parser) keyword(kw string) bool {
	tok := p.peek()
	return tok.kind == tokIdent && tok.val == kw
}

func (p *parser) fail(tok token, msg string) {
	panic(&ParseError{Src: p.src, Pos: tok.pos, Err: errors.New(msg)})
}

// ap := doc(String) | doc(String)/rp | doc(String)//rp
func (p *parser) parseAbsolute() AbsolutePath {
	if !p.keyword("doc") {
		p.fail(p.peek(), `query must start with doc("file")`)
	}
	p.next()
	p.expect(tokLParen)
	file := p.expect(tokString).val
	p.expect(tokRParen)

	switch p.peek().kind {
	case tokSlash:
		p.next()
		return &ApChildren{File: file, RP: p.parsePair()}
	case tokSlashSlash:
		p.next()
		return &ApAll{File: file, RP: p.parsePair()}
	default:
		return &ApDoc{File: file}
	}
}

// rp := path (, path)*
func (p *parser) parsePair() RelativePath {
	rp := p.parsePath()
	for p.peek().kind == tokComma {
		p.next()
		rp = &RpPair{LHS: rp, RHS: p.parsePath()}
	}
	return rp
}

// path := postfix ((/ | //) postfix)*
func (p *parser) parsePath() RelativePath {
	rp := p.parsePostfix()
	for {
		switch p.peek().kind {
		case tokSlash:
			p.next()
			rp = &RpChildren{LHS: rp, RHS: p.parsePostfix()}
		case tokSlashSlash:
			p.next()
			rp = &RpAll{LHS: rp, RHS: p.parsePostfix()}
		default:
			return rp
		}
	}
}

// postfix := primary ([f])*
func (p *parser) parsePostfix() RelativePath {
	rp := p.parsePrimary()
	for p.peek().kind == tokLBracket {
		p.next()
		f := p.parseFilter()
		p.expect(tokRBracket)
		rp = &RpFilter{RP: rp, Filter: f}
	}
	return rp
}

// primary := Identifier | text() | * | . | .. | @Identifier | (rp)
func (p *parser) parsePrimary() RelativePath {
	tok := p.peek()
	switch tok.kind {
	case tokIdent:
		p.next()
		if tok.val == "text" && p.peek().kind == tokLParen {
			p.next()
			p.expect(tokRParen)
			return &RpText{}
		}
		return &RpTag{Tag: tok.val}
	case tokStar:
		p.next()
		return &RpWildcard{}
	case tokDot:
		p.next()
		return &RpCurrent{}
	case tokDotDot:
		p.next()
		return &RpParent{}
	case tokAt:
		p.next()
		name := p.expect(tokIdent)
		return &RpAttribute{Name: name.val}
	case tokLParen:
		p.next()
		rp := p.parsePair()
		p.expect(tokRParen)
		return &RpParen{RP: rp}
	}
	p.fail(tok, fmt.Sprintf("expected a path step, found %v", tok.kind))
	return nil
}

// f := conjunction (or conjunction)*
func (p *parser) parseFilter() Filter {
	f := p.parseConjunction()
	for p.keyword("or") {
		p.next()
		f = &FOr{LHS: f, RHS: p.parseConjunction()}
	}
	return f
}

// conjunction := unary (and unary)*
func (p *parser) parseConjunction() Filter {
	f := p.parseUnaryFilter()
	for p.keyword("and") {
		p.next()
		f = &FAnd{LHS: f, RHS: p.parseUnaryFilter()}
	}
	return f
}

func (p *parser) parseUnaryFilter() Filter {
	if p.keyword("not") {
		p.next()
		return &FNot{Filter: p.parseUnaryFilter()}
	}
	return p.parsePrimaryFilter()
}

// A leading "(" is ambiguous: it may open a parenthesized relative path
// inside a comparison, as in [(a,b) = c], or a parenthesized filter, as in
// [(a = b)]. Try the comparison reading first and fall back.
func (p *parser) parsePrimaryFilter() Filter {
	if p.peek().kind == tokLParen {
		if f, ok := p.tryParse((*parser).parseComparison); ok {
			return f
		}
		p.next()
		f := p.parseFilter()
		p.expect(tokRParen)
		return &FParen{Filter: f}
	}
	return p.parseComparison()
}

// comparison := c | c (= | eq) c | c (== | is) c
func (p *parser) parseComparison() Filter {
	lhs := p.parseComparand()
	switch {
	case p.peek().kind == tokEq || p.keyword("eq"):
		p.next()
		return &FValueEq{LHS: lhs, RHS: p.parseComparand()}
	case p.peek().kind == tokEqEq || p.keyword("is"):
		p.next()
		return &FIdentityEq{LHS: lhs, RHS: p.parseComparand()}
	}
	rp, ok := lhs.(RelativePath)
	if !ok {
		p.fail(p.peek(), "string literal cannot stand alone as a filter")
	}
	return &FExists{RP: rp}
}

// c := rp | String
func (p *parser) parseComparand() Comparand {
	if tok := p.peek(); tok.kind == tokString {
		p.next()
		return &Literal{Value: tok.val}
	}
	return p.parsePair()
}

// tryParse runs fn, rolling the token position back if it fails to parse.
func (p *parser) tryParse(fn func(*parser) Filter) (f Filter, ok bool) {
	save := p.pos
	defer func() {
		if r := recover(); r != nil {
			if _, isParse := r.(*ParseError); !isParse {
				panic(r)
			}
			p.pos = save
			f, ok = nil, false
		}
	}()
	return fn(p), true
}
