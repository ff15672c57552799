// Copyright 2024 The xqpath Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xqpath

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		query string
		want  AbsolutePath
	}{
		{
			`doc("f")`,
			&ApDoc{File: "f"},
		},
		{
			`doc("f")/a`,
			&ApChildren{File: "f", RP: &RpTag{Tag: "a"}},
		},
		{
			`doc("f")//a/b`,
			&ApAll{File: "f", RP: &RpChildren{LHS: &RpTag{Tag: "a"}, RHS: &RpTag{Tag: "b"}}},
		},
		{
			`doc("f")/a/b, c//d`,
			&ApChildren{File: "f", RP: &RpPair{
				LHS: &RpChildren{LHS: &RpTag{Tag: "a"}, RHS: &RpTag{Tag: "b"}},
				RHS: &RpAll{LHS: &RpTag{Tag: "c"}, RHS: &RpTag{Tag: "d"}},
			}},
		},
		{
			`doc("f")/*`,
			&ApChildren{File: "f", RP: &RpWildcard{}},
		},
		{
			`doc("f")/.`,
			&ApChildren{File: "f", RP: &RpCurrent{}},
		},
		{
			`doc("f")/..`,
			&ApChildren{File: "f", RP: &RpParent{}},
		},
		{
			`doc("f")/text()`,
			&ApChildren{File: "f", RP: &RpText{}},
		},
		{
			`doc("f")/@x`,
			&ApChildren{File: "f", RP: &RpAttribute{Name: "x"}},
		},
		{
			`doc("f")/(a, b)`,
			&ApChildren{File: "f", RP: &RpParen{RP: &RpPair{LHS: &RpTag{Tag: "a"}, RHS: &RpTag{Tag: "b"}}}},
		},
		{
			// "text" without parentheses is an ordinary tag
			`doc("f")/text`,
			&ApChildren{File: "f", RP: &RpTag{Tag: "text"}},
		},
		{
			// keywords stay usable as tag names in step position
			`doc("f")/not/eq/doc`,
			&ApChildren{File: "f", RP: &RpChildren{
				LHS: &RpChildren{LHS: &RpTag{Tag: "not"}, RHS: &RpTag{Tag: "eq"}},
				RHS: &RpTag{Tag: "doc"},
			}},
		},
		{
			`doc("f")/a[b]`,
			&ApChildren{File: "f", RP: &RpFilter{
				RP:     &RpTag{Tag: "a"},
				Filter: &FExists{RP: &RpTag{Tag: "b"}},
			}},
		},
		{
			`doc("f")/a[b][c]`,
			&ApChildren{File: "f", RP: &RpFilter{
				RP: &RpFilter{
					RP:     &RpTag{Tag: "a"},
					Filter: &FExists{RP: &RpTag{Tag: "b"}},
				},
				Filter: &FExists{RP: &RpTag{Tag: "c"}},
			}},
		},
		{
			`doc("f")/a[b = "x"]`,
			&ApChildren{File: "f", RP: &RpFilter{
				RP:     &RpTag{Tag: "a"},
				Filter: &FValueEq{LHS: &RpTag{Tag: "b"}, RHS: &Literal{Value: "x"}},
			}},
		},
		{
			`doc("f")/a["x" eq b]`,
			&ApChildren{File: "f", RP: &RpFilter{
				RP:     &RpTag{Tag: "a"},
				Filter: &FValueEq{LHS: &Literal{Value: "x"}, RHS: &RpTag{Tag: "b"}},
			}},
		},
		{
			`doc("f")/a[b == c or not d and e]`,
			&ApChildren{File: "f", RP: &RpFilter{
				RP: &RpTag{Tag: "a"},
				Filter: &FOr{
					LHS: &FIdentityEq{LHS: &RpTag{Tag: "b"}, RHS: &RpTag{Tag: "c"}},
					RHS: &FAnd{
						LHS: &FNot{Filter: &FExists{RP: &RpTag{Tag: "d"}}},
						RHS: &FExists{RP: &RpTag{Tag: "e"}},
					},
				},
			}},
		},
		{
			`doc("f")/a[b is c]`,
			&ApChildren{File: "f", RP: &RpFilter{
				RP:     &RpTag{Tag: "a"},
				Filter: &FIdentityEq{LHS: &RpTag{Tag: "b"}, RHS: &RpTag{Tag: "c"}},
			}},
		},
		{
			// parenthesized relative path on the left of a comparison
			`doc("f")/a[(b, c) = d]`,
			&ApChildren{File: "f", RP: &RpFilter{
				RP: &RpTag{Tag: "a"},
				Filter: &FValueEq{
					LHS: &RpParen{RP: &RpPair{LHS: &RpTag{Tag: "b"}, RHS: &RpTag{Tag: "c"}}},
					RHS: &RpTag{Tag: "d"},
				},
			}},
		},
		{
			// parenthesized filter
			`doc("f")/a[(b = c)]`,
			&ApChildren{File: "f", RP: &RpFilter{
				RP:     &RpTag{Tag: "a"},
				Filter: &FParen{Filter: &FValueEq{LHS: &RpTag{Tag: "b"}, RHS: &RpTag{Tag: "c"}}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			q, err := Compile(tt.query)
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			if diff := cmp.Diff(tt.want, q.AST()); diff != "" {
				t.Errorf("AST mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	queries := []string{
		``,
		`doc`,
		`doc(`,
		`doc("f"`,
		`doc(f)`,
		`doc("f")/`,
		`doc("f")//`,
		`doc("f")/a[`,
		`doc("f")/a[]`,
		`doc("f")/a["x"]`,
		`doc("f")/a[b = ]`,
		`doc("f")/a[(b]`,
		`doc("f")/a]`,
		`doc("f")/@`,
		`doc("f")/"a"`,
		`a/b`,
		`doc("f")/a ? b`,
		`doc("f")/a["unterminated]`,
	}
	for _, query := range queries {
		_, err := Compile(query)
		if err == nil {
			t.Errorf("%s: expected error", query)
			continue
		}
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Errorf("%s: want *ParseError, got %T: %v", query, err, err)
		}
	}
}

func TestCompileRelative(t *testing.T) {
	rp, err := CompileRelative(`a//b[c = "x"], .`)
	if err != nil {
		t.Fatal(err)
	}
	want := &RpPair{
		LHS: &RpAll{
			LHS: &RpTag{Tag: "a"},
			RHS: &RpFilter{
				RP:     &RpTag{Tag: "b"},
				Filter: &FValueEq{LHS: &RpTag{Tag: "c"}, RHS: &Literal{Value: "x"}},
			},
		},
		RHS: &RpCurrent{},
	}
	if diff := cmp.Diff(RelativePath(want), rp); diff != "" {
		t.Errorf("AST mismatch (-want +got):\n%s", diff)
	}

	if _, err := CompileRelative(`doc("f")/a`); err == nil {
		t.Error("absolute query as relative path: expected error")
	}
}

func TestDump(t *testing.T) {
	q := MustCompile(`doc("f")/a[b]`)
	want := `doc("f")/
  filter
    tag a
    exists
      tag b
`
	if got := Dump(q.AST()); got != want {
		t.Errorf("Dump mismatch:\ngot:\n%swant:\n%s", got, want)
	}
}
