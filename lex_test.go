package musicexpr

import (
	"io"
	"strings"
	"testing"
)

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		tokens []lexToken
		errs   int
	}{
		// spaces
		{"", nil, 0},
		{" \t \r\n ", nil, 0},
		// counts
		{"0", []lexToken{{text: "0", kind: tokenNum, pos: 1}}, 0},
		{"100", []lexToken{{text: "100", kind: tokenNum, pos: 1}}, 0},
		{"1 0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "0", kind: tokenNum, pos: 3}}, 0},
		{"2x", []lexToken{{pos: 1}}, 1},
		{"1.5", []lexToken{{pos: 1}, {text: "5", kind: tokenNum, pos: 3}}, 1},
		{"2)", []lexToken{{text: "2", kind: tokenNum, pos: 1}, {text: ")", kind: tokenClose, pos: 2}}, 0},
		// identifiers
		{"C", []lexToken{{text: "C", kind: tokenIdent, pos: 1}}, 0},
		{"c", []lexToken{{text: "c", kind: tokenIdent, pos: 1}}, 0},
		{" C", []lexToken{{text: "C", kind: tokenIdent, pos: 2}}, 0},
		{"rest", []lexToken{{text: "rest", kind: tokenIdent, pos: 1}}, 0},
		{"_", []lexToken{{text: "_", kind: tokenIdent, pos: 1}}, 0},
		{"riff2", []lexToken{{text: "riff2", kind: tokenIdent, pos: 1}}, 0},
		{"my-riff.v2", []lexToken{{text: "my-riff.v2", kind: tokenIdent, pos: 1}}, 0},
		{"ré", []lexToken{{text: "ré", kind: tokenIdent, pos: 1}}, 0},
		{"C E G", []lexToken{{text: "C", kind: tokenIdent, pos: 1}, {text: "E", kind: tokenIdent, pos: 3}, {text: "G", kind: tokenIdent, pos: 5}}, 0},
		// operators
		{"+", []lexToken{{text: "+", kind: tokenOp, pos: 1}}, 0},
		{"C+E", []lexToken{{text: "C", kind: tokenIdent, pos: 1}, {text: "+", kind: tokenOp, pos: 2}, {text: "E", kind: tokenIdent, pos: 3}}, 0},
		{"C*2", []lexToken{{text: "C", kind: tokenIdent, pos: 1}, {text: "*", kind: tokenOp, pos: 2}, {text: "2", kind: tokenNum, pos: 3}}, 0},
		// separators
		{"C,E", []lexToken{{text: "C", kind: tokenIdent, pos: 1}, {text: ",", kind: tokenSep, pos: 2}, {text: "E", kind: tokenIdent, pos: 3}}, 0},
		// brackets
		{"()", []lexToken{{text: "(", kind: tokenOpen, pos: 1}, {text: ")", kind: tokenClose, pos: 2}}, 0},
		{"[]", []lexToken{{text: "[", kind: tokenOpen, pos: 1}, {text: "]", kind: tokenClose, pos: 2}}, 0},
		{"{}", []lexToken{{text: "{", kind: tokenOpen, pos: 1}, {text: "}", kind: tokenClose, pos: 2}}, 0},
		{"(C)", []lexToken{{text: "(", kind: tokenOpen, pos: 1}, {text: "C", kind: tokenIdent, pos: 2}, {text: ")", kind: tokenClose, pos: 3}}, 0},
		// erroneous symbols
		{"$", []lexToken{{pos: 1}}, 1},
		{"-", []lexToken{{pos: 1}}, 1},
		{"a$", []lexToken{{text: "a", kind: tokenIdent, pos: 1}, {pos: 2}}, 1},
		{"$a", []lexToken{{pos: 1}, {text: "a", kind: tokenIdent, pos: 2}}, 1},
		{"$$", []lexToken{{pos: 1}, {pos: 2}}, 2},
	}

	for _, c := range cases {
		scan := lex(strings.NewReader(c.src))
		errs := c.errs
		for _, want := range c.tokens {
			got, err := scan.next()
			if err == io.EOF {
				t.Errorf("scanning %q: expected token %v but got EOF", c.src, want)
				continue
			}
			if got != want {
				t.Errorf("scanning %q: want %v, got %v", c.src, want, got)
			}
			if err != nil {
				if errs > 0 {
					errs--
					continue
				}
				t.Errorf("scanning %q: unexpected error %v", c.src, err)
			}
		}
		got, err := scan.next()
		if err != nil || got.kind != tokenEOF {
			t.Errorf("scanning %q: want EOF, got %v with error %v", c.src, got, err)
		}
		if _, err := scan.next(); err != io.EOF {
			t.Errorf("scanning %q: want io.EOF after EOF token, got %v", c.src, err)
		}
		if errs > 0 {
			t.Errorf("scanning %q: not enough errors", c.src)
		}
	}
}

func TestLexPush(t *testing.T) {
	scan := lex(strings.NewReader("C E"))
	tok, err := scan.next()
	if err != nil {
		t.Fatal(err)
	}
	scan.push(tok)
	if again := scan.must(); again != tok {
		t.Errorf("must returned %v after pushing %v", again, tok)
	}
	scan.push(tok)
	if again, err := scan.next(); err != nil || again != tok {
		t.Errorf("next returned %v, %v after pushing %v", again, err, tok)
	}
	defer func() {
		if recover() == nil {
			t.Error("must without a pushed token did not panic")
		}
	}()
	scan.must()
}
