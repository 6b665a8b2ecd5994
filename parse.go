package musicexpr

import (
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Seq   = Chord { [','] Chord }
// Chord = Rep { '+' Rep }
// Rep   = Atom { '*' count }
// Atom  = pitch | rest | name | '(' Seq ')' | '[' Seq ']' | '{' Seq '}'

// Parse parses notation into an expression. The given options are applied in
// order. A group of one element is that element, so "(C)" is a Note, not a
// Sequence of one note. The exception is square brackets: "[C]" is a Chord of
// one note, which is how a chord of one prints.
func Parse(src io.RuneScanner, opts ...ParseOption) (Expr, error) {
	scan := lex(src)
	p := newParsectx(opts)
	items, err := parseseq(scan, &p)
	if err != nil {
		return nil, err
	}
	switch tok := scan.must(); tok.kind {
	case tokenEOF:
		if len(items) == 0 {
			return nil, &EmptyExpressionError{Col: tok.pos}
		}
	default:
		return nil, itShouldNotHaveEndedThisWay(tok, -1)
	}
	return group(items), nil
}

// ParseString is a shortcut to parse notation from a string.
func ParseString(src string, opts ...ParseOption) (Expr, error) {
	return Parse(strings.NewReader(src), opts...)
}

// group makes a sequence of items, or the item itself if there is only one.
// The result is nil if there are no items.
func group(items []Expr) Expr {
	switch len(items) {
	case 0:
		return nil
	case 1:
		return items[0]
	}
	return &Sequence{children: items, n: sumSize(items)}
}

// parseseq parses the elements of a sequence. If there is no error, then
// parseseq pushes the last token it scans, which is either a close bracket or
// EOF. An empty subexpression gives no items and no error; callers must create
// an error in contexts where empty subexpressions are illegal.
func parseseq(scan *lexer, p *parsectx) ([]Expr, error) {
	var items []Expr
	n := 0
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenClose, tokenEOF:
			scan.push(tok)
			return items, nil
		case tokenSep:
			if len(items) == 0 {
				return nil, &SeparatorError{Col: tok.pos, Sep: tok.text}
			}
			// A comma must separate two elements.
			after, err := scan.next()
			if err != nil {
				return nil, err
			}
			switch after.kind {
			case tokenSep, tokenClose, tokenEOF:
				return nil, &SeparatorError{Col: tok.pos, Sep: tok.text}
			}
			scan.push(after)
			continue
		case tokenOp:
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text}
		}
		scan.push(tok)
		e, err := parsechord(scan, p)
		if err != nil {
			return nil, err
		}
		if n += e.size(); n > MaxSize {
			return nil, &SizeError{Col: tok.pos, Size: n}
		}
		items = append(items, e)
	}
}

// parsechord parses one or more repeats joined by +. It pushes the first token
// that does not continue the chord.
func parsechord(scan *lexer, p *parsectx) (Expr, error) {
	e, err := parserep(scan, p)
	if err != nil {
		return nil, err
	}
	items := []Expr{e}
	n := e.size()
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokenOp || tok.text != "+" {
			scan.push(tok)
			break
		}
		start, err := scan.next()
		if err != nil {
			return nil, err
		}
		scan.push(start)
		e, err := parserep(scan, p)
		if err != nil {
			return nil, err
		}
		if n += e.size(); n > MaxSize {
			return nil, &SizeError{Col: start.pos, Size: n}
		}
		items = append(items, e)
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return &Chord{children: items, n: n}, nil
}

// parserep parses an atom followed by any number of repeat counts. It pushes
// the first token that does not continue the repeat.
func parserep(scan *lexer, p *parsectx) (Expr, error) {
	e, err := parseatom(scan, p)
	if err != nil {
		return nil, err
	}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokenOp || tok.text != "*" {
			scan.push(tok)
			return e, nil
		}
		cnt, err := scan.next()
		if err != nil {
			return nil, err
		}
		if cnt.kind != tokenNum {
			return nil, &CountError{Col: cnt.pos, Count: cnt.text}
		}
		k, err := strconv.Atoi(cnt.text)
		if err != nil || k < 1 || k > MaxRepeat {
			return nil, &CountError{Col: cnt.pos, Count: cnt.text}
		}
		if n := k * e.size(); n > MaxSize {
			return nil, &SizeError{Col: cnt.pos, Size: n}
		}
		e = &Repeat{child: e, count: k}
	}
}

// parseatom parses a pitch, rest, saved name, or bracketed sequence.
func parseatom(scan *lexer, p *parsectx) (Expr, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenIdent:
		return p.ident(tok)
	case tokenOpen:
		match := rightbracket(tok.text)
		items, err := parseseq(scan, p)
		if err != nil {
			return nil, err
		}
		end := scan.must()
		if end.kind != tokenClose || end.text != closebrackets[match] {
			return nil, itShouldNotHaveEndedThisWay(end, match)
		}
		switch {
		case len(items) == 0:
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		case len(items) == 1 && tok.text == "[":
			return &Chord{children: items, n: items[0].size()}, nil
		}
		return group(items), nil
	case tokenNum:
		return nil, &CountPlacementError{Col: tok.pos, Count: tok.text}
	case tokenOp:
		return nil, &OperatorError{Col: tok.pos, Operator: tok.text}
	case tokenClose, tokenSep, tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos, End: tok.text}
	default:
		panic("musicexpr: unknown token: " + tok.String())
	}
}

// ident resolves an identifier token to a note, a rest, or a saved name.
func (p *parsectx) ident(tok lexToken) (Expr, error) {
	if utf8.RuneCountInString(tok.text) == 1 {
		if pc, err := ParsePitch(tok.text); err == nil {
			return Note{pitch: pc}, nil
		}
	}
	for _, w := range p.rests {
		if strings.EqualFold(tok.text, w) {
			return Rest{}, nil
		}
	}
	if p.names != nil {
		if e, ok := p.names.Lookup(tok.text); ok {
			return e, nil
		}
	}
	return nil, &NameError{Col: tok.pos, Name: tok.text}
}

// rightbracket gets the closing bracket index for an opening bracket.
func rightbracket(left string) int {
	r, sz := utf8.DecodeRuneInString(left)
	k := strings.IndexRune(OpenBrackets, r)
	if k < 0 || sz != len(left) {
		panic("musicexpr: invalid bracket " + strconv.Quote(left))
	}
	return k
}

// leftbracket gets the opening bracket matching right. If right is no bracket,
// then the result is the empty string.
func leftbracket(right int) string {
	if right == -1 {
		return ""
	}
	return openbrackets[right]
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. match is the bracket rune index that
// the expression should have matched, or -1 if none.
func itShouldNotHaveEndedThisWay(tok lexToken, match int) error {
	switch tok.kind {
	case tokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: tok.pos, Left: leftbracket(match), Right: ""}
	case tokenClose:
		// A bracket could be the wrong bracket for the opening brace or any
		// bracket at the end of an input.
		return &BracketError{Col: tok.pos, Left: leftbracket(match), Right: tok.text}
	default:
		panic("musicexpr: it really should not have ended this way: " + tok.String())
	}
}
