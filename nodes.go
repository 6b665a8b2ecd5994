package musicexpr

import (
	"strconv"
	"strings"
)

// MaxRepeat is the largest count a Repeat accepts.
const MaxRepeat = 100

// MaxSize is the largest number of notes and rests, counting every
// repetition, that an expression may render.
const MaxSize = 10000

// Expr is a music expression. Every Expr interprets itself. The variants are
// Note, Rest, *Sequence, *Chord, and *Repeat; no other types implement Expr.
type Expr interface {
	// Render describes playing the expression. It has no side effects and
	// returns the same string every time it is called.
	Render() string
	// String formats the expression in notation that Parse reads back.
	String() string
	// Kind identifies the variant of the expression.
	Kind() Kind

	steps() []Step
	fmt(b *strings.Builder, prec int)
	size() int
}

// Kind identifies a variant of Expr.
type Kind int8

const (
	KindNone Kind = iota
	KindNote
	KindRest
	KindSequence
	KindChord
	KindRepeat
)

var kindNames = [...]string{"none", "note", "rest", "sequence", "chord", "repeat"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Terminal reports whether expressions of kind k are leaves.
func (k Kind) Terminal() bool {
	return k == KindNote || k == KindRest
}

// Notation precedence levels. An expression formatted where a higher level
// is required is wrapped in parentheses.
const (
	precSeq = iota
	precChord
	precRepeat
	precAtom
)

// Note is a terminal expression playing a single pitch.
type Note struct {
	pitch Pitch
}

// NewNote creates a note from a pitch name, one of C, D, E, F, G, A, or B in
// either case. Other names result in a *NoteError.
func NewNote(name string) (Note, error) {
	p, err := ParsePitch(name)
	if err != nil {
		return Note{}, err
	}
	return Note{pitch: p}, nil
}

// NoteOf creates a note from a pitch. Panics if p is not a valid pitch.
func NoteOf(p Pitch) Note {
	if !p.Valid() {
		panic("musicexpr: invalid pitch " + strconv.Itoa(int(p)))
	}
	return Note{pitch: p}
}

// Pitch returns the note's pitch.
func (n Note) Pitch() Pitch {
	return n.pitch
}

func (n Note) Render() string {
	return "Play note: " + n.pitch.String()
}

func (n Note) String() string {
	return n.pitch.String()
}

func (Note) Kind() Kind {
	return KindNote
}

func (n Note) fmt(b *strings.Builder, prec int) {
	b.WriteString(n.pitch.String())
}

func (Note) size() int { return 1 }

// Rest is a terminal expression playing silence.
type Rest struct{}

func (Rest) Render() string {
	return "Rest (silence)"
}

func (Rest) String() string {
	return "rest"
}

func (Rest) Kind() Kind {
	return KindRest
}

func (Rest) fmt(b *strings.Builder, prec int) {
	b.WriteString("rest")
}

func (Rest) size() int { return 1 }

// Sequence plays its children one after another.
type Sequence struct {
	children []Expr
	n        int
}

// NewSequence creates a sequence of one or more expressions. A sequence
// larger than MaxSize is a *SizeError.
func NewSequence(children ...Expr) (*Sequence, error) {
	c, n, err := checkChildren("sequence", children)
	if err != nil {
		return nil, err
	}
	return &Sequence{children: c, n: n}, nil
}

// Children returns a copy of the sequence's children.
func (s *Sequence) Children() []Expr {
	return append([]Expr(nil), s.children...)
}

func (s *Sequence) Render() string {
	return join(s.children, " -> ")
}

func (s *Sequence) String() string {
	var b strings.Builder
	s.fmt(&b, precSeq)
	return b.String()
}

func (*Sequence) Kind() Kind {
	return KindSequence
}

func (s *Sequence) size() int { return s.n }

func (s *Sequence) fmt(b *strings.Builder, prec int) {
	if len(s.children) == 1 {
		s.children[0].fmt(b, prec)
		return
	}
	paren(b, prec > precSeq, func() {
		for i, c := range s.children {
			if i > 0 {
				b.WriteByte(' ')
			}
			c.fmt(b, precChord)
		}
	})
}

// Chord plays its children at the same time.
type Chord struct {
	children []Expr
	n        int
}

// NewChord creates a chord of one or more expressions. A chord larger than
// MaxSize is a *SizeError.
func NewChord(children ...Expr) (*Chord, error) {
	c, n, err := checkChildren("chord", children)
	if err != nil {
		return nil, err
	}
	return &Chord{children: c, n: n}, nil
}

// Children returns a copy of the chord's children.
func (c *Chord) Children() []Expr {
	return append([]Expr(nil), c.children...)
}

func (c *Chord) Render() string {
	return "[" + join(c.children, " + ") + "]"
}

func (c *Chord) String() string {
	var b strings.Builder
	c.fmt(&b, precSeq)
	return b.String()
}

func (*Chord) Kind() Kind {
	return KindChord
}

func (c *Chord) size() int { return c.n }

func (c *Chord) fmt(b *strings.Builder, prec int) {
	if len(c.children) == 1 {
		// [x] is the only spelling of a chord of one.
		b.WriteByte('[')
		c.children[0].fmt(b, precChord)
		b.WriteByte(']')
		return
	}
	paren(b, prec > precChord, func() {
		for i, e := range c.children {
			if i > 0 {
				b.WriteByte('+')
			}
			e.fmt(b, precRepeat)
		}
	})
}

// Repeat plays its child a fixed number of times.
type Repeat struct {
	child Expr
	count int
}

// NewRepeat creates a repeat of e. count must be in 1..MaxRepeat; otherwise
// the error is a *CountError. A repeat larger than MaxSize is a *SizeError.
func NewRepeat(e Expr, count int) (*Repeat, error) {
	if e == nil {
		return nil, &ChildError{Of: "repeat", Index: 0}
	}
	if count < 1 || count > MaxRepeat {
		return nil, &CountError{Count: strconv.Itoa(count)}
	}
	if n := count * e.size(); n > MaxSize {
		return nil, &SizeError{Size: n}
	}
	return &Repeat{child: e, count: count}, nil
}

// Child returns the repeated expression.
func (r *Repeat) Child() Expr {
	return r.child
}

// Count returns the number of repetitions.
func (r *Repeat) Count() int {
	return r.count
}

func (r *Repeat) Render() string {
	s := r.child.Render()
	var b strings.Builder
	b.WriteString("Repeat ")
	b.WriteString(strconv.Itoa(r.count))
	b.WriteString("x: (")
	for i := 0; i < r.count; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(s)
	}
	b.WriteByte(')')
	return b.String()
}

func (r *Repeat) String() string {
	var b strings.Builder
	r.fmt(&b, precSeq)
	return b.String()
}

func (*Repeat) Kind() Kind {
	return KindRepeat
}

func (r *Repeat) size() int { return r.count * r.child.size() }

func (r *Repeat) fmt(b *strings.Builder, prec int) {
	paren(b, prec > precRepeat, func() {
		r.child.fmt(b, precAtom)
		b.WriteByte('*')
		b.WriteString(strconv.Itoa(r.count))
	})
}

// join renders each expression and joins the results with sep.
func join(es []Expr, sep string) string {
	var b strings.Builder
	for i, e := range es {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(e.Render())
	}
	return b.String()
}

func paren(b *strings.Builder, wrap bool, f func()) {
	if wrap {
		b.WriteByte('(')
		defer b.WriteByte(')')
	}
	f()
}

// checkChildren validates and copies the children of a composite expression
// and totals their sizes.
func checkChildren(of string, children []Expr) ([]Expr, int, error) {
	if len(children) == 0 {
		return nil, 0, &EmptyError{Of: of}
	}
	n := 0
	for i, c := range children {
		if c == nil {
			return nil, 0, &ChildError{Of: of, Index: i}
		}
		n += c.size()
		if n > MaxSize {
			return nil, 0, &SizeError{Size: n}
		}
	}
	return append([]Expr(nil), children...), n, nil
}

// sumSize totals the sizes of es.
func sumSize(es []Expr) int {
	n := 0
	for _, e := range es {
		n += e.size()
	}
	return n
}

// EmptyError is an error creating a composite expression with no children.
type EmptyError struct {
	// Of is the kind of expression, e.g. "sequence".
	Of string
}

func (err *EmptyError) Error() string {
	return err.Of + " must contain at least one expression"
}

// ChildError is an error creating a composite expression with a nil child.
type ChildError struct {
	// Of is the kind of expression, e.g. "chord".
	Of string
	// Index is the 0-based index of the nil child.
	Index int
}

func (err *ChildError) Error() string {
	return err.Of + " element " + strconv.Itoa(err.Index+1) + " is not an expression"
}

// CountError is an error indicating a repeat count outside 1..MaxRepeat. When
// it results from parsing notation, Col is the position of the count.
type CountError struct {
	// Col is the position of the count, or 0 if the count was not parsed.
	Col int
	// Count is the count as written. It is empty if the count is missing.
	Count string
}

func (err *CountError) Error() string {
	var msg string
	if err.Count == "" {
		msg = "missing repeat count"
	} else {
		msg = "repeat count must be a whole number from 1 to " + strconv.Itoa(MaxRepeat) + ", not " + err.Count
	}
	if err.Col > 0 {
		return errpos(err.Col, msg)
	}
	return msg
}

func (err *CountError) Pos() int {
	return err.Col
}

// SizeError is an error indicating an expression that would render more than
// MaxSize notes and rests. When it results from parsing notation, it
// implements InputError.
type SizeError struct {
	// Col is the position of the element or count that made the expression
	// too large, or 0 if it was not parsed.
	Col int
	// Size is the size the expression reached, which may be less than its
	// full size.
	Size int
}

func (err *SizeError) Error() string {
	msg := "expression expands to " + strconv.Itoa(err.Size) + " notes and rests, more than " + strconv.Itoa(MaxSize)
	if err.Col > 0 {
		return errpos(err.Col, msg)
	}
	return msg
}

func (err *SizeError) Pos() int {
	return err.Col
}
