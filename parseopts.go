package musicexpr

import "strings"

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

// Resolver looks up saved expressions by name. *Registry is a Resolver.
type Resolver interface {
	Lookup(name string) (Expr, bool)
}

type (
	namesopt struct {
		r Resolver
	}
	restopt []string
)

// parsectx holds general data for parsing.
type parsectx struct {
	// names resolves identifiers that are not pitches or rests.
	names Resolver
	// rests is the set of words that parse as a rest, compared without case.
	rests []string
}

// Names tells the parser to resolve identifiers other than pitches and rests
// through r. Without Names, any such identifier is a *NameError. A nil r
// removes a previous Names option.
func Names(r Resolver) ParseOption {
	return namesopt{r}
}

func (o namesopt) parseOption(p parsectx) parsectx {
	p.names = o.r
	return p
}

// RestWords sets the words that parse as a rest, replacing the defaults
// "rest" and "_". The words are compared without regard to case. Words that
// are pitch names are ignored, since single letters A through G are always
// pitches.
func RestWords(words ...string) ParseOption {
	return restopt(words)
}

func (o restopt) parseOption(p parsectx) parsectx {
	p.rests = make([]string, 0, len(o))
	for _, w := range o {
		if _, err := ParsePitch(w); err == nil {
			continue
		}
		p.rests = append(p.rests, w)
	}
	return p
}

var defaultRests = []string{"rest", "_"}

func newParsectx(opts []ParseOption) parsectx {
	p := parsectx{rests: defaultRests}
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	return p
}

// Referable reports whether notation parsed with opts can refer to an
// expression saved under name. A name must be a single identifier, and it
// must not read as a pitch or a rest. Names options in opts are ignored.
func Referable(name string, opts ...ParseOption) bool {
	p := newParsectx(opts)
	p.names = nil
	scan := lex(strings.NewReader(name))
	tok, err := scan.next()
	if err != nil || tok.kind != tokenIdent || tok.text != name {
		return false
	}
	_, err = p.ident(tok)
	return err != nil
}
