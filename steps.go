package musicexpr

import (
	"strings"

	"gitlab.com/gomidi/midi/v2"
)

// Step is the set of pitches sounding at one position of an expression. An
// empty Step is silence.
type Step []Pitch

// Steps interprets an expression as a flat list of steps. A note or rest is
// one step. A sequence concatenates the steps of its children, and a repeat
// concatenates its child's steps count times. A chord sounds its children
// together: step i of a chord is every pitch in step i of any child, so it
// lasts as long as its longest child.
func Steps(e Expr) []Step {
	return e.steps()
}

func (n Note) steps() []Step {
	return []Step{{n.pitch}}
}

func (Rest) steps() []Step {
	return []Step{nil}
}

func (s *Sequence) steps() []Step {
	var r []Step
	for _, c := range s.children {
		r = append(r, c.steps()...)
	}
	return r
}

func (c *Chord) steps() []Step {
	var r []Step
	for _, e := range c.children {
		for i, st := range e.steps() {
			if i == len(r) {
				r = append(r, nil)
			}
			r[i] = r[i].union(st)
		}
	}
	return r
}

func (r *Repeat) steps() []Step {
	st := r.child.steps()
	v := make([]Step, 0, len(st)*r.count)
	for i := 0; i < r.count; i++ {
		v = append(v, st...)
	}
	return v
}

// union returns s with the pitches of t that s does not already contain.
func (s Step) union(t Step) Step {
	u := append(Step(nil), s...)
	for _, p := range t {
		if !u.Has(p) {
			u = append(u, p)
		}
	}
	return u
}

// Has reports whether the step sounds p.
func (s Step) Has(p Pitch) bool {
	for _, q := range s {
		if q == p {
			return true
		}
	}
	return false
}

// String formats the step as its pitch names separated by spaces, or "-" for
// silence.
func (s Step) String() string {
	if len(s) == 0 {
		return "-"
	}
	v := make([]string, len(s))
	for i, p := range s {
		v[i] = p.String()
	}
	return strings.Join(v, " ")
}

// Messages produces the MIDI messages that start and stop the step's pitches
// in the given octave. Silence produces no messages.
func (s Step) Messages(channel, velocity uint8, octave int) (on, off []midi.Message) {
	for _, p := range s {
		k := p.Key(octave)
		on = append(on, midi.NoteOn(channel, k, velocity))
		off = append(off, midi.NoteOff(channel, k))
	}
	return on, off
}
