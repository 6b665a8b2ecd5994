package musicexpr

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/zephyrtronium/bigfloat"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Pitch is one of the seven natural pitch classes.
type Pitch int8

const (
	C Pitch = iota
	D
	E
	F
	G
	A
	B
)

// Octave bounds for MIDI keys. B in MaxOctave is the highest key produced.
const (
	MinOctave = 0
	MaxOctave = 8
)

var (
	pitchNames = [...]string{"C", "D", "E", "F", "G", "A", "B"}
	semitones  = [...]uint8{0, 2, 4, 5, 7, 9, 11}

	upper = cases.Upper(language.Und)
)

// Pitches returns all valid pitches in scale order.
func Pitches() []Pitch {
	return []Pitch{C, D, E, F, G, A, B}
}

// ParsePitch parses a pitch name. Names are case-insensitive.
func ParsePitch(name string) (Pitch, error) {
	if name == "" {
		return 0, &NoteError{}
	}
	u := upper.String(name)
	for i, n := range pitchNames {
		if u == n {
			return Pitch(i), nil
		}
	}
	return 0, &NoteError{Name: name}
}

// Valid reports whether p is one of the seven pitches.
func (p Pitch) Valid() bool {
	return C <= p && p <= B
}

func (p Pitch) String() string {
	if !p.Valid() {
		return "Pitch(" + strconv.Itoa(int(p)) + ")"
	}
	return pitchNames[p]
}

// Semitone returns the number of semitones from C up to p.
func (p Pitch) Semitone() uint8 {
	return semitones[p]
}

// Key returns the MIDI key number of p in the given octave, so that C in
// octave 4 is 60. Panics if the octave is outside MinOctave..MaxOctave.
func (p Pitch) Key(octave int) uint8 {
	if octave < MinOctave || octave > MaxOctave {
		panic("musicexpr: octave " + strconv.Itoa(octave) + " out of range")
	}
	return uint8(12*(octave+1)) + p.Semitone()
}

// Frequency computes the equal-tempered frequency in hertz of p in the given
// octave, tuned to A4 = 440 Hz, to prec bits. A prec of 0 means 64.
func (p Pitch) Frequency(octave int, prec uint) *big.Float {
	if prec == 0 {
		prec = 64
	}
	k := int64(p.Key(octave)) - 69
	if k == 0 {
		return new(big.Float).SetPrec(prec).SetInt64(440)
	}
	x := new(big.Float).SetPrec(prec).SetInt64(k)
	x.Quo(x, new(big.Float).SetPrec(prec).SetInt64(12))
	r := new(big.Float).SetPrec(prec).SetInt64(2)
	bigfloat.Pow(r, r, x)
	return r.Mul(r, new(big.Float).SetPrec(prec).SetInt64(440))
}

// NoteError is an error creating a note from an invalid pitch name.
type NoteError struct {
	// Name is the name that was given. It is empty if no name was given.
	Name string
}

func (err *NoteError) Error() string {
	if err.Name == "" {
		return "note name cannot be empty"
	}
	return "invalid note " + strconv.Quote(err.Name) + ": valid notes are " + strings.Join(pitchNames[:], ", ")
}
