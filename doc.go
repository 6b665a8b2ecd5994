// Package musicexpr implements a small interpreter over music expressions.
//
// An expression is a tree of notes, rests, sequences, chords, and repeats.
// Every expression interprets itself: Render describes what playing it would
// do, e.g. "Play note: C -> Rest (silence) -> Play note: E". Steps interprets
// the same tree a second way, as a flat list of the pitches sounding at each
// position, which can be turned into MIDI messages.
//
// Expressions also have a compact notation. "C E G" is a sequence of three
// notes, "C+E+G" is a chord, and "(C D)*2" repeats a sequence twice. The
// String method of every expression produces notation that Parse reads back.
// Square brackets around a single element, as in "[C]", make a chord of one.
// Names saved in a Registry can be referenced from notation with the Names
// parse option.
//
package musicexpr
