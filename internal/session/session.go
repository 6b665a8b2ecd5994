// Package session implements the interactive menu for building, saving, and
// playing musical expressions.
package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/zephyrtronium/musicexpr"
	"github.com/zephyrtronium/musicexpr/internal/config"
)

// Session is one interactive conversation over a reader and writers. It owns
// a registry of saved expressions. A Session is not safe for concurrent use.
type Session struct {
	in   *bufio.Scanner
	out  io.Writer
	errw io.Writer
	log  *log.Logger
	cfg  config.Config
	reg  *musicexpr.Registry

	items []item
}

type item struct {
	label string
	run   func() error
}

// Option configures a Session.
type Option func(*Session)

// Errors sends error and warning messages to w instead of the output.
func Errors(w io.Writer) Option {
	return func(s *Session) { s.errw = w }
}

// Logger sends diagnostics to l. By default they are discarded.
func Logger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// Config sets the octave, MIDI channel, velocity, and precision the session
// uses. cfg should already be validated.
func Config(cfg *config.Config) Option {
	return func(s *Session) { s.cfg = *cfg }
}

// Registry makes the session save into r.
func Registry(r *musicexpr.Registry) Option {
	return func(s *Session) { s.reg = r }
}

// errExit ends the menu loop normally.
var errExit = errors.New("exit")

// New creates a session reading lines from in and writing to out.
func New(in io.Reader, out io.Writer, opts ...Option) *Session {
	s := &Session{
		in:   bufio.NewScanner(in),
		out:  out,
		errw: out,
		log:  log.New(io.Discard, "", 0),
		cfg:  *config.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.reg == nil {
		s.reg = musicexpr.NewRegistry()
	}
	s.items = []item{
		{"Create note", s.createNote},
		{"Create rest", s.createRest},
		{"Create sequence", func() error { return s.createGroup("sequence", seq) }},
		{"Create chord", func() error { return s.createGroup("chord", chord) }},
		{"Create repeat", s.createRepeat},
		{"Compose notation", s.compose},
		{"Play expression", s.play},
		{"List expressions", s.list},
		{"Show MIDI steps", s.steps},
		{"Show pitch table", s.pitches},
		{"Explain the pattern", func() error { return s.show("explain", nil) }},
		{"Exit", func() error { return errExit }},
	}
	return s
}

// Run shows the menu and handles choices until the user exits or the input
// ends. It returns an error only if reading input or writing a screen fails.
func (s *Session) Run() error {
	if err := s.show("banner", nil); err != nil {
		return err
	}
	labels := make([]string, len(s.items))
	for i, it := range s.items {
		labels[i] = it.label
	}
	for {
		if err := s.show("menu", labels); err != nil {
			return err
		}
		choice, err := s.ask(fmt.Sprintf("Select option (1-%d): ", len(s.items)))
		if err != nil {
			return s.end(err)
		}
		var run func() error
		switch strings.ToLower(choice) {
		case "q", "quit", "exit":
			return s.end(nil)
		default:
			n, err := strconv.Atoi(choice)
			if err != nil || n < 1 || n > len(s.items) {
				fmt.Fprintln(s.errw, "Invalid option. Please try again.")
				continue
			}
			run = s.items[n-1].run
		}
		if err := run(); err != nil {
			return s.end(err)
		}
	}
}

// Registry returns the session's saved expressions.
func (s *Session) Registry() *musicexpr.Registry {
	return s.reg
}

func (s *Session) end(err error) error {
	fmt.Fprintln(s.out, "\nGoodbye!")
	if err == errExit || err == io.EOF {
		return nil
	}
	return err
}

// ask prompts and reads one trimmed line. It returns io.EOF when the input
// is exhausted.
func (s *Session) ask(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		fmt.Fprintln(s.out)
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Session) fail(err error) {
	fmt.Fprintf(s.errw, "Error: %v\n", err)
}

func (s *Session) show(name string, data any) error {
	return screens.ExecuteTemplate(s.out, name, data)
}

// available prints the saved names. It reports false after telling the user
// there is nothing to use.
func (s *Session) available(empty string) (bool, error) {
	if s.reg.Len() == 0 {
		fmt.Fprintln(s.out, empty)
		return false, nil
	}
	return true, s.show("available", s.reg.Names())
}

// save asks for a name until e is saved under one.
func (s *Session) save(e musicexpr.Expr) error {
	fmt.Fprintf(s.out, "Created: %s\n", e.Render())
	for {
		name, err := s.ask("Save as: ")
		if err != nil {
			return err
		}
		if err := s.reg.Set(name, e); err != nil {
			s.fail(err)
			continue
		}
		fmt.Fprintf(s.out, "Saved as: %s\n", name)
		if !musicexpr.Referable(name) {
			fmt.Fprintf(s.errw, "Warning: notation cannot refer to %q; it reads as a pitch, a rest, or more than one name\n", name)
		}
		s.log.Printf("saved %q as %v %v", name, e.Kind(), e)
		return nil
	}
}

func (s *Session) createNote() error {
	for {
		name, err := s.ask("Enter note (C, D, E, F, G, A, B): ")
		if err != nil {
			return err
		}
		n, err := musicexpr.NewNote(name)
		if err != nil {
			s.fail(err)
			continue
		}
		return s.save(n)
	}
}

func (s *Session) createRest() error {
	return s.save(musicexpr.Rest{})
}

func seq(es []musicexpr.Expr) (musicexpr.Expr, error) {
	return musicexpr.NewSequence(es...)
}

func chord(es []musicexpr.Expr) (musicexpr.Expr, error) {
	return musicexpr.NewChord(es...)
}

// createGroup builds a sequence or chord from a list of saved names.
func (s *Session) createGroup(what string, build func([]musicexpr.Expr) (musicexpr.Expr, error)) error {
	ok, err := s.available("No expressions available. Create some notes first.")
	if !ok || err != nil {
		return err
	}
	line, err := s.ask("Enter names for the " + what + " (comma-separated): ")
	if err != nil {
		return err
	}
	var names []string
	for _, name := range strings.Split(line, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	found, missing := s.reg.Resolve(names)
	if len(missing) > 0 {
		fmt.Fprintf(s.errw, "Warning: not found: %s\n", strings.Join(missing, ", "))
	}
	if len(found) == 0 {
		s.fail(errors.New("no valid expressions given"))
		return nil
	}
	e, err := build(found)
	if err != nil {
		s.fail(err)
		return nil
	}
	return s.save(e)
}

func (s *Session) createRepeat() error {
	ok, err := s.available("No expressions available. Create some first.")
	if !ok || err != nil {
		return err
	}
	e, err := s.pick("Enter expression to repeat: ")
	if e == nil {
		return err
	}
	for {
		text, err := s.ask(fmt.Sprintf("Repeat count (1-%d): ", musicexpr.MaxRepeat))
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(text)
		if err != nil {
			s.fail(&musicexpr.CountError{Count: text})
			continue
		}
		r, err := musicexpr.NewRepeat(e, n)
		if err != nil {
			s.fail(err)
			continue
		}
		return s.save(r)
	}
}

// pick asks for a saved name. A name that is not saved is reported to the
// user, and pick returns a nil expression with a nil error.
func (s *Session) pick(prompt string) (musicexpr.Expr, error) {
	name, err := s.ask(prompt)
	if err != nil {
		return nil, err
	}
	e, ok := s.reg.Lookup(name)
	if !ok {
		s.fail(&musicexpr.NameError{Name: name})
		return nil, nil
	}
	return e, nil
}

func (s *Session) compose() error {
	fmt.Fprintln(s.out, `Notation: "C E G" plays in order, "C+E+G" together, "(C D)*2" repeats.`)
	if s.reg.Len() > 0 {
		if err := s.show("available", s.reg.Names()); err != nil {
			return err
		}
	}
	src, err := s.ask("Enter notation: ")
	if err != nil {
		return err
	}
	e, err := musicexpr.ParseString(src, musicexpr.Names(s.reg))
	if err != nil {
		s.fail(err)
		var ie musicexpr.InputError
		if errors.As(err, &ie) && ie.Pos() > 0 {
			fmt.Fprintf(s.errw, "  %s\n  %*s\n", src, ie.Pos(), "^")
		}
		return nil
	}
	return s.save(e)
}

func (s *Session) play() error {
	ok, err := s.available("No expressions available.")
	if !ok || err != nil {
		return err
	}
	name, err := s.ask("Enter expression name: ")
	if err != nil {
		return err
	}
	e, ok := s.reg.Lookup(name)
	if !ok {
		s.fail(&musicexpr.NameError{Name: name})
		return nil
	}
	fmt.Fprintf(s.out, "\nPlaying '%s':\n%s\n", name, e.Render())
	return nil
}

func (s *Session) list() error {
	var entries []listEntry
	s.reg.Each(func(name string, e musicexpr.Expr) bool {
		entries = append(entries, listEntry{Name: name, Render: e.Render()})
		return true
	})
	return s.show("list", entries)
}

func (s *Session) steps() error {
	ok, err := s.available("No expressions available.")
	if !ok || err != nil {
		return err
	}
	e, err := s.pick("Enter expression name: ")
	if e == nil {
		return err
	}
	ch, vel := uint8(s.cfg.Channel), uint8(s.cfg.Velocity)
	fmt.Fprintf(s.out, "\nMIDI steps for %v (octave %d, channel %d):\n", e, s.cfg.Octave, ch)
	for i, st := range musicexpr.Steps(e) {
		fmt.Fprintf(s.out, "%3d  %s\n", i+1, st)
		on, off := st.Messages(ch, vel, s.cfg.Octave)
		for _, m := range on {
			fmt.Fprintf(s.out, "       on:  % X  %v\n", []byte(m), m)
		}
		for _, m := range off {
			fmt.Fprintf(s.out, "       off: % X  %v\n", []byte(m), m)
		}
	}
	return nil
}

func (s *Session) pitches() error {
	t := pitchTable{Octave: s.cfg.Octave}
	for _, p := range musicexpr.Pitches() {
		t.Rows = append(t.Rows, pitchRow{
			Name: p.String(),
			Key:  p.Key(s.cfg.Octave),
			Hz:   p.Frequency(s.cfg.Octave, s.cfg.Precision).Text('f', 2),
		})
	}
	return s.show("pitches", t)
}
