package session_test

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/zephyrtronium/musicexpr"
	"github.com/zephyrtronium/musicexpr/internal/config"
	"github.com/zephyrtronium/musicexpr/internal/session"
)

// run plays a scripted conversation and returns everything written.
func run(t *testing.T, script string, opts ...session.Option) (string, *session.Session) {
	t.Helper()
	var out bytes.Buffer
	s := session.New(strings.NewReader(script), &out, opts...)
	if err := s.Run(); err != nil {
		t.Fatalf("session failed: %v\noutput:\n%s", err, out.String())
	}
	return out.String(), s
}

func TestSession(t *testing.T) {
	cases := []struct {
		name   string
		script string
		want   []string
		saved  map[string]string
	}{
		{
			name:   "exit",
			script: "12\n",
			want:   []string{"Music Interpreter Pattern Demo", " 1. Create note", "12. Exit", "Goodbye!"},
		},
		{
			name:   "quit-words",
			script: "Q\n",
			want:   []string{"Goodbye!"},
		},
		{
			name:   "eof",
			script: "",
			want:   []string{"Goodbye!"},
		},
		{
			name:   "invalid-option",
			script: "13\nzero\n\nquit\n",
			want:   []string{"Invalid option. Please try again."},
		},
		{
			name:   "note",
			script: "1\nH\nc\n\nlow\n12\n",
			want: []string{
				`Error: invalid note "H": valid notes are C, D, E, F, G, A, B`,
				"Created: Play note: C",
				"Error: save name cannot be empty",
				"Saved as: low",
			},
			saved: map[string]string{"low": "Play note: C"},
		},
		{
			name:   "rest",
			script: "2\nr\n8\n",
			want:   []string{"Created: Rest (silence)", "r: Rest (silence)"},
			saved:  map[string]string{"r": "Rest (silence)"},
		},
		{
			name:   "sequence",
			script: "1\nC\nc\n2\nr\n1\nE\ne\n3\nc, r, nope, e, x\nmel\n12\n",
			want: []string{
				"Available expressions:\nc, r, e",
				"Warning: not found: nope, x",
				"Created: Play note: C -> Rest (silence) -> Play note: E",
			},
			saved: map[string]string{"mel": "Play note: C -> Rest (silence) -> Play note: E"},
		},
		{
			name:   "chord",
			script: "1\nC\nc\n1\nE\ne\n4\nc,e\nce\n12\n",
			want:   []string{"Created: [Play note: C + Play note: E]"},
			saved:  map[string]string{"ce": "[Play note: C + Play note: E]"},
		},
		{
			name:   "group-empty-registry",
			script: "3\n4\n12\n",
			want:   []string{"No expressions available. Create some notes first."},
		},
		{
			name:   "group-nothing-found",
			script: "2\nr\n3\nx, y\n12\n",
			want:   []string{"Warning: not found: x, y", "Error: no valid expressions given"},
			saved:  map[string]string{"r": "Rest (silence)"},
		},
		{
			name:   "repeat",
			script: "1\nG\ng\n5\ng\n0\ntwice\n2\ngg\n12\n",
			want: []string{
				"Error: repeat count must be a whole number from 1 to 100, not 0",
				`Error: repeat count must be a whole number from 1 to 100, not twice`,
				"Created: Repeat 2x: (Play note: G, Play note: G)",
			},
			saved: map[string]string{"gg": "Repeat 2x: (Play note: G, Play note: G)"},
		},
		{
			name:   "repeat-unknown",
			script: "1\nG\ng\n5\nx\n12\n",
			want:   []string{`Error: expression "x" not found`},
		},
		{
			name:   "repeat-empty-registry",
			script: "5\n12\n",
			want:   []string{"No expressions available. Create some first."},
		},
		{
			name:   "compose",
			script: "1\nC\nc\n6\n(c E)*2 rest\nriff\n12\n",
			want:   []string{"Created: Repeat 2x: (Play note: C -> Play note: E, Play note: C -> Play note: E) -> Rest (silence)"},
			saved:  map[string]string{"riff": "Repeat 2x: (Play note: C -> Play note: E, Play note: C -> Play note: E) -> Rest (silence)"},
		},
		{
			name:   "compose-too-large",
			script: "6\nC*100*100*100\n12\n",
			want: []string{
				"Error: 11: expression expands to 1000000 notes and rests, more than 10000",
				"  C*100*100*100\n            ^",
			},
		},
		{
			name:   "repeat-too-large",
			script: "6\nC*100*100\nbig\n5\nbig\n2\n1\nsame\n12\n",
			want: []string{
				"Error: expression expands to 20000 notes and rests, more than 10000",
				"Saved as: same",
			},
		},
		{
			name:   "chord-of-one",
			script: "1\nC\nc\n4\nc\nlone\n6\nlone E\nmel\n8\n12\n",
			want: []string{
				"lone: [Play note: C]",
				"mel: [Play note: C] -> Play note: E",
			},
		},
		{
			name:   "shadowed-names",
			script: "2\nC\n2\n_\n2\nmy riff\n2\nriff\n12\n",
			want: []string{
				`Warning: notation cannot refer to "C"`,
				`Warning: notation cannot refer to "_"`,
				`Warning: notation cannot refer to "my riff"`,
			},
			saved: map[string]string{"C": "Rest (silence)", "my riff": "Rest (silence)"},
		},
		{
			name:   "compose-error",
			script: "6\nC+\n12\n",
			want:   []string{"Error: 3: ", "  C+\n    ^"},
		},
		{
			name:   "play",
			script: "2\nr\n7\nr\n7\nq\n12\n",
			want: []string{
				"Playing 'r':\nRest (silence)",
				`Error: expression "q" not found`,
			},
		},
		{
			name:   "play-empty-registry",
			script: "7\n12\n",
			want:   []string{"No expressions available."},
		},
		{
			name:   "list-empty",
			script: "8\n12\n",
			want:   []string{"Saved expressions:", "None"},
		},
		{
			name:   "overwrite",
			script: "1\nC\nx\n2\ny\n1\nD\nx\n8\n12\n",
			want:   []string{"x: Play note: D\ny: Rest (silence)"},
			saved:  map[string]string{"x": "Play note: D", "y": "Rest (silence)"},
		},
		{
			name:   "steps",
			script: "6\nC+E rest\nx\n9\nx\n12\n",
			want: []string{
				"MIDI steps for C+E rest (octave 4, channel 0):",
				"  1  C E",
				"  2  -",
			},
		},
		{
			name:   "pitch-table",
			script: "10\n12\n",
			want:   []string{"Pitches in octave 4", "A    69       440.00 Hz", "C    60       261.63 Hz"},
		},
		{
			name:   "explain",
			script: "11\n12\n",
			want:   []string{"INTERPRETER PATTERN EXPLANATION", "Terminal expressions (Note, Rest)"},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, s := run(t, c.script)
			for _, w := range c.want {
				if !strings.Contains(out, w) {
					t.Errorf("output is missing %q:\n%s", w, out)
				}
			}
			for name, want := range c.saved {
				e, ok := s.Registry().Lookup(name)
				if !ok {
					t.Errorf("%q was not saved", name)
					continue
				}
				if got := e.Render(); got != want {
					t.Errorf("%q renders %q, want %q", name, got, want)
				}
			}
		})
	}
}

func TestSessionErrors(t *testing.T) {
	var out, errs bytes.Buffer
	s := session.New(strings.NewReader("1\nX\nC\nc\nbogus\n12\n"), &out, session.Errors(&errs))
	if err := s.Run(); err != nil {
		t.Fatal(err)
	}
	for _, w := range []string{"Error: invalid note", "Invalid option."} {
		if !strings.Contains(errs.String(), w) {
			t.Errorf("errors are missing %q:\n%s", w, errs.String())
		}
		if strings.Contains(out.String(), w) {
			t.Errorf("output should not contain %q", w)
		}
	}
}

func TestSessionConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Octave = 5
	cfg.Channel = 3
	cfg.Velocity = 90
	out, _ := run(t, "6\nA\na\n9\na\n10\n12\n", session.Config(cfg))
	for _, w := range []string{
		"(octave 5, channel 3)",
		"on:  93 51 5A",
		"off: 83 51",
		"A    81       880.00 Hz",
	} {
		if !strings.Contains(out, w) {
			t.Errorf("output is missing %q:\n%s", w, out)
		}
	}
}

func TestSessionRegistry(t *testing.T) {
	reg := musicexpr.NewRegistry()
	lick, err := musicexpr.ParseString("C D E")
	if err != nil {
		t.Fatal(err)
	}
	if err := reg.Set("lick", lick); err != nil {
		t.Fatal(err)
	}
	out, s := run(t, "6\nlick*2\ntwo\n8\n12\n", session.Registry(reg))
	if s.Registry() != reg {
		t.Error("session should use the given registry")
	}
	if _, ok := reg.Lookup("two"); !ok {
		t.Errorf("composed expression was not saved to the given registry:\n%s", out)
	}
	if names := strings.Join(reg.Names(), " "); names != "lick two" {
		t.Errorf("want names lick two, got %s", names)
	}
}

func TestSessionLogger(t *testing.T) {
	var logs bytes.Buffer
	run(t, "2\nr\n12\n", session.Logger(log.New(&logs, "", 0)))
	if got, want := logs.String(), `saved "r" as rest rest`+"\n"; got != want {
		t.Errorf("want log %q, got %q", want, got)
	}
}
