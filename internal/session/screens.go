package session

import (
	"text/template"

	"github.com/Masterminds/sprig"
)

var screens = template.Must(template.New("screens").Funcs(sprig.TxtFuncMap()).Parse(screenText))

type (
	listEntry struct {
		Name   string
		Render string
	}
	pitchRow struct {
		Name string
		Key  uint8
		Hz   string
	}
	pitchTable struct {
		Octave int
		Rows   []pitchRow
	}
)

const screenText = `
{{- define "banner" -}}
Music Interpreter Pattern Demo
Build and play musical expressions.
{{ end -}}

{{- define "menu" }}
{{ repeat 40 "=" }}
{{ upper "music interpreter pattern" }}
{{ repeat 40 "=" }}
{{ range $i, $label := . }}{{ add1 $i | printf "%2d" }}. {{ $label }}
{{ end }}{{ repeat 40 "=" }}
{{ end -}}

{{- define "available" -}}
Available expressions:
{{ join ", " . }}
{{ end -}}

{{- define "list" }}
Saved expressions:
{{ repeat 30 "-" }}
{{ range . }}{{ .Name }}: {{ .Render }}
{{ else }}None
{{ end -}}
{{ end -}}

{{- define "pitches" }}
Pitches in octave {{ .Octave }} (A4 = 440 Hz):
{{ repeat 30 "-" }}
{{ range .Rows }}{{ printf "%-2s %4d %12s Hz" .Name .Key .Hz }}
{{ end -}}
{{ end -}}

{{- define "explain" }}
{{ repeat 60 "=" }}
{{ upper "interpreter pattern explanation" }}
{{ repeat 60 "=" }}
Real-world analogy: musicians reading and playing sheet music.

Pattern components:
1. Abstract expression (the Expr interface)
   - Render describes what playing the expression does.
2. Terminal expressions (Note, Rest)
   - Leaves of the tree that interpret themselves directly.
3. Nonterminal expressions (Sequence, Chord, Repeat)
   - Branches that combine the results of their children.
4. Client (this program)
   - Builds the tree and asks it to interpret itself.

How it works:
- Build expressions from smaller pieces, or write them as notation
  such as "C E+G (C D)*2".
- Playing an expression interprets the tree recursively.
- Showing MIDI steps interprets the same tree a second way.
{{ repeat 60 "=" }}
{{ end -}}
`
