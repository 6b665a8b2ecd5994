package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/zephyrtronium/musicexpr"
	"github.com/zephyrtronium/musicexpr/internal/config"
	"github.com/zephyrtronium/musicexpr/internal/session"
)

func main() {
	log.SetFlags(0)
	var (
		cfgname, inname string
		octave          int
		echo, verbose   bool
	)
	flag.StringVar(&cfgname, "config", "", "YAML configuration file")
	flag.StringVar(&inname, "in", "", "file of notation, one expression per line (- for stdin)")
	flag.IntVar(&octave, "octave", -1, "octave for MIDI steps and pitch tables (default from config)")
	flag.BoolVar(&echo, "echo", false, "print normalized notation before each render")
	flag.BoolVar(&verbose, "v", false, "log diagnostics to stderr")
	flag.Parse()

	cfg, err := config.Load(cfgname, ".env")
	if err != nil {
		log.Fatal(err)
	}
	if octave >= 0 {
		cfg.Octave = octave
	}
	cfg.Verbose = cfg.Verbose || verbose
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	if inname == "" && flag.NArg() == 0 {
		opts := []session.Option{session.Config(cfg), session.Errors(os.Stderr)}
		if cfg.Verbose {
			opts = append(opts, session.Logger(log.New(os.Stderr, "musicexpr: ", 0)))
		}
		if err := session.New(os.Stdin, os.Stdout, opts...).Run(); err != nil {
			log.Fatal(err)
		}
		return
	}

	srcs, err := inlines(inname)
	if err != nil {
		log.Fatal(err)
	}
	srcs = append(srcs, flag.Args()...)
	failed := false
	for _, src := range srcs {
		e, err := musicexpr.ParseString(src)
		if err != nil {
			log.Printf("%q: %v", src, err)
			failed = true
			continue
		}
		if echo {
			fmt.Printf("%v : ", e)
		}
		fmt.Println(e.Render())
	}
	if failed {
		os.Exit(1)
	}
}

// inlines reads the non-blank lines of the named file.
func inlines(inname string) ([]string, error) {
	var f io.Reader
	switch inname {
	case "":
		return nil, nil
	case "-":
		f = os.Stdin
	default:
		in, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		defer in.Close()
		f = in
	}
	var srcs []string
	scan := bufio.NewScanner(f)
	for scan.Scan() {
		if line := strings.TrimSpace(scan.Text()); line != "" {
			srcs = append(srcs, line)
		}
	}
	return srcs, scan.Err()
}
