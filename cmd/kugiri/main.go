// SPDX-License-Identifier: MIT

// Command kugiri segments text from files or stdin into phrases, one input
// line per output line, phrases joined by the separator.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ManuGH/kugiri/internal/models"
	"github.com/ManuGH/kugiri/internal/segment"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("kugiri", flag.ContinueOnError)
	fs.SetOutput(stderr)

	lang := fs.String("lang", "ja", "BCP 47 language tag selecting a bundled model")
	modelPath := fs.String("model", "", "path to a model file, overrides -lang")
	threshold := fs.Int("threshold", segment.DefaultThreshold, "boundary score threshold")
	sep := fs.String("sep", "│", "phrase separator in the output")
	asJSON := fs.Bool("json", false, "emit one JSON array of phrases per input line")
	showVersion := fs.Bool("version", false, "print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: kugiri [flags] [file ...]\n\nReads stdin when no files are given.\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *showVersion {
		fmt.Fprintf(stdout, "kugiri %s\n", version)
		return 0
	}

	m, err := loadModel(*modelPath, *lang)
	if err != nil {
		fmt.Fprintf(stderr, "kugiri: %v\n", err)
		return 1
	}

	out := outputter{m: m, threshold: *threshold, sep: *sep, json: *asJSON}

	if fs.NArg() == 0 {
		if err := out.segmentStream(stdin, stdout); err != nil {
			fmt.Fprintf(stderr, "kugiri: %v\n", err)
			return 1
		}
		return 0
	}

	for _, path := range fs.Args() {
		f, err := os.Open(path) // #nosec G304 -- paths come from the command line
		if err != nil {
			fmt.Fprintf(stderr, "kugiri: %v\n", err)
			return 1
		}
		err = out.segmentStream(f, stdout)
		_ = f.Close()
		if err != nil {
			fmt.Fprintf(stderr, "kugiri: %s: %v\n", path, err)
			return 1
		}
	}
	return 0
}

func loadModel(path, lang string) (segment.Model, error) {
	if path != "" {
		return segment.LoadModelFile(path)
	}
	m, _, err := models.ByLanguage(lang)
	return m, err
}

type outputter struct {
	m         segment.Model
	threshold int
	sep       string
	json      bool
}

func (o outputter) segmentStream(r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	bw := bufio.NewWriter(w)
	defer func() { _ = bw.Flush() }()

	for sc.Scan() {
		phrases := segment.ParseWithThreshold(o.m, sc.Text(), o.threshold)
		if o.json {
			if err := json.NewEncoder(bw).Encode(phrases); err != nil {
				return err
			}
			continue
		}
		if _, err := bw.WriteString(strings.Join(phrases, o.sep)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return bw.Flush()
}
