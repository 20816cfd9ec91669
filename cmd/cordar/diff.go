package main

import (
	"fmt"
	"io"
	"strings"

	cordar "github.com/cordar-format/cordar-go"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := readDoc(cfg.MainConfig, cc, args[0])
	if err != nil {
		return err
	}
	b, err := readDoc(cfg.MainConfig, cc, args[1])
	if err != nil {
		return err
	}
	if cfg.Reverse {
		a, b = b, a
	}
	if a.Equal(b) {
		return nil
	}
	opts := cfg.fileEncOpts()
	diffs := diffLines(string(cordar.Format(a, opts...)), string(cordar.Format(b, opts...)))
	if err := writeDiff(cc.Out, diffs, cfg.useColor(cc.Out)); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}

func diffLines(a, b string) []diffpatch.Diff {
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffMain(ca, cb, false)
	return dmp.DiffCharsToLines(diffs, lines)
}

func writeDiff(w io.Writer, diffs []diffpatch.Diff, colored bool) error {
	insert, remove := fmt.Sprint, fmt.Sprint
	if colored {
		insert = color.New(color.FgGreen).SprintFunc()
		remove = color.New(color.FgRed).SprintFunc()
	}
	for _, d := range diffs {
		prefix, style := "  ", fmt.Sprint
		switch d.Type {
		case diffpatch.DiffInsert:
			prefix, style = "+ ", insert
		case diffpatch.DiffDelete:
			prefix, style = "- ", remove
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			if _, err := fmt.Fprintln(w, style(prefix+strings.TrimSuffix(line, "\n"))); err != nil {
				return err
			}
		}
	}
	return nil
}
