package main

import (
	"fmt"

	cordar "github.com/cordar-format/cordar-go"
	"github.com/cordar-format/cordar-go/convert"

	"github.com/scott-cotton/cli"
)

func eval(cfg *EvalConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Eval.Parse(cc, args)
	if err != nil {
		cfg.Eval.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: eval requires an expression and at most one file", cli.ErrUsage)
	}
	n, err := readDoc(cfg.MainConfig, cc, inputs(args[1:])[0])
	if err != nil {
		return err
	}
	res, err := convert.Eval(n, args[0])
	if err != nil {
		return err
	}
	switch v := res.(type) {
	case map[string]any, []any:
		out, err := cordar.FromValue(v)
		if err != nil {
			return err
		}
		return writeDoc(cfg.MainConfig, cc.Out, out)
	case bool:
		fmt.Fprintln(cc.Out, v)
		if !v {
			return cli.ExitCodeErr(1)
		}
		return nil
	default:
		fmt.Fprintln(cc.Out, v)
		return nil
	}
}
