package main

import (
	"fmt"

	cordar "github.com/cordar-format/cordar-go"
	"github.com/cordar-format/cordar-go/convert"

	"github.com/scott-cotton/cli"
)

func parsePathArg(arg string) ([]cordar.Step, error) {
	steps, err := cordar.ParsePath(arg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return steps, nil
}

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires a path", cli.ErrUsage)
	}
	steps, err := parsePathArg(args[0])
	if err != nil {
		return err
	}
	missing := false
	for _, arg := range inputs(args[1:]) {
		n, err := readDoc(cfg.MainConfig, cc, arg)
		if err != nil {
			return err
		}
		res, ok := n.Lookup(steps)
		if !ok {
			theLog.Debug("path not found", "file", arg, "path", args[0])
			missing = true
			continue
		}
		if res.Kind() == cordar.Scalar && cfg.outFormat() == convert.Cordar {
			fmt.Fprintln(cc.Out, res.Value())
			continue
		}
		if err := writeDoc(cfg.MainConfig, cc.Out, res); err != nil {
			return err
		}
	}
	if missing {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func set(cfg *EditConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Edit.Parse(cc, args)
	if err != nil {
		cfg.Edit.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("%w: set requires a path, a value and at most one file", cli.ErrUsage)
	}
	steps, err := parsePathArg(args[0])
	if err != nil {
		return err
	}
	file := inputs(args[2:])[0]
	n, err := readDoc(cfg.MainConfig, cc, file)
	if err != nil {
		return err
	}
	n.Ensure(steps).SetValue(args[1])
	return emit(cfg.MainConfig, cc, cfg.Write, file, n)
}

func del(cfg *EditConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Edit.Parse(cc, args)
	if err != nil {
		cfg.Edit.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: del requires a path and at most one file", cli.ErrUsage)
	}
	steps, err := parsePathArg(args[0])
	if err != nil {
		return err
	}
	file := inputs(args[1:])[0]
	n, err := readDoc(cfg.MainConfig, cc, file)
	if err != nil {
		return err
	}
	if !n.Remove(steps) {
		return fmt.Errorf("%s: nothing at %s", file, args[0])
	}
	return emit(cfg.MainConfig, cc, cfg.Write, file, n)
}
