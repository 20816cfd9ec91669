package main

import (
	"fmt"

	cordar "github.com/cordar-format/cordar-go"
	"github.com/cordar-format/cordar-go/convert"

	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: patch requires a patch file and at most one file", cli.ErrUsage)
	}
	file := inputs(args[1:])[0]
	if args[0] == "-" && file == "-" {
		return fmt.Errorf("%w: the patch and the document cannot both be read from stdin", cli.ErrUsage)
	}
	ops, err := readPatch(cfg, cc, args[0])
	if err != nil {
		return err
	}
	n, err := readDoc(cfg.MainConfig, cc, file)
	if err != nil {
		return err
	}

	var res *cordar.Node
	if cfg.Merge {
		res, err = convert.MergePatch(n, ops)
	} else {
		res, err = convert.Patch(n, ops)
	}
	if err != nil {
		return fmt.Errorf("error patching %s with %s: %w", file, args[0], err)
	}
	return emit(cfg.MainConfig, cc, cfg.Write, file, res)
}

// readPatch returns the JSON text of a patch. Patches that are not JSON
// files are converted, so they can be written in Cordar too.
func readPatch(cfg *PatchConfig, cc *cli.Context, path string) ([]byte, error) {
	d, err := readInput(cc, path)
	if err != nil {
		return nil, err
	}
	f := convert.FormatFromPath(path)
	if f == convert.JSON {
		return d, nil
	}
	n, err := convert.Decode(d, f, cfg.parseOpts()...)
	if err != nil {
		return nil, fmt.Errorf("error decoding patch %s: %w", path, err)
	}
	return convert.ToJSON(n)
}
