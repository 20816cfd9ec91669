package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func merge(cfg *MergeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Merge.Parse(cc, args)
	if err != nil {
		cfg.Merge.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: merge requires at least 2 files, got %v", cli.ErrUsage, args)
	}
	into, err := readDoc(cfg.MainConfig, cc, args[0])
	if err != nil {
		return err
	}
	for _, arg := range args[1:] {
		other, err := readDoc(cfg.MainConfig, cc, arg)
		if err != nil {
			return err
		}
		if err := into.Merge(other, cfg.Overwrite); err != nil {
			return fmt.Errorf("error merging %s into %s: %w", arg, args[0], err)
		}
	}
	return emit(cfg.MainConfig, cc, cfg.Write, args[0], into)
}
