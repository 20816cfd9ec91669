package main

import (
	"github.com/scott-cotton/cli"
)

func convertFiles(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		cfg.Convert.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	for _, arg := range inputs(args) {
		n, err := readDoc(cfg.MainConfig, cc, arg)
		if err != nil {
			return err
		}
		if err := writeDoc(cfg.MainConfig, cc.Out, n); err != nil {
			return err
		}
	}
	return nil
}
