package main

import (
	"bytes"
	"fmt"

	cordar "github.com/cordar-format/cordar-go"

	"github.com/scott-cotton/cli"
)

func format(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		cfg.Fmt.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	for _, arg := range inputs(args) {
		d, err := readInput(cc, arg)
		if err != nil {
			return err
		}
		n, err := cfg.decode(arg, d)
		if err != nil {
			return err
		}
		switch {
		case cfg.List:
			if !bytes.Equal(d, cordar.Format(n, cfg.fileEncOpts()...)) {
				fmt.Fprintln(cc.Out, arg)
			}
		case cfg.Write:
			if err := saveDoc(cfg.MainConfig, arg, n); err != nil {
				return err
			}
		default:
			if err := writeDoc(cfg.MainConfig, cc.Out, n); err != nil {
				return err
			}
		}
	}
	return nil
}
