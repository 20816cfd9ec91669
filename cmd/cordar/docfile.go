package main

import (
	"fmt"
	"io"
	"os"

	cordar "github.com/cordar-format/cordar-go"
	"github.com/cordar-format/cordar-go/convert"

	"github.com/scott-cotton/cli"
)

func readInput(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

func (cfg *MainConfig) decode(path string, d []byte) (*cordar.Node, error) {
	f := cfg.inFormat(path)
	n, err := convert.Decode(d, f, cfg.parseOpts()...)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	theLog.Debug("read document", "file", path, "format", f)
	return n, nil
}

func readDoc(cfg *MainConfig, cc *cli.Context, path string) (*cordar.Node, error) {
	d, err := readInput(cc, path)
	if err != nil {
		return nil, err
	}
	return cfg.decode(path, d)
}

func writeDoc(cfg *MainConfig, w io.Writer, n *cordar.Node) error {
	f := cfg.outFormat()
	var opts []cordar.EncodeOption
	if f == convert.Cordar {
		opts = cfg.encOpts(w)
	}
	d, err := convert.Encode(n, f, opts...)
	if err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	_, err = w.Write(d)
	return err
}

// saveDoc replaces the named file with n, in the file's own format.
func saveDoc(cfg *MainConfig, path string, n *cordar.Node) error {
	if path == "-" {
		return fmt.Errorf("%w: -w needs a file argument", cli.ErrUsage)
	}
	f := cfg.inFormat(path)
	if f == convert.Cordar {
		if err := cordar.SaveFile(path, n, cfg.fileEncOpts()...); err != nil {
			return err
		}
		theLog.Debug("wrote document", "file", path)
		return nil
	}

	d, err := convert.Encode(n, f)
	if err != nil {
		return fmt.Errorf("error encoding %s: %w", path, err)
	}
	mode := os.FileMode(0644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := os.WriteFile(path, d, mode); err != nil {
		return err
	}
	theLog.Debug("wrote document", "file", path, "format", f)
	return nil
}

func emit(cfg *MainConfig, cc *cli.Context, write bool, path string, n *cordar.Node) error {
	if write {
		return saveDoc(cfg, path, n)
	}
	return writeDoc(cfg, cc.Out, n)
}

func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}
