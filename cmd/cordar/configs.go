package main

import (
	"fmt"
	"io"
	"os"

	cordar "github.com/cordar-format/cordar-go"
	"github.com/cordar-format/cordar-go/convert"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color   bool   `cli:"name=color desc='encode with color'"`
	Markers bool   `cli:"name=markers desc='read and write the legacy marker escaping'"`
	Strict  bool   `cli:"name=strict desc='fail on malformed lines instead of skipping them'"`
	Verbose bool   `cli:"name=v aliases=verbose desc='log debug messages'"`
	Indent  string `cli:"name=indent desc='indentation written per level'"`

	InFormat, OutFormat *convert.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**convert.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := convert.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) escaping() cordar.Escaping {
	if cfg.Markers {
		return cordar.Markers
	}
	return cordar.Backslash
}

func (cfg *MainConfig) parseOpts() []cordar.ParseOption {
	res := []cordar.ParseOption{
		cordar.WithEscaping(cfg.escaping()),
		cordar.WithLogger(theLog),
	}
	if cfg.Strict {
		res = append(res, cordar.Strict())
	}
	return res
}

// inFormat is the format of the named input, "-" being standard input.
func (cfg *MainConfig) inFormat(path string) convert.Format {
	if cfg.InFormat != nil {
		return *cfg.InFormat
	}
	return convert.FormatFromPath(path)
}

func (cfg *MainConfig) outFormat() convert.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	if cfg.Out != "" && cfg.Out != "-" {
		return convert.FormatFromPath(cfg.Out)
	}
	return convert.Cordar
}

// fileEncOpts are the options for writing a file in place.
func (cfg *MainConfig) fileEncOpts() []cordar.EncodeOption {
	res := []cordar.EncodeOption{cordar.EncodeEscaping(cfg.escaping())}
	if cfg.Indent != "" {
		res = append(res, cordar.EncodeIndent(cfg.Indent))
	}
	return res
}

func (cfg *MainConfig) encOpts(w io.Writer) []cordar.EncodeOption {
	res := cfg.fileEncOpts()
	if cfg.useColor(w) {
		res = append(res, cordar.EncodeColors(cordar.NewColors()))
	}
	return res
}

func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name == "color" && opt.Value != nil {
			return false
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type FmtConfig struct {
	*MainConfig
	Write bool `cli:"name=w desc='write the result to the file instead of the output'"`
	List  bool `cli:"name=l desc='list files whose formatting differs'"`

	Fmt *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type EditConfig struct {
	*MainConfig
	Write bool `cli:"name=w desc='write the result to the file instead of the output'"`

	Edit *cli.Command
}

type MergeConfig struct {
	*MainConfig
	Overwrite bool `cli:"name=overwrite aliases=f desc='replace conflicting values instead of failing'"`
	Write     bool `cli:"name=w desc='write the result to the first file'"`

	Merge *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`

	Diff *cli.Command
}

type ConvertConfig struct {
	*MainConfig

	Convert *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Merge bool `cli:"name=merge aliases=m desc='apply an RFC 7396 merge patch instead of an RFC 6902 patch'"`
	Write bool `cli:"name=w desc='write the result to the file instead of the output'"`

	Patch *cli.Command
}

type EvalConfig struct {
	*MainConfig

	Eval *cli.Command
}
