package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bmrb-io/go-nmrstar/encode"
	"github.com/bmrb-io/go-nmrstar/format"
	"github.com/bmrb-io/go-nmrstar/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='encode with color'"`

	S bool `cli:"name=s aliases=star desc='output in nmr-star'"`
	J bool `cli:"name=j aliases=json desc='output in json'"`
	Y bool `cli:"name=y aliases=yaml desc='output in yaml'"`

	OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) outFormat() format.Format {
	var fmat format.Format
	switch {
	case cfg.S:
		fmat = format.StarFormat
	case cfg.Y:
		fmat = format.YAMLFormat
	case cfg.J:
		fmat = format.JSONFormat
	}
	if cfg.OutFormat != nil {
		fmat = *cfg.OutFormat
	}
	return fmat
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat()),
	}
	if cfg.Color {
		res = append(res, encode.EncodeColors(encode.NewColors()))
		return res
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type TokensConfig struct {
	*MainConfig

	Tokens *cli.Command
}

type FmtConfig struct {
	*MainConfig

	Diff  bool `cli:"name=d desc='show a diff against the input instead of rewriting'"`
	Write bool `cli:"name=w desc='write the result back to the file'"`

	Fmt *cli.Command
}

type GetConfig struct {
	*MainConfig

	Expr string `cli:"name=e desc='filter loop rows with an expression over tag names'"`

	Get *cli.Command
}

type ConvertConfig struct {
	*MainConfig

	Convert *cli.Command
}

type ValidateConfig struct {
	*MainConfig

	Validate *cli.Command
}

func (cfg *MainConfig) parseOpts(arg string) []parse.ParseOption {
	if arg == "-" {
		return nil
	}
	return []parse.ParseOption{parse.ParseSource(arg)}
}
