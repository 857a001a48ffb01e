package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/bmrb-io/go-nmrstar/encode"
	"github.com/bmrb-io/go-nmrstar/parse"

	"github.com/scott-cotton/cli"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

func fmtRun(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		cfg.Fmt.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Diff && cfg.Write {
		return fmt.Errorf("%w: -d and -w are mutually exclusive", cli.ErrUsage)
	}
	if cfg.Write && len(args) == 0 {
		return fmt.Errorf("%w: -w requires file arguments", cli.ErrUsage)
	}
	for _, arg := range argsOrStdin(args) {
		if err := fmtArg(cfg, cc, arg); err != nil {
			return err
		}
	}
	return nil
}

func fmtArg(cfg *FmtConfig, cc *cli.Context, arg string) error {
	d, err := readArg(arg)
	if err != nil {
		return err
	}
	ent, err := parse.Parse(d, cfg.parseOpts(arg)...)
	if err != nil {
		return fmt.Errorf("error parsing %s: %w", arg, err)
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(ent, buf); err != nil {
		return fmt.Errorf("error formatting %s: %w", arg, err)
	}
	switch {
	case cfg.Diff:
		diffCfg := diffpatch.New()
		diffs := diffCfg.DiffMain(string(d), buf.String(), true)
		if _, err := fmt.Fprint(cc.Out, diffCfg.DiffPrettyText(diffs)); err != nil {
			return err
		}
		return nil
	case cfg.Write:
		return os.WriteFile(arg, buf.Bytes(), 0644)
	default:
		// colorize when writing to a terminal
		return encode.Encode(ent, cc.Out, cfg.encOpts(cc.Out)...)
	}
}
