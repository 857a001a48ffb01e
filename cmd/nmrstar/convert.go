package main

import (
	"fmt"

	"github.com/bmrb-io/go-nmrstar/encode"
	"github.com/bmrb-io/go-nmrstar/parse"

	"github.com/scott-cotton/cli"
)

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		cfg.Convert.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	for _, arg := range argsOrStdin(args) {
		d, err := readArg(arg)
		if err != nil {
			return err
		}
		ent, err := parse.Parse(d, cfg.parseOpts(arg)...)
		if err != nil {
			return fmt.Errorf("error parsing %s: %w", arg, err)
		}
		if err := encode.Encode(ent, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return fmt.Errorf("error encoding %s: %w", arg, err)
		}
	}
	return nil
}
