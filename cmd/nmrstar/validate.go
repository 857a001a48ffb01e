package main

import (
	"errors"
	"fmt"

	"github.com/bmrb-io/go-nmrstar/parse"
	"github.com/bmrb-io/go-nmrstar/token"

	"github.com/scott-cotton/cli"
)

func validate(cfg *ValidateConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Validate.Parse(cc, args)
	if err != nil {
		cfg.Validate.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	bad := 0
	for _, arg := range argsOrStdin(args) {
		d, err := readArg(arg)
		if err != nil {
			return err
		}
		ent, err := parse.Parse(d, cfg.parseOpts(arg)...)
		if err != nil {
			bad++
			fmt.Fprintf(cc.Out, "%s: %v\n", arg, diagnostic(err))
			continue
		}
		fmt.Fprintf(cc.Out, "%s: ok: entry %s, %d saveframes\n", arg, ent.ID, len(ent.Saveframes))
	}
	if bad > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func diagnostic(err error) string {
	var te *token.TokenizeErr
	if errors.As(err, &te) {
		return fmt.Sprintf("lexical error: %v", te)
	}
	var pe *parse.ParseErr
	if errors.As(err, &pe) {
		return fmt.Sprintf("grammar error: %v", pe)
	}
	return err.Error()
}
