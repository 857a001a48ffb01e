package main

import (
	"fmt"

	"github.com/bmrb-io/go-nmrstar/token"

	"github.com/scott-cotton/cli"
)

func tokens(cfg *TokensConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Tokens.Parse(cc, args)
	if err != nil {
		cfg.Tokens.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	tk := token.New()
	for _, arg := range argsOrStdin(args) {
		d, err := readArg(arg)
		if err != nil {
			return err
		}
		tk.LoadBytes(d)
		for {
			tok, err := tk.Next()
			if err != nil {
				return fmt.Errorf("error tokenizing %s: %w", arg, err)
			}
			if tok == nil {
				break
			}
			fmt.Fprintf(cc.Out, "%d\t%s\t%q\n", tok.Line, tok.Delineator, tok.Text)
		}
	}
	return nil
}
