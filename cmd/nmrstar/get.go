package main

import (
	"fmt"
	"strings"

	"github.com/bmrb-io/go-nmrstar/ir"
	"github.com/bmrb-io/go-nmrstar/parse"

	"github.com/scott-cotton/cli"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires a tag or category argument", cli.ErrUsage)
	}
	query := args[0]
	if !strings.HasPrefix(query, "_") {
		query = "_" + query
	}
	args = args[1:]

	var filter *vm.Program
	if cfg.Expr != "" {
		filter, err = expr.Compile(cfg.Expr)
		if err != nil {
			return fmt.Errorf("%w: bad filter %q: %v", cli.ErrUsage, cfg.Expr, err)
		}
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
		if err := getEntry(cfg, cc, ent, query, filter); err != nil {
			return fmt.Errorf("error querying %s with %s: %w", arg, query, err)
		}
	}
	return nil
}

func getEntry(cfg *GetConfig, cc *cli.Context, ent *ir.Entry, query string, filter *vm.Program) error {
	category := ir.TagCategory(query)
	name := ""
	if strings.Contains(query, ".") {
		name = ir.TagName(query)
	}
	for _, sf := range ent.Saveframes {
		if name != "" && strings.EqualFold(sf.TagPrefix, category) {
			if v, err := sf.GetTag(name); err == nil {
				fmt.Fprintln(cc.Out, v)
			}
		}
		for _, l := range sf.Loops {
			if !strings.EqualFold(l.Category, category) {
				continue
			}
			if err := getLoop(cc, l, name, filter); err != nil {
				return err
			}
		}
	}
	return nil
}

func getLoop(cc *cli.Context, l *ir.Loop, name string, filter *vm.Program) error {
	var vals []string
	if name != "" {
		var err error
		vals, err = l.GetTagValues(name)
		if err != nil {
			return err
		}
	}
	for i, row := range l.Data {
		if filter != nil {
			keep, err := vm.Run(filter, l.Row(i))
			if err != nil {
				return fmt.Errorf("filter error on row %d: %w", i, err)
			}
			if ok, _ := keep.(bool); !ok {
				continue
			}
		}
		if name == "" {
			fmt.Fprintln(cc.Out, strings.Join(row, "\t"))
			continue
		}
		fmt.Fprintln(cc.Out, vals[i])
	}
	return nil
}
