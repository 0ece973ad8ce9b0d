package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}

	return cli.NewCommandAt(&cfg.Main, "neki-lang").
		WithSynopsis("neki-lang [opts] command [opts]").
		WithDescription("neki-lang builds language templates from mod asset trees.").
		WithOpts(sOpts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return nekiMain(cfg, cc, args)
		}).
		WithSubs(
			GenCommand(cfg),
			InitCommand(cfg),
			ViewCommand(cfg))
}

func GenCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GenConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts,
		&cli.Opt{
			Name:        "i",
			Aliases:     []string{"input"},
			Description: "input directory (mod folder)",
			Type:        cli.NamedFuncOpt(stringOpt(&cfg.Input), "(dirpath)"),
		},
		&cli.Opt{
			Name:        "o",
			Aliases:     []string{"output"},
			Description: "output directory for language templates",
			Type:        cli.NamedFuncOpt(stringOpt(&cfg.Output), "(dirpath)"),
		},
		&cli.Opt{
			Name:        "w",
			Aliases:     []string{"workers"},
			Description: "concurrent file workers (default: number of CPUs)",
			Type:        cli.NamedFuncOpt(intOpt(&cfg.Workers), "(count)"),
		})

	cmd := cli.NewCommand("gen").
		WithAliases("g", "generate").
		WithSynopsis("gen -i (dirpath) -o (dirpath) [-t] [-w (count)]").
		WithDescription("Generate language template patches for a mod directory").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return gen(cfg, cc, args)
		})
	cfg.Gen = cmd
	return cmd
}

func InitCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &InitConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("init").
		WithSynopsis("init [-f]").
		WithDescription("Write default config files next to the executable").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return initConfigs(cfg, cc, args)
		})
	cfg.Init = cmd
	return cmd
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("view").
		WithAliases("v").
		WithSynopsis("view [files]").
		WithDescription("Parse relaxed-dialect files and pretty-print them").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
	cfg.View = cmd
	return cmd
}

func stringOpt(p *string) cli.FuncOpt {
	return func(_ *cli.Context, a string) (any, error) {
		*p = a
		return a, nil
	}
}

func intOpt(p *int) cli.FuncOpt {
	return func(_ *cli.Context, a string) (any, error) {
		n, err := parseInt(a)
		if err != nil {
			return nil, err
		}
		*p = n
		return n, nil
	}
}
