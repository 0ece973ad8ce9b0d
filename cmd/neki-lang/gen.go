package main

import (
	"context"
	"fmt"

	"github.com/neki-mods/neki-lang/config"
	"github.com/neki-mods/neki-lang/dirbuild"

	"github.com/rs/zerolog/log"
	"github.com/scott-cotton/cli"
)

func gen(cfg *GenConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Gen.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: unexpected arguments %v", cli.ErrUsage, args)
	}
	if cfg.Input == "" || cfg.Output == "" {
		return fmt.Errorf("%w: both -i and -o are required", cli.ErrUsage)
	}

	conf, err := config.LoadNearExecutable()
	if err != nil {
		return err
	}
	log.Info().
		Stringer("dirs", conf.DirsSource).
		Stringer("patterns", conf.PatternsSource).
		Msg("configuration loaded")

	b := &dirbuild.Build{
		Input:   cfg.Input,
		Output:  cfg.Output,
		TestOps: cfg.Test,
		Workers: cfg.Workers,
		Config:  conf,
	}
	stats, err := b.Run(context.Background())
	if err != nil {
		return err
	}
	log.Info().
		Int("scanned", stats.Scanned).
		Int("written", stats.Written).
		Dur("elapsed", stats.Elapsed).
		Msg("done")
	return nil
}
