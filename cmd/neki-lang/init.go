package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/neki-mods/neki-lang/config"

	"github.com/rs/zerolog/log"
	"github.com/scott-cotton/cli"
)

func initConfigs(cfg *InitConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Init.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: unexpected arguments %v", cli.ErrUsage, args)
	}
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate executable: %w", err)
	}
	dir := filepath.Dir(exe)
	written, err := config.Init(dir, cfg.Force)
	for _, path := range written {
		log.Info().Str("path", path).Msg("config file written")
	}
	return err
}
