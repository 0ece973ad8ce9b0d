package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/neki-mods/neki-lang/encode"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='force colored output'"`

	Main *cli.Command
}

type GenConfig struct {
	*MainConfig

	Test bool `cli:"name=t aliases=test desc='wrap every replace operation in a test batch'"`

	Input   string
	Output  string
	Workers int

	Gen *cli.Command
}

type InitConfig struct {
	*MainConfig

	Force bool `cli:"name=f aliases=force desc='overwrite existing config files'"`

	Init *cli.Command
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

func nekiMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	var res []encode.EncodeOption
	if cfg.Color {
		return append(res, encode.EncodeColors(encode.NewColors()))
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

func parseInt(a string) (int, error) {
	n, err := strconv.Atoi(a)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", cli.ErrUsage, err)
	}
	return n, nil
}
