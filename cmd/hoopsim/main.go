package main

import (
	"fmt"
	"os"

	"github.com/diegok/hoopsim/internal/app"
	"github.com/diegok/hoopsim/internal/config"
)

func main() {
	cfg, err := config.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		printUsage()
		os.Exit(1)
	}

	application := app.NewApp(cfg)
	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  hoopsim [options]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintln(os.Stderr, "  --fps <n>           Ticks per second (default: 60)")
	fmt.Fprintln(os.Stderr, "  --power <p>         Initial shot power, 0.1-1.0 (default: 0.5)")
	fmt.Fprintln(os.Stderr, "  --scoring <rule>    proximity or rim (default: proximity)")
	fmt.Fprintln(os.Stderr, "  --hold <ticks>      Ticks before a movement key counts as released (default: 30)")
	fmt.Fprintln(os.Stderr, "  --tuning <file>     TOML file overriding physics constants")
	fmt.Fprintln(os.Stderr, "  --spectate <addr>   Stream frames to websocket spectators")
	fmt.Fprintln(os.Stderr, "  --log <file>        Write logs to file")
	fmt.Fprintln(os.Stderr, "  --mute              Disable sound")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Controls:")
	fmt.Fprintln(os.Stderr, "  Arrows move, w/s power, Space shoot, r reset, o orbit, q quit")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Examples:")
	fmt.Fprintln(os.Stderr, "  hoopsim --power 0.8")
	fmt.Fprintln(os.Stderr, "  hoopsim --scoring rim --tuning bouncy.toml")
	fmt.Fprintln(os.Stderr, "  hoopsim --spectate :8090 --log hoopsim.log")
}
