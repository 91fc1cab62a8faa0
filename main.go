package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/jessevdk/go-flags"

	"jbpatch/core"
)

type Options struct {
	Patch        bool   `long:"patch" description:"Add the serverUrl override to every Jackbox config file"`
	Unpatch      bool   `long:"unpatch" description:"Remove the serverUrl override from every Jackbox config file"`
	ServerUrl    string `short:"s" long:"server" description:"Server URL written by --patch. Defaults to the saved setting or rujackbox.vercel.app"`
	SteamPath    string `short:"p" long:"path" description:"Steam folder that contains steamapps"`
	Auto         bool   `short:"a" long:"auto" description:"Search every drive for steamapps folders (can be slow)"`
	Steam        bool   `long:"steam" description:"Read library locations from the local Steam install"`
	Workers      int    `short:"w" long:"workers" description:"Number of config files patched in parallel"`
	Verbose      bool   `short:"v" long:"verbose" description:"Enable verbose logging"`
	LogLocation  string `short:"l" long:"log-location" description:"Specifies path to logfile. Defaults to User's Cache Dir / jbpatch.log"`
	SaveSettings bool   `long:"save-settings" description:"Remember the server, folder and discovery choice for next time"`
	Version      bool   `long:"version" description:"Print the version and exit"`

	Args struct {
		Action   string `positional-arg-name:"ACTION" description:"patch or unpatch, instead of --patch / --unpatch"`
		Location string `positional-arg-name:"LOCATION" description:"auto, steam or a Steam folder, instead of --auto / --steam / --path"`
	} `positional-args:"yes"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, core.GetCurrentSettingsOrDefault()))
}

func run(ctx context.Context, args []string, out io.Writer, settings *core.Settings) int {
	ops := &Options{}
	parser := flags.NewParser(ops, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return 0
		}
		return 2
	}

	if ops.Version {
		fmt.Fprintf(out, "%v v%v\n", core.APP_NAME, strings.TrimSpace(core.VersionRevision))
		return 0
	}

	var err error
	if ops.LogLocation != "" {
		err = core.InitLoggingWithPath(ops.LogLocation, ops.Verbose)
	} else {
		err = core.InitLoggingWithDefaultPath(ops.Verbose)
	}
	if err != nil {
		fmt.Fprintln(out, "Logging disabled:", err)
	} else if ops.LogLocation != "" {
		fmt.Fprintln(out, "Logging to", ops.LogLocation)
	}

	config, err := buildSessionConfig(ops, settings)
	if err != nil {
		fmt.Fprintln(out, err)
		return 2
	}

	if ops.SaveSettings {
		rememberChoices(ops, settings)
		if err := core.CommitSettings(settings); err != nil {
			core.Log.WithError(err).Error("Failed to save settings")
			fmt.Fprintln(out, "Failed to save settings:", err)
		}
	}

	controller := core.NewController()
	_, events, err := controller.Start(ctx, config)
	if err != nil {
		fmt.Fprintln(out, err)
		return 1
	}

	core.ConsoleLogger(events, func(line string) {
		fmt.Fprintln(out, line)
	})

	return 0
}

func buildSessionConfig(ops *Options, settings *core.Settings) (core.SessionConfig, error) {
	config := core.SessionConfig{
		ServerUrl: settings.ServerUrl,
		Workers:   settings.Workers,
	}

	actions := 0
	if ops.Patch {
		actions++
		config.Action = core.ActionApply
	}
	if ops.Unpatch {
		actions++
		config.Action = core.ActionRemove
	}
	if ops.Args.Action != "" {
		action, err := core.ParseAction(ops.Args.Action)
		if err != nil {
			return config, err
		}
		actions++
		config.Action = action
	}

	switch {
	case actions > 1:
		return config, fmt.Errorf("choose only one of --patch and --unpatch")
	case actions == 0:
		return config, fmt.Errorf("choose --patch or --unpatch")
	}

	if ops.ServerUrl != "" {
		config.ServerUrl = strings.TrimSpace(ops.ServerUrl)
	}
	if config.Action == core.ActionApply && config.ServerUrl == "" {
		return config, fmt.Errorf("--server must not be empty")
	}

	if ops.Workers > 0 {
		config.Workers = ops.Workers
	}

	chosen := 0
	if ops.SteamPath != "" {
		chosen++
		config.Mode = core.ExplicitMode(ops.SteamPath)
	}
	if ops.Auto {
		chosen++
		config.Mode = core.AutoMode()
	}
	if ops.Steam {
		chosen++
		config.Mode = core.SteamMode()
	}
	if ops.Args.Location != "" {
		chosen++
		config.Mode = core.ParseLocateMode(ops.Args.Location)
	}

	switch {
	case chosen > 1:
		return config, fmt.Errorf("choose only one of --path, --auto and --steam")
	case chosen == 0:
		mode, ok := settings.LocateMode()
		if !ok {
			return config, fmt.Errorf("choose a Steam folder with --path, or use --auto or --steam")
		}
		config.Mode = mode
	}

	return config, nil
}

func rememberChoices(ops *Options, settings *core.Settings) {
	if ops.ServerUrl != "" {
		settings.ServerUrl = strings.TrimSpace(ops.ServerUrl)
	}
	if ops.Workers > 0 {
		settings.Workers = ops.Workers
	}

	switch {
	case ops.Auto:
		settings.Discovery = "auto"
	case ops.Steam:
		settings.Discovery = "steam"
	case ops.SteamPath != "":
		settings.Discovery = ""
		settings.SteamPath = ops.SteamPath
	case ops.Args.Location != "":
		mode := core.ParseLocateMode(ops.Args.Location)
		settings.Discovery = ""
		if mode.Kind == core.LocateExplicit {
			settings.SteamPath = mode.Root
		} else {
			settings.Discovery = mode.Kind.String()
		}
	}
}
