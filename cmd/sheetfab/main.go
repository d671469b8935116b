package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"gioui.org/app"
	"github.com/esimov/sheetfab/config"
	"github.com/esimov/sheetfab/giohost"
	"github.com/esimov/sheetfab/stage"
	"github.com/esimov/sheetfab/termhost"
	"github.com/esimov/sheetfab/utils"
	"golang.org/x/term"
)

const HelpBanner = `
┌─┐┬ ┬┌─┐┌─┐┌┬┐┌─┐┌─┐┌┐
└─┐├─┤├┤ ├┤  │ ├┤ ├─┤├┴┐
└─┘┴ ┴└─┘└─┘ ┴ └  ┴ ┴└─┘

Floating action button to sheet transition.
    Version: %s

`

// pipeName is the file name that indicates stdin is being used.
const pipeName = "-"

// iconSize is the size of the control icon, in window units.
const iconSize = 24

// Version indicates the current build version.
var Version string

var (
	// Flags
	configPath = flag.String("config", "", "YAML configuration file")
	host       = flag.String("host", "", "Host: "+strings.Join(config.Hosts, ", "))
	icon       = flag.String("icon", "", "Control icon, a local image or an URL")
	script     = flag.String("script", "", "Replay script, - for stdin")
	debug      = flag.Bool("debug", false, "Log the state transitions")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	utils.Plain = !term.IsTerminal(int(os.Stderr.Fd()))

	cfg, err := loadConfig()
	if err != nil {
		fatal("Invalid configuration", err)
	}

	var logger *slog.Logger
	if *debug {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	switch cfg.Host {
	case config.HostReplay:
		if err := replay(cfg, logger, os.Stdout); err != nil {
			fatal("Replay failed", err)
		}
	case config.HostTerm:
		s, err := stage.New(cfg, time.Now(), logger)
		if err != nil {
			fatal("Unable to build the stage", err)
		}
		if err := termhost.Run(s, cfg.Terminal); err != nil {
			fatal("Terminal host failed", err)
		}
	case config.HostGio:
		s, err := stage.New(cfg, time.Now(), logger)
		if err != nil {
			fatal("Unable to build the stage", err)
		}
		gui := giohost.NewGUI(s, "sheetfab")
		if *icon != "" {
			img, err := stage.LoadIcon(*icon, iconSize)
			if err != nil {
				fatal("Failed to load the icon", err)
			}
			gui.SetIcon(img)
		}
		go func() {
			if err := gui.Run(); err != nil {
				fatal("Window closed with an error", err)
			}
			os.Exit(0)
		}()
		app.Main()
	}
}

// loadConfig reads the configuration file, if any, and applies the flag overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return nil, err
		}
	}
	if *host != "" {
		cfg.Host = *host
	}
	if *script != "" && *host == "" {
		cfg.Host = config.HostReplay
	}
	return cfg, cfg.Validate()
}

// replay plays the script on a virtual clock and prints the event log.
func replay(cfg *config.Config, logger *slog.Logger, w io.Writer) error {
	src, err := openScript(*script)
	if err != nil {
		return err
	}
	defer src.Close()

	steps, err := stage.ParseScript(src)
	if err != nil {
		return err
	}

	s, err := stage.New(cfg, time.Time{}, logger)
	if err != nil {
		return err
	}
	s.OnEvent(func(e stage.Entry) {
		fmt.Fprintln(w, utils.DecorateText(e.String(), utils.StatusMessage))
	})

	now := time.Now()
	if err := s.Play(steps, cfg.Terminal.Tick.Std()); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "\nReplayed %s of stage time in %s\n",
		utils.DecorateText(utils.FormatTime(s.Elapsed()), utils.SuccessMessage),
		utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage),
	)
	return nil
}

// openScript opens the replay script: a file, stdin or the built-in script.
func openScript(path string) (io.ReadCloser, error) {
	switch path {
	case "":
		return io.NopCloser(strings.NewReader(stage.DefaultScript)), nil
	case pipeName:
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, fmt.Errorf("`-` should be used with a pipe for stdin")
		}
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open the script: %w", err)
	}
	return f, nil
}

func fatal(msg string, err error) {
	log.Fatalf("%s %s",
		utils.DecorateText(msg+":", utils.ErrorMessage),
		utils.DecorateText(err.Error(), utils.DefaultMessage),
	)
}
