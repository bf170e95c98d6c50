package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/LFroesch/karu/internal/browser"
	"github.com/LFroesch/karu/internal/config"
	"github.com/LFroesch/karu/internal/logger"
	"github.com/LFroesch/karu/internal/playback"
)

var version = "dev"

func main() {
	if err := newRootCmd(config.Load()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	var maxPreviewMB int64

	cmd := &cobra.Command{
		Use:   "karu [directory]",
		Short: "A keyboard driven terminal file browser",
		Long: `karu browses a directory tree in the terminal with a file list, an
actions panel and a live preview of the selected file. Files can be
created, renamed, moved, copied, trashed, viewed, edited and played.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("max-preview-mb") {
				cfg.MaxPreviewBytes = maxPreviewMB * 1024 * 1024
			}

			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return run(cfg, dir)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&cfg.ShowHidden, "hidden", cfg.ShowHidden, "show hidden entries")
	flags.BoolVar(&cfg.Debug, "debug", cfg.Debug, "log at debug level")
	flags.StringVar(&cfg.LogPath, "log-file", cfg.LogPath, "log file path (default ~/.config/karu/karu.log)")
	flags.Int64Var(&maxPreviewMB, "max-preview-mb", cfg.MaxPreviewBytes/(1024*1024), "largest file to preview, in MiB")
	flags.DurationVar(&cfg.SeekStep, "seek-step", cfg.SeekStep, "audio seek step")
	flags.DurationVar(&cfg.TickInterval, "tick", cfg.TickInterval, "playback refresh interval")

	return cmd
}

// openLog starts file logging and flushes the configuration warnings that
// were collected before the log existed.
func openLog(cfg *config.Config) {
	if err := logger.Init(cfg.LogPath); err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
		logger.Disable()
	}
	logger.SetDebug(cfg.Debug)

	// Flags may have pushed values out of range after Load validated them
	cfg.Validate()
	cfg.LogWarnings()
}

func run(cfg *config.Config, dir string) error {
	openLog(cfg)
	defer logger.Close()

	home, err := os.UserHomeDir()
	if err != nil {
		logger.Warn("cannot resolve home directory: %v", err)
	}

	var player playback.Player
	if backend, ok := playback.DetectBackend(); ok {
		logger.Info("audio backend: %s", backend.Name)
		player = playback.NewProcessPlayer(backend)
	} else {
		logger.Info("no audio backend found, playback disabled")
	}

	b, err := browser.New(browser.Options{
		Path:       dir,
		Home:       home,
		ShowHidden: cfg.ShowHidden,
		Player:     player,
		SeekStep:   cfg.SeekStep,
	})
	if err != nil {
		return err
	}

	logger.Info("karu %s started in %s", version, b.Path)
	start := time.Now()

	p := tea.NewProgram(newModel(b, cfg), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logger.Error("program exited with error: %v", err)
		return err
	}

	logger.Info("karu exited after %s", time.Since(start).Round(time.Second))
	return nil
}
