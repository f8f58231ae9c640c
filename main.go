/*
lizual runs the OpenGL testbed scenes on top of the engine package.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/lizual/lizual/engine"
	"github.com/lizual/lizual/engine/config"
	"github.com/lizual/lizual/engine/core"
	"github.com/lizual/lizual/testbed"
)

type runFlags struct {
	configPath       string
	legacyConfigPath string
	scene            string
	logLevel         string
	watch            bool
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "lizual",
		Short:        "OpenGL learning playground",
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd(), newScenesCmd())
	return root
}

func newRunCmd() *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the window and run a scene",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), flags)
		},
	}
	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "lizual.toml", "TOML configuration file; missing files fall back to defaults")
	cmd.Flags().StringVar(&flags.legacyConfigPath, "legacy-config", "", "key=value configuration file applied on top of --config")
	cmd.Flags().StringVarP(&flags.scene, "scene", "s", "", "scene to start with, overrides the configuration")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "debug, info, warn, error or fatal, overrides the configuration")
	cmd.Flags().BoolVar(&flags.watch, "watch", true, "reload the configuration when the file changes")
	return cmd
}

func newScenesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenes",
		Short: "List the available scenes",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range testbed.Scenes() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}

// loadConfig builds the startup configuration from the files and flags. The
// returned loader applies the same flags to every reloaded configuration.
func loadConfig(fs afero.Fs, flags *runFlags) (*config.Config, config.LoaderFunc, string, error) {
	cfg := config.Default()
	var err error
	if _, statErr := fs.Stat(flags.configPath); statErr == nil {
		if cfg, err = config.Load(fs, flags.configPath); err != nil {
			return nil, nil, "", err
		}
	} else if flags.configPath != "lizual.toml" {
		return nil, nil, "", fmt.Errorf("config file %s: %w", flags.configPath, statErr)
	}

	watchPath := flags.configPath
	load := config.LoaderFunc(config.Load)
	if flags.legacyConfigPath != "" {
		base := *cfg
		if err := config.LoadKeyValue(fs, flags.legacyConfigPath, cfg); err != nil {
			return nil, nil, "", err
		}
		watchPath = flags.legacyConfigPath
		load = func(fs afero.Fs, path string) (*config.Config, error) {
			next := base
			if err := config.LoadKeyValue(fs, path, &next); err != nil {
				return nil, err
			}
			return &next, nil
		}
	}
	applyOverrides(cfg, flags)

	if _, err := fs.Stat(watchPath); err != nil {
		watchPath = ""
	}
	reload := func(fs afero.Fs, path string) (*config.Config, error) {
		next, err := load(fs, path)
		if err != nil {
			return nil, err
		}
		applyOverrides(next, flags)
		return next, nil
	}
	return cfg, reload, watchPath, nil
}

// applyOverrides writes the command line flags over a loaded configuration.
func applyOverrides(cfg *config.Config, flags *runFlags) {
	if flags.scene != "" {
		cfg.Render.Scene = flags.scene
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
}

func run(ctx context.Context, flags *runFlags) error {
	fs := afero.NewOsFs()
	cfg, load, watchPath, err := loadConfig(fs, flags)
	if err != nil {
		return err
	}
	if err := core.SetLogLevelFromString(cfg.Log.Level); err != nil {
		return err
	}

	tb, err := testbed.NewTestGame(cfg)
	if err != nil {
		return err
	}
	e, err := engine.New(tb.Game, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	if err := e.Initialize(); err != nil {
		return errors.Join(err, e.Shutdown())
	}
	if flags.watch && watchPath != "" {
		abs, err := filepath.Abs(watchPath)
		if err != nil {
			return errors.Join(err, e.Shutdown())
		}
		e.WatchConfig(abs, load)
	}

	runErr := e.Run(ctx)
	return errors.Join(runErr, e.Shutdown())
}
