package main

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"ftledit/blueprints"
	"ftledit/codec"
	"ftledit/watcher"
)

var errNotIdentical = errors.New("re-encoded file is not identical to the original")

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Show what sort of save file this is",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.resolve(args[0])
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			kind, version, err := codec.DetectFile(path, data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %s, format %d, %d bytes\n", path, kind, version, len(data))
			if kind == codec.KindProfile {
				f, _ := codec.ProfileFeaturesFor(version)
				fmt.Fprintf(out, "features: %+v\n", f)
				fmt.Fprintf(out, "supported profile formats: %v\n", codec.SupportedProfileVersions())
			} else {
				f, _ := codec.SavedGameFeaturesFor(version)
				fmt.Fprintf(out, "features: %+v\n", f)
				fmt.Fprintf(out, "supported saved game formats: %v\n", codec.SupportedSavedGameVersions())
			}
			return nil
		},
	}
}

func newDumpCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print everything in a save file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.load(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			switch format {
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(d.value()); err != nil {
					return err
				}
				return enc.Close()

			case "text":
				table := ettablesFor(d.kind)
				for _, what := range slices.Sorted(maps.Keys(table)) {
					str, err := table[what].get(d)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, what+":")
					fmt.Fprintln(out, str)
				}
				mystery := d.mystery()
				fmt.Fprintf(out, "unexplained bytes: %d spans\n", len(mystery))
				for _, m := range mystery {
					fmt.Fprintln(out, "  "+m.String())
				}
				return nil
			}
			return fmt.Errorf("unknown format %q, expected text or yaml", format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "text or yaml")
	return cmd
}

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <file>",
		Short: "Check that a file decodes and re-encodes to the same bytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.resolve(args[0])
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			kind, _, err := codec.DetectFile(path, data)
			if err != nil {
				return err
			}

			var fidelity codec.Fidelity
			if kind == codec.KindProfile {
				_, fidelity, err = codec.VerifyProfile(data)
			} else {
				var catalog *blueprints.Catalog
				catalog, err = a.catalog()
				if err != nil {
					return err
				}
				_, fidelity, err = codec.VerifySavedGame(data, catalog)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", path, fidelity)
			if !fidelity.Identical {
				return fmt.Errorf("%s: %w", path, errNotIdentical)
			}
			return nil
		},
	}
}

func newWatchCmd(a *app) *cobra.Command {
	var settle time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Check save files whenever the game writes them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := a.catalog()
			if err != nil {
				// Profiles can still be checked
				a.log.Warn("no blueprint data, saved games will fail to decode", zap.Error(err))
				catalog = blueprints.New()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := watcher.New(a.cfg.Dir, catalog, a.log, settle)
			reports := make(chan *watcher.Report, 16)
			if err := w.Start(reports); err != nil {
				return err
			}
			defer w.Stop()

			out := cmd.OutOrStdout()
			for {
				select {
				case r := <-reports:
					if r.Err != nil {
						fmt.Fprintf(out, "%s: %v\n", r.File, r.Err)
						continue
					}
					fmt.Fprintf(out, "%s: %s v%d, %s, %s\n", r.File, r.Kind, r.Version, r.Summary, r.Fidelity)
				case <-ctx.Done():
					return nil
				}
			}
		},
	}
	cmd.Flags().DurationVar(&settle, "settle", 2*time.Second, "how long to let the game finish writing before reading")
	return cmd
}
