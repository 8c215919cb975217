package main

// FTL profile and saved game editor
//
// example usage:
//
// ftledit info continue.sav
// ftledit dump ae_prof.sav --format yaml
// ftledit verify continue.sav
// ftledit get continue.sav scrap
// ftledit set continue.sav scrap 9999
// ftledit set continue.sav "ship name" Filthy
// ftledit set continue.sav systems shields:8
// ftledit set ae_prof.sav unlocks stealth:A+C
// ftledit set ae_prof.sav achievements "best of:hard"
// ftledit watch
//
// Save files are looked for in the save directory (--dir, or dir in ftledit.ini, or
// the working directory) unless given with an absolute path.

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ftledit/config"
	"ftledit/logging"
)

// app is what every command gets once the root command has read its settings.
type app struct {
	flags      config.Config
	configFile string

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "ftledit",
		Short: "FTL profile and saved game editor",
		Long: `ftledit reads, checks and edits FTL: Faster Than Light save files:
prof.sav and ae_prof.sav (profiles), and continue.sav (a game in progress).

Saved games only store a ship's blueprint id.  Room and door layouts come from a
blueprint data directory holding blueprints.yaml and the game's layout .txt files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configFile)
			if err != nil {
				return err
			}
			if err := cfg.Merge(a.flags); err != nil {
				return err
			}
			a.cfg = cfg

			log, err := logging.New(cfg.LogLevel, cfg.LogFile)
			if err != nil {
				return err
			}
			a.log = log
			a.log.Debug("settings", zap.String("dir", cfg.Dir), zap.String("data", cfg.Data))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.log.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "ini file (default ./"+config.FileName+")")
	pf.StringVar(&a.flags.Dir, "dir", "", "save directory")
	pf.StringVar(&a.flags.Data, "data", "", "blueprint data directory (default: the save directory)")
	pf.StringVar(&a.flags.LogFile, "log-file", "", "log to this file instead of the console")
	pf.StringVar(&a.flags.LogLevel, "log-level", "", "debug, info, warn or error (default info)")

	root.AddCommand(
		newInfoCmd(a),
		newDumpCmd(a),
		newVerifyCmd(a),
		newGetCmd(a),
		newSetCmd(a),
		newWatchCmd(a),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
