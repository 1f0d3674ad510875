// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/anki-obsidian/internal/convert"
	"github.com/pdiddy/anki-obsidian/internal/export"
	"github.com/pdiddy/anki-obsidian/internal/markup"
	"github.com/pdiddy/anki-obsidian/pkg/types"
)

func init() {
	rootCmd.Flags().String("report", "", "write a run report to this path (.json for JSON, YAML otherwise)")
	if err := viper.BindPFlag("report", rootCmd.Flags().Lookup("report")); err != nil {
		panic(err)
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg.LogLevel)

	conv := convert.New(
		markup.NewPipeline(),
		export.NewWriter(afero.NewOsFs(), cfg.ExportDir),
		cfg.ScratchDir,
		log,
	)
	log.Debug().Str("export_dir", cfg.ExportDir).Str("scratch_dir", cfg.ScratchDir).Int("decks", len(args)).Msg("starting")

	run := conv.ConvertBatch(cmd.Context(), args, os.Stdout)

	if cfg.ReportPath != "" {
		if err := convert.WriteReport(cfg.ReportPath, convert.NewReport(run, cfg.ExportDir, time.Now())); err != nil {
			log.Error().Err(err).Str("path", cfg.ReportPath).Msg("report not written")
		}
	}

	if run.HasFailures() {
		return fmt.Errorf("%d deck(s) and %d note(s) failed",
			run.DeckCount(types.StatusFailed), run.Notes.Failed)
	}
	return nil
}
