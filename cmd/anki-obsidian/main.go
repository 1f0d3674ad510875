// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the anki-obsidian CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd converts the decks named on the command line.
var rootCmd = &cobra.Command{
	Use:   "anki-obsidian [flags] [FILE]...",
	Short: "Convert Anki decks into Obsidian Markdown notes",
	Long: `anki-obsidian reads Anki deck archives (.apkg) and writes one Markdown
note per Anki note into the export directory. Cloze deletions are resolved to
their answers, MathJax inline math becomes $...$, and each note ends with its
Anki tags as #tags.

A deck that cannot be read is reported and skipped; the remaining decks are
still converted. The exit status is non-zero if any deck or note failed.`,
	Args:          cobra.ArbitraryArgs,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./anki-obsidian.yaml or ~/.config/anki-obsidian/anki-obsidian.yaml)")
	pf.String("export-dir", defaultExportDir(), "directory the Markdown notes are written to")
	pf.String("scratch-dir", "tmp", "directory decks are extracted to while converting")
	pf.String("log-level", "info", "log level: trace, debug, info, warn, error, disabled")

	for key, flag := range map[string]string{
		"export_dir":  "export-dir",
		"scratch_dir": "scratch-dir",
		"log_level":   "log-level",
	} {
		if err := viper.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("anki-obsidian")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "anki-obsidian"))
		}
	}

	viper.SetEnvPrefix("ANKI_OBSIDIAN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// defaultExportDir is "export" next to the executable, or in the working
// directory when the executable cannot be located.
func defaultExportDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "export"
	}
	return filepath.Join(filepath.Dir(exe), "export")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
