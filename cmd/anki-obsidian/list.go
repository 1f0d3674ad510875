// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/anki-obsidian/internal/convert"
	"github.com/pdiddy/anki-obsidian/internal/export"
	"github.com/pdiddy/anki-obsidian/pkg/types"
)

var listCmd = &cobra.Command{
	Use:   "list FILE",
	Short: "List the notes of a deck without converting them",
	Long: `List prints the id, title and tags of every note in a deck archive,
along with the file name the note would be exported to. Nothing is written
to the export directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

// listEntry is one note as printed by list --json.
type listEntry struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	Tags     []string `json:"tags"`
	FileName string   `json:"file_name,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	notes, err := convert.ReadDeck(cmd.Context(), args[0], cfg.ScratchDir, newLogger(cfg.LogLevel))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatListOutput(os.Stdout, notes, jsonOutput)
}

func formatListOutput(w io.Writer, notes []types.Note, jsonOutput bool) error {
	entries := make([]listEntry, len(notes))
	for i, n := range notes {
		entries[i] = listEntry{ID: n.ID, Title: n.Title, Tags: n.TagList()}
		if name, err := export.FileName(n.Title); err == nil {
			entries[i].FileName = name
		}
	}

	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No notes found.")
		return nil
	}

	fmt.Fprintf(w, "%-14s  %-40s  %s\n", "ID", "Title", "Tags")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, e := range entries {
		title := e.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		fmt.Fprintf(w, "%-14d  %-40s  %s\n", e.ID, title, strings.Join(e.Tags, " "))
	}
	fmt.Fprintf(w, "\n%d notes\n", len(entries))
	return nil
}

func init() {
	listCmd.Flags().Bool("json", false, "print notes as JSON")
	rootCmd.AddCommand(listCmd)
}
