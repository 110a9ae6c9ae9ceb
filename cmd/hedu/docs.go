package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/bamsammich/hedu/internal/config"
)

func newDocsCmd() *cobra.Command {
	docsCmd := &cobra.Command{
		Use:    "gen-docs",
		Short:  "Generate documentation for hedu",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE:   runGenDocs,
	}
	docsCmd.Flags().String("dir", "docs", "output directory")
	docsCmd.Flags().String("format", "man", "output format (man or markdown)")
	return docsCmd
}

func runGenDocs(cmd *cobra.Command, _ []string) error {
	dir, _ := cmd.Flags().GetString("dir")       //nolint:errcheck // flag name is hardcoded
	format, _ := cmd.Flags().GetString("format") //nolint:errcheck // flag name is hardcoded

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	root := cmd.Root()
	long := root.Long
	root.Long += configSection()
	defer func() { root.Long = long }()

	switch format {
	case "man":
		date, err := manDate()
		if err != nil {
			return err
		}
		header := &doc.GenManHeader{
			Title:   "HEDU",
			Section: "1",
			Date:    &date,
			Source:  "hedu " + version,
			Manual:  "hedu manual",
		}
		return doc.GenManTree(root, header, dir)
	case "markdown":
		return doc.GenMarkdownTree(root, dir)
	default:
		return fmt.Errorf("unknown format %q (use man or markdown)", format)
	}
}

// configSection describes the config file for the generated pages.
func configSection() string {
	var b strings.Builder
	b.WriteString("\n\nKeys accepted in $XDG_CONFIG_HOME/hedu/config.toml:\n\n")
	for _, key := range config.Keys() {
		b.WriteString("    " + key + "\n")
	}
	b.WriteString("\nSizes in defaults.limit accept the same forms as --limit. Theme values are\nlipgloss colors such as \"#89b4fa\" or \"12\".")
	return b.String()
}

// manDate honors SOURCE_DATE_EPOCH so packaged man pages are reproducible.
func manDate() (time.Time, error) {
	epoch := os.Getenv("SOURCE_DATE_EPOCH")
	if epoch == "" {
		return time.Now(), nil
	}
	sec, err := strconv.ParseInt(epoch, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid SOURCE_DATE_EPOCH %q: %w", epoch, err)
	}
	return time.Unix(sec, 0).UTC(), nil
}
