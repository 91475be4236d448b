package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubpage/internal/render"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Re-render the HTML fragment from the cached JSON snapshot",
	Long: `Render rebuilds publications.html from an existing publications.json
without touching the network. Useful after changing rendering options or
recovering a lost fragment from the committed snapshot.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("out-dir", "public", "directory holding the artifacts")
	renderCmd.Flags().String("json-file", "publications.json", "JSON snapshot filename")
	renderCmd.Flags().String("html-file", "publications.html", "HTML fragment filename")
	renderCmd.Flags().Int("max-authors", 6, "author names rendered per HTML entry (0 = all)")
	renderCmd.Flags().Bool("flat", false, "render one flat list instead of year sections")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	outDir, _ := flags.GetString("out-dir")
	jsonFile, _ := flags.GetString("json-file")
	htmlFile, _ := flags.GetString("html-file")
	maxAuthors, _ := flags.GetInt("max-authors")
	flat, _ := flags.GetBool("flat")

	pubs, err := render.ReadJSON(filepath.Join(outDir, jsonFile))
	if err != nil {
		return err
	}

	htmlPath := filepath.Join(outDir, htmlFile)
	opts := render.HTMLOptions{MaxAuthors: maxAuthors, GroupByYear: !flat}
	if err := render.WriteHTML(pubs, opts, htmlPath); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d records)\n", htmlPath, len(pubs))
	return nil
}
