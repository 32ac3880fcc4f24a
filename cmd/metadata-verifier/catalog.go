// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/metadata-verifier/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the offline concept snapshot (import, search, export)",
	Long: `Catalog manages a local SQLite snapshot of catalog concepts built from
concept export files. With registry.snapshot.enabled the snapshot is queried
as one more registry source.`,
}

// --- import subcommand ---

var catalogImportCmd = &cobra.Command{
	Use:   "import <file-or-dir>...",
	Short: "Import concept export files into the snapshot",
	Long: `Import reads JSON or YAML concept exports and stores their concepts with
FTS5 name indexing. Files unchanged since their last import are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCatalogImport,
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	var total catalog.ImportSummary
	for _, path := range args {
		s, err := store.Import(cmd.Context(), path)
		if err != nil {
			return err
		}
		total.Imported += s.Imported
		total.Updated += s.Updated
		total.Skipped += s.Skipped
		total.Failed += s.Failed
		total.Concepts += s.Concepts
	}

	fmt.Printf("Files: %d imported, %d updated, %d unchanged, %d failed (%d concepts)\n",
		total.Imported, total.Updated, total.Skipped, total.Failed, total.Concepts)
	if total.Failed > 0 {
		return fmt.Errorf("%d file(s) failed to import", total.Failed)
	}
	return nil
}

// --- search subcommand ---

var catalogSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the snapshot by concept name",
	Long: `Search runs an FTS5 query over concept names and synonyms, optionally
filtered by class and datatype.`,
	RunE: runCatalogSearch,
}

func runCatalogSearch(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := catalogQueryFromFlags(cmd, args)
	if opts.Query == "" && opts.Class == "" && opts.Datatype == "" {
		return fmt.Errorf("query or filter required: provide a search query, --class, or --datatype")
	}

	results, err := store.Search(cmd.Context(), opts)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No concepts found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-40s  %-12s  %s\n", "ID", "Display", "Class", "Datatype")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 104))
	for _, c := range results {
		display := c.Display
		if len(display) > 40 {
			display = display[:37] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-36s  %-40s  %-12s  %s\n", c.ID, display, c.Class, c.Datatype)
	}
	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the snapshot to YAML or JSON",
	Long: `Export writes the snapshot (or a filtered subset) to stdout or to the
file named by --output.`,
	RunE: runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	w := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		defer f.Close()
		w = f
	}

	if err := store.Export(cmd.Context(), w, format, catalogQueryFromFlags(cmd, args)); err != nil {
		return err
	}
	if output != "" {
		logger.Info().Str("file", output).Msg("Exported catalog")
	}
	return nil
}

// --- shared helpers ---

func openCatalog(cmd *cobra.Command) (*catalog.Store, error) {
	cfg := appConfig.Catalog
	if dir, _ := cmd.Flags().GetString("catalog-dir"); dir != "" {
		cfg.Dir = dir
	}
	return catalog.NewStore(cfg, &logger)
}

func catalogQueryFromFlags(cmd *cobra.Command, args []string) catalog.QueryOptions {
	query, _ := cmd.Flags().GetString("query")
	if query == "" && len(args) > 0 {
		query = strings.Join(args, " ")
	}
	class, _ := cmd.Flags().GetString("class")
	datatype, _ := cmd.Flags().GetString("datatype")
	limit, _ := cmd.Flags().GetInt("limit")

	return catalog.QueryOptions{
		Query:      query,
		Class:      class,
		Datatype:   datatype,
		MaxResults: limit,
	}
}

func init() {
	catalogCmd.PersistentFlags().String("catalog-dir", "", "snapshot directory (overrides catalog.dir)")

	for _, c := range []*cobra.Command{catalogSearchCmd, catalogExportCmd} {
		c.Flags().String("query", "", "full-text search query")
		c.Flags().String("class", "", "filter by concept class")
		c.Flags().String("datatype", "", "filter by datatype")
	}
	catalogSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use catalog.max_results)")
	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	catalogExportCmd.Flags().String("output", "", "write to this file instead of stdout")

	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogSearchCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
