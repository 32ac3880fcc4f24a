// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/metadata-verifier/internal/reconcile"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <uuid>",
	Short: "Verify a single identifier and explain the verdict",
	Long: `Lookup reconciles one identifier against the sources of the selected mode
and prints the verdict explanation. Pass --datatype to also check the
expected datatype.`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

func runLookup(cmd *cobra.Command, args []string) error {
	expected, _ := cmd.Flags().GetString("datatype")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	mode, cfg, err := modeConfig(cmd)
	if err != nil {
		return err
	}

	engine, cleanup, err := newEngine(cfg, &logger)
	if err != nil {
		return err
	}
	defer cleanup()

	v, ok, err := engine.Verify(cmd.Context(), args[0], expected, mode)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%q is not a well-formed identifier", args[0])
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	fmt.Println(v.Explanation)
	if expected != "" && !v.IsNotFoundIndicator {
		fmt.Println()
		fmt.Println(reconcile.DatatypeVerdict(v, expected).Explanation)
	}
	return nil
}

func init() {
	addModeFlags(lookupCmd)
	lookupCmd.Flags().String("datatype", "", "expected datatype to check against the sources")
	lookupCmd.Flags().Bool("json", false, "output the verdict as JSON")

	rootCmd.AddCommand(lookupCmd)
}
