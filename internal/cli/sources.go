package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/ppiankov/satya/internal/sources"
	"github.com/spf13/cobra"
)

var sourcesJSON bool

// sourcesCmd represents the sources command
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the trusted source registry",
	Long: `List the outlets the reasoning engine may recommend for cross-checking.

The built-in list can be replaced with a trusted_sources section in the
config file.`,
	Args: cobra.NoArgs,
	RunE: runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)

	sourcesCmd.Flags().BoolVar(&sourcesJSON, "json", false, "print the registry as JSON")
}

func runSources(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	registry := sources.Default()
	if len(cfg.TrustedSources) > 0 {
		if registry, err = sources.NewRegistry(cfg.TrustedSources); err != nil {
			return fmt.Errorf("trusted sources: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	if sourcesJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(registry.All())
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tHOMEPAGE")
	for _, src := range registry.All() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", src.Name, src.Kind, src.Homepage)
	}
	return tw.Flush()
}
