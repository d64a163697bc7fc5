package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	dv "github.com/definexml/validator"
	"github.com/definexml/validator/schema"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show supported versions, layers, and cached schemas",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "define-validator %s\n\n", dv.Version)
	fmt.Fprintf(out, "Supported define.xml versions: %s\n", strings.Join(dv.SupportedDefineVersions, ", "))
	fmt.Fprintf(out, "Validation layers (in order):  %s\n", layerNames())

	manager := schema.NewManager(defaultCacheDir())
	cached, err := manager.ListCached()
	if err != nil {
		return fmt.Errorf("list schema cache: %w", err)
	}
	if len(cached) == 0 {
		fmt.Fprintf(out, "Schema cache (%s): empty\n", manager.CacheDir())
		return nil
	}
	fmt.Fprintf(out, "Schema cache (%s):\n", manager.CacheDir())
	for _, name := range cached {
		fmt.Fprintf(out, "  %s\n", name)
	}
	return nil
}
