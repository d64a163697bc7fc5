package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	dv "github.com/definexml/validator"
	"github.com/definexml/validator/schema"
)

type downloadFlagValues struct {
	version   string
	outputDir string
}

var downloadFlags downloadFlagValues

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download a define.xml XSD schema",
	Long: `Download fetches the official CDISC XSD for a define.xml version and
stores it in the local schema cache, or in --output-dir when given.
The downloaded file's SHA-256 is printed so it can be pinned.`,
	Args: cobra.NoArgs,
	RunE: runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringVar(&downloadFlags.version, "version", "2.1", "define.xml version to fetch (2.0 or 2.1)")
	downloadCmd.Flags().StringVar(&downloadFlags.outputDir, "output-dir", "", "Directory to store the schema (default: cache)")
}

func runDownload(cmd *cobra.Command, args []string) error {
	if !supportedVersion(downloadFlags.version) {
		return fmt.Errorf("unsupported define.xml version %q (supported: %v)",
			downloadFlags.version, dv.SupportedDefineVersions)
	}

	manager := schema.NewManager(defaultCacheDir())

	outputDir := downloadFlags.outputDir
	if outputDir == "" {
		outputDir = manager.CacheDir()
	}

	path, err := manager.Download(downloadFlags.version, outputDir)
	if err != nil {
		return fmt.Errorf("download schema %s: %w", downloadFlags.version, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Downloaded define.xml %s schema to %s\n", downloadFlags.version, path)
	return nil
}

// defaultCacheDir is where downloaded schemas live between runs.
func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "define-validator", "schemas")
	}
	return filepath.Join(os.TempDir(), "define-validator-schemas")
}

func supportedVersion(v string) bool {
	for _, s := range dv.SupportedDefineVersions {
		if v == s {
			return true
		}
	}
	return false
}
