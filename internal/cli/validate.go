package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	dv "github.com/definexml/validator"
	"github.com/definexml/validator/audit"
	"github.com/definexml/validator/config"
	"github.com/definexml/validator/document"
	"github.com/definexml/validator/engine"
	"github.com/definexml/validator/report"
	"github.com/definexml/validator/schema"
)

type validateFlagValues struct {
	schemaPath string
	configPath string
	output     string
	format     string
	layers     []string
	strict     bool
	parallel   bool
	noColor    bool
}

var validateFlags validateFlagValues

var validateCmd = &cobra.Command{
	Use:   "validate <define.xml>",
	Short: "Validate a define.xml file",
	Long: `Validate runs every enabled validation layer against the given
define.xml file and prints a report.

The schema layer needs an XSD; pass one with --schema or fetch one first
with "define-validator download". Without --schema the rule layers still
run against the parsed document.

Examples:
  # Validate with rule layers only
  define-validator validate define.xml

  # Include schema conformance
  define-validator validate define.xml --schema define2-1-0.xsd

  # Machine-readable output for a pipeline
  define-validator validate define.xml --format json --output report.json

  # Only the layers you care about
  define-validator validate define.xml --layers business,terminology`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFlags.schemaPath, "schema", "", "Path to the define.xml XSD for schema conformance")
	validateCmd.Flags().StringVarP(&validateFlags.configPath, "config", "c", "", "Path to a YAML or JSON config file")
	validateCmd.Flags().StringVarP(&validateFlags.output, "output", "o", "", "Write the report to this file instead of stdout")
	validateCmd.Flags().StringVarP(&validateFlags.format, "format", "f", "text", "Report format: text, json, or html")
	validateCmd.Flags().StringSliceVar(&validateFlags.layers, "layers", nil, "Comma-separated layers to run (default: all)")
	validateCmd.Flags().BoolVar(&validateFlags.strict, "strict", false, "Treat WARNING as failure")
	validateCmd.Flags().BoolVar(&validateFlags.parallel, "parallel", false, "Run independent layers in parallel")
	validateCmd.Flags().BoolVar(&validateFlags.noColor, "no-color", false, "Disable colored text output")
}

func runValidate(cmd *cobra.Command, args []string) error {
	definePath := args[0]

	format, err := report.ParseFormat(validateFlags.format)
	if err != nil {
		return err
	}

	var programmatic []dv.Option
	if len(validateFlags.layers) > 0 {
		layers, err := parseLayers(validateFlags.layers)
		if err != nil {
			return err
		}
		programmatic = append(programmatic, dv.WithLayers(layers...))
	}
	if validateFlags.parallel {
		programmatic = append(programmatic, dv.WithParallelLayers(true))
	}

	options, err := config.Resolve(validateFlags.configPath, programmatic...)
	if err != nil {
		return err
	}

	validator := engine.NewWithOptions(options)
	if validateFlags.schemaPath != "" {
		checker, err := schema.NewChecker(validateFlags.schemaPath)
		if err != nil {
			return fmt.Errorf("load schema: %w", err)
		}
		validator.SetSchemaChecker(checker)
	}

	trail, err := audit.NewTrail(definePath)
	if err != nil {
		return &inputError{err: err}
	}

	verdict, err := validator.ValidateFile(cmd.Context(), definePath)
	if err != nil {
		var parseErr *document.ParseError
		if errors.As(err, &parseErr) {
			return &inputError{err: err}
		}
		if errors.Is(err, fs.ErrNotExist) {
			return &inputError{err: err}
		}
		return err
	}

	for _, id := range verdict.LayerOrder {
		result := verdict.Layers[id]
		if result == nil {
			continue
		}
		trail.Log(string(id), string(result.Status), fmt.Sprintf("%d findings", len(result.Findings)))
	}

	if err := writeReport(format, &audit.Record{Trail: trail, Verdict: verdict}); err != nil {
		return err
	}

	if !verdict.Passed() {
		return errValidationFailed
	}
	if validateFlags.strict && verdict.Overall != dv.StatusPass {
		return errValidationFailed
	}
	return nil
}

func writeReport(format report.Format, rec *audit.Record) error {
	if validateFlags.output != "" {
		f, err := os.Create(validateFlags.output)
		if err != nil {
			return fmt.Errorf("create report file: %w", err)
		}
		defer f.Close()
		return report.Render(f, format, rec)
	}

	if format == report.FormatText {
		renderer := report.TextRenderer{Color: !validateFlags.noColor}
		return renderer.Render(os.Stdout, rec)
	}
	return report.Render(os.Stdout, format, rec)
}

func parseLayers(raw []string) ([]dv.LayerID, error) {
	var layers []dv.LayerID
	for _, name := range raw {
		name = strings.TrimSpace(name)
		id := dv.LayerID(name)
		if !validLayer(id) {
			return nil, fmt.Errorf("unknown layer %q (want one of %s)", name, layerNames())
		}
		layers = append(layers, id)
	}
	return layers, nil
}

func validLayer(id dv.LayerID) bool {
	for _, known := range dv.LayerOrder {
		if id == known {
			return true
		}
	}
	return false
}

func layerNames() string {
	names := make([]string, len(dv.LayerOrder))
	for i, id := range dv.LayerOrder {
		names[i] = string(id)
	}
	return strings.Join(names, ", ")
}
