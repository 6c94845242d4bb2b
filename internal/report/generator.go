// Package report renders analysis results to JSON or YAML for files and
// stdout.
package report

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"fjacquet/ledger-insights/internal/fileutils"
	"fjacquet/ledger-insights/internal/logging"
	"fjacquet/ledger-insights/internal/validation"
)

// Generator renders analysis payloads in a configured format.
type Generator struct {
	log logging.Logger
}

// NewGenerator creates a report generator.
func NewGenerator(logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Generator{
		log: logger.WithField("component", "ReportGenerator"),
	}
}

// Render serializes the payload in the given format ("json" or "yaml").
// The payload is any of the analysis result types: the full insights
// report, a forecast, or a plain insight list.
func (g *Generator) Render(payload interface{}, format string) ([]byte, error) {
	if err := validation.IsValidOutputFormat(format); err != nil {
		return nil, err
	}
	switch format {
	case "yaml":
		return g.renderYAML(payload)
	default:
		return g.renderJSON(payload)
	}
}

// WriteToFile renders the payload and writes it to path, creating parent
// directories as needed.
func (g *Generator) WriteToFile(payload interface{}, format, path string) error {
	data, err := g.Render(payload, format)
	if err != nil {
		return err
	}
	if err := fileutils.WriteFile(path, data, 0600); err != nil {
		g.log.WithError(err).Error("Failed to write report file",
			logging.Field{Key: logging.FieldFile, Value: path})
		return err
	}
	g.log.Info("Report written",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldFormat, Value: format})
	return nil
}

func (g *Generator) renderJSON(payload interface{}) ([]byte, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		g.log.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return data, nil
}

func (g *Generator) renderYAML(payload interface{}) ([]byte, error) {
	data, err := yaml.Marshal(payload)
	if err != nil {
		g.log.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return data, nil
}
