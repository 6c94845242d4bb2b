// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"time"

	"fjacquet/ledger-insights/internal/config"
	"fjacquet/ledger-insights/internal/container"
	"fjacquet/ledger-insights/internal/dateutils"
	"fjacquet/ledger-insights/internal/ledger"
	"fjacquet/ledger-insights/internal/models"
	"fjacquet/ledger-insights/internal/validation"

	"github.com/sirupsen/logrus"
)

// defaultPeriodDays is the trailing window used when no start date is given.
const defaultPeriodDays = 30

// Setup loads the configuration and wires the application container.
// The format flag, when set, overrides the configured report format.
func Setup(formatFlag string, log *logrus.Logger) *container.Container {
	cfg, err := config.InitializeConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	if formatFlag != "" {
		if err := validation.IsValidOutputFormat(formatFlag); err != nil {
			log.Fatalf("Invalid report format: %v", err)
		}
		cfg.Report.Format = formatFlag
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		log.Fatalf("Error initializing application: %v", err)
	}
	return c
}

// LoadData validates the ledger directory and loads the company data from it.
func LoadData(dir string, log *logrus.Logger) *models.CompanyData {
	if err := validation.IsValidDataDir(dir); err != nil {
		log.Fatalf("Invalid ledger directory: %v", err)
	}

	data, err := ledger.Load(dir)
	if err != nil {
		log.Fatalf("Error loading ledger data: %v", err)
	}
	return data
}

// ResolvePeriod turns the from/to flags into an analysis period.
// An empty end date means today; an empty start date means the trailing
// 30 days before the end date.
func ResolvePeriod(from, to string) (models.DateRange, error) {
	end := time.Now().UTC()
	if to != "" {
		parsed, _, err := dateutils.ParseDate(to)
		if err != nil {
			return models.DateRange{}, fmt.Errorf("invalid end date %q: %w", to, err)
		}
		end = parsed
	}

	start := end.AddDate(0, 0, -defaultPeriodDays)
	if from != "" {
		parsed, _, err := dateutils.ParseDate(from)
		if err != nil {
			return models.DateRange{}, fmt.Errorf("invalid start date %q: %w", from, err)
		}
		start = parsed
	}

	period := models.NewDateRange(start, end)
	if err := period.Validate(); err != nil {
		return models.DateRange{}, err
	}
	return period, nil
}

// EmitReport renders the payload in the configured format and writes it to
// the output file, or to stdout when no output file was requested.
func EmitReport(c *container.Container, payload interface{}, output string, log *logrus.Logger) {
	gen := c.GetReportGenerator()
	format := c.GetConfig().Report.Format

	if output == "" {
		rendered, err := gen.Render(payload, format)
		if err != nil {
			log.Fatalf("Error rendering report: %v", err)
		}
		fmt.Println(string(rendered))
		return
	}

	if err := gen.WriteToFile(payload, format, output); err != nil {
		log.Fatalf("Error writing report: %v", err)
	}
	log.WithField("file", output).Info("Report written")
}
