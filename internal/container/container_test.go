package container

import (
	"testing"

	"fjacquet/ledger-insights/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Report.Format = "json"
	cfg.Analysis.MinTransactions = 5
	cfg.Analysis.Trends.ThresholdPercent = 15.0
	cfg.Analysis.Trends.VolumeThresholdPercent = 20.0
	cfg.Analysis.Anomalies.ExpenseSpikeZ = 2.0
	cfg.Analysis.Anomalies.RevenueDropZ = -2.0
	cfg.Analysis.Anomalies.LargeTransactionZ = 3.0
	cfg.Analysis.Forecast.SmoothingAlpha = 0.3
	cfg.Analysis.Forecast.DepletionDays = 14.0
	return cfg
}

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name        string
		config      *config.Config
		expectError bool
		errorMsg    string
	}{
		{
			name:        "nil config",
			config:      nil,
			expectError: true,
			errorMsg:    "configuration cannot be nil",
		},
		{
			name:        "valid config",
			config:      validConfig(),
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewContainer(tt.config)

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, c)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, c)
			assert.NotNil(t, c.GetLogger())
			assert.NotNil(t, c.GetAggregator())
			assert.NotNil(t, c.GetTrendAnalyzer())
			assert.NotNil(t, c.GetDetector())
			assert.NotNil(t, c.GetForecaster())
			assert.NotNil(t, c.GetRecommender())
			assert.NotNil(t, c.GetReportGenerator())
			assert.Same(t, tt.config, c.GetConfig())
		})
	}
}

func TestContainerClose(t *testing.T) {
	c, err := NewContainer(validConfig())
	require.NoError(t, err)
	assert.NoError(t, c.Close())
}
