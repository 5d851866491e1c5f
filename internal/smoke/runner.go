package smoke

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/thebeat/pipeline/internal/domain/model"
	"github.com/thebeat/pipeline/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete smoke pass against a running service.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting pipeline smoke run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("leads", config.NumLeads),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate leads
	leads, err := generateLeads(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("lead generation failed: %w", err)
	}

	// Step 3: Submit leads concurrently
	submitted, err := submitLeads(ctx, config, leads, stats)
	if err != nil {
		return fmt.Errorf("lead submission failed: %w", err)
	}

	// Step 4: Let the store settle
	logger.Get().Info(ctx, "waiting for the store to settle")
	time.Sleep(SettleDelay)

	// Step 5: Read back the stored collection
	stored, err := fetchLeads(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("lead retrieval failed: %w", err)
	}

	// Step 6: Verify storage, export and ROI
	if err := verifyResults(ctx, config, submitted, stored, stats); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	// Step 7: Save generated leads to file
	if err := saveLeadsToFile(ctx, config, leads); err != nil {
		logger.Get().Warn(ctx, "failed to save leads to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "smoke run completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveLeadsToFile saves the generated leads to a JSON file.
func saveLeadsToFile(ctx context.Context, config *Config, leads []model.Lead) error {
	if len(leads) == 0 {
		return fmt.Errorf("no leads to save")
	}

	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "generated_leads_" + timestamp + ".json"
	}

	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(leads); err != nil {
		return fmt.Errorf("failed to encode leads: %w", err)
	}

	logger.Get().Info(ctx, "leads saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final run statistics.
func displayFinalStats(stats *Stats) {
	var successRate, leadsPerSecond float64

	if stats.LeadsSubmitted > 0 {
		successRate = float64(stats.LeadsSuccessful) / float64(stats.LeadsSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		leadsPerSecond = float64(stats.LeadsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("leadsGenerated", stats.LeadsGenerated),
		logger.Int("leadsSubmitted", stats.LeadsSubmitted),
		logger.Int("leadsSuccessful", stats.LeadsSuccessful),
		logger.Int("leadsFailed", stats.LeadsFailed),
		logger.Int("leadsStored", stats.LeadsStored),
		logger.Int("exportRows", stats.ExportRows),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("leadsPerSecond", leadsPerSecond))
}
