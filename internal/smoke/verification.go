package smoke

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/thebeat/pipeline/internal/domain/model"
)

// exportHeaderPrefix is the expected start of the lead CSV header row.
const exportHeaderPrefix = "id,name,role,company"

// verifyResults checks that every submitted lead landed in the store and
// that the export and ROI views agree with the collection.
func verifyResults(ctx context.Context, config *Config, submitted []created, stored []model.Lead, stats *Stats) error {
	log.Println("🔍 Verifying results...")

	if len(submitted) == 0 {
		return fmt.Errorf("no submitted leads to verify")
	}

	byID := make(map[string]int, len(stored))
	for i, l := range stored {
		byID[l.ID] = i
	}

	missing := 0
	mismatched := 0
	for _, c := range submitted {
		idx, ok := byID[c.Assigned.ID]
		if !ok {
			missing++
			continue
		}
		got := stored[idx]
		if got.Name != c.Sent.Name || got.Company != c.Sent.Company || got.Email != c.Sent.Email {
			mismatched++
		}
	}

	if missing > 0 || mismatched > 0 {
		return fmt.Errorf("store verification failed: %d missing, %d mismatched of %d submitted",
			missing, mismatched, len(submitted))
	}
	log.Printf("✅ Store verified: %d/%d submitted leads present", len(submitted), len(submitted))

	// Export: header plus one row per stored lead.
	csvBody, err := fetchExport(ctx, config)
	if err != nil {
		return err
	}
	lines := strings.Split(strings.TrimRight(csvBody, "\n"), "\n")
	if len(lines) == 0 || !strings.HasPrefix(lines[0], exportHeaderPrefix) {
		return fmt.Errorf("unexpected export header: %q", firstLine(csvBody))
	}
	stats.ExportRows = len(lines) - 1
	if stats.ExportRows < len(submitted) {
		return fmt.Errorf("export has %d rows, expected at least %d", stats.ExportRows, len(submitted))
	}
	log.Printf("✅ Export verified: %d rows", stats.ExportRows)

	// ROI: the fold runs over the same snapshot, so counts can only grow
	// while the run is the sole writer.
	summary, err := fetchROI(ctx, config)
	if err != nil {
		return err
	}
	if summary.HoursSaved < 0 || summary.MoneySaved < 0 {
		return fmt.Errorf("roi summary is negative: hours=%d money=%d", summary.HoursSaved, summary.MoneySaved)
	}
	if config.Verbose {
		log.Printf("📊 ROI: %d hours, $%d, %d emails drafted, %d events found",
			summary.HoursSaved, summary.MoneySaved, summary.EmailsDrafted, summary.EventsFound)
	}
	log.Println("✅ ROI summary retrieved")

	log.Println("✅ Result verification completed")
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
