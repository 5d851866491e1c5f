package smoke

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/thebeat/pipeline/internal/domain/model"
	"github.com/thebeat/pipeline/pkg/logger"
)

// Constants for random selection ranges.
const (
	maxWebsiteVisits = 60
	visitChanceCases = 3
)

// Name pools for synthetic leads. Companies mix large accounts with
// regional firms so quality scores spread across the board.
var (
	firstNames = []string{"Ava", "Noah", "Mia", "Liam", "Zoe", "Ethan", "Ruby", "Owen", "Ivy", "Cole"}
	lastNames  = []string{"Harper", "Brooks", "Delgado", "Kim", "Osei", "Vance", "Moreau", "Silva", "Nakamura", "Reyes"}
	roles      = []string{"Event Director", "Marketing Manager", "Brand Experience Lead", "Head of Partnerships", "Creative Producer"}
	companies  = []string{"Oracle", "Salesforce", "Microsoft", "Deloitte", "Riverline Media", "Summit Stage Co", "Brightline Expo", "Harbor & Pine Events"}
)

// randomIndex returns a uniform random index below n using crypto/rand.
func randomIndex(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// generateLeads creates the specified number of leads with unique emails.
func generateLeads(ctx context.Context, config *Config, stats *Stats) ([]model.Lead, error) {
	logger.Get().Info(ctx, "generating leads with unique emails", logger.Int("numLeads", config.NumLeads))

	leads := make([]model.Lead, config.NumLeads)

	type leadResult struct {
		index int
		lead  model.Lead
	}

	results := make(chan leadResult, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	chunk := (config.NumLeads + config.Workers - 1) / config.Workers
	for w := 0; w < config.Workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > config.NumLeads {
			end = config.NumLeads
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					return
				case results <- leadResult{index: i, lead: newLead()}:
				}
			}
		}(start, end)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	count := 0
	for r := range results {
		leads[r.index] = r.lead
		count++
	}
	if count != config.NumLeads {
		logger.Get().Warn(ctx, "lead generation interrupted",
			logger.Int("generated", count), logger.Int("requested", config.NumLeads))
		leads = leads[:count]
	}

	stats.LeadsGenerated = len(leads)
	logger.Get().Info(ctx, "lead generation completed", logger.Int("generated", len(leads)))
	return leads, nil
}

// newLead builds one synthetic lead. The email embeds a UUID so every
// submission is unique and recoverable from the stored collection.
func newLead() model.Lead {
	first := firstNames[randomIndex(len(firstNames))]
	last := lastNames[randomIndex(len(lastNames))]
	company := companies[randomIndex(len(companies))]
	tag := uuid.New().String()

	visits := 0
	if randomIndex(visitChanceCases) == 0 {
		visits = randomIndex(maxWebsiteVisits)
	}

	domain := strings.ToLower(strings.ReplaceAll(company, " ", "")) + ".example.com"
	return model.Lead{
		Name:          first + " " + last,
		Role:          roles[randomIndex(len(roles))],
		Company:       company,
		Email:         strings.ToLower(first) + "." + tag[:8] + "@" + domain,
		WebsiteVisits: visits,
		Notes:         "smoke run " + tag,
	}
}
