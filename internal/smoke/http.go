package smoke

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/thebeat/pipeline/internal/domain/model"
)

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body.
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body.
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitLeads submits leads concurrently using a worker pool and records
// the service-assigned IDs.
func submitLeads(ctx context.Context, config *Config, leads []model.Lead, stats *Stats) ([]created, error) {
	log.Printf("📤 Submitting %d leads with %d workers...", len(leads), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/leads"

	var (
		successful int64
		failed     int64
		submitted  int64
	)

	var lastReport time.Time
	reportInterval := 1 * time.Second

	leadChan := make(chan model.Lead, config.Workers*WorkerChannelMultiplier)
	var (
		mu      sync.Mutex
		results []created
	)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for lead := range leadChan {
				select {
				case <-ctx.Done():
					return
				default:
					assigned, err := submitSingleLead(ctx, client, url, lead)

					atomic.AddInt64(&submitted, 1)
					if err != nil {
						atomic.AddInt64(&failed, 1)
					} else {
						atomic.AddInt64(&successful, 1)
						mu.Lock()
						results = append(results, created{Sent: lead, Assigned: assigned})
						mu.Unlock()
					}

					if time.Since(lastReport) >= reportInterval {
						lastReport = time.Now()
						total := atomic.LoadInt64(&submitted)
						succ := atomic.LoadInt64(&successful)
						fail := atomic.LoadInt64(&failed)

						if config.Verbose {
							log.Printf("📊 Progress: %d/%d submitted (success: %d, failed: %d)",
								total, len(leads), succ, fail)
						} else {
							fmt.Printf("\r📤 Submitted: %d/%d (success: %d, failed: %d)",
								total, len(leads), succ, fail)
						}
					}
				}
			}
		}()
	}

	go func() {
		defer close(leadChan)
		for _, lead := range leads {
			select {
			case <-ctx.Done():
				return
			case leadChan <- lead:
			}
		}
	}()

	wg.Wait()

	if !config.Verbose {
		fmt.Println() // New line after progress indicator
	}

	stats.LeadsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.LeadsSuccessful = int(atomic.LoadInt64(&successful))
	stats.LeadsFailed = int(atomic.LoadInt64(&failed))

	log.Printf(`✅ Lead submission completed:
   Successful: %d
   Failed: %d
`, stats.LeadsSuccessful, stats.LeadsFailed)

	return results, nil
}

// submitSingleLead submits a single lead and returns the stored record.
func submitSingleLead(ctx context.Context, client *HTTPClient, url string, lead model.Lead) (model.Lead, error) {
	resp, err := client.Post(ctx, url, lead)
	if err != nil {
		return model.Lead{}, err
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return model.Lead{}, err
	}

	if resp.StatusCode != StatusCreated {
		return model.Lead{}, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var assigned model.Lead
	if err := json.Unmarshal(body, &assigned); err != nil {
		return model.Lead{}, fmt.Errorf("failed to parse created lead: %w", err)
	}
	if assigned.ID == "" {
		return model.Lead{}, fmt.Errorf("service returned lead without an id")
	}
	return assigned, nil
}

// fetchLeads retrieves the full stored lead collection.
func fetchLeads(ctx context.Context, config *Config, stats *Stats) ([]model.Lead, error) {
	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/collections/thebeat_leads"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lead collection: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("lead collection returned status %d", resp.StatusCode)
	}

	var stored []model.Lead
	if err := json.Unmarshal(body, &stored); err != nil {
		return nil, fmt.Errorf("failed to parse lead collection: %w", err)
	}

	stats.LeadsStored = len(stored)
	return stored, nil
}

// fetchExport retrieves the lead CSV export.
func fetchExport(ctx context.Context, config *Config) (string, error) {
	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/collections/thebeat_leads/export"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch export: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != StatusOK {
		return "", fmt.Errorf("export returned status %d", resp.StatusCode)
	}
	return string(body), nil
}

// fetchROI retrieves the ROI summary.
func fetchROI(ctx context.Context, config *Config) (ROISummary, error) {
	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/roi"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return ROISummary{}, fmt.Errorf("failed to fetch roi: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return ROISummary{}, err
	}
	if resp.StatusCode != StatusOK {
		return ROISummary{}, fmt.Errorf("roi returned status %d", resp.StatusCode)
	}

	var summary ROISummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return ROISummary{}, fmt.Errorf("failed to parse roi summary: %w", err)
	}
	return summary, nil
}
