package smoke

import (
	"time"

	"github.com/thebeat/pipeline/internal/domain/model"
)

// Config holds configuration for the pipeline smoke run.
type Config struct {
	BaseURL    string        // Base URL of the service
	NumLeads   int           // Number of leads to generate
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Output file for generated leads
	LogFile    string        // Log file for run output
	Verbose    bool          // Enable verbose logging
}

// AckResponse represents an acknowledgement from the service.
type AckResponse struct {
	Status string `json:"status"`
}

// ROISummary mirrors the /roi response fields the run verifies.
type ROISummary struct {
	HoursSaved    int `json:"hoursSaved"`
	MoneySaved    int `json:"moneySaved"`
	EmailsDrafted int `json:"emailsDrafted"`
	EventsFound   int `json:"eventsFound"`
}

// Stats holds run statistics.
type Stats struct {
	LeadsGenerated  int
	LeadsSubmitted  int
	LeadsSuccessful int
	LeadsFailed     int
	LeadsStored     int
	ExportRows      int
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
}

// created tracks a lead the run submitted along with the ID the service
// assigned to it.
type created struct {
	Sent     model.Lead
	Assigned model.Lead
}
