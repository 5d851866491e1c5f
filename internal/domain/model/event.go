// Package model contains domain records passed between layers.
//
// Every record is immutable by replacement: operations build a new value and
// the whole collection is written back to the store. Dates are kept as
// YYYY-MM-DD strings so stored values round-trip without timezone drift.
package model

// Priority is the coarse opportunity bucket derived from a score.
type Priority string

// Priority tiers.
const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// ScraperSource identifies where a scan pulled raw events from.
type ScraperSource string

// Scan sources.
const (
	SourceConventionCenter ScraperSource = "Convention Center"
	SourceGoogleNews       ScraperSource = "Google News"
	SourceEventbrite       ScraperSource = "Eventbrite"
	SourceManual           ScraperSource = "Manual"
)

// EventStatus is the lifecycle state of a scraped event.
type EventStatus string

// Event lifecycle states. Promoted is terminal but the record stays in the
// collection; Ignored removes the record outright and is never stored.
const (
	EventRaw          EventStatus = "Raw"
	EventQualified    EventStatus = "Qualified"
	EventDisqualified EventStatus = "Disqualified"
	EventPromoted     EventStatus = "Promoted"
	EventIgnored      EventStatus = "Ignored"
)

// ScrapedEvent is a corporate event surfaced by a radar scan.
type ScrapedEvent struct {
	ID             string        `json:"id"`
	EventName      string        `json:"eventName"`
	HostCompany    string        `json:"hostCompany"`
	EventDate      string        `json:"eventDate"` // YYYY-MM-DD, may be empty
	LeadTimeMonths int           `json:"leadTimeMonths"`
	Location       string        `json:"location"`
	Attendees      int           `json:"attendees"`
	SourceURL      string        `json:"sourceUrl"`
	SourceType     ScraperSource `json:"sourceType"`
	Description    string        `json:"description"`
	IsFortune500   bool          `json:"isFortune500"`
	EventType      string        `json:"eventType"`
	Score          int           `json:"score"`
	Priority       Priority      `json:"priority"`
	ScoreBreakdown []string      `json:"scoreBreakdown"`
	Status         EventStatus   `json:"status"`
	AIAnalysis     string        `json:"aiAnalysis,omitempty"`
}

// RawEvent is an unprocessed candidate as returned by the scraping
// collaborator, before identity, defaults and scoring are attached.
type RawEvent struct {
	EventName    string `json:"eventName"`
	HostCompany  string `json:"hostCompany"`
	EventDate    string `json:"eventDate"`
	Location     string `json:"location"`
	Attendees    int    `json:"attendees"`
	SourceURL    string `json:"sourceUrl"`
	Description  string `json:"description"`
	EventType    string `json:"eventType"`
	IsFortune500 bool   `json:"isFortune500"`
}
