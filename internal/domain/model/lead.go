package model

// LeadSource records which channel produced a lead.
type LeadSource string

// Lead sources.
const (
	SourceLinkedIn        LeadSource = "LinkedIn"
	SourceDirectory       LeadSource = "Directory"
	SourceWebsite         LeadSource = "Website"
	SourceReferral        LeadSource = "Referral"
	SourceEventRadar      LeadSource = "Event Radar"
	SourceAgencyDiscovery LeadSource = "Agency Discovery"
)

// LeadStatus is the lifecycle state of a lead.
type LeadStatus string

// Lead lifecycle states.
const (
	LeadResearch       LeadStatus = "Research"
	LeadReadyToContact LeadStatus = "Ready to Contact"
	LeadContacted      LeadStatus = "Contacted"
	LeadReplied        LeadStatus = "Replied"
	LeadClient         LeadStatus = "Client"
	LeadLost           LeadStatus = "Lost"
)

// AgencySize buckets an agency by headcount/reach.
type AgencySize string

// Agency sizes.
const (
	SizeBoutique  AgencySize = "Boutique"
	SizeMidMarket AgencySize = "Mid-Market"
	SizeGlobal    AgencySize = "Global"
)

// Lead is a person in the outreach pipeline.
//
// RelatedEventID is a weak reference: it holds the originating event's id and
// resolution happens by lookup at read time, never through a live pointer.
type Lead struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Role             string     `json:"role"`
	Company          string     `json:"company"`
	Location         string     `json:"location,omitempty"`
	AgencySize       AgencySize `json:"agencySize,omitempty"`
	Email            string     `json:"email"`
	Source           LeadSource `json:"source"`
	Specialization   string     `json:"specialization"`
	WebsiteVisits    int        `json:"websiteVisits"`
	LastVisitDate    string     `json:"lastVisitDate,omitempty"`
	Status           LeadStatus `json:"status"`
	LossReason       string     `json:"lossReason,omitempty"`
	LastOutreachDate string     `json:"lastOutreachDate,omitempty"`
	NextFollowUpDate string     `json:"nextFollowUpDate,omitempty"`
	RecentNews       string     `json:"recentNews,omitempty"`
	AIDraft          string     `json:"aiDraft,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	RelatedEventID   string     `json:"relatedEventId,omitempty"`
	QualityScore     int        `json:"qualityScore,omitempty"`
}

// AgencyStatus is the lifecycle state of a discovered agency.
type AgencyStatus string

// Discovered agency lifecycle states.
const (
	AgencyUnverified AgencyStatus = "Unverified"
	AgencyVerified   AgencyStatus = "Verified"
	AgencyDiscarded  AgencyStatus = "Discarded"
	AgencyPromoted   AgencyStatus = "Promoted"
)

// AgencyTier is derived from the fit score at ingestion time.
type AgencyTier string

// Agency tiers.
const (
	Tier1 AgencyTier = "Tier 1"
	Tier2 AgencyTier = "Tier 2"
	Tier3 AgencyTier = "Tier 3"
)

// DiscoveredContact is a person found at a discovered agency.
type DiscoveredContact struct {
	Name       string  `json:"name"`
	Title      string  `json:"title"`
	Email      string  `json:"email"`
	Confidence float64 `json:"confidence"`
}

// DiscoveredAgency is a candidate partner/lead source found by discovery.
type DiscoveredAgency struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Website        string              `json:"website"`
	Location       string              `json:"location"`
	Specialization string              `json:"specialization"`
	Size           AgencySize          `json:"size"`
	FitScore       int                 `json:"fitScore"` // 1..10
	FitReason      string              `json:"fitReason"`
	Contacts       []DiscoveredContact `json:"contacts"`
	Status         AgencyStatus        `json:"status"`
	Tier           AgencyTier          `json:"tier"`
}

// RawAgency is an unprocessed discovery candidate from the collaborator.
type RawAgency struct {
	Name           string              `json:"name"`
	Website        string              `json:"website"`
	Location       string              `json:"location"`
	Specialization string              `json:"specialization"`
	Size           string              `json:"size"`
	FitScore       int                 `json:"fitScore"`
	FitReason      string              `json:"fitReason"`
	Contacts       []DiscoveredContact `json:"contacts"`
}
