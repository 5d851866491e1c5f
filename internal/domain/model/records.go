package model

// PartnerStatus is the lifecycle state of a referral partner.
type PartnerStatus string

// Partner lifecycle states.
const (
	PartnerIdentify PartnerStatus = "Identify"
	PartnerOutreach PartnerStatus = "Outreach"
	PartnerActive   PartnerStatus = "Active Partner"
)

// PartnerROI tracks referral outcomes for a partner.
type PartnerROI struct {
	LeadsSent   int `json:"leadsSent"`
	DealsClosed int `json:"dealsClosed"`
	TotalValue  int `json:"totalValue"`
}

// Partner is a referral relationship (agency, DMC, AV company).
type Partner struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Type          string        `json:"type"` // Agency, DMC, AV Company
	Contact       string        `json:"contact"`
	Email         string        `json:"email"`
	Status        PartnerStatus `json:"status"`
	DealStructure string        `json:"dealStructure"`
	Notes         string        `json:"notes"`
	ROI           *PartnerROI   `json:"roi,omitempty"`
	FitScore      int           `json:"fitScore,omitempty"`
	WinRate       int           `json:"winRate,omitempty"`
}

// Competitor is a tracked rival outfit.
type Competitor struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Focus           string `json:"focus"`
	Strengths       string `json:"strengths"`
	Weaknesses      string `json:"weaknesses"`
	LastSeenWinning string `json:"lastSeenWinning"`
	AIAnalysis      string `json:"aiAnalysis,omitempty"`
}

// Proposal is a client proposal in drafting or flight.
type Proposal struct {
	ID           string `json:"id"`
	ClientName   string `json:"clientName"`
	EventName    string `json:"eventName"`
	Budget       string `json:"budget"`
	AudienceSize int    `json:"audienceSize"`
	Status       string `json:"status"` // Drafting, Sent, Won, Lost
	AIOutline    string `json:"aiOutline,omitempty"`
	DateCreated  string `json:"dateCreated"`
}

// NurtureEmail is one step of a drip sequence.
type NurtureEmail struct {
	Day     int    `json:"day"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NurtureSequence is a generated multi-email drip campaign.
type NurtureSequence struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	TargetAudience string         `json:"targetAudience"`
	Emails         []NurtureEmail `json:"emails"`
}

// Venue holds technical specs for an event space.
type Venue struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Location      string `json:"location"`
	CeilingHeight string `json:"ceilingHeight"`
	PowerSpecs    string `json:"powerSpecs"`
	LoadingDoor   string `json:"loadingDoor"`
	LastScraped   string `json:"lastScraped"`
	Notes         string `json:"notes,omitempty"`
}

// SeoCluster is a keyword cluster with optional generated content.
type SeoCluster struct {
	ID           string   `json:"id"`
	Keyword      string   `json:"keyword"`
	Volume       int      `json:"volume"`
	Difficulty   int      `json:"difficulty"`
	ContentType  string   `json:"contentType"` // Educational, Behind-the-Scenes, Case Study, Landing Page
	PAAQuestions []string `json:"paaQuestions"`
	AIOutline    string   `json:"aiOutline,omitempty"`
	FullDraft    string   `json:"fullDraft,omitempty"`
	Status       string   `json:"status"` // Ideation, Drafting, Published
}

// RankMetric is a point-in-time keyword position reading.
type RankMetric struct {
	Keyword     string `json:"keyword"`
	Position    int    `json:"position"`
	Change      int    `json:"change"`
	LastChecked string `json:"lastChecked"`
}

// BacklinkStatus is the lifecycle state of a backlink target.
type BacklinkStatus string

// Backlink lifecycle states.
const (
	BacklinkIdentify BacklinkStatus = "Identify"
	BacklinkPitched  BacklinkStatus = "Pitched"
	BacklinkLive     BacklinkStatus = "Link Live"
)

// BacklinkTarget is a site targeted for a link placement.
type BacklinkTarget struct {
	ID          string         `json:"id"`
	SourceName  string         `json:"sourceName"`
	URL         string         `json:"url"`
	Type        string         `json:"type"` // Directory, Client, Partner, PR
	ContactName string         `json:"contactName"`
	Status      BacklinkStatus `json:"status"`
	AIPitch     string         `json:"aiPitch,omitempty"`
	DateAdded   string         `json:"dateAdded"`
}

// AuditTask is a checklist item in the SEO audit.
type AuditTask struct {
	ID        string `json:"id"`
	Category  string `json:"category"` // Technical, Content, Keywords, Backlinks
	Task      string `json:"task"`
	Completed bool   `json:"completed"`
}

// SocialMention is a tracked social post with an optional drafted reply.
type SocialMention struct {
	ID        string `json:"id"`
	Platform  string `json:"platform"` // Twitter, LinkedIn, Reddit
	User      string `json:"user"`
	Content   string `json:"content"`
	Sentiment string `json:"sentiment"` // Positive, Neutral, Negative
	Timestamp string `json:"timestamp"`
	AIReply   string `json:"aiReply,omitempty"`
}

// PostShowAnalysis is the structured output of a post-show debrief.
type PostShowAnalysis struct {
	VenueUpdates    string `json:"venueUpdates"`
	ClientInsights  string `json:"clientInsights"`
	CaseStudyDraft  string `json:"caseStudyDraft"`
}

// PostShowReport captures the debrief of a delivered show. VenueID and
// ClientID are weak references into the venues and leads collections.
type PostShowReport struct {
	ID         string           `json:"id"`
	ShowName   string           `json:"showName"`
	VenueID    string           `json:"venueId"`
	ClientID   string           `json:"clientId"`
	Date       string           `json:"date"`
	RawNotes   string           `json:"rawNotes"`
	AIAnalysis PostShowAnalysis `json:"aiAnalysis"`
}
