package storage

import "github.com/thebeat/pipeline/internal/domain/model"

// Scalar defaults.
const (
	DefaultCampaignContext  = "General outreach for TheBeat's high-end corporate event production capabilities."
	DefaultShowPageProgress = 1
)

// Default datasets returned when a key is missing or unreadable. Each call
// builds a fresh value so callers can mutate without aliasing.

// DefaultLeads seeds the CRM with two example leads.
func DefaultLeads() []model.Lead {
	return []model.Lead{
		{
			ID:             "1",
			Name:           "Sarah Jenkins",
			Role:           "VP of Events",
			Company:        "George P. Johnson",
			Location:       "Nashville, TN",
			AgencySize:     model.SizeGlobal,
			Email:          "s.jenkins@gpj.com",
			Source:         model.SourceLinkedIn,
			Specialization: "Experiential Marketing",
			WebsiteVisits:  3,
			LastVisitDate:  "2023-10-24",
			Status:         model.LeadResearch,
			Notes:          "Found on Sales Nav. Handles automotive clients.",
			QualityScore:   8,
		},
		{
			ID:             "2",
			Name:           "Marcus Chen",
			Role:           "Director of Production",
			Company:        "Freeman",
			Location:       "Las Vegas, NV",
			AgencySize:     model.SizeGlobal,
			Email:          "m.chen@freeman.com",
			Source:         model.SourceDirectory,
			Specialization: "General Session / AV",
			Status:         model.LeadReadyToContact,
			Notes:          "Listed on BizBash top 50.",
			QualityScore:   9,
		},
	}
}

// DefaultEvents seeds the radar with one high-score example.
func DefaultEvents() []model.ScrapedEvent {
	return []model.ScrapedEvent{
		{
			ID:             "1",
			EventName:      "Global Innovation Summit 2025",
			HostCompany:    "Oracle",
			EventDate:      "2025-09-15",
			Location:       "Las Vegas, NV",
			Attendees:      5000,
			SourceURL:      "https://oracle.com/events",
			Description:    "Annual developer and partner conference focusing on cloud infrastructure.",
			IsFortune500:   true,
			EventType:      "Conference",
			Score:          90,
			ScoreBreakdown: []string{"Fortune 500 (+40)", "Lead Time > 6mo (+30)", "Size > 2000 (+20)"},
			Status:         model.EventRaw,
			Priority:       model.PriorityHigh,
			LeadTimeMonths: 9,
			SourceType:     model.SourceConventionCenter,
		},
	}
}

// DefaultPartners seeds the partner roster.
func DefaultPartners() []model.Partner {
	return []model.Partner{
		{
			ID:            "1",
			Name:          "Hello! Destination Management",
			Type:          "DMC",
			Contact:       "Regional Director",
			Email:         "info@hello.com",
			Status:        model.PartnerActive,
			DealStructure: "10% Commission",
			Notes:         "Key player in Nashville & Orlando.",
			ROI:           &model.PartnerROI{LeadsSent: 12, DealsClosed: 3, TotalValue: 45000},
			FitScore:      9,
			WinRate:       25,
		},
		{
			ID:            "2",
			Name:          "Freeman",
			Type:          "AV Company",
			Contact:       "Account Exec",
			Email:         "sales@freeman.com",
			Status:        model.PartnerIdentify,
			DealStructure: "Reciprocal",
			Notes:         "Target for large trade show referrals.",
			ROI:           &model.PartnerROI{},
			FitScore:      8,
		},
	}
}

// DefaultCompetitors seeds the competitor watchlist.
func DefaultCompetitors() []model.Competitor {
	return []model.Competitor{
		{
			ID:              "1",
			Name:            "Generic Ent Co.",
			Focus:           "Budget / Weddings",
			Strengths:       "Low price, high availability",
			Weaknesses:      "Technical failures, generic costumes",
			LastSeenWinning: "Small Local Gala",
		},
		{
			ID:              "2",
			Name:            "Cirque-Style Agency X",
			Focus:           "High-End Visuals",
			Strengths:       "Great costumes, large cast",
			Weaknesses:      "Rigid requirements, hard to work with AV",
			LastSeenWinning: "Tech Conference Opener",
		},
	}
}

// DefaultVenues seeds the venue database.
func DefaultVenues() []model.Venue {
	return []model.Venue{
		{
			ID:            "1",
			Name:          "Gaylord Opryland",
			Location:      "Nashville, TN",
			CeilingHeight: "24ft - 40ft",
			PowerSpecs:    "400A 3-Phase",
			LoadingDoor:   "12ft x 14ft",
			LastScraped:   "2023-10-01",
		},
	}
}

// DefaultSeoClusters seeds the content pipeline.
func DefaultSeoClusters() []model.SeoCluster {
	return []model.SeoCluster{
		{
			ID:          "1",
			Keyword:     "Corporate Entertainment Nashville",
			Volume:      1200,
			Difficulty:  45,
			ContentType: "Educational",
			PAAQuestions: []string{
				"How much does a corporate band cost?",
				"Best entertainment ideas for awards gala",
				"Unique event venues",
			},
			Status: "Ideation",
		},
	}
}

// DefaultRankMetrics seeds the rank tracker.
func DefaultRankMetrics() []model.RankMetric {
	return []model.RankMetric{
		{Keyword: "Corporate Entertainment Nashville", Position: 12, Change: 2, LastChecked: "2023-10-25"},
	}
}

// DefaultBacklinks seeds the backlink pipeline.
func DefaultBacklinks() []model.BacklinkTarget {
	return []model.BacklinkTarget{
		{
			ID:          "1",
			SourceName:  "EventsConnect.com",
			URL:         "https://eventsconnect.com",
			Type:        "Directory",
			ContactName: "Editor",
			Status:      model.BacklinkIdentify,
			DateAdded:   "2025-11-17",
		},
	}
}

// DefaultAudits seeds the SEO audit checklist.
func DefaultAudits() []model.AuditTask {
	return []model.AuditTask{
		{ID: "1", Category: "Technical", Task: "Crawl site with Screaming Frog (check errors)"},
		{ID: "2", Category: "Technical", Task: "Verify all show pages indexed (Search Console)", Completed: true},
	}
}

// DefaultSocialMentions seeds the social listener.
func DefaultSocialMentions() []model.SocialMention {
	return []model.SocialMention{
		{
			ID:        "1",
			Platform:  "Twitter",
			User:      "@EventPlannerPro",
			Content:   "Planning a huge tech conference in Nashville for Q3. Ideas?",
			Sentiment: "Neutral",
			Timestamp: "10m ago",
		},
	}
}

func defaultFor(key string) any {
	switch key {
	case KeyLeads:
		return DefaultLeads()
	case KeyEvents:
		return DefaultEvents()
	case KeyPartners:
		return DefaultPartners()
	case KeyDiscovery:
		return []model.DiscoveredAgency{}
	case KeyNurture:
		return []model.NurtureSequence{}
	case KeyVenues:
		return DefaultVenues()
	case KeySeo:
		return DefaultSeoClusters()
	case KeyRankMetrics:
		return DefaultRankMetrics()
	case KeyBacklinks:
		return DefaultBacklinks()
	case KeyAudits:
		return DefaultAudits()
	case KeySocial:
		return DefaultSocialMentions()
	case KeyCompetitors:
		return DefaultCompetitors()
	case KeyProposals:
		return []model.Proposal{}
	case KeyPostShowReports:
		return []model.PostShowReport{}
	default:
		return nil
	}
}
