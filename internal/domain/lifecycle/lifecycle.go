// Package lifecycle enforces the status machines for events, leads,
// discovered agencies and backlink targets, including the cross-entity
// promotions that carry provenance between collections.
//
// Every transition is a pure transform: it takes a record value and returns
// the replacement value. Callers persist the result by whole-collection
// write; nothing here touches storage.
package lifecycle

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/thebeat/pipeline/internal/domain/model"
	"github.com/thebeat/pipeline/internal/domain/scoring"
)

// FollowUpDays is the outreach cadence: a contacted lead becomes due again
// after this many days.
const FollowUpDays = 14

const dateLayout = "2006-01-02"

// Placeholder contact for agencies discovered without any contacts.
const (
	placeholderContactName  = "Unknown"
	placeholderContactTitle = "Event Manager"
)

// Manager applies lifecycle transitions. The clock and id source are
// injected so transitions are reproducible in tests.
type Manager struct {
	now   func() time.Time
	newID func(prefix string) string
}

// New creates a Manager with the wall clock and time-prefixed ids.
func New(opts ...Option) *Manager {
	m := &Manager{
		now:   time.Now,
		newID: defaultID,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// PromoteEvent converts a raw event into a lead and marks the event
// Promoted. Promotion is terminal: a promoted event cannot be promoted
// again. The lead carries the event context in its notes and a weak
// back-reference through RelatedEventID.
func (m *Manager) PromoteEvent(ev model.ScrapedEvent, userNotes string) (model.Lead, model.ScrapedEvent, error) {
	if ev.Status == model.EventPromoted {
		return model.Lead{}, ev, ErrAlreadyPromoted
	}

	lead := model.Lead{
		ID:             m.newID("lead"),
		Name:           "Unknown Decision Maker",
		Role:           "Event Director",
		Company:        ev.HostCompany,
		Email:          "",
		Source:         model.SourceEventRadar,
		Specialization: ev.EventType,
		WebsiteVisits:  0,
		Status:         model.LeadResearch,
		Notes: fmt.Sprintf("Targeting %s (%s). %d attendees. Score: %d/100. Source: %s.\n\nUser Notes: %s",
			ev.EventName, ev.EventDate, ev.Attendees, ev.Score, ev.SourceType, userNotes),
		RelatedEventID: ev.ID,
		QualityScore:   int(scoring.RoundHalfUp(float64(ev.Score) / 10)),
		Location:       ev.Location,
	}

	promoted := ev
	promoted.Status = model.EventPromoted
	return lead, promoted, nil
}

// IgnoreEvent removes the event from the collection outright. Unlike
// promotion there is no tombstone: a dismissed event is simply gone.
func IgnoreEvent(events []model.ScrapedEvent, id string) []model.ScrapedEvent {
	out := make([]model.ScrapedEvent, 0, len(events))
	for _, ev := range events {
		if ev.ID != id {
			out = append(out, ev)
		}
	}
	return out
}

// AttachDraft stores generated outreach text on a lead and moves it to
// Ready to Contact.
func AttachDraft(lead model.Lead, draft string) model.Lead {
	lead.AIDraft = draft
	lead.Status = model.LeadReadyToContact
	return lead
}

// MarkContacted stamps the outreach date and schedules the follow-up.
func (m *Manager) MarkContacted(lead model.Lead) model.Lead {
	now := m.now()
	lead.Status = model.LeadContacted
	lead.LastOutreachDate = now.Format(dateLayout)
	lead.NextFollowUpDate = now.AddDate(0, 0, FollowUpDays).Format(dateLayout)
	return lead
}

// FollowUpDue reports whether a contacted lead has gone a full follow-up
// window without outreach. This is a derived read, never a stored status.
func FollowUpDue(lead model.Lead, now time.Time) bool {
	if lead.Status != model.LeadContacted {
		return false
	}
	last, err := time.Parse(dateLayout, lead.LastOutreachDate)
	if err != nil {
		return false
	}
	return now.Sub(last) >= FollowUpDays*24*time.Hour
}

// PromoteAgencyToLead creates a lead from the agency's first discovered
// contact (or a placeholder when none exists) and marks the agency
// Promoted.
func (m *Manager) PromoteAgencyToLead(agency model.DiscoveredAgency) (model.Lead, model.DiscoveredAgency) {
	contact := model.DiscoveredContact{Name: placeholderContactName, Title: placeholderContactTitle}
	if len(agency.Contacts) > 0 {
		contact = agency.Contacts[0]
	}

	lead := model.Lead{
		ID:             m.newID("lead"),
		Name:           contact.Name,
		Role:           contact.Title,
		Company:        agency.Name,
		Location:       agency.Location,
		AgencySize:     agency.Size,
		Email:          contact.Email,
		Source:         model.SourceAgencyDiscovery,
		Specialization: agency.Specialization,
		WebsiteVisits:  0,
		Status:         model.LeadResearch,
		QualityScore:   agency.FitScore,
		Notes:          fmt.Sprintf("Tier: %s. Fit Reason: %s", agency.Tier, agency.FitReason),
	}

	promoted := agency
	promoted.Status = model.AgencyPromoted
	return lead, promoted
}

// PromoteAgencyToPartner creates a partner record from the agency and marks
// the agency Promoted.
func (m *Manager) PromoteAgencyToPartner(agency model.DiscoveredAgency) (model.Partner, model.DiscoveredAgency) {
	contactName := "TBD"
	contactEmail := ""
	if len(agency.Contacts) > 0 {
		contactName = agency.Contacts[0].Name
		contactEmail = agency.Contacts[0].Email
	}

	partner := model.Partner{
		ID:            m.newID("ptr"),
		Name:          agency.Name,
		Type:          "Agency",
		Contact:       contactName,
		Email:         contactEmail,
		Status:        model.PartnerIdentify,
		DealStructure: "10% Commission",
		Notes:         agency.FitReason,
		FitScore:      agency.FitScore,
	}

	promoted := agency
	promoted.Status = model.AgencyPromoted
	return partner, promoted
}

// DiscardAgency marks an agency Discarded; the record stays in the
// collection.
func DiscardAgency(agency model.DiscoveredAgency) model.DiscoveredAgency {
	agency.Status = model.AgencyDiscarded
	return agency
}

// AttachPitch stores a generated pitch on a backlink target and moves it to
// Pitched. Regenerating while already Pitched replaces the text without a
// further transition.
func AttachPitch(target model.BacklinkTarget, pitch string) model.BacklinkTarget {
	target.AIPitch = pitch
	target.Status = model.BacklinkPitched
	return target
}

// MarkLinkLive marks a pitched backlink as live.
func MarkLinkLive(target model.BacklinkTarget) model.BacklinkTarget {
	target.Status = model.BacklinkLive
	return target
}

func defaultID(prefix string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), uuid.NewString()[:8])
}
