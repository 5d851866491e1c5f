package genai

import (
	"context"
	"fmt"
	"strings"

	"github.com/thebeat/pipeline/internal/domain/model"
)

// PitchInput carries the event facts an outreach pitch is built from.
type PitchInput struct {
	RecipientName string
	EventName     string
	HostCompany   string
	EventDate     string
	Attendees     int
	Venue         string
}

// CompetitorAnalysis is the structured result of a competitor review.
type CompetitorAnalysis struct {
	Strengths   string `json:"strengths"`
	Weaknesses  string `json:"weaknesses"`
	Opportunity string `json:"opportunity"`
}

// ScrapeEvents simulates parsing a source's calendar for a city and returns
// raw event candidates. A malformed completion yields an empty batch.
func (c *Client) ScrapeEvents(ctx context.Context, city string, source model.ScraperSource) ([]model.RawEvent, error) {
	prompt := fmt.Sprintf(`Act as a web scraper interacting with the %s for %s.

You have just downloaded the raw HTML from the convention center calendar or news site.
Parse this raw data and extract 5 realistic corporate event opportunities.

Targets: Fortune 500 annual meetings, major tech conferences, large corporate galas.

For each event found, return:
- "eventName": (e.g. AWS re:Invent, Oracle OpenWorld)
- "hostCompany": the organizing entity
- "eventDate": a future date (YYYY-MM-DD), a mix of 1 month out, 3 months out, and 6 months out
- "location": %s
- "attendees": estimated count (integer)
- "sourceUrl": a mock URL
- "description": 1 sentence about the event purpose
- "eventType": one of ['Conference', 'Gala', 'Product Launch', 'Trade Show', 'General Session']
- "isFortune500": boolean (true if host is a major corporation)

Return ONLY a valid JSON array, no markdown or extra text.`, source, city, city)

	text, err := c.complete(ctx, "scrape_events", prompt, 1024)
	if err != nil {
		return nil, err
	}
	var batch []model.RawEvent
	if !c.decodeArray(ctx, "scrape_events", text, &batch) {
		return nil, nil
	}
	return batch, nil
}

// DiscoverAgencies finds and enriches candidate agency partners matching a
// location, type and size profile.
func (c *Client) DiscoverAgencies(ctx context.Context, location, agencyType, size string) ([]model.RawAgency, error) {
	prompt := fmt.Sprintf(`Act as a high-end agency headhunter bot.
Task: find and enrich potential agency partners for TheBeat (high-end entertainment production).

Search parameters:
- Location: %s
- Agency type: %s
- Agency size: %s

Generate 5 realistic agencies that fit this profile and simulate the data
enrichment step of finding decision makers.

Return a JSON array where each object contains:
- "name": agency name
- "website": mock website (agencyname.com)
- "location": specific city/state
- "specialization": short description of what they do
- "size": '%s'
- "fitScore": integer 1-10 for fit with high-end corporate entertainment
- "fitReason": 1 sentence explaining the score
- "contacts": an array of 2 discovered contacts, each with:
    - "name": full name
    - "title": job title (e.g. VP of Events, Creative Director, Head of Production)
    - "email": mock email address
    - "confidence": integer 80-99

Return ONLY a valid JSON array, no markdown or extra text.`, location, agencyType, size, size)

	text, err := c.complete(ctx, "discover_agencies", prompt, 1500)
	if err != nil {
		return nil, err
	}
	var batch []model.RawAgency
	if !c.decodeArray(ctx, "discover_agencies", text, &batch) {
		return nil, nil
	}
	return batch, nil
}

// ResearchVenues lists major corporate venues in a city with estimated
// technical specs. Identity and scrape timestamps are attached by the caller.
func (c *Client) ResearchVenues(ctx context.Context, city string) ([]model.Venue, error) {
	prompt := fmt.Sprintf(`List 5 major corporate event venues (hotels or convention centers) in %s.
For each venue, provide estimated technical specifications based on general
knowledge of large ballrooms.

Return a JSON array of objects. Each object must have:
- "name": venue name
- "location": %s
- "ceilingHeight": estimated ceiling height (e.g. "20ft - 30ft")
- "powerSpecs": estimated power availability (e.g. "Standard 200A 3-phase")
- "loadingDoor": estimated loading details (e.g. "Standard Dock", "Freight Elevator only")

Return ONLY a valid JSON array, no markdown or extra text.`, city, city)

	text, err := c.complete(ctx, "research_venues", prompt, 800)
	if err != nil {
		return nil, err
	}
	var batch []model.Venue
	if !c.decodeArray(ctx, "research_venues", text, &batch) {
		return nil, nil
	}
	return batch, nil
}

// OutreachEmail drafts a short peer-to-peer email to a lead. campaignContext
// carries behavioral signals such as repeat site visits.
func (c *Client) OutreachEmail(ctx context.Context, name, company, notes, campaignContext string) (string, error) {
	prompt := fmt.Sprintf(`You are an elite B2B copywriter for TheBeat (high-end event production).
Write a personal, research-based email to %s at %s.

Intelligence gathered:
- Notes/specialization: "%s"
- Context/signals: "%s" (if this mentions site visits, acknowledge it subtly like 'Noticed some interest from your team')

Goal: start a conversation about partnering on their next activation.
Tone: professional, non-salesy, peer-to-peer.
Length: under 75 words.
Format: plain text only. No subject line.`, name, company, notes, campaignContext)

	return c.complete(ctx, "outreach_email", prompt, 300)
}

// EventPitch drafts the templated cold email for a scraped event.
func (c *Client) EventPitch(ctx context.Context, in PitchInput) (string, error) {
	venue := in.Venue
	if venue == "" {
		venue = "a major venue"
	}
	prompt := fmt.Sprintf(`Write a specific B2B email from Vince (TheBeat) to %s.

Context: %s is producing %s (approx %d attendees) on %s at %s.

Template to follow (do not deviate strictly, but keep the structure):
"Hi [Name],

I noticed [Host Company] is producing [Event Name] (announced [date], [size] attendees) at [Venue].

We've done similar-scale work for Dell, HP, and Google, and we specialize in the exact moment you need: [insert dynamic moment type based on event type, e.g. high energy opener or gala entry].

Zero technical failures across 28 years.

Worth a 15-minute call?

Vince"`, in.RecipientName, in.HostCompany, in.EventName, in.Attendees, in.EventDate, venue)

	return c.complete(ctx, "event_pitch", prompt, 500)
}

// BacklinkPitch drafts a link-building email for a backlink target.
func (c *Client) BacklinkPitch(ctx context.Context, sourceName, linkType, contactName string) (string, error) {
	prompt := fmt.Sprintf(`Write a link-building outreach email for TheBeat.
Recipient: %s at %s.
Type: %s (Directory, Client, Partner, or PR).

Use this structure:
1. Compliment specific to their brand/content.
2. Mention TheBeat specializes in high-impact entertainment for Fortune 500s (Dell, HP, Google).
3. Ask for the link/feature (guest post, directory listing, or case study).
4. Offer value in return (share to network, feature them).

Keep it under 150 words. Professional but warm tone.`, contactName, sourceName, linkType)

	return c.complete(ctx, "backlink_pitch", prompt, 400)
}

// SocialReply drafts a short brand-ambassador comment for a social post.
func (c *Client) SocialReply(ctx context.Context, postContent string) (string, error) {
	prompt := fmt.Sprintf(`You are a helpful brand ambassador for TheBeat.
Draft a helpful, non-salesy comment reply to this social media post: "%s".
Mention a specific venue or tip relevant to Nashville if applicable.
Keep it under 280 characters.`, postContent)

	return c.complete(ctx, "social_reply", prompt, 200)
}

// SeoOutline builds a content outline for a keyword cluster.
func (c *Client) SeoOutline(ctx context.Context, keyword string, questions []string, contentType string) (string, error) {
	var instructions string
	switch contentType {
	case "Educational":
		instructions = "Format: Guide/How-To. Focus: industry insights, actionable tips for planners."
	case "Behind-the-Scenes":
		instructions = "Format: Process Breakdown. Focus: setup process, technical challenges solved, performer prep."
	case "Case Study":
		instructions = "Format: Problem/Solution. Focus: client challenge, TheBeat solution, measurable outcome. Structure: 'The Challenge', 'The Solution', 'The Results'."
	case "Landing Page":
		instructions = "Format: Sales Landing Page. Focus: trust signals, authority, clear CTA. Include sections for 'Client Logos', 'Testimonials', 'Capabilities'."
	}

	prompt := fmt.Sprintf(`Create a detailed content outline for TheBeat targeting the keyword: "%s".
Content type: %s
%s

Specifically answer these "People Also Ask" questions: %s.
Structure it with H2 and H3 tags. Make it authoritative for corporate event planners.`,
		keyword, contentType, instructions, strings.Join(questions, ", "))

	return c.complete(ctx, "seo_outline", prompt, 800)
}

// ContentDraft expands an approved outline into a full draft.
func (c *Client) ContentDraft(ctx context.Context, keyword, outline, contentType string) (string, error) {
	prompt := fmt.Sprintf(`Write a full content draft based on this outline.
Keyword: %s
Type: %s

Outline:
%s

Tone: high-end, professional, authoritative.
Length: ~800 words.
Format: Markdown.`, keyword, contentType, outline)

	return c.complete(ctx, "content_draft", prompt, 2000)
}

// NurtureSequence generates a 5-email drip campaign for an audience and goal.
func (c *Client) NurtureSequence(ctx context.Context, audience, goal string) ([]model.NurtureEmail, error) {
	prompt := fmt.Sprintf(`Create a 5-email nurture sequence for TheBeat (high-end event production).
Target audience: %s
Goal: %s

Structure:
Email 1 (Day 0): value add / differentiation.
Email 2 (Day 3): case study / social proof.
Email 3 (Day 7): educational content.
Email 4 (Day 14): soft pitch / process.
Email 5 (Day 21): final CTA.

Return a JSON array with keys: "day", "subject", "body".
Return ONLY a valid JSON array, no markdown or extra text.`, audience, goal)

	text, err := c.complete(ctx, "nurture_sequence", prompt, 1500)
	if err != nil {
		return nil, err
	}
	var emails []model.NurtureEmail
	if !c.decodeArray(ctx, "nurture_sequence", text, &emails) {
		return nil, nil
	}
	return emails, nil
}

// AnalyzeCompetitor produces a quick SWOT-style read on a rival outfit.
func (c *Client) AnalyzeCompetitor(ctx context.Context, name, focus string) (CompetitorAnalysis, error) {
	prompt := fmt.Sprintf(`Analyze the event entertainment competitor: "%s".
Their focus: "%s".

Provide a quick SWOT analysis as JSON:
{
  "strengths": "What they likely do well.",
  "weaknesses": "Where they likely fail (technical, rigidity, generic).",
  "opportunity": "How TheBeat (high-end, custom, technical perfection) can win against them."
}

Return ONLY a valid JSON object, no markdown or extra text.`, name, focus)

	text, err := c.complete(ctx, "competitor_analysis", prompt, 600)
	if err != nil {
		return CompetitorAnalysis{}, err
	}
	var out CompetitorAnalysis
	if !c.decodeObject(ctx, "competitor_analysis", text, &out) {
		return CompetitorAnalysis{}, nil
	}
	return out, nil
}

// AnalyzePostShow extracts venue realities, client preferences and a case
// study blurb from free-form post-show notes.
func (c *Client) AnalyzePostShow(ctx context.Context, notes, venueName, clientName string) (model.PostShowAnalysis, error) {
	prompt := fmt.Sprintf(`Analyze these post-show notes from a TheBeat event.
Venue: %s
Client: %s
Notes: "%s"

Extract three things as JSON:
{
  "venueUpdates": "Any technical constraints or realities found about the venue (e.g. door sizes, power issues, load-in details).",
  "clientInsights": "What the client liked/disliked, specific preferences for future sales.",
  "caseStudyDraft": "A short 3-sentence marketing blurb summarizing the success of the event for a case study."
}

Return ONLY a valid JSON object, no markdown or extra text.`, venueName, clientName, notes)

	text, err := c.complete(ctx, "post_show_analysis", prompt, 800)
	if err != nil {
		return model.PostShowAnalysis{}, err
	}
	var out model.PostShowAnalysis
	if !c.decodeObject(ctx, "post_show_analysis", text, &out) {
		return model.PostShowAnalysis{}, nil
	}
	return out, nil
}

// ProposalOutline drafts a proposal skeleton for a client event.
func (c *Client) ProposalOutline(ctx context.Context, clientName, eventName, budget string, audience int) (string, error) {
	prompt := fmt.Sprintf(`Create a winning proposal outline for TheBeat (high-end corporate entertainment).
Client: %s
Event: %s
Budget range: %s
Audience: %d pax

Philosophy: "Zero Technical Failures", "Production Integration", "Seamless Execution".

Structure:
1. The Vision (high energy opener or sophisticated ambient).
2. The TheBeat Difference (why us vs. generic booking agencies).
3. Technical Logistics (how we handle the specific constraints of %d pax).
4. Investment Options (Good, Better, Best, aligned with %s).

Format: Markdown.`, clientName, eventName, budget, audience, audience, budget)

	return c.complete(ctx, "proposal_outline", prompt, 1200)
}
