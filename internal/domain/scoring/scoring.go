// Package scoring computes opportunity scores for raw candidate events.
//
// Scoring is deterministic: the same input and clock always produce the same
// output. The clock is injected so callers and tests control "now".
package scoring

import (
	"math"
	"time"

	"github.com/thebeat/pipeline/internal/domain/model"
)

// Scoring weights and bounds.
const (
	fortuneBonus    = 40
	leadTimeBonus   = 30
	earlyBirdBonus  = 15
	sizeLargeBonus  = 20
	sizeMediumBonus = 10
	tooSoonCap      = 50
	maxScore        = 100

	sizeLargeThreshold  = 2000
	sizeMediumThreshold = 500

	priorityHighThreshold   = 70
	priorityMediumThreshold = 50

	daysPerMonth = 30 // fractional months use fixed 30-day months
)

// Breakdown reason labels, rendered verbatim in the radar view.
const (
	ReasonFortune500      = "Fortune 500"
	ReasonTooSoon         = "Too Soon"
	ReasonPerfectLeadTime = "Perfect Lead Time"
	ReasonEarlyBird       = "Early Bird"
	ReasonSizeLarge       = "Size > 2000"
	ReasonSizeMedium      = "Size > 500"
)

// Input carries the raw event fields that contribute to a score.
type Input struct {
	HostCompany string
	EventDate   string // YYYY-MM-DD; empty skips the timing rule
	Attendees   int
}

// Result is the scoring outcome for one candidate event.
type Result struct {
	Score        int
	Breakdown    []string
	IsFortune500 bool
}

// Engine scores candidate events against a fixed company reference list.
type Engine struct {
	now       func() time.Time
	companies []string // normalized reference names
}

// New creates an Engine with the default Fortune 500 reference list and the
// wall clock. Options override both for tests.
func New(opts ...Option) *Engine {
	e := &Engine{
		now: time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.companies == nil {
		e.companies = normalizeAll(Fortune500Top100)
	}

	return e
}

// Score applies the additive/capping rules to one candidate event.
//
// Rules, in order: Fortune 500 affiliation (+40), timing (cap at 50 when
// under 2 months out, +30 for 3-6 months, +15 beyond 6 months; 2-3 months
// contributes nothing), attendee size (+20 at 2000, else +10 at 500). The
// final score is clamped to [0,100].
func (e *Engine) Score(in Input) Result {
	score := 0
	breakdown := []string{}

	isFortune := e.IsFortune500(in.HostCompany)
	if isFortune {
		score += fortuneBonus
		breakdown = append(breakdown, ReasonFortune500)
	}

	if months, ok := MonthsUntil(e.now(), in.EventDate); ok {
		switch {
		case months < 2:
			if score > tooSoonCap {
				score = tooSoonCap
			}
			breakdown = append(breakdown, ReasonTooSoon)
		case months >= 3 && months <= 6:
			score += leadTimeBonus
			breakdown = append(breakdown, ReasonPerfectLeadTime)
		case months > 6:
			score += earlyBirdBonus
			breakdown = append(breakdown, ReasonEarlyBird)
		}
	}

	switch {
	case in.Attendees >= sizeLargeThreshold:
		score += sizeLargeBonus
		breakdown = append(breakdown, ReasonSizeLarge)
	case in.Attendees >= sizeMediumThreshold:
		score += sizeMediumBonus
		breakdown = append(breakdown, ReasonSizeMedium)
	}

	if score < 0 {
		score = 0
	}
	if score > maxScore {
		score = maxScore
	}

	return Result{
		Score:        score,
		Breakdown:    breakdown,
		IsFortune500: isFortune,
	}
}

// PriorityFor maps a score to its tier: >=70 High, >=50 Medium, else Low.
func PriorityFor(score int) model.Priority {
	switch {
	case score >= priorityHighThreshold:
		return model.PriorityHigh
	case score >= priorityMediumThreshold:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}

// MonthsUntil returns the fractional number of 30-day months between now and
// the given date. ok is false when the date is empty or unparsable, which
// callers treat as "no date supplied".
func MonthsUntil(now time.Time, date string) (months float64, ok bool) {
	t, err := parseDate(date)
	if err != nil {
		return 0, false
	}
	return t.Sub(now).Hours() / 24 / daysPerMonth, true
}

// LeadTimeMonths is the rounded month count used to tag an event at
// ingestion. Events without a parsable date get 0.
func LeadTimeMonths(now time.Time, date string) int {
	months, ok := MonthsUntil(now, date)
	if !ok {
		return 0
	}
	return int(RoundHalfUp(months))
}

// RoundHalfUp rounds .5 toward positive infinity, matching the rounding the
// rest of the pipeline uses for derived integers.
func RoundHalfUp(f float64) float64 {
	return math.Floor(f + 0.5)
}

func parseDate(date string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", date); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, date)
}
