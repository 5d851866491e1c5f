package scoring

import (
	"regexp"
	"strings"
)

// Fortune500Top100 is the reference list used for affiliation checks.
var Fortune500Top100 = []string{
	"Walmart", "Amazon", "Apple", "CVS Health", "UnitedHealth Group", "Exxon Mobil", "Berkshire Hathaway", "Alphabet", "McKesson", "Chevron",
	"AmerisourceBergen", "Costco Wholesale", "Microsoft", "Cardinal Health", "Cigna", "Marathon Petroleum", "Phillips 66", "Valero Energy", "Ford Motor", "Home Depot",
	"General Motors", "Elevance Health", "JPMorgan Chase", "Kroger", "Centene", "Verizon Communications", "Walgreens Boots Alliance", "Fannie Mae", "Comcast", "AT&T",
	"Meta Platforms", "Bank of America", "Target", "Dell Technologies", "Archer Daniels Midland", "Citigroup", "United Parcel Service", "Pfizer", "Lowe's", "Johnson & Johnson",
	"FedEx", "Humana", "Energy Transfer", "State Farm Insurance", "Freddie Mac", "PepsiCo", "Wells Fargo", "Walt Disney", "ConocoPhillips", "Procter & Gamble",
	"General Electric", "Albertsons", "MetLife", "Goldman Sachs Group", "Sysco", "Raytheon Technologies", "Boeing", "StoneX Group", "Lockheed Martin", "Morgan Stanley",
	"Intel", "HP", "TD Synnex", "Prudential Financial", "Caterpillar", "Oracle", "Publix Super Markets", "American Express", "General Dynamics", "Nike",
	"Progressive", "Liberty Mutual Insurance Group", "Abbott Laboratories", "Tyson Foods", "Deere", "Cisco Systems", "Merck", "Delta Air Lines", "Nationwide", "TJX",
	"Allstate", "American Airlines Group", "Charter Communications", "Best Buy", "New York Life Insurance", "Salesforce", "HCA Healthcare", "Enterprise Products Partners", "TIAA", "Publix",
	"Philip Morris International", "Thermo Fisher Scientific", "Qualcomm", "Coca-Cola", "MassMutual", "Northrop Grumman", "Travelers", "Arrow Electronics", "Honeywell International", "Capital One Financial",
}

// Corporate suffix tokens stripped before comparison. Alternation order is
// load-bearing: "corp" fires before "corporation", both sides are normalized
// the same way so the comparison stays symmetric.
var suffixPattern = regexp.MustCompile(`inc\.?|corp\.?|corporation|llc|group|technologies`)

// IsFortune500 reports whether the host name matches the reference list. The
// check is case-insensitive, strips common corporate suffixes, and accepts a
// substring match in either direction. An empty name never matches.
func (e *Engine) IsFortune500(name string) bool {
	if name == "" {
		return false
	}
	normalized := normalize(name)
	for _, company := range e.companies {
		if strings.Contains(normalized, company) || strings.Contains(company, normalized) {
			return true
		}
	}
	return false
}

func normalize(name string) string {
	return strings.TrimSpace(suffixPattern.ReplaceAllString(strings.ToLower(name), ""))
}

func normalizeAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = normalize(n)
	}
	return out
}
