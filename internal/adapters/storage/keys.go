package storage

// Logical keys under which collections and scalars persist. The prefix is
// shared with every view so all of them address one logical store.
const (
	KeyLeads            = "thebeat_leads"
	KeyEvents           = "thebeat_events"
	KeyPartners         = "thebeat_partners"
	KeyDiscovery        = "thebeat_discovery"
	KeyNurture          = "thebeat_nurture"
	KeyVenues           = "thebeat_venues"
	KeySeo              = "thebeat_seo"
	KeyRankMetrics      = "thebeat_ranks"
	KeyBacklinks        = "thebeat_backlinks"
	KeyAudits           = "thebeat_audits"
	KeySocial           = "thebeat_social"
	KeyCompetitors      = "thebeat_competitors"
	KeyProposals        = "thebeat_proposals"
	KeyPostShowReports  = "thebeat_post_show"
	KeyCampaignContext  = "thebeat_campaign_context"
	KeyShowPageProgress = "thebeat_show_progress"
)

// CollectionKeys lists every collection key (scalar keys excluded), in the
// order the dashboard presents them.
func CollectionKeys() []string {
	return []string{
		KeyLeads,
		KeyEvents,
		KeyPartners,
		KeyDiscovery,
		KeyNurture,
		KeyVenues,
		KeySeo,
		KeyRankMetrics,
		KeyBacklinks,
		KeyAudits,
		KeySocial,
		KeyCompetitors,
		KeyProposals,
		KeyPostShowReports,
	}
}

// AllKeys lists every persisted key, the collections plus the scalar
// settings. The store watcher republishes all of them when another process
// rewrites the file, scalars included, so settings views converge too.
func AllKeys() []string {
	return append(CollectionKeys(), KeyCampaignContext, KeyShowPageProgress)
}
