package domain

// RecentLeadsWindowDays define a janela usada em LeadStatistics.RecentLeads
const RecentLeadsWindowDays = 7

type CustomerStatusCount struct {
	Customers    int `json:"customers"`
	NonCustomers int `json:"nonCustomers"`
}

type LeadStatistics struct {
	Total            int                 `json:"total"`
	ByProfession     map[string]int      `json:"byProfession"`
	ByDifficulty     map[string]int      `json:"byDifficulty"`
	ByRegion         map[string]int      `json:"byRegion"`
	RecentLeads      int                 `json:"recentLeads"`
	BySeller         map[string]int      `json:"bySeller"`
	ByCustomerStatus CustomerStatusCount `json:"byCustomerStatus"`
}
