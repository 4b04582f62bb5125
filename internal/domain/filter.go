package domain

const (
	DefaultPage  = 1
	DefaultLimit = 50
	MaxLimit     = 500
)

// LeadFilter guarda os critérios de busca exatamente como recebidos na query string.
// A conversão de tipos fica a cargo do compilador de filtros do repositório.
type LeadFilter struct {
	Search      string
	Profession  string
	Difficulty  string
	Region      string
	UTMCampaign string
	SellerID    string
	IsCustomer  string
	Status      string
	DateFrom    string
	DateTo      string
	Page        int
	Limit       int
}

// Normalize aplica os valores padrão de paginação
func (f LeadFilter) Normalize() LeadFilter {
	if f.Page <= 0 {
		f.Page = DefaultPage
	}
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	return f
}

func (f LeadFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}
