package domain

import (
	"time"
)

const (
	LeadStatusNew         = "novo"
	LeadStatusContacted   = "contato"
	LeadStatusQualified   = "qualificado"
	LeadStatusNegotiation = "negociacao"
	LeadStatusClosed      = "fechado"
	LeadStatusLost        = "perdido"
)

// LeadStatuses lista as colunas do kanban na ordem de exibição
var LeadStatuses = []string{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusQualified,
	LeadStatusNegotiation,
	LeadStatusClosed,
	LeadStatusLost,
}

func IsValidLeadStatus(status string) bool {
	for _, s := range LeadStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Lead struct {
	ID              int        `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	WhatsApp        string     `json:"whatsapp"`
	Profession      *string    `json:"profession"`
	Difficulty      *string    `json:"difficulty"`
	Region          *string    `json:"region"`
	Status          *string    `json:"status"`
	SellerID        *int       `json:"seller_id"`
	IsCustomer      bool       `json:"is_customer"`
	Notes           *string    `json:"notes"`
	UTMSource       *string    `json:"utm_source"`
	UTMMedium       *string    `json:"utm_medium"`
	UTMCampaign     *string    `json:"utm_campaign"`
	UserAgent       *string    `json:"user_agent"`
	LGPDConsent     bool       `json:"lgpd_consent"`
	LGPDConsentDate *time.Time `json:"lgpd_consent_date"`
	LGPDConsentIP   *string    `json:"lgpd_consent_ip"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type CreateLeadRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	WhatsApp    string  `json:"whatsapp"`
	Profession  *string `json:"profession"`
	Difficulty  *string `json:"difficulty"`
	Region      *string `json:"region"`
	Status      *string `json:"status"`
	SellerID    *int    `json:"seller_id"`
	IsCustomer  *bool   `json:"is_customer"`
	Notes       *string `json:"notes"`
	UTMSource   *string `json:"utm_source"`
	UTMMedium   *string `json:"utm_medium"`
	UTMCampaign *string `json:"utm_campaign"`
	UserAgent   *string `json:"user_agent"`
	LGPDConsent *bool   `json:"lgpd_consent"`

	// Preenchido pelo handler a partir da requisição
	ConsentIP *string `json:"-"`
}

// UpdateLeadRequest descreve uma atualização parcial: apenas os campos presentes
// no payload são alterados e null limpa colunas opcionais.
type UpdateLeadRequest struct {
	ID         int           `json:"-"`
	Name       Field[string] `json:"name"`
	Email      Field[string] `json:"email"`
	WhatsApp   Field[string] `json:"whatsapp"`
	Profession Field[string] `json:"profession"`
	Difficulty Field[string] `json:"difficulty"`
	Region     Field[string] `json:"region"`
	Status     Field[string] `json:"status"`
	SellerID   Field[int]    `json:"seller_id"`
	IsCustomer Field[bool]   `json:"is_customer"`
	Notes      Field[string] `json:"notes"`
}

func (r UpdateLeadRequest) IsEmpty() bool {
	return !r.Name.Set && !r.Email.Set && !r.WhatsApp.Set &&
		!r.Profession.Set && !r.Difficulty.Set && !r.Region.Set &&
		!r.Status.Set && !r.SellerID.Set && !r.IsCustomer.Set && !r.Notes.Set
}

type UpdateLeadStatusRequest struct {
	Status string `json:"status"`
}

type LeadListResponse struct {
	Data       []*Lead    `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type ImportLeadsRequest struct {
	CSVData string `json:"csvData"`
}

type ImportResult struct {
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}
