package domain

import "time"

type Seller struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateSellerRequest struct {
	Name   string  `json:"name"`
	Email  *string `json:"email"`
	Phone  *string `json:"phone"`
	Active *bool   `json:"active"`
}

type UpdateSellerRequest struct {
	ID     int           `json:"-"`
	Name   Field[string] `json:"name"`
	Email  Field[string] `json:"email"`
	Phone  Field[string] `json:"phone"`
	Active Field[bool]   `json:"active"`
}

func (r UpdateSellerRequest) IsEmpty() bool {
	return !r.Name.Set && !r.Email.Set && !r.Phone.Set && !r.Active.Set
}
