package services

import "sync"

// CompanyProfile identifies the contractor on exported documents.
type CompanyProfile struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website"`
}

// CompanyUpdate is a partial update; nil fields are left untouched.
type CompanyUpdate struct {
	Name    *string
	Address *string
	Phone   *string
	Email   *string
	Website *string
}

// Merge returns p with the non-nil fields of u applied.
func (p CompanyProfile) Merge(u CompanyUpdate) CompanyProfile {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Address != nil {
		p.Address = *u.Address
	}
	if u.Phone != nil {
		p.Phone = *u.Phone
	}
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.Website != nil {
		p.Website = *u.Website
	}
	return p
}

// DisplayName returns the company name or fallback when it is blank.
func (p CompanyProfile) DisplayName(fallback string) string {
	if p.Name == "" {
		return fallback
	}
	return p.Name
}

// ContactParts lists the non-empty address, phone, email and website fields.
func (p CompanyProfile) ContactParts() []string {
	var parts []string
	for _, s := range []string{p.Address, p.Phone, p.Email, p.Website} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return parts
}

type CompanyStore struct {
	mu      sync.Mutex
	persist *Persistence
	profile CompanyProfile
}

func NewCompanyStore(persist *Persistence) *CompanyStore {
	return &CompanyStore{persist: persist, profile: persist.LoadCompany()}
}

func (s *CompanyStore) Profile() CompanyProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// UpdateProfile merges u into the profile, persists it and returns the result.
func (s *CompanyStore) UpdateProfile(u CompanyUpdate) CompanyProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile = s.profile.Merge(u)
	s.persist.SaveCompany(s.profile)
	return s.profile
}
