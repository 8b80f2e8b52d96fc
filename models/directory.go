package models

import "strings"

// TherapistProfile is the directory view of a therapist.
type TherapistProfile struct {
	UserID             string  `bson:"user_id" json:"user_id"`
	FirstName          string  `bson:"first_name" json:"first_name"`
	LastName           string  `bson:"last_name" json:"last_name"`
	HourlyRate         float64 `bson:"hourly_rate" json:"hourly_rate"`
	OfficeName         string  `bson:"office_name" json:"office_name"`
	OfficeAddress      string  `bson:"office_address" json:"office_address"`
	City               string  `bson:"city" json:"city"`
	State              string  `bson:"state" json:"state"`
	VerificationStatus string  `bson:"verification_status" json:"verification_status"`
}

// DisplayName joins the therapist's first and last name.
func (p *TherapistProfile) DisplayName() string {
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}

// CenterName falls back to the app-wide default when the profile has none.
func (p *TherapistProfile) CenterName() string {
	if p.OfficeName != "" {
		return p.OfficeName
	}
	return "Holistic Mind Center"
}

// CenterAddress composes the office address parts, skipping empty ones.
func (p *TherapistProfile) CenterAddress() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{p.OfficeAddress, p.City, p.State} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}

// IsApproved reports whether the therapist passed verification.
func (p *TherapistProfile) IsApproved() bool {
	return p.VerificationStatus == "approved"
}

// ClientProfile is the directory view of a client.
type ClientProfile struct {
	UserID   string `bson:"user_id" json:"user_id"`
	FullName string `bson:"full_name" json:"full_name"`
	Email    string `bson:"email" json:"email"`
}

// DisplayName prefers the full name, then the email local part.
func (c *ClientProfile) DisplayName() string {
	if c.FullName != "" {
		return c.FullName
	}
	if at := strings.IndexByte(c.Email, '@'); at > 0 {
		return c.Email[:at]
	}
	return c.Email
}
