package model

import "encoding/json"

// ContactRecord is one submission received via the contact form.
type ContactRecord struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Type        string    `json:"type"` // category of inquiry
	Message     string    `json:"message"`
	Consent     bool      `json:"consent"`
	SubmittedAt Timestamp `json:"submittedAt"`
	IP          string    `json:"ip"`
	UserAgent   string    `json:"userAgent"`
}

// UnmarshalJSON also accepts records written with the older "ua" key.
func (r *ContactRecord) UnmarshalJSON(data []byte) error {
	type plain ContactRecord
	var aux struct {
		plain
		UA string `json:"ua"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = ContactRecord(aux.plain)
	if r.UserAgent == "" {
		r.UserAgent = aux.UA
	}
	return nil
}

// RequestMeta carries transport details captured for each submission.
// Neither value is ever taken from the submitted payload.
type RequestMeta struct {
	IP        string
	UserAgent string
}
