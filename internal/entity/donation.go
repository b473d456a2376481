package entity

import "time"

type DonationState string

const (
	DonationIdle       DonationState = "idle"
	DonationProcessing DonationState = "processing"
	DonationSuccess    DonationState = "success"
	DonationClosed     DonationState = "closed"
)

// DonationFlow is one modal-scoped simulated payment. A flow is created fresh
// on every open; once confirmed it advances on timer transitions and commits
// its amount to the catalog when it closes.
type DonationFlow struct {
	ID        string        `json:"id"`
	TargetID  string        `json:"target_id"` // project id or PlatformDonationID
	Amount    float64       `json:"amount"`
	DonorName string        `json:"donor_name"`
	State     DonationState `json:"state"`
	CreatedAt time.Time     `json:"created_at"`
}
