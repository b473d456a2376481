package entity

import "time"

type Category string

const (
	// CategoryAll is a virtual filter value, never stored on a project.
	CategoryAll  Category = "TODOS"
	CategoryApp  Category = "APP"
	CategoryGame Category = "JUEGO"
	CategoryBook Category = "LIBRO"
)

// PlatformDonationID is the reserved target meaning "donate to the platform
// itself". It never matches a stored project.
const PlatformDonationID = "PLATFORM"

func ValidCategory(c Category) bool {
	switch c {
	case CategoryApp, CategoryGame, CategoryBook:
		return true
	}
	return false
}

type Project struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        Category  `json:"category"`
	Author          string    `json:"author"`
	Image           string    `json:"image"`
	DonationGoal    float64   `json:"donation_goal"`
	CurrentDonation float64   `json:"current_donation"`
	DownloadCount   int       `json:"download_count"`
	Likes           int       `json:"likes"`
	RepositoryURL   string    `json:"repository_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// PercentFunded reports funding progress capped at 100.
func (p *Project) PercentFunded() int {
	if p.DonationGoal <= 0 {
		return 0
	}
	percent := int(p.CurrentDonation / p.DonationGoal * 100)
	if percent > 100 {
		percent = 100
	}
	return percent
}
