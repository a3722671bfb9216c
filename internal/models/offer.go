// internal/models/offer.go
package models

import "time"

type Location struct {
	City      string   `json:"city,omitempty"`
	Region    string   `json:"region,omitempty"`
	Country   string   `json:"country,omitempty"`
	Formatted string   `json:"formatted,omitempty"`
	Lat       *float64 `json:"lat,omitempty"`
	Lng       *float64 `json:"lng,omitempty"`
	Timezone  string   `json:"timezone,omitempty"`
}

type Salary struct {
	Currency string   `json:"currency,omitempty"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Unit     string   `json:"unit,omitempty"`
	RawText  string   `json:"rawText,omitempty"`
}

// Offer is a job posting, either created by an employer or ingested from an
// external feed.
type Offer struct {
	ID              string         `json:"id"`
	CreatedBy       string         `json:"createdBy,omitempty"`
	Source          OfferSource    `json:"source"`
	SourceID        string         `json:"sourceId,omitempty"`
	SourceURL       string         `json:"sourceUrl,omitempty"`
	ApplyURL        string         `json:"applyUrl,omitempty"`
	Title           string         `json:"title"`
	DescriptionText string         `json:"descriptionText,omitempty"`
	DescriptionHTML string         `json:"descriptionHtml,omitempty"`
	CompanyName     string         `json:"companyName,omitempty"`
	CompanyWebsite  string         `json:"companyWebsite,omitempty"`
	CompanyIndustry string         `json:"companyIndustry,omitempty"`
	CompanyLogo     string         `json:"companyLogo,omitempty"`
	Location        *Location      `json:"location,omitempty"`
	WorkMode        WorkMode       `json:"workMode"`
	EmploymentType  EmploymentType `json:"employmentType"`
	PostedAt        *time.Time     `json:"postedAt,omitempty"`
	ValidThrough    *time.Time     `json:"validThrough,omitempty"`
	Salary          *Salary        `json:"salary,omitempty"`
	Skills          []string       `json:"skills,omitempty"`
	Tags            []string       `json:"tags,omitempty"`
	IsActive        bool           `json:"isActive"`
	ScrapedAt       *time.Time     `json:"scrapedAt,omitempty"`
	LastSeenAt      *time.Time     `json:"lastSeenAt,omitempty"`
	DedupeHash      string         `json:"dedupeHash,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`

	// IsSaved is derived per request and never stored.
	IsSaved *bool `json:"isSaved,omitempty"`
}

// OwnedBy reports whether userID created the offer.
func (o *Offer) OwnedBy(userID string) bool {
	return o.CreatedBy != "" && o.CreatedBy == userID
}
