// internal/models/user.go
package models

import "time"

type Contacts struct {
	Phone    string `json:"phone,omitempty"`
	Telegram string `json:"telegram,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

type EmployerProfile struct {
	CompanyName        string `json:"companyName,omitempty"`
	CompanyWebsite     string `json:"companyWebsite,omitempty"`
	CompanyDescription string `json:"companyDescription,omitempty"`
}

type Preferences struct {
	EmploymentTypes []EmploymentType `json:"employmentTypes,omitempty"`
	WorkModes       []WorkMode       `json:"workModes,omitempty"`
}

type Study struct {
	Institution string     `json:"institution,omitempty"`
	Degree      string     `json:"degree,omitempty"`
	Field       string     `json:"field,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
}

type JobseekerProfile struct {
	Stack         []string     `json:"stack,omitempty"`
	PortfolioURLs []string     `json:"portfolioUrls,omitempty"`
	CVURLs        []string     `json:"cvUrls,omitempty"`
	OpenToWork    bool         `json:"openToWork"`
	Preferences   *Preferences `json:"preferences,omitempty"`
	Studies       []Study      `json:"studies,omitempty"`
}

// User is an employer or jobseeker account. The saved arrays and their
// counters are only written by the saved-relation operations of the store.
type User struct {
	ID               string            `json:"id"`
	Email            string            `json:"email,omitempty"`
	FirstName        string            `json:"firstName"`
	LastName         string            `json:"lastName"`
	DateOfBirth      *time.Time        `json:"dateOfBirth,omitempty"`
	Description      string            `json:"description,omitempty"`
	Role             Role              `json:"role"`
	ImageURL         string            `json:"imageUrl,omitempty"`
	Contacts         *Contacts         `json:"contacts,omitempty"`
	EmployerProfile  *EmployerProfile  `json:"employerProfile,omitempty"`
	JobseekerProfile *JobseekerProfile `json:"jobseekerProfile,omitempty"`

	SavedJobseekers      []string `json:"savedJobseekers,omitempty"`
	SavedOffers          []string `json:"savedOffers,omitempty"`
	SavedJobseekersCount int      `json:"savedJobseekersCount"`
	SavedOffersCount     int      `json:"savedOffersCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	IsSaved *bool `json:"isSaved,omitempty"`
}

// PublicProfile is the view of a jobseeker that other users may see.
type PublicProfile struct {
	ID               string            `json:"id"`
	FirstName        string            `json:"firstName"`
	LastName         string            `json:"lastName"`
	DateOfBirth      *time.Time        `json:"dateOfBirth,omitempty"`
	Description      string            `json:"description,omitempty"`
	Role             Role              `json:"role"`
	ImageURL         string            `json:"imageUrl,omitempty"`
	Contacts         *Contacts         `json:"contacts,omitempty"`
	JobseekerProfile *JobseekerProfile `json:"jobseekerProfile,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
	IsSaved          *bool             `json:"isSaved,omitempty"`
}

// PublicFields lists the stored fields that make up a PublicProfile.
var PublicFields = []string{
	"id", "firstName", "lastName", "dateOfBirth", "description", "role",
	"imageUrl", "contacts", "jobseekerProfile", "createdAt", "updatedAt",
}

func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:               u.ID,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		DateOfBirth:      u.DateOfBirth,
		Description:      u.Description,
		Role:             u.Role,
		ImageURL:         u.ImageURL,
		Contacts:         u.Contacts,
		JobseekerProfile: u.JobseekerProfile,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
		IsSaved:          u.IsSaved,
	}
}
