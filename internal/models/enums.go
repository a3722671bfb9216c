// internal/models/enums.go
package models

type OfferSource string

const (
	SourceInternal       OfferSource = "internal"
	SourceLinkedInAPI    OfferSource = "linkedin_api"
	SourceInternshipsAPI OfferSource = "internships_api"
)

type WorkMode string

const (
	WorkModeRemote      WorkMode = "remote"
	WorkModeInOffice    WorkMode = "in-office"
	WorkModeHybrid      WorkMode = "hybrid"
	WorkModeUnspecified WorkMode = "unspecified"
)

type EmploymentType string

const (
	EmploymentFullTime    EmploymentType = "fulltime"
	EmploymentPartTime    EmploymentType = "part-time"
	EmploymentContract    EmploymentType = "contract"
	EmploymentInternship  EmploymentType = "internship"
	EmploymentUnspecified EmploymentType = "unspecified"
)

type Role string

const (
	RoleEmployer  Role = "employer"
	RoleJobseeker Role = "jobseeker"
)

// Enum value lists, in the order they are advertised in validation schemas.
var (
	OfferSources    = []string{string(SourceInternal), string(SourceLinkedInAPI), string(SourceInternshipsAPI)}
	WorkModes       = []string{string(WorkModeRemote), string(WorkModeInOffice), string(WorkModeHybrid), string(WorkModeUnspecified)}
	EmploymentTypes = []string{string(EmploymentFullTime), string(EmploymentPartTime), string(EmploymentContract), string(EmploymentInternship), string(EmploymentUnspecified)}

	// Jobseeker preferences never carry the unspecified value.
	PreferenceWorkModes       = []string{string(WorkModeRemote), string(WorkModeInOffice), string(WorkModeHybrid)}
	PreferenceEmploymentTypes = []string{string(EmploymentFullTime), string(EmploymentPartTime), string(EmploymentContract), string(EmploymentInternship)}
)

func (r Role) Valid() bool {
	return r == RoleEmployer || r == RoleJobseeker
}
