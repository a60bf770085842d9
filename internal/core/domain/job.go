package domain

import "time"

// JobPosting is a single job listing.
type JobPosting struct {
	ID              string        `json:"_id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Requirements    StringList    `json:"requirements"`
	Salary          FlexString    `json:"salary"`
	Location        string        `json:"location"`
	JobType         string        `json:"jobType"`
	ExperienceLevel FlexString    `json:"experienceLevel"`
	Positions       int           `json:"position"`
	Company         CompanyRef    `json:"company"`
	CreatedBy       string        `json:"created_by,omitempty"`
	Applications    []Application `json:"applications,omitempty"`
	CreatedAt       time.Time     `json:"createdAt,omitempty"`
}

// CompanyID returns the referenced company id regardless of whether the
// service embedded the company or sent only its id.
func (j JobPosting) CompanyID() string {
	return j.Company.ID
}

// HasApplicant reports whether userID already applied to this job.
func (j JobPosting) HasApplicant(userID string) bool {
	for _, a := range j.Applications {
		if a.Applicant.ID == userID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of j.
func (j JobPosting) Clone() JobPosting {
	c := j
	if j.Requirements != nil {
		c.Requirements = append(StringList(nil), j.Requirements...)
	}
	if j.Applications != nil {
		c.Applications = append([]Application(nil), j.Applications...)
	}
	if j.Company.Company != nil {
		embedded := *j.Company.Company
		c.Company.Company = &embedded
	}
	return c
}
