package domain

// ApplicationStatus is the review state of a job application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Application links a candidate to a job.
type Application struct {
	ID        string            `json:"_id"`
	Job       JobRef            `json:"job"`
	Applicant UserRef           `json:"applicant"`
	Status    ApplicationStatus `json:"status,omitempty"`
}
