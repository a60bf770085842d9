package domain

// Company is an employer record. ID is always assigned by the remote service.
type Company struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty"`
	Location    string `json:"location,omitempty"`
	Logo        string `json:"logo,omitempty"`
	UserID      string `json:"userId,omitempty"`
}
