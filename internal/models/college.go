// internal/models/college.go
package models

// CollegeStatus is the lifecycle status of a tracked application.
// Any status may follow any other; the store does not enforce transitions.
type CollegeStatus string

const (
	StatusNotStarted CollegeStatus = "not-started"
	StatusInProgress CollegeStatus = "in-progress"
	StatusSubmitted  CollegeStatus = "submitted"
	StatusAdmitted   CollegeStatus = "admitted"
	StatusRejected   CollegeStatus = "rejected"
	StatusWaitlisted CollegeStatus = "waitlisted"
)

// CollegeStatuses lists every status in display order.
var CollegeStatuses = []CollegeStatus{
	StatusNotStarted,
	StatusInProgress,
	StatusSubmitted,
	StatusAdmitted,
	StatusRejected,
	StatusWaitlisted,
}

func (s CollegeStatus) Valid() bool {
	for _, known := range CollegeStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type Requirements struct {
	Essays     []string `json:"essays"`
	TestScores []string `json:"testScores"`
	Documents  []string `json:"documents"`
}

// College is the durable record for one target institution.
type College struct {
	ID                  string        `json:"id"`
	Name                string        `json:"name"`
	Location            string        `json:"location"`
	ApplicationDeadline string        `json:"applicationDeadline"`
	EarlyDeadline       string        `json:"earlyDeadline,omitempty"`
	ApplicationFee      float64       `json:"applicationFee"`
	Status              CollegeStatus `json:"status"`
	PortalLink          string        `json:"portalLink"`
	Requirements        Requirements  `json:"requirements"`
	Scholarships        []string      `json:"scholarships"`
	Notes               string        `json:"notes"`
	AddedDate           string        `json:"addedDate"`
	LastUpdated         string        `json:"lastUpdated,omitempty"`
}

// Clone returns a deep copy so snapshots handed out of the store stay read-only.
func (c College) Clone() College {
	out := c
	out.Requirements = Requirements{
		Essays:     cloneStrings(c.Requirements.Essays),
		TestScores: cloneStrings(c.Requirements.TestScores),
		Documents:  cloneStrings(c.Requirements.Documents),
	}
	out.Scholarships = cloneStrings(c.Scholarships)
	return out
}

// CollegePatch carries a partial update. Nil fields are left untouched.
// There is no ID field: identifiers never change.
type CollegePatch struct {
	Name                *string        `json:"name,omitempty"`
	Location            *string        `json:"location,omitempty"`
	ApplicationDeadline *string        `json:"applicationDeadline,omitempty"`
	EarlyDeadline       *string        `json:"earlyDeadline,omitempty"`
	ApplicationFee      *float64       `json:"applicationFee,omitempty"`
	Status              *CollegeStatus `json:"status,omitempty"`
	PortalLink          *string        `json:"portalLink,omitempty"`
	Requirements        *Requirements  `json:"requirements,omitempty"`
	Scholarships        []string       `json:"scholarships,omitempty"`
	Notes               *string        `json:"notes,omitempty"`
}

func (p CollegePatch) Apply(c *College) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Location != nil {
		c.Location = *p.Location
	}
	if p.ApplicationDeadline != nil {
		c.ApplicationDeadline = *p.ApplicationDeadline
	}
	if p.EarlyDeadline != nil {
		c.EarlyDeadline = *p.EarlyDeadline
	}
	if p.ApplicationFee != nil {
		c.ApplicationFee = *p.ApplicationFee
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.PortalLink != nil {
		c.PortalLink = *p.PortalLink
	}
	if p.Requirements != nil {
		c.Requirements = Requirements{
			Essays:     cloneStrings(p.Requirements.Essays),
			TestScores: cloneStrings(p.Requirements.TestScores),
			Documents:  cloneStrings(p.Requirements.Documents),
		}
	}
	if p.Scholarships != nil {
		c.Scholarships = cloneStrings(p.Scholarships)
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
