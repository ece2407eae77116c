// internal/models/profile.go
package models

import (
	"encoding/json"
	"strconv"
)

// GradeLevel accepts both the numeric form written by onboarding (12) and
// the free-text form written by the lookup profile step ("12th", "Year 13").
type GradeLevel string

func (g *GradeLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*g = GradeLevel(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*g = GradeLevel(n.String())
	return nil
}

// Int returns the numeric grade when the level is a plain number.
func (g GradeLevel) Int() (int, bool) {
	n, err := strconv.Atoi(string(g))
	return n, err == nil
}

type Subject struct {
	Name  string `json:"name"`
	Grade string `json:"grade"`
}

// Resume holds pasted resume text and/or an opaque reference to an uploaded file.
type Resume struct {
	Text    string `json:"text,omitempty"`
	FileRef string `json:"fileRef,omitempty"`
}

type Preferences struct {
	Notifications bool   `json:"notifications"`
	AutoSync      bool   `json:"autoSync"`
	Theme         string `json:"theme,omitempty"`
}

type UserProfile struct {
	Name             string      `json:"name"`
	Email            string      `json:"email"`
	Grade            GradeLevel  `json:"grade"`
	Country          string      `json:"country,omitempty"`
	GPA              string      `json:"gpa,omitempty"`
	Extracurriculars string      `json:"extracurriculars,omitempty"`
	Subjects         []Subject   `json:"subjects"`
	Resume           Resume      `json:"resume"`
	Preferences      Preferences `json:"preferences"`
	CreatedAt        string      `json:"createdAt,omitempty"`
	LastUpdated      string      `json:"lastUpdated,omitempty"`
}

func (p *UserProfile) Clone() *UserProfile {
	if p == nil {
		return nil
	}
	out := *p
	if p.Subjects != nil {
		out.Subjects = make([]Subject, len(p.Subjects))
		copy(out.Subjects, p.Subjects)
	}
	return &out
}
