// internal/models/task.go
package models

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"
)

type AdmissionResult string

const (
	ResultPending    AdmissionResult = "Pending"
	ResultAdmitted   AdmissionResult = "Admitted"
	ResultRejected   AdmissionResult = "Rejected"
	ResultWaitlisted AdmissionResult = "Waitlisted"
)

// CollegeStatus maps a tracker result onto the college lifecycle.
func (r AdmissionResult) CollegeStatus() (CollegeStatus, bool) {
	switch r {
	case ResultAdmitted:
		return StatusAdmitted, true
	case ResultRejected:
		return StatusRejected, true
	case ResultWaitlisted:
		return StatusWaitlisted, true
	case ResultPending:
		return StatusInProgress, true
	}
	return "", false
}

type ColumnType string

const (
	ColumnCheckbox ColumnType = "checkbox"
	ColumnText     ColumnType = "text"
	ColumnSelect   ColumnType = "select"
	ColumnDate     ColumnType = "date"
	ColumnNumber   ColumnType = "number"
)

// TaskColumn describes one column of the application tracker table.
type TaskColumn struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Type     ColumnType `json:"type"`
	Options  []string   `json:"options,omitempty"`
	Required bool       `json:"required,omitempty"`
	Editable *bool      `json:"editable,omitempty"`
}

// Column ids with a dedicated field on ApplicationTask.
const (
	ColumnCollege            = "college"
	ColumnEssays             = "essays"
	ColumnRecommendations    = "recommendations"
	ColumnTranscripts        = "transcripts"
	ColumnTestScores         = "testScores"
	ColumnApplicationFee     = "applicationFee"
	ColumnSubmitted          = "submitted"
	ColumnInterviewScheduled = "interviewScheduled"
	ColumnAdmissionResult    = "admissionResult"
)

var taskFixedKeys = []string{
	"collegeId",
	ColumnCollege,
	ColumnEssays,
	ColumnRecommendations,
	ColumnTranscripts,
	ColumnTestScores,
	ColumnApplicationFee,
	ColumnSubmitted,
	ColumnInterviewScheduled,
	ColumnAdmissionResult,
	"createdAt",
}

// ApplicationTask is one row of the per-college submission checklist.
// Values of user-defined columns live in Custom and are stored flat
// alongside the fixed fields.
type ApplicationTask struct {
	CollegeID          string                 `json:"collegeId"`
	College            string                 `json:"college"`
	Essays             bool                   `json:"essays"`
	Recommendations    string                 `json:"recommendations"`
	Transcripts        bool                   `json:"transcripts"`
	TestScores         bool                   `json:"testScores"`
	ApplicationFee     bool                   `json:"applicationFee"`
	Submitted          bool                   `json:"submitted"`
	InterviewScheduled bool                   `json:"interviewScheduled"`
	AdmissionResult    AdmissionResult        `json:"admissionResult"`
	CreatedAt          string                 `json:"createdAt,omitempty"`
	Custom             map[string]interface{} `json:"-"`
}

type taskAlias ApplicationTask

func (t ApplicationTask) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(taskAlias(t))
	if err != nil || len(t.Custom) == 0 {
		return base, err
	}

	merged := make(map[string]interface{}, len(taskFixedKeys)+len(t.Custom))
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range t.Custom {
		if isFixedTaskKey(k) {
			continue
		}
		merged[k] = v
	}
	return json.Marshal(merged)
}

func (t *ApplicationTask) UnmarshalJSON(data []byte) error {
	var alias taskAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range taskFixedKeys {
		delete(raw, k)
	}
	if len(raw) > 0 {
		alias.Custom = raw
	}
	*t = ApplicationTask(alias)
	return nil
}

// Clone copies the row including its custom column values.
func (t ApplicationTask) Clone() ApplicationTask {
	out := t
	if t.Custom != nil {
		out.Custom = make(map[string]interface{}, len(t.Custom))
		for k, v := range t.Custom {
			out.Custom[k] = v
		}
	}
	return out
}

// Get returns the value stored under a column id.
func (t ApplicationTask) Get(columnID string) (interface{}, bool) {
	switch columnID {
	case ColumnCollege:
		return t.College, true
	case ColumnEssays:
		return t.Essays, true
	case ColumnRecommendations:
		return t.Recommendations, true
	case ColumnTranscripts:
		return t.Transcripts, true
	case ColumnTestScores:
		return t.TestScores, true
	case ColumnApplicationFee:
		return t.ApplicationFee, true
	case ColumnSubmitted:
		return t.Submitted, true
	case ColumnInterviewScheduled:
		return t.InterviewScheduled, true
	case ColumnAdmissionResult:
		return t.AdmissionResult, true
	}
	v, ok := t.Custom[columnID]
	return v, ok
}

// Set stores a value under a column id, coercing it to the field's type.
// Values for unknown columns are kept as given.
func (t *ApplicationTask) Set(columnID string, value interface{}) error {
	var err error
	switch columnID {
	case "collegeId", "createdAt":
		return fmt.Errorf("column %q is not editable", columnID)
	case ColumnCollege:
		t.College, err = cast.ToStringE(value)
	case ColumnRecommendations:
		t.Recommendations, err = cast.ToStringE(value)
	case ColumnEssays:
		t.Essays, err = cast.ToBoolE(value)
	case ColumnTranscripts:
		t.Transcripts, err = cast.ToBoolE(value)
	case ColumnTestScores:
		t.TestScores, err = cast.ToBoolE(value)
	case ColumnApplicationFee:
		t.ApplicationFee, err = cast.ToBoolE(value)
	case ColumnSubmitted:
		t.Submitted, err = cast.ToBoolE(value)
	case ColumnInterviewScheduled:
		t.InterviewScheduled, err = cast.ToBoolE(value)
	case ColumnAdmissionResult:
		var s string
		s, err = cast.ToStringE(value)
		if err == nil {
			result := AdmissionResult(s)
			if _, ok := result.CollegeStatus(); !ok {
				return fmt.Errorf("unknown admission result %q", s)
			}
			t.AdmissionResult = result
		}
	default:
		if t.Custom == nil {
			t.Custom = make(map[string]interface{})
		}
		t.Custom[columnID] = value
	}
	if err != nil {
		return fmt.Errorf("column %q: %w", columnID, err)
	}
	return nil
}

// Delete drops a custom column value. Fixed fields cannot be deleted.
func (t *ApplicationTask) Delete(columnID string) {
	delete(t.Custom, columnID)
}

func isFixedTaskKey(k string) bool {
	for _, fixed := range taskFixedKeys {
		if k == fixed {
			return true
		}
	}
	return false
}
