package store

import "college-tracker/internal/models"

// Sample data shown to first-time users. Each slice falls back independently.

func sampleColleges() []models.College {
	return []models.College{
		{
			ID:                  "1",
			Name:                "Stanford University",
			Location:            "Stanford, CA",
			ApplicationDeadline: "2025-01-02",
			EarlyDeadline:       "2024-11-01",
			ApplicationFee:      90,
			PortalLink:          "https://admission.stanford.edu/",
			Scholarships:        []string{"Knight-Hennessy Scholars", "Stanford Scholars"},
			Requirements: models.Requirements{
				Essays:     []string{"Personal Statement", "Why Stanford Essay", "Intellectual Vitality Essay"},
				TestScores: []string{"SAT/ACT", "TOEFL (International)"},
				Documents:  []string{"Transcripts", "Letters of Recommendation (3)", "Resume"},
			},
			Status:    models.StatusInProgress,
			Notes:     "Focus on CS program, prepare for technical interviews",
			AddedDate: "2024-10-15",
		},
		{
			ID:                  "2",
			Name:                "National University of Singapore",
			Location:            "Singapore",
			ApplicationDeadline: "2025-02-28",
			EarlyDeadline:       "2024-12-15",
			ApplicationFee:      30,
			PortalLink:          "https://www.nus.edu.sg/oam/",
			Scholarships:        []string{"ASEAN Undergraduate Scholarship", "NUS Merit Scholarship"},
			Requirements: models.Requirements{
				Essays:     []string{"Personal Statement", "Academic Interest Essay"},
				TestScores: []string{"SAT/A-Levels", "IELTS/TOEFL"},
				Documents:  []string{"Academic Transcripts", "Letters of Recommendation (2)", "Portfolio (if applicable)"},
			},
			Status:    models.StatusNotStarted,
			Notes:     "Strong in engineering, good scholarship opportunities",
			AddedDate: "2024-10-20",
		},
		{
			ID:                  "3",
			Name:                "MIT",
			Location:            "Cambridge, MA",
			ApplicationDeadline: "2025-01-01",
			EarlyDeadline:       "2024-11-01",
			ApplicationFee:      75,
			PortalLink:          "https://mitadmissions.org/",
			Scholarships:        []string{"Need-based Financial Aid"},
			Requirements: models.Requirements{
				Essays:     []string{"Main Essay", "5 Short Essays", "Optional Essays"},
				TestScores: []string{"SAT/ACT", "SAT Subject Tests (recommended)"},
				Documents:  []string{"School Report", "Teacher Evaluations (2)", "Mid-year Report"},
			},
			Status:    models.StatusSubmitted,
			Notes:     "Dream school for engineering",
			AddedDate: "2024-09-01",
		},
	}
}

func defaultTaskColumns() []models.TaskColumn {
	return []models.TaskColumn{
		{ID: models.ColumnCollege, Name: "College", Type: models.ColumnText},
		{ID: models.ColumnEssays, Name: "Essays Completed", Type: models.ColumnCheckbox},
		{ID: models.ColumnRecommendations, Name: "Recommendations", Type: models.ColumnSelect, Options: []string{"0/3", "1/3", "2/3", "3/3"}},
		{ID: models.ColumnTranscripts, Name: "Transcripts Sent", Type: models.ColumnCheckbox},
		{ID: models.ColumnTestScores, Name: "Test Scores Sent", Type: models.ColumnCheckbox},
		{ID: models.ColumnApplicationFee, Name: "Fee Paid", Type: models.ColumnCheckbox},
		{ID: models.ColumnSubmitted, Name: "Application Submitted", Type: models.ColumnCheckbox},
		{ID: models.ColumnInterviewScheduled, Name: "Interview Scheduled", Type: models.ColumnCheckbox},
		{ID: models.ColumnAdmissionResult, Name: "Result", Type: models.ColumnSelect, Options: []string{"Pending", "Admitted", "Rejected", "Waitlisted"}},
	}
}

func sampleTasks() []models.ApplicationTask {
	return []models.ApplicationTask{
		{
			CollegeID:       "1",
			College:         "Stanford University",
			Essays:          true,
			Recommendations: "2/3",
			Transcripts:     true,
			TestScores:      true,
			ApplicationFee:  true,
			AdmissionResult: models.ResultPending,
		},
		{
			CollegeID:       "2",
			College:         "National University of Singapore",
			Recommendations: "0/3",
			TestScores:      true,
			AdmissionResult: models.ResultPending,
		},
		{
			CollegeID:          "3",
			College:            "MIT",
			Essays:             true,
			Recommendations:    "3/3",
			Transcripts:        true,
			TestScores:         true,
			ApplicationFee:     true,
			Submitted:          true,
			InterviewScheduled: true,
			AdmissionResult:    models.ResultPending,
		},
	}
}

func newTaskRow(c models.College, createdAt string) models.ApplicationTask {
	return models.ApplicationTask{
		CollegeID:       c.ID,
		College:         c.Name,
		Recommendations: "0/3",
		AdmissionResult: models.ResultPending,
		CreatedAt:       createdAt,
	}
}
