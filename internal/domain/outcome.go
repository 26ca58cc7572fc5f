package domain

import "github.com/SmarterApp/RDW-DataGenerator-sub000/internal/stats"

// ClaimScore is the result for one claim or alternate score. Its Level is a
// three-level classification for claims and a full-scale level for alternate
// scores.
type ClaimScore struct {
	Code  string      `json:"code"`
	Score stats.Score `json:"score"`
}

// Outcome is one student's result on one assessment. It is immutable once
// synthesized and is the record handed to writers.
type Outcome struct {
	ID            int64          `json:"id"`
	OpportunityID string         `json:"opportunity_id"`
	StudentID     int64          `json:"student_id"`
	SchoolID      string         `json:"school_id"`
	DistrictID    string         `json:"district_id"`
	AssessmentID  string         `json:"assessment_id"`
	Kind          AssessmentKind `json:"kind"`
	Subject       Subject        `json:"subject"`
	Year          int            `json:"year"`
	Grade         int            `json:"grade"`
	Score         stats.Score    `json:"score"`
	Claims        []ClaimScore   `json:"claims,omitempty"`
	AltScores     []ClaimScore   `json:"alt_scores,omitempty"`
}
