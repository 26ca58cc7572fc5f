package domain

import (
	"fmt"

	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/stats"
)

// Subject is an assessed content area.
type Subject string

// Supported subjects
const (
	SubjectELA  Subject = "ELA"
	SubjectMath Subject = "Math"
)

// AssessmentKind discriminates the assessment variants.
type AssessmentKind string

// Possible assessment kinds
const (
	KindSummative AssessmentKind = "SUM"
	KindInterim   AssessmentKind = "ICA"
	KindBlock     AssessmentKind = "IAB"
)

// Claim is one weighted component of an overall score.
type Claim struct {
	Code   string  `json:"code" yaml:"code"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// ClaimWeights extracts the weights of claims in order.
func ClaimWeights(claims []Claim) stats.Weights {
	weights := make(stats.Weights, len(claims))
	for i, c := range claims {
		weights[i] = c.Weight
	}
	return weights
}

// Variant carries the fields that only exist for one kind of assessment.
// The set of implementations is closed: Summative, Interim and Block.
type Variant interface {
	Kind() AssessmentKind
	validate() error
}

// Summative is the end-of-year assessment: scored on the full scale, with
// claim and alternate subscores.
type Summative struct {
	Claims    []Claim `json:"claims"`
	AltScores []Claim `json:"alt_scores,omitempty"`
}

// Kind implements Variant.
func (Summative) Kind() AssessmentKind { return KindSummative }

func (v Summative) validate() error {
	if err := ClaimWeights(v.Claims).Validate(); err != nil {
		return fmt.Errorf("claims: %w", err)
	}
	if len(v.AltScores) > 0 {
		if err := ClaimWeights(v.AltScores).Validate(); err != nil {
			return fmt.Errorf("alt scores: %w", err)
		}
	}
	return nil
}

// Interim is the interim comprehensive assessment: scored like a summative
// but without alternate scores.
type Interim struct {
	Claims []Claim `json:"claims"`
}

// Kind implements Variant.
func (Interim) Kind() AssessmentKind { return KindInterim }

func (v Interim) validate() error {
	if err := ClaimWeights(v.Claims).Validate(); err != nil {
		return fmt.Errorf("claims: %w", err)
	}
	return nil
}

// Block is an interim assessment block covering one topic. Its result is
// reported only as a three-level classification against the standard cut.
type Block struct {
	Name string `json:"name"`
}

// Kind implements Variant.
func (Block) Kind() AssessmentKind { return KindBlock }

func (v Block) validate() error {
	if v.Name == "" {
		return fmt.Errorf("block name cannot be empty")
	}
	return nil
}

// Assessment is a scorable test administered to one grade in one year.
type Assessment struct {
	ID      string          `json:"id"`
	Subject Subject         `json:"subject"`
	Grade   int             `json:"grade"`
	Year    int             `json:"year"`
	Cuts    stats.CutPoints `json:"cuts"`
	Variant Variant         `json:"variant"`
}

// NewAssessment creates a validated assessment.
func NewAssessment(id string, subject Subject, grade, year int, cuts stats.CutPoints, variant Variant) (*Assessment, error) {
	a := &Assessment{
		ID:      id,
		Subject: subject,
		Grade:   grade,
		Year:    year,
		Cuts:    cuts,
		Variant: variant,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks if the Assessment has valid data.
func (a *Assessment) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("%w: empty ID", ErrInvalidAssessment)
	}
	if a.Grade < MinGrade || a.Grade > MaxGrade {
		return fmt.Errorf("%w: %w: %d", ErrInvalidAssessment, ErrInvalidGrade, a.Grade)
	}
	if a.Variant == nil {
		return fmt.Errorf("%w: %s has no variant", ErrInvalidAssessment, a.ID)
	}
	if err := a.Cuts.Validate(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidAssessment, a.ID, err)
	}
	if a.Cuts.Levels() < 2 {
		return fmt.Errorf("%w: %s needs at least two levels", ErrInvalidAssessment, a.ID)
	}
	if err := a.Variant.validate(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidAssessment, a.ID, err)
	}
	return nil
}

// Kind returns the assessment's variant kind.
func (a *Assessment) Kind() AssessmentKind {
	return a.Variant.Kind()
}

// StandardCut is the cut separating the lower and upper halves of the
// levels, i.e. the level 3 cut on a four-level scale.
func (a *Assessment) StandardCut() int {
	return a.Cuts[len(a.Cuts)/2]
}
