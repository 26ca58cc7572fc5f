package generation

import (
	"fmt"

	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/domain"
	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/idgen"
	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/stats"
)

// outcomeNamespace is the id namespace of synthesized outcomes.
const outcomeNamespace = "outcome"

// OutcomeSynthesizer turns a student's capability in the assessed subject
// into a complete assessment outcome: overall score, standard error, and claim or alternate subscores.
type OutcomeSynthesizer struct {
	ids *idgen.Generator
}

// NewOutcomeSynthesizer creates a synthesizer drawing outcome ids from ids.
func NewOutcomeSynthesizer(ids *idgen.Generator) *OutcomeSynthesizer {
	return &OutcomeSynthesizer{ids: ids}
}

// Synthesize produces the outcome of student on assessment. It is safe for
// concurrent use as long as each goroutine supplies its own rng.
//
// Summative and interim outcomes carry one subscore per claim, each
// classified against the standard cut with ClaimPerfLevel. Summative
// outcomes also carry alternate scores leveled on the full scale. Block
// outcomes only report the three-level classification of the overall score.
func (s *OutcomeSynthesizer) Synthesize(student *domain.Student, assessment *domain.Assessment, rng stats.Rand) (*domain.Outcome, error) {
	capability, ok := student.Capability(assessment.Subject)
	if !ok {
		return nil, fmt.Errorf("%w: student %d has none in %s", domain.ErrNoCapability, student.ID, assessment.Subject)
	}

	cuts := assessment.Cuts
	score, err := stats.ScoreGivenCapability(capability, cuts, rng)
	if err != nil {
		return nil, fmt.Errorf("scoring: %w", err)
	}
	score.StdErr, err = stats.RandomStderr(score.Value, cuts.Min(), cuts.Max(), rng)
	if err != nil {
		return nil, fmt.Errorf("stderr: %w", err)
	}

	outcome := &domain.Outcome{
		ID:            s.ids.Next(outcomeNamespace),
		OpportunityID: idgen.UUID(),
		StudentID:     student.ID,
		AssessmentID:  assessment.ID,
		Kind:          assessment.Kind(),
		Subject:       assessment.Subject,
		Year:          assessment.Year,
		Grade:         assessment.Grade,
	}
	if school := student.School(); school != nil {
		outcome.SchoolID = school.ID
		outcome.DistrictID = school.DistrictID
	}

	switch v := assessment.Variant.(type) {
	case domain.Summative:
		outcome.Claims, err = s.claimScores(score, v.Claims, assessment, rng)
		if err != nil {
			return nil, err
		}
		if len(v.AltScores) > 0 {
			outcome.AltScores, err = s.altScores(score, v.AltScores, cuts, rng)
			if err != nil {
				return nil, err
			}
		}
	case domain.Interim:
		outcome.Claims, err = s.claimScores(score, v.Claims, assessment, rng)
		if err != nil {
			return nil, err
		}
	case domain.Block:
		score.Level = stats.ClaimPerfLevel(score.Value, score.StdErr, assessment.StandardCut())
	default:
		return nil, fmt.Errorf("%w: unsupported variant %T", domain.ErrInvalidAssessment, v)
	}

	outcome.Score = score
	return outcome, nil
}

func (s *OutcomeSynthesizer) claimScores(overall stats.Score, claims []domain.Claim, assessment *domain.Assessment, rng stats.Rand) ([]domain.ClaimScore, error) {
	cuts := assessment.Cuts
	values, err := stats.RandomSubscores(overall.Value, domain.ClaimWeights(claims), cuts.Min(), cuts.Max(), rng)
	if err != nil {
		return nil, fmt.Errorf("claims: %w", err)
	}

	standard := assessment.StandardCut()
	scores := make([]domain.ClaimScore, len(claims))
	for i, claim := range claims {
		stderr, err := stats.RandomStderr(values[i], cuts.Min(), cuts.Max(), rng)
		if err != nil {
			return nil, fmt.Errorf("claim %s stderr: %w", claim.Code, err)
		}
		scores[i] = domain.ClaimScore{
			Code: claim.Code,
			Score: stats.Score{
				Value:  values[i],
				Level:  stats.ClaimPerfLevel(values[i], stderr, standard),
				StdErr: stderr,
			},
		}
	}
	return scores, nil
}

func (s *OutcomeSynthesizer) altScores(overall stats.Score, alts []domain.Claim, cuts stats.CutPoints, rng stats.Rand) ([]domain.ClaimScore, error) {
	values, err := stats.RandomSubscores(overall.Value, domain.ClaimWeights(alts), cuts.Min(), cuts.Max(), rng)
	if err != nil {
		return nil, fmt.Errorf("alt scores: %w", err)
	}

	scores := make([]domain.ClaimScore, len(alts))
	for i, alt := range alts {
		level, err := stats.PerformanceLevel(values[i], cuts)
		if err != nil {
			return nil, fmt.Errorf("alt score %s: %w", alt.Code, err)
		}
		stderr, err := stats.RandomStderr(values[i], cuts.Min(), cuts.Max(), rng)
		if err != nil {
			return nil, fmt.Errorf("alt score %s stderr: %w", alt.Code, err)
		}
		scores[i] = domain.ClaimScore{
			Code:  alt.Code,
			Score: stats.Score{Value: values[i], Level: level + 1, StdErr: stderr},
		}
	}
	return scores, nil
}
