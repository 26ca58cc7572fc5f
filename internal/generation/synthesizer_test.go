package generation

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/domain"
	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/idgen"
	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/stats"
)

var ela3Cuts = stats.CutPoints{2114, 2367, 2432, 2490, 2623}

var elaClaims = []domain.Claim{
	{Code: "1", Weight: 0.27},
	{Code: "2", Weight: 0.31},
	{Code: "3", Weight: 0.19},
	{Code: "4", Weight: 0.23},
}

func synthStudent(t *testing.T, capability float64) *domain.Student {
	t.Helper()
	school, err := domain.NewSchool("CA0000100001", "CA00001", "Elementary", domain.SchoolTypeElementary, domain.TierAverage, 0)
	require.NoError(t, err)
	c, err := stats.NewCapability(capability)
	require.NoError(t, err)
	student, err := domain.NewStudent(42, "ssid", stats.Profile{}, school, 3, domain.Capabilities{domain.SubjectELA: c})
	require.NoError(t, err)
	return student
}

func synthAssessment(t *testing.T, variant domain.Variant) *domain.Assessment {
	t.Helper()
	a, err := domain.NewAssessment("A-"+string(variant.Kind()), domain.SubjectELA, 3, 2023, ela3Cuts, variant)
	require.NoError(t, err)
	return a
}

func TestSynthesize_Summative(t *testing.T) {
	t.Parallel()

	synth := NewOutcomeSynthesizer(idgen.New())
	assessment := synthAssessment(t, domain.Summative{
		Claims:    elaClaims,
		AltScores: []domain.Claim{{Code: "A", Weight: 0.5}, {Code: "B", Weight: 0.5}},
	})
	rng := rand.New(rand.NewSource(5))

	for _, capability := range []float64{0, 1.3, 2.5, 3.99} {
		student := synthStudent(t, capability)
		outcome, err := synth.Synthesize(student, assessment, rng)
		require.NoError(t, err)

		assert.Equal(t, int64(42), outcome.StudentID)
		assert.Equal(t, "CA0000100001", outcome.SchoolID)
		assert.Equal(t, "CA00001", outcome.DistrictID)
		assert.Equal(t, domain.KindSummative, outcome.Kind)
		assert.Equal(t, 2023, outcome.Year)
		assert.NotEmpty(t, outcome.OpportunityID)

		score := outcome.Score
		assert.GreaterOrEqual(t, score.Value, ela3Cuts.Min())
		assert.Less(t, score.Value, ela3Cuts.Max())
		assert.GreaterOrEqual(t, score.StdErr, 1)
		level, err := stats.PerformanceLevel(score.Value, ela3Cuts)
		require.NoError(t, err)
		assert.Equal(t, level+1, score.Level)

		require.Len(t, outcome.Claims, len(elaClaims))
		var weighted float64
		for i, claim := range outcome.Claims {
			assert.Equal(t, elaClaims[i].Code, claim.Code)
			assert.Contains(t, []int{1, 2, 3}, claim.Score.Level)
			weighted += elaClaims[i].Weight * float64(claim.Score.Value)
		}
		assert.LessOrEqual(t, math.Abs(weighted-float64(score.Value)), 1.0)

		require.Len(t, outcome.AltScores, 2)
		for _, alt := range outcome.AltScores {
			altLevel, err := stats.PerformanceLevel(alt.Score.Value, ela3Cuts)
			require.NoError(t, err)
			assert.Equal(t, altLevel+1, alt.Score.Level)
		}
	}
}

func TestSynthesize_Interim(t *testing.T) {
	t.Parallel()

	synth := NewOutcomeSynthesizer(idgen.New())
	outcome, err := synth.Synthesize(synthStudent(t, 2), synthAssessment(t, domain.Interim{Claims: elaClaims}),
		rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	assert.Equal(t, domain.KindInterim, outcome.Kind)
	assert.Len(t, outcome.Claims, len(elaClaims))
	assert.Empty(t, outcome.AltScores)
}

func TestSynthesize_Block(t *testing.T) {
	t.Parallel()

	synth := NewOutcomeSynthesizer(idgen.New())
	assessment := synthAssessment(t, domain.Block{Name: "Research"})
	rng := rand.New(rand.NewSource(2))

	levels := map[int]bool{}
	for _, capability := range []float64{0.1, 2.0, 3.9} {
		outcome, err := synth.Synthesize(synthStudent(t, capability), assessment, rng)
		require.NoError(t, err)
		assert.Empty(t, outcome.Claims)
		assert.Equal(t, stats.ClaimPerfLevel(outcome.Score.Value, outcome.Score.StdErr, assessment.StandardCut()),
			outcome.Score.Level)
		levels[outcome.Score.Level] = true
	}
	assert.True(t, levels[stats.ClaimBelowStandard], "a weak student should be below standard")
	assert.True(t, levels[stats.ClaimAboveStandard], "a strong student should be above standard")
}

func TestSynthesize_UniqueOutcomeIDs(t *testing.T) {
	t.Parallel()

	synth := NewOutcomeSynthesizer(idgen.New())
	assessment := synthAssessment(t, domain.Interim{Claims: elaClaims})
	student := synthStudent(t, 2)
	rng := rand.New(rand.NewSource(3))

	first, err := synth.Synthesize(student, assessment, rng)
	require.NoError(t, err)
	second, err := synth.Synthesize(student, assessment, rng)
	require.NoError(t, err)

	assert.Equal(t, idgen.DefaultInit, first.ID)
	assert.Equal(t, idgen.DefaultInit+1, second.ID)
	assert.NotEqual(t, first.OpportunityID, second.OpportunityID)
}

func TestSynthesize_UsesAssessedSubject(t *testing.T) {
	t.Parallel()

	school, err := domain.NewSchool("CA0000100001", "CA00001", "Elementary", domain.SchoolTypeElementary, domain.TierAverage, 0)
	require.NoError(t, err)
	low, err := stats.NewCapability(0.2)
	require.NoError(t, err)
	high, err := stats.NewCapability(3.8)
	require.NoError(t, err)
	student, err := domain.NewStudent(42, "ssid", stats.Profile{}, school, 3,
		domain.Capabilities{domain.SubjectELA: low, domain.SubjectMath: high})
	require.NoError(t, err)

	synth := NewOutcomeSynthesizer(idgen.New())
	rng := rand.New(rand.NewSource(9))
	interim := domain.Interim{Claims: elaClaims}

	ela, err := domain.NewAssessment("ELA-3", domain.SubjectELA, 3, 2023, ela3Cuts, interim)
	require.NoError(t, err)
	math3, err := domain.NewAssessment("Math-3", domain.SubjectMath, 3, 2023, ela3Cuts, interim)
	require.NoError(t, err)

	elaOutcome, err := synth.Synthesize(student, ela, rng)
	require.NoError(t, err)
	mathOutcome, err := synth.Synthesize(student, math3, rng)
	require.NoError(t, err)

	assert.Equal(t, 1, elaOutcome.Score.Level)
	assert.Equal(t, 4, mathOutcome.Score.Level)
}

func TestSynthesize_MissingSubject(t *testing.T) {
	t.Parallel()

	math3, err := domain.NewAssessment("Math-3", domain.SubjectMath, 3, 2023, ela3Cuts, domain.Block{Name: "Research"})
	require.NoError(t, err)

	_, err = NewOutcomeSynthesizer(idgen.New()).Synthesize(synthStudent(t, 2), math3, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, domain.ErrNoCapability)
}
