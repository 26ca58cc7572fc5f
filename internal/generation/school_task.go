package generation

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/domain"
	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/task"
)

// schoolYearTask synthesizes every outcome of one school in one year. Each
// task owns its random source so results do not depend on worker scheduling.
type schoolYearTask struct {
	id          uuid.UUID
	school      *domain.School
	students    []*domain.Student
	assessments AssessmentSet
	seed        int64
	synthesizer *OutcomeSynthesizer
	sink        OutcomeSink
	logger      *slog.Logger

	mu       sync.Mutex
	status   task.TaskStatus
	written  int
	failures int
}

var _ task.Task = (*schoolYearTask)(nil)

func newSchoolYearTask(
	school *domain.School,
	students []*domain.Student,
	assessments AssessmentSet,
	seed int64,
	synthesizer *OutcomeSynthesizer,
	sink OutcomeSink,
	logger *slog.Logger,
) *schoolYearTask {
	id := uuid.New()
	return &schoolYearTask{
		id:          id,
		school:      school,
		students:    students,
		assessments: assessments,
		seed:        seed,
		synthesizer: synthesizer,
		sink:        sink,
		logger:      logger.With("task_id", id, "school_id", school.ID),
		status:      task.TaskStatusPending,
	}
}

// ID returns the task's unique identifier
func (t *schoolYearTask) ID() uuid.UUID { return t.id }

// Type returns the task type identifier
func (t *schoolYearTask) Type() string { return task.TaskTypeSchoolYear }

// Status returns the current task status
func (t *schoolYearTask) Status() task.TaskStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Execute synthesizes and writes the outcomes. A failed outcome is logged,
// counted and skipped; a sink failure or cancellation fails the task.
func (t *schoolYearTask) Execute(ctx context.Context) error {
	t.setStatus(task.TaskStatusProcessing)
	rng := rand.New(rand.NewSource(t.seed))

	for _, student := range t.students {
		if err := ctx.Err(); err != nil {
			t.setStatus(task.TaskStatusFailed)
			return err
		}
		for _, assessment := range t.assessments.ForGrade(student.Grade()) {
			outcome, err := t.synthesizer.Synthesize(student, assessment, rng)
			if err != nil {
				t.logger.Error("outcome synthesis failed",
					"student_id", student.ID,
					"assessment_id", assessment.ID,
					"error", err)
				t.record(0, 1)
				continue
			}
			if err := t.sink.Write(ctx, outcome); err != nil {
				t.setStatus(task.TaskStatusFailed)
				return fmt.Errorf("writing outcome for student %d: %w", student.ID, err)
			}
			t.record(1, 0)
		}
	}

	t.setStatus(task.TaskStatusCompleted)
	return nil
}

// counts returns the outcomes written and failed so far.
func (t *schoolYearTask) counts() (written, failures int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.written, t.failures
}

func (t *schoolYearTask) record(written, failures int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.written += written
	t.failures += failures
}

func (t *schoolYearTask) setStatus(status task.TaskStatus) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = status
}
