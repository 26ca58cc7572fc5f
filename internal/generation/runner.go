package generation

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/config"
	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/domain"
	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/domain/lifecycle"
	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/events"
	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/idgen"
	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/task"
)

// enqueueBackoff is how long Run waits for room in a full task queue.
const enqueueBackoff = time.Millisecond

// Summary reports what a run produced.
type Summary struct {
	Years       int `json:"years"`
	Students    int `json:"students"`
	Outcomes    int `json:"outcomes"`
	Failures    int `json:"failures"`
	Enrolled    int `json:"enrolled"`
	Advanced    int `json:"advanced"`
	HeldBack    int `json:"held_back"`
	Transferred int `json:"transferred"`
	Dropped     int `json:"dropped"`
}

// LogValue implements slog.LogValuer.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("years", s.Years),
		slog.Int("students", s.Students),
		slog.Int("outcomes", s.Outcomes),
		slog.Int("failures", s.Failures),
		slog.Int("enrolled", s.Enrolled),
		slog.Int("advanced", s.Advanced),
		slog.Int("held_back", s.HeldBack),
		slog.Int("transferred", s.Transferred),
		slog.Int("dropped", s.Dropped),
	)
}

// Runner simulates cfg.Years school years over one generated state.
type Runner struct {
	cfg         config.GenerationConfig
	tables      *config.Tables
	state       *domain.State
	seeder      *Seeder
	simulator   *lifecycle.Simulator
	synthesizer *OutcomeSynthesizer
	sink        OutcomeSink
	emitter     events.EventEmitter
	logger      *slog.Logger
	rng         *rand.Rand
}

// NewRunner builds the hierarchy and every collaborator of a run. A nil
// emitter disables lifecycle events.
func NewRunner(
	cfg *config.Config,
	tables *config.Tables,
	sink OutcomeSink,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (*Runner, error) {
	if cfg == nil || tables == nil || sink == nil {
		return nil, fmt.Errorf("%w: config, tables and sink are required", ErrInvalidConfig)
	}

	rng := rand.New(rand.NewSource(cfg.Generation.Seed))
	ids := idgen.New()

	state, err := BuildHierarchy(cfg.Hierarchy, tables, ids, rng)
	if err != nil {
		return nil, fmt.Errorf("building hierarchy: %w", err)
	}

	seeder, err := NewSeeder(tables, ids)
	if err != nil {
		return nil, err
	}

	simulator, err := lifecycle.NewSimulator(state, &lifecycle.Params{
		HoldBackRate:      cfg.Lifecycle.HoldBackRate,
		DropOutRate:       cfg.Lifecycle.DropOutRate,
		TransferRate:      cfg.Lifecycle.TransferRate,
		YearlyImprovement: cfg.Lifecycle.YearlyImprovement,
	})
	if err != nil {
		return nil, err
	}

	return &Runner{
		cfg:         cfg.Generation,
		tables:      tables,
		state:       state,
		seeder:      seeder,
		simulator:   simulator,
		synthesizer: NewOutcomeSynthesizer(ids),
		sink:        sink,
		emitter:     emitter,
		logger:      logger.With("component", "generation_runner"),
		rng:         rng,
	}, nil
}

// State returns the generated hierarchy.
func (r *Runner) State() *domain.State {
	return r.state
}

// Run seeds the population and simulates every configured year. Each year
// first synthesizes the outcomes of every enrolled student, one task per
// school on the worker pool, then applies the lifecycle transition to every
// student in enrollment order and enrolls a new cohort in the entry grade.
//
// Outcome failures are logged and counted in the summary; the run goes on.
// A sink failure or cancellation stops the run and returns the partial
// summary with the error. Run must be called at most once.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	students, err := r.seeder.SeedPopulation(r.state, r.cfg.StudentsPerGrade, r.rng)
	if err != nil {
		return summary, fmt.Errorf("seeding population: %w", err)
	}
	summary.Enrolled += len(students)
	for _, student := range students {
		r.emit(ctx, events.TypeEnrolled, student, r.cfg.StartYear)
	}
	r.logger.Info("population seeded",
		"schools", len(r.state.Schools()),
		"students", len(students))

	for y := 0; y < r.cfg.Years; y++ {
		year := r.cfg.StartYear + y

		written, failures, err := r.synthesizeYear(ctx, year, students)
		summary.Outcomes += written
		summary.Failures += failures
		if err != nil {
			summary.Students = len(students)
			return summary, fmt.Errorf("year %d: %w", year, err)
		}

		students = r.advanceYear(ctx, year, students, &summary)

		if y < r.cfg.Years-1 {
			cohort, err := r.enrollCohort(ctx, year+1)
			if err != nil {
				summary.Students = len(students)
				return summary, fmt.Errorf("year %d: %w", year+1, err)
			}
			summary.Enrolled += len(cohort)
			students = append(students, cohort...)
		}
		summary.Years++

		r.logger.Info("year complete",
			"year", year,
			"outcomes", written,
			"failures", failures,
			"students", len(students))
	}

	summary.Students = len(students)
	return summary, nil
}

// synthesizeYear fans one task per school out to the worker pool and waits
// for all of them.
func (r *Runner) synthesizeYear(ctx context.Context, year int, students []*domain.Student) (written, failures int, err error) {
	assessments, err := BuildAssessments(r.tables, year, r.cfg.Interim)
	if err != nil {
		return 0, 0, err
	}

	bySchool := make(map[string][]*domain.Student)
	for _, student := range students {
		id := student.School().ID
		bySchool[id] = append(bySchool[id], student)
	}

	queue := task.NewTaskQueue(r.cfg.QueueSize, r.logger)
	pool := task.NewWorkerPool(ctx, queue, task.WorkerPoolConfig{WorkerCount: r.cfg.WorkerCount}, r.logger)
	defer pool.Stop()

	var (
		mu      sync.Mutex
		taskErr error
	)
	pool.SetErrorHandler(func(_ task.Task, err error) {
		mu.Lock()
		defer mu.Unlock()
		if taskErr == nil {
			taskErr = err
		}
	})
	pool.Start()

	var tasks []*schoolYearTask
	for i, school := range r.state.Schools() {
		enrolled := bySchool[school.ID]
		if len(enrolled) == 0 {
			continue
		}
		t := newSchoolYearTask(school, enrolled, assessments, taskSeed(r.cfg.Seed, year, i),
			r.synthesizer, r.sink, r.logger)
		if err := enqueue(ctx, queue, t); err != nil {
			queue.Close()
			return 0, 0, err
		}
		tasks = append(tasks, t)
	}
	queue.Close()
	pool.Wait()

	for _, t := range tasks {
		w, f := t.counts()
		written += w
		failures += f
	}

	if err := ctx.Err(); err != nil {
		return written, failures, err
	}
	mu.Lock()
	defer mu.Unlock()
	return written, failures, taskErr
}

// advanceYear applies the lifecycle transition to every student with the
// run's random source and returns the students still enrolled.
func (r *Runner) advanceYear(ctx context.Context, year int, students []*domain.Student, summary *Summary) []*domain.Student {
	survivors := students[:0]
	for _, student := range students {
		transition, err := r.simulator.Step(student, r.rng)
		if err != nil {
			r.logger.Error("lifecycle transition failed, dropping student",
				"student_id", student.ID,
				"year", year,
				"error", err)
			summary.Failures++
			transition = lifecycle.TransitionDropped
		}

		switch transition {
		case lifecycle.TransitionAdvanced:
			summary.Advanced++
			r.emit(ctx, events.TypeAdvanced, student, year)
		case lifecycle.TransitionHeldBack:
			summary.HeldBack++
			r.emit(ctx, events.TypeHeldBack, student, year)
		case lifecycle.TransitionTransferred:
			summary.Transferred++
			r.emit(ctx, events.TypeTransferred, student, year)
		case lifecycle.TransitionDropped:
			summary.Dropped++
			r.emit(ctx, events.TypeDropped, student, year)
			continue
		}
		survivors = append(survivors, student)
	}
	return survivors
}

// enrollCohort adds a new cohort to every school whose lowest grade is the
// entry grade of the state. Students reach other grades by advancing.
func (r *Runner) enrollCohort(ctx context.Context, year int) ([]*domain.Student, error) {
	grades := r.state.Grades()
	if len(grades) == 0 {
		return nil, nil
	}
	entry := grades[0]

	var cohort []*domain.Student
	for _, school := range r.state.SchoolsOffering(entry) {
		if school.LowestGrade() != entry {
			continue
		}
		students, err := r.seeder.Cohort(school, entry, r.cfg.StudentsPerGrade, r.rng)
		if err != nil {
			return nil, err
		}
		for _, student := range students {
			r.emit(ctx, events.TypeEnrolled, student, year)
		}
		cohort = append(cohort, students...)
	}
	return cohort, nil
}

func (r *Runner) emit(ctx context.Context, eventType string, student *domain.Student, year int) {
	if r.emitter == nil {
		return
	}
	var schoolID string
	if school := student.School(); school != nil {
		schoolID = school.ID
	}
	event := events.NewEvent(eventType, student.ID, year, student.Grade(), schoolID)
	if err := r.emitter.EmitEvent(ctx, event); err != nil {
		r.logger.Warn("lifecycle event not delivered",
			"event_type", eventType,
			"student_id", student.ID,
			"error", err)
	}
}

// enqueue submits t, waiting for room while the queue is full.
func enqueue(ctx context.Context, queue *task.TaskQueue, t task.Task) error {
	for {
		err := queue.Enqueue(t)
		if !errors.Is(err, task.ErrQueueFull) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(enqueueBackoff):
		}
	}
}

// taskSeed derives the random seed of one school's task from the run seed,
// the year and the school's position in the hierarchy.
func taskSeed(seed int64, year, index int) int64 {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:], uint64(seed))
	binary.LittleEndian.PutUint64(buf[8:], uint64(year))
	binary.LittleEndian.PutUint64(buf[16:], uint64(index))
	h := fnv.New64a()
	_, _ = h.Write(buf[:])
	return int64(h.Sum64())
}
