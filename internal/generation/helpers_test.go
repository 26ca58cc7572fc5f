package generation

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Generation: config.GenerationConfig{
			Seed:             7,
			StartYear:        2022,
			Years:            2,
			StudentsPerGrade: 3,
			WorkerCount:      3,
			QueueSize:        2,
			Interim:          true,
		},
		Lifecycle: config.LifecycleConfig{
			HoldBackRate:      0.05,
			DropOutRate:       0.25,
			TransferRate:      0.05,
			YearlyImprovement: 0.1,
		},
		Hierarchy: config.HierarchyConfig{
			StateCode:          "CA",
			StateName:          "California",
			Districts:          2,
			SchoolsPerDistrict: 3,
			SchoolTypes:        map[string]float64{"elementary": 1, "middle": 1, "high": 1},
			Tiers:              map[string]float64{"average": 1, "good": 1, "poor": 1},
		},
		Logging: config.LoggingConfig{Level: "info"},
	}
}

func testTables(t *testing.T) *config.Tables {
	t.Helper()
	tables, err := config.LoadTables("")
	require.NoError(t, err)
	return tables
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
