package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Generation GenerationConfig `mapstructure:"generation" validate:"required"`
	Lifecycle  LifecycleConfig  `mapstructure:"lifecycle" validate:"required"`
	Hierarchy  HierarchyConfig  `mapstructure:"hierarchy" validate:"required"`
	Logging    LoggingConfig    `mapstructure:"logging" validate:"required"`
}

// GenerationConfig controls the size and shape of a generation run.
type GenerationConfig struct {
	Seed             int64  `mapstructure:"seed"`
	StartYear        int    `mapstructure:"start_year" validate:"required,gte=2000,lte=2100"`
	Years            int    `mapstructure:"years" validate:"required,gte=1,lte=20"`
	StudentsPerGrade int    `mapstructure:"students_per_grade" validate:"required,gte=1"`
	WorkerCount      int    `mapstructure:"worker_count" validate:"required,gte=1"`
	QueueSize        int    `mapstructure:"queue_size" validate:"required,gte=1"`
	Interim          bool   `mapstructure:"interim"`
	TablesPath       string `mapstructure:"tables_path"`
}

// LifecycleConfig holds the yearly transition probabilities.
type LifecycleConfig struct {
	HoldBackRate      float64 `mapstructure:"hold_back_rate" validate:"gte=0,lte=1"`
	DropOutRate       float64 `mapstructure:"drop_out_rate" validate:"gte=0,lte=1"`
	TransferRate      float64 `mapstructure:"transfer_rate" validate:"gte=0,lte=1"`
	YearlyImprovement float64 `mapstructure:"yearly_improvement" validate:"gt=-10,lt=1"`
}

// HierarchyConfig describes the state, district and school layout.
// SchoolTypes and Tiers are relative weights used when drawing each school.
type HierarchyConfig struct {
	StateCode          string             `mapstructure:"state_code" validate:"required,len=2,alpha"`
	StateName          string             `mapstructure:"state_name" validate:"required"`
	Districts          int                `mapstructure:"districts" validate:"required,gte=1"`
	SchoolsPerDistrict int                `mapstructure:"schools_per_district" validate:"required,gte=1"`
	SchoolTypes        map[string]float64 `mapstructure:"school_types" validate:"required,min=1,dive,keys,oneof=elementary middle high k12,endkeys,gte=0"`
	Tiers              map[string]float64 `mapstructure:"tiers" validate:"required,min=1,dive,keys,oneof=poor average good excellent,endkeys,gte=0"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}
