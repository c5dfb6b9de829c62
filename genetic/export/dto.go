package export

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"

	"github.com/lixenwraith/evolve/genetic"
	"github.com/lixenwraith/evolve/genetic/tracking"
)

// ReportDTO is the serializable form of a finished run
type ReportDTO struct {
	// RunID fingerprints the configuration; equal configs share an ID
	RunID      string          `toml:"run_id"`
	Config     ConfigDTO       `toml:"config"`
	Summary    SummaryDTO      `toml:"summary"`
	Population []IndividualDTO `toml:"population"`
	Trace      []PointDTO      `toml:"trace,omitempty"`
}

// ConfigDTO mirrors genetic.Config
type ConfigDTO struct {
	PopulationCount int     `toml:"population_count"`
	StepCount       int     `toml:"step_count"`
	MinX            float64 `toml:"min_x"`
	MaxX            float64 `toml:"max_x"`
	MinMutation     float64 `toml:"min_mutation"`
	MaxMutation     float64 `toml:"max_mutation"`
	Seed            Seed    `toml:"seed"`
	MutateBest      bool    `toml:"mutate_best"`
}

// Seed is an LCG seed encoded as a decimal string
// TOML integers are signed 64-bit, which cannot hold the upper half of the uint64 range
type Seed uint64

func (s Seed) MarshalText() ([]byte, error) {
	return strconv.AppendUint(nil, uint64(s), 10), nil
}

// UnmarshalText accepts the decimal text of a string or a bare integer
func (s *Seed) UnmarshalText(text []byte) error {
	v, err := strconv.ParseUint(string(text), 10, 64)
	if err != nil {
		return errors.Wrapf(err, "export: seed %q", text)
	}
	*s = Seed(v)
	return nil
}

// SummaryDTO mirrors genetic.Stats
type SummaryDTO struct {
	Min       float64 `toml:"min"`
	Max       float64 `toml:"max"`
	Mean      float64 `toml:"avg"`
	Median    float64 `toml:"median"`
	StdDev    float64 `toml:"stddev"`
	BestID    uint64  `toml:"best_id"`
	BestX     float64 `toml:"best_x"`
	BestScore float64 `toml:"best_score"`
}

// IndividualDTO is one member of the final population; score is informational
type IndividualDTO struct {
	ID    uint64  `toml:"id"`
	X     float64 `toml:"x"`
	Score float64 `toml:"score"`
}

// PointDTO is one convergence trace sample
type PointDTO struct {
	Step      int     `toml:"step"`
	Min       float64 `toml:"min"`
	Max       float64 `toml:"max"`
	Mean      float64 `toml:"avg"`
	BestID    uint64  `toml:"best_id"`
	BestX     float64 `toml:"best_x"`
	Diversity float64 `toml:"diversity"`
}

// RunID derives a stable name-based UUID from every config field
func RunID(config genetic.Config) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("evolve:%+v", config))).String()
}

// FromRun converts a finished run into a report
// trace may be nil
func FromRun(config genetic.Config, pop genetic.Population, trace []tracking.Point) ReportDTO {
	summary := genetic.Measure(pop)

	scores := make([]float64, len(pop))
	for i, ind := range pop {
		scores[i] = ind.Score()
	}
	// Only empty input errors, and Measure has already rejected that
	median, _ := stats.Median(scores)
	stddev, _ := stats.StandardDeviationPopulation(scores)

	dto := ReportDTO{
		RunID: RunID(config),
		Config: ConfigDTO{
			PopulationCount: config.PopulationCount,
			StepCount:       config.StepCount,
			MinX:            config.MinX,
			MaxX:            config.MaxX,
			MinMutation:     config.MinMutation,
			MaxMutation:     config.MaxMutation,
			Seed:            Seed(config.Seed),
			MutateBest:      config.MutateBest,
		},
		Summary: SummaryDTO{
			Min:       summary.Min,
			Max:       summary.Max,
			Mean:      summary.Mean,
			Median:    median,
			StdDev:    stddev,
			BestID:    summary.Best.ID,
			BestX:     summary.Best.X,
			BestScore: summary.Best.Score(),
		},
		Population: make([]IndividualDTO, len(pop)),
	}

	for i, ind := range pop {
		dto.Population[i] = IndividualDTO{ID: ind.ID, X: ind.X, Score: scores[i]}
	}

	for _, p := range trace {
		dto.Trace = append(dto.Trace, PointDTO{
			Step:      p.Step,
			Min:       p.Min,
			Max:       p.Max,
			Mean:      p.Mean,
			BestID:    p.BestID,
			BestX:     p.BestX,
			Diversity: p.Diversity,
		})
	}

	return dto
}

// ToConfig converts the config section back to genetic.Config
func (dto ReportDTO) ToConfig() genetic.Config {
	c := dto.Config
	return genetic.Config{
		PopulationCount: c.PopulationCount,
		StepCount:       c.StepCount,
		MinX:            c.MinX,
		MaxX:            c.MaxX,
		MinMutation:     c.MinMutation,
		MaxMutation:     c.MaxMutation,
		Seed:            uint64(c.Seed),
		MutateBest:      c.MutateBest,
	}
}

// ToPopulation converts the population section back to genetic form
// Scores are recomputed from positions, stored scores are ignored
func (dto ReportDTO) ToPopulation() genetic.Population {
	pop := make(genetic.Population, len(dto.Population))
	for i, ind := range dto.Population {
		pop[i] = genetic.Individual{ID: ind.ID, X: ind.X}
	}
	return pop
}

// ToTrace converts the trace section back to tracking points
func (dto ReportDTO) ToTrace() []tracking.Point {
	if len(dto.Trace) == 0 {
		return nil
	}
	points := make([]tracking.Point, len(dto.Trace))
	for i, p := range dto.Trace {
		points[i] = tracking.Point{
			Step:      p.Step,
			Min:       p.Min,
			Max:       p.Max,
			Mean:      p.Mean,
			BestID:    p.BestID,
			BestX:     p.BestX,
			Diversity: p.Diversity,
		}
	}
	return points
}

// BatchDTO holds the reports of a multi-seed batch in run order
type BatchDTO struct {
	Runs []ReportDTO `toml:"run"`
}
