// Package pipeline orchestrates the panel build: decode survey, aggregate
// by region, load events, merge, derive lag features, persist and export.
package pipeline

import (
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/dmcgrath/conflictpanel/internal/aggregate"
	"github.com/dmcgrath/conflictpanel/internal/config"
	"github.com/dmcgrath/conflictpanel/internal/database"
	"github.com/dmcgrath/conflictpanel/internal/events"
	"github.com/dmcgrath/conflictpanel/internal/export"
	"github.com/dmcgrath/conflictpanel/internal/panel"
	"github.com/dmcgrath/conflictpanel/internal/survey"
)

// StepResult holds the result of a single pipeline step.
type StepResult struct {
	Name    string
	Summary string
	Err     error
}

// Result holds the results of a full pipeline run.
type Result struct {
	RunID string
	Steps []StepResult
}

// Pipeline runs the 6-step panel build.
type Pipeline struct {
	cfg *config.Config
	db  *database.DB
}

// New creates a new pipeline.
func New(cfg *config.Config, db *database.DB) *Pipeline {
	return &Pipeline{cfg: cfg, db: db}
}

// Run executes the full pipeline. Every step is required: the first error
// aborts the run, and no partial panel is written.
func (p *Pipeline) Run() *Result {
	r := &Result{RunID: uuid.NewString()}

	// Step 1: Decode survey
	log.Println("Step 1/6: Decoding survey extract...")
	respondents, err := survey.Load(p.cfg.Inputs.SurveyPath, p.cfg.Inputs.LayoutPath)
	if err != nil {
		return r.fail("Decode survey", err)
	}
	r.step("Decode survey", fmt.Sprintf("Decoded %d respondents", len(respondents)))

	// Step 2: Aggregate by region
	log.Println("Step 2/6: Aggregating region profiles...")
	profiles := aggregate.ProfilesByRegion(respondents)
	if len(profiles) == 0 {
		return r.fail("Aggregate regions", fmt.Errorf("no survey records fall in a canonical region"))
	}
	r.step("Aggregate regions", fmt.Sprintf("Built %d region profiles", len(profiles)))

	// Step 3: Load events
	log.Println("Step 3/6: Loading event log...")
	evts, err := events.Load(p.cfg.Inputs.EventsPath, p.cfg.Analysis.DateFormats)
	if err != nil {
		return r.fail("Load events", err)
	}
	r.step("Load events", fmt.Sprintf("Loaded %d events", len(evts)))

	// Step 4: Merge
	log.Println("Step 4/6: Merging events onto region profiles...")
	rows, dropped := panel.Merge(evts, profiles)
	if dropped > 0 {
		log.Printf("dropped %d events whose region has no survey profile", dropped)
	}
	r.step("Merge", fmt.Sprintf("%d panel rows (%d events dropped)", len(rows), dropped))

	// Step 5: Lag features
	log.Println("Step 5/6: Deriving lagged event counts...")
	panel.AddFeatures(rows, p.cfg.Analysis.ReferenceYear)
	r.step("Lag features", "Derived 3 lag and 3 total columns per actor class")

	// Step 6: Export and archive
	log.Println("Step 6/6: Writing panel...")
	if err := export.WritePanel(p.cfg.Output.PanelPath, rows); err != nil {
		return r.fail("Write panel", err)
	}
	if err := p.persist(r.RunID, respondents, evts, rows, profiles, dropped); err != nil {
		return r.fail("Write panel", err)
	}
	r.step("Write panel", fmt.Sprintf("Wrote %d rows to %s", len(rows), p.cfg.Output.PanelPath))

	return r
}

// DryRun reports what would be done without reading data or writing output.
func (p *Pipeline) DryRun() *Result {
	r := &Result{}
	checks := []struct {
		name string
		path string
	}{
		{"Survey extract", p.cfg.Inputs.SurveyPath},
		{"Layout descriptor", p.cfg.Inputs.LayoutPath},
		{"Event log", p.cfg.Inputs.EventsPath},
	}
	for _, c := range checks {
		info, err := os.Stat(c.path)
		if err != nil {
			r.Steps = append(r.Steps, StepResult{
				Name:    c.name,
				Summary: fmt.Sprintf("[dry-run] MISSING: %s", c.path),
			})
			continue
		}
		r.Steps = append(r.Steps, StepResult{
			Name:    c.name,
			Summary: fmt.Sprintf("[dry-run] %s (%d bytes)", c.path, info.Size()),
		})
	}
	r.Steps = append(r.Steps, StepResult{
		Name:    "Output",
		Summary: fmt.Sprintf("[dry-run] Would write panel to %s", p.cfg.Output.PanelPath),
	})
	return r
}

func (p *Pipeline) persist(runID string, respondents []survey.Respondent, evts []events.Event,
	rows []panel.Row, profiles []aggregate.Profile, dropped int) error {
	run := &database.Run{
		ID:             runID,
		SurveyPath:     p.cfg.Inputs.SurveyPath,
		LayoutPath:     p.cfg.Inputs.LayoutPath,
		EventsPath:     p.cfg.Inputs.EventsPath,
		PanelPath:      p.cfg.Output.PanelPath,
		ReferenceYear:  p.cfg.Analysis.ReferenceYear,
		SurveyRecords:  len(respondents),
		EventRecords:   len(evts),
		PanelRows:      len(rows),
		DroppedEvents:  dropped,
		RegionsMatched: countRegions(rows),
	}
	if err := p.db.InsertRun(run); err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	if err := p.db.InsertProfiles(runID, profiles); err != nil {
		return fmt.Errorf("storing region profiles: %w", err)
	}
	if err := p.db.InsertPanelRows(runID, rows); err != nil {
		return fmt.Errorf("storing panel rows: %w", err)
	}
	return nil
}

func countRegions(rows []panel.Row) int {
	seen := make(map[string]struct{})
	for i := range rows {
		seen[rows[i].Region] = struct{}{}
	}
	return len(seen)
}

func (r *Result) step(name, summary string) *Result {
	r.Steps = append(r.Steps, StepResult{Name: name, Summary: summary})
	return r
}

func (r *Result) fail(name string, err error) *Result {
	r.Steps = append(r.Steps, StepResult{Name: name, Err: err})
	return r
}
