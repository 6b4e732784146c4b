// Package meetingprep prepares a business-meeting briefing by running a
// linear four-stage LLM pipeline over user-supplied meeting parameters.
package meetingprep

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nexxia-ai/meetingprep/ai"
	"github.com/nexxia-ai/meetingprep/ai/openai"
	"github.com/nexxia-ai/meetingprep/config"
	"github.com/nexxia-ai/meetingprep/search"
	"github.com/nexxia-ai/meetingprep/trace"
	"github.com/nexxia-ai/meetingprep/workflow"
)

// DefaultFocusAreas is substituted when the user leaves focus areas blank.
const DefaultFocusAreas = "No specific focus areas defined"

// Durations lists the accepted meeting durations in minutes.
var Durations = []int{30, 45, 60, 90, 120}

// MeetingRequest is the user input for a single preparation run.
type MeetingRequest struct {
	CompanyName      string
	MeetingObjective string
	Attendees        string
	Duration         int // minutes
	FocusAreas       string
}

// Briefing is the terminal artifact of a preparation run.
type Briefing struct {
	ExecutiveBrief string
	Filename       string
	State          workflow.MeetingState
}

// Preparer wires the completion model, the search client and the pipeline
// together. Construct it once at process start and share it across runs; each
// run owns its own state instance.
type Preparer struct {
	Model    *ai.Model
	Search   *search.Client
	Pipeline *workflow.Pipeline
	Tracer   *trace.Tracer
	Logger   *slog.Logger
}

// NewPreparer builds a Preparer with real provider clients from the given
// configuration. It fails when a required credential is missing.
func NewPreparer(cfg *config.Config) (*Preparer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	model := openai.NewModel(cfg.ModelName, cfg.OpenAIAPIKey)
	searcher := search.NewSerpClient(cfg.SerpAPIKey)

	var tracer *trace.Tracer
	if cfg.TraceEnabled() {
		tracer = trace.NewTracer(trace.TraceConfig{Directory: cfg.TraceDir})
	}

	return &Preparer{
		Model:    model,
		Search:   searcher,
		Pipeline: workflow.NewPipeline(model, searcher),
		Tracer:   tracer,
		Logger:   slog.Default(),
	}, nil
}

// Prepare validates the request, runs the pipeline once and returns the
// briefing. Stage-level failures never surface here; they are embedded as
// placeholder text in the state. An error return means either invalid input
// or an unexpected pipeline failure, in which case no partial artifact is
// produced.
func (p *Preparer) Prepare(ctx context.Context, req MeetingRequest) (*Briefing, error) {
	if err := workflow.Validate(req.CompanyName, req.MeetingObjective, req.Attendees); err != nil {
		return nil, err
	}
	if !ValidDuration(req.Duration) {
		return nil, fmt.Errorf("duration must be one of %v minutes", Durations)
	}

	focusAreas := req.FocusAreas
	if strings.TrimSpace(focusAreas) == "" {
		focusAreas = DefaultFocusAreas
	}

	initial := workflow.NewMeetingState(req.CompanyName, req.MeetingObjective, req.Attendees, req.Duration, focusAreas)

	var traceRun workflow.TraceRun
	if p.Tracer != nil {
		tr := p.Tracer.NewTraceRun()
		tr.Start("meeting_preparation", initial)
		defer tr.Close()
		traceRun = tr
	}

	final, err := p.Pipeline.Run(ctx, initial, traceRun)
	if err != nil {
		p.Logger.Error("pipeline run failed", "company", req.CompanyName, "error", err)
		return nil, fmt.Errorf("meeting preparation failed: %w", err)
	}

	return &Briefing{
		ExecutiveBrief: final.ExecutiveBrief,
		Filename:       DownloadFilename(req.CompanyName),
		State:          final,
	}, nil
}

// ValidDuration reports whether d is one of the accepted meeting durations.
func ValidDuration(d int) bool {
	for _, v := range Durations {
		if d == v {
			return true
		}
	}
	return false
}

// DownloadFilename derives the briefing download name from the company name:
// lowercased, spaces replaced with underscores, with a .md extension.
func DownloadFilename(company string) string {
	normalized := strings.ReplaceAll(strings.ToLower(company), " ", "_")
	return "briefing_" + normalized + ".md"
}
