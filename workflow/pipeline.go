package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nexxia-ai/meetingprep/ai"
	"github.com/nexxia-ai/meetingprep/search"
)

// Stage names, in execution order. End marks the terminal node of the chain.
const (
	StageContext  = "context"
	StageIndustry = "industry"
	StageStrategy = "strategy"
	StageBrief    = "brief"
	End           = "end"
)

// TraceRun receives pipeline execution events. Implementations must tolerate
// being called from a single goroutine only; a nil TraceRun disables tracing
// without changing pipeline behavior.
type TraceRun interface {
	StageStart(name string, state MeetingState)
	StageEnd(name string, output string, err error)
	RecordError(err error) error
	Close() error
}

// Pipeline is an ordered, acyclic chain of stages. It is stateless across
// runs and performs no external calls at construction time; each Run owns its
// state instance exclusively.
type Pipeline struct {
	stages map[string]Stage
	edges  map[string]string
	entry  string
	logger *slog.Logger
}

// NewPipeline builds the four-stage meeting preparation chain:
// context -> industry -> strategy -> brief -> End.
func NewPipeline(model *ai.Model, searcher *search.Client) *Pipeline {
	model = model.WithTemperature(stageTemperature).WithMaxTokens(stageMaxTokens)

	stages := []Stage{
		contextStage(model, searcher),
		industryStage(model, searcher),
		strategyStage(model),
		briefStage(model),
	}

	p := &Pipeline{
		stages: make(map[string]Stage, len(stages)),
		edges:  make(map[string]string, len(stages)),
		entry:  stages[0].Name,
		logger: slog.Default(),
	}

	for i, stage := range stages {
		p.stages[stage.Name] = stage
		if i+1 < len(stages) {
			p.edges[stage.Name] = stages[i+1].Name
		} else {
			p.edges[stage.Name] = End
		}
	}

	return p
}

// SetLogger overrides the pipeline logger.
func (p *Pipeline) SetLogger(logger *slog.Logger) {
	p.logger = logger
}

// Run executes every stage strictly in order, merging each stage's update
// into the running state before the next stage executes. Stage failures are
// converted to placeholder text in the stage's output field; the run always
// reaches the terminal marker and always returns a fully populated state.
// The returned error is reserved for programming errors in the chain itself.
func (p *Pipeline) Run(ctx context.Context, initial MeetingState, trace TraceRun) (MeetingState, error) {
	state := initial

	for name := p.entry; name != End; {
		stage, ok := p.stages[name]
		if !ok {
			err := fmt.Errorf("pipeline references unknown stage %q", name)
			if trace != nil {
				trace.RecordError(err)
			}
			return state, err
		}

		p.logger.Info("stage started", "stage", name, "company", state.CompanyName)
		if trace != nil {
			trace.StageStart(name, state)
		}

		result := stage.Run(ctx, state)
		text := result.Text
		if result.Err != nil {
			p.logger.Error("stage failed", "stage", name, "error", result.Err)
			text = fmt.Sprintf("⚠️ %s: %v", stage.FailureNote, result.Err)
		} else {
			p.logger.Info("stage completed", "stage", name)
		}

		if trace != nil {
			trace.StageEnd(name, text, result.Err)
		}

		state = apply(state, stage.Assign(text))

		next, ok := p.edges[name]
		if !ok {
			err := fmt.Errorf("stage %q has no outgoing edge", name)
			if trace != nil {
				trace.RecordError(err)
			}
			return state, err
		}
		name = next
	}

	return state, nil
}
