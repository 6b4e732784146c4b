package meetingprep

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexxia-ai/meetingprep/ai"
	"github.com/nexxia-ai/meetingprep/config"
	"github.com/nexxia-ai/meetingprep/search"
	"github.com/nexxia-ai/meetingprep/workflow"
)

func testPreparer() *Preparer {
	model := ai.NewDummyModel(func(ctx context.Context, messages []ai.Message) (ai.AIMessage, error) {
		_, content := messages[len(messages)-1].Value()
		return ai.AIMessage{Role: ai.AssistantRole, Content: content}, nil
	})
	searcher := search.NewDummyClient(func(ctx context.Context, query string) (string, error) {
		return "canned search results", nil
	})

	return &Preparer{
		Model:    model,
		Search:   searcher,
		Pipeline: workflow.NewPipeline(model, searcher),
		Logger:   slog.Default(),
	}
}

func TestPrepareProducesBriefing(t *testing.T) {
	preparer := testPreparer()

	briefing, err := preparer.Prepare(context.Background(), MeetingRequest{
		CompanyName:      "Acme Corp",
		MeetingObjective: "Discuss partnership",
		Attendees:        "John - CEO",
		Duration:         60,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, briefing.ExecutiveBrief)
	assert.Equal(t, "briefing_acme_corp.md", briefing.Filename)
	assert.Equal(t, DefaultFocusAreas, briefing.State.FocusAreas)
	assert.Contains(t, briefing.ExecutiveBrief, "Acme Corp")
}

func TestPrepareRejectsInvalidInput(t *testing.T) {
	preparer := testPreparer()

	_, err := preparer.Prepare(context.Background(), MeetingRequest{
		CompanyName:      " ",
		MeetingObjective: "x",
		Attendees:        "y",
		Duration:         60,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "company name is required")
}

func TestPrepareRejectsInvalidDuration(t *testing.T) {
	preparer := testPreparer()

	_, err := preparer.Prepare(context.Background(), MeetingRequest{
		CompanyName:      "Acme",
		MeetingObjective: "x",
		Attendees:        "y",
		Duration:         42,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duration must be one of")
}

func TestPrepareKeepsExplicitFocusAreas(t *testing.T) {
	preparer := testPreparer()

	briefing, err := preparer.Prepare(context.Background(), MeetingRequest{
		CompanyName:      "Acme",
		MeetingObjective: "x",
		Attendees:        "y",
		Duration:         30,
		FocusAreas:       "Pricing",
	})
	require.NoError(t, err)
	assert.Equal(t, "Pricing", briefing.State.FocusAreas)
}

func TestNewPreparerRequiresCredentials(t *testing.T) {
	_, err := NewPreparer(&config.Config{ModelName: "gpt-4o-mini"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")

	_, err = NewPreparer(&config.Config{ModelName: "gpt-4o-mini", OpenAIAPIKey: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SERPAPI_API_KEY")
}

func TestValidDuration(t *testing.T) {
	for _, d := range Durations {
		assert.True(t, ValidDuration(d))
	}
	assert.False(t, ValidDuration(0))
	assert.False(t, ValidDuration(42))
}

func TestDownloadFilename(t *testing.T) {
	assert.Equal(t, "briefing_acme.md", DownloadFilename("Acme"))
	assert.Equal(t, "briefing_acme_corp.md", DownloadFilename("Acme Corp"))
	assert.Equal(t, "briefing_acme_corp_international.md", DownloadFilename("ACME Corp International"))
}
