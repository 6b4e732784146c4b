package workflow

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/nexxia-ai/meetingprep/ai"
	"github.com/nexxia-ai/meetingprep/search"
)

const (
	// searchResultLimit caps the raw search results embedded in a prompt.
	searchResultLimit = 3000

	stageTemperature = 0.7
	stageMaxTokens   = 2000

	notAvailable = "Not available"
)

// StageResult carries either the text produced by a stage or the failure that
// prevented it. The runner converts failures to placeholder text so a stage
// can never abort the run.
type StageResult struct {
	Text string
	Err  error
}

// Stage is a single node in the pipeline. Assign maps the stage's produced
// text to its own output field, which is the only field the stage may write.
type Stage struct {
	Name        string
	FailureNote string
	Assign      func(text string) StateUpdate
	Run         func(ctx context.Context, state MeetingState) StageResult
}

func complete(ctx context.Context, model *ai.Model, prompt string) StageResult {
	msg, err := model.Call(ctx, []ai.Message{ai.UserMessage{Role: ai.UserRole, Content: prompt}})
	if err != nil {
		return StageResult{Err: err}
	}
	return StageResult{Text: msg.Content}
}

func truncateResults(results string) string {
	if len(results) <= searchResultLimit {
		return results
	}
	// never cut a multibyte rune in half
	limit := searchResultLimit
	for limit > 0 && !utf8.RuneStart(results[limit]) {
		limit--
	}
	return results[:limit]
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func contextStage(model *ai.Model, searcher *search.Client) Stage {
	return Stage{
		Name:        StageContext,
		FailureNote: "Failed to analyse the company context",
		Assign:      func(text string) StateUpdate { return StateUpdate{ContextAnalysis: &text} },
		Run: func(ctx context.Context, state MeetingState) StageResult {
			query := fmt.Sprintf("%q recent news, products and services 2024 2025", state.CompanyName)
			results, err := searcher.Run(ctx, query)
			if err != nil {
				return StageResult{Err: err}
			}

			prompt := fmt.Sprintf(`You are a senior business analyst. Your task is to analyse the context for a meeting with the company '%s'.

**MEETING DETAILS:**
- Objective: %s
- Attendees: %s
- Duration: %d minutes

**WEB SEARCH RESULTS:**
%s

**INSTRUCTION:**
Based on the data, produce a concise context analysis in markdown covering:
1.  **Company Profile:** sector, size and market position.
2.  **Relevant News:** main recent developments.
3.  **Key Products/Services:** what the company offers.
4.  **Relevance to the Meeting:** how this context affects the meeting objective.`,
				state.CompanyName, state.MeetingObjective, state.Attendees, state.Duration,
				truncateResults(results))

			return complete(ctx, model, prompt)
		},
	}
}

func industryStage(model *ai.Model, searcher *search.Client) Stage {
	return Stage{
		Name:        StageIndustry,
		FailureNote: "Failed to analyse the industry",
		Assign:      func(text string) StateUpdate { return StateUpdate{IndustryAnalysis: &text} },
		Run: func(ctx context.Context, state MeetingState) StageResult {
			query := fmt.Sprintf("market analysis and trends for the sector of '%s'", state.CompanyName)
			results, err := searcher.Run(ctx, query)
			if err != nil {
				return StageResult{Err: err}
			}

			prompt := fmt.Sprintf(`As a market analyst, your task is to analyse the industry of the company '%s'.

**MEETING CONTEXT:**
- Objective: %s

**MARKET DATA (WEB SEARCH):**
%s

**INSTRUCTION:**
Provide an industry analysis in markdown focusing on:
1.  **Sector Overview:** size, growth and characteristics.
2.  **Current Trends:** technological, consumer or regulatory.
3.  **Competitive Landscape:** main competitors and their differentiators.
4.  **Opportunities and Threats (SWOT):** factors that may affect the meeting.`,
				state.CompanyName, state.MeetingObjective,
				truncateResults(results))

			return complete(ctx, model, prompt)
		},
	}
}

func strategyStage(model *ai.Model) Stage {
	return Stage{
		Name:        StageStrategy,
		FailureNote: "Failed to develop the strategy",
		Assign:      func(text string) StateUpdate { return StateUpdate{Strategy: &text} },
		Run: func(ctx context.Context, state MeetingState) StageResult {
			prompt := fmt.Sprintf(`You are a strategy consultant. Your mission is to create a strategy for the meeting based on the analyses below.

**CONTEXT ANALYSIS:**
%s

**INDUSTRY ANALYSIS:**
%s

**MEETING PARAMETERS:**
- Duration: %d minutes
- Objective: %s
- Attendees: %s

**INSTRUCTION:**
Develop a meeting strategy in markdown containing:
1.  **Detailed Agenda:** topics with time allocations (total: %d min).
2.  **Approach Strategy:** key messages to communicate and questions to ask.
3.  **Action Plan and Next Steps:** what to do after the meeting.`,
				orDefault(state.ContextAnalysis, notAvailable),
				orDefault(state.IndustryAnalysis, notAvailable),
				state.Duration, state.MeetingObjective, state.Attendees,
				state.Duration)

			return complete(ctx, model, prompt)
		},
	}
}

func briefStage(model *ai.Model) Stage {
	return Stage{
		Name:        StageBrief,
		FailureNote: "Failed to create the executive brief",
		Assign:      func(text string) StateUpdate { return StateUpdate{ExecutiveBrief: &text} },
		Run: func(ctx context.Context, state MeetingState) StageResult {
			prompt := fmt.Sprintf(`As an executive assistant, compile a final brief for the meeting with '%s'.

**COMPILED DATA:**
- Context: %s
- Industry: %s
- Strategy: %s

**INSTRUCTION:**
Create a complete, well-structured executive brief in markdown. The document must be clear, concise and visually organised. Keep the section headers below exactly as written.

# 📋 EXECUTIVE BRIEF: Meeting with %s

## 🎯 1. MEETING SUMMARY
- **Objective:** %s
- **Attendees:** %s
- **Duration:** %d minutes

## 🏢 2. COMPANY CONTEXT
%s

## 📊 3. MARKET ANALYSIS
%s

## 🚀 4. STRATEGY AND AGENDA
%s`,
				state.CompanyName,
				orDefault(state.ContextAnalysis, notAvailable),
				orDefault(state.IndustryAnalysis, notAvailable),
				orDefault(state.Strategy, notAvailable),
				state.CompanyName,
				state.MeetingObjective, state.Attendees, state.Duration,
				orDefault(state.ContextAnalysis, "Analysis not available."),
				orDefault(state.IndustryAnalysis, "Analysis not available."),
				orDefault(state.Strategy, "Strategy not available."))

			return complete(ctx, model, prompt)
		},
	}
}
