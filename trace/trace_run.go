package trace

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nexxia-ai/meetingprep/workflow"
)

// TraceRun records one pipeline invocation to a single trace file.
// It implements workflow.TraceRun.
type TraceRun struct {
	tracer    *Tracer
	startTime time.Time
	endTime   time.Time
	filepath  string
	file      traceWriter
}

var _ workflow.TraceRun = (*TraceRun)(nil)

func (tr *TraceRun) Filepath() string {
	return tr.filepath
}

// Start opens a named span for the whole pipeline invocation and records the
// initial state as its input.
func (tr *TraceRun) Start(span string, state workflow.MeetingState) {
	traceSync.Lock()
	defer traceSync.Unlock()

	fmt.Fprintf(tr.file, "====> [%s] Start span %s (company: %s)\n", time.Now().Format("15:04:05"), span, state.CompanyName)

	inputJSON, err := json.MarshalIndent(state, " ", "  ")
	if err == nil {
		fmt.Fprintf(tr.file, " input:\n %s\n", string(inputJSON))
	}
	tr.file.Sync()
}

func (tr *TraceRun) StageStart(name string, state workflow.MeetingState) {
	traceSync.Lock()
	defer traceSync.Unlock()

	fmt.Fprintf(tr.file, "\n---- [%s] Stage START: %s\n", time.Now().Format("15:04:05"), name)
	tr.file.Sync()
}

func (tr *TraceRun) StageEnd(name string, output string, err error) {
	traceSync.Lock()
	defer traceSync.Unlock()

	if err != nil {
		fmt.Fprintf(tr.file, " stage error: %v\n", err)
	}
	tr.logContent("output", output)
	fmt.Fprintf(tr.file, "---- [%s] Stage END: %s\n", time.Now().Format("15:04:05"), name)
	tr.file.Sync()
}

func (tr *TraceRun) RecordError(err error) error {
	traceSync.Lock()
	defer traceSync.Unlock()

	fmt.Fprintf(tr.file, "❌ Error: %v\n", err)
	tr.file.Sync()
	return nil
}

func (tr *TraceRun) Close() error {
	traceSync.Lock()
	defer traceSync.Unlock()

	tr.endTime = time.Now()
	fmt.Fprintf(tr.file, "End Time: %s\n", tr.endTime.Format(time.RFC3339))
	tr.file.Sync()

	return tr.file.Close()
}

func (tr *TraceRun) logContent(contentType, content string) {
	if content == "" {
		fmt.Fprintf(tr.file, " %s: (empty)\n", contentType)
		return
	}

	fmt.Fprintf(tr.file, " %s:\n", contentType)
	lines := strings.Split(content, "\n")
	for _, line := range lines {
		if line != "" {
			fmt.Fprintf(tr.file, "   %s\n", line)
		}
	}
}
