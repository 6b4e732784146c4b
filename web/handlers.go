package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nexxia-ai/meetingprep"
	"github.com/nexxia-ai/meetingprep/workflow"
)

const configErrorMessage = "Set the OPENAI_API_KEY and SERPAPI_API_KEY environment variables to continue."

type formValues struct {
	CompanyName      string
	MeetingObjective string
	Attendees        string
	Duration         int
	FocusAreas       string
}

func (s *Server) renderIndex(c *gin.Context, status int, form formValues, warning string) {
	if form.Duration == 0 {
		form.Duration = 60
	}
	c.HTML(status, "index.html", gin.H{
		"form":            form,
		"durations":       meetingprep.Durations,
		"warning":         warning,
		"blocked":         s.preparer == nil,
		"configError":     configErrorMessage,
		"openaiOK":        s.cfg.OpenAIAPIKey != "",
		"serpOK":          s.cfg.SerpAPIKey != "",
		"traceOK":         s.cfg.TraceEnabled(),
	})
}

func (s *Server) handleIndex(c *gin.Context) {
	s.renderIndex(c, http.StatusOK, formValues{}, "")
}

func (s *Server) handlePrepare(c *gin.Context) {
	duration, _ := strconv.Atoi(c.PostForm("duration"))
	form := formValues{
		CompanyName:      c.PostForm("company_name"),
		MeetingObjective: c.PostForm("meeting_objective"),
		Attendees:        c.PostForm("attendees"),
		Duration:         duration,
		FocusAreas:       c.PostForm("focus_areas"),
	}

	if s.preparer == nil {
		s.renderIndex(c, http.StatusOK, form, configErrorMessage)
		return
	}

	if err := workflow.Validate(form.CompanyName, form.MeetingObjective, form.Attendees); err != nil {
		s.renderIndex(c, http.StatusOK, form, err.Error())
		return
	}
	if !meetingprep.ValidDuration(form.Duration) {
		s.renderIndex(c, http.StatusOK, form, "duration must be one of 30, 45, 60, 90 or 120 minutes")
		return
	}

	briefing, err := s.preparer.Prepare(c.Request.Context(), meetingprep.MeetingRequest{
		CompanyName:      form.CompanyName,
		MeetingObjective: form.MeetingObjective,
		Attendees:        form.Attendees,
		Duration:         form.Duration,
		FocusAreas:       form.FocusAreas,
	})
	if err != nil {
		s.logger.Error("meeting preparation failed", "company", form.CompanyName, "error", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"error": "An error occurred during preparation: " + err.Error(),
		})
		return
	}

	id := uuid.New().String()
	s.storeBriefing(id, briefing)

	c.HTML(http.StatusOK, "brief.html", gin.H{
		"company":  form.CompanyName,
		"brief":    briefing.ExecutiveBrief,
		"download": "/download/" + id,
		"filename": briefing.Filename,
	})
}

func (s *Server) handleDownload(c *gin.Context) {
	id := c.Param("id")

	briefing, ok := s.lookupBriefing(id)
	if !ok {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"error": "Briefing not found"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+briefing.Filename+`"`)
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(briefing.Content))
}
