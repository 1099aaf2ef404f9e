package handler

import "github.com/gin-gonic/gin"

// Routes groups the handlers mounted by Register.
type Routes struct {
	Submissions *SubmissionHandler
	Invites     *InviteHandler
	Events      *EventsHandler
	Ops         *MetricsHandler
	// Moderator guards the bulk import. Nil leaves it open.
	Moderator gin.HandlerFunc
}

// Register mounts every API route on r.
func (rt Routes) Register(r gin.IRouter) {
	r.GET("/health", rt.Ops.Health)
	r.GET("/ready", rt.Ops.Ready)
	r.GET("/metrics", rt.Ops.Prometheus)

	r.POST("/submit-event", rt.Submissions.Submit)
	r.GET("/reviewed-events", rt.Submissions.Reviewed)
	bulk := []gin.HandlerFunc{rt.Submissions.BulkSubmit}
	if rt.Moderator != nil {
		bulk = append([]gin.HandlerFunc{rt.Moderator}, bulk...)
	}
	r.POST("/bulk-submit-event", bulk...)

	r.POST("/send-calendar-invite", rt.Invites.Send)

	events := r.Group("/events")
	events.GET("/cards", rt.Events.Cards)
	events.GET("/calendar", rt.Events.Calendar)
	events.GET("/detail", rt.Events.Detail)
	events.GET("/export", rt.Events.Export)
	r.GET("/calendar.ics", rt.Events.Feed)
}
