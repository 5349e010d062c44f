package handler

import (
	"github.com/gin-gonic/gin"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth        *AuthHandler
	Athletes    *AthleteHandler
	Sports      *SportHandler
	Events      *EventHandler
	Meets       *MeetHandler
	Results     *ResultHandler
	Records     *RecordHandler
	Rosters     *RosterHandler
	TeamResults *TeamResultHandler
	History     *HistoryHandler
	Dash        *DashHandler
}

// RegisterRoutes mounts the API under the given prefix. Reads stay
// public so the site can render without a session; every mutation sits
// behind the auth middleware.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers, requireAuth gin.HandlerFunc) {
	api := r.Group(prefix)

	api.POST("/auth/login", h.Auth.Login)

	athletes := api.Group("/athletes")
	athletes.GET("", h.Athletes.List)
	athletes.GET("/:id", h.Athletes.Get)
	athletes.POST("", requireAuth, h.Athletes.Create)
	athletes.PUT("/:id", requireAuth, h.Athletes.Update)
	athletes.DELETE("/:id", requireAuth, h.Athletes.Delete)

	sports := api.Group("/sports")
	sports.GET("", h.Sports.List)
	sports.GET("/:id", h.Sports.Get)
	sports.POST("", requireAuth, h.Sports.Create)
	sports.PUT("/:id", requireAuth, h.Sports.Update)
	sports.DELETE("/:id", requireAuth, h.Sports.Delete)

	events := api.Group("/events")
	events.GET("", h.Events.List)
	events.GET("/sport/:sportId", h.Events.BySport)
	events.GET("/:id", h.Events.Get)
	events.POST("", requireAuth, h.Events.Create)
	events.PUT("/:id", requireAuth, h.Events.Update)
	events.DELETE("/:id", requireAuth, h.Events.Delete)

	meets := api.Group("/meets")
	meets.GET("", h.Meets.List)
	meets.GET("/years", h.Meets.Years)
	meets.GET("/:id", h.Meets.Get)
	meets.POST("", requireAuth, h.Meets.Create)
	meets.PUT("/:id", requireAuth, h.Meets.Update)
	meets.DELETE("/:id", requireAuth, h.Meets.Delete)

	results := api.Group("/results")
	results.GET("", h.Results.List)
	results.GET("/athlete/:id", h.Results.ByAthlete)
	results.GET("/meet/:id", h.Results.ByMeet)
	results.GET("/:id", h.Results.Get)
	results.POST("", requireAuth, h.Results.Create)
	results.POST("/bulk", requireAuth, h.Results.BulkCreate)
	results.PUT("/:id", requireAuth, h.Results.Update)
	results.DELETE("/:id", requireAuth, h.Results.Delete)

	records := api.Group("/records")
	records.GET("", h.Records.List)
	records.GET("/event/:id", h.Records.ByEvent)
	records.GET("/sport/:id", h.Records.BySport)
	records.GET("/leaderboard/:eventId", h.Records.Leaderboard)
	records.GET("/:id", h.Records.Get)
	records.POST("", requireAuth, h.Records.Create)
	records.PUT("/:id", requireAuth, h.Records.Update)
	records.DELETE("/:id", requireAuth, h.Records.Delete)

	rosters := api.Group("/rosters")
	rosters.GET("", h.Rosters.List)
	rosters.GET("/years", h.Rosters.Years)
	rosters.GET("/export", h.Rosters.Export)
	rosters.GET("/:id", h.Rosters.Get)
	rosters.POST("", requireAuth, h.Rosters.Add)
	rosters.POST("/bulk", requireAuth, h.Rosters.BulkAdd)
	rosters.POST("/bulk-delete", requireAuth, h.Rosters.BulkRemove)
	rosters.DELETE("/:id", requireAuth, h.Rosters.Remove)

	teamResults := api.Group("/team-results")
	teamResults.GET("", h.TeamResults.List)
	teamResults.GET("/standings", h.TeamResults.Standings)
	teamResults.GET("/teams", h.TeamResults.Teams)
	teamResults.GET("/years", h.TeamResults.Years)
	teamResults.GET("/:id", h.TeamResults.Get)
	teamResults.POST("", requireAuth, h.TeamResults.Create)
	teamResults.PUT("/:id", requireAuth, h.TeamResults.Update)
	teamResults.DELETE("/:id", requireAuth, h.TeamResults.Delete)

	history := api.Group("/history")
	history.GET("", h.History.List)
	history.GET("/sport/:sportId", h.History.Get)
	history.PUT("/sport/:sportId", requireAuth, h.History.Upsert)
	history.DELETE("/sport/:sportId", requireAuth, h.History.Delete)

	dash := api.Group("/dash")
	dash.GET("", h.Dash.List)
	dash.GET("/years", h.Dash.Years)
	dash.GET("/year/:year", h.Dash.Get)
	dash.PUT("/year/:year", requireAuth, h.Dash.Upsert)
	dash.POST("/year/:year/files", requireAuth, h.Dash.UploadFile)
	dash.GET("/files/:fileId/download", h.Dash.DownloadFile)
	dash.DELETE("/files/:fileId", requireAuth, h.Dash.DeleteFile)
}
