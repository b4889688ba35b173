package api

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the submission proxy and, when the handler has an
// AuthProvider, the rest of the API.
func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/healthz", h.Health)

	// Stateless proxy to the judge, same origin as the app.
	r.POST("/api/submit", h.Submit)

	if h.auth == nil {
		return
	}
	requireUser := h.auth.RequireUser()

	api := r.Group("/api")
	{
		api.GET("/problems", h.auth.OptionalUser(), h.ListProblems)
		api.GET("/problems/:slug", h.GetProblem)
		api.GET("/leaderboard", h.Leaderboard)
	}

	authed := r.Group("/api", requireUser)
	{
		authed.POST("/problems/:slug/submissions", h.SubmitSolution)
		authed.GET("/submissions", h.ListSubmissions)
		authed.GET("/profile", h.GetProfile)
		authed.GET("/me", h.Me)
		authed.GET("/drafts/:slug/:language", h.GetDraft)
		authed.PUT("/drafts/:slug/:language", h.PutDraft)
	}

	// Provider redirects carry no session; identity comes from the sealed state.
	r.GET("/auth/:provider/login", h.Login)
	r.GET("/auth/:provider/callback", h.Callback)
	r.POST("/auth/logout", requireUser, h.Logout)
}
