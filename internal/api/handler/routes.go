package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts every endpoint on the engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/", h.Login)

	r.GET("/api/quotes/daily", h.DailyQuote)
	r.GET("/ws", h.ServeWebSocket)
	r.Static("/uploads", h.Cfg.UploadDir)

	authed := r.Group("/api", h.AuthRequired())
	{
		authed.GET("/auth/me", h.Me)

		authed.GET("/mentors", h.ListMentors)
		authed.POST("/mentor-exam/submit", h.SubmitMentorExam)

		authed.GET("/messages/chats", h.ListChats)
		authed.GET("/messages/:partnerId", h.GetChatHistory)
		authed.POST("/messages/send", h.SendMessage)

		authed.POST("/upload", h.UploadFile)

		authed.GET("/meetings", h.ListMeetings)
		authed.POST("/meetings", h.CreateMeeting)

		authed.GET("/todos", h.ListTodos)
		authed.POST("/todos", h.CreateTodo)
		authed.PUT("/todos/:id", h.UpdateTodo)
		authed.DELETE("/todos/:id", h.DeleteTodo)

		authed.GET("/resumes", h.ListResumes)
		authed.POST("/resumes", h.CreateResume)
		authed.PUT("/resumes/:id", h.UpdateResume)

		authed.POST("/study-sessions", h.CreateStudySession)
		authed.GET("/study-sessions/analytics", h.StudyAnalytics)

		authed.POST("/ai/chat", h.AIChat)

		authed.GET("/admin/stats", h.AdminRequired(), h.AdminStats)
	}
}
