package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/wb-go/wbf/ginext"

	"csaweb/cmd/middleware"
	"csaweb/internal/service"
)

type Routers struct {
	Service service.Service
}

func NewRouters(r *Routers) *ginext.Engine {
	app := ginext.New("release")

	app.Use(middleware.LoggingMiddleware())
	app.Use(cors.Default())
	app.GET("/health", func(c *ginext.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "csaweb"})
	})

	apiGroup := app.Group("/v1")

	apiGroup.POST("/auth/login", r.Service.Login)
	apiGroup.POST("/auth/logout", r.Service.Logout)
	apiGroup.GET("/auth/me", r.Service.Me)
	apiGroup.GET("/auth/watch", r.Service.WatchAuth)

	apiGroup.GET("/events/:id", r.Service.GetEventInfo)
	apiGroup.POST("/events/:id/register", r.Service.Register)

	apiGroup.POST("/upload", r.Service.UploadImage)

	apiGroup.GET("/contact", r.Service.MyTickets)
	apiGroup.POST("/contact", r.Service.CreateTicket)
	apiGroup.GET("/contact/:id", r.Service.GetTicket)
	apiGroup.POST("/contact/:id/reply", r.Service.ReplyTicket)
	apiGroup.PUT("/contact/:id/messages/:index", r.Service.EditTicketMessage)

	adminGroup := apiGroup.Group("/admin")
	adminGroup.GET("/comments", r.Service.AdminComments)
	adminGroup.PUT("/comments/:id/approve", r.Service.ApproveComment)
	adminGroup.DELETE("/comments/:id", r.Service.DeleteComment)
	adminGroup.GET("/contact", r.Service.AllTickets)
	adminGroup.PUT("/contact/:id/close", r.Service.CloseTicket)
	adminGroup.GET("/events/:id/registrations", r.Service.EventRegistrations)
	adminGroup.PUT("/registrations/:id/verify", r.Service.VerifyRegistration)
	adminGroup.PUT("/registrations/:id/reject", r.Service.RejectRegistration)

	app.GET("/", func(c *ginext.Context) {
		c.File("./frontend/index.html")
	})
	app.GET("/adm", func(c *ginext.Context) {
		c.File("./frontend/adm.html")
	})
	app.Static("/frontend", "./frontend")

	return app
}
