package routes

import (
	"net/http"

	"rento/controllers"
	_ "rento/docs"
	"rento/metrics"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies carries the handlers mounted by SetupRoutes
type Dependencies struct {
	Auth       *controllers.AuthController
	Users      *controllers.UserController
	Properties *controllers.PropertyController
	Tickets    *controllers.TicketController
	Tenant     *controllers.TenantController
	Dashboard  *controllers.DashboardController
	Media      *controllers.MediaController

	// RequireAuth guards the landlord routes
	RequireAuth gin.HandlerFunc
	Melody      *melody.Melody
}

func SetupRoutes(router *gin.Engine, d Dependencies) {
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if d.Melody != nil {
		router.GET("/ws", func(c *gin.Context) {
			d.Melody.HandleRequest(c.Writer, c.Request)
		})
	}

	v1 := router.Group("/api/v1")

	v1.POST("/auth/signup", d.Auth.Signup)
	v1.POST("/auth/login", d.Auth.Login)
	v1.DELETE("/auth/logout", d.RequireAuth, d.Auth.Logout)
	v1.GET("/auth/me", d.RequireAuth, d.Auth.Me)

	// public tenant form
	v1.GET("/tenant/properties/:id", d.Tenant.GetProperty)
	v1.POST("/tenant/properties/:id/tickets", d.Tenant.SubmitTicket)

	auth := v1.Group("", d.RequireAuth)

	auth.GET("/users", d.Users.GetUsers)
	auth.PUT("/users/:id", d.Users.UpdateUser)

	auth.GET("/properties", d.Properties.GetProperties)
	auth.POST("/properties", d.Properties.CreateProperty)
	auth.GET("/properties/:id", d.Properties.GetProperty)
	auth.PUT("/properties/:id", d.Properties.UpdateProperty)
	auth.DELETE("/properties/:id", d.Properties.DeleteProperty)

	auth.GET("/properties/:id/bookings", d.Properties.GetBookings)
	auth.POST("/properties/:id/bookings", d.Properties.CreateBooking)
	auth.DELETE("/properties/:id/bookings/:bookingId", d.Properties.DeleteBooking)
	auth.GET("/properties/:id/booked-dates", d.Properties.GetBookedDates)
	auth.GET("/properties/:id/calendar", d.Properties.GetCalendar)

	auth.GET("/properties/:id/tickets", d.Properties.GetPropertyTickets)
	auth.GET("/properties/:id/tenant-link", d.Properties.GetTenantLink)
	auth.GET("/properties/:id/qrcode", d.Properties.GetQRCode)

	auth.GET("/tickets", d.Tickets.GetTickets)
	auth.POST("/tickets", d.Tickets.CreateTicket)
	auth.GET("/tickets/:id", d.Tickets.GetTicket)
	auth.PUT("/tickets/:id", d.Tickets.UpdateTicket)
	auth.DELETE("/tickets/:id", d.Tickets.DeleteTicket)

	auth.GET("/dashboard", d.Dashboard.GetStats)

	auth.POST("/img/upload", d.Media.Upload)
}
