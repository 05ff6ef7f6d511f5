package controllers

import (
	"net/http"
	"time"

	"rento/dto"
	"rento/models"
	"rento/response"
	"rento/services"
	"rento/validator"

	"github.com/gin-gonic/gin"
)

type PropertyController struct {
	properties *services.PropertyService
	bookings   *services.BookingService
	tickets    *services.TicketService
	links      *services.TenantLinks
	clock      services.Clock
}

type PropertyControllerOptions struct {
	Properties *services.PropertyService
	Bookings   *services.BookingService
	Tickets    *services.TicketService
	Links      *services.TenantLinks
	Clock      services.Clock
}

func NewPropertyController(opts PropertyControllerOptions) *PropertyController {
	if opts.Clock == nil {
		opts.Clock = services.RealClock()
	}
	return &PropertyController{
		properties: opts.Properties,
		bookings:   opts.Bookings,
		tickets:    opts.Tickets,
		links:      opts.Links,
		clock:      opts.Clock,
	}
}

func (ctrl *PropertyController) today() models.Date {
	return models.DateOf(ctrl.clock.Now())
}

// GetProperties lists every property, filtered by ?q= when present
func (ctrl *PropertyController) GetProperties(c *gin.Context) {
	ctx := c.Request.Context()
	if q := c.Query("q"); q != "" {
		result, err := ctrl.properties.Search(ctx, q)
		if err != nil {
			c.Error(err)
			return
		}
		response.Success(c, dto.PropertySearchResponse{
			Properties: dto.NewPropertyResponses(result.Properties, ctrl.today()),
			Fuzzy:      result.Fuzzy,
			Suggestion: result.Suggestion,
		})
		return
	}

	props, err := ctrl.properties.List(ctx)
	if err != nil {
		c.Error(err)
		return
	}
	response.SuccessWithTotal(c, dto.NewPropertyResponses(props, ctrl.today()), len(props))
}

func (ctrl *PropertyController) GetProperty(c *gin.Context) {
	p, err := ctrl.properties.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, dto.NewPropertyResponse(*p, ctrl.today()))
}

func (ctrl *PropertyController) CreateProperty(c *gin.Context) {
	var req dto.PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p := req.ToModel(nil)
	if err := validator.ValidateProperty(&p); err != nil {
		c.Error(err)
		return
	}

	created, err := ctrl.properties.Add(c.Request.Context(), p)
	if err != nil {
		c.Error(err)
		return
	}
	response.Created(c, dto.NewPropertyResponse(*created, ctrl.today()))
}

func (ctrl *PropertyController) UpdateProperty(c *gin.Context) {
	var req dto.PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := ctrl.properties.Modify(c.Request.Context(), c.Param("id"), func(existing *models.Property) error {
		p := req.ToModel(existing)
		if err := validator.ValidateProperty(&p); err != nil {
			return err
		}
		*existing = p
		return nil
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, dto.NewPropertyResponse(*updated, ctrl.today()))
}

func (ctrl *PropertyController) DeleteProperty(c *gin.Context) {
	if err := ctrl.properties.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctrl *PropertyController) GetBookings(c *gin.Context) {
	bookings, err := ctrl.bookings.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.SuccessWithTotal(c, dto.NewBookingResponses(bookings), len(bookings))
}

func (ctrl *PropertyController) CreateBooking(c *gin.Context) {
	var req dto.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	b, err := req.ToModel()
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := validator.ValidateBookingRange(b.Range()); err != nil {
		c.Error(err)
		return
	}

	created, err := ctrl.bookings.Add(c.Request.Context(), c.Param("id"), b)
	if err != nil {
		c.Error(err)
		return
	}
	response.Created(c, dto.NewBookingResponse(*created))
}

func (ctrl *PropertyController) DeleteBooking(c *gin.Context) {
	if err := ctrl.bookings.Delete(c.Request.Context(), c.Param("id"), c.Param("bookingId")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctrl *PropertyController) GetBookedDates(c *gin.Context) {
	dates, err := ctrl.bookings.BookedDates(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.SuccessWithTotal(c, dates, len(dates))
}

// GetCalendar shows one month, the current one unless ?month=YYYY-MM is given
func (ctrl *PropertyController) GetCalendar(c *gin.Context) {
	var q dto.CalendarQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "month must use the YYYY-MM format")
		return
	}
	month := ctrl.clock.Now()
	if q.Month != "" {
		parsed, err := time.Parse("2006-01", q.Month)
		if err != nil {
			response.BadRequest(c, "month must use the YYYY-MM format")
			return
		}
		month = parsed
	}

	days, err := ctrl.bookings.Calendar(c.Request.Context(), c.Param("id"), month)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, days)
}

func (ctrl *PropertyController) GetPropertyTickets(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	if _, err := ctrl.properties.Get(ctx, id); err != nil {
		c.Error(err)
		return
	}
	tickets, err := ctrl.tickets.ListByProperty(ctx, id)
	if err != nil {
		c.Error(err)
		return
	}
	response.SuccessWithTotal(c, tickets, len(tickets))
}

func (ctrl *PropertyController) GetTenantLink(c *gin.Context) {
	p, err := ctrl.properties.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, dto.TenantLinkResponse{PropertyID: p.ID, URL: ctrl.links.URL(p.ID)})
}

func (ctrl *PropertyController) GetQRCode(c *gin.Context) {
	p, err := ctrl.properties.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	png, err := ctrl.links.QRCode(p.ID)
	if err != nil {
		c.Error(err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
