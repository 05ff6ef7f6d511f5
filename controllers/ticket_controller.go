package controllers

import (
	"net/http"

	"rento/dto"
	"rento/response"
	"rento/services"
	"rento/validator"

	"github.com/gin-gonic/gin"
)

type TicketController struct {
	tickets *services.TicketService
}

func NewTicketController(tickets *services.TicketService) *TicketController {
	return &TicketController{tickets: tickets}
}

// GetTickets supports ?q=, ?status=, ?propertyId= and ?source=all|tenant|internal
func (ctrl *TicketController) GetTickets(c *gin.Context) {
	var q dto.TicketFilterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	tickets, err := ctrl.tickets.Filter(c.Request.Context(), q.ToQuery())
	if err != nil {
		c.Error(err)
		return
	}
	response.SuccessWithTotal(c, tickets, len(tickets))
}

func (ctrl *TicketController) GetTicket(c *gin.Context) {
	ticket, err := ctrl.tickets.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, ticket)
}

func (ctrl *TicketController) CreateTicket(c *gin.Context) {
	var req dto.TicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	draft := req.ToModel()
	if err := validator.ValidateTicket(&draft); err != nil {
		c.Error(err)
		return
	}

	ticket, err := ctrl.tickets.Create(c.Request.Context(), draft)
	if err != nil {
		c.Error(err)
		return
	}
	response.Created(c, ticket)
}

func (ctrl *TicketController) UpdateTicket(c *gin.Context) {
	var req dto.TicketUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ticket, err := ctrl.tickets.Update(c.Request.Context(), c.Param("id"), req.Patch())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, ticket)
}

func (ctrl *TicketController) DeleteTicket(c *gin.Context) {
	if err := ctrl.tickets.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
