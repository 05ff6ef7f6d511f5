package controllers

import (
	"rento/dto"
	"rento/response"
	"rento/services"
	"rento/validator"

	"github.com/gin-gonic/gin"
)

// TenantController serves the public form reached through the property QR code
type TenantController struct {
	properties *services.PropertyService
	tickets    *services.TicketService
}

func NewTenantController(properties *services.PropertyService, tickets *services.TicketService) *TenantController {
	return &TenantController{properties: properties, tickets: tickets}
}

func (ctrl *TenantController) GetProperty(c *gin.Context) {
	p, err := ctrl.properties.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, dto.NewTenantPropertyResponse(p))
}

func (ctrl *TenantController) SubmitTicket(c *gin.Context) {
	var req dto.TenantTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	draft := req.ToModel()
	if err := validator.ValidateTicket(&draft); err != nil {
		c.Error(err)
		return
	}

	ticket, err := ctrl.tickets.SubmitTenantTicket(c.Request.Context(), c.Param("id"), draft)
	if err != nil {
		c.Error(err)
		return
	}
	response.Created(c, ticket)
}
