package handlers

import (
	"net/http"

	"github.com/architect/backoffice/internal/common/errors"
	"github.com/architect/backoffice/internal/common/middleware"
	"github.com/architect/backoffice/internal/people/models"
	"github.com/architect/backoffice/internal/people/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PeopleHandler serves the person and address endpoints
type PeopleHandler struct {
	people *services.PeopleService
}

// NewPeopleHandler creates a new people handler
func NewPeopleHandler(people *services.PeopleService) *PeopleHandler {
	return &PeopleHandler{people: people}
}

// CreatePerson registers a new person in the pending approval state
func (h *PeopleHandler) CreatePerson(c *gin.Context) {
	actorID, _ := middleware.ActorFromContext(c)

	var req models.CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid person payload"))
		return
	}

	person, err := h.people.CreatePerson(req, actorID)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, person)
}

// ListPersons lists persons; with mine=true only those the caller registered
func (h *PeopleHandler) ListPersons(c *gin.Context) {
	var persons []*models.Person
	var err error

	if c.Query("mine") == "true" {
		actorID, ok := middleware.ActorFromContext(c)
		if !ok {
			middleware.JSONErrorResponse(c, errors.Unauthorized("authentication required"))
			return
		}
		persons, err = h.people.ListPersonsCreatedBy(actorID)
	} else {
		persons, err = h.people.ListPersons()
	}

	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, persons)
}

// GetPerson retrieves a person
func (h *PeopleHandler) GetPerson(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid person id"))
		return
	}

	person, err := h.people.GetPerson(id)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, person)
}

// ApprovePerson approves a pending person
func (h *PeopleHandler) ApprovePerson(c *gin.Context) {
	h.decide(c, h.people.Approve)
}

// RejectPerson rejects a pending person
func (h *PeopleHandler) RejectPerson(c *gin.Context) {
	h.decide(c, h.people.Reject)
}

func (h *PeopleHandler) decide(c *gin.Context, apply func(id, actorID uuid.UUID) (*models.Person, error)) {
	actorID, _ := middleware.ActorFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid person id"))
		return
	}

	person, err := apply(id, actorID)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, person)
}

// AddAddress attaches an address to a person
func (h *PeopleHandler) AddAddress(c *gin.Context) {
	actorID, _ := middleware.ActorFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid person id"))
		return
	}

	var req models.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid address payload"))
		return
	}

	address, err := h.people.AddAddress(id, req, actorID)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, address)
}

// ListAddresses lists the addresses of a person, default first
func (h *PeopleHandler) ListAddresses(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid person id"))
		return
	}

	addresses, err := h.people.ListAddresses(id)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, addresses)
}

// BlockPerson blocks a person
func (h *PeopleHandler) BlockPerson(c *gin.Context) {
	actorID, _ := middleware.ActorFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid person id"))
		return
	}

	person, err := h.people.BlockPerson(id, actorID)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, person)
}

// UnblockPerson clears the block mark on a person
func (h *PeopleHandler) UnblockPerson(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid person id"))
		return
	}

	person, err := h.people.UnblockPerson(id)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, person)
}

// DeletePerson soft deletes a person
func (h *PeopleHandler) DeletePerson(c *gin.Context) {
	actorID, _ := middleware.ActorFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid person id"))
		return
	}

	if err := h.people.SoftDeletePerson(id, actorID); err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
