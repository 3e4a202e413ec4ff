package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Raf4ok0/shareit/internal/identity"
	"github.com/Raf4ok0/shareit/internal/itemrequest"
	"github.com/Raf4ok0/shareit/internal/pkg/request"
	"github.com/Raf4ok0/shareit/internal/pkg/response"
)

type Handler struct {
	service itemrequest.Service
}

func NewHandler(service itemrequest.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req, err := h.service.Create(c.Request.Context(), identity.CurrentUserID(c), body.Description)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewRequestResponse(req))
}

func (h *Handler) ListOwn(c *gin.Context) {
	views, err := h.service.ListOwn(c.Request.Context(), identity.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RequestWithAnswersResponse, len(views))
	for i, v := range views {
		items[i] = NewRequestWithAnswersResponse(v)
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) ListOthers(c *gin.Context) {
	var params request.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	requests, err := h.service.ListOthers(c.Request.Context(), identity.CurrentUserID(c), params.From, params.Size)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RequestResponse, len(requests))
	for i, req := range requests {
		items[i] = NewRequestResponse(req)
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	view, err := h.service.Get(c.Request.Context(), identity.CurrentUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRequestWithAnswersResponse(view))
}
