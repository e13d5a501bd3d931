package handlers

import (
	"net/http"

	"laptop-price-api/metrics"
	"laptop-price-api/models"

	"github.com/gin-gonic/gin"
)

type OptionLister interface {
	ListOptions() models.OptionSet
}

type OptionsHandler struct {
	catalog OptionLister
}

func NewOptionsHandler(catalog OptionLister) *OptionsHandler {
	return &OptionsHandler{catalog: catalog}
}

func (h *OptionsHandler) GetOptions(c *gin.Context) {
	metrics.OptionsServed()
	c.JSON(http.StatusOK, h.catalog.ListOptions())
}
