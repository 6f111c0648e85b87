package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/estate-listings/internal/domain/credit"
	"github.com/BruksfildServices01/estate-listings/internal/httpresp"
)

type planCatalog interface {
	Execute() []credit.Plan
	Find(id string) (credit.Plan, bool)
}

type CreditHandler struct {
	plans planCatalog
}

func NewCreditHandler(plans planCatalog) *CreditHandler {
	return &CreditHandler{plans: plans}
}

func (h *CreditHandler) Plans(c *gin.Context) {
	httpresp.List(c, "plans", h.plans.Execute())
}

func (h *CreditHandler) Plan(c *gin.Context) {
	plan, ok := h.plans.Find(c.Param("productId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Plan not found",
		})
		return
	}

	httpresp.OK(c, gin.H{"plan": plan})
}
