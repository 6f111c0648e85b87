package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/estate-listings/internal/domain/property"
	"github.com/BruksfildServices01/estate-listings/internal/dto"
	"github.com/BruksfildServices01/estate-listings/internal/httperr"
	"github.com/BruksfildServices01/estate-listings/internal/httpresp"
	"github.com/BruksfildServices01/estate-listings/internal/middleware"
	"github.com/BruksfildServices01/estate-listings/internal/models"
)

const (
	msgFetchFailed   = "Error fetching properties"
	msgPropertyAdded = "Property added successfully"
	msgCreateFailed  = "Something went wrong while adding the property"
)

type propertyLister interface {
	Execute(ctx context.Context, f domain.Filter) (*dto.PropertyPage, error)
}

type userPropertyLister interface {
	Execute(ctx context.Context, userID string, f domain.Filter) (*dto.PropertyPage, error)
}

type propertyGetter interface {
	Execute(ctx context.Context, id string) (*models.Property, error)
}

type listingCreator interface {
	Execute(ctx context.Context, user *models.User, in domain.ListingInput) (*models.Property, error)
}

// ======================================================
// HANDLER
// ======================================================

type PropertyHandler struct {
	list   propertyLister
	mine   userPropertyLister
	get    propertyGetter
	create listingCreator
}

func NewPropertyHandler(
	list propertyLister,
	mine userPropertyLister,
	get propertyGetter,
	create listingCreator,
) *PropertyHandler {
	return &PropertyHandler{
		list:   list,
		mine:   mine,
		get:    get,
		create: create,
	}
}

// ======================================================
// QUERY
// ======================================================

func (h *PropertyHandler) List(c *gin.Context) {
	page, err := h.list.Execute(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		writeListError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *PropertyHandler) Mine(c *gin.Context) {
	user := middleware.CurrentUser(c)

	page, err := h.mine.Execute(c.Request.Context(), user.ID, filterFromQuery(c))
	if err != nil {
		writeListError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *PropertyHandler) Get(c *gin.Context) {
	p, err := h.get.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		if httperr.IsBusiness(err, "not_found") {
			httperr.NotFound(c, "not_found", "Property not found")
			return
		}
		writeError(c, err, msgFetchFailed)
		return
	}

	httpresp.OK(c, gin.H{"property": p})
}

func writeListError(c *gin.Context, err error) {
	if ve, ok := httperr.AsValidation(err); ok {
		httperr.Validation(c, "Invalid filters", ve)
		return
	}
	writeError(c, err, msgFetchFailed)
}

// filterFromQuery reads the listing filters. Unparseable numbers are treated
// as absent and left to normalisation.
func filterFromQuery(c *gin.Context) domain.Filter {
	f := domain.Filter{
		Type:  domain.Type(c.Query("type")),
		For:   domain.For(c.Query("for")),
		Query: c.Query("query"),
		Sort:  c.Query("sort"),
		Order: c.Query("order"),
	}

	f.Page, _ = strconv.Atoi(c.Query("page"))
	f.Limit, _ = strconv.Atoi(c.Query("limit"))
	f.PriceMin = queryFloat(c, "priceMin")
	f.PriceMax = queryFloat(c, "priceMax")

	return f
}

func queryFloat(c *gin.Context, key string) *float64 {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// ======================================================
// CREATE
// ======================================================

func (h *PropertyHandler) Create(c *gin.Context) {
	var in domain.ListingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body")
		return
	}

	p, err := h.create.Execute(c.Request.Context(), middleware.CurrentUser(c), in)
	if err != nil {
		writeError(c, err, msgCreateFailed)
		return
	}

	httpresp.Created(c, msgPropertyAdded, gin.H{"property": p})
}
