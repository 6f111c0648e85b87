package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/estate-listings/internal/dto"
	"github.com/BruksfildServices01/estate-listings/internal/httpresp"
	"github.com/BruksfildServices01/estate-listings/internal/middleware"
)

type listingPermission interface {
	Execute(ctx context.Context, userID string) (bool, error)
}

type MeHandler struct {
	canList listingPermission
}

func NewMeHandler(canList listingPermission) *MeHandler {
	return &MeHandler{canList: canList}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	httpresp.OK(c, gin.H{"user": dto.NewCurrentUser(middleware.CurrentUser(c))})
}

// CanList re-reads the balance instead of trusting the session copy.
func (h *MeHandler) CanList(c *gin.Context) {
	user := middleware.CurrentUser(c)

	ok, err := h.canList.Execute(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, err, "Failed to check credits")
		return
	}

	httpresp.OK(c, gin.H{"canList": ok})
}
