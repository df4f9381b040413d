// File: internal/prayer/handler.go
package prayer

import (
	"errors"
	"time"

	"iqamah_backend/internal/common"
	"iqamah_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for prayer handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new prayer handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the prayer routes. All of them require a valid
// session token. The fixed paths are registered before the :id route.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	prayerGroup := router.Group("/prayers", authMW)
	{
		prayerGroup.POST("", h.create)
		prayerGroup.GET("", h.list)
		prayerGroup.GET("/today", h.today)
		prayerGroup.GET("/stats", h.stats)
		prayerGroup.GET("/:id", h.getByID)
		prayerGroup.PUT("/:id", h.update)
		prayerGroup.DELETE("/:id", h.delete)
	}
}

func (h *Handler) bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.Warn("Invalid request body", zap.String("path", c.FullPath()), zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return false
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return false
	}
	return true
}

func (h *Handler) prayerIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid prayer ID."))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)

	var req CreateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	p, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Prayer created successfully.", gin.H{"prayer": p})
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	page, limit := common.GetPaginationParams(c)

	query := ListQuery{Page: page, Limit: limit}
	if dateStr := c.Query("date"); dateStr != "" {
		date, err := ParseDate(dateStr)
		if err != nil {
			common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid date format. Use YYYY-MM-DD."))
			return
		}
		query.Date = &date
	}

	prayers, pagination, err := h.service.List(c.Request.Context(), userID, query)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "", gin.H{"prayers": prayers}, pagination)
}

func (h *Handler) today(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)

	entries, err := h.service.GetToday(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", gin.H{"prayers": entries})
}

func (h *Handler) stats(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)

	var start, end *time.Time
	if startStr := c.Query("startDate"); startStr != "" {
		parsed, err := ParseDate(startStr)
		if err != nil {
			common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid startDate format. Use YYYY-MM-DD."))
			return
		}
		start = &parsed
	}
	if endStr := c.Query("endDate"); endStr != "" {
		parsed, err := ParseDate(endStr)
		if err != nil {
			common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid endDate format. Use YYYY-MM-DD."))
			return
		}
		end = &parsed
	}

	stats, err := h.service.GetStats(c.Request.Context(), userID, start, end)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", gin.H{"stats": stats})
}

func (h *Handler) getByID(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	id, ok := h.prayerIDParam(c)
	if !ok {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", gin.H{"prayer": p})
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	id, ok := h.prayerIDParam(c)
	if !ok {
		return
	}

	var req UpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	p, err := h.service.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Prayer updated successfully.", gin.H{"prayer": p})
}

func (h *Handler) delete(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	id, ok := h.prayerIDParam(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, id); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Prayer deleted successfully.", nil)
}
