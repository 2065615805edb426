package equipment

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/FractiqLabs/StockEasy/pkg/apperrors"
	"github.com/FractiqLabs/StockEasy/pkg/auditlog"
	"github.com/FractiqLabs/StockEasy/pkg/models"
	"github.com/FractiqLabs/StockEasy/pkg/roles"
	"github.com/FractiqLabs/StockEasy/pkg/security"

	"github.com/gin-gonic/gin"
)

type EquipmentHandler struct {
	repository Repository
	auditLog   auditlog.Logger
}

func NewEquipmentHandler(r Repository, a auditlog.Logger) *EquipmentHandler {
	return &EquipmentHandler{
		repository: r,
		auditLog:   a,
	}
}

func (h *EquipmentHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/equipment", h.GetEquipmentList)
	router.GET("/export", h.ExportEquipment)
	router.POST("/equipment", security.Authorize(roles.Admin), h.CreateEquipment)
	router.PUT("/equipment/:item_id", security.Authorize(roles.Staff), h.UpdateEquipment)
	router.DELETE("/equipment/:item_id", security.Authorize(roles.Admin), h.DeleteEquipment)
	router.POST("/equipment/:item_id/history", security.Authorize(roles.Staff), h.AppendHistory)
	router.POST("/import", security.Authorize(roles.Admin), h.ImportEquipment)
}

// respondError maps the error taxonomy onto HTTP statuses in one
// place. Unclassified errors are storage faults and surface only as
// the fallback message, never as raw error text.
func respondError(c *gin.Context, err error, fallback string) {
	var validation *apperrors.ValidationError
	var notFound *apperrors.NotFoundError
	var conflict *apperrors.ConflictError
	var forbidden *apperrors.ForbiddenError

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "validation failed", "errors": validation.Problems})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": notFound.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": conflict.Error()})
	case errors.As(err, &forbidden):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "insufficient permissions"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": fallback})
	}
}

func (h *EquipmentHandler) GetEquipmentList(c *gin.Context) {
	list, err := h.repository.GetEquipmentList()
	if err != nil {
		respondError(c, err, "failed to fetch equipment list")
		return
	}
	c.JSON(http.StatusOK, list)
}

// ExportEquipment is the full dump, same shape as the list.
func (h *EquipmentHandler) ExportEquipment(c *gin.Context) {
	h.GetEquipmentList(c)
}

func (h *EquipmentHandler) CreateEquipment(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request payload"})
		return
	}

	if problems := req.Validate(); len(problems) > 0 {
		respondError(c, &apperrors.ValidationError{Problems: problems}, "")
		return
	}

	if err := h.repository.PersistEquipment(&req); err != nil {
		respondError(c, err, "failed to register equipment")
		return
	}

	created := models.Equipment{ItemID: req.ID}
	go h.auditLog.Log("create", c.GetString(security.ContextUsername), map[string]interface{}{
		"name":     req.Name,
		"category": req.Category,
		"location": req.Location,
	}, &created)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "equipment registered"})
}

func (h *EquipmentHandler) UpdateEquipment(c *gin.Context) {
	itemID := c.Param("item_id")

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request payload"})
		return
	}

	// Circulation-only changes need any established session; touching a
	// structural field needs admin. The rejection says nothing about
	// whether the record exists.
	if req.IsStructuralChange() && !security.RoleFromContext(c).HasPermission(roles.Admin) {
		respondError(c, &apperrors.ForbiddenError{Operation: "change structural fields"}, "")
		return
	}

	if problems := req.Validate(); len(problems) > 0 {
		respondError(c, &apperrors.ValidationError{Problems: problems}, "")
		return
	}

	changes, err := req.Changes()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request payload"})
		return
	}

	if err := h.repository.UpdateEquipment(itemID, changes); err != nil {
		respondError(c, err, "failed to update equipment")
		return
	}

	updated := models.Equipment{ItemID: itemID}
	go h.auditLog.Log("update", c.GetString(security.ContextUsername), changedFields(&req), &updated)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "equipment updated"})
}

func (h *EquipmentHandler) DeleteEquipment(c *gin.Context) {
	itemID := c.Param("item_id")

	if err := h.repository.DeleteEquipment(itemID); err != nil {
		respondError(c, err, "failed to delete equipment")
		return
	}

	deleted := models.Equipment{ItemID: itemID}
	go h.auditLog.Log("delete", c.GetString(security.ContextUsername), nil, &deleted)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "equipment deleted"})
}

type appendHistoryRequest struct {
	Entry json.RawMessage `json:"entry"`
}

func (h *EquipmentHandler) AppendHistory(c *gin.Context) {
	itemID := c.Param("item_id")

	var req appendHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Entry) == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request payload"})
		return
	}

	if err := h.repository.AppendHistory(itemID, req.Entry); err != nil {
		respondError(c, err, "failed to append history")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "history entry added"})
}

func (h *EquipmentHandler) ImportEquipment(c *gin.Context) {
	var items []ImportItem
	if err := c.ShouldBindJSON(&items); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request payload"})
		return
	}

	// Every item is validated before anything is touched: one malformed
	// item aborts the whole import.
	var problems []string
	for i := range items {
		for _, p := range items[i].Validate() {
			problems = append(problems, "item "+items[i].ID+": "+p)
		}
	}
	if len(problems) > 0 {
		respondError(c, &apperrors.ValidationError{Problems: problems}, "")
		return
	}

	if err := h.repository.ReplaceAll(items); err != nil {
		respondError(c, err, "import failed")
		return
	}

	imported := models.Equipment{ItemID: "import"}
	go h.auditLog.Log("import", c.GetString(security.ContextUsername), map[string]interface{}{
		"count": len(items),
	}, &imported)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "data imported"})
}

func changedFields(req *UpdateRequest) map[string]interface{} {
	fields := map[string]interface{}{}
	changes, err := req.Changes()
	if err != nil {
		return fields
	}
	for column := range changes {
		fields[column] = true
	}
	return fields
}
