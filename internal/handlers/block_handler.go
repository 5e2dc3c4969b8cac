package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ericfrick132/beauty-salon-sub003/internal/httperr"
	"github.com/ericfrick132/beauty-salon-sub003/internal/middleware"
	"github.com/ericfrick132/beauty-salon-sub003/internal/models"
	ucBlock "github.com/ericfrick132/beauty-salon-sub003/internal/usecase/block"
)

// ======================================================
// HANDLER
// ======================================================

type BlockHandler struct {
	db *gorm.DB

	createSingleUC    *ucBlock.CreateSingleBlock
	createRecurringUC *ucBlock.CreateRecurringBlocks
	updateSingleUC    *ucBlock.UpdateSingleBlock
	updateSeriesUC    *ucBlock.UpdateWholeSeries
	updateFollowingUC *ucBlock.UpdateThisAndFollowing
	deleteSingleUC    *ucBlock.DeleteSingleBlock
	deleteSeriesUC    *ucBlock.DeleteWholeSeries
	deleteFollowingUC *ucBlock.DeleteThisAndFollowing
}

func NewBlockHandler(
	db *gorm.DB,
	createSingleUC *ucBlock.CreateSingleBlock,
	createRecurringUC *ucBlock.CreateRecurringBlocks,
	updateSingleUC *ucBlock.UpdateSingleBlock,
	updateSeriesUC *ucBlock.UpdateWholeSeries,
	updateFollowingUC *ucBlock.UpdateThisAndFollowing,
	deleteSingleUC *ucBlock.DeleteSingleBlock,
	deleteSeriesUC *ucBlock.DeleteWholeSeries,
	deleteFollowingUC *ucBlock.DeleteThisAndFollowing,
) *BlockHandler {
	return &BlockHandler{
		db:                db,
		createSingleUC:    createSingleUC,
		createRecurringUC: createRecurringUC,
		updateSingleUC:    updateSingleUC,
		updateSeriesUC:    updateSeriesUC,
		updateFollowingUC: updateFollowingUC,
		deleteSingleUC:    deleteSingleUC,
		deleteSeriesUC:    deleteSeriesUC,
		deleteFollowingUC: deleteFollowingUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBlockRequest struct {
	Date      string `json:"date" binding:"required"`       // YYYY-MM-DD, calendário local
	StartTime string `json:"start_time" binding:"required"` // HH:mm
	EndTime   string `json:"end_time" binding:"required"`   // HH:mm
	Reason    string `json:"reason"`
	Force     bool   `json:"force"`
}

type CreateRecurringBlocksRequest struct {
	StartDate string  `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate   *string `json:"end_date"`                      // nil = um ano
	StartTime string  `json:"start_time" binding:"required"` // HH:mm
	EndTime   string  `json:"end_time" binding:"required"`   // HH:mm

	// 0 = domingo .. 6 = sábado; vazio = todos os dias
	DaysOfWeek []int `json:"days_of_week"`

	Reason string `json:"reason"`
	Force  bool   `json:"force"`
}

type UpdateBlockRequest struct {
	Date      string  `json:"date" binding:"required"`
	StartTime string  `json:"start_time" binding:"required"`
	EndTime   string  `json:"end_time" binding:"required"`
	Reason    *string `json:"reason"`
	Force     bool    `json:"force"`
}

type UpdateSeriesRequest struct {
	Reason    *string `json:"reason"`
	StartTime *string `json:"start_time"` // HH:mm
	EndTime   *string `json:"end_time"`   // HH:mm
	Force     bool    `json:"force"`
}

// ======================================================
// HELPERS
// ======================================================

func (h *BlockHandler) loadSalon(c *gin.Context) (*models.Salon, bool) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		httperr.Internal(c, "salon_not_found", "Salão não encontrado.")
		return nil, false
	}
	return &salon, true
}

func parseBlockID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_block_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

// ======================================================
// CREATE
// ======================================================

func (h *BlockHandler) Create(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)

	salon, ok := h.loadSalon(c)
	if !ok {
		return
	}

	var req CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	utcStart, utcEnd, err := localRangeToUTC(salon, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	result, err := h.createSingleUC.Execute(c.Request.Context(), ucBlock.CreateSingleBlockInput{
		SalonID: salon.ID,
		StaffID: staffID,
		Start:   utcStart,
		End:     utcEnd,
		Reason:  req.Reason,
		Force:   req.Force,
	})
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"block":              result.Block,
		"bookings_cancelled": result.BookingsCancelled,
	})
}

func (h *BlockHandler) CreateRecurring(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)

	salon, ok := h.loadSalon(c)
	if !ok {
		return
	}

	var req CreateRecurringBlocksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	startDate, err := parseLocalDate(req.StartDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_start_date", "Data inicial inválida.")
		return
	}

	var endDate *time.Time
	if req.EndDate != nil {
		d, err := parseLocalDate(*req.EndDate)
		if err != nil {
			httperr.BadRequest(c, "invalid_end_date", "Data final inválida.")
			return
		}
		if d.Before(startDate) {
			httperr.BadRequest(c, "end_date_before_start_date", "Data final anterior à inicial.")
			return
		}
		endDate = &d
	}

	for _, dow := range req.DaysOfWeek {
		if dow < 0 || dow > 6 {
			httperr.BadRequest(c, "invalid_day_of_week", "Dia da semana inválido.")
			return
		}
	}

	result, err := h.createRecurringUC.Execute(c.Request.Context(), ucBlock.CreateRecurringBlocksInput{
		SalonID:        salon.ID,
		StaffID:        staffID,
		StartDate:      startDate,
		EndDate:        endDate,
		StartTimeOfDay: req.StartTime,
		EndTimeOfDay:   req.EndTime,
		DaysOfWeek:     req.DaysOfWeek,
		Reason:         req.Reason,
		Force:          req.Force,
	})
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"series_id":          result.SeriesID,
		"blocks_created":     result.BlocksCreated,
		"bookings_cancelled": result.BookingsCancelled,
	})
}

// ======================================================
// UPDATE
// ======================================================

func (h *BlockHandler) Update(c *gin.Context) {
	salon, ok := h.loadSalon(c)
	if !ok {
		return
	}

	blockID, ok := parseBlockID(c)
	if !ok {
		return
	}

	var req UpdateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	utcStart, utcEnd, err := localRangeToUTC(salon, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	result, err := h.updateSingleUC.Execute(c.Request.Context(), ucBlock.UpdateSingleBlockInput{
		SalonID: salon.ID,
		BlockID: blockID,
		Start:   utcStart,
		End:     utcEnd,
		Reason:  req.Reason,
		Force:   req.Force,
	})
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"block":              result.Block,
		"bookings_cancelled": result.BookingsCancelled,
	})
}

func (h *BlockHandler) UpdateFollowing(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	blockID, ok := parseBlockID(c)
	if !ok {
		return
	}

	var req UpdateSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	result, err := h.updateFollowingUC.Execute(c.Request.Context(), ucBlock.UpdateThisAndFollowingInput{
		SalonID:        salonID,
		BlockID:        blockID,
		Reason:         req.Reason,
		StartTimeOfDay: req.StartTime,
		EndTimeOfDay:   req.EndTime,
		Force:          req.Force,
	})
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"new_series_id":      result.NewSeriesID,
		"members_updated":    result.MembersUpdated,
		"bookings_cancelled": result.BookingsCancelled,
	})
}

func (h *BlockHandler) UpdateSeries(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	seriesID := c.Param("seriesId")

	var req UpdateSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	result, err := h.updateSeriesUC.Execute(c.Request.Context(), ucBlock.UpdateWholeSeriesInput{
		SalonID:        salonID,
		SeriesID:       seriesID,
		Reason:         req.Reason,
		StartTimeOfDay: req.StartTime,
		EndTimeOfDay:   req.EndTime,
		Force:          req.Force,
	})
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"members_updated":    result.MembersUpdated,
		"bookings_cancelled": result.BookingsCancelled,
	})
}

// ======================================================
// DELETE
// ======================================================

// Delete remove um bloco; ?mode=following estende a remoção deste bloco em
// diante dentro da série.
func (h *BlockHandler) Delete(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	blockID, ok := parseBlockID(c)
	if !ok {
		return
	}

	mode := c.DefaultQuery("mode", "single")

	switch mode {
	case "single":
		if err := h.deleteSingleUC.Execute(c.Request.Context(), salonID, blockID); err != nil {
			writeScheduleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"blocks_removed": 1})

	case "following":
		removed, err := h.deleteFollowingUC.Execute(c.Request.Context(), salonID, blockID)
		if err != nil {
			writeScheduleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"blocks_removed": removed})

	default:
		httperr.BadRequest(c, "invalid_mode", "Modo de remoção inválido.")
	}
}

func (h *BlockHandler) DeleteSeries(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	seriesID := c.Param("seriesId")

	removed, err := h.deleteSeriesUC.Execute(c.Request.Context(), salonID, seriesID)
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"blocks_removed": removed})
}

// ======================================================
// LIST
// ======================================================

func (h *BlockHandler) List(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)

	salon, ok := h.loadSalon(c)
	if !ok {
		return
	}

	fromStr := c.Query("from")
	toStr := c.Query("to")

	q := h.db.Where("salon_id = ? AND staff_id = ?", salon.ID, staffID)

	if fromStr != "" {
		if from, err := parseLocalDate(fromStr); err == nil {
			q = q.Where("end_time > ?", from)
		}
	}
	if toStr != "" {
		if to, err := parseLocalDate(toStr); err == nil {
			q = q.Where("start_time < ?", to.Add(24*time.Hour))
		}
	}

	var blocks []models.TimeBlock
	if err := q.Order("start_time ASC").Find(&blocks).Error; err != nil {
		httperr.Internal(c, "failed_to_list_blocks", "Erro ao listar bloqueios.")
		return
	}

	c.JSON(http.StatusOK, blocks)
}
