package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ericfrick132/beauty-salon-sub003/internal/httperr"
	"github.com/ericfrick132/beauty-salon-sub003/internal/middleware"
	ucAvailability "github.com/ericfrick132/beauty-salon-sub003/internal/usecase/availability"
)

type AvailabilityHandler struct {
	availabilityUC *ucAvailability.GetAvailability
}

func NewAvailabilityHandler(
	availabilityUC *ucAvailability.GetAvailability,
) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityUC: availabilityUC}
}

func (h *AvailabilityHandler) Get(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Data e serviço obrigatórios.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
		return
	}

	date, err := parseLocalDate(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.availabilityUC.Execute(c.Request.Context(), ucAvailability.Input{
		SalonID:   salonID,
		StaffID:   staffID,
		ServiceID: uint(serviceID),
		Date:      date,
	})
	if err != nil {
		if httperr.IsBusiness(err, "service_not_found") {
			httperr.BadRequest(c, "service_not_found", "Serviço inválido.")
			return
		}
		httperr.Internal(c, "availability_failed", "Erro ao calcular horários.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}
