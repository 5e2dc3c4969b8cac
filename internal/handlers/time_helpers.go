package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ericfrick132/beauty-salon-sub003/internal/domain/schedule"
	"github.com/ericfrick132/beauty-salon-sub003/internal/httperr"
	"github.com/ericfrick132/beauty-salon-sub003/internal/models"
	"github.com/ericfrick132/beauty-salon-sub003/internal/timeutil"
)

// --------------------------------------------------
// Horário local do salão (deslocamento fixo, sem IANA)
// --------------------------------------------------

// parseLocalDate interpreta YYYY-MM-DD no calendário local do salão.
// O valor é "ingênuo": só a componente de data importa.
func parseLocalDate(dateStr string) (time.Time, error) {
	return time.Parse("2006-01-02", dateStr)
}

// localRangeToUTC monta [start, end) em UTC a partir de uma data local e dos
// horários HH:mm do dia.
func localRangeToUTC(
	salon *models.Salon,
	dateStr string,
	startStr string,
	endStr string,
) (time.Time, time.Time, error) {

	date, err := parseLocalDate(dateStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	startTod, err := timeutil.ParseTimeOfDay(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endTod, err := timeutil.ParseTimeOfDay(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	offset := timeutil.ParseOffsetHours(salon.UTCOffset)
	utcStart := timeutil.ToUTC(timeutil.CombineDateTime(date, startTod), offset)
	utcEnd := timeutil.ToUTC(timeutil.CombineDateTime(date, endTod), offset)

	return utcStart, utcEnd, nil
}

// --------------------------------------------------
// Erros de domínio da agenda → HTTP
// --------------------------------------------------

func writeScheduleError(c *gin.Context, err error) {
	if schedule.IsValidation(err) {
		httperr.BadRequest(c, err.Error(), "Dados inválidos.")
		return
	}

	if ce, ok := schedule.AsConflict(err); ok {
		c.JSON(http.StatusConflict, gin.H{
			"error_code":           ce.Code,
			"message":              "Conflito de horário.",
			"conflicting_bookings": ce.Bookings,
			"conflicting_blocks":   ce.Blocks,
		})
		return
	}

	if schedule.IsNotFound(err) {
		httperr.NotFound(c, err.Error(), "Registro não encontrado.")
		return
	}

	if httperr.IsBusiness(err, "schedule_busy") {
		httperr.Conflict(c, "schedule_busy", "Agenda em uso, tente novamente.")
		return
	}

	if httperr.IsExclusionConflict(err) {
		httperr.Conflict(c, "block_conflict", "Conflito de horário.")
		return
	}

	httperr.Internal(c, "schedule_error", "Erro ao processar a agenda.")
}
