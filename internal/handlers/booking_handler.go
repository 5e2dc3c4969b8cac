package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ericfrick132/beauty-salon-sub003/internal/httperr"
	"github.com/ericfrick132/beauty-salon-sub003/internal/middleware"
	ucBooking "github.com/ericfrick132/beauty-salon-sub003/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	createUC      *ucBooking.CreateBooking
	cancelUC      *ucBooking.CancelBooking
	completeUC    *ucBooking.CompleteBooking
	listByDateUC  *ucBooking.ListBookingsByDate
	listByMonthUC *ucBooking.ListBookingsByMonth
}

func NewBookingHandler(
	createUC *ucBooking.CreateBooking,
	cancelUC *ucBooking.CancelBooking,
	completeUC *ucBooking.CompleteBooking,
	listByDateUC *ucBooking.ListBookingsByDate,
	listByMonthUC *ucBooking.ListBookingsByMonth,
) *BookingHandler {
	return &BookingHandler{
		createUC:      createUC,
		cancelUC:      cancelUC,
		completeUC:    completeUC,
		listByDateUC:  listByDateUC,
		listByMonthUC: listByMonthUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Notes       string `json:"notes"`
}

// ======================================================
// ERROR MAPPING
// ======================================================

func mapBookingErrors(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
	case httperr.IsBusiness(err, "too_soon"):
		httperr.BadRequest(c, "too_soon", "Horário inválido.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.BadRequest(c, "service_not_found", "Serviço não encontrado.")
	case httperr.IsBusiness(err, "outside_working_hours"):
		httperr.BadRequest(c, "outside_working_hours", "Fora do horário de atendimento.")
	case httperr.IsBusiness(err, "time_conflict") || httperr.IsExclusionConflict(err):
		httperr.Conflict(c, "time_conflict", "Conflito de horário.")
	case httperr.IsBusiness(err, "time_blocked"):
		httperr.Conflict(c, "time_blocked", "Horário bloqueado pelo profissional.")
	case httperr.IsBusiness(err, "payment_preference_failed"):
		httperr.Internal(c, "payment_preference_failed", "Erro ao criar cobrança do sinal.")
	default:
		httperr.Internal(c, "failed_to_create_booking", "Erro ao criar agendamento.")
	}
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		SalonID:     salonID,
		StaffID:     staffID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		ServiceID:   req.ServiceID,
		Date:        req.Date,
		Time:        req.Time,
		Notes:       req.Notes,
	})
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) ListByDate(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	date, err := parseLocalDate(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	bookings, err := h.listByDateUC.Execute(c.Request.Context(), staffID, salonID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) ListByMonth(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Ano e mês são obrigatórios.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	bookings, err := h.listByMonthUC.Execute(c.Request.Context(), staffID, salonID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":     year,
		"month":    month,
		"bookings": bookings,
	})
}

// ======================================================
// CANCEL / COMPLETE
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Identificador inválido.")
		return
	}

	b, err := h.cancelUC.Execute(c.Request.Context(), salonID, staffID, uint(id))
	if err != nil {
		if httperr.IsBusiness(err, "booking_not_found") {
			httperr.NotFound(c, "booking_not_found", "Agendamento não encontrado.")
			return
		}
		if httperr.IsBusiness(err, "invalid_state") {
			httperr.BadRequest(c, "invalid_state", "Agendamento não pode ser cancelado.")
			return
		}
		httperr.Internal(c, "failed_to_cancel_booking", "Erro ao cancelar agendamento.")
		return
	}

	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Identificador inválido.")
		return
	}

	b, err := h.completeUC.Execute(c.Request.Context(), salonID, staffID, uint(id))
	if err != nil {
		if httperr.IsBusiness(err, "booking_not_found") {
			httperr.NotFound(c, "booking_not_found", "Agendamento não encontrado.")
			return
		}
		if httperr.IsBusiness(err, "invalid_state") {
			httperr.BadRequest(c, "invalid_state", "Agendamento não pode ser concluído.")
			return
		}
		httperr.Internal(c, "failed_to_complete_booking", "Erro ao concluir agendamento.")
		return
	}

	c.JSON(http.StatusOK, b)
}
