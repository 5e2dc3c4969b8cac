package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ericfrick132/beauty-salon-sub003/internal/httperr"
	"github.com/ericfrick132/beauty-salon-sub003/internal/models"
	ucAvailability "github.com/ericfrick132/beauty-salon-sub003/internal/usecase/availability"
	ucBooking "github.com/ericfrick132/beauty-salon-sub003/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db *gorm.DB

	availabilityUC *ucAvailability.GetAvailability
	createUC       *ucBooking.CreateBooking
}

func NewPublicHandler(
	db *gorm.DB,
	availabilityUC *ucAvailability.GetAvailability,
	createUC *ucBooking.CreateBooking,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		availabilityUC: availabilityUC,
		createUC:       createUC,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateBookingRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Notes       string `json:"notes"`
}

////////////////////////////////////////////////////////
// HELPERS
////////////////////////////////////////////////////////

func (h *PublicHandler) salonBySlug(c *gin.Context) (*models.Salon, bool) {
	slug := c.Param("slug")

	var salon models.Salon
	if err := h.db.Where("slug = ?", slug).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return nil, false
	}
	return &salon, true
}

// staffForSalon resolve o profissional que atende o agendamento público.
// Hoje o dono é o único profissional da agenda.
func (h *PublicHandler) staffForSalon(c *gin.Context, salonID uint) (*models.User, bool) {
	var staff models.User
	if err := h.db.
		Where("salon_id = ? AND role = ?", salonID, "owner").
		First(&staff).Error; err != nil {

		httperr.BadRequest(c, "staff_not_found", "Profissional não encontrado.")
		return nil, false
	}
	return &staff, true
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Where("salon_id = ? AND active = true", salon.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"salon":    salon,
		"services": services,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY (REUSO TOTAL DO USE CASE)
////////////////////////////////////////////////////////

func (h *PublicHandler) AvailabilityForClient(c *gin.Context) {
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

	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	staff, ok := h.staffForSalon(c, salon.ID)
	if !ok {
		return
	}

	date, err := parseLocalDate(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.availabilityUC.Execute(c.Request.Context(), ucAvailability.Input{
		SalonID:   salon.ID,
		StaffID:   staff.ID,
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

////////////////////////////////////////////////////////
// CREATE BOOKING (PUBLIC → REUSA PRIVATE)
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	var req PublicCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	staff, ok := h.staffForSalon(c, salon.ID)
	if !ok {
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		SalonID:     salon.ID,
		StaffID:     staff.ID,
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
