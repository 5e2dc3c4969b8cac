package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ericfrick132/beauty-salon-sub003/internal/httperr"
	"github.com/ericfrick132/beauty-salon-sub003/internal/media"
	"github.com/ericfrick132/beauty-salon-sub003/internal/middleware"
	"github.com/ericfrick132/beauty-salon-sub003/internal/models"
	"github.com/ericfrick132/beauty-salon-sub003/internal/timeutil"
)

type SalonHandler struct {
	db       *gorm.DB
	uploader *media.Uploader // nil quando o bucket não está configurado
}

func NewSalonHandler(db *gorm.DB, uploader *media.Uploader) *SalonHandler {
	return &SalonHandler{db: db, uploader: uploader}
}

type UpdateSalonConfigRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`

	UTCOffset *string `json:"utc_offset"`

	OpenTime       *string `json:"open_time"`
	CloseTime      *string `json:"close_time"`
	ClosedWeekdays *string `json:"closed_weekdays"`

	MinAdvanceMinutes *int `json:"min_advance_minutes"`

	RequiresDeposit *bool    `json:"requires_deposit"`
	DepositAmount   *float64 `json:"deposit_amount"`
}

func (h *SalonHandler) GetMeSalon(c *gin.Context) {
	salonIDVal, _ := c.Get(middleware.ContextSalonID)
	salonID := salonIDVal.(uint)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_salon", "Erro ao buscar dados do salão.")
		return
	}

	c.JSON(http.StatusOK, salon)
}

func (h *SalonHandler) UpdateMeSalon(c *gin.Context) {
	salonIDVal, _ := c.Get(middleware.ContextSalonID)
	salonID := salonIDVal.(uint)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_salon", "Erro ao buscar dados do salão.")
		return
	}

	var req UpdateSalonConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		salon.Name = *req.Name
	}
	if req.Phone != nil {
		salon.Phone = *req.Phone
	}
	if req.Address != nil {
		salon.Address = *req.Address
	}

	if req.UTCOffset != nil {
		offset := timeutil.ParseOffsetHours(*req.UTCOffset)
		if offset < -12 || offset > 14 {
			httperr.BadRequest(c, "invalid_utc_offset", "Deslocamento UTC fora da faixa válida.")
			return
		}
		salon.UTCOffset = *req.UTCOffset
	}

	if req.OpenTime != nil {
		if _, err := timeutil.ParseTimeOfDay(*req.OpenTime); err != nil {
			httperr.BadRequest(c, "invalid_open_time", "Horário de abertura inválido.")
			return
		}
		salon.OpenTime = *req.OpenTime
	}
	if req.CloseTime != nil {
		if _, err := timeutil.ParseTimeOfDay(*req.CloseTime); err != nil {
			httperr.BadRequest(c, "invalid_close_time", "Horário de fechamento inválido.")
			return
		}
		salon.CloseTime = *req.CloseTime
	}
	if req.ClosedWeekdays != nil {
		salon.ClosedWeekdays = *req.ClosedWeekdays
	}

	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Antecedência mínima deve ser zero ou positiva (em minutos).")
			return
		}
		salon.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if req.RequiresDeposit != nil {
		salon.RequiresDeposit = *req.RequiresDeposit
	}
	if req.DepositAmount != nil {
		if *req.DepositAmount < 0 {
			httperr.BadRequest(c, "invalid_deposit_amount", "Valor do sinal deve ser zero ou positivo.")
			return
		}
		salon.DepositAmount = *req.DepositAmount
	}

	if err := h.db.Save(&salon).Error; err != nil {
		httperr.Internal(c, "failed_to_update_salon", "Erro ao salvar as configurações do salão.")
		return
	}

	c.JSON(http.StatusOK, salon)
}

// UploadLogo recebe multipart "logo", converte para webp e publica no S3.
func (h *SalonHandler) UploadLogo(c *gin.Context) {
	salonIDVal, _ := c.Get(middleware.ContextSalonID)
	salonID := salonIDVal.(uint)

	if h.uploader == nil {
		httperr.BadRequest(c, "logo_upload_disabled", "Upload de logo não está configurado.")
		return
	}

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		httperr.BadRequest(c, "missing_logo_file", "Arquivo de logo obrigatório.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_logo", "Erro ao ler o arquivo.")
		return
	}
	defer file.Close()

	url, err := h.uploader.UploadLogo(c.Request.Context(), salonID, file)
	if err != nil {
		httperr.Internal(c, "failed_to_upload_logo", "Erro ao enviar a logo.")
		return
	}

	salon.LogoURL = url
	if err := h.db.Save(&salon).Error; err != nil {
		httperr.Internal(c, "failed_to_update_salon", "Erro ao salvar a logo.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"logo_url": url})
}
