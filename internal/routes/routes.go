package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ericfrick132/beauty-salon-sub003/internal/audit"
	"github.com/ericfrick132/beauty-salon-sub003/internal/cache"
	"github.com/ericfrick132/beauty-salon-sub003/internal/config"
	"github.com/ericfrick132/beauty-salon-sub003/internal/handlers"
	infraRepo "github.com/ericfrick132/beauty-salon-sub003/internal/infra/repository"
	"github.com/ericfrick132/beauty-salon-sub003/internal/media"
	"github.com/ericfrick132/beauty-salon-sub003/internal/middleware"
	"github.com/ericfrick132/beauty-salon-sub003/internal/payments"
	ucAvailability "github.com/ericfrick132/beauty-salon-sub003/internal/usecase/availability"
	ucBlock "github.com/ericfrick132/beauty-salon-sub003/internal/usecase/block"
	ucBooking "github.com/ericfrick132/beauty-salon-sub003/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	log *zap.Logger,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	blockRepo := infraRepo.NewTimeBlockGormRepository(db)
	txRunner := infraRepo.NewGormTxRunner(db)
	settingsProvider := infraRepo.NewSettingsGormProvider(db)

	staffLock := cache.NewStaffLock(rdb)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	var deposits ucBooking.DepositCreator
	if cfg.MPAccessToken != "" {
		mp, err := payments.NewMercadoPago(cfg.MPAccessToken, log)
		if err != nil {
			log.Warn("mercadopago disabled", zap.Error(err))
		} else {
			deposits = mp
		}
	}

	var uploader *media.Uploader
	if cfg.S3Bucket != "" {
		uploader = media.NewUploader(cfg)
	}

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		deposits,
		auditDispatcher,
	)

	cancelBookingUC := ucBooking.NewCancelBooking(
		bookingRepo,
		auditDispatcher,
	)

	completeBookingUC := ucBooking.NewCompleteBooking(
		bookingRepo,
		auditDispatcher,
	)

	listBookingsByDateUC := ucBooking.NewListBookingsByDate(bookingRepo)
	listBookingsByMonthUC := ucBooking.NewListBookingsByMonth(bookingRepo)

	// ======================================================
	// USE CASES — TIME BLOCKS
	// ======================================================
	createSingleBlockUC := ucBlock.NewCreateSingleBlock(
		txRunner, staffLock, auditDispatcher,
	)
	createRecurringBlocksUC := ucBlock.NewCreateRecurringBlocks(
		txRunner, staffLock, settingsProvider, auditDispatcher,
	)
	updateSingleBlockUC := ucBlock.NewUpdateSingleBlock(
		txRunner, staffLock, auditDispatcher,
	)
	updateWholeSeriesUC := ucBlock.NewUpdateWholeSeries(
		txRunner, staffLock, settingsProvider, auditDispatcher,
	)
	updateThisAndFollowingUC := ucBlock.NewUpdateThisAndFollowing(
		txRunner, staffLock, settingsProvider, auditDispatcher,
	)
	deleteSingleBlockUC := ucBlock.NewDeleteSingleBlock(txRunner, auditDispatcher)
	deleteWholeSeriesUC := ucBlock.NewDeleteWholeSeries(txRunner, auditDispatcher)
	deleteThisAndFollowingUC := ucBlock.NewDeleteThisAndFollowing(txRunner, auditDispatcher)

	// ======================================================
	// USE CASES — AVAILABILITY
	// ======================================================
	availabilityUC := ucAvailability.NewGetAvailability(bookingRepo, blockRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	salonHandler := handlers.NewSalonHandler(db, uploader)

	serviceHandler := handlers.NewServiceHandler(db)
	clientHandler := handlers.NewClientHandler(db)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		cancelBookingUC,
		completeBookingUC,
		listBookingsByDateUC,
		listBookingsByMonthUC,
	)

	blockHandler := handlers.NewBlockHandler(
		db,
		createSingleBlockUC,
		createRecurringBlocksUC,
		updateSingleBlockUC,
		updateWholeSeriesUC,
		updateThisAndFollowingUC,
		deleteSingleBlockUC,
		deleteWholeSeriesUC,
		deleteThisAndFollowingUC,
	)

	availabilityHandler := handlers.NewAvailabilityHandler(availabilityUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, availabilityUC, createBookingUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/availability", publicHandler.AvailabilityForClient)
			publicAPI.POST("/:slug/bookings", publicHandler.CreateBooking)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/salon", salonHandler.GetMeSalon)
			secured.PATCH("/me/salon", salonHandler.UpdateMeSalon)
			secured.POST("/me/salon/logo", salonHandler.UploadLogo)

			secured.GET("/me/clients", clientHandler.List)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.POST("/me/bookings", bookingHandler.Create)
			secured.GET("/me/bookings", bookingHandler.ListByDate)
			secured.GET("/me/bookings/month", bookingHandler.ListByMonth)
			secured.PATCH("/me/bookings/:id/cancel", bookingHandler.Cancel)
			secured.PATCH("/me/bookings/:id/complete", bookingHandler.Complete)

			// ------------------------------
			// TIME BLOCKS
			// ------------------------------
			secured.GET("/me/blocks", blockHandler.List)
			secured.POST("/me/blocks", blockHandler.Create)
			secured.POST("/me/blocks/recurring", blockHandler.CreateRecurring)
			secured.PATCH("/me/blocks/:id", blockHandler.Update)
			secured.PATCH("/me/blocks/:id/following", blockHandler.UpdateFollowing)
			secured.DELETE("/me/blocks/:id", blockHandler.Delete)
			secured.PATCH("/me/block-series/:seriesId", blockHandler.UpdateSeries)
			secured.DELETE("/me/block-series/:seriesId", blockHandler.DeleteSeries)

			// ------------------------------
			// AVAILABILITY
			// ------------------------------
			secured.GET("/me/availability", availabilityHandler.Get)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
