package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ericfrick132/beauty-salon-sub003/internal/cache"
	"github.com/ericfrick132/beauty-salon-sub003/internal/config"
	dbpkg "github.com/ericfrick132/beauty-salon-sub003/internal/db"
	"github.com/ericfrick132/beauty-salon-sub003/internal/logger"
	"github.com/ericfrick132/beauty-salon-sub003/internal/routes"
)

func main() {

	cfg := config.Load()

	log := logger.New(cfg.Env)
	defer log.Sync()

	db := dbpkg.NewDB(cfg, log)
	rdb := cache.NewRedis(cfg)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg, log)

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
