package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/clinidesk/clinic-scheduler/internal/config"
	dbpkg "github.com/clinidesk/clinic-scheduler/internal/db"
	"github.com/clinidesk/clinic-scheduler/internal/logger"
	"github.com/clinidesk/clinic-scheduler/internal/routes"
)

func main() {

	logger.Init()
	log := logger.Get()
	defer log.Sync()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg)

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
