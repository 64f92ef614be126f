package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Luismorlan/maag/app_config"
	"github.com/Luismorlan/maag/server"
	"github.com/Luismorlan/maag/utils"
	"github.com/Luismorlan/maag/utils/dotenv"
	Flag "github.com/Luismorlan/maag/utils/flag"
	Logger "github.com/Luismorlan/maag/utils/log"
	"github.com/gin-gonic/gin"
)

func main() {
	Flag.ParseFlags()
	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}
	Logger.InitLogger()
	utils.StartTracer()
	defer utils.CloseTracer()

	cfg, err := app_config.ParseServerAppConfig(*Flag.ConfigPath)
	if err != nil {
		Logger.Log.WithError(err).Fatal("fail to load app config")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	services, err := server.NewServices(ctx, cfg)
	if err != nil {
		Logger.Log.WithError(err).Fatal("fail to initialize services")
	}

	// Subscription notifications and metrics are emitted from here too.
	engine := server.NewEventEngine(ctx, cfg, services)
	go engine.Run()
	defer engine.Shutdown()

	router := gin.Default()

	// Add a debug route for testing and health check
	router.GET("/webhook/ping", func(c *gin.Context) {
		c.JSON(http.StatusAccepted, "pong")
	})

	AddWebhooks(router.Group("/webhook"), services)
	// Additional webhooks should be added below this line

	Logger.Log.Info("===== Webhook Server Started =====")
	if err := router.Run(fmt.Sprintf(":%d", cfg.PORT)); err != nil {
		Logger.Log.WithError(err).Error("webhook server stopped")
	}
}
