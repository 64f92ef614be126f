package main

import (
	"context"
	"fmt"

	"github.com/Luismorlan/maag/app_config"
	"github.com/Luismorlan/maag/server"
	"github.com/Luismorlan/maag/server/middlewares"
	. "github.com/Luismorlan/maag/utils"
	"github.com/Luismorlan/maag/utils/dotenv"
	. "github.com/Luismorlan/maag/utils/flag"
	. "github.com/Luismorlan/maag/utils/log"
)

func cleanup() {
	if IsProdEnv() {
		CloseProfiler()
	}
	CloseTracer()
	Log.Info("api server shutdown")
}

func main() {
	ParseFlags()
	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}
	InitLogger()

	StartTracer()
	if IsProdEnv() {
		if err := StartProfiler(); err != nil {
			Log.WithError(err).Warn("profiler disabled")
		}
	}
	defer cleanup()

	cfg, err := app_config.ParseServerAppConfig(*ConfigPath)
	if err != nil {
		Log.WithError(err).Fatal("fail to load app config")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	services, err := server.NewServices(ctx, cfg)
	if err != nil {
		Log.WithError(err).Fatal("fail to initialize services")
	}

	var verifier middlewares.TokenVerifier
	if !*ByPassAuth {
		verifier, err = middlewares.NewCognitoVerifier(ctx)
		if err != nil {
			Log.WithError(err).Fatal("fail to initialize token verifier")
		}
	} else {
		Log.Warn("auth is bypassed, every route is open")
	}

	engine := server.NewEventEngine(ctx, cfg, services)
	go engine.Run()
	defer engine.Shutdown()

	router := server.NewRouter(services.Controller, server.RouterConfig{
		AllowedOrigins:   cfg.ALLOWED_ORIGINS,
		ByPassAuth:       *ByPassAuth,
		Verifier:         verifier,
		TraceServiceName: *ServiceName,
	})

	Log.Infof("api server starts up on port %d", cfg.PORT)
	if err := router.Run(fmt.Sprintf(":%d", cfg.PORT)); err != nil {
		Log.WithError(err).Error("api server stopped")
	}
}
