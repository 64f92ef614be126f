package main

import (
	"github.com/Luismorlan/maag/server"
	"github.com/gin-gonic/gin"
)

func AddWebhooks(rg *gin.RouterGroup, services *server.Services) {
	server.AddStripeWebhook(rg, services.Controller, "/stripe")
}
