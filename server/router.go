package server

import (
	"net/http"
	"time"

	"github.com/Luismorlan/maag/model"
	"github.com/Luismorlan/maag/server/controller"
	"github.com/Luismorlan/maag/server/middlewares"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
)

const Greeting = "Hello from the MAAG API!"

type RouterConfig struct {
	// Origins allowed by CORS, every origin when empty.
	AllowedOrigins []string
	// Skip token and role checks, development only.
	ByPassAuth bool
	Verifier   middlewares.TokenVerifier
	// Service name reported to the tracer, tracing is off when empty.
	TraceServiceName string
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	if len(origins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	c.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	c.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	c.MaxAge = 12 * time.Hour
	return c
}

// NewRouter builds the api engine. Default With the Logger and Recovery
// middleware already attached.
func NewRouter(ctrl *controller.Controller, cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))
	if cfg.TraceServiceName != "" {
		router.Use(gintrace.Middleware(cfg.TraceServiceName))
	}

	router.GET("/api", func(c *gin.Context) {
		c.String(http.StatusOK, Greeting)
	})
	AddApiRoutes(router.Group("/api"), ctrl, cfg)
	return router
}

type authChains struct {
	// Any signed-in user.
	user []gin.HandlerFunc
	// Authors and admins.
	editor []gin.HandlerFunc
}

func newAuthChains(ctrl *controller.Controller, cfg RouterConfig) authChains {
	if cfg.ByPassAuth {
		return authChains{}
	}
	jwt := middlewares.JWT(cfg.Verifier)
	return authChains{
		user:   []gin.HandlerFunc{jwt},
		editor: []gin.HandlerFunc{jwt, middlewares.RequireRole(ctrl.DB, model.RoleAuthor, model.RoleAdmin)},
	}
}

func with(chain []gin.HandlerFunc, handlers ...gin.HandlerFunc) []gin.HandlerFunc {
	res := make([]gin.HandlerFunc, 0, len(chain)+len(handlers))
	res = append(res, chain...)
	return append(res, handlers...)
}

func AddApiRoutes(api *gin.RouterGroup, ctrl *controller.Controller, cfg RouterConfig) {
	auth := newAuthChains(ctrl, cfg)

	// Debug route for health check
	api.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	articles := api.Group("/articles")
	articles.GET("", ctrl.ListArticles)
	articles.GET("/:id", ctrl.GetArticle)
	articles.POST("", with(auth.editor, ctrl.CreateArticle)...)
	articles.PUT("/:id", with(auth.editor, ctrl.UpdateArticle)...)
	articles.DELETE("/:id", with(auth.editor, ctrl.DeleteArticle)...)

	events := api.Group("/events")
	events.GET("", ctrl.ListEvents)
	events.GET("/calendar", ctrl.GetCalendar)
	events.GET("/:id", ctrl.GetEvent)
	events.POST("", with(auth.editor, ctrl.CreateEvent)...)
	events.PUT("/:id", with(auth.editor, ctrl.UpdateEvent)...)
	events.DELETE("/:id", with(auth.editor, ctrl.DeleteEvent)...)

	interviews := api.Group("/interviews")
	interviews.GET("", ctrl.ListInterviews)
	interviews.GET("/:id", ctrl.GetInterview)
	interviews.POST("", with(auth.editor, ctrl.CreateInterview)...)
	interviews.PUT("/:id", with(auth.editor, ctrl.UpdateInterview)...)
	interviews.DELETE("/:id", with(auth.editor, ctrl.DeleteInterview)...)

	flippers := api.Group("/flippers")
	flippers.GET("", ctrl.ListFlippers)
	flippers.GET("/:id", ctrl.GetFlipper)
	flippers.POST("", with(auth.editor, ctrl.CreateFlipper)...)
	flippers.PUT("/:id", with(auth.editor, ctrl.UpdateFlipper)...)
	flippers.DELETE("/:id", with(auth.editor, ctrl.DeleteFlipper)...)

	authors := api.Group("/authors")
	authors.GET("", ctrl.ListAuthors)
	authors.POST("", with(auth.editor, ctrl.CreateAuthor)...)

	users := api.Group("/users")
	users.POST("", with(auth.user, ctrl.CreateUserProfile)...)
	if cfg.ByPassAuth {
		users.GET("/:uid", ctrl.GetUserProfile)
		users.PUT("/:uid", ctrl.UpdateUserProfile)
	} else {
		self := middlewares.RequireSelfOrRole(ctrl.DB, "uid", model.RoleAdmin)
		users.GET("/:uid", with(auth.user, self, ctrl.GetUserProfile)...)
		users.PUT("/:uid", with(auth.user, self, ctrl.UpdateUserProfile)...)
	}

	api.POST("/uploads", with(auth.editor, ctrl.Upload)...)

	stripe := api.Group("/stripe")
	stripe.POST("/create-checkout-session", with(auth.user, ctrl.CreateCheckoutSession)...)
	stripe.POST("/create-portal-session", with(auth.user, ctrl.CreatePortalSession)...)
	AddStripeWebhook(stripe, ctrl, "/webhook")
}

// AddStripeWebhook registers the payment webhook at path. It is also served
// by the standalone webhook server.
func AddStripeWebhook(rg *gin.RouterGroup, ctrl *controller.Controller, path string) {
	rg.POST(path, ctrl.StripeWebhook)
}
