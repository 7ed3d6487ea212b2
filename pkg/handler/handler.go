package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"wallet_transfer_back/pkg/middleware"
	"wallet_transfer_back/pkg/service"
)

type Handler struct {
	service     *service.Service
	ws          http.HandlerFunc
	allowOrigin []string
	log         logrus.FieldLogger
}

// NewHandler; ws serves the live status feed and may be nil.
func NewHandler(service *service.Service, ws http.HandlerFunc, allowOrigin []string, log logrus.FieldLogger) *Handler {
	return &Handler{
		service:     service,
		ws:          ws,
		allowOrigin: allowOrigin,
		log:         log,
	}
}

func (h *Handler) InitRoute() *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(h.log), middleware.Recovery(h.log))

	if len(h.allowOrigin) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     h.allowOrigin,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
		}))
	}

	api := router.Group("/api")
	{
		wallet := api.Group("/wallet")
		{
			wallet.GET("/", h.GetWallet)
			wallet.POST("/connect", h.Connect)
			wallet.POST("/disconnect", h.Disconnect)
			wallet.POST("/disconnect-provider", h.DisconnectProvider)
			wallet.POST("/refresh", h.RefreshBalance)
		}

		transaction := api.Group("/transaction")
		{
			transaction.GET("/form", h.GetForm)
			transaction.PUT("/form", h.UpdateForm)
			transaction.POST("/send", h.Send)
		}

		api.GET("/status", h.GetStatus)
		api.DELETE("/status", h.ClearStatus)
	}

	if h.ws != nil {
		router.GET("/ws", gin.WrapF(h.ws))
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
