package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetWallet(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Wallet(c.Request.Context()))
}

// Connect подключает кошелёк: инициализация, адрес, баланс
func (h *Handler) Connect(c *gin.Context) {
	if err := h.service.Session.Connect(c.Request.Context()); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.service.Wallet(c.Request.Context()))
}

// Disconnect мягкое отключение, страница получит команду reload по websocket
func (h *Handler) Disconnect(c *gin.Context) {
	h.service.Session.Disconnect(c.Request.Context())
	wrapOkJSON(c, map[string]interface{}{
		"wallet": h.service.Session.Snapshot(),
		"reload": true,
	})
}

func (h *Handler) DisconnectProvider(c *gin.Context) {
	h.service.Session.DisconnectProvider(c.Request.Context())
	wrapOkJSON(c, map[string]interface{}{
		"wallet": h.service.Session.Snapshot(),
	})
}

func (h *Handler) RefreshBalance(c *gin.Context) {
	if err := h.service.Session.RefreshBalance(c.Request.Context()); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.service.Wallet(c.Request.Context()))
}

func (h *Handler) GetStatus(c *gin.Context) {
	msg, ok := h.service.Status.Current()
	if !ok {
		wrapOkJSON(c, map[string]interface{}{"status": nil})
		return
	}
	wrapOkJSON(c, map[string]interface{}{"status": msg})
}

func (h *Handler) ClearStatus(c *gin.Context) {
	h.service.Status.Clear()
	c.Status(http.StatusNoContent)
}
