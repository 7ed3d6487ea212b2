package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"wallet_transfer_back/models"
)

func (h *Handler) GetForm(c *gin.Context) {
	wrapOkJSON(c, map[string]interface{}{
		"form":   h.service.Transfer.Form(),
		"locked": h.service.Transfer.Locked(),
	})
}

func (h *Handler) UpdateForm(c *gin.Context) {
	var input models.TransferForm
	if err := c.ShouldBindJSON(&input); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.service.Transfer.SetForm(input.ToAddress, input.Amount); err != nil {
		abortWithError(c, err)
		return
	}
	h.GetForm(c)
}

// Send отправляет перевод. Поля из тела запроса, если они есть, записываются
// в форму в том же шаге, что и блокировка; без тела отправляется текущая форма.
func (h *Handler) Send(c *gin.Context) {
	var input models.SendInput
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	receipt, err := h.service.Transfer.SubmitWith(c.Request.Context(), input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	wrapOkJSON(c, map[string]interface{}{
		"receipt": receipt,
		"wallet":  h.service.Session.Snapshot(),
	})
}
