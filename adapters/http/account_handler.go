package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	lookupUC "github.com/khoahotran/devfinder/internal/application/usecase/lookup"
	"github.com/khoahotran/devfinder/pkg/logger"
)

type AccountHandler struct {
	lookupUseCase *lookupUC.LookupUseCase
	logger        logger.Logger
}

func NewAccountHandler(uc *lookupUC.LookupUseCase, log logger.Logger) *AccountHandler {
	return &AccountHandler{
		lookupUseCase: uc,
		logger:        log,
	}
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	sid, _ := GetSessionIDFromGinContext(c)
	input := lookupUC.LookupInput{
		Username:  c.Param("username"),
		SessionID: sid,
	}

	output, err := h.lookupUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToAccountDTO(*output.Account))
}
