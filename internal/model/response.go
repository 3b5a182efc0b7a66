package model

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cecomp/central-compras/pkg/logger"
	"github.com/gin-gonic/gin"
)

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(data interface{}) Response {
	return Response{
		Code:    0,
		Message: "success",
		Data:    data,
	}
}

func Error(code int, message string) Response {
	return Response{
		Code:    code,
		Message: message,
	}
}

// PaginatedResponse resposta paginada
type PaginatedResponse struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
	Skip  int         `json:"skip"`
	Limit int         `json:"limit"`
}

// StatusFor traduz o tipo de erro para o status HTTP
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// HandleServiceError responde com o status correspondente ao tipo de erro.
// Erros de persistência não expõem detalhes do banco ao cliente.
func HandleServiceError(c *gin.Context, err error, context ...string) {
	code := StatusFor(err)
	if code == http.StatusInternalServerError {
		logRequestError(c, code, errorMessage(err, context))
		c.JSON(code, Error(code, "falha ao executar a operação"))
		return
	}
	c.JSON(code, Error(code, err.Error()))
}

// HandleError registra o erro com o contexto da requisição e responde
func HandleError(c *gin.Context, code int, err error, context ...string) {
	msg := errorMessage(err, context)
	logRequestError(c, code, msg)
	c.JSON(code, Error(code, msg))
}

func errorMessage(err error, context []string) string {
	if len(context) > 0 {
		return fmt.Sprintf("%s: %v", context[0], err)
	}
	return err.Error()
}

func logRequestError(c *gin.Context, code int, msg string) {
	requestPath := c.Request.URL.Path
	if q := c.Request.URL.RawQuery; q != "" {
		requestPath = fmt.Sprintf("%s?%s", requestPath, q)
	}

	userID := ""
	if uid, exists := c.Get("user_id"); exists {
		userID = fmt.Sprintf("%v", uid)
	}

	logger.Errorf(
		"Request error [%d]: %s\n"+
			"  Request: %s %s\n"+
			"  Client IP: %s\n"+
			"  User ID: %s",
		code,
		msg,
		c.Request.Method,
		requestPath,
		c.ClientIP(),
		userID,
	)
}

// ParseIDParam lê um ID numérico da rota; responde 400 se inválido
func ParseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, Error(http.StatusBadRequest, fmt.Sprintf("%s inválido", name)))
		return 0, false
	}
	return uint(id), true
}
