package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/cecomp/central-compras/internal/model"
	"github.com/cecomp/central-compras/pkg/logger"
	"github.com/gin-gonic/gin"
)

// RecoveryMiddleware registra o panic com o contexto da requisição e responde 500
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		err, ok := recovered.(error)
		if !ok {
			err = fmt.Errorf("%v", recovered)
		}

		fullURL := c.Request.URL.Path
		if q := c.Request.URL.RawQuery; q != "" {
			fullURL = fmt.Sprintf("%s?%s", fullURL, q)
		}

		actor := ActorFrom(c)
		requestID, _ := c.Get("request_id")

		logger.Errorf(
			"Panic recovered: %v\n"+
				"  Request: %s %s\n"+
				"  Request ID: %v\n"+
				"  Client IP: %s\n"+
				"  User: %s (%s), sector=%s, admin=%t\n"+
				"  Stack Trace:\n%s",
			err,
			c.Request.Method,
			fullURL,
			requestID,
			c.ClientIP(),
			actor.UserName,
			actor.UserID,
			actor.SectorID,
			actor.IsAdmin,
			string(debug.Stack()),
		)

		c.JSON(http.StatusInternalServerError, model.Error(500, "erro interno"))
		c.Abort()
	})
}
