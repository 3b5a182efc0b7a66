package middleware

import (
	"net/http"
	"strings"

	"github.com/cecomp/central-compras/internal/model"
	"github.com/cecomp/central-compras/internal/service"
	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// AuthMiddleware JWT: valida o token e coloca o ator no contexto
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, model.Error(401, "cabeçalho Authorization ausente"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, model.Error(401, "Authorization deve começar com 'Bearer '"))
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, model.Error(401, "token inválido ou expirado"))
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set(actorKey, claims.Actor())

		c.Next()
	}
}

// AdminMiddleware exige administrador
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ActorFrom(c).IsAdmin {
			c.JSON(http.StatusForbidden, model.Error(403, "requer perfil de administrador"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// ActorFrom ator da requisição; vazio (sem setor, sem admin) se não autenticado
func ActorFrom(c *gin.Context) model.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(model.Actor); ok {
			return actor
		}
	}
	return model.Actor{}
}

// SetActor usado em testes e em rotas que autenticam por outro meio
func SetActor(c *gin.Context, actor model.Actor) {
	c.Set("user_id", actor.UserID)
	c.Set("username", actor.UserName)
	c.Set(actorKey, actor)
}
