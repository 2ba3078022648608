package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires the ledger routes under /v1/ledger plus /health.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(h.log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1/ledger")
	{
		v1.POST("/accounts", h.CreateAccounts)
		v1.GET("/accounts/:id", h.GetAccount)
		v1.POST("/accounts/lookup", h.LookupAccounts)
		v1.POST("/accounts/extraction", h.QueryAccounts)

		v1.POST("/transfers", h.CreateTransfer)
		v1.GET("/transfers/:id", h.GetTransfer)
		v1.POST("/batch/transfers", h.CreateTransfers)
		v1.POST("/linked/transfers", h.CreateLinkedTransfers)
		v1.POST("/pending/transfers", h.CreatePendingTransfer)
		v1.PUT("/pending/transfers", h.ResolvePendingTransfer)

		v1.POST("/transactions/history", h.AccountTransfers)
		v1.POST("/transactions/extraction", h.QueryTransfers)
		v1.POST("/balance/history", h.AccountBalances)

		v1.GET("/submissions/unconfirmed", h.UnconfirmedSubmissions)
	}

	return router
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
