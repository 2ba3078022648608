package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sheikh-saqib/ledger-orchestrator/internal/ledger"
)

var badInput = []error{
	ledger.ErrEmptyBatch,
	ledger.ErrBatchTooLarge,
	ledger.ErrInvalidAmount,
	ledger.ErrInvalidTag,
	ledger.ErrInvalidAction,
}

type kinded interface {
	error
	Kind() ledger.Kind
}

// fail maps ledger errors to a status code and a JSON body. Rejected batches
// carry their per-entry failures. Unconfirmed submissions carry the ids the
// caller should look up, and so do committed ones that could not be read
// back, answered 202 so they are not retried.
func (h *Handler) fail(c *gin.Context, err error) {
	body := gin.H{"error": err.Error()}

	var readBack *ledger.ReadBackError
	if errors.As(err, &readBack) {
		body["ids"] = readBack.IDs
		body["committed"] = readBack.Committed()
		c.JSON(http.StatusAccepted, body)
		return
	}

	var unconfirmed *ledger.UnconfirmedError
	if errors.As(err, &unconfirmed) {
		body["ids"] = unconfirmed.IDs
		h.log.Error("ledger submission unconfirmed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusGatewayTimeout, body)
		return
	}

	var accounts *ledger.AccountBatchError
	var transfers *ledger.TransferBatchError
	switch {
	case errors.As(err, &accounts):
		body["failures"] = accounts.Failures
	case errors.As(err, &transfers):
		body["failures"] = transfers.Failures
	}

	var rejected kinded
	if errors.As(err, &rejected) {
		status := http.StatusUnprocessableEntity
		if rejected.Kind() == ledger.KindProtocol {
			status = http.StatusConflict
		}
		c.JSON(status, body)
		return
	}

	if errors.Is(err, ledger.ErrNotFound) {
		c.JSON(http.StatusNotFound, body)
		return
	}
	for _, target := range badInput {
		if errors.Is(err, target) {
			c.JSON(http.StatusBadRequest, body)
			return
		}
	}

	h.log.Error("ledger request failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
