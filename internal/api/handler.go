package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sheikh-saqib/ledger-orchestrator/internal/ledger"
	"github.com/sheikh-saqib/ledger-orchestrator/internal/models"
)

// Service is the part of the ledger the HTTP surface drives.
type Service interface {
	CreateAccounts(ctx context.Context, reqs []models.AccountRequest) ([]models.Account, error)
	GetAccount(ctx context.Context, accountID uuid.UUID) (models.Account, error)
	LookupAccounts(ctx context.Context, ids []uuid.UUID) ([]*models.Account, error)

	CreateTransfers(ctx context.Context, reqs []models.TransferRequest) ([]models.Transfer, error)
	CreateTransfer(ctx context.Context, req models.TransferRequest) (uuid.UUID, error)
	CreateLinkedTransfers(ctx context.Context, reqs []models.TransferRequest) ([]ledger.TransferOutcome, error)
	GetTransfer(ctx context.Context, transferID uuid.UUID) (models.Transfer, error)

	CreatePendingTransfer(ctx context.Context, req models.TransferRequest) (models.Transfer, error)
	ResolvePendingTransfer(ctx context.Context, res models.Resolution) (models.Transfer, error)

	QueryAccounts(ctx context.Context, f models.QueryFilter) (*ledger.Records[models.Account], error)
	QueryTransfers(ctx context.Context, f models.QueryFilter) (*ledger.Records[models.Transfer], error)
	AccountTransfers(ctx context.Context, f models.AccountFilter) (*ledger.Records[models.Transfer], error)
	AccountBalances(ctx context.Context, f models.AccountFilter) (*ledger.Records[models.Balance], error)

	UnconfirmedSubmissions(ctx context.Context, limit int) ([]models.Submission, error)
}

var _ Service = (*ledger.Ledger)(nil)

// Handler serves the ledger over HTTP.
type Handler struct {
	svc Service
	log *zap.Logger
}

// NewHandler creates a new ledger handler
func NewHandler(svc Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, log: log}
}

// CreateAccounts creates the posted accounts as one atomic batch.
func (h *Handler) CreateAccounts(c *gin.Context) {
	var reqs []models.AccountRequest
	if !h.bind(c, &reqs) {
		return
	}
	accounts, err := h.svc.CreateAccounts(c.Request.Context(), reqs)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, accounts)
}

func (h *Handler) GetAccount(c *gin.Context) {
	accountID, ok := pathID(c)
	if !ok {
		return
	}
	account, err := h.svc.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// LookupAccounts answers with one element per requested id, null where the
// account does not exist.
func (h *Handler) LookupAccounts(c *gin.Context) {
	var ids []uuid.UUID
	if !h.bind(c, &ids) {
		return
	}
	accounts, err := h.svc.LookupAccounts(c.Request.Context(), ids)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

func (h *Handler) CreateTransfers(c *gin.Context) {
	var reqs []models.TransferRequest
	if !h.bind(c, &reqs) {
		return
	}
	transfers, err := h.svc.CreateTransfers(c.Request.Context(), reqs)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, transfers)
}

// CreateLinkedTransfers reports a result for every entry instead of failing
// the request when the chain is rejected.
func (h *Handler) CreateLinkedTransfers(c *gin.Context) {
	var reqs []models.TransferRequest
	if !h.bind(c, &reqs) {
		return
	}
	outcomes, err := h.svc.CreateLinkedTransfers(c.Request.Context(), reqs)
	if err != nil {
		h.fail(c, err)
		return
	}
	status := http.StatusCreated
	for _, o := range outcomes {
		if !o.OK() {
			status = http.StatusOK
			break
		}
	}
	c.JSON(status, outcomes)
}

func (h *Handler) CreateTransfer(c *gin.Context) {
	var req models.TransferRequest
	if !h.bind(c, &req) {
		return
	}
	transferID, err := h.svc.CreateTransfer(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": transferID})
}

func (h *Handler) GetTransfer(c *gin.Context) {
	transferID, ok := pathID(c)
	if !ok {
		return
	}
	transfer, err := h.svc.GetTransfer(c.Request.Context(), transferID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, transfer)
}

func (h *Handler) CreatePendingTransfer(c *gin.Context) {
	var req models.TransferRequest
	if !h.bind(c, &req) {
		return
	}
	transfer, err := h.svc.CreatePendingTransfer(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, transfer)
}

// ResolvePendingTransfer posts or voids a pending transfer.
func (h *Handler) ResolvePendingTransfer(c *gin.Context) {
	var res models.Resolution
	if !h.bind(c, &res) {
		return
	}
	transfer, err := h.svc.ResolvePendingTransfer(c.Request.Context(), res)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, transfer)
}

func (h *Handler) QueryAccounts(c *gin.Context) {
	var f models.QueryFilter
	if !h.bind(c, &f) {
		return
	}
	rows, err := h.svc.QueryAccounts(c.Request.Context(), f)
	respond(h, c, rows, err)
}

func (h *Handler) QueryTransfers(c *gin.Context) {
	var f models.QueryFilter
	if !h.bind(c, &f) {
		return
	}
	rows, err := h.svc.QueryTransfers(c.Request.Context(), f)
	respond(h, c, rows, err)
}

func (h *Handler) AccountTransfers(c *gin.Context) {
	var f models.AccountFilter
	if !h.bind(c, &f) {
		return
	}
	rows, err := h.svc.AccountTransfers(c.Request.Context(), f)
	respond(h, c, rows, err)
}

func (h *Handler) AccountBalances(c *gin.Context) {
	var f models.AccountFilter
	if !h.bind(c, &f) {
		return
	}
	rows, err := h.svc.AccountBalances(c.Request.Context(), f)
	respond(h, c, rows, err)
}

// UnconfirmedSubmissions lists submissions to reconcile, newest first.
func (h *Handler) UnconfirmedSubmissions(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
		return
	}
	subs, err := h.svc.UnconfirmedSubmissions(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

func respond[T any](h *Handler, c *gin.Context, rows *ledger.Records[T], err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rows.Collect())
}

func (h *Handler) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return false
	}
	return true
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}
