package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sheikh-saqib/ledger-orchestrator/internal/models"
	"github.com/sheikh-saqib/ledger-orchestrator/internal/storage"
)

// CreateTransfers applies every transfer or none. A rejection is a
// *TransferBatchError listing each failed entry.
func (l *Ledger) CreateTransfers(ctx context.Context, reqs []models.TransferRequest) ([]models.Transfer, error) {
	records, ids, err := buildTransferBatch(reqs, l.ids, 0)
	if err != nil {
		return nil, err
	}
	failures, err := l.submitTransfers(ctx, records, ids)
	if err != nil {
		return nil, err
	}
	if err := batchError(entityTransfer, failures); err != nil {
		return nil, err
	}
	transfers, err := l.readTransfers(ctx, ids)
	if err != nil {
		return nil, err
	}
	l.publishTransfers(ctx, transfers)
	return transfers, nil
}

// CreateTransfer applies a single plain transfer and returns its id. The
// transfer is not read back, so its event carries the fields as submitted
// and no store timestamp.
func (l *Ledger) CreateTransfer(ctx context.Context, req models.TransferRequest) (uuid.UUID, error) {
	records, ids, err := buildTransferBatch([]models.TransferRequest{req}, l.ids, 0)
	if err != nil {
		return uuid.Nil, err
	}
	failures, err := l.submitTransfers(ctx, records, ids)
	if err != nil {
		return uuid.Nil, err
	}
	if err := entryError(entityTransfer, failures); err != nil {
		return uuid.Nil, err
	}
	l.publishTransfers(ctx, []models.Transfer{toTransfer(records[0])})
	return ids[0], nil
}

// CreateLinkedTransfers submits one linked chain and reports the outcome of
// every entry instead of failing. The error is reserved for submissions
// whose outcome is unknown. Like CreateTransfer it skips the read back, and
// events are built from the submitted entries.
func (l *Ledger) CreateLinkedTransfers(ctx context.Context, reqs []models.TransferRequest) ([]TransferOutcome, error) {
	records, ids, err := buildTransferBatch(reqs, l.ids, 0)
	if err != nil {
		return nil, err
	}
	failures, err := l.submitTransfers(ctx, records, ids)
	if err != nil {
		return nil, err
	}
	if len(failures) == 0 {
		transfers := make([]models.Transfer, len(records))
		for i, r := range records {
			transfers[i] = toTransfer(r)
		}
		l.publishTransfers(ctx, transfers)
	}
	return transferOutcomes(ids, failures), nil
}

func (l *Ledger) submitTransfers(ctx context.Context, records []storage.TransferRecord, ids []uuid.UUID) ([]TransferFailure, error) {
	l.log.Debug("submitting transfers", zap.Int("entries", len(records)))
	results, err := l.store.CreateTransfers(ctx, records)
	return settle(ctx, l, entityTransfer, ids, transferResults(results), err)
}

// readTransfers reads back transfers the store just confirmed. Any failure
// is a *ReadBackError.
func (l *Ledger) readTransfers(ctx context.Context, ids []uuid.UUID) ([]models.Transfer, error) {
	found, err := l.LookupTransfers(ctx, ids)
	if err != nil {
		return nil, l.readBackFailed(entityTransfer, ids, err)
	}
	transfers := make([]models.Transfer, len(found))
	for i, t := range found {
		if t == nil {
			return nil, l.readBackFailed(entityTransfer, ids, fmt.Errorf("transfer %s: %w", ids[i], ErrNotFound))
		}
		transfers[i] = *t
	}
	return transfers, nil
}

func (l *Ledger) GetTransfer(ctx context.Context, transferID uuid.UUID) (models.Transfer, error) {
	found, err := l.LookupTransfers(ctx, []uuid.UUID{transferID})
	if err != nil {
		return models.Transfer{}, err
	}
	if found[0] == nil {
		return models.Transfer{}, fmt.Errorf("transfer %s: %w", transferID, ErrNotFound)
	}
	return *found[0], nil
}

// LookupTransfers returns one entry per id, nil where the transfer does not
// exist.
func (l *Ledger) LookupTransfers(ctx context.Context, ids []uuid.UUID) ([]*models.Transfer, error) {
	if len(ids) == 0 {
		return []*models.Transfer{}, nil
	}
	if err := checkSize(len(ids)); err != nil {
		return nil, err
	}
	rows, err := l.store.LookupTransfers(ctx, storeIDs(ids))
	if err != nil {
		return nil, fmt.Errorf("lookup transfers: %w", err)
	}
	transfers := make([]models.Transfer, len(rows))
	for i, r := range rows {
		transfers[i] = toTransfer(r)
	}
	return align(ids, transfers, func(t models.Transfer) uuid.UUID { return t.ID }), nil
}
