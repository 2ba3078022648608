package ledger

import (
	"math/big"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/ledger-orchestrator/internal/id"
	"github.com/sheikh-saqib/ledger-orchestrator/internal/models"
	"github.com/sheikh-saqib/ledger-orchestrator/internal/storage"
)

func TestBuildTransferBatchLinksAllButLast(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		reqs := make([]models.TransferRequest, n)
		for i := range reqs {
			reqs[i] = models.TransferRequest{Amount: decimal.NewFromInt(int64(i + 1)), Ledger: 1, Code: uint16(i + 1)}
		}

		records, ids, err := buildTransferBatch(reqs, id.NewSequence(9), storage.TransferPending)
		require.NoError(t, err)
		require.Len(t, records, n)
		require.Len(t, ids, n)

		for i, rec := range records {
			assert.Equal(t, i < n-1, rec.Flags.Has(storage.TransferLinked), "entry %d of %d", i, n)
			assert.True(t, rec.Flags.Has(storage.TransferPending))
			assert.Equal(t, storage.UUIDToUint128(ids[i]), rec.ID)
			assert.Equal(t, uint16(i+1), rec.Code, "request order is preserved")
			assert.Equal(t, storage.ToUint128(uint64(i+1)), rec.Amount)
		}
	}
}

func TestBuildAccountBatch(t *testing.T) {
	reqs := []models.AccountRequest{
		{AccountNumber: big.NewInt(42), Ledger: 1, Code: 10, UserData64: 7, Flags: uint16(storage.AccountLinked)},
		{Ledger: 1, Code: 11, Flags: uint16(storage.AccountDebitsMustNotExceedCredits)},
	}

	records, ids, err := buildAccountBatch(reqs, id.NewSequence(1))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.NotEqual(t, ids[0], ids[1])

	assert.Equal(t, storage.ToUint128(42), records[0].UserData128)
	assert.Equal(t, uint64(7), records[0].UserData64)
	assert.True(t, records[0].Flags.Has(storage.AccountLinked))
	assert.True(t, records[0].Flags.Has(storage.AccountHistory))

	assert.False(t, records[1].Flags.Has(storage.AccountLinked))
	assert.True(t, records[1].Flags.Has(storage.AccountHistory))
	assert.True(t, records[1].Flags.Has(storage.AccountDebitsMustNotExceedCredits))
}

func TestSingleEntryBatchIsNotLinked(t *testing.T) {
	reqs := []models.AccountRequest{{Ledger: 1, Code: 1, Flags: uint16(storage.AccountLinked)}}
	records, _, err := buildAccountBatch(reqs, id.NewSequence(1))
	require.NoError(t, err)
	assert.False(t, records[0].Flags.Has(storage.AccountLinked))
}

func TestBuildBatchRejectsSize(t *testing.T) {
	_, _, err := buildTransferBatch(nil, id.NewSequence(1), 0)
	assert.ErrorIs(t, err, ErrEmptyBatch)

	_, _, err = buildAccountBatch(make([]models.AccountRequest, storage.MaxBatchSize+1), id.NewSequence(1))
	assert.ErrorIs(t, err, ErrBatchTooLarge)

	records, _, err := buildAccountBatch(make([]models.AccountRequest, storage.MaxBatchSize), id.NewSequence(1))
	require.NoError(t, err)
	assert.Len(t, records, storage.MaxBatchSize)
}

func TestBuildTransferBatchRejectsAmounts(t *testing.T) {
	tooBig := decimal.NewFromBigInt(new(big.Int).Lsh(big.NewInt(1), 128), 0)
	for name, amount := range map[string]decimal.Decimal{
		"negative":   decimal.NewFromInt(-1),
		"fractional": decimal.RequireFromString("1.5"),
		"too big":    tooBig,
	} {
		t.Run(name, func(t *testing.T) {
			reqs := []models.TransferRequest{{Amount: amount, Ledger: 1, Code: 1}}
			_, _, err := buildTransferBatch(reqs, id.NewSequence(1), 0)
			assert.ErrorIs(t, err, ErrInvalidAmount)
		})
	}
}

func TestBuildAccountBatchRejectsNegativeAccountNumber(t *testing.T) {
	reqs := []models.AccountRequest{{AccountNumber: big.NewInt(-5), Ledger: 1, Code: 1}}
	_, _, err := buildAccountBatch(reqs, id.NewSequence(1))
	assert.ErrorIs(t, err, ErrInvalidTag)
}

func TestResolutionRecordAmounts(t *testing.T) {
	pendingID := uuid.MustParse("018f2b6e-0000-7000-8000-000000000001")
	partial := decimal.NewFromInt(100)

	post, err := resolutionRecord(models.Resolution{PendingID: pendingID}, uuid.New(), storage.TransferPostPending)
	require.NoError(t, err)
	assert.Equal(t, storage.AmountMax, post.Amount)
	assert.Equal(t, storage.UUIDToUint128(pendingID), post.PendingID)
	assert.True(t, post.DebitAccountID.IsZero())
	assert.Zero(t, post.Ledger)

	post, err = resolutionRecord(models.Resolution{PendingID: pendingID, Amount: &partial}, uuid.New(), storage.TransferPostPending)
	require.NoError(t, err)
	assert.Equal(t, storage.ToUint128(100), post.Amount)

	void, err := resolutionRecord(models.Resolution{PendingID: pendingID, Ledger: 1, Code: 3}, uuid.New(), storage.TransferVoidPending)
	require.NoError(t, err)
	assert.True(t, void.Amount.IsZero())
	assert.Equal(t, uint32(1), void.Ledger)
	assert.Equal(t, uint16(3), void.Code)
	assert.Equal(t, storage.TransferVoidPending, void.Flags)
}
