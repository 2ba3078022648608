package ledger

import (
	"context"
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/ledger-orchestrator/internal/models"
	"github.com/sheikh-saqib/ledger-orchestrator/internal/storage"
)

func ptr[T any](v T) *T { return &v }

func TestToQueryFilter(t *testing.T) {
	got, err := toQueryFilter(models.QueryFilter{
		AccountNumber: big.NewInt(77),
		UserData64:    5,
		UserData32:    6,
		Code:          7,
		Ledger:        8,
		FromDate:      ptr(int64(1_700_000_000_123)),
		Limit:         25,
		Reversed:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, storage.QueryFilter{
		UserData128:  storage.ToUint128(77),
		UserData64:   5,
		UserData32:   6,
		Ledger:       8,
		Code:         7,
		TimestampMin: 1_700_000_000_123_000_000,
		TimestampMax: 0,
		Limit:        25,
		Flags:        storage.QueryReversed,
	}, got)
}

func TestMillisToNanos(t *testing.T) {
	tests := []struct {
		name string
		ms   *int64
		want uint64
	}{
		{"absent", nil, 0},
		{"negative", ptr(int64(-5)), 0},
		{"zero", ptr(int64(0)), 0},
		{"one", ptr(int64(1)), 1_000_000},
		{"largest exact", ptr(int64(18_446_744_073_709)), 18_446_744_073_709_000_000},
		{"past range", ptr(int64(18_446_744_073_710)), math.MaxUint64},
		{"max int64", ptr(int64(math.MaxInt64)), math.MaxUint64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, millisToNanos(tt.ms))
		})
	}
}

func TestToQueryFilterLimits(t *testing.T) {
	for limit, want := range map[uint32]uint32{
		0:                        storage.MaxBatchSize,
		1:                        1,
		storage.MaxBatchSize:     storage.MaxBatchSize,
		storage.MaxBatchSize + 1: storage.MaxBatchSize,
	} {
		got, err := toQueryFilter(models.QueryFilter{Limit: limit})
		require.NoError(t, err)
		assert.Equal(t, want, got.Limit, "limit %d", limit)
	}
}

func TestToAccountFilter(t *testing.T) {
	accountID := uuid.New()
	tests := []struct {
		name string
		in   models.AccountFilter
		want storage.AccountFilterFlags
	}{
		{"debits", models.AccountFilter{Debits: true}, storage.FilterDebits},
		{"credits reversed", models.AccountFilter{Credits: true, Reversed: true}, storage.FilterCredits | storage.FilterReversed},
		{"both", models.AccountFilter{Debits: true, Credits: true}, storage.FilterDebits | storage.FilterCredits},
		{"neither selects both", models.AccountFilter{}, storage.FilterDebits | storage.FilterCredits},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.AccountID = accountID
			tt.in.FromDate = ptr(int64(1000))
			tt.in.ToDate = ptr(int64(2000))
			got := toAccountFilter(tt.in)
			assert.Equal(t, tt.want, got.Flags)
			assert.Equal(t, storage.UUIDToUint128(accountID), got.AccountID)
			assert.Equal(t, uint64(1_000_000_000), got.TimestampMin)
			assert.Equal(t, uint64(2_000_000_000), got.TimestampMax)
			assert.Equal(t, uint32(storage.MaxBatchSize), got.Limit)
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "2023-11-14 22:13:20.123 UTC", formatTimestamp(1_700_000_000_123_456_789))
	assert.Equal(t, "1970-01-01 00:00:00.000 UTC", formatTimestamp(0))
}

func TestRecordsCursor(t *testing.T) {
	converted := 0
	records := newRecords([]int{1, 2, 3}, func(v int) string {
		converted++
		return string(rune('a' + v - 1))
	})
	assert.Equal(t, 3, records.Len())
	assert.Zero(t, converted)

	require.True(t, records.Next())
	assert.Equal(t, "a", records.Value())
	assert.Equal(t, []string{"b", "c"}, records.Collect())
	assert.False(t, records.Next())
	assert.Empty(t, records.Collect())
	assert.Equal(t, 3, converted)
}

func TestRecordsAllStopsEarly(t *testing.T) {
	records := newRecords([]int{1, 2, 3}, func(v int) int { return v * 10 })
	var seen []int
	for v := range records.All() {
		seen = append(seen, v)
		if v == 20 {
			break
		}
	}
	assert.Equal(t, []int{10, 20}, seen)
	assert.Equal(t, []int{30}, records.Collect())
}

func TestQueriesThroughLedger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reqs := []models.AccountRequest{
		{AccountNumber: big.NewInt(500), Ledger: 1, Code: 10},
		{AccountNumber: big.NewInt(500), Ledger: 1, Code: 20},
		{AccountNumber: big.NewInt(600), Ledger: 1, Code: 10},
	}
	accounts, err := f.ledger.CreateAccounts(ctx, reqs)
	require.NoError(t, err)

	found, err := f.ledger.QueryAccounts(ctx, models.QueryFilter{AccountNumber: big.NewInt(500)})
	require.NoError(t, err)
	got := found.Collect()
	require.Len(t, got, 2)
	assert.Equal(t, accounts[0].ID, got[0].ID)
	assert.Equal(t, 0, got[1].AccountNumber.Cmp(big.NewInt(500)))

	found, err = f.ledger.QueryAccounts(ctx, models.QueryFilter{Code: 10, Reversed: true, Limit: 1})
	require.NoError(t, err)
	got = found.Collect()
	require.Len(t, got, 1)
	assert.Equal(t, accounts[2].ID, got[0].ID)

	a, b := accounts[0], accounts[1]
	for i := 0; i < 3; i++ {
		f.clock.advance(time.Second)
		_, err := f.ledger.CreateTransfer(ctx, move(a, b, int64(10*(i+1))))
		require.NoError(t, err)
	}

	transfers, err := f.ledger.AccountTransfers(ctx, models.AccountFilter{AccountID: a.ID, Debits: true})
	require.NoError(t, err)
	assert.Equal(t, 3, transfers.Len())
	list := transfers.Collect()
	assert.True(t, list[0].Amount.Equal(dec(10)))
	assert.Equal(t, "2024-05-01 12:00:01.000 UTC", list[0].Timestamp)

	transfers, err = f.ledger.AccountTransfers(ctx, models.AccountFilter{AccountID: a.ID, Credits: true})
	require.NoError(t, err)
	assert.Zero(t, transfers.Len())

	from := f.clock.t.UnixMilli()
	byTag, err := f.ledger.QueryTransfers(ctx, models.QueryFilter{Ledger: 1, FromDate: &from})
	require.NoError(t, err)
	tagged := byTag.Collect()
	require.Len(t, tagged, 1)
	assert.True(t, tagged[0].Amount.Equal(dec(30)))

	balances, err := f.ledger.AccountBalances(ctx, models.AccountFilter{AccountID: b.ID, Reversed: true})
	require.NoError(t, err)
	history := balances.Collect()
	require.Len(t, history, 3)
	assert.True(t, history[0].CreditsPosted.Equal(dec(60)))
	assert.True(t, history[2].CreditsPosted.Equal(dec(10)))
	assert.Equal(t, b.ID, history[0].AccountID)
	assert.Equal(t, "2024-05-01 12:00:03.000 UTC", history[0].Timestamp)
}
