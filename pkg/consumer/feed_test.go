package consumer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/momo-data/momo-indexer/parsers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	transactions []parsers.Transaction
	batches      chan int
	getErr       error
	lastStop     int64
}

func (f *fakeCache) AddTransactions(_ context.Context, transactions []parsers.Transaction) error {
	f.transactions = append(transactions, f.transactions...)
	return nil
}

func (f *fakeCache) GetTransactions(_ context.Context, start, stop int64) ([]parsers.Transaction, error) {
	f.lastStop = stop
	if f.getErr != nil {
		return nil, f.getErr
	}
	if stop < 0 || stop >= int64(len(f.transactions)) {
		stop = int64(len(f.transactions)) - 1
	}
	return f.transactions[start : stop+1], nil
}

func (f *fakeCache) PublishBatch(_ context.Context, count int) error {
	f.batches <- count
	return nil
}

func (f *fakeCache) SubscribeBatches(_ context.Context) (<-chan int, error) {
	return f.batches, nil
}

func mkTransaction(recipient string) parsers.Transaction {
	return parsers.Transaction{Type: parsers.TransferToMobile, Amount: "1,000", Recipient: recipient}
}

func TestPrintLatest(t *testing.T) {
	cache := &fakeCache{transactions: []parsers.Transaction{mkTransaction("Jane"), mkTransaction("Bob"), mkTransaction("Ann")}}
	var out bytes.Buffer

	require.NoError(t, NewFeedConsumer(cache, &out, 2).PrintLatest(context.Background()))

	var printed []parsers.Transaction
	require.NoError(t, json.Unmarshal(out.Bytes(), &printed))
	assert.Equal(t, int64(1), cache.lastStop)
	assert.Equal(t, []parsers.Transaction{mkTransaction("Jane"), mkTransaction("Bob")}, printed)
}

func TestPrintLatestEmptyFeed(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, NewFeedConsumer(&fakeCache{}, &out, 10).PrintLatest(context.Background()))
	assert.Equal(t, "[]\n", out.String())
}

func TestPrintLatestError(t *testing.T) {
	var out bytes.Buffer
	cache := &fakeCache{getErr: errors.New("connection refused")}

	err := NewFeedConsumer(cache, &out, 10).PrintLatest(context.Background())
	assert.ErrorContains(t, err, "connection refused")
	assert.Empty(t, out.String())
}

func TestRunFeedStopsWhenBatchesClose(t *testing.T) {
	cache := &fakeCache{batches: make(chan int, 1)}
	var out bytes.Buffer

	require.NoError(t, cache.AddTransactions(context.Background(), []parsers.Transaction{mkTransaction("Jane")}))
	require.NoError(t, cache.PublishBatch(context.Background(), 1))
	close(cache.batches)

	done := make(chan error)
	go func() {
		done <- NewFeedConsumer(cache, &out, 10).RunFeed(context.Background())
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("feed consumer did not stop")
	}
	assert.Contains(t, out.String(), `"Recipient/Details": "Jane"`)
}

func TestRunFeedStopsOnCancel(t *testing.T) {
	cache := &fakeCache{batches: make(chan int)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, NewFeedConsumer(cache, &bytes.Buffer{}, 10).RunFeed(ctx))
}
