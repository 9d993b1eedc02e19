package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/momo-data/momo-indexer/parsers"
	"github.com/redis/go-redis/v9"
)

const (
	transactionsChannel      = "pub/transfers"
	maxTransactionsCacheSize = 50
	transactionsKey          = "c/latest_transfers"
)

// TransactionsCache keeps the most recently processed transactions for dashboards.
type TransactionsCache interface {
	AddTransactions(ctx context.Context, transactions []parsers.Transaction) error
	GetTransactions(ctx context.Context, start, stop int64) ([]parsers.Transaction, error)
	PublishBatch(ctx context.Context, count int) error
	SubscribeBatches(ctx context.Context) (<-chan int, error)
}

type Cache struct {
	rdb *redis.Client
}

func NewCache(rdb *redis.Client) *Cache {
	return &Cache{
		rdb: rdb,
	}
}

// AddTransactions pushes the batch in order, so the last transaction of the batch ends up first.
func (s *Cache) AddTransactions(ctx context.Context, transactions []parsers.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	values := make([]interface{}, 0, len(transactions))
	for _, tx := range transactions {
		res, err := json.Marshal(tx)
		if err != nil {
			return err
		}
		values = append(values, string(res))
	}

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, transactionsKey, values...)
		pipe.LTrim(ctx, transactionsKey, 0, maxTransactionsCacheSize-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("repository.AddTransactions: %w", err)
	}

	return nil
}

func (s *Cache) GetTransactions(ctx context.Context, start, stop int64) ([]parsers.Transaction, error) {
	if stop >= maxTransactionsCacheSize {
		stop = maxTransactionsCacheSize - 1
	}
	res, err := s.rdb.LRange(ctx, transactionsKey, start, stop).Result()
	if err != nil {
		return nil, err
	}

	transactions := make([]parsers.Transaction, 0, len(res))
	for _, r := range res {
		var tx parsers.Transaction
		if err := json.Unmarshal([]byte(r), &tx); err != nil {
			return nil, fmt.Errorf("repository.GetTransactions, Unmarshal: %v", err)
		}
		transactions = append(transactions, tx)
	}

	return transactions, nil
}

// PublishBatch notifies subscribers that a batch of count transactions was added.
func (s *Cache) PublishBatch(ctx context.Context, count int) error {
	return s.rdb.Publish(ctx, transactionsChannel, count).Err()
}

// SubscribeBatches streams the sizes of the batches published after the call. The channel is
// closed once ctx is done.
func (s *Cache) SubscribeBatches(ctx context.Context) (<-chan int, error) {
	pubsub := s.rdb.Subscribe(ctx, transactionsChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("repository.SubscribeBatches: %w", err)
	}

	batches := make(chan int)
	go func() {
		defer close(batches)
		defer pubsub.Close()

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				count, err := strconv.Atoi(msg.Payload)
				if err != nil {
					continue
				}
				select {
				case batches <- count:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return batches, nil
}
