package consumer

import (
	"context"
	"io"

	"github.com/momo-data/momo-indexer/export"
	"github.com/momo-data/momo-indexer/pkg/repository"
	"github.com/rs/zerolog/log"
)

type feedConsumer struct {
	transactions repository.TransactionsCache
	out          io.Writer
	count        int64
}

// NewFeedConsumer prints the count most recent transactions of the feed to out.
func NewFeedConsumer(transactions repository.TransactionsCache, out io.Writer, count int64) *feedConsumer {
	return &feedConsumer{transactions: transactions, out: out, count: count}
}

func (s *feedConsumer) PrintLatest(ctx context.Context) error {
	latest, err := s.transactions.GetTransactions(ctx, 0, s.count-1)
	if err != nil {
		return err
	}

	b, err := export.ToJSON(latest)
	if err != nil {
		return err
	}
	b.WriteByte('\n')

	_, err = b.WriteTo(s.out)
	return err
}

// RunFeed prints the latest transactions every time a batch is published, until ctx is done.
func (s *feedConsumer) RunFeed(ctx context.Context) error {
	batches, err := s.transactions.SubscribeBatches(ctx)
	if err != nil {
		return err
	}

	log.Info().Msgf("Starting feed consumer: RunFeed")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("breaking the feed loop.")
			return nil
		case count, ok := <-batches:
			if !ok {
				return nil
			}
			log.Info().Int("batch", count).Msg("New transactions batch")
			if err := s.PrintLatest(ctx); err != nil {
				log.Err(err).Msgf("Error printing latest transactions")
			}
		}
	}
}
