// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package form

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/metadata-verifier/internal/logging"
	"github.com/pdiddy/metadata-verifier/pkg/types"
)

// FeedSuffix is appended to an environment name to name its form feed.
const FeedSuffix = "+form"

// Feed is one environment's copy of the form.
type Feed struct {
	Name        string
	Environment string
}

// Feeds returns one feed per configured form environment.
func Feeds(cfg types.FormConfig) []Feed {
	feeds := make([]Feed, 0, len(cfg.Environments))
	for _, env := range cfg.Environments {
		if env == "" {
			continue
		}
		feeds = append(feeds, Feed{Name: env + FeedSuffix, Environment: env})
	}
	return feeds
}

// Load fetches the form from every feed concurrently and returns one
// IndexAdapter per feed, in feed order. A feed whose fetch fails is logged
// and indexed from EmptyDocument, so Load never fails.
func Load(ctx context.Context, f Fetcher, formID, locale string, feeds []Feed, logger *zerolog.Logger) []*IndexAdapter {
	logger = logging.OrNop(logger)
	adapters := make([]*IndexAdapter, len(feeds))

	var g errgroup.Group
	for i, feed := range feeds {
		g.Go(func() error {
			doc, err := f.FetchForm(ctx, formID, locale, feed.Environment)
			if err != nil {
				logger.Warn().
					Str("feed", feed.Name).
					Str("form", formID).
					Err(err).
					Msg("Form unavailable, using empty form")
				doc = EmptyDocument()
			}
			ix := Flatten(doc)
			logger.Debug().Str("feed", feed.Name).Int("concepts", len(ix)).Msg("Form indexed")
			adapters[i] = &IndexAdapter{Feed: feed.Name, Index: ix}
			return nil
		})
	}
	_ = g.Wait()
	return adapters
}
