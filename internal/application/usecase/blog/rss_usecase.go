package blog

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/feeds"
	"go.uber.org/zap"

	"github.com/trafylabs/academy-api/internal/domain/blog"
	"github.com/trafylabs/academy-api/pkg/logger"
)

type RSSUseCase struct {
	siteURL string
	logger  logger.Logger
}

func NewRSSUseCase(siteURL string, log logger.Logger) *RSSUseCase {
	return &RSSUseCase{
		siteURL: siteURL,
		logger:  log,
	}
}

func (uc *RSSUseCase) Execute(ctx context.Context) (*feeds.Feed, error) {
	uc.logger.Info("Generating RSS feed...")

	now := time.Now()
	feed := &feeds.Feed{
		Title:       "Trafy Academy - Blog",
		Link:        &feeds.Link{Href: uc.siteURL + "/blogs"},
		Description: "Guides and career advice for aspiring product designers.",
		Author:      &feeds.Author{Name: "Trafy Academy"},
		Created:     now,
	}

	var feedItems []*feeds.Item
	for _, p := range blog.List() {

		created := now
		if t, err := time.Parse("January 2, 2006", p.Date); err == nil {
			created = t
		}

		feedItems = append(feedItems, &feeds.Item{
			Title:       p.Title,
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/blogs/%s", uc.siteURL, p.ID)},
			Description: p.MetaDescription,
			Author:      &feeds.Author{Name: p.Author},
			Created:     created,
		})
	}

	feed.Items = feedItems
	uc.logger.Info("RSS feed generated successfully", zap.Int("item_count", len(feed.Items)))
	return feed, nil
}
