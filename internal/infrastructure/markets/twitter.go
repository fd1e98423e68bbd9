package markets

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/zotalabs/tokenwatch/internal/config"
	"github.com/zotalabs/tokenwatch/internal/domain/risk"
)

// Tweet is one post from the Twitter/X recent search endpoint.
type Tweet struct {
	ID            string `json:"id"`
	Text          string `json:"text"`
	CreatedAt     string `json:"created_at"`
	AuthorID      string `json:"author_id"`
	PublicMetrics struct {
		RetweetCount    int `json:"retweet_count"`
		ReplyCount      int `json:"reply_count"`
		LikeCount       int `json:"like_count"`
		ImpressionCount int `json:"impression_count"`
	} `json:"public_metrics"`
}

// TwitterClient queries the Twitter/X v2 search API. Without a bearer
// token every lookup returns an empty result set.
type TwitterClient struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
	bearer  string
	logger  *zap.Logger
}

// NewTwitterClient creates a new Twitter client
func NewTwitterClient(cfg config.ProvidersConfig, logger *zap.Logger) *TwitterClient {
	client := newRestClient(cfg.TwitterBaseURL, cfg.RequestTimeout)
	if cfg.TwitterBearerToken != "" {
		client.SetAuthToken(cfg.TwitterBearerToken)
	}
	return &TwitterClient{
		http:    client,
		breaker: newBreaker("twitter", logger),
		bearer:  cfg.TwitterBearerToken,
		logger:  logger,
	}
}

// SearchMentions returns recent original-language posts mentioning a token
// by cashtag or name.
func (c *TwitterClient) SearchMentions(ctx context.Context, symbol, name string) ([]Tweet, error) {
	if c.bearer == "" {
		return nil, nil
	}

	query := fmt.Sprintf("($%s OR %q) -is:retweet lang:en", symbol, name)

	result, err := c.breaker.Execute(func() (interface{}, error) {
		var body struct {
			Data []Tweet `json:"data"`
		}
		resp, err := c.http.R().SetContext(ctx).
			SetQueryParams(map[string]string{
				"query":        query,
				"max_results":  "20",
				"tweet.fields": "created_at,public_metrics,author_id",
			}).
			SetResult(&body).
			Get("/tweets/search/recent")
		if err != nil {
			return nil, fmt.Errorf("twitter search: %w", err)
		}
		if err := checkStatus(resp); err != nil {
			return nil, err
		}
		return body.Data, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]Tweet), nil
}

// Mentions reduces tweets to the engagement counts the sentiment heuristic
// reads.
func Mentions(tweets []Tweet) []risk.Mention {
	mentions := make([]risk.Mention, len(tweets))
	for i, t := range tweets {
		mentions[i] = risk.Mention{
			Likes:    t.PublicMetrics.LikeCount,
			Retweets: t.PublicMetrics.RetweetCount,
		}
	}
	return mentions
}
