package risk

import "math"

// Social sentiment thresholds.
const (
	viralEngagement    = 10_000
	influencerLikes    = 100
	lowEngagementLikes = 2
	botMentionRatio    = 0.7
	botMentionFloor    = 10
)

// Mention is one social post referencing a token, reduced to its
// engagement counts.
type Mention struct {
	Likes    int
	Retweets int
}

// SocialSentiment summarizes recent mentions of a token. SentimentScore is
// a 0-100 engagement proxy; IsSuspiciousActivity marks bot-like patterns
// where most mentions draw almost no engagement.
type SocialSentiment struct {
	MentionCount         int  `json:"mention_count"`
	TotalEngagement      int  `json:"total_engagement"`
	AvgLikes             int  `json:"avg_likes"`
	AvgRetweets          int  `json:"avg_retweets"`
	SentimentScore       int  `json:"sentiment_score"`
	InfluencerMentions   int  `json:"influencer_mentions"`
	IsViral              bool `json:"is_viral"`
	IsSuspiciousActivity bool `json:"is_suspicious_activity"`
}

// Sentiment derives the social metrics from a set of recent mentions. An
// empty sample yields the zero summary.
func Sentiment(mentions []Mention) SocialSentiment {
	if len(mentions) == 0 {
		return SocialSentiment{}
	}

	var totalLikes, totalRetweets, lowEngagement, influencers int
	for _, m := range mentions {
		totalLikes += m.Likes
		totalRetweets += m.Retweets
		if m.Likes < lowEngagementLikes {
			lowEngagement++
		}
		if m.Likes > influencerLikes {
			influencers++
		}
	}

	n := len(mentions)
	engagement := totalLikes + totalRetweets
	score := int(math.Min(100, math.Round(float64(engagement)/float64(n)*2)))

	return SocialSentiment{
		MentionCount:         n,
		TotalEngagement:      engagement,
		AvgLikes:             int(math.Round(float64(totalLikes) / float64(n))),
		AvgRetweets:          int(math.Round(float64(totalRetweets) / float64(n))),
		SentimentScore:       score,
		InfluencerMentions:   influencers,
		IsViral:              engagement > viralEngagement,
		IsSuspiciousActivity: float64(lowEngagement) > float64(n)*botMentionRatio && n > botMentionFloor,
	}
}
