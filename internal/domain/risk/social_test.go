package risk

import "testing"

func TestSentiment_EmptySample(t *testing.T) {
	s := Sentiment(nil)
	if s.MentionCount != 0 || s.SentimentScore != 0 || s.IsViral || s.IsSuspiciousActivity {
		t.Errorf("expected zero summary, got %+v", s)
	}
}

func TestSentiment_Engagement(t *testing.T) {
	mentions := []Mention{
		{Likes: 10, Retweets: 5},
		{Likes: 30, Retweets: 15},
	}
	s := Sentiment(mentions)

	if s.MentionCount != 2 {
		t.Errorf("expected 2 mentions, got %d", s.MentionCount)
	}
	if s.TotalEngagement != 60 {
		t.Errorf("expected engagement 60, got %d", s.TotalEngagement)
	}
	if s.AvgLikes != 20 {
		t.Errorf("expected avg likes 20, got %d", s.AvgLikes)
	}
	// avg engagement 30 doubled.
	if s.SentimentScore != 60 {
		t.Errorf("expected score 60, got %d", s.SentimentScore)
	}
}

func TestSentiment_ScoreCappedAt100(t *testing.T) {
	s := Sentiment([]Mention{{Likes: 500, Retweets: 500}})
	if s.SentimentScore != 100 {
		t.Errorf("expected capped score 100, got %d", s.SentimentScore)
	}
}

func TestSentiment_BotPattern(t *testing.T) {
	// 11 of 12 mentions with almost no engagement.
	mentions := make([]Mention, 12)
	mentions[0] = Mention{Likes: 50, Retweets: 10}
	s := Sentiment(mentions)

	if !s.IsSuspiciousActivity {
		t.Error("expected bot-like pattern to be flagged")
	}
}

func TestSentiment_SmallSampleNeverBots(t *testing.T) {
	// All low engagement but only 5 mentions.
	s := Sentiment(make([]Mention, 5))
	if s.IsSuspiciousActivity {
		t.Error("small samples must not trip the bot check")
	}
}

func TestSentiment_ViralAndInfluencers(t *testing.T) {
	s := Sentiment([]Mention{
		{Likes: 8000, Retweets: 4000},
		{Likes: 150, Retweets: 20},
	})
	if !s.IsViral {
		t.Error("12170 engagement should be viral")
	}
	if s.InfluencerMentions != 2 {
		t.Errorf("expected 2 influencer mentions, got %d", s.InfluencerMentions)
	}
}
