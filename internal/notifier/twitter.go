package notifier

import (
	"context"
	"net/http"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"
	"github.com/rotisserie/eris"

	"github.com/pfrederiksen/wimbledon-finals/internal/final"
)

const tweetLimit = 280

// TwitterCredentials holds the OAuth1 user-context keys
type TwitterCredentials struct {
	APIKey       string
	APISecret    string
	AccessToken  string
	AccessSecret string
}

func (c TwitterCredentials) complete() bool {
	return c.APIKey != "" && c.APISecret != "" && c.AccessToken != "" && c.AccessSecret != ""
}

// statusUpdater is satisfied by *twitter.StatusService
type statusUpdater interface {
	Update(status string, params *twitter.StatusUpdateParams) (*twitter.Tweet, *http.Response, error)
}

// TwitterNotifier posts announcements to Twitter
type TwitterNotifier struct {
	statuses statusUpdater
}

// NewTwitterNotifier creates a new Twitter notifier. All four credentials are required.
func NewTwitterNotifier(creds TwitterCredentials) (*TwitterNotifier, error) {
	if !creds.complete() {
		return nil, eris.New("notifier: missing required Twitter credentials")
	}

	config := oauth1.NewConfig(creds.APIKey, creds.APISecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessSecret)
	httpClient := config.Client(oauth1.NoContext, token)
	client := twitter.NewClient(httpClient)

	return &TwitterNotifier{statuses: client.Statuses}, nil
}

// Notify posts a tweet for f
func (n *TwitterNotifier) Notify(ctx context.Context, f final.Final) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, _, err := n.statuses.Update(formatTweet(f), nil); err != nil {
		return eris.Wrapf(err, "notifier: post tweet for %d", f.Year)
	}
	return nil
}

// formatTweet formats a final as a tweet within Twitter's character limit
func formatTweet(f final.Final) string {
	tweet := []rune(FormatAnnouncement(f))
	if len(tweet) > tweetLimit {
		// Truncate and add ellipsis
		return string(tweet[:tweetLimit-3]) + "..."
	}
	return string(tweet)
}
