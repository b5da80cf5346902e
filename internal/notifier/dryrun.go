package notifier

import (
	"context"
	"fmt"
	"io"

	"github.com/pfrederiksen/wimbledon-finals/internal/final"
)

// DryRunNotifier prints what would be posted without actually posting
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRunNotifier creates a new dry-run notifier writing to out
func NewDryRunNotifier(out io.Writer) *DryRunNotifier {
	return &DryRunNotifier{out: out}
}

// Notify prints the announcement that would be posted
func (n *DryRunNotifier) Notify(_ context.Context, f final.Final) error {
	tweet := formatTweet(f)
	fmt.Fprintf(n.out, "--- Announcement %d ---\n", f.Year)
	fmt.Fprintln(n.out, tweet)
	fmt.Fprintf(n.out, "\n(Length: %d characters)\n\n", len([]rune(tweet)))
	return nil
}
