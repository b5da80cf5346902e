package notifier

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"

	"github.com/pfrederiksen/wimbledon-finals/internal/final"
)

// Supported notifier drivers
const (
	DriverNone     = "none"
	DriverDryRun   = "dryrun"
	DriverTwitter  = "twitter"
	DriverTelegram = "telegram"
)

// Notifier defines the interface for announcing a final
type Notifier interface {
	// Notify posts an announcement for f
	Notify(ctx context.Context, f final.Final) error
}

// Config selects and configures a notifier
type Config struct {
	Driver         string
	Twitter        TwitterCredentials
	TelegramToken  string
	TelegramChatID int64
	Output         io.Writer // dry-run destination, stdout when nil
}

// New builds the configured notifier. The none driver returns a nil Notifier.
func New(cfg Config) (Notifier, error) {
	switch cfg.Driver {
	case "", DriverNone:
		return nil, nil
	case DriverDryRun:
		out := cfg.Output
		if out == nil {
			out = os.Stdout
		}
		return NewDryRunNotifier(out), nil
	case DriverTwitter:
		n, err := NewTwitterNotifier(cfg.Twitter)
		if err != nil {
			return nil, err
		}
		return n, nil
	case DriverTelegram:
		n, err := NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			return nil, err
		}
		return n, nil
	default:
		return nil, eris.Errorf("notifier: unknown driver %q", cfg.Driver)
	}
}

// FormatAnnouncement renders the message body shared by all channels
func FormatAnnouncement(f final.Final) string {
	msg := fmt.Sprintf("🎾 Wimbledon %d Men's Final\n\n", f.Year)
	msg += fmt.Sprintf("🏆 %s def. %s\n", f.Champion, f.RunnerUp)

	if f.Score != "" {
		msg += fmt.Sprintf("📋 %s", f.Score)
		if f.Sets > 0 {
			msg += fmt.Sprintf(" (%d sets", f.Sets)
			if f.Tiebreak {
				msg += ", tiebreak"
			}
			msg += ")"
		}
		msg += "\n"
	}

	msg += "\n#Wimbledon #Tennis"
	return msg
}
