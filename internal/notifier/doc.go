// Package notifier announces newly found Wimbledon finals.
//
// Announcements are posted to Twitter or a Telegram chat, or printed in
// dry-run mode. The pipeline only calls a Notifier when the current-year final
// is new or differs from the stored record.
package notifier
