// Package pipeline runs scrape passes against a source page and reconciles
// the results with a store.
//
// RunFull processes every final on the page. RefreshCurrentYear looks only for
// the final of the current calendar year and is the callable registered with
// schedulers. Both return a report instead of an error: fetch and persistence
// failures are logged and recorded, never propagated to the caller.
package pipeline
