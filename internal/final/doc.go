// Package final provides the Final record type and the pure functions that turn
// scraped table rows into Finals.
//
// A Final is one year's Wimbledon men's singles championship match. The set count
// and tiebreak flag are always derived from the raw score text by New, so a Final
// can never carry statistics that disagree with its score. Rows that do not carry
// a four-digit year or both player names are dropped by Build rather than reported
// as errors, since the source markup is not under our control.
package final
