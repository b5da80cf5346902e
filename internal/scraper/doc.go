// Package scraper provides HTTP fetching and HTML table extraction for the
// Wimbledon men's finals results page.
//
// The scraper fetches the public winners page with a browser-like User-Agent and
// extracts every data row of every table on the page as raw cell text. It does not
// interpret the cells; turning rows into records is the job of package final.
// Rows with fewer than four cells are skipped, as are the header rows of each table.
package scraper
