package scraper

import (
	"bytes"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"

	"github.com/pfrederiksen/wimbledon-finals/internal/final"
)

// minCells is the number of leading cells a data row must carry
const minCells = 4

// Extract parses HTML and returns the first four cells of every data row.
// Every table is scanned and its first row is treated as the header.
func Extract(r io.Reader) ([]final.RowCells, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, eris.Wrap(err, "scraper: parse HTML")
	}

	rows := make([]final.RowCells, 0)

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		table.Find("tr").Each(func(i int, tr *goquery.Selection) {
			if i == 0 {
				return
			}

			cells := tr.Find("td")
			if cells.Length() < minCells {
				return
			}

			rows = append(rows, final.RowCells{
				YearText: cellText(cells.Eq(0)),
				Champion: cellText(cells.Eq(1)),
				RunnerUp: cellText(cells.Eq(2)),
				Score:    cellText(cells.Eq(3)),
			})
		})
	})

	return rows, nil
}

// ExtractBytes is Extract over an in-memory document
func ExtractBytes(markup []byte) ([]final.RowCells, error) {
	return Extract(bytes.NewReader(markup))
}

// cellText returns the cell's text trimmed, with inner whitespace runs collapsed
func cellText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}
