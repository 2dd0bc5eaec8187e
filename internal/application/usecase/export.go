package usecase

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// exportCap bounds every CSV export; the UI offers no pagination for
// downloads, so the query is capped instead.
const exportCap = 10000

// idPrinter formats grouped numbers the Indonesian way (1.500.000).
var idPrinter = message.NewPrinter(language.Indonesian)

// csvQuote wraps a text field in double quotes, escaping embedded quotes.
// Text columns are always quoted; numeric and date columns never are.
func csvQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// csvRupiah renders a money amount as a locale-grouped integer.
func csvRupiah(d decimal.Decimal) string {
	return idPrinter.Sprintf("%d", d.IntPart())
}

// csvDate renders a timestamp as an ISO date.
func csvDate(t time.Time) string {
	return t.Format("2006-01-02")
}
