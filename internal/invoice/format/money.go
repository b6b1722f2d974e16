package format

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// Rupiah renders a whole-rupiah amount with Indonesian digit grouping,
// e.g. 10000000 -> "Rp 10.000.000". No decimal places.
func Rupiah(amount int64) string {
	return idPrinter.Sprintf("Rp %d", amount)
}

// Date renders a calendar date the way the admin panel shows them:
// day/month/year without zero padding, e.g. "7/8/2025".
func Date(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}
