package mapper

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	dongSymbol     = "₫"
	dateLayout     = "02/01/2006"
	dateTimeLayout = "15:04:05 02/01/2006"
)

var dong = currency.MustParseISO("VND")

// Formatter renders money and dates the way the Vietnamese admin UI shows them.
type Formatter struct {
	printer  *message.Printer
	location *time.Location
	scale    int
}

// NewFormatter formats dates in loc.
func NewFormatter(loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.UTC
	}
	scale, _ := currency.Cash.Rounding(dong)
	return &Formatter{
		printer:  message.NewPrinter(language.Vietnamese),
		location: loc,
		scale:    scale,
	}
}

// Currency renders an amount in dong, e.g. "1.250.000 ₫".
func (f *Formatter) Currency(amount decimal.Decimal) string {
	rounded := amount.Round(int32(f.scale))
	var digits string
	if f.scale == 0 {
		digits = f.printer.Sprint(number.Decimal(rounded.IntPart()))
	} else {
		value, _ := rounded.Float64()
		digits = f.printer.Sprint(number.Decimal(value, number.Scale(f.scale)))
	}
	return digits + " " + dongSymbol
}

// Date renders the calendar date, empty for the zero time.
func (f *Formatter) Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(f.location).Format(dateLayout)
}

// DateTime renders time of day and date, empty for the zero time.
func (f *Formatter) DateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(f.location).Format(dateTimeLayout)
}
