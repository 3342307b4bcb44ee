package source

import (
	"context"
	"fmt"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/quote"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/shreyssinha/angela/internal/series"
)

// Yahoo serves history from the Yahoo Finance daily chart API and
// quotes from the regular market price. The finance-go client does not
// take a context, so cancellation is only honored between calls.
type Yahoo struct {
	log zerolog.Logger
}

// NewYahoo builds a Yahoo Finance source.
func NewYahoo(log zerolog.Logger) *Yahoo {
	return &Yahoo{log: log}
}

// History fetches daily bars for [start, end].
func (y *Yahoo) History(ctx context.Context, symbol string, start, end time.Time) ([]series.Bar, error) {
	if err := ctx.Err(); err != nil {
		return nil, fetchErr(symbol, OpHistory, err)
	}

	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}
	iter := chart.Get(params)

	var bars []series.Bar
	for iter.Next() {
		b := iter.Bar()
		bars = append(bars, series.Bar{
			Date:   time.Unix(int64(b.Timestamp), 0).UTC(),
			Open:   decToFloat(b.Open),
			High:   decToFloat(b.High),
			Low:    decToFloat(b.Low),
			Close:  decToFloat(b.Close),
			Volume: float64(b.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fetchErr(symbol, OpHistory, err)
	}
	if len(bars) == 0 {
		return nil, fetchErr(symbol, OpHistory, fmt.Errorf("no daily bars returned"))
	}
	y.log.Debug().Str("symbol", symbol).Int("bars", len(bars)).Msg("fetched yahoo history")
	return bars, nil
}

// Quote fetches the current regular market price.
func (y *Yahoo) Quote(ctx context.Context, symbol string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fetchErr(symbol, OpQuote, err)
	}
	q, err := quote.Get(symbol)
	if err != nil {
		return 0, fetchErr(symbol, OpQuote, err)
	}
	if q == nil {
		return 0, fetchErr(symbol, OpQuote, fmt.Errorf("empty quote"))
	}
	return q.RegularMarketPrice, nil
}

func decToFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
