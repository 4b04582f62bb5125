package utils

import (
	"fmt"
	"time"
)

const (
	DateLayout       = "2006-01-02"
	BRDateTimeLayout = "02/01/2006 15:04:05"
)

// ParseFilterDate aceita RFC3339 ou YYYY-MM-DD. Para datas sem horário,
// endOfDay devolve o último instante do dia, tornando o limite inclusivo.
func ParseFilterDate(value string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}

	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("data inválida %q: use YYYY-MM-DD ou RFC3339", value)
	}

	if endOfDay {
		date = date.Add(24*time.Hour - time.Nanosecond)
	}

	return date, nil
}

func FormatBRDateTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(BRDateTimeLayout)
}
