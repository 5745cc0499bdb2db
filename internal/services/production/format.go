package production

import (
	"strconv"
	"time"
)

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func money(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func optMoney(v *float64) string {
	if v == nil {
		return ""
	}
	return money(*v)
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}
