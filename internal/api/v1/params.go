package v1

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adamseriwarp/custom-reports/internal/model"
)

const dateParam = "2006-01-02"

// window parses ?start=YYYY-MM-DD&end=YYYY-MM-DD into a leg filter.
// Missing bounds default to the configured trailing window ending today;
// the end bound covers its whole day.
func (h *Handler) window(c *gin.Context) (model.LegFilter, error) {
	return h.windowFrom(c.Query)
}

// windowFrom is the window parser over any parameter lookup, shared by
// the query-string handlers and the export request body.
func (h *Handler) windowFrom(get func(string) string) (model.LegFilter, error) {
	var f model.LegFilter

	now := time.Now().UTC()
	end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, time.UTC)
	start := end.AddDate(0, 0, -h.cfg.DefaultWindowDays)

	if v := get("start"); v != "" {
		t, err := time.Parse(dateParam, v)
		if err != nil {
			return f, fmt.Errorf("bad start date %q", v)
		}
		start = t
	}
	if v := get("end"); v != "" {
		t, err := time.Parse(dateParam, v)
		if err != nil {
			return f, fmt.Errorf("bad end date %q", v)
		}
		end = time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, time.UTC)
	}
	if end.Before(start) {
		return f, fmt.Errorf("end %s before start %s", end.Format(dateParam), start.Format(dateParam))
	}

	f.Start = start
	f.End = end
	return f, nil
}

// yearParam parses ?year=YYYY, defaulting to the current year.
func yearParam(c *gin.Context) (int, error) {
	return yearFrom(c.Query)
}

func yearFrom(get func(string) string) (int, error) {
	v := get("year")
	if v == "" {
		return time.Now().UTC().Year(), nil
	}
	year, err := strconv.Atoi(v)
	if err != nil || year < 2000 || year > 2100 {
		return 0, fmt.Errorf("bad year %q", v)
	}
	return year, nil
}

// badRequest reports a parameter error.
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// dataError reports a data-access failure as a bad gateway; the report
// service only fails when the database does.
func dataError(c *gin.Context, err error) {
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}

// cached runs compute through the TTL cache under the given key.
func cached[T any](h *Handler, key string, compute func() (T, error)) (T, error) {
	if v, ok := h.cache.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}
	v, err := compute()
	if err != nil {
		var zero T
		return zero, err
	}
	h.cache.Put(key, v)
	return v, nil
}
