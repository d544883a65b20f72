package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/writewithwrabit/tracker/tracker"
)

func quoteETag(tag string) string {
	return `"` + tag + `"`
}

func setValidators(w http.ResponseWriter, v tracker.Validators) {
	w.Header().Set("ETag", quoteETag(v.ETag))
	w.Header().Set("Last-Modified", v.LastModified.UTC().Format(http.TimeFormat))
}

// isFresh reports whether the client's cached copy is current. Every
// conditional header sent must agree; without any the copy is stale. An
// If-Modified-Since that does not parse counts as absent.
func isFresh(r *http.Request, v tracker.Validators) bool {
	noneMatch := r.Header.Get("If-None-Match")

	var since *time.Time
	if t, err := http.ParseTime(r.Header.Get("If-Modified-Since")); err == nil {
		since = &t
	}

	if noneMatch == "" && since == nil {
		return false
	}

	if noneMatch != "" && !etagMatches(noneMatch, v.ETag) {
		return false
	}

	if since != nil && v.LastModified.After(*since) {
		return false
	}

	return true
}

// etagMatches applies the weak comparison of If-None-Match.
func etagMatches(header, tag string) bool {
	want := quoteETag(tag)
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}
		if strings.TrimPrefix(candidate, "W/") == want {
			return true
		}
	}
	return false
}
