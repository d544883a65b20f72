package tracker

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

const (
	fieldSep     = "|"
	recordSep    = "\n"
	componentSep = ":"
)

// component is either a digest over at least one record or an explicit
// empty marker. Empty never collides with the digest of zero bytes.
type component struct {
	empty  string
	digest *xxhash.Digest
}

func newComponent(empty string) *component {
	return &component{empty: empty}
}

func (c *component) add(fields ...string) {
	if c.digest == nil {
		c.digest = xxhash.New()
	} else {
		c.digest.WriteString(recordSep)
	}
	for i, f := range fields {
		if i > 0 {
			c.digest.WriteString(fieldSep)
		}
		c.digest.WriteString(f)
	}
}

func (c *component) String() string {
	if c.digest == nil {
		return c.empty
	}
	return hexSum(c.digest.Sum64())
}

func hexSum(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}

func unixSeconds(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}

func boolDigit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// Fingerprint returns the ETag of a user's monthly view. It changes whenever
// an active habit of the scope or one of its entries is created, changed or
// removed, and whenever lastModified changes. Timestamps count with second
// precision.
func Fingerprint(ctx context.Context, repo Repository, userID string, year, month int, lastModified *time.Time) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("fingerprint: %w: user is required", ErrInvalidArgument)
	}

	snap, err := load(ctx, repo, userID, year, month)
	if err != nil {
		return "", fmt.Errorf("fingerprint %s %04d-%02d: %w", userID, year, month, err)
	}

	return fingerprint(userID, year, month, snap, lastModified), nil
}

func fingerprint(userID string, year, month int, snap snapshot, lastModified *time.Time) string {
	habits := newComponent("no-habits")
	for _, h := range snap.habits {
		habits.add(
			strconv.FormatInt(h.ID, 10),
			strconv.Quote(h.Name),
			strconv.Itoa(h.Position),
			string(h.CheckType),
			unixSeconds(h.UpdatedAt),
		)
	}

	entries := newComponent("no-entries")
	for _, e := range snap.entries {
		entries.add(
			strconv.FormatInt(e.ID, 10),
			strconv.FormatInt(e.HabitID, 10),
			strconv.Itoa(e.Day),
			boolDigit(e.Completed),
			unixSeconds(e.UpdatedAt),
		)
	}

	modified := "no-last-modified"
	if lastModified != nil {
		modified = unixSeconds(*lastModified)
	}

	scope := newComponent("")
	scope.add(strconv.Quote(userID), strconv.Itoa(year), strconv.Itoa(month))

	key := strings.Join([]string{scope.String(), habits.String(), entries.String(), modified}, componentSep)
	return hexSum(xxhash.Sum64String(key))
}
