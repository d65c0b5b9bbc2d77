// Package feed loads the party feed one page at a time.
package feed

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/apex/log"

	"afiliado/api"
)

// DefaultPageSize is the number of posts per page the app has always used.
const DefaultPageSize = 10

// FetchFunc fetches one feed page for a party. client.Client.FetchFeedPage
// satisfies it.
type FetchFunc func(partyID int64, page, limit int) (*api.FeedPageResponse, error)

// Loader tracks the current page of a feed session. A load that fails leaves
// the previously fetched posts in place. Responses are sequence-numbered per
// party context so that a slow request finishing late cannot overwrite the
// result of a newer one.
type Loader struct {
	mu       sync.Mutex
	fetch    FetchFunc
	pageSize int

	partyID    int64
	page       int
	totalPages int
	posts      []api.Post
	seq        uint64 // latest request issued for the current context
	inflight   int
}

func NewLoader(fetch FetchFunc, pageSize int) *Loader {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Loader{
		fetch:      fetch,
		pageSize:   pageSize,
		page:       1,
		totalPages: 1,
	}
}

// SetParty switches the loader to a party context. A change resets the page
// counter to 1 and loads immediately; setting the same party again is a no-op.
func (l *Loader) SetParty(partyID int64) error {
	l.mu.Lock()
	if partyID == l.partyID {
		l.mu.Unlock()
		return nil
	}
	l.partyID = partyID
	l.page = 1
	l.totalPages = 1
	l.posts = nil
	l.mu.Unlock()

	return l.load()
}

// Reload fetches the current page again.
func (l *Loader) Reload() error {
	return l.load()
}

// Next advances one page, clamped to the last known page. At the boundary it
// does nothing.
func (l *Loader) Next() error {
	l.mu.Lock()
	if l.page >= l.totalPages {
		l.mu.Unlock()
		return nil
	}
	l.page++
	l.mu.Unlock()

	return l.load()
}

// Prev goes back one page, clamped to page 1.
func (l *Loader) Prev() error {
	l.mu.Lock()
	if l.page <= 1 {
		l.mu.Unlock()
		return nil
	}
	l.page--
	l.mu.Unlock()

	return l.load()
}

// NearBottom is the scroll signal of the list view; it advances the same way
// an explicit forward control does.
func (l *Loader) NearBottom() error {
	return l.Next()
}

func (l *Loader) load() error {
	l.mu.Lock()
	if l.partyID == 0 {
		l.mu.Unlock()
		return errors.New("no party context set")
	}
	l.seq++
	seq := l.seq
	partyID := l.partyID
	page := l.page
	size := l.pageSize
	l.inflight++
	l.mu.Unlock()

	payload, err := l.fetch(partyID, page, size)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.inflight--

	if seq != l.seq || partyID != l.partyID {
		log.Debugf("Discarding stale feed response for party %d page %d", partyID, page)
		return nil
	}
	if err != nil {
		log.Warnf("Feed page %d for party %d not applied: %v", page, partyID, err)
		return err
	}

	l.posts = payload.Posts
	l.totalPages = resolveTotalPages(payload.TotalPages, payload.Total, size)
	return nil
}

// Posts returns the currently displayed page of posts.
func (l *Loader) Posts() []api.Post {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.posts
}

func (l *Loader) Page() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page
}

func (l *Loader) TotalPages() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalPages
}

// Loading reports whether a fetch is outstanding.
func (l *Loader) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inflight > 0
}

// resolveTotalPages applies the page-count policy: an explicit numeric
// totalPages wins, otherwise a numeric total item count divided by the page
// size and rounded up, otherwise a single page. The policy decides whether
// the forward control is enabled, so the order of the fallbacks matters.
func resolveTotalPages(totalPages, total json.RawMessage, pageSize int) int {
	if n, ok := numericField(totalPages); ok {
		if pages := int(n); pages >= 1 {
			return pages
		}
		return 1
	}
	if n, ok := numericField(total); ok && n > 0 {
		return int(math.Ceil(n / float64(pageSize)))
	}
	return 1
}

// numericField reads a raw JSON value as a number. Quoted numbers count, the
// upstream API has sent both forms. Zero and absent values do not.
func numericField(raw json.RawMessage) (float64, bool) {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if s == "" || s == "null" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f == 0 {
		return 0, false
	}
	return f, true
}
