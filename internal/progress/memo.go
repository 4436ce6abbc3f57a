package progress

import (
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/coocood/freecache"
	"github.com/mitchellh/hashstructure/v2"
	log "github.com/sirupsen/logrus"
)

const megabyte = 1024 * 1024

// ReportStore keeps encoded reports between runs. *db.DB implements it.
type ReportStore interface {
	Report(hash string) ([]byte, bool, error)
	SaveReport(hash string, data []byte) error
}

// MemoStats counts where reports came from
type MemoStats struct {
	Hits       int64 // served from the in-process cache
	StoredHits int64 // served from the report store
	Misses     int64 // built from scratch
}

// Memo caches reports keyed by a content hash of their input. freecache is
// the in-process front; an optional ReportStore carries reports across
// processes. The input aggregates are never modified; a changed input
// simply hashes to a new key.
type Memo struct {
	cache *freecache.Cache
	store ReportStore

	hits, storedHits, misses atomic.Int64
}

// NewMemo creates a memo backed by a cache of the given size
func NewMemo(cacheSizeMegabytes int) *Memo {
	return &Memo{cache: freecache.NewCache(cacheSizeMegabytes * megabyte)}
}

// WithStore adds a persistent second level behind the in-process cache
func (m *Memo) WithStore(store ReportStore) *Memo {
	m.store = store
	return m
}

// Report returns the cached report for in, building and storing it on a
// miss. Cache failures fall back to a fresh build.
func (m *Memo) Report(in Input) Report {
	key, err := cacheKey(in)
	if err != nil {
		log.Warnf("progress memo: hash input: %s", err)
		return Build(in)
	}

	if cached, err := m.cache.Get(key); err == nil {
		if report, ok := decode(cached); ok {
			m.hits.Add(1)
			log.Tracef("progress memo: hit %s", key)
			return report
		}
	}

	if m.store != nil {
		data, ok, err := m.store.Report(string(key))
		if err != nil {
			log.Warnf("progress memo: read stored report: %s", err)
		}
		if ok {
			if report, ok := decode(data); ok {
				m.storedHits.Add(1)
				m.remember(key, data)
				log.Tracef("progress memo: stored hit %s", key)
				return report
			}
		}
	}

	m.misses.Add(1)
	report := Build(in)
	data, err := json.Marshal(report)
	if err != nil {
		log.Errorf("progress memo: marshal report: %s", err)
		return report
	}
	m.remember(key, data)
	if m.store != nil {
		if err := m.store.SaveReport(string(key), data); err != nil {
			log.Warnf("progress memo: save report: %s", err)
		}
	}
	return report
}

func (m *Memo) remember(key, data []byte) {
	if err := m.cache.Set(key, data, 0); err != nil {
		log.Debugf("progress memo: cache report: %s", err)
	}
}

func decode(data []byte) (Report, bool) {
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		log.Errorf("progress memo: unmarshal cached report: %s", err)
		return Report{}, false
	}
	return report, true
}

// Len returns the number of reports in the in-process cache
func (m *Memo) Len() int64 {
	return m.cache.EntryCount()
}

// Stats returns hit and miss counts since the memo was created
func (m *Memo) Stats() MemoStats {
	return MemoStats{
		Hits:       m.hits.Load(),
		StoredHits: m.storedHits.Load(),
		Misses:     m.misses.Load(),
	}
}

func cacheKey(in Input) ([]byte, error) {
	h, err := hashstructure.Hash(in, hashstructure.FormatV2, nil)
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("report::%x", h)), nil
}
