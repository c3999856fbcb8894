package dataset

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"os"
	"sort"
	"sync"

	"narrative-observer/src/helpers"
	"narrative-observer/src/interfaces"
	"narrative-observer/src/logger"
	"narrative-observer/src/models"
)

// Store holds the in-memory dataset behind a RWMutex. Queries take a
// read lock; only Load swaps the data.
type Store struct {
	Config *models.MConfig
	Logger *logger.Logger

	network interfaces.INetworkManager

	mu      sync.RWMutex
	data    models.MDatasetFile
	version string
}

// -----------------------------------------------------------------------------

func NewStore(cfg *models.MConfig, nm interfaces.INetworkManager, log *logger.Logger) *Store {
	return &Store{
		Config:  cfg,
		Logger:  log,
		network: nm,
	}
}

// -----------------------------------------------------------------------------

// Load reads the dataset from the configured path or URL, validates it,
// and swaps it in atomically. A failed load keeps the previous dataset.
func (s *Store) Load() error {
	raw, err := s.fetch()
	if err != nil {
		return &helpers.ObserverError{Message: "failed to read dataset", Cause: err}
	}

	var data models.MDatasetFile
	if err := json.Unmarshal(raw, &data); err != nil {
		return &helpers.ValidationError{ObserverError: helpers.ObserverError{
			Message: "failed to parse dataset", Cause: err}}
	}

	if err := validate(&data); err != nil {
		return err
	}

	h := fnv.New64a()
	h.Write(raw)
	version := fmt.Sprintf("%x", h.Sum64())

	s.mu.Lock()
	s.data = data
	s.version = version
	s.mu.Unlock()

	s.Logger.Info("Loaded dataset %s: %d instruments, %d events, %d topics, %d posts",
		version, len(data.Instruments), len(data.Events), len(data.Topics), len(data.Posts))

	return nil
}

// -----------------------------------------------------------------------------

func (s *Store) fetch() ([]byte, error) {
	if s.Config.Dataset.URL != "" && s.network != nil {
		return s.network.Get(s.Config.Dataset.URL, nil)
	}
	return os.ReadFile(s.Config.Dataset.Path)
}

// -----------------------------------------------------------------------------

// validate rejects datasets with inverted windows or dangling event ids.
// Tolerates dangling post references (they score as zero engagement).
func validate(data *models.MDatasetFile) error {
	for _, ev := range data.Events {
		if err := ev.Validate(); err != nil {
			return &helpers.ValidationError{ObserverError: helpers.ObserverError{
				Message: fmt.Sprintf("event %s", ev.ID), Cause: err}}
		}
	}
	for _, t := range data.Topics {
		if err := t.Validate(); err != nil {
			return &helpers.ValidationError{ObserverError: helpers.ObserverError{
				Message: fmt.Sprintf("topic %s", t.ID), Cause: err}}
		}
	}
	return nil
}

// -----------------------------------------------------------------------------

func (s *Store) Instruments() []models.MInstrument {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.MInstrument, len(s.data.Instruments))
	copy(out, s.data.Instruments)
	return out
}

// -----------------------------------------------------------------------------

func (s *Store) hasTicker(ticker string) bool {
	for _, inst := range s.data.Instruments {
		if inst.Ticker == ticker {
			return true
		}
	}
	return false
}

// -----------------------------------------------------------------------------

// PriceSeries returns the ticker's price points inside [start, end],
// ascending by timestamp. A zero bound leaves that side open.
func (s *Store) PriceSeries(ticker string, start, end int64) ([]models.MPricePoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.hasTicker(ticker) {
		return nil, helpers.NewNotFound("ticker", ticker)
	}

	series := make([]models.MPricePoint, 0)
	for _, p := range s.data.PriceSeries {
		if p.Ticker != ticker {
			continue
		}
		if start != 0 && p.Timestamp < start {
			continue
		}
		if end != 0 && p.Timestamp > end {
			continue
		}
		series = append(series, p)
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Timestamp < series[j].Timestamp
	})

	return series, nil
}

// -----------------------------------------------------------------------------

// Events returns the ticker's events, newest window first.
func (s *Store) Events(ticker string) ([]models.MEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.hasTicker(ticker) {
		return nil, helpers.NewNotFound("ticker", ticker)
	}

	events := make([]models.MEvent, 0)
	for _, ev := range s.data.Events {
		if ev.Ticker == ticker {
			events = append(events, ev)
		}
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].Start > events[j].Start
	})

	return events, nil
}

// -----------------------------------------------------------------------------

func (s *Store) EventByID(ticker, eventID string) (models.MEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ev := range s.data.Events {
		if ev.Ticker == ticker && ev.ID == eventID {
			return ev, nil
		}
	}
	return models.MEvent{}, helpers.NewNotFound("event", eventID)
}

// -----------------------------------------------------------------------------

// TopicsForEvent returns the topics linked to an event, largest share
// first. Topics link to events by id prefix and matching ticker.
func (s *Store) TopicsForEvent(ticker, eventID string) []models.MTopic {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.topicsForEventLocked(ticker, eventID)
}

func (s *Store) topicsForEventLocked(ticker, eventID string) []models.MTopic {
	topics := make([]models.MTopic, 0)
	for _, t := range s.data.Topics {
		if t.Ticker == ticker && len(t.ID) >= len(eventID) && t.ID[:len(eventID)] == eventID {
			topics = append(topics, t)
		}
	}

	sort.SliceStable(topics, func(i, j int) bool {
		return topics[i].ShareOfPosts > topics[j].ShareOfPosts
	})

	return topics
}

// -----------------------------------------------------------------------------

// PostsForEvent returns the union of posts referenced by an event's
// topics, newest first.
func (s *Store) PostsForEvent(ticker, eventID string) []models.MPost {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[string]bool)
	for _, t := range s.topicsForEventLocked(ticker, eventID) {
		for _, pid := range t.AllPostIDs() {
			wanted[pid] = true
		}
	}

	posts := make([]models.MPost, 0, len(wanted))
	for _, p := range s.data.Posts {
		if wanted[p.ID] {
			posts = append(posts, p)
		}
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].Timestamp > posts[j].Timestamp
	})

	return posts
}

// -----------------------------------------------------------------------------

func (s *Store) AllPosts() []models.MPost {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.MPost, len(s.data.Posts))
	copy(out, s.data.Posts)
	return out
}

// -----------------------------------------------------------------------------

func (s *Store) Version() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}
