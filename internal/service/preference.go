package service

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/nzoschke/healthmate/internal/repository"
)

const PreferenceDarkTheme = "theme.dark"

// PreferenceService reads and writes the theme preference and fans changes
// out to subscribers. A subscriber that falls behind skips intermediate
// values but always receives the latest one.
type PreferenceService struct {
	repo repository.PreferenceRepository

	mu     sync.Mutex
	subs   map[int]chan bool
	nextID int
}

func NewPreferenceService(repo repository.PreferenceRepository) *PreferenceService {
	return &PreferenceService{
		repo: repo,
		subs: make(map[int]chan bool),
	}
}

// DarkTheme returns the stored value, false when never set.
func (s *PreferenceService) DarkTheme() (bool, error) {
	value, err := s.repo.Get(PreferenceDarkTheme)
	if errors.Is(err, repository.ErrPreferenceNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get theme preference: %w", err)
	}

	dark, err := strconv.ParseBool(value)
	if err != nil {
		return false, nil
	}
	return dark, nil
}

// SetDarkTheme stores the value and publishes it. Writes and publishes
// happen under one lock so subscribers see changes in store order.
func (s *PreferenceService) SetDarkTheme(dark bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.repo.Set(PreferenceDarkTheme, strconv.FormatBool(dark))
	if err != nil {
		return fmt.Errorf("failed to save theme preference: %w", err)
	}

	for _, ch := range s.subs {
		publishLatest(ch, dark)
	}
	return nil
}

// publishLatest replaces any unread value in the 1-slot channel with dark.
// Only s.mu holders send, so the slot is free after the drain.
func publishLatest(ch chan bool, dark bool) {
	select {
	case <-ch:
	default:
	}
	ch <- dark
}

// Subscribe returns a channel of theme changes and a func that ends the subscription.
func (s *PreferenceService) Subscribe() (<-chan bool, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan bool, 1)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}
