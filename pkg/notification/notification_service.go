package notification

import (
	"sync"
	"time"

	"EcoFeast-Backend/domain"
)

// VisibilityWindow is how long a dispatched notification stays visible
// before it is cleared automatically.
const VisibilityWindow = 5 * time.Second

type (
	// NotificationService holds at most one visible notification; a new
	// dispatch replaces the prior one. Timeout and explicit dismissal both
	// converge to the same cleared state.
	NotificationService interface {
		Dispatch(title string, body string)
		Current() *domain.Notification
		Dismiss()
	}

	notificationService struct {
		mu      sync.Mutex
		current *domain.Notification
		seq     uint64

		now      func() time.Time
		schedule bool
	}
)

func NewNotificationService() NotificationService {
	return &notificationService{now: time.Now, schedule: true}
}

// NewWithClock builds a dispatcher on an injected clock. Expiry is then
// checked lazily on read instead of by timer.
func NewWithClock(now func() time.Time) NotificationService {
	return &notificationService{now: now}
}

func (s *notificationService) Dispatch(title string, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	seq := s.seq
	s.current = &domain.Notification{
		Title:        title,
		Body:         body,
		DispatchedAt: s.now(),
	}

	if s.schedule {
		time.AfterFunc(VisibilityWindow, func() {
			s.expire(seq)
		})
	}
}

// expire clears the notification only if it is still the one the timer was
// armed for; a newer dispatch keeps its own full window.
func (s *notificationService) expire(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seq == seq {
		s.current = nil
	}
}

func (s *notificationService) Current() *domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	if s.now().Sub(s.current.DispatchedAt) >= VisibilityWindow {
		s.current = nil
		return nil
	}
	cp := *s.current
	return &cp
}

func (s *notificationService) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}
