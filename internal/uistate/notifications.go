package uistate

import "time"

// Kind is the severity of a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Action is an optional button on a notification.
type Action struct {
	Label   string
	Handler func()
}

// Notification is a toast message. A zero Duration means it stays until
// dismissed.
type Notification struct {
	ID        string
	Kind      Kind
	Title     string
	Message   string
	Duration  time.Duration
	Action    *Action
	CreatedAt time.Time
}

// Persistent reports whether the notification never expires on its own.
func (n Notification) Persistent() bool {
	return n.Duration == 0
}

type notifyOptions struct {
	message     string
	duration    time.Duration
	hasDuration bool
	action      *Action
}

// NotifyOption configures AddNotification.
type NotifyOption func(*notifyOptions)

// WithMessage sets the body text.
func WithMessage(msg string) NotifyOption {
	return func(o *notifyOptions) {
		o.message = msg
	}
}

// WithDuration sets the auto-dismiss delay. Zero makes the notification
// persistent.
func WithDuration(d time.Duration) NotifyOption {
	return func(o *notifyOptions) {
		o.duration = max(d, 0)
		o.hasDuration = true
	}
}

// WithAction attaches an action button.
func WithAction(label string, handler func()) NotifyOption {
	return func(o *notifyOptions) {
		o.action = &Action{Label: label, Handler: handler}
	}
}

// AddNotification appends a notification and returns its id. Unless its
// duration is zero it is removed automatically when the duration elapses.
func (s *State) AddNotification(kind Kind, title string, opts ...NotifyOption) string {
	var o notifyOptions
	for _, opt := range opts {
		opt(&o)
	}
	if !o.hasDuration {
		o.duration = s.defaultDuration
	}

	n := Notification{
		ID:        s.newID(),
		Kind:      kind,
		Title:     title,
		Message:   o.message,
		Duration:  o.duration,
		Action:    o.action,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.notifications = append(s.notifications, n)
	if n.Duration > 0 {
		id := n.ID
		s.timers[id] = time.AfterFunc(n.Duration, func() {
			s.expire(id)
		})
	}
	s.mu.Unlock()

	s.logger.Debug("notification added", "id", n.ID, "kind", kind, "title", title)
	s.changed()
	return n.ID
}

func (s *State) NotifySuccess(title string, opts ...NotifyOption) string {
	return s.AddNotification(KindSuccess, title, opts...)
}

func (s *State) NotifyError(title string, opts ...NotifyOption) string {
	return s.AddNotification(KindError, title, opts...)
}

func (s *State) NotifyWarning(title string, opts ...NotifyOption) string {
	return s.AddNotification(KindWarning, title, opts...)
}

func (s *State) NotifyInfo(title string, opts ...NotifyOption) string {
	return s.AddNotification(KindInfo, title, opts...)
}

// RemoveNotification dismisses the notification with the given id and stops
// its timer. Unknown ids are ignored.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	removed := s.removeLocked(id)
	s.mu.Unlock()
	if removed {
		s.changed()
	}
}

// expire is the timer callback. The notification may already be gone.
func (s *State) expire(id string) {
	s.mu.Lock()
	delete(s.timers, id)
	removed := s.removeLocked(id)
	s.mu.Unlock()
	if removed {
		s.logger.Debug("notification expired", "id", id)
		s.changed()
	}
}

// ClearAllNotifications dismisses every notification and stops every timer.
func (s *State) ClearAllNotifications() {
	s.mu.Lock()
	s.stopTimersLocked()
	s.notifications = nil
	s.mu.Unlock()
	s.changed()
}

// Notifications returns the queue, oldest first.
func (s *State) Notifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// RunAction invokes the action of the notification with the given id and
// dismisses it. It reports whether an action ran.
func (s *State) RunAction(id string) bool {
	s.mu.Lock()
	var action *Action
	for _, n := range s.notifications {
		if n.ID == id {
			action = n.Action
			break
		}
	}
	if action == nil || action.Handler == nil {
		s.mu.Unlock()
		return false
	}
	s.removeLocked(id)
	s.mu.Unlock()

	s.changed()
	action.Handler()
	return true
}

func (s *State) removeLocked(id string) bool {
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i:i], s.notifications[i+1:]...)
			return true
		}
	}
	return false
}

func (s *State) stopTimersLocked() {
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
