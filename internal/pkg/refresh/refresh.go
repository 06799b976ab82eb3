// Package refresh tells open views to refetch after a mutation. A view
// subscribes to the topics it renders; services invalidate the topics a
// mutation touched. Views always refetch from the backend, nothing is
// patched locally.
package refresh

import (
	"log/slog"

	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/sse"
)

// Topic is an entity class a view can depend on.
type Topic string

const (
	TopicEmployees            Topic = "employees"
	TopicAttendanceByDate     Topic = "attendance-by-date"
	TopicAttendanceByEmployee Topic = "attendance-by-employee"
	TopicDashboard            Topic = "dashboard"
)

// EventName is the SSE event name carried by invalidations.
const EventName = "refresh"

// AllTopics is every topic, for views that show a bit of everything.
var AllTopics = []Topic{TopicEmployees, TopicAttendanceByDate, TopicAttendanceByEmployee, TopicDashboard}

// Invalidation marks a topic stale. Key narrows it (a date, an employee
// id); empty means every key.
type Invalidation struct {
	Topic Topic  `json:"topic"`
	Key   string `json:"key,omitempty"`
}

// Publisher is what services depend on to announce mutations.
type Publisher interface {
	Invalidate(invs ...Invalidation)
}

// Notifier publishes invalidations through an SSE hub, one hub key per topic.
type Notifier struct {
	hub *sse.Hub
}

func NewNotifier(hub *sse.Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) Invalidate(invs ...Invalidation) {
	for _, inv := range invs {
		slog.Debug("refresh invalidated", "topic", inv.Topic, "key", inv.Key)
		n.hub.Publish(string(inv.Topic), sse.Event{Event: EventName, Data: inv})
	}
}

// Subscribe registers interest in topics. Extra hub keys (readiness,
// per-session channels) can ride on the same subscription.
func (n *Notifier) Subscribe(topics []Topic, extraKeys ...string) (chan sse.Event, func()) {
	keys := make([]string, 0, len(topics)+len(extraKeys))
	for _, t := range topics {
		keys = append(keys, string(t))
	}
	keys = append(keys, extraKeys...)
	return n.hub.Subscribe(keys...)
}

// ParseTopics keeps the known topics from names, dropping the rest. An empty
// result means every topic.
func ParseTopics(names []string) []Topic {
	var topics []Topic
	for _, name := range names {
		for _, t := range AllTopics {
			if string(t) == name {
				topics = append(topics, t)
			}
		}
	}
	if len(topics) == 0 {
		return AllTopics
	}
	return topics
}

// AttendanceChanged lists what goes stale after attendance for date is
// written for employeeIDs.
func AttendanceChanged(date string, employeeIDs ...string) []Invalidation {
	invs := []Invalidation{
		{Topic: TopicAttendanceByDate, Key: date},
		{Topic: TopicDashboard},
	}
	for _, id := range employeeIDs {
		invs = append(invs, Invalidation{Topic: TopicAttendanceByEmployee, Key: id})
	}
	return invs
}

// EmployeesChanged lists what goes stale after the directory changes.
// Deletes cascade to attendance on the backend, so attendance views refresh
// too.
func EmployeesChanged() []Invalidation {
	return []Invalidation{
		{Topic: TopicEmployees},
		{Topic: TopicDashboard},
		{Topic: TopicAttendanceByDate},
		{Topic: TopicAttendanceByEmployee},
	}
}
