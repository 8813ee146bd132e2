package event

import (
	"context"
	"fmt"
	"sort"
	"strconv"
)

// RepositoryStub keeps events in memory. It is used by service and handler tests.
type RepositoryStub struct {
	nextId int
	events map[string]Event
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{events: map[string]Event{}}
}

func (s *RepositoryStub) Create(ctx context.Context, event Event) (Event, error) {
	s.nextId++
	event.ID = strconv.Itoa(s.nextId)
	event.Version = 0
	s.events[event.ID] = event
	return event, nil
}

func (s *RepositoryStub) FindById(ctx context.Context, id string) (Event, error) {
	event, ok := s.events[id]
	if !ok {
		return Event{}, ErrEventNotFound
	}
	return event, nil
}

func (s *RepositoryStub) FindByField(ctx context.Context, field string, value string) ([]Event, error) {
	if _, ok := searchableFields[field]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	events := make([]Event, 0)
	for _, event := range s.sorted() {
		var fieldValue string
		switch field {
		case "eventName":
			fieldValue = event.EventName
		case "organizer":
			fieldValue = event.Organizer
		case "organization":
			fieldValue = event.Organization
		case "status":
			fieldValue = string(event.Status)
		}
		if fieldValue == value {
			events = append(events, event)
		}
	}
	return events, nil
}

func (s *RepositoryStub) FindAll(ctx context.Context) ([]Event, error) {
	return s.sorted(), nil
}

func (s *RepositoryStub) Update(ctx context.Context, event Event) (Event, error) {
	stored, ok := s.events[event.ID]
	if !ok {
		return Event{}, ErrEventNotFound
	}
	event.Version = stored.Version + 1
	event.CreatedAt = stored.CreatedAt
	s.events[event.ID] = event
	return event, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := s.events[id]; !ok {
		return false, nil
	}
	delete(s.events, id)
	return true, nil
}

func (s *RepositoryStub) Cleanup() {
	s.events = map[string]Event{}
}

func (s *RepositoryStub) sorted() []Event {
	events := make([]Event, 0, len(s.events))
	for _, event := range s.events {
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool {
		if !events[i].StartDate.Equal(events[j].StartDate) {
			return events[i].StartDate.Before(events[j].StartDate)
		}
		a, _ := strconv.Atoi(events[i].ID)
		b, _ := strconv.Atoi(events[j].ID)
		return a < b
	})
	return events
}
