// events.go defines the event types for extension notifications.
//
// Separated from extension.go to isolate the event system. Events let
// extensions react to catalogue changes without modifying core logic.
//
// Design: Events are fire-and-forget notifications, not approval requests.
// Extensions observe after the fact and cannot veto an operation.

package extension

// EventType identifies the kind of event.
type EventType string

const (
	EventIndexCreate  EventType = "index:create"
	EventIndexDelete  EventType = "index:delete"
	EventIndexRestore EventType = "index:restore"
	EventIndexPrime   EventType = "index:prime"
	EventTagAdd       EventType = "tag:add"
	EventTagRemove    EventType = "tag:remove"
)

// Event is the base interface for all events.
type Event interface {
	EventType() EventType
	// EventIndex returns the full id of the affected index.
	EventIndex() string
}

// IndexCreateEvent is fired after an index is catalogued.
type IndexCreateEvent struct {
	ID     string
	Dim    int
	Tags   string // canonical tag text
	Author string
}

func (e IndexCreateEvent) EventType() EventType { return EventIndexCreate }
func (e IndexCreateEvent) EventIndex() string   { return e.ID }

// IndexDeleteEvent is fired after an index is soft-deleted.
type IndexDeleteEvent struct {
	ID string
}

func (e IndexDeleteEvent) EventType() EventType { return EventIndexDelete }
func (e IndexDeleteEvent) EventIndex() string   { return e.ID }

// IndexRestoreEvent is fired after an index is restored.
type IndexRestoreEvent struct {
	ID string
}

func (e IndexRestoreEvent) EventType() EventType { return EventIndexRestore }
func (e IndexRestoreEvent) EventIndex() string   { return e.ID }

// IndexPrimeEvent is fired after an index's prime level changes.
type IndexPrimeEvent struct {
	ID   string
	Plev int
}

func (e IndexPrimeEvent) EventType() EventType { return EventIndexPrime }
func (e IndexPrimeEvent) EventIndex() string   { return e.ID }

// TagEvent is fired after tags are added to or removed from an index.
type TagEvent struct {
	ID     string
	Tags   []string // the tags that changed
	Result string   // canonical tag text afterwards
	Author string
	Added  bool // true=added, false=removed
}

func (e TagEvent) EventType() EventType {
	if e.Added {
		return EventTagAdd
	}
	return EventTagRemove
}
func (e TagEvent) EventIndex() string { return e.ID }

// EventHandler is implemented by extensions that want to receive events.
type EventHandler interface {
	HandleEvent(ctx Context, e Event) error
}
