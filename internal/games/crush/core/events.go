package core

// Event is a grid lifecycle notification delivered to subscribers.
type Event interface {
	gridEvent()
}

// AddEvent is emitted when a token is placed on the grid.
// Spawn is the off-board point the token appeared from, when HasSpawn is set.
type AddEvent struct {
	Token    *Token
	ToRow    int
	ToCol    int
	Spawn    Position
	HasSpawn bool
}

func (AddEvent) gridEvent() {}

// MoveEvent is emitted when a token changes cell.
type MoveEvent struct {
	Token   *Token
	ToRow   int
	ToCol   int
	FromRow int
	FromCol int
}

func (MoveEvent) gridEvent() {}

// RemoveEvent is emitted when a token leaves the grid.
type RemoveEvent struct {
	Token   *Token
	FromRow int
	FromCol int
}

func (RemoveEvent) gridEvent() {}

// ScoreEvent is emitted whenever the score changes.
// Token is nil for a reset.
type ScoreEvent struct {
	Score int
	Token *Token
	Row   int
	Col   int
}

func (ScoreEvent) gridEvent() {}

// Listener receives grid events synchronously.
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

// Recorder buffers every event it receives.
type Recorder struct {
	events []Event
	stop   func()
}

// NewRecorder creates a recorder subscribed to g.
func NewRecorder(g *Grid) *Recorder {
	r := &Recorder{}
	r.stop = g.Subscribe(r.Record)
	return r
}

// Close unsubscribes the recorder from its grid.
func (r *Recorder) Close() {
	if r.stop != nil {
		r.stop()
		r.stop = nil
	}
}

// Record appends an event. It satisfies Listener.
func (r *Recorder) Record(e Event) {
	r.events = append(r.events, e)
}

// Events returns the buffered events in emission order.
func (r *Recorder) Events() []Event {
	return r.events
}

// Drain returns the buffered events and empties the buffer.
func (r *Recorder) Drain() []Event {
	out := r.events
	r.events = nil
	return out
}

// Len returns the number of buffered events.
func (r *Recorder) Len() int {
	return len(r.events)
}
