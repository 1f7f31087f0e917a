package engine

import (
	"errors"

	"github.com/kode4food/caravan"
	"github.com/kode4food/caravan/topic"

	"github.com/flowcore/engine/pkg/api"
)

// Events is the run-event topic shared between executors and their
// subscribers. Publication is fire-and-forget: a slow subscriber never
// blocks a run
type Events struct {
	topic topic.Topic[api.RunEvent]
	prod  topic.Producer[api.RunEvent]
}

var ErrNoCapability = errors.New("no capability instance for node")

// NewEvents creates a run-event topic
func NewEvents() *Events {
	t := caravan.NewTopic[api.RunEvent]()
	return &Events{
		topic: t,
		prod:  t.NewProducer(),
	}
}

// Publish sends a run event to all current subscribers
func (e *Events) Publish(ev api.RunEvent) {
	e.prod.Send() <- ev
}

// NewConsumer subscribes to run events. The caller owns the consumer and
// must Close it when done
func (e *Events) NewConsumer() topic.Consumer[api.RunEvent] {
	return e.topic.NewConsumer()
}

// Close shuts the producer side of the topic down
func (e *Events) Close() {
	e.prod.Close()
}
