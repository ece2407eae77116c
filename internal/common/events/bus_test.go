package events

import (
	"testing"

	"college-tracker/internal/common/logger"

	"github.com/stretchr/testify/assert"
)

func TestBus_DeliversInOrder(t *testing.T) {
	bus := NewBus(logger.NewTestLogger(t))

	var got []string
	bus.Subscribe(TopicOpenCollege, func(e Event) { got = append(got, "first:"+e.Name()) })
	bus.Subscribe(TopicOpenCollege, func(e Event) { got = append(got, "second:"+e.Name()) })
	bus.Subscribe("other", func(e Event) { got = append(got, "other") })

	n := bus.Publish(OpenCollege("Stanford University"))

	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"first:Stanford University", "second:Stanford University"}, got)
}

func TestBus_RecoversFromPanics(t *testing.T) {
	bus := NewBus(logger.NewNoOpLogger())

	called := false
	bus.Subscribe(TopicOpenCollege, func(Event) { panic("view not mounted") })
	bus.Subscribe(TopicOpenCollege, func(Event) { called = true })

	var n int
	assert.NotPanics(t, func() { n = bus.Publish(OpenCollege("MIT")) })
	assert.Equal(t, 1, n)
	assert.True(t, called)
}

func TestBus_NoSubscribers(t *testing.T) {
	bus := NewBus(nil)
	assert.Equal(t, 0, bus.Publish(Event{Topic: "nobody"}))
	assert.Equal(t, "", Event{}.Name())
}
