package kafka

// NewEventPublisherWithWriter exposes the writer seam to tests.
var NewEventPublisherWithWriter = newEventPublisher

type MessageWriter = messageWriter
