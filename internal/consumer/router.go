package consumer

import (
	"context"
	"log"
)

// Router fans decoded messages out to per-event-type handlers. Events without
// a registered handler are logged and committed so old consumers never wedge
// on new event types.
type Router struct {
	routes map[string]Handler
	logger *log.Logger
}

// NewRouter constructs an empty Router.
func NewRouter(logger *log.Logger) *Router {
	if logger == nil {
		logger = log.New(log.Writer(), "[router] ", log.LstdFlags)
	}
	return &Router{routes: make(map[string]Handler), logger: logger}
}

// Register binds a handler to an event type.
func (r *Router) Register(eventType string, handler Handler) {
	r.routes[eventType] = handler
}

// Handle dispatches the message to the handler registered for its event type.
func (r *Router) Handle(ctx context.Context, msg Message) error {
	handler, ok := r.routes[msg.EventType]
	if !ok {
		r.logger.Printf("no handler for event_type=%s, skipping", msg.EventType)
		return nil
	}
	return handler.Handle(ctx, msg)
}
