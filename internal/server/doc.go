// Package server provides HTTP routing, middleware, and the webhook receiver for board activity notifications.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] method patterns internally, so a request with the wrong
// method is answered with 405.
//
// # Middleware
//
//   - [RequestID] : tags each request with an X-Request-ID
//   - [Logging] : logs method, path, status, and duration
//   - [RateLimit] : answers 429 once the token bucket is empty
//   - [TokenAuth] : requires the shared webhook token in a header or query parameter
//
// # Webhook Receiver
//
// [WebhookHandler] accepts Zoho Connect notifications, logs card movements between sections, and stores every
// event through an [EventStore]. [New] assembles the receiver from configuration.
package server
