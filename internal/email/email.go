package email

// Sender is any service that can deliver an email. Implementations send
// asynchronously; delivery failures are logged and never returned to the
// caller, so a task operation cannot fail because its email did.
type Sender interface {
	Send(to, subject, text, html string)
}
