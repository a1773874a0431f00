// Package chat implements the conversational widget.
//
// The widget is a value type driven by a table of pure handlers:
//
//	h := chat.NewHandlers(pageURL)
//	w, effects := h.Apply(w, chat.Send{})
//
// Handlers never perform I/O. They return effects (focus, scroll, issue a
// request, log a failure) for a runtime to carry out. Controller is the
// runtime used by the line-mode CLI; the terminal UI applies the same table
// inside its own update loop.
//
// At most one request is in flight per widget. Its settlement appends
// exactly one bot message and never changes visibility.
package chat
