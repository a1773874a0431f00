// ABOUTME: Chat widget state machine as a table of pure event handlers
// ABOUTME: Each handler maps (Widget, Event) to the next Widget plus effects to perform

package chat

import "strings"

// State is the externally visible widget state.
type State int

const (
	Closed State = iota
	OpenIdle
	OpenAwaiting
)

func (s State) String() string {
	switch s {
	case OpenIdle:
		return "open_idle"
	case OpenAwaiting:
		return "open_awaiting"
	default:
		return "closed"
	}
}

// Fallback bot messages.
const (
	NoResponseMessage  = "No response from server."
	UnreachableMessage = "Unable to reach the server."
)

// DefaultTopic fills the ask-about template when no topic is given.
const DefaultTopic = "this topic"

// AskAboutPrompt is the input prefilled by an ask-about action.
func AskAboutPrompt(topic string) string {
	if topic == "" {
		topic = DefaultTopic
	}
	return `I want to know more about "` + topic + `" My Question is: `
}

// Input is the text field. Cursor counts runes from the start.
type Input struct {
	Text    string
	Cursor  int
	Focused bool
}

// Widget is the full chat widget state. It is a value; handlers return a new one.
type Widget struct {
	Open       bool
	InFlight   bool
	Input      Input
	Transcript Transcript
}

// State derives the widget's state from its fields.
func (w Widget) State() State {
	switch {
	case !w.Open:
		return Closed
	case w.InFlight:
		return OpenAwaiting
	default:
		return OpenIdle
	}
}

// EventKind names an event type in the handler table.
type EventKind int

const (
	EventToggle EventKind = iota
	EventClose
	EventAskAbout
	EventEdit
	EventSend
	EventKey
	EventSettled
)

// Event is a user action or network settlement.
type Event interface {
	Kind() EventKind
}

type (
	// Toggle opens a closed widget and closes an open one.
	Toggle struct{}
	// Close closes the widget.
	Close struct{}
	// AskAbout opens the widget with a prefilled question about Topic.
	AskAbout struct{ Topic string }
	// Edit replaces the input text and puts the caret at its end.
	Edit struct{ Text string }
	// Send submits the current input.
	Send struct{}
	// Key is a key press in the input. Modified is true when shift or
	// another modifier was held.
	Key struct {
		Name     string
		Modified bool
	}
	// Settled is the outcome of the in-flight request.
	Settled struct {
		Reply Reply
		Err   error
	}
)

func (Toggle) Kind() EventKind   { return EventToggle }
func (Close) Kind() EventKind    { return EventClose }
func (AskAbout) Kind() EventKind { return EventAskAbout }
func (Edit) Kind() EventKind     { return EventEdit }
func (Send) Kind() EventKind     { return EventSend }
func (Key) Kind() EventKind      { return EventKey }
func (Settled) Kind() EventKind  { return EventSettled }

// Effect is a side effect requested by a handler.
type Effect interface {
	effect()
}

type (
	// FocusInput moves keyboard focus to the input.
	FocusInput struct{}
	// CaretToEnd moves the caret to the end of the input.
	CaretToEnd struct{}
	// ScrollToEnd scrolls the transcript to the latest message.
	ScrollToEnd struct{}
	// IssueRequest sends Query to the backend.
	IssueRequest struct{ Query Query }
	// LogFailure records a failed request in the diagnostic log.
	LogFailure struct{ Err error }
)

func (FocusInput) effect()   {}
func (CaretToEnd) effect()   {}
func (ScrollToEnd) effect()  {}
func (IssueRequest) effect() {}
func (LogFailure) effect()   {}

// Handler is a pure transition function.
type Handler func(w Widget, ev Event) (Widget, []Effect)

// Handlers routes each event kind to its handler.
type Handlers map[EventKind]Handler

// NewHandlers builds the handler table. pageURL is sent with every query.
func NewHandlers(pageURL string) Handlers {
	return Handlers{
		EventToggle:   onToggle,
		EventClose:    onClose,
		EventAskAbout: onAskAbout,
		EventEdit:     onEdit,
		EventSend:     sendHandler(pageURL),
		EventKey:      keyHandler(pageURL),
		EventSettled:  onSettled,
	}
}

// Apply runs the handler for ev. Unknown events leave w unchanged.
func (h Handlers) Apply(w Widget, ev Event) (Widget, []Effect) {
	fn, ok := h[ev.Kind()]
	if !ok {
		return w, nil
	}
	return fn(w, ev)
}

func onToggle(w Widget, _ Event) (Widget, []Effect) {
	if w.Open {
		w.Open = false
		w.Input.Focused = false
		return w, nil
	}
	w.Open = true
	w.Input.Focused = true
	return w, []Effect{FocusInput{}}
}

func onClose(w Widget, _ Event) (Widget, []Effect) {
	w.Open = false
	w.Input.Focused = false
	return w, nil
}

func onAskAbout(w Widget, ev Event) (Widget, []Effect) {
	text := AskAboutPrompt(ev.(AskAbout).Topic)
	w.Open = true
	w.Input = Input{Text: text, Cursor: runeLen(text), Focused: true}
	return w, []Effect{FocusInput{}, CaretToEnd{}}
}

func onEdit(w Widget, ev Event) (Widget, []Effect) {
	text := ev.(Edit).Text
	w.Input.Text = text
	w.Input.Cursor = runeLen(text)
	return w, nil
}

func sendHandler(pageURL string) Handler {
	return func(w Widget, _ Event) (Widget, []Effect) {
		return send(w, pageURL)
	}
}

func keyHandler(pageURL string) Handler {
	return func(w Widget, ev Event) (Widget, []Effect) {
		k := ev.(Key)
		if k.Name != "enter" || k.Modified {
			return w, nil
		}
		return send(w, pageURL)
	}
}

// send is shared by the send button and the enter key. It only acts in
// Open-Idle; a second send while a request is pending keeps the input.
func send(w Widget, pageURL string) (Widget, []Effect) {
	if w.State() != OpenIdle {
		return w, nil
	}
	text := strings.TrimSpace(w.Input.Text)
	if text == "" {
		return w, nil
	}

	w.Transcript = w.Transcript.Append(Message{Text: text, Sender: SenderUser})
	w.Input.Text = ""
	w.Input.Cursor = 0
	w.InFlight = true
	return w, []Effect{
		IssueRequest{Query: Query{Query: text, URL: pageURL}},
		ScrollToEnd{},
	}
}

func onSettled(w Widget, ev Event) (Widget, []Effect) {
	s := ev.(Settled)
	if !w.InFlight {
		return w, nil
	}
	w.InFlight = false

	if s.Err != nil {
		w.Transcript = w.Transcript.Append(Message{Text: UnreachableMessage, Sender: SenderBot})
		return w, []Effect{LogFailure{Err: s.Err}, ScrollToEnd{}}
	}

	text := s.Reply.Response
	if text == "" {
		text = NoResponseMessage
	}
	w.Transcript = w.Transcript.Append(Message{Text: text, Sender: SenderBot})
	return w, []Effect{ScrollToEnd{}}
}

func runeLen(s string) int {
	return len([]rune(s))
}
