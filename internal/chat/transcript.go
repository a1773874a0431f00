// ABOUTME: Append-only chat transcript shared between widget states
// ABOUTME: Append copies so earlier Widget values keep their history

package chat

// Sender identifies who wrote a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one transcript entry.
type Message struct {
	Text   string
	Sender Sender
}

// Transcript is the ordered message history of one widget.
type Transcript []Message

// Append returns a new transcript with m at the end.
func (t Transcript) Append(m Message) Transcript {
	out := make(Transcript, len(t), len(t)+1)
	copy(out, t)
	return append(out, m)
}

// Last returns the final message and whether there is one.
func (t Transcript) Last() (Message, bool) {
	if len(t) == 0 {
		return Message{}, false
	}
	return t[len(t)-1], true
}
