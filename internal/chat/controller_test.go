// ABOUTME: Tests for the chat controller runtime against the fake backend
// ABOUTME: Verifies one bot message per send, failure fallbacks, and view effects

package chat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newspulse/newspulse-client/internal/backendtest"
)

type recordingView struct {
	mu      sync.Mutex
	renders int
	calls   []string
}

func (v *recordingView) Render(Widget) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.renders++
}

func (v *recordingView) FocusInput()  { v.add("focus") }
func (v *recordingView) CaretToEnd()  { v.add("caret") }
func (v *recordingView) ScrollToEnd() { v.add("scroll") }

func (v *recordingView) add(call string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls = append(v.calls, call)
}

func (v *recordingView) Calls() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.calls...)
}

func newTestController(t *testing.T, baseURL string) (*Controller, *recordingView) {
	t.Helper()
	view := &recordingView{}
	c := NewController(context.Background(), NewHandlers(testPageURL), NewClient(baseURL, nil), view, nil)
	return c, view
}

func TestController_HelloRoundTrip(t *testing.T) {
	srv := backendtest.New(t)
	srv.SetChat(func(query, url string) (int, string) {
		return http.StatusOK, `{"response":"hi there"}`
	})
	c, view := newTestController(t, srv.URL)

	c.Dispatch(Toggle{})
	c.Dispatch(Edit{Text: "hello"})
	w := c.Dispatch(Send{})
	assert.Equal(t, OpenAwaiting, w.State())

	c.Wait()
	w = c.Widget()
	assert.Equal(t, OpenIdle, w.State())
	assert.Equal(t, Transcript{
		{Text: "hello", Sender: SenderUser},
		{Text: "hi there", Sender: SenderBot},
	}, w.Transcript)
	assert.Equal(t, []string{"focus", "scroll", "scroll"}, view.Calls())
}

func TestController_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c, _ := newTestController(t, srv.URL)

	c.Dispatch(Toggle{})
	c.Dispatch(Edit{Text: "hello"})
	c.Dispatch(Send{})
	c.Wait()

	w := c.Widget()
	require.Len(t, w.Transcript, 2)
	assert.Equal(t, Message{Text: UnreachableMessage, Sender: SenderBot}, w.Transcript[1])
	assert.Equal(t, OpenIdle, w.State())
}

func TestController_EmptyInputSendsNothing(t *testing.T) {
	srv := backendtest.New(t)
	c, _ := newTestController(t, srv.URL)

	c.Dispatch(Toggle{})
	c.Dispatch(Edit{Text: "   "})
	c.Dispatch(Send{})
	c.Wait()

	assert.Empty(t, c.Widget().Transcript)
	assert.Zero(t, srv.ChatRequests())
}

func TestController_AskAboutThenSend(t *testing.T) {
	srv := backendtest.New(t)
	c, view := newTestController(t, srv.URL)

	w := c.Dispatch(AskAbout{Topic: "Acme"})
	assert.Equal(t, OpenIdle, w.State())
	assert.Equal(t, []string{"focus", "caret"}, view.Calls())
	assert.Zero(t, srv.ChatRequests())

	c.Dispatch(Edit{Text: w.Input.Text + "who are they?"})
	c.Dispatch(Key{Name: "enter"})
	c.Wait()

	w = c.Widget()
	require.Len(t, w.Transcript, 2)
	assert.Equal(t, `I want to know more about "Acme" My Question is: who are they?`, w.Transcript[0].Text)
	assert.Equal(t, `echo: I want to know more about "Acme" My Question is: who are they?`, w.Transcript[1].Text)
}

func TestController_SingleInFlight(t *testing.T) {
	srv := backendtest.New(t)
	srv.Hold()
	c, _ := newTestController(t, srv.URL)

	c.Dispatch(Toggle{})
	c.Dispatch(Edit{Text: "first"})
	c.Dispatch(Send{})
	c.Dispatch(Edit{Text: "second"})
	w := c.Dispatch(Send{})
	assert.Equal(t, "second", w.Input.Text, "pending send keeps the input")

	// Closing while awaiting does not cancel
	c.Dispatch(Close{})
	assert.Eventually(t, func() bool { return srv.ChatRequests() == 1 }, time.Second, 10*time.Millisecond)
	srv.Release()
	c.Wait()

	w = c.Widget()
	assert.Equal(t, Closed, w.State())
	require.Len(t, w.Transcript, 2)
	assert.Equal(t, "echo: first", w.Transcript[1].Text)
	assert.Equal(t, 1, srv.ChatRequests())
}
