// ABOUTME: Tests for the dashboard load pipeline against the fake backend
// ABOUTME: Verifies failure handling, per-view isolation, and the extras hook

package dashboard

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newspulse/newspulse-client/internal/backendtest"
)

type recordingRenderer struct {
	sentiment *SentimentView
	sources   *SourceView
	entities  *EntityView

	panicOn string
	failOn  string
}

func (r *recordingRenderer) check(name string) error {
	if r.panicOn == name {
		panic("boom in " + name)
	}
	if r.failOn == name {
		return errors.New("cannot draw " + name)
	}
	return nil
}

func (r *recordingRenderer) RenderSentiment(v SentimentView) error {
	if err := r.check(ViewSentiment); err != nil {
		return err
	}
	r.sentiment = &v
	return nil
}

func (r *recordingRenderer) RenderSources(v SourceView) error {
	if err := r.check(ViewSources); err != nil {
		return err
	}
	r.sources = &v
	return nil
}

func (r *recordingRenderer) RenderEntities(v EntityView) error {
	if err := r.check(ViewEntities); err != nil {
		return err
	}
	r.entities = &v
	return nil
}

func loadFrom(t *testing.T, body string, r Renderer) Result {
	t.Helper()
	srv := backendtest.New(t)
	srv.SetDashboard(body)
	return NewController(NewClient(srv.URL, nil), r, nil).Load(context.Background())
}

func TestLoad_SentimentOnly(t *testing.T) {
	r := &recordingRenderer{}
	res := loadFrom(t, `{"sentiment":{"positive":3,"negative":1}}`, r)

	require.True(t, res.Rendered())
	assert.Empty(t, res.Failed())

	require.NotNil(t, r.sentiment)
	assert.Len(t, r.sentiment.Slices, 2)
	require.NotNil(t, r.sources)
	assert.Empty(t, r.sources.Rows)
	assert.Zero(t, r.sources.Height)
	require.NotNil(t, r.entities)
	assert.Equal(t, NoEntitiesMsg, r.entities.Placeholder)
}

func TestLoad_ErrorFieldRendersNothing(t *testing.T) {
	r := &recordingRenderer{}
	res := loadFrom(t, `{"error":"No news available","sentiment":{"a":1}}`, r)

	assert.False(t, res.Rendered())
	assert.ErrorIs(t, res.Err, ErrPayload)
	assert.Nil(t, r.sentiment)
	assert.Nil(t, r.sources)
	assert.Nil(t, r.entities)
}

func TestLoad_ErrorFieldWithServerStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"No news available"}`))
	}))
	defer srv.Close()

	res := NewController(NewClient(srv.URL, nil), &recordingRenderer{}, nil).Load(context.Background())
	assert.ErrorIs(t, res.Err, ErrPayload)
}

func TestLoad_DecodeFailure(t *testing.T) {
	r := &recordingRenderer{}
	res := loadFrom(t, `<html>502 Bad Gateway</html>`, r)

	assert.ErrorIs(t, res.Err, ErrDecode)
	assert.Nil(t, r.sentiment)
}

func TestLoad_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	r := &recordingRenderer{}
	res := NewController(NewClient(srv.URL, nil), r, nil).Load(context.Background())
	assert.Error(t, res.Err)
	assert.Nil(t, r.entities)
}

func TestLoad_ViewIsolation(t *testing.T) {
	body := `{"sentiment":{"a":1},"sources":{"AP":2},"entities":{"ORG":{"Acme":3}}}`

	for _, view := range []string{ViewSentiment, ViewSources, ViewEntities} {
		t.Run("panic in "+view, func(t *testing.T) {
			r := &recordingRenderer{panicOn: view}
			res := loadFrom(t, body, r)

			failed := res.Failed()
			require.Len(t, failed, 1)
			assert.Equal(t, view, failed[0].Name)
			assert.ErrorIs(t, failed[0].Err, ErrViewPanic)

			assert.Equal(t, view != ViewSentiment, r.sentiment != nil)
			assert.Equal(t, view != ViewSources, r.sources != nil)
			assert.Equal(t, view != ViewEntities, r.entities != nil)
		})
	}

	r := &recordingRenderer{failOn: ViewSources}
	res := loadFrom(t, body, r)
	require.Len(t, res.Failed(), 1)
	assert.NotNil(t, r.entities)
}

func TestLoad_TextRenderer(t *testing.T) {
	var buf bytes.Buffer
	body := `{"sentiment":{"Positive":3,"Negative":1},"sources":{"Reuters":4},"entities":{"ORG":{"Acme":7}}}`

	res := loadFrom(t, body, NewTextRenderer(&buf, 10))
	require.True(t, res.Rendered())
	assert.Empty(t, res.Failed())

	out := buf.String()
	assert.Contains(t, out, "Positive")
	assert.Contains(t, out, "75.0%")
	assert.Contains(t, out, "Reuters")
	assert.Contains(t, out, "Top Organizations (Entities)")
	assert.Contains(t, out, "1. Acme (7)")
}

func TestLoad_ReportIncludesExtras(t *testing.T) {
	body := `{"sentiment":{"Positive":3},"entities":{"ORG":{}},"topics":{"market":4},"useful":{"useful":3,"not_useful":0}}`
	report := NewReport("News dashboard")

	res := loadFrom(t, body, report)
	require.True(t, res.Rendered())
	require.Len(t, res.Views, 4)
	assert.Equal(t, ViewExtras, res.Views[3].Name)

	var html bytes.Buffer
	require.NoError(t, report.WriteHTML(&html))
	out := html.String()

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>News dashboard</title>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "color:#f44336")
	assert.Contains(t, out, "No organizations found.")
	assert.Contains(t, out, "Top Keywords")
	assert.Contains(t, out, "not_useful")
	assert.NotContains(t, out, "Article Volume")
}
