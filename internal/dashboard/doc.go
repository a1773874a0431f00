// Package dashboard loads the news analytics payload and renders its views.
//
// # Pipeline
//
// Controller.Load performs one GET of /dashboard-data, then:
//
//   - a transport or decode failure is logged and nothing renders
//   - a payload with an error field is logged and nothing renders
//   - otherwise the sentiment, source, and entity views render independently
//
// Each view renders inside its own recover boundary; a fault in one is
// reported in Result.Views and the others still render.
//
// # Ordering
//
// The payload is read with gjson so mappings keep the backend's key order.
// Views never re-sort.
//
// # Renderers
//
// TextRenderer draws coloured terminal output. Report builds markdown and
// converts it to HTML with goldmark, adding the optional topic, volume, and
// usefulness series.
package dashboard
