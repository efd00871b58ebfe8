package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/leapstack-labs/waterdash/internal/ui/resources"
)

// Element ids patched over SSE.
const (
	ContentID = "dashboard-content"
	ReloadID  = "dashboard-reload"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"

// htmlWriter writes markup and keeps the first error.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) rawf(format string, a ...any) {
	if h.err == nil {
		_, h.err = fmt.Fprintf(h.w, format, a...)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// Page renders the complete dashboard document.
func Page(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw("<!doctype html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
		hw.raw("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
		hw.raw("<title>")
		hw.text(data.Title)
		hw.raw("</title>\n")
		hw.rawf("<link rel=\"stylesheet\" href=%q>\n", resources.StaticPath(resources.Stylesheet))
		hw.rawf("<script type=\"module\" src=%q></script>\n", datastarScript)
		hw.raw("</head>\n<body data-init=\"@get('/updates')\">\n")
		if data.IsDev {
			hw.raw("<div data-init=\"@get('/reload', {retryMaxCount: 1000, retryInterval: 20, retryMaxWaitMs: 200})\"></div>\n")
		}
		hw.raw("<header><h1>")
		hw.text(data.Title)
		hw.raw("</h1>")
		if data.Report != nil && data.Report.Source != "" {
			hw.raw("<p>Source: ")
			hw.text(data.Report.Source)
			hw.raw("</p>")
		}
		hw.raw("</header>\n<main>\n")
		if hw.err != nil {
			return hw.err
		}
		if err := Content(data).Render(ctx, w); err != nil {
			return err
		}
		if err := ReloadTrigger(0).Render(ctx, w); err != nil {
			return err
		}
		hw.raw("\n</main>\n</body>\n</html>\n")
		return hw.err
	})
}

// Content renders the filters, metrics and charts. It is the element
// replaced when the selection changes.
func Content(data PageData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		rep := data.Report
		if rep == nil {
			return fmt.Errorf("dashboard content: no report")
		}

		// Signals carry the selection as requested. An empty list means every
		// value, including ones added by a later reload.
		signals, err := json.Marshal(FilterSignals{
			Years:  nonNil(data.Selection.Years),
			States: nonNil(data.Selection.States),
		})
		if err != nil {
			return err
		}

		hw := &htmlWriter{w: w}
		hw.rawf("<div id=%q data-signals=\"", ContentID)
		hw.text(string(signals))
		hw.raw("\">\n")

		hw.raw("<form class=\"filters\" data-on:submit=\"@post('/filter')\">\n")
		multiSelect(hw, "Year", "years", rep.Years, data.Selection.Years)
		multiSelect(hw, "State", "states", rep.States, data.Selection.States)
		hw.raw("</form>\n")

		if rep.Empty() {
			hw.raw("<div class=\"empty\">No records match the selection.</div>\n")
		}

		hw.raw("<section class=\"metrics\">\n")
		for _, m := range rep.Metrics() {
			hw.raw("<div class=\"metric\"><div class=\"label\">")
			hw.text(m.Label)
			hw.raw("</div><div class=\"value\">")
			hw.text(m.Value)
			hw.raw("</div></div>\n")
		}
		hw.raw("</section>\n")

		hw.raw("<section class=\"charts\">\n")
		for _, c := range Charts() {
			src := "/charts/" + c.Name + ".svg?v=" + fmt.Sprint(data.Generation)
			if data.Query != "" {
				src += "&" + data.Query
			}
			hw.raw("<figure class=\"chart\"><h2>")
			hw.text(c.Title)
			hw.raw("</h2><img src=\"")
			hw.text(src)
			hw.raw("\" alt=\"")
			hw.text(c.Title)
			hw.raw("\"></figure>\n")
		}
		hw.raw("</section>\n</div>")
		return hw.err
	})
}

// ReloadTrigger renders the element patched after a dataset reload. Its
// init expression changes with gen, so datastar runs it on every patch.
func ReloadTrigger(gen uint64) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		if gen == 0 {
			hw.rawf("<div id=%q hidden></div>", ReloadID)
			return hw.err
		}
		hw.rawf("<div id=%q hidden data-generation=\"%d\" data-init=\"@post('/filter', {requestCancellation: 'disabled'}) /* %d */\"></div>", ReloadID, gen, gen)
		return hw.err
	})
}

func multiSelect(hw *htmlWriter, label, signal string, options, selected []string) {
	chosen := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		chosen[s] = struct{}{}
	}

	hw.raw("<label>")
	hw.text(label)
	hw.rawf("<select multiple name=%q data-bind:%s data-on:change=\"@post('/filter')\">\n", signal, signal)
	for _, opt := range options {
		hw.raw("<option value=\"")
		hw.text(opt)
		hw.raw("\"")
		if _, ok := chosen[opt]; ok {
			hw.raw(" selected")
		}
		hw.raw(">")
		hw.text(opt)
		hw.raw("</option>\n")
	}
	hw.raw("</select></label>\n")
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// ChartTitle returns the display title of a chart name, or "" if unknown.
func ChartTitle(name string) string {
	for _, c := range Charts() {
		if c.Name == name {
			return c.Title
		}
	}
	return ""
}
