package handler

import (
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jpassword/jpassword-go/internal/generator"
	"github.com/jpassword/jpassword-go/internal/notify"
	"github.com/jpassword/jpassword-go/internal/widget"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>JPassword Generator</title>
<style>
body{background:#0f172a;color:#f1f5f9;font-family:sans-serif;display:flex;flex-direction:column;align-items:center;justify-content:center;min-height:100vh;margin:0}
form{background:#475569;padding:.5rem 1rem;border-radius:.375rem;max-width:32rem;width:100%}
.password{color:#84cc16;font-size:1.25rem;text-decoration:underline;font-style:italic}
.toast{background:#fff;color:#111;padding:.5rem 1rem;border-radius:.5rem;margin-top:1rem}
button{width:100%;background:#84cc16;color:#fff;font-weight:bold;padding:.5rem;border:0;border-radius:.25rem}
.copy{width:auto;background:none;padding:0 .5rem}
</style>
</head>
<body>
<h1>JPassword Generator</h1>
<form method="post" action="/">
{{- if .State.HasPassword}}
<p>
<span class="password" id="password">{{.State.Password}}</span>
<input type="hidden" name="password" value="{{.State.Password}}">
<button class="copy" name="action" value="copy" id="copy">{{if .State.Copied}}&#x2705;{{else}}&#x1F4CB;{{end}}</button>
</p>
{{- end}}
<label for="length">Password length - <em>{{"{"}}{{.State.Length}}{{"}"}}</em></label>
<input id="length" name="length" type="range" min="{{.Min}}" max="{{.Max}}" value="{{.State.Length}}"
 oninput="this.previousElementSibling.lastElementChild.textContent='{'+this.value+'}'">
{{- range .Classes}}
<div><input type="checkbox" id="{{.Name}}" name="{{.Name}}" value="on"{{if .Checked}} checked{{end}}>
<label for="{{.Name}}">{{.Label}}</label></div>
{{- end}}
<p><button name="action" value="generate">Generate</button></p>
</form>
{{- range .Notifications}}
<div class="toast">{{icon .Level}} {{.Message}}</div>
{{- end}}
{{- if .Copy}}
<script>
navigator.clipboard.writeText({{.Clipboard}});
setTimeout(function(){document.getElementById("copy").innerHTML="&#x1F4CB;"}, {{.CopiedResetMS}});
</script>
{{- end}}
</body>
</html>
`

type classView struct {
	Name    string
	Label   string
	Checked bool
}

type widgetView struct {
	State         widget.State
	Min, Max      int
	Classes       []classView
	Notifications []widget.Notification
	Copy          bool
	Clipboard     string
	CopiedResetMS int64
}

// WidgetHandler serves the generator form. All form state travels with the
// request; nothing is kept on the server between requests.
type WidgetHandler struct {
	reducer widget.Reducer
	tmpl    *template.Template
	logger  *slog.Logger
}

// NewWidgetHandler creates a new WidgetHandler.
func NewWidgetHandler(reducer widget.Reducer, logger *slog.Logger) *WidgetHandler {
	reducer.Source = generator.Locked(reducer.Source)
	tmpl := template.Must(template.New("widget").Funcs(template.FuncMap{
		"icon": notify.Icon,
	}).Parse(pageTemplate))

	return &WidgetHandler{reducer: reducer, tmpl: tmpl, logger: logger}
}

// HandlePage handles GET / requests.
func (h *WidgetHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	h.render(w, widget.DefaultState(), nil)
}

// HandleAction handles POST / requests from the form.
func (h *WidgetHandler) HandleAction(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	state := h.stateFromForm(r)

	var ev widget.Event
	switch r.PostForm.Get("action") {
	case "copy":
		ev = widget.Copy{}
	case "generate", "":
		ev = widget.Generate{}
	default:
		http.Error(w, "unknown action", http.StatusBadRequest)
		return
	}

	next, effects := h.reducer.Reduce(state, ev)
	h.render(w, next, effects)
}

// stateFromForm replays the submitted controls onto a fresh state so the
// same clamping and toggling rules apply as in the interactive widget.
func (h *WidgetHandler) stateFromForm(r *http.Request) widget.State {
	s := widget.DefaultState()
	s.Password = r.PostForm.Get("password")

	if n, err := strconv.Atoi(r.PostForm.Get("length")); err == nil {
		s, _ = h.reducer.Reduce(s, widget.SetLength{N: n})
	}
	for _, c := range generator.AllClasses {
		s, _ = h.reducer.Reduce(s, widget.ToggleClass{Class: c, On: r.PostForm.Get(c.String()) == "on"})
	}
	return s
}

func (h *WidgetHandler) render(w http.ResponseWriter, s widget.State, effects []widget.Effect) {
	view := widgetView{
		State: s,
		Min:   widget.MinLength,
		Max:   widget.MaxLength,
	}
	for _, c := range generator.AllClasses {
		view.Classes = append(view.Classes, classView{Name: c.String(), Label: c.Label(), Checked: s.Classes.Has(c)})
	}

	for _, eff := range effects {
		switch e := eff.(type) {
		case widget.Notify:
			view.Notifications = append(view.Notifications, e.Notification)
		case widget.WriteClipboard:
			view.Copy = true
			view.Clipboard = e.Text
			view.Notifications = append(view.Notifications, e.Success)
		case widget.ResetCopied:
			view.CopiedResetMS = e.After.Milliseconds()
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.Execute(w, view); err != nil {
		h.logger.Error("rendering widget", "error", err)
	}
}
