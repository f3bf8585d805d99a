package server

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/matzehuels/ellipsegen/pkg/buildinfo"
)

type pageData struct {
	Palettes []string
	Default  string
	Version  string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Palettes: s.runner.Registry.Names(),
		Default:  s.runner.Registry.Default().Name,
		Version:  buildinfo.Version,
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Ellipse Generator</title>
<style>
  body { margin: 0; min-height: 100vh; display: flex; align-items: center; justify-content: center; background: #f9fafb; font-family: system-ui, sans-serif; }
  .card { width: 100%; max-width: 42rem; margin: 1rem; padding: 1.5rem; background: #fff; border: 1px solid #e5e7eb; border-radius: .75rem; box-shadow: 0 1px 2px rgba(0,0,0,.05); }
  h1 { margin: 0 0 .5rem; text-align: center; font-size: 1.875rem; color: #111827; }
  p.sub { margin: 0 0 1.5rem; text-align: center; color: #4b5563; }
  #preview { display: flex; justify-content: center; padding: 1rem; border: 1px solid #e5e7eb; border-radius: .5rem; min-height: 200px; }
  .controls { display: flex; gap: .75rem; justify-content: center; margin-top: 1.5rem; flex-wrap: wrap; }
  button, select { flex: 1; max-width: 12rem; padding: .5rem 1rem; border-radius: .375rem; border: 1px solid #d1d5db; background: #fff; font-size: .875rem; cursor: pointer; }
  button.primary { background: #111827; color: #fff; border-color: #111827; }
  button:disabled { opacity: .5; cursor: default; }
  footer { margin-top: 1rem; text-align: center; font-size: .75rem; color: #9ca3af; }
</style>
</head>
<body>
<div class="card">
  <h1>Ellipse Generator</h1>
  <p class="sub">Generate beautiful gradient ellipse patterns</p>
  <div id="preview"></div>
  <div class="controls">
    <select id="palette" aria-label="Palette">
      {{- range .Palettes}}
      <option value="{{.}}"{{if eq . $.Default}} selected{{end}}>{{.}}</option>
      {{- end}}
    </select>
    <button id="regenerate" class="primary">Regenerate</button>
    <button id="svg" disabled>Download SVG</button>
    <button id="png" disabled>Download PNG</button>
  </div>
  <footer>ellipsegen {{.Version}}</footer>
</div>
<script>
(function () {
  var current = null;
  var preview = document.getElementById("preview");
  var palette = document.getElementById("palette");
  var buttons = [document.getElementById("svg"), document.getElementById("png")];

  function regenerate() {
    var q = new URLSearchParams({ palette: palette.value });
    fetch("/api/artworks?" + q.toString(), { method: "POST" })
      .then(function (res) {
        return res.json().then(function (body) {
          if (!res.ok) { throw new Error(body.error || res.statusText); }
          return body;
        });
      })
      .then(function (art) {
        current = art;
        preview.innerHTML = art.svg;
        buttons.forEach(function (b) { b.disabled = false; });
      })
      .catch(function (err) { preview.textContent = err.message; });
  }

  function download(ext) {
    if (!current) { return; }
    window.location.href = "/api/artworks/" + current.id + "." + ext;
  }

  document.getElementById("regenerate").addEventListener("click", regenerate);
  palette.addEventListener("change", regenerate);
  buttons[0].addEventListener("click", function () { download("svg"); });
  buttons[1].addEventListener("click", function () { download("png"); });
  regenerate();
})();
</script>
</body>
</html>
`))
