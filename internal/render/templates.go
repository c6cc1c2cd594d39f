package render

// pageTemplate is the html/template for the documentation page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en" data-theme="{{.Theme}}">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{if .Page}}{{.Page.Title}} | {{end}}{{.Active.Title}}</title>
</head>
<body class="{{.Viewport}}{{if .ReducedMotion}} reduced-motion{{end}}{{if .SmoothTabs}} smooth-tabs{{end}}"
      data-frame-timeout-ms="{{.FrameTimeoutMs}}">
  <header class="top-bar">
    <button type="button" class="theme-toggle" data-action="theme" aria-label="Toggle theme">{{.ThemeIcon}}</button>
    <div class="tab-list" role="tablist">
      {{- range $i, $t := .Tabs}}
      <button type="button" role="tab" class="tab-button{{if $t.Active}} active{{end}}"
              data-tab="{{$t.Key}}" aria-selected="{{$t.Active}}" aria-controls="{{$t.ContentID}}"
              tabindex="{{if $t.Focused}}0{{else}}-1{{end}}">{{$t.Badge}}</button>
      {{- end}}
    </div>
  </header>
  <section class="topic-info">
    <h1>{{.Active.Title}}</h1>
    <p>{{.Active.Description}}</p>
    <span class="badge">{{.Active.Badge}}</span>
  </section>
  <main>
    {{- range .Tabs}}
    <div id="{{.ContentID}}" class="tab-content{{if .Active}} active{{end}}" role="tabpanel">
      <div class="iframe-wrapper">
        {{- if .Frame.Failed}}
        {{$.FrameError}}
        {{- else}}
        {{- if not .Frame.Loaded}}
        <div class="iframe-loading">Loading documentation...</div>
        {{- end}}
        <iframe src="{{.FrameSrc}}" title="{{.Title}}"{{if $.LazyFrames}} loading="lazy"{{end}}></iframe>
        {{- end}}
      </div>
    </div>
    {{- end}}
    {{- if .Page}}
    <article class="page-content{{if .Page.Failed}} failed{{end}}" data-section="{{.Page.Ref}}">
      {{.Content}}
    </article>
    {{- end}}
  </main>
  <aside class="sidebar">
    <nav id="{{.NavID}}">{{.Nav}}</nav>
  </aside>
</body>
</html>`
