package dash

import (
	"html/template"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Arial, sans-serif; margin: 20px; background: #fafafa; color: #333; }
.error { padding: 10px; margin-bottom: 20px; border: 1px solid #f44336; background: #ffebee; }
.panels { display: flex; flex-wrap: wrap; gap: 20px; }
.panel { background: #fff; border: 1px solid #ddd; border-radius: 4px; padding: 10px; }
.panel h2 { font-size: 1.1rem; margin: 0 0 10px; }
.bold { font-weight: bold; }
footer { margin-top: 20px; font-size: 0.8rem; color: #777; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Error}}<div class="error">{{.Error}}</div>{{end}}
<div class="panels">
{{range .Panels}}<section class="panel" id="{{.Name}}">
<h2>{{.Title}}</h2>
{{.Markup}}
</section>
{{end}}</div>
{{if not .Updated.IsZero}}<footer>updated {{.Updated.Format "2006-01-02 15:04:05"}}</footer>{{end}}
</body>
</html>
`

var page = template.Must(template.New("dashboard").Parse(pageTemplate))
