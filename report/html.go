// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"io"

	"github.com/google/safehtml/template"

	"github.com/orderbook/ratiostudy/sweep"
)

var htmlTemplate = template.Must(template.New("summary").Funcs(template.FuncMap{
	"depth": DepthLabel,
	"f2":    func(x float64) string { return fmt.Sprintf("%.2f", x) },
}).Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
.ratiostudy { border-collapse: collapse; }
.ratiostudy th { text-align: left; border-bottom: 1px solid #ccc; }
.ratiostudy td { text-align: right; padding: 0em 1em; }
.ratiostudy td:first-child { text-align: left; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{- range .Summary}}
<h2>{{.Op}}</h2>
<table class='ratiostudy'>
<tr><th>depth<th>best ratio<th>M ops/s
{{range .Best -}}
<tr><td>{{depth .Depth}}<td>{{f2 .Ratio}}<td>{{f2 .Throughput}}
{{end -}}
</table>
{{- end}}
</body>
</html>
`))

// WriteHTML writes a standalone HTML page with the best ratio per
// depth for each operation of st.
func WriteHTML(w io.Writer, title string, st *sweep.Study) error {
	return htmlTemplate.Execute(w, struct {
		Title   string
		Summary []sweep.OpSummary
	}{title, st.Summary})
}
