package typeahead

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

const resultsTemplate = `{{if .Results}}{{range $i, $r := .Results}}<a href="{{$r.Href}}" class="search__result{{if eq $i $.Active}} search__result--active{{end}}"><strong>{{$r.Name}}</strong></a>{{end}}{{else}}<div class="search__result">There were no results for <strong>{{.Query}}</strong></div>{{end}}`

type renderer struct {
	tmpl   *template.Template
	policy *bluemonday.Policy
}

func newRenderer() (*renderer, error) {
	tmpl, err := template.New("results").Parse(resultsTemplate)
	if err != nil {
		return nil, fmt.Errorf("typeahead: parse template: %w", err)
	}

	policy := bluemonday.NewPolicy()
	policy.AllowElements("div", "strong")
	policy.AllowAttrs("href").OnElements("a")
	policy.AllowAttrs("class").Matching(regexp.MustCompile(`^search__result( search__result--active)?$`)).OnElements("a", "div")
	policy.AllowRelativeURLs(true)
	policy.RequireParseableURLs(true)

	return &renderer{tmpl: tmpl, policy: policy}, nil
}

func (r *renderer) render(query string, results []Result, active int) (string, error) {
	var buf bytes.Buffer
	err := r.tmpl.Execute(&buf, struct {
		Query   string
		Results []Result
		Active  int
	}{Query: query, Results: results, Active: active})
	if err != nil {
		return "", err
	}
	return r.policy.Sanitize(buf.String()), nil
}
