// Package template renders templated manifest sources with text/template.
//
// Templates see the process environment and a few facts about the user:
//
//	{{ .Env.EDITOR }}   {{ .UID }}   {{ .Home }}   {{ .User }}   {{ .Hostname }}
//
// Referencing a missing key is an error. Rendered output always ends with
// a newline.
package template

import (
	"bytes"
	"os"
	"os/user"
	"strings"
	"text/template"

	"github.com/arthur-debert/akabei/pkg/errors"
)

// Data is the value templates execute against
type Data struct {
	Env      map[string]string
	UID      int
	Home     string
	User     string
	Hostname string
}

// NewData collects Data from the running process. home overrides the
// resolved home directory.
func NewData(home string) Data {
	data := Data{
		Env:  environ(),
		UID:  os.Getuid(),
		Home: home,
	}
	if u, err := user.Current(); err == nil {
		data.User = u.Username
	} else {
		data.User = os.Getenv("USER")
	}
	if host, err := os.Hostname(); err == nil {
		data.Hostname = host
	}
	return data
}

func environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}

var funcs = template.FuncMap{
	"default": func(def, v string) string {
		if v == "" {
			return def
		}
		return v
	},
	"trim":  strings.TrimSpace,
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
}

// Render executes content as a template named name
func Render(name string, content []byte, data Data) ([]byte, error) {
	tmpl, err := template.New(name).
		Option("missingkey=error").
		Funcs(funcs).
		Parse(string(content))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestInvalid, "cannot parse template %s", name).
			WithDetail("source", name)
	}

	env := data.Env
	if env == nil {
		env = map[string]string{}
	}
	data.Env = env

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestInvalid, "cannot render template %s", name).
			WithDetail("source", name)
	}

	out := buf.Bytes()
	if len(out) == 0 || out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	return out, nil
}
