package core

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"
	"text/template"
)

var expandFuncs = template.FuncMap{
	"env": func(envvar string) string {
		return os.Getenv(envvar)
	},
	"envOr": func(envvar, fallback string) string {
		if v, ok := os.LookupEnv(envvar); ok && v != "" {
			return v
		}
		return fallback
	},
	"exec": func(line string) (string, error) {
		if strings.Contains(line, " | ") {
			out, err := exec.Command("sh", "-c", line).Output()
			return strings.TrimSpace(string(out)), err
		}

		l := strings.Fields(line)
		if len(l) < 1 {
			return "", errors.New("no command provided")
		}

		out, err := exec.Command(l[0], l[1:]...).Output()
		return strings.TrimSpace(string(out)), err
	},
}

// Expand evaluates template actions in a configuration value, so values
// such as {{ env `PGPASSWORD` }} or {{ exec `pass show db` }} can be used
// instead of plain secrets.
func Expand(value string) (string, error) {
	if !strings.Contains(value, "{{") {
		return value, nil
	}

	tmpl, err := template.New("expand_variables").Funcs(expandFuncs).Parse(value)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	err = tmpl.Execute(&out, nil)
	if err != nil {
		return "", err
	}

	return out.String(), nil
}

// expandOrDefault silently suppresses errors.
func expandOrDefault(value string) string {
	ex, err := Expand(value)
	if err != nil {
		return value
	}
	return ex
}
