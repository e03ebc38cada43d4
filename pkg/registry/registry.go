// pkg/registry/registry.go

// Package registry holds the notification message templates. A built-in
// set covers every notification type; a JSON file can override or extend
// them without a redeploy.
package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/template"

	"cofound-workers/internal/models"
)

var ErrTemplateNotFound = errors.New("TEMPLATE_NOT_FOUND")

// Template is a renderable message for one notification type. Bodies use
// Go template syntax; the data map supplied at send time fills the
// placeholders.
type Template struct {
	Type     string `json:"type"`
	Subject  string `json:"subject"`
	Email    string `json:"email"`
	SMS      string `json:"sms"`
	Category string `json:"category,omitempty"`
}

type Registry struct {
	templates map[string]Template
}

func defaultTemplates() map[string]Template {
	defaults := []Template{
		{
			Type:    models.NotificationConnectionRequest,
			Subject: "{{.SenderName}} wants to connect",
			Email:   "<p>Hi {{.RecipientName}},</p><p>{{.SenderName}} sent you a connection request on CoFound.</p>",
			SMS:     "{{.SenderName}} wants to connect with you on CoFound.",
		},
		{
			Type:    models.NotificationConnectionAccepted,
			Subject: "{{.SenderName}} accepted your request",
			Email:   "<p>Hi {{.RecipientName}},</p><p>{{.SenderName}} accepted your connection request. Say hello!</p>",
			SMS:     "{{.SenderName}} accepted your connection request on CoFound.",
		},
		{
			Type:    models.NotificationNewMatch,
			Subject: "New co-founder match: {{.MatchName}}",
			Email:   "<p>Hi {{.RecipientName}},</p><p>You have a new match: {{.MatchName}} ({{.MatchScore}}% match).</p>",
			SMS:     "New CoFound match: {{.MatchName}} ({{.MatchScore}}%).",
		},
		{
			Type:    models.NotificationGroupInvite,
			Subject: "You're invited to join {{.GroupName}}",
			Email:   "<p>Hi {{.RecipientName}},</p><p>{{.SenderName}} invited you to join the group {{.GroupName}}.</p>",
			SMS:     "{{.SenderName}} invited you to {{.GroupName}} on CoFound.",
		},
	}

	templates := make(map[string]Template, len(defaults))
	for _, tmpl := range defaults {
		templates[tmpl.Type] = tmpl
	}
	return templates
}

// Load builds a registry from the built-in templates, overridden by the
// JSON file at path when one is given. The file holds an array of
// Template objects keyed by type.
func Load(path string) (*Registry, error) {
	registry := &Registry{templates: defaultTemplates()}
	if path == "" {
		return registry, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template registry: %w", err)
	}

	var overrides []Template
	if err := json.Unmarshal(raw, &overrides); err != nil {
		return nil, fmt.Errorf("parse template registry: %w", err)
	}

	for _, tmpl := range overrides {
		if tmpl.Type == "" {
			return nil, fmt.Errorf("parse template registry: template without a type")
		}
		registry.templates[tmpl.Type] = tmpl
	}
	return registry, nil
}

func (r *Registry) Get(notificationType string) (Template, error) {
	tmpl, ok := r.templates[notificationType]
	if !ok {
		return Template{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, notificationType)
	}
	return tmpl, nil
}

// Types lists the registered notification types.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.templates))
	for key := range r.templates {
		types = append(types, key)
	}
	return types
}

// Render executes one template body against the supplied data. Missing
// keys render as "<no value>" rather than failing; a malformed template
// is an error.
func Render(body string, data map[string]interface{}) (string, error) {
	tmpl, err := template.New("message").Parse(body)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return out.String(), nil
}
