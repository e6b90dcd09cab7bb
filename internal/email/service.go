// internal/email/service.go
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	texttemplate "text/template"

	"github.com/dangerclosesec/colab"
	"github.com/dangerclosesec/colab/internal/config"
	"github.com/sendgrid/sendgrid-go"
)

// Provider identifies supported email providers
type Provider string

const (
	ProviderNone     Provider = ""
	ProviderSMTP     Provider = "smtp"
	ProviderSendgrid Provider = "sendgrid"

	DefaultTemplatePath = "templates/emails"
)

// ProviderFor picks Sendgrid when an API key is set, then SMTP.
func ProviderFor(cfg *config.Config) Provider {
	switch {
	case cfg.Sendgrid.APIKey != "":
		return ProviderSendgrid
	case cfg.SMTP.Host != "":
		return ProviderSMTP
	default:
		return ProviderNone
	}
}

// Sender is implemented by Service. Mailers depend on it.
type Sender interface {
	SendEmail(ctx context.Context, data EmailData) error
}

// EmailData contains all necessary information for sending an email
type EmailData struct {
	To           string
	From         string
	FromName     string
	Subject      string
	TemplateName string
	TemplateData interface{}
}

// Service handles email operations
type Service struct {
	config         *config.Config
	provider       Provider
	sendgridClient *sendgrid.Client
	Templates      map[string]*Template
}

var _ Sender = (*Service)(nil)

type Template struct {
	HTML      *template.Template
	Plaintext *texttemplate.Template
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg *config.Config, provider Provider) (*Service, error) {
	return newEmailService(cfg, provider, colab.TemplateFS)
}

func newEmailService(cfg *config.Config, provider Provider, templateFS fs.FS) (*Service, error) {
	if provider == ProviderNone {
		return nil, fmt.Errorf("no email provider configured")
	}

	s := &Service{
		config:    cfg,
		provider:  provider,
		Templates: make(map[string]*Template),
	}

	if provider == ProviderSendgrid {
		s.sendgridClient = sendgrid.NewSendClient(cfg.Sendgrid.APIKey)
	}

	if err := s.loadTemplates(templateFS); err != nil {
		return nil, fmt.Errorf("loading email templates: %w", err)
	}

	return s, nil
}

// loadTemplates loads every template group under DefaultTemplatePath. A
// group is a directory holding html.tmpl and plaintext.tmpl.
func (s *Service) loadTemplates(templateFS fs.FS) error {
	templateGroups, err := fs.ReadDir(templateFS, DefaultTemplatePath)
	if err != nil {
		return fmt.Errorf("failed to read email templates directory: %w", err)
	}

	if len(templateGroups) == 0 {
		return fmt.Errorf("no email templates found")
	}

	for _, group := range templateGroups {
		if !group.IsDir() {
			continue
		}

		groupPath := DefaultTemplatePath + "/" + group.Name()

		html, err := template.ParseFS(templateFS, groupPath+"/html.tmpl")
		if err != nil {
			return fmt.Errorf("invalid email template group %s: %w", group.Name(), err)
		}
		plaintext, err := texttemplate.ParseFS(templateFS, groupPath+"/plaintext.tmpl")
		if err != nil {
			return fmt.Errorf("invalid email template group %s: %w", group.Name(), err)
		}

		s.Templates[group.Name()] = &Template{HTML: html, Plaintext: plaintext}
	}

	return nil
}

// SendEmail sends an email using the configured provider
func (s *Service) SendEmail(ctx context.Context, data EmailData) error {
	// Renders both HTML and text versions of the email
	htmlContent, textContent, err := s.renderTemplate(data.TemplateName, data.TemplateData)
	if err != nil {
		return fmt.Errorf("rendering template: %w", err)
	}

	switch s.provider {
	case ProviderSendgrid:
		if data.From == "" {
			data.From = s.config.Sendgrid.From
		}
		return s.sendWithSendgrid(ctx, data, htmlContent, textContent)
	case ProviderSMTP:
		if data.From == "" {
			data.From = s.config.SMTP.From
		}
		if data.From == "" {
			return fmt.Errorf("missing sender email address (From)")
		}
		return s.sendWithSMTP(data, htmlContent, textContent)
	default:
		return fmt.Errorf("unsupported email provider: %s", s.provider)
	}
}

// renderTemplate renders a template with the given data
func (s *Service) renderTemplate(name string, data interface{}) (string, string, error) {
	tmpl, exists := s.Templates[name]
	if !exists {
		return "", "", fmt.Errorf("template %s not found", name)
	}

	var htmlbuf bytes.Buffer
	if err := tmpl.HTML.Execute(&htmlbuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template: %w", err)
	}

	var textbuf bytes.Buffer
	if err := tmpl.Plaintext.Execute(&textbuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template: %w", err)
	}

	return htmlbuf.String(), textbuf.String(), nil
}
