// internal/email/mailer/new_project_alert.go
package mailer

import (
	"context"

	"github.com/dangerclosesec/colab/internal/email"
)

// NewProjectAlertData contains data for the new project alert template
type NewProjectAlertData struct {
	FirstName   string
	Title       string
	Description string
	GitRepo     string
	Sector      string
	Stacks      []string
	Owner       string
	ProjectLink string
}

// SendNewProjectAlert tells a user about a project matching their preferences
func SendNewProjectAlert(ctx context.Context, s email.Sender, to string, data NewProjectAlertData) error {
	emailData := email.EmailData{
		To:           to,
		FromName:     "Colab",
		Subject:      "New project on Colab: " + data.Title,
		TemplateName: "new_project_alert",
		TemplateData: data,
	}

	return s.SendEmail(ctx, emailData)
}
