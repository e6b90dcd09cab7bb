package email

import (
	"encoding/base64"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/dangerclosesec/colab/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderFor(t *testing.T) {
	cfg := &config.Config{}
	assert.Equal(t, ProviderNone, ProviderFor(cfg))

	cfg.SMTP.Host = "localhost"
	assert.Equal(t, ProviderSMTP, ProviderFor(cfg))

	cfg.Sendgrid.APIKey = "SG.key"
	assert.Equal(t, ProviderSendgrid, ProviderFor(cfg))
}

func TestEmbeddedTemplatesLoad(t *testing.T) {
	cfg := &config.Config{}
	cfg.SMTP.Host = "localhost"

	s, err := NewEmailService(cfg, ProviderSMTP)
	require.NoError(t, err)
	assert.Contains(t, s.Templates, "new_project_alert")
}

func TestRenderTemplate(t *testing.T) {
	fsys := fstest.MapFS{
		"templates/emails/greeting/html.tmpl":      {Data: []byte(`<p>Hello {{.Name}}</p>`)},
		"templates/emails/greeting/plaintext.tmpl": {Data: []byte(`Hello {{.Name}}`)},
	}

	s, err := newEmailService(&config.Config{}, ProviderSMTP, fsys)
	require.NoError(t, err)

	html, text, err := s.renderTemplate("greeting", map[string]string{"Name": "<Ada>"})
	require.NoError(t, err)
	assert.Equal(t, "<p>Hello &lt;Ada&gt;</p>", html)
	assert.Equal(t, "Hello <Ada>", text)

	_, _, err = s.renderTemplate("missing", nil)
	assert.Error(t, err)
}

func TestNewEmailServiceErrors(t *testing.T) {
	_, err := newEmailService(&config.Config{}, ProviderNone, fstest.MapFS{})
	assert.Error(t, err)

	_, err = newEmailService(&config.Config{}, ProviderSMTP, fstest.MapFS{})
	assert.Error(t, err)

	broken := fstest.MapFS{
		"templates/emails/broken/html.tmpl": {Data: []byte(`{{.Name`)},
	}
	_, err = newEmailService(&config.Config{}, ProviderSMTP, broken)
	assert.Error(t, err)
}

func TestBuildMessage(t *testing.T) {
	now := time.Unix(1700000000, 0)
	msg := string(buildMessage(EmailData{
		To:       "bob@example.com",
		From:     "noreply@colab.test",
		FromName: "Colab",
		Subject:  "New project",
	}, "<p>hi</p>", "hi", now))

	assert.True(t, strings.HasPrefix(msg, "From: Colab <noreply@colab.test>\r\n"))
	assert.Contains(t, msg, "To: bob@example.com\r\n")
	assert.Contains(t, msg, "Subject: New project\r\n")
	assert.Contains(t, msg, "boundary=_MULTIPART_ALTERNATIVE_BOUNDARY_1700000000000000000")
	assert.Contains(t, msg, base64.StdEncoding.EncodeToString([]byte("hi")))
	assert.Contains(t, msg, base64.StdEncoding.EncodeToString([]byte("<p>hi</p>")))
}
