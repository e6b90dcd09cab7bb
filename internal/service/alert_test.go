package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dangerclosesec/colab/internal/email"
	"github.com/dangerclosesec/colab/internal/email/mailer"
	"github.com/dangerclosesec/colab/internal/mocks"
	"github.com/dangerclosesec/colab/internal/model"
	"github.com/dangerclosesec/colab/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type recordingSender struct {
	sent    []email.EmailData
	failFor string
}

func (r *recordingSender) SendEmail(_ context.Context, data email.EmailData) error {
	if data.To == r.failFor {
		return errors.New("mailbox unavailable")
	}
	r.sent = append(r.sent, data)
	return nil
}

func TestSendNewProjectAlerts(t *testing.T) {
	ctrl := gomock.NewController(t)
	projects := mocks.NewMockProjectRepositoryIface(ctrl)
	prefs := mocks.NewMockPreferenceRepositoryIface(ctrl)
	sender := &recordingSender{failFor: "carol@example.com"}

	svc := service.NewAlertService(projects, prefs, sender, "https://colab.test/", time.Hour, discardLogger())

	project := model.Project{
		ID:      uuid.New(),
		Title:   "Farm tracker",
		GitRepo: "org/farm",
		Owner:   model.User{Username: "owner"},
		Sector:  model.Sector{ID: 11, Name: "Agriculture"},
		Stacks:  []model.Stack{{ID: 1, Name: "Go"}},
	}

	before := time.Now()
	projects.EXPECT().
		FindCreatedSince(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, since time.Time) ([]model.Project, error) {
			assert.WithinDuration(t, before.Add(-time.Hour), since, time.Minute)
			return []model.Project{project}, nil
		})
	prefs.EXPECT().
		FindInterestedUsers(gomock.Any(), gomock.Any()).
		Return([]model.User{
			{ID: uuid.New(), FirstName: "Bob", Email: "bob@example.com"},
			{ID: uuid.New(), FirstName: "Carol", Email: "carol@example.com"},
		}, nil)

	sent, err := svc.SendNewProjectAlerts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "bob@example.com", msg.To)
	assert.Equal(t, "new_project_alert", msg.TemplateName)

	data, ok := msg.TemplateData.(mailer.NewProjectAlertData)
	require.True(t, ok)
	assert.Equal(t, "Bob", data.FirstName)
	assert.Equal(t, "https://colab.test/projects/"+project.ID.String(), data.ProjectLink)
	assert.Equal(t, []string{"Go"}, data.Stacks)
	assert.Equal(t, "Agriculture", data.Sector)
}

func TestSendNewProjectAlertsNoProjects(t *testing.T) {
	ctrl := gomock.NewController(t)
	projects := mocks.NewMockProjectRepositoryIface(ctrl)
	prefs := mocks.NewMockPreferenceRepositoryIface(ctrl)

	svc := service.NewAlertService(projects, prefs, &recordingSender{}, "", 0, discardLogger())
	projects.EXPECT().FindCreatedSince(gomock.Any(), gomock.Any()).Return(nil, nil)

	sent, err := svc.SendNewProjectAlerts(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
}
