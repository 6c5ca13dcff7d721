package service

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adilet/campaign-sender/gateway"
	"github.com/adilet/campaign-sender/model"
	"github.com/stretchr/testify/require"
)

const (
	CAMPAIGN_ID uint32 = 1
	LIST_ID     uint32 = 2
	TEMPLATE_ID uint32 = 3
	MEDIA_ID    uint32 = 4
	USER_ID     uint32 = 5
	SESSION_ID         = "session-1"
	TEMPLATE           = "Hello {Name}!"
)

type memCampaignDao struct {
	campaign model.Campaign
	getErr   error
	saveErr  error
	statuses []string
}

func (m *memCampaignDao) Create(campaign *model.Campaign) (uint32, error) { return 0, nil }

func (m *memCampaignDao) GetOneById(id uint32) (model.Campaign, error) {
	return m.campaign, m.getErr
}

func (m *memCampaignDao) GetAllByStatus(status string) ([]model.Campaign, error) { return nil, nil }

func (m *memCampaignDao) TryMarkRunning(id uint32) (bool, error) {
	if m.campaign.Status != model.SCHEDULED {
		return false, nil
	}
	now := time.Now()
	m.campaign.Status = model.RUNNING
	m.campaign.StartedAt = &now
	m.statuses = append(m.statuses, model.RUNNING)
	return true, nil
}

func (m *memCampaignDao) UpdateProgress(id uint32, sentCount, failedCount int, cursor int) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.campaign.SentCount = sentCount
	m.campaign.FailedCount = failedCount
	m.campaign.LastContactIndex = &cursor
	return nil
}

func (m *memCampaignDao) Pause(id uint32, cursor int) error {
	m.campaign.Status = model.PAUSED
	m.campaign.LastContactIndex = &cursor
	m.statuses = append(m.statuses, model.PAUSED)
	return nil
}

func (m *memCampaignDao) Complete(id uint32) error {
	now := time.Now()
	m.campaign.Status = model.COMPLETED
	m.campaign.CompletedAt = &now
	m.campaign.LastContactIndex = nil
	m.statuses = append(m.statuses, model.COMPLETED)
	return nil
}

func (m *memCampaignDao) Fail(id uint32) error {
	now := time.Now()
	m.campaign.Status = model.FAILED
	m.campaign.CompletedAt = &now
	m.statuses = append(m.statuses, model.FAILED)
	return nil
}

func (m *memCampaignDao) Reschedule(id uint32, at time.Time) (model.Campaign, error) {
	m.campaign.Status = model.SCHEDULED
	m.campaign.ScheduledAt = at
	return m.campaign, nil
}

func (m *memCampaignDao) Delete(id uint32) error { return nil }

type mockContactDao struct {
	contacts []model.Contact
	err      error
}

func (m mockContactDao) Create(listId uint32, phone, name string) (uint32, error) { return 0, nil }

func (m mockContactDao) GetAllByListId(listId uint32) ([]model.Contact, error) {
	return m.contacts, m.err
}

func (m mockContactDao) CountByListId(listId uint32) (int, error) { return len(m.contacts), m.err }

type mockTemplateDao struct {
	tmpl model.Template
}

func (m mockTemplateDao) Create(userId uint32, name, text string) (uint32, error) { return 0, nil }

func (m mockTemplateDao) GetOneById(id uint32) (model.Template, error) { return m.tmpl, nil }

type mockMediaDao struct {
	media model.Media
}

func (m mockMediaDao) Create(userId uint32, fileName, mimeType, path string) (uint32, error) {
	return 0, nil
}

func (m mockMediaDao) GetOneById(id uint32) (model.Media, error) { return m.media, nil }

type mockSessionDao struct {
	session model.Session
	err     error
}

func (m mockSessionDao) Upsert(userId uint32, sessionId string) (uint32, error) { return 0, nil }

func (m mockSessionDao) GetOneByUserId(userId uint32) (model.Session, error) {
	return m.session, m.err
}

func (m mockSessionDao) UpdateStatus(userId uint32, status string) error { return nil }

type sentMessage struct {
	phone   string
	text    string
	caption string
	media   bool
}

type mockGateway struct {
	//healths is consumed one state per health check, the last one repeats
	healths     []string
	healthErr   error
	failPhones  map[string]bool
	healthCalls int
	sent        []sentMessage
}

func (m *mockGateway) GetHealth(sessionId string) (gateway.Health, error) {
	m.healthCalls++
	if m.healthErr != nil {
		return gateway.Health{}, m.healthErr
	}
	idx := m.healthCalls - 1
	if idx >= len(m.healths) {
		idx = len(m.healths) - 1
	}
	return gateway.Health{Status: m.healths[idx]}, nil
}

func (m *mockGateway) SendText(sessionId, phone, text string) (string, error) {
	if m.failPhones[phone] {
		return "", errors.New("send failed")
	}
	m.sent = append(m.sent, sentMessage{phone: phone, text: text})
	return "msg-1", nil
}

func (m *mockGateway) SendMedia(sessionId, phone string, media gateway.MediaPayload, caption string) (string, error) {
	if m.failPhones[phone] {
		return "", errors.New("send failed")
	}
	m.sent = append(m.sent, sentMessage{phone: phone, caption: caption, media: true})
	return "msg-2", nil
}

type fixture struct {
	campaignDao *memCampaignDao
	gatewayClnt *mockGateway
	delays      []time.Duration
	runner      *runner
}

func newFixture(campaign model.Campaign, contacts []model.Contact, gatewayClnt *mockGateway) *fixture {
	f := &fixture{
		campaignDao: &memCampaignDao{campaign: campaign},
		gatewayClnt: gatewayClnt,
	}
	f.runner = NewRunner(
		f.campaignDao,
		mockContactDao{contacts: contacts},
		mockTemplateDao{tmpl: model.Template{Id: TEMPLATE_ID, Text: TEMPLATE}},
		mockMediaDao{},
		mockSessionDao{session: model.Session{UserId: USER_ID, SessionId: SESSION_ID}},
		gatewayClnt,
		nil,
		"{name}",
		1, 2,
	).(*runner)
	f.runner.sleep = func(d time.Duration) {
		f.delays = append(f.delays, d)
	}
	return f
}

func scheduledCampaign() model.Campaign {
	return model.Campaign{
		Id:            CAMPAIGN_ID,
		UserId:        USER_ID,
		ContactListId: LIST_ID,
		TemplateId:    TEMPLATE_ID,
		DefaultName:   "Customer",
		Status:        model.SCHEDULED,
		ScheduledAt:   time.Now(),
		TotalContacts: 2,
	}
}

func twoContacts() []model.Contact {
	return []model.Contact{
		{Id: 1, ListId: LIST_ID, Phone: "996700111222", Name: "Alice"},
		{Id: 2, ListId: LIST_ID, Phone: "996700333444", Name: "Bob"},
	}
}

func workingGateway() *mockGateway {
	return &mockGateway{healths: []string{gateway.WORKING}}
}

func TestRunner_CompletesAndPersonalizes(t *testing.T) {
	f := newFixture(scheduledCampaign(), twoContacts(), workingGateway())

	f.runner.Run(CAMPAIGN_ID)

	require.Equal(t, model.COMPLETED, f.campaignDao.campaign.Status)
	require.Equal(t, 2, f.campaignDao.campaign.SentCount)
	require.Equal(t, 0, f.campaignDao.campaign.FailedCount)
	require.Nil(t, f.campaignDao.campaign.LastContactIndex)
	require.NotNil(t, f.campaignDao.campaign.CompletedAt)

	require.Equal(t, 2, len(f.gatewayClnt.sent))
	require.Equal(t, "Hello Alice!", f.gatewayClnt.sent[0].text)
	require.Equal(t, "Hello Bob!", f.gatewayClnt.sent[1].text)
}

func TestRunner_DefaultNameFallback(t *testing.T) {
	contacts := []model.Contact{
		{Id: 1, ListId: LIST_ID, Phone: "996700111222", Name: "   "},
	}
	f := newFixture(scheduledCampaign(), contacts, workingGateway())

	f.runner.Run(CAMPAIGN_ID)

	require.Equal(t, "Hello Customer!", f.gatewayClnt.sent[0].text)
}

func TestRunner_EmptyContactList(t *testing.T) {
	f := newFixture(scheduledCampaign(), nil, workingGateway())

	f.runner.Run(CAMPAIGN_ID)

	require.Equal(t, model.COMPLETED, f.campaignDao.campaign.Status)
	require.Equal(t, 0, f.campaignDao.campaign.SentCount)
	require.Equal(t, 0, f.campaignDao.campaign.FailedCount)
	require.Nil(t, f.campaignDao.campaign.LastContactIndex)
	require.Equal(t, 0, f.gatewayClnt.healthCalls)
}

func TestRunner_NoSessionFailsWithoutRunning(t *testing.T) {
	f := newFixture(scheduledCampaign(), twoContacts(), workingGateway())
	f.runner.sessionDao = mockSessionDao{err: errors.New("not found")}

	f.runner.Run(CAMPAIGN_ID)

	require.Equal(t, model.FAILED, f.campaignDao.campaign.Status)
	//the campaign never passed through RUNNING
	require.NotContains(t, f.campaignDao.statuses, model.RUNNING)
	require.Empty(t, f.gatewayClnt.sent)
}

func TestRunner_WrongStatusIsNoop(t *testing.T) {
	campaign := scheduledCampaign()
	campaign.Status = model.RUNNING
	f := newFixture(campaign, twoContacts(), workingGateway())

	f.runner.Run(CAMPAIGN_ID)

	require.Equal(t, model.RUNNING, f.campaignDao.campaign.Status)
	require.Empty(t, f.gatewayClnt.sent)
}

func TestRunner_ResumesFromCursor(t *testing.T) {
	campaign := scheduledCampaign()
	cursor := 1
	campaign.LastContactIndex = &cursor
	campaign.SentCount = 1
	f := newFixture(campaign, twoContacts(), workingGateway())

	f.runner.Run(CAMPAIGN_ID)

	//only contacts at index >= 1 are processed
	require.Equal(t, 1, len(f.gatewayClnt.sent))
	require.Equal(t, "Hello Bob!", f.gatewayClnt.sent[0].text)
	require.Equal(t, model.COMPLETED, f.campaignDao.campaign.Status)
	require.Equal(t, 2, f.campaignDao.campaign.SentCount)
}

func TestRunner_SendFailureIsIsolated(t *testing.T) {
	gatewayClnt := workingGateway()
	gatewayClnt.failPhones = map[string]bool{"996700111222": true}
	f := newFixture(scheduledCampaign(), twoContacts(), gatewayClnt)

	f.runner.Run(CAMPAIGN_ID)

	require.Equal(t, model.COMPLETED, f.campaignDao.campaign.Status)
	require.Equal(t, 1, f.campaignDao.campaign.SentCount)
	require.Equal(t, 1, f.campaignDao.campaign.FailedCount)
	//the failure did not abort the run, Bob still got his message
	require.Equal(t, 1, len(f.gatewayClnt.sent))
	require.Equal(t, "Hello Bob!", f.gatewayClnt.sent[0].text)
}

func TestRunner_HealthGatePausesRun(t *testing.T) {
	gatewayClnt := &mockGateway{healths: []string{gateway.WORKING, gateway.SCAN_QR}}
	f := newFixture(scheduledCampaign(), twoContacts(), gatewayClnt)

	f.runner.Run(CAMPAIGN_ID)

	require.Equal(t, model.PAUSED, f.campaignDao.campaign.Status)
	require.NotNil(t, f.campaignDao.campaign.LastContactIndex)
	//cursor points at the contact that was about to be attempted
	require.Equal(t, 1, *f.campaignDao.campaign.LastContactIndex)
	require.Equal(t, 1, f.campaignDao.campaign.SentCount)
	require.Equal(t, 0, f.campaignDao.campaign.FailedCount)
	require.Equal(t, 1, len(f.gatewayClnt.sent))
}

func TestRunner_HealthCheckErrorPausesRun(t *testing.T) {
	gatewayClnt := &mockGateway{healthErr: errors.New("gateway down")}
	f := newFixture(scheduledCampaign(), twoContacts(), gatewayClnt)

	f.runner.Run(CAMPAIGN_ID)

	require.Equal(t, model.PAUSED, f.campaignDao.campaign.Status)
	require.Equal(t, 0, *f.campaignDao.campaign.LastContactIndex)
	require.Empty(t, f.gatewayClnt.sent)
}

func TestRunner_PersistenceFailureFailsRun(t *testing.T) {
	f := newFixture(scheduledCampaign(), twoContacts(), workingGateway())
	f.campaignDao.saveErr = errors.New("disk full")

	f.runner.Run(CAMPAIGN_ID)

	require.Equal(t, model.FAILED, f.campaignDao.campaign.Status)
}

func TestRunner_InvalidDelayWindowUsesMinimum(t *testing.T) {
	f := newFixture(scheduledCampaign(), twoContacts(), workingGateway())
	f.runner.minDelayMs = 100
	f.runner.maxDelayMs = 50

	f.runner.Run(CAMPAIGN_ID)

	require.Equal(t, model.COMPLETED, f.campaignDao.campaign.Status)
	require.Equal(t, []time.Duration{100 * time.Millisecond}, f.delays)
}

func TestRunner_DelayWithinWindow(t *testing.T) {
	contacts := append(twoContacts(), model.Contact{Id: 3, ListId: LIST_ID, Phone: "996700555666", Name: "Carol"})
	f := newFixture(scheduledCampaign(), contacts, workingGateway())
	f.runner.minDelayMs = 5
	f.runner.maxDelayMs = 10

	f.runner.Run(CAMPAIGN_ID)

	require.Equal(t, 2, len(f.delays))
	for _, d := range f.delays {
		require.GreaterOrEqual(t, d, 5*time.Millisecond)
		require.LessOrEqual(t, d, 10*time.Millisecond)
	}
}

func TestRunner_MediaCampaign(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "promo.jpg")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0600))

	campaign := scheduledCampaign()
	campaign.MediaId = MEDIA_ID
	f := newFixture(campaign, twoContacts(), workingGateway())
	f.runner.mediaDao = mockMediaDao{media: model.Media{
		Id: MEDIA_ID, FileName: "promo.jpg", MimeType: "image/jpeg", Path: path,
	}}

	f.runner.Run(CAMPAIGN_ID)

	require.Equal(t, model.COMPLETED, f.campaignDao.campaign.Status)
	require.Equal(t, 2, len(f.gatewayClnt.sent))
	require.True(t, f.gatewayClnt.sent[0].media)
	//the personalized text travels as the media caption
	require.Equal(t, "Hello Alice!", f.gatewayClnt.sent[0].caption)
}

func TestRunner_UnreadableMediaCountsAsFailed(t *testing.T) {
	campaign := scheduledCampaign()
	campaign.MediaId = MEDIA_ID
	f := newFixture(campaign, twoContacts(), workingGateway())
	f.runner.mediaDao = mockMediaDao{media: model.Media{
		Id: MEDIA_ID, FileName: "promo.jpg", MimeType: "image/jpeg", Path: "/nonexistent/promo.jpg",
	}}

	f.runner.Run(CAMPAIGN_ID)

	require.Equal(t, model.COMPLETED, f.campaignDao.campaign.Status)
	require.Equal(t, 0, f.campaignDao.campaign.SentCount)
	require.Equal(t, 2, f.campaignDao.campaign.FailedCount)
	//the api call is skipped for unreadable media
	require.Empty(t, f.gatewayClnt.sent)
}

func TestRunner_CampaignNotFound(t *testing.T) {
	f := newFixture(scheduledCampaign(), twoContacts(), workingGateway())
	f.campaignDao.getErr = errors.New("not found")

	require.NotPanics(t, func() {
		f.runner.Run(CAMPAIGN_ID)
	})
	require.Empty(t, f.gatewayClnt.sent)
}

func TestRunner_RenderIsCaseInsensitive(t *testing.T) {
	f := newFixture(scheduledCampaign(), nil, workingGateway())

	rendered := f.runner.render("Hi {NAME}, {name} or {Name}", "Alice", "Customer")

	require.Equal(t, "Hi Alice, Alice or Alice", rendered)
}
