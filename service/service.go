package service

import (
	"regexp"
	"strings"
	"time"

	"github.com/adilet/campaign-sender/dao"
	"github.com/adilet/campaign-sender/model"
	"github.com/adilet/campaign-sender/scheduler"
	"github.com/adilet/campaign-sender/service/dto"
	"github.com/adilet/campaign-sender/util"
	"go.uber.org/zap"
)

const defaultNameFallback = "Customer"

type InvalidPayloadErr struct {
	message string
}

func (e *InvalidPayloadErr) Error() string {
	return e.message
}

func NewInvalidPayloadError(msg string) *InvalidPayloadErr {
	return &InvalidPayloadErr{message: msg}
}

type Service interface {
	//CreateCampaign validates and persists a campaign and registers its trigger with the scheduler
	CreateCampaign(campaign dto.Campaign) (dto.Id, error)
	//GetCampaignStatus returns the current status and counters of a campaign
	GetCampaignStatus(id uint32) (dto.CampaignStatus, error)
	//DeleteCampaign cancels any pending trigger and removes the campaign
	DeleteCampaign(id uint32) error
	//ResumeCampaign moves a paused or failed campaign back to SCHEDULED and fires it, resuming from the stored cursor
	ResumeCampaign(id uint32) error
	//CreateContactList persists a contact list with its contacts
	CreateContactList(list dto.ContactList) (dto.Id, error)
	//CreateTemplate persists a message template
	CreateTemplate(template dto.Template) (dto.Id, error)
	//RegisterMedia persists a media record pointing at an existing file on disk
	RegisterMedia(media dto.Media) (dto.Id, error)
	//RegisterSession stores the gateway session identifier of a user
	RegisterSession(session dto.Session) (dto.Id, error)
}

type service struct {
	campaignDao    dao.CampaignDao
	contactListDao dao.ContactListDao
	contactDao     dao.ContactDao
	templateDao    dao.TemplateDao
	mediaDao       dao.MediaDao
	sessionDao     dao.SessionDao
	campaignSched  scheduler.Scheduler

	namePlaceholder string
	phoneRx         *regexp.Regexp
}

func NewService(
	campaignDao dao.CampaignDao,
	contactListDao dao.ContactListDao,
	contactDao dao.ContactDao,
	templateDao dao.TemplateDao,
	mediaDao dao.MediaDao,
	sessionDao dao.SessionDao,
	campaignSched scheduler.Scheduler,
	namePlaceholder, phoneMask string,
) Service {
	return &service{
		campaignDao:     campaignDao,
		contactListDao:  contactListDao,
		contactDao:      contactDao,
		templateDao:     templateDao,
		mediaDao:        mediaDao,
		sessionDao:      sessionDao,
		campaignSched:   campaignSched,
		namePlaceholder: namePlaceholder,
		phoneRx:         regexp.MustCompile(phoneMask),
	}
}

func (s *service) CreateCampaign(campaign dto.Campaign) (dto.Id, error) {
	scheduledAt, err := time.Parse(time.RFC3339, campaign.ScheduledAt)
	if err != nil {
		return dto.Id{}, NewInvalidPayloadError("Invalid scheduledAt, expected RFC3339 timestamp")
	}

	if _, err := s.contactListDao.GetOneById(campaign.ContactListId); err != nil {
		return dto.Id{}, NewInvalidPayloadError("Unknown contact list")
	}
	if _, err := s.templateDao.GetOneById(campaign.TemplateId); err != nil {
		return dto.Id{}, NewInvalidPayloadError("Unknown template")
	}
	if campaign.MediaId != 0 {
		if _, err := s.mediaDao.GetOneById(campaign.MediaId); err != nil {
			return dto.Id{}, NewInvalidPayloadError("Unknown media")
		}
	}

	//snapshot of the recipient set size at creation time
	totalContacts, err := s.contactDao.CountByListId(campaign.ContactListId)
	if err != nil {
		return dto.Id{}, err
	}

	defaultName := strings.TrimSpace(campaign.DefaultName)
	if defaultName == "" {
		defaultName = defaultNameFallback
	}

	record := &model.Campaign{
		UserId:        campaign.UserId,
		ContactListId: campaign.ContactListId,
		TemplateId:    campaign.TemplateId,
		MediaId:       campaign.MediaId,
		DefaultName:   defaultName,
		ScheduledAt:   scheduledAt,
		TotalContacts: totalContacts,
	}
	id, err := s.campaignDao.Create(record)
	if err != nil {
		return dto.Id{}, err
	}

	s.campaignSched.Schedule(*record)

	zap.L().Info("Campaign created", zap.Uint32("campaign", id), zap.Time("at", scheduledAt))
	return dto.Id{Id: id}, nil
}

func (s *service) GetCampaignStatus(id uint32) (dto.CampaignStatus, error) {
	campaign, err := s.campaignDao.GetOneById(id)
	if err != nil {
		return dto.CampaignStatus{}, err
	}

	return dto.CampaignStatus{
		Id:               campaign.Id,
		Status:           campaign.Status,
		TotalContacts:    campaign.TotalContacts,
		SentCount:        campaign.SentCount,
		FailedCount:      campaign.FailedCount,
		LastContactIndex: campaign.LastContactIndex,
		ScheduledAt:      campaign.ScheduledAt,
		StartedAt:        campaign.StartedAt,
		CompletedAt:      campaign.CompletedAt,
	}, nil
}

func (s *service) DeleteCampaign(id uint32) error {
	campaign, err := s.campaignDao.GetOneById(id)
	if err != nil {
		return err
	}
	if campaign.Status == model.RUNNING {
		return NewInvalidPayloadError("Cannot delete a running campaign")
	}

	//the pending trigger must go before the record does
	s.campaignSched.Cancel(id)
	return s.campaignDao.Delete(id)
}

func (s *service) ResumeCampaign(id uint32) error {
	campaign, err := s.campaignDao.GetOneById(id)
	if err != nil {
		return err
	}
	if campaign.Status != model.PAUSED && campaign.Status != model.FAILED {
		return NewInvalidPayloadError("Only paused or failed campaigns can be resumed")
	}

	campaign, err = s.campaignDao.Reschedule(id, time.Now())
	if err != nil {
		return err
	}
	s.campaignSched.Schedule(campaign)

	zap.L().Info("Campaign resumed", zap.Uint32("campaign", id))
	return nil
}

func (s *service) CreateContactList(list dto.ContactList) (dto.Id, error) {
	if util.IsBlank(list.Name) || len(list.Contacts) == 0 {
		return dto.Id{}, NewInvalidPayloadError("Invalid contact list")
	}

	//check phone format
	for _, contact := range list.Contacts {
		if !s.phoneRx.MatchString(contact.Phone) {
			return dto.Id{}, NewInvalidPayloadError("Invalid phone " + contact.Phone)
		}
	}

	listId, err := s.contactListDao.Create(list.UserId, list.Name)
	if err != nil {
		return dto.Id{}, err
	}

	//remove duplicates, keeping the first occurrence
	seen := make(map[string]bool)
	for _, contact := range list.Contacts {
		if seen[contact.Phone] {
			continue
		}
		seen[contact.Phone] = true

		if _, err := s.contactDao.Create(listId, contact.Phone, contact.Name); err != nil {
			return dto.Id{}, err
		}
	}

	return dto.Id{Id: listId}, nil
}

func (s *service) CreateTemplate(template dto.Template) (dto.Id, error) {
	if util.IsBlank(template.Name) || util.IsBlank(template.Text) {
		return dto.Id{}, NewInvalidPayloadError("Invalid template")
	}
	if !strings.Contains(strings.ToLower(template.Text), strings.ToLower(s.namePlaceholder)) {
		return dto.Id{}, NewInvalidPayloadError("Template must contain the " + s.namePlaceholder + " placeholder")
	}

	id, err := s.templateDao.Create(template.UserId, template.Name, template.Text)
	if err != nil {
		return dto.Id{}, err
	}
	return dto.Id{Id: id}, nil
}

func (s *service) RegisterMedia(media dto.Media) (dto.Id, error) {
	if util.IsBlank(media.FileName) || util.IsBlank(media.MimeType) {
		return dto.Id{}, NewInvalidPayloadError("Invalid media")
	}
	if !util.FileExists(media.Path) {
		return dto.Id{}, NewInvalidPayloadError("Media file does not exist: " + media.Path)
	}

	id, err := s.mediaDao.Create(media.UserId, media.FileName, media.MimeType, media.Path)
	if err != nil {
		return dto.Id{}, err
	}
	return dto.Id{Id: id}, nil
}

func (s *service) RegisterSession(session dto.Session) (dto.Id, error) {
	if util.IsBlank(session.SessionId) {
		return dto.Id{}, NewInvalidPayloadError("Invalid session id")
	}

	id, err := s.sessionDao.Upsert(session.UserId, session.SessionId)
	if err != nil {
		return dto.Id{}, err
	}
	return dto.Id{Id: id}, nil
}
