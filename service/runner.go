package service

import (
	"encoding/base64"
	"math/rand"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/adilet/campaign-sender/dao"
	"github.com/adilet/campaign-sender/gateway"
	"github.com/adilet/campaign-sender/model"
	"github.com/adilet/campaign-sender/util"
	"go.uber.org/zap"
)

// Runner executes exactly one campaign to a terminal or paused outcome,
// resuming from the persisted cursor when one is present.
type Runner interface {
	Run(campaignId uint32)
}

func NewRunner(
	campaignDao dao.CampaignDao,
	contactDao dao.ContactDao,
	templateDao dao.TemplateDao,
	mediaDao dao.MediaDao,
	sessionDao dao.SessionDao,
	gatewayClient gateway.Client,
	bus *Bus,
	namePlaceholder string,
	minDelayMs, maxDelayMs int,
) Runner {
	return &runner{
		campaignDao:   campaignDao,
		contactDao:    contactDao,
		templateDao:   templateDao,
		mediaDao:      mediaDao,
		sessionDao:    sessionDao,
		gatewayClient: gatewayClient,
		bus:           bus,
		placeholderRx: regexp.MustCompile("(?i)" + regexp.QuoteMeta(namePlaceholder)),
		minDelayMs:    minDelayMs,
		maxDelayMs:    maxDelayMs,
		sleep:         time.Sleep,
	}
}

type runner struct {
	campaignDao   dao.CampaignDao
	contactDao    dao.ContactDao
	templateDao   dao.TemplateDao
	mediaDao      dao.MediaDao
	sessionDao    dao.SessionDao
	gatewayClient gateway.Client
	bus           *Bus

	placeholderRx *regexp.Regexp
	minDelayMs    int
	maxDelayMs    int

	sleep func(time.Duration)
}

func (r *runner) Run(campaignId uint32) {
	campaign, err := r.campaignDao.GetOneById(campaignId)
	if err != nil {
		zap.L().Error("Campaign not found", zap.Uint32("campaign", campaignId), zap.Error(err))
		return
	}

	//nothing below may escape Run, a broken campaign must not take the process down
	defer func() {
		if rec := recover(); rec != nil {
			zap.L().Error("Campaign run panicked", zap.Uint32("campaign", campaignId), zap.Any("panic", rec))
			r.fail(campaignId)
		}
	}()

	if campaign.Status != model.SCHEDULED {
		zap.L().Warn("Skipping campaign in wrong status",
			zap.Uint32("campaign", campaignId), zap.String("status", campaign.Status))
		return
	}

	session, err := r.sessionDao.GetOneByUserId(campaign.UserId)
	if err != nil || util.IsBlank(session.SessionId) {
		zap.L().Error("No gateway session for campaign owner",
			zap.Uint32("campaign", campaignId), zap.Uint32("user", campaign.UserId), zap.Error(err))
		r.fail(campaignId)
		return
	}

	won, err := r.campaignDao.TryMarkRunning(campaignId)
	if err != nil {
		zap.L().Error("Error marking campaign running", zap.Uint32("campaign", campaignId), zap.Error(err))
		r.fail(campaignId)
		return
	}
	if !won {
		zap.L().Warn("Campaign already picked up by another trigger", zap.Uint32("campaign", campaignId))
		return
	}
	r.publish(campaignId, model.RUNNING, campaign.SentCount, campaign.FailedCount)

	contacts, err := r.contactDao.GetAllByListId(campaign.ContactListId)
	if err != nil {
		zap.L().Error("Error loading contacts", zap.Uint32("campaign", campaignId), zap.Error(err))
		r.fail(campaignId)
		return
	}
	if len(contacts) == 0 {
		r.complete(campaignId, campaign.SentCount, campaign.FailedCount)
		return
	}

	tmpl, err := r.templateDao.GetOneById(campaign.TemplateId)
	if err != nil {
		zap.L().Error("Error loading template", zap.Uint32("campaign", campaignId), zap.Error(err))
		r.fail(campaignId)
		return
	}

	var media *model.Media
	if campaign.MediaId != 0 {
		m, err := r.mediaDao.GetOneById(campaign.MediaId)
		if err != nil {
			zap.L().Error("Error loading media", zap.Uint32("campaign", campaignId), zap.Error(err))
			r.fail(campaignId)
			return
		}
		media = &m
	}

	startIndex := 0
	if campaign.LastContactIndex != nil {
		startIndex = *campaign.LastContactIndex
	}
	sentCount := campaign.SentCount
	failedCount := campaign.FailedCount

	for i := startIndex; i < len(contacts); i++ {
		//health gate: anything but a working session pauses the run before this contact is attempted
		health, err := r.gatewayClient.GetHealth(session.SessionId)
		if err != nil || health.Status != gateway.WORKING {
			zap.L().Warn("Gateway session not ready, pausing campaign",
				zap.Uint32("campaign", campaignId), zap.String("health", health.Status), zap.Error(err))
			if err == nil {
				_ = r.sessionDao.UpdateStatus(campaign.UserId, health.Status)
			}
			if err := r.campaignDao.Pause(campaignId, i); err != nil {
				zap.L().Error("Error pausing campaign", zap.Uint32("campaign", campaignId), zap.Error(err))
				r.fail(campaignId)
				return
			}
			r.publish(campaignId, model.PAUSED, sentCount, failedCount)
			return
		}

		contact := contacts[i]
		text := r.render(tmpl.Text, contact.Name, campaign.DefaultName)

		if r.dispatch(session.SessionId, contact.Phone, text, media) {
			sentCount++
		} else {
			failedCount++
		}

		//cursor is written after every attempt, failed ones included, so a restart never re-sends earlier contacts
		if err := r.campaignDao.UpdateProgress(campaignId, sentCount, failedCount, i); err != nil {
			zap.L().Error("Error persisting campaign progress", zap.Uint32("campaign", campaignId), zap.Error(err))
			r.fail(campaignId)
			return
		}

		if i < len(contacts)-1 {
			r.sleep(r.nextDelay())
		}
	}

	r.complete(campaignId, sentCount, failedCount)
	zap.L().Info("Campaign completed",
		zap.Uint32("campaign", campaignId), zap.Int("sent", sentCount), zap.Int("failed", failedCount))
}

// dispatch sends one message and reports success. Failures are isolated here,
// a single contact never aborts the run.
func (r *runner) dispatch(sessionId, phone, text string, media *model.Media) bool {
	if media != nil {
		payload, err := loadMedia(media)
		if err != nil {
			//unreadable media counts as a failed send, the api call is skipped
			zap.L().Warn("Error reading media file", zap.String("path", media.Path), zap.Error(err))
			return false
		}
		if _, err := r.gatewayClient.SendMedia(sessionId, phone, payload, text); err != nil {
			zap.L().Warn("Error sending media message", zap.String("phone", phone), zap.Error(err))
			return false
		}
		return true
	}

	if _, err := r.gatewayClient.SendText(sessionId, phone, text); err != nil {
		zap.L().Warn("Error sending text message", zap.String("phone", phone), zap.Error(err))
		return false
	}
	return true
}

func (r *runner) render(text, name, defaultName string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultName
	}
	return r.placeholderRx.ReplaceAllLiteralString(text, name)
}

func (r *runner) nextDelay() time.Duration {
	minMs, maxMs := r.minDelayMs, r.maxDelayMs
	if minMs > maxMs {
		zap.L().Warn("Send delay minimum exceeds maximum, using minimum",
			zap.Int("minMs", minMs), zap.Int("maxMs", maxMs))
		return time.Duration(minMs) * time.Millisecond
	}
	return time.Duration(minMs+rand.Intn(maxMs-minMs+1)) * time.Millisecond
}

func (r *runner) complete(campaignId uint32, sentCount, failedCount int) {
	if err := r.campaignDao.Complete(campaignId); err != nil {
		zap.L().Error("Error completing campaign", zap.Uint32("campaign", campaignId), zap.Error(err))
		return
	}
	r.publish(campaignId, model.COMPLETED, sentCount, failedCount)
}

// fail is best-effort: if even the FAILED transition cannot be persisted
// there is nothing left to do but log the second-order failure.
func (r *runner) fail(campaignId uint32) {
	if err := r.campaignDao.Fail(campaignId); err != nil {
		zap.L().Error("Error marking campaign failed", zap.Uint32("campaign", campaignId), zap.Error(err))
		return
	}
	campaign, err := r.campaignDao.GetOneById(campaignId)
	if err != nil {
		return
	}
	r.publish(campaignId, model.FAILED, campaign.SentCount, campaign.FailedCount)
}

func (r *runner) publish(campaignId uint32, status string, sentCount, failedCount int) {
	if r.bus == nil {
		return
	}
	r.bus.Publish(StatusEvent{
		CampaignId:  campaignId,
		Status:      status,
		SentCount:   sentCount,
		FailedCount: failedCount,
	})
}

func loadMedia(media *model.Media) (gateway.MediaPayload, error) {
	data, err := os.ReadFile(media.Path)
	if err != nil {
		return gateway.MediaPayload{}, err
	}
	return gateway.MediaPayload{
		Filename:   media.FileName,
		MimeType:   media.MimeType,
		DataBase64: base64.StdEncoding.EncodeToString(data),
	}, nil
}
