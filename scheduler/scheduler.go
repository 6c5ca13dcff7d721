package scheduler

import (
	"sync"
	"time"

	"github.com/adilet/campaign-sender/dao"
	"github.com/adilet/campaign-sender/model"
	"go.uber.org/zap"
)

// Runner executes a single campaign to a terminal or paused state.
type Runner interface {
	Run(campaignId uint32)
}

type Scheduler interface {
	//Initialize registers triggers for all persisted SCHEDULED campaigns and fires overdue ones immediately
	Initialize() error
	//Schedule registers a one-shot trigger for the campaign, replacing any pending trigger for the same id
	Schedule(campaign model.Campaign)
	//Cancel stops the pending trigger of the given campaign, no-op if none is pending
	Cancel(campaignId uint32)
	//StopAll stops every pending trigger, used at process shutdown
	StopAll()
}

func New(campaignDao dao.CampaignDao, runner Runner) Scheduler {
	return &scheduler{
		campaignDao: campaignDao,
		runner:      runner,
		timers:      make(map[uint32]*time.Timer),
	}
}

type scheduler struct {
	campaignDao dao.CampaignDao
	runner      Runner

	//mu guards timers; the map only ever tracks pending triggers, never running work
	mu     sync.Mutex
	timers map[uint32]*time.Timer
}

func (s *scheduler) Initialize() error {
	campaigns, err := s.campaignDao.GetAllByStatus(model.SCHEDULED)
	if err != nil {
		zap.L().Error("Error loading scheduled campaigns", zap.Error(err))
		return err
	}

	now := time.Now()
	for _, campaign := range campaigns {
		if campaign.ScheduledAt.After(now) {
			s.Schedule(campaign)
		} else {
			//overdue, run right away without blocking initialization
			zap.L().Info("Executing overdue campaign", zap.Uint32("campaign", campaign.Id))
			go s.fire(campaign.Id)
		}
	}

	zap.L().Info("Scheduler initialized", zap.Int("campaigns", len(campaigns)))
	return nil
}

func (s *scheduler) Schedule(campaign model.Campaign) {
	if campaign.Status != model.SCHEDULED {
		zap.L().Error("Refusing to schedule campaign in wrong status",
			zap.Uint32("campaign", campaign.Id), zap.String("status", campaign.Status))
		return
	}
	if campaign.ScheduledAt.IsZero() {
		zap.L().Error("Refusing to schedule campaign without trigger time", zap.Uint32("campaign", campaign.Id))
		return
	}

	at := campaign.ScheduledAt.UTC()
	delay := time.Until(at)
	if delay <= 0 {
		go s.fire(campaign.Id)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	//at most one pending trigger per campaign id
	if timer, ok := s.timers[campaign.Id]; ok {
		timer.Stop()
	}
	campaignId := campaign.Id
	s.timers[campaignId] = time.AfterFunc(delay, func() {
		s.fire(campaignId)
	})

	zap.L().Info("Campaign scheduled", zap.Uint32("campaign", campaignId), zap.Time("at", at))
}

func (s *scheduler) Cancel(campaignId uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[campaignId]; ok {
		timer.Stop()
		delete(s.timers, campaignId)
		zap.L().Info("Campaign trigger cancelled", zap.Uint32("campaign", campaignId))
	}
}

func (s *scheduler) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}

	zap.L().Info("All campaign triggers stopped")
}

// fire removes the trigger bookkeeping entry and hands the campaign to the runner.
// The entry is removed before the run, whatever its outcome.
func (s *scheduler) fire(campaignId uint32) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("Campaign run panicked", zap.Uint32("campaign", campaignId), zap.Any("panic", r))
		}
	}()

	s.mu.Lock()
	delete(s.timers, campaignId)
	s.mu.Unlock()

	s.runner.Run(campaignId)
}

func (s *scheduler) pendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
