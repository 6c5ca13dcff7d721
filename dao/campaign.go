package dao

import (
	"sync"
	"time"

	"github.com/adilet/campaign-sender/model"
)

type CampaignDao interface {
	//Create persists a new campaign and returns its id
	Create(campaign *model.Campaign) (uint32, error)
	//GetOneById returns campaign by id
	GetOneById(id uint32) (model.Campaign, error)
	//GetAllByStatus returns all campaigns with the given status
	GetAllByStatus(status string) ([]model.Campaign, error)
	//TryMarkRunning moves the campaign from SCHEDULED to RUNNING and reports whether this caller won the transition
	TryMarkRunning(id uint32) (bool, error)
	//UpdateProgress persists counters and the resume cursor after a send attempt
	UpdateProgress(id uint32, sentCount, failedCount int, cursor int) error
	//Pause marks the campaign PAUSED with the given resume cursor
	Pause(id uint32, cursor int) error
	//Complete marks the campaign COMPLETED and clears the resume cursor
	Complete(id uint32) error
	//Fail marks the campaign FAILED leaving the cursor untouched for diagnostics
	Fail(id uint32) error
	//Reschedule moves the campaign back to SCHEDULED at the given time, keeping counters and cursor
	Reschedule(id uint32, at time.Time) (model.Campaign, error)
	//Delete removes the campaign record
	Delete(id uint32) error
}

func NewCampaignDao(db Db) CampaignDao {
	return &campaignDao{db: db}
}

type campaignDao struct {
	db Db
	//mu serializes status transitions, see TryMarkRunning
	mu sync.Mutex
}

func (d *campaignDao) Create(campaign *model.Campaign) (uint32, error) {
	campaign.Status = model.SCHEDULED
	campaign.LastContactIndex = nil
	campaign.CreatedAt = time.Now()
	err := d.db.Save(campaign)
	return campaign.Id, err
}

func (d *campaignDao) GetOneById(id uint32) (campaign model.Campaign, err error) {
	err = d.db.One("Id", id, &campaign)
	return
}

func (d *campaignDao) GetAllByStatus(status string) (campaigns []model.Campaign, err error) {
	err = d.db.Find("Status", status, &campaigns)
	if err != nil && err.Error() == "not found" {
		return nil, nil
	}
	return
}

// TryMarkRunning is the guard against the same campaign being picked up twice,
// e.g. a manual trigger racing the scheduled one. The mutex is sufficient because
// scheduling is single-process.
func (d *campaignDao) TryMarkRunning(id uint32) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var campaign model.Campaign
	err := d.db.One("Id", id, &campaign)
	if err != nil {
		return false, err
	}
	if campaign.Status != model.SCHEDULED {
		return false, nil
	}
	now := time.Now()
	campaign.Status = model.RUNNING
	campaign.StartedAt = &now
	return true, d.db.Save(&campaign)
}

func (d *campaignDao) UpdateProgress(id uint32, sentCount, failedCount int, cursor int) error {
	var campaign model.Campaign
	err := d.db.One("Id", id, &campaign)
	if err != nil {
		return err
	}
	campaign.SentCount = sentCount
	campaign.FailedCount = failedCount
	campaign.LastContactIndex = &cursor
	return d.db.Save(&campaign)
}

func (d *campaignDao) Pause(id uint32, cursor int) error {
	var campaign model.Campaign
	err := d.db.One("Id", id, &campaign)
	if err != nil {
		return err
	}
	campaign.Status = model.PAUSED
	campaign.LastContactIndex = &cursor
	return d.db.Save(&campaign)
}

func (d *campaignDao) Complete(id uint32) error {
	var campaign model.Campaign
	err := d.db.One("Id", id, &campaign)
	if err != nil {
		return err
	}
	now := time.Now()
	campaign.Status = model.COMPLETED
	campaign.CompletedAt = &now
	campaign.LastContactIndex = nil
	return d.db.Save(&campaign)
}

func (d *campaignDao) Fail(id uint32) error {
	var campaign model.Campaign
	err := d.db.One("Id", id, &campaign)
	if err != nil {
		return err
	}
	now := time.Now()
	campaign.Status = model.FAILED
	campaign.CompletedAt = &now
	return d.db.Save(&campaign)
}

func (d *campaignDao) Reschedule(id uint32, at time.Time) (model.Campaign, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var campaign model.Campaign
	err := d.db.One("Id", id, &campaign)
	if err != nil {
		return campaign, err
	}
	campaign.Status = model.SCHEDULED
	campaign.ScheduledAt = at
	campaign.CompletedAt = nil
	err = d.db.Save(&campaign)
	return campaign, err
}

func (d *campaignDao) Delete(id uint32) error {
	return d.db.DeleteStruct(&model.Campaign{Id: id})
}
