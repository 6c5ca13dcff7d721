package model

import "time"

const (
	//campaign statuses
	SCHEDULED string = "SCHEDULED"
	RUNNING          = "RUNNING"
	PAUSED           = "PAUSED"
	COMPLETED        = "COMPLETED"
	FAILED           = "FAILED"
)

type Campaign struct {
	Id            uint32 `storm:"id,increment"`
	UserId        uint32 `storm:"index"`
	ContactListId uint32 `storm:"index"`
	TemplateId    uint32
	//MediaId is zero when the campaign sends plain text messages
	MediaId     uint32
	DefaultName string
	Status      string    `storm:"index"`
	ScheduledAt time.Time `storm:"index"`

	TotalContacts int
	SentCount     int
	FailedCount   int
	//LastContactIndex is the resume cursor, nil unless the campaign is mid-run or paused
	LastContactIndex *int
	StartedAt        *time.Time
	CompletedAt      *time.Time

	CreatedAt time.Time `storm:"index"`
}
