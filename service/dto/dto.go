package dto

import "time"

type Id struct {
	Id uint32 `json:"id"`
}

type Campaign struct {
	UserId        uint32 `json:"userId"`
	ContactListId uint32 `json:"contactListId"`
	TemplateId    uint32 `json:"templateId"`
	MediaId       uint32 `json:"mediaId,omitempty"`
	DefaultName   string `json:"defaultName"`
	//ScheduledAt is an RFC3339 timestamp
	ScheduledAt string `json:"scheduledAt"`
}

type CampaignStatus struct {
	Id               uint32     `json:"id"`
	Status           string     `json:"status"`
	TotalContacts    int        `json:"totalContacts"`
	SentCount        int        `json:"sentCount"`
	FailedCount      int        `json:"failedCount"`
	LastContactIndex *int       `json:"lastContactIndex,omitempty"`
	ScheduledAt      time.Time  `json:"scheduledAt"`
	StartedAt        *time.Time `json:"startedAt,omitempty"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
}

type Contact struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
}

type ContactList struct {
	UserId   uint32    `json:"userId"`
	Name     string    `json:"name"`
	Contacts []Contact `json:"contacts"`
}

type Template struct {
	UserId uint32 `json:"userId"`
	Name   string `json:"name"`
	Text   string `json:"text"`
}

type Media struct {
	UserId   uint32 `json:"userId"`
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
	Path     string `json:"path"`
}

type Session struct {
	UserId    uint32 `json:"userId"`
	SessionId string `json:"sessionId"`
}
