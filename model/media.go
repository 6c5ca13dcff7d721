package model

import "time"

type Media struct {
	Id       uint32 `storm:"id,increment"`
	UserId   uint32 `storm:"index"`
	FileName string
	MimeType string
	//Path points at the uploaded file on local disk
	Path      string
	CreatedAt time.Time `storm:"index"`
}
