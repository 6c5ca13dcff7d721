package model

import "time"

type Template struct {
	Id     uint32 `storm:"id,increment"`
	UserId uint32 `storm:"index"`
	Name   string
	//Text holds the message body with a single name placeholder, e.g. "Hello {name}!"
	Text      string
	CreatedAt time.Time `storm:"index"`
}
