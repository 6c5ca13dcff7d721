package model

import "time"

type ContactList struct {
	Id        uint32 `storm:"id,increment"`
	UserId    uint32 `storm:"index"`
	Name      string
	CreatedAt time.Time `storm:"index"`
}

type Contact struct {
	Id        uint32 `storm:"id,increment"`
	ListId    uint32 `storm:"index"`
	Phone     string `storm:"index"`
	Name      string
	CreatedAt time.Time `storm:"index"`
}
