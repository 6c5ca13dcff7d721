package model

import "time"

// Session links a user to their connection on the messaging gateway.
// Business fields are owned by the gateway side, this service only reads them.
type Session struct {
	Id        uint32 `storm:"id,increment"`
	UserId    uint32 `storm:"unique"`
	SessionId string
	//Status is the last health state reported by the gateway, informational only
	Status string

	CreatedAt time.Time `storm:"index"`
}
