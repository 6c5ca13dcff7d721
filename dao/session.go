package dao

import (
	"time"

	"github.com/adilet/campaign-sender/model"
)

type SessionDao interface {
	//Upsert creates or replaces the session record of the given user and returns its id
	Upsert(userId uint32, sessionId string) (uint32, error)
	//GetOneByUserId returns the session record of the given user
	GetOneByUserId(userId uint32) (model.Session, error)
	//UpdateStatus stores the last health state reported by the gateway
	UpdateStatus(userId uint32, status string) error
}

func NewSessionDao(db Db) SessionDao {
	return &sessionDao{db: db}
}

type sessionDao struct {
	db Db
}

func (d sessionDao) Upsert(userId uint32, sessionId string) (uint32, error) {
	var session model.Session
	err := d.db.One("UserId", userId, &session)
	if err != nil {
		if err.Error() != "not found" {
			return 0, err
		}
		session = model.Session{UserId: userId, SessionId: sessionId, CreatedAt: time.Now()}
		err = d.db.Save(&session)
		return session.Id, err
	}
	session.SessionId = sessionId
	err = d.db.Save(&session)
	return session.Id, err
}

func (d sessionDao) GetOneByUserId(userId uint32) (session model.Session, err error) {
	err = d.db.One("UserId", userId, &session)
	return
}

func (d sessionDao) UpdateStatus(userId uint32, status string) error {
	var session model.Session
	err := d.db.One("UserId", userId, &session)
	if err != nil {
		return err
	}
	session.Status = status
	return d.db.Save(&session)
}
