package dao

import (
	"time"

	"github.com/adilet/campaign-sender/model"
)

type MediaDao interface {
	//Create creates a media record pointing at a file on disk and returns its id
	Create(userId uint32, fileName, mimeType, path string) (uint32, error)
	//GetOneById returns a media record by id
	GetOneById(id uint32) (model.Media, error)
}

func NewMediaDao(db Db) MediaDao {
	return &mediaDao{db: db}
}

type mediaDao struct {
	db Db
}

func (d mediaDao) Create(userId uint32, fileName, mimeType, path string) (uint32, error) {
	media := &model.Media{UserId: userId, FileName: fileName, MimeType: mimeType, Path: path, CreatedAt: time.Now()}
	err := d.db.Save(media)
	return media.Id, err
}

func (d mediaDao) GetOneById(id uint32) (media model.Media, err error) {
	err = d.db.One("Id", id, &media)
	return
}
