package dao

import (
	"time"

	"github.com/adilet/campaign-sender/model"
)

type TemplateDao interface {
	//Create creates a template record and returns its id
	Create(userId uint32, name, text string) (uint32, error)
	//GetOneById returns a template by id
	GetOneById(id uint32) (model.Template, error)
}

func NewTemplateDao(db Db) TemplateDao {
	return &templateDao{db: db}
}

type templateDao struct {
	db Db
}

func (d templateDao) Create(userId uint32, name, text string) (uint32, error) {
	tmpl := &model.Template{UserId: userId, Name: name, Text: text, CreatedAt: time.Now()}
	err := d.db.Save(tmpl)
	return tmpl.Id, err
}

func (d templateDao) GetOneById(id uint32) (tmpl model.Template, err error) {
	err = d.db.One("Id", id, &tmpl)
	return
}
