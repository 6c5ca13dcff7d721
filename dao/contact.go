package dao

import (
	"time"

	"github.com/adilet/campaign-sender/model"
)

type ContactListDao interface {
	//Create creates a contact list record and returns its id
	Create(userId uint32, name string) (uint32, error)
	//GetOneById returns a contact list by id
	GetOneById(id uint32) (model.ContactList, error)
}

type ContactDao interface {
	//Create creates a contact record in the given list and returns its id
	Create(listId uint32, phone, name string) (uint32, error)
	//GetAllByListId returns all contacts of the given list in insertion order
	GetAllByListId(listId uint32) ([]model.Contact, error)
	//CountByListId returns the number of contacts in the given list
	CountByListId(listId uint32) (int, error)
}

func NewContactListDao(db Db) ContactListDao {
	return &contactListDao{db: db}
}

type contactListDao struct {
	db Db
}

func (d contactListDao) Create(userId uint32, name string) (uint32, error) {
	list := &model.ContactList{UserId: userId, Name: name, CreatedAt: time.Now()}
	err := d.db.Save(list)
	return list.Id, err
}

func (d contactListDao) GetOneById(id uint32) (list model.ContactList, err error) {
	err = d.db.One("Id", id, &list)
	return
}

func NewContactDao(db Db) ContactDao {
	return &contactDao{db: db}
}

type contactDao struct {
	db Db
}

func (d contactDao) Create(listId uint32, phone, name string) (uint32, error) {
	contact := &model.Contact{ListId: listId, Phone: phone, Name: name, CreatedAt: time.Now()}
	err := d.db.Save(contact)
	return contact.Id, err
}

func (d contactDao) GetAllByListId(listId uint32) (contacts []model.Contact, err error) {
	err = d.db.Find("ListId", listId, &contacts)
	if err != nil && err.Error() == "not found" {
		return nil, nil
	}
	return
}

func (d contactDao) CountByListId(listId uint32) (int, error) {
	contacts, err := d.GetAllByListId(listId)
	if err != nil {
		return 0, err
	}
	return len(contacts), nil
}
