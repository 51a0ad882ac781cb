package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/iudanet/contactdesk/internal/models"
	"github.com/iudanet/contactdesk/internal/server/storage"
	"github.com/iudanet/contactdesk/internal/validation"
	"github.com/iudanet/contactdesk/pkg/api"
)

const contactsPath = "/" + api.CollectionContacts

// Contacts обрабатывает /contacts
type Contacts struct {
	Store        storage.ContactStorage
	ErrorHandler func(context.Context, error)
}

// ContactModel представление контакта в API.
// Company заполняется сервером в ответах, в запросах игнорируется.
type ContactModel struct {
	Company   *CompanyModel `json:"company,omitempty"    readOnly:"true" doc:"resolved company, absent for none"`
	Name      string        `json:"name"                 example:"Jane Doe"`
	Phone     string        `json:"phone"                example:"+1 555 0100"`
	City      string        `json:"city,omitempty"       example:"New York"`
	ID        int64         `json:"id,omitempty"         readOnly:"true"`
	CompanyID int64         `json:"company_id,omitempty" doc:"ID of the company, 0 or absent for none" minimum:"0"`
}

func newContactModel(c models.Contact, companies map[int64]models.Company) ContactModel {
	m := ContactModel{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		City:      c.City,
		CompanyID: c.CompanyID,
	}
	if company, ok := companies[c.CompanyID]; ok && c.HasCompany() {
		cm := newCompanyModel(company)
		m.Company = &cm
	}
	return m
}

// toModels подставляет в контакты их компании
func (h *Contacts) toModels(ctx context.Context, contacts ...models.Contact) ([]ContactModel, error) {
	ids := make([]int64, 0, len(contacts))
	for _, contact := range contacts {
		if contact.HasCompany() {
			ids = append(ids, contact.ID)
		}
	}

	companies, err := h.Store.ContactCompanies(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]ContactModel, 0, len(contacts))
	for _, contact := range contacts {
		result = append(result, newContactModel(contact, companies))
	}
	return result, nil
}

func (h *Contacts) output(ctx context.Context, contact models.Contact) (*ContactOutput, error) {
	body, err := h.toModels(ctx, contact)
	if err != nil {
		return nil, err
	}
	return &ContactOutput{Body: body[0]}, nil
}

func (m ContactModel) draft() models.ContactDraft {
	return models.ContactDraft{
		Name:      m.Name,
		Phone:     m.Phone,
		City:      m.City,
		CompanyID: m.CompanyID,
	}
}

func (m ContactModel) validate() error {
	return validationError(
		validation.ValidateName(m.Name),
		validation.ValidatePhone(m.Phone),
		validation.ValidateCity(m.City),
		validation.ValidateCompanyID(m.CompanyID),
	)
}

// contactError переводит ошибки хранилища в ответы API
func contactError(err error) error {
	switch {
	case errors.Is(err, storage.ErrContactNotFound):
		return huma.Error404NotFound("Contact not found", err)
	case errors.Is(err, storage.ErrInvalidCompany):
		return huma.Error422UnprocessableEntity("Company not found", err)
	default:
		return err
	}
}

func (h *Contacts) RegisterList(api huma.API) { // called by [huma.AutoRegister]
	huma.Get(api, contactsPath,
		handlerWithErrorHandler(h.list, h.ErrorHandler),
		opErrors(http.StatusUnprocessableEntity, http.StatusInternalServerError),
	)
}

// ContactsListOutput ответ со списком контактов
type ContactsListOutput struct {
	Body []ContactModel
}

func (h *Contacts) list(ctx context.Context, input *ListInput) (*ContactsListOutput, error) {
	contacts, err := h.Store.ListContacts(ctx, input.Query())
	if err != nil {
		return nil, err
	}

	body, err := h.toModels(ctx, contacts...)
	if err != nil {
		return nil, err
	}

	return &ContactsListOutput{Body: body}, nil
}

// ContactOutput ответ с одним контактом
type ContactOutput struct {
	Body ContactModel
}

func (h *Contacts) RegisterGet(api huma.API) { // called by [huma.AutoRegister]
	huma.Get(api, contactsPath+"/{id}",
		handlerWithErrorHandler(h.get, h.ErrorHandler),
		opErrors(http.StatusNotFound, http.StatusInternalServerError),
	)
}

func (h *Contacts) get(ctx context.Context, input *IDInput) (*ContactOutput, error) {
	contact, err := h.Store.GetContact(ctx, input.ID)
	if err != nil {
		return nil, contactError(err)
	}
	return h.output(ctx, contact)
}

func (h *Contacts) RegisterCreate(api huma.API) { // called by [huma.AutoRegister]
	huma.Post(api, contactsPath,
		handlerWithErrorHandler(h.create, h.ErrorHandler),
		opStatus(http.StatusCreated),
		opErrors(http.StatusUnprocessableEntity, http.StatusInternalServerError),
	)
}

func (h *Contacts) create(ctx context.Context, input *struct {
	Body ContactModel
}) (*ContactOutput, error) {
	if err := input.Body.validate(); err != nil {
		return nil, err
	}

	contact, err := h.Store.CreateContact(ctx, input.Body.draft())
	if err != nil {
		return nil, contactError(err)
	}
	return h.output(ctx, contact)
}

func (h *Contacts) RegisterUpdate(api huma.API) { // called by [huma.AutoRegister]
	huma.Put(api, contactsPath+"/{id}",
		handlerWithErrorHandler(h.update, h.ErrorHandler),
		opErrors(http.StatusNotFound, http.StatusUnprocessableEntity, http.StatusInternalServerError),
	)
}

func (h *Contacts) update(ctx context.Context, input *struct {
	Body ContactModel
	ID   int64 `path:"id" doc:"ID of the contact to update" minimum:"1"`
}) (*ContactOutput, error) {
	if err := input.Body.validate(); err != nil {
		return nil, err
	}

	// ID берется из пути, ID в теле игнорируется
	contact, err := h.Store.UpdateContact(ctx, input.Body.draft().WithID(input.ID))
	if err != nil {
		return nil, contactError(err)
	}
	return h.output(ctx, contact)
}

func (h *Contacts) RegisterDelete(api huma.API) { // called by [huma.AutoRegister]
	huma.Delete(api, contactsPath+"/{id}",
		handlerWithErrorHandler(h.del, h.ErrorHandler),
		opErrors(http.StatusNotFound, http.StatusInternalServerError),
	)
}

// DeleteOutput ответ на удаление
type DeleteOutput struct {
	Body api.DeleteResponse
}

func (h *Contacts) del(ctx context.Context, input *IDInput) (*DeleteOutput, error) {
	if err := h.Store.DeleteContact(ctx, input.ID); err != nil {
		return nil, contactError(err)
	}
	return &DeleteOutput{Body: api.DeleteResponse{
		ID:      input.ID,
		Message: "Contact successfully deleted",
	}}, nil
}
