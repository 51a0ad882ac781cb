package app

import (
	"context"

	"github.com/iudanet/contactdesk/internal/models"
)

// Action операция, которую можно передать в App.Dispatch.
// Набор действий закрыт: реализации есть только в этом пакете.
type Action interface {
	dispatch(ctx context.Context, a *App) *Pending
}

// FetchContacts загружает все контакты. Результат: []models.Contact
type FetchContacts struct{}

// CreateContact создает контакт. Результат: models.Contact с ID от сервера
type CreateContact struct {
	Draft models.ContactDraft
}

// UpdateContact заменяет контакт с Contact.ID. Результат: models.Contact
type UpdateContact struct {
	Contact models.Contact
}

// DeleteContact удаляет контакт. Результат: int64 (ID)
type DeleteContact struct {
	ID int64
}

// GetContact читает один контакт, не изменяя коллекцию. Результат: models.Contact
type GetContact struct {
	ID int64
}

// FetchCompanies загружает все компании. Результат: []models.Company
type FetchCompanies struct{}

// CreateCompany создает компанию. Результат: models.Company с ID от сервера
type CreateCompany struct {
	Draft models.CompanyDraft
}

// UpdateCompany заменяет компанию с Company.ID. Результат: models.Company
type UpdateCompany struct {
	Company models.Company
}

// DeleteCompany удаляет компанию. Результат: int64 (ID).
// Закешированные контакты компании не трогаются.
type DeleteCompany struct {
	ID int64
}

// GetCompany читает одну компанию, не изменяя коллекцию. Результат: models.Company
type GetCompany struct {
	ID int64
}

func (FetchContacts) dispatch(ctx context.Context, a *App) *Pending {
	return wrap(a.contacts.StartFetchAll(ctx))
}

func (act CreateContact) dispatch(ctx context.Context, a *App) *Pending {
	return wrap(a.contacts.StartCreate(ctx, act.Draft))
}

func (act UpdateContact) dispatch(ctx context.Context, a *App) *Pending {
	return wrap(a.contacts.StartUpdate(ctx, act.Contact))
}

func (act DeleteContact) dispatch(ctx context.Context, a *App) *Pending {
	return wrap(a.contacts.StartDelete(ctx, act.ID))
}

func (act GetContact) dispatch(ctx context.Context, a *App) *Pending {
	return run(func() (any, error) {
		return a.contacts.Get(context.WithoutCancel(ctx), act.ID)
	})
}

func (FetchCompanies) dispatch(ctx context.Context, a *App) *Pending {
	return wrap(a.companies.StartFetchAll(ctx))
}

func (act CreateCompany) dispatch(ctx context.Context, a *App) *Pending {
	return wrap(a.companies.StartCreate(ctx, act.Draft))
}

func (act UpdateCompany) dispatch(ctx context.Context, a *App) *Pending {
	return wrap(a.companies.StartUpdate(ctx, act.Company))
}

func (act DeleteCompany) dispatch(ctx context.Context, a *App) *Pending {
	return wrap(a.companies.StartDelete(ctx, act.ID))
}

func (act GetCompany) dispatch(ctx context.Context, a *App) *Pending {
	return run(func() (any, error) {
		return a.companies.Get(context.WithoutCancel(ctx), act.ID)
	})
}
