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

const companiesPath = "/" + api.CollectionCompanies

// Companies обрабатывает /companies.
// Удаление компании удаляет и ее контакты.
type Companies struct {
	Store        storage.CompanyStorage
	ErrorHandler func(context.Context, error)
}

// CompanyModel представление компании в API
type CompanyModel struct {
	Name string `json:"name"         example:"Acme Corp" doc:"unique company name"`
	ID   int64  `json:"id,omitempty" readOnly:"true"`
}

func newCompanyModel(c models.Company) CompanyModel {
	return CompanyModel{ID: c.ID, Name: c.Name}
}

func companyError(err error) error {
	switch {
	case errors.Is(err, storage.ErrCompanyNotFound):
		return huma.Error404NotFound("Company not found", err)
	case errors.Is(err, storage.ErrCompanyExists):
		return huma.Error409Conflict("Company with this name already exists", err)
	default:
		return err
	}
}

func (h *Companies) RegisterList(api huma.API) { // called by [huma.AutoRegister]
	huma.Get(api, companiesPath,
		handlerWithErrorHandler(h.list, h.ErrorHandler),
		opErrors(http.StatusUnprocessableEntity, http.StatusInternalServerError),
	)
}

// CompaniesListOutput ответ со списком компаний
type CompaniesListOutput struct {
	Body []CompanyModel
}

func (h *Companies) list(ctx context.Context, input *ListInput) (*CompaniesListOutput, error) {
	companies, err := h.Store.ListCompanies(ctx, input.Query())
	if err != nil {
		return nil, err
	}

	body := make([]CompanyModel, 0, len(companies))
	for _, company := range companies {
		body = append(body, newCompanyModel(company))
	}

	return &CompaniesListOutput{Body: body}, nil
}

// CompanyOutput ответ с одной компанией
type CompanyOutput struct {
	Body CompanyModel
}

func (h *Companies) RegisterGet(api huma.API) { // called by [huma.AutoRegister]
	huma.Get(api, companiesPath+"/{id}",
		handlerWithErrorHandler(h.get, h.ErrorHandler),
		opErrors(http.StatusNotFound, http.StatusInternalServerError),
	)
}

func (h *Companies) get(ctx context.Context, input *IDInput) (*CompanyOutput, error) {
	company, err := h.Store.GetCompany(ctx, input.ID)
	if err != nil {
		return nil, companyError(err)
	}
	return &CompanyOutput{Body: newCompanyModel(company)}, nil
}

func (h *Companies) RegisterCreate(api huma.API) { // called by [huma.AutoRegister]
	huma.Post(api, companiesPath,
		handlerWithErrorHandler(h.create, h.ErrorHandler),
		opStatus(http.StatusCreated),
		opErrors(http.StatusConflict, http.StatusUnprocessableEntity, http.StatusInternalServerError),
	)
}

func (h *Companies) create(ctx context.Context, input *struct {
	Body CompanyModel
}) (*CompanyOutput, error) {
	if err := validationError(validation.ValidateName(input.Body.Name)); err != nil {
		return nil, err
	}

	company, err := h.Store.CreateCompany(ctx, models.CompanyDraft{Name: input.Body.Name})
	if err != nil {
		return nil, companyError(err)
	}
	return &CompanyOutput{Body: newCompanyModel(company)}, nil
}

func (h *Companies) RegisterUpdate(api huma.API) { // called by [huma.AutoRegister]
	huma.Put(api, companiesPath+"/{id}",
		handlerWithErrorHandler(h.update, h.ErrorHandler),
		opErrors(http.StatusNotFound, http.StatusConflict, http.StatusUnprocessableEntity, http.StatusInternalServerError),
	)
}

func (h *Companies) update(ctx context.Context, input *struct {
	Body CompanyModel
	ID   int64 `path:"id" doc:"ID of the company to update" minimum:"1"`
}) (*CompanyOutput, error) {
	if err := validationError(validation.ValidateName(input.Body.Name)); err != nil {
		return nil, err
	}

	company, err := h.Store.UpdateCompany(ctx, models.Company{ID: input.ID, Name: input.Body.Name})
	if err != nil {
		return nil, companyError(err)
	}
	return &CompanyOutput{Body: newCompanyModel(company)}, nil
}

func (h *Companies) RegisterDelete(api huma.API) { // called by [huma.AutoRegister]
	huma.Delete(api, companiesPath+"/{id}",
		handlerWithErrorHandler(h.del, h.ErrorHandler),
		opErrors(http.StatusNotFound, http.StatusInternalServerError),
	)
}

func (h *Companies) del(ctx context.Context, input *IDInput) (*DeleteOutput, error) {
	if err := h.Store.DeleteCompany(ctx, input.ID); err != nil {
		return nil, companyError(err)
	}
	return &DeleteOutput{Body: api.DeleteResponse{
		ID:      input.ID,
		Message: "Company successfully deleted",
	}}, nil
}
