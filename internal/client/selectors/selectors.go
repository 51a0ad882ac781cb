// Package selectors содержит чистые функции чтения поверх снимков коллекций.
// Функции пересчитываются при каждом вызове и не изменяют входные данные.
package selectors

import (
	"github.com/iudanet/contactdesk/internal/models"
)

// Unresolved - подпись контакта без найденной компании
const Unresolved = "N/A"

// AllCompaniesLabel - подпись пункта "все компании" в списке выбора
const AllCompaniesLabel = "All Companies"

// FilterByName возвращает элементы, имя которых содержит query без учета
// регистра. Пустой query возвращает вход без изменений и в том же порядке.
func FilterByName[T models.Named](items []T, query string) []T {
	if query == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if models.NameMatches(item.EntityName(), query) {
			out = append(out, item)
		}
	}
	return out
}

// FilterByCompany возвращает контакты компании companyID.
// models.NoCompany (0) совпадает со всеми контактами.
func FilterByCompany(contacts []models.Contact, companyID int64) []models.Contact {
	if companyID == models.NoCompany {
		return contacts
	}
	out := make([]models.Contact, 0, len(contacts))
	for _, c := range contacts {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	return out
}

// Resolution результат поиска компании контакта.
// Resolved == false означает, что компания не найдена; это не ошибка.
type Resolution struct {
	Company  models.Company
	Resolved bool
}

// Label возвращает имя компании или "N/A"
func (r Resolution) Label() string {
	if !r.Resolved {
		return Unresolved
	}
	return r.Company.Name
}

// ResolveCompany ищет компанию контакта линейным проходом по companies
func ResolveCompany(contact models.Contact, companies []models.Company) Resolution {
	if !contact.HasCompany() {
		return Resolution{}
	}
	for _, company := range companies {
		if company.ID == contact.CompanyID {
			return Resolution{Company: company, Resolved: true}
		}
	}
	return Resolution{}
}

// Row строка дашборда: контакт и его компания
type Row struct {
	Company Resolution
	Contact models.Contact
}

// Dashboard возвращает строки дашборда: контакты, прошедшие фильтр по имени
// и по компании, с найденными компаниями
func Dashboard(contacts []models.Contact, companies []models.Company, query string, companyID int64) []Row {
	filtered := FilterByCompany(FilterByName(contacts, query), companyID)

	rows := make([]Row, 0, len(filtered))
	for _, c := range filtered {
		rows = append(rows, Row{
			Contact: c,
			Company: ResolveCompany(c, companies),
		})
	}
	return rows
}

// Option пункт списка выбора компании
type Option struct {
	Label string
	ID    int64
}

// CompanyOptions возвращает список выбора компании: первым идет
// пункт "All Companies" с ID 0, затем компании в исходном порядке
func CompanyOptions(companies []models.Company) []Option {
	out := make([]Option, 0, len(companies)+1)
	out = append(out, Option{ID: models.NoCompany, Label: AllCompaniesLabel})
	for _, c := range companies {
		out = append(out, Option{ID: c.ID, Label: c.Name})
	}
	return out
}

// FindByID возвращает первый элемент с указанным ID
func FindByID[T models.Entity](items []T, id int64) (T, bool) {
	for _, item := range items {
		if item.EntityID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}
