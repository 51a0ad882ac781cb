package models

// Contact представляет контакт.
// CompanyID ссылается на Company, но целостность ссылки клиентом не проверяется:
// компания может отсутствовать в локальном кеше.
type Contact struct {
	Name      string `json:"name"`                 // Name имя контакта
	Phone     string `json:"phone"`                // Phone телефон
	City      string `json:"city,omitempty"`       // City опциональный город
	ID        int64  `json:"id"`                   // ID присваивается сервером при создании
	CompanyID int64  `json:"company_id,omitempty"` // CompanyID ID компании, 0 не отправляется
}

// ContactDraft представляет контакт до создания на сервере (без ID)
type ContactDraft struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	City      string `json:"city,omitempty"`
	CompanyID int64  `json:"company_id,omitempty"`
}

// EntityID возвращает ID контакта
func (c Contact) EntityID() int64 { return c.ID }

// EntityName возвращает имя контакта
func (c Contact) EntityName() string { return c.Name }

// HasCompany сообщает, привязан ли контакт к компании
func (c Contact) HasCompany() bool { return c.CompanyID != NoCompany }

// Draft возвращает данные контакта без ID
func (c Contact) Draft() ContactDraft {
	return ContactDraft{
		Name:      c.Name,
		Phone:     c.Phone,
		City:      c.City,
		CompanyID: c.CompanyID,
	}
}

// WithID собирает контакт из черновика и ID, выданного сервером
func (d ContactDraft) WithID(id int64) Contact {
	return Contact{
		ID:        id,
		Name:      d.Name,
		Phone:     d.Phone,
		City:      d.City,
		CompanyID: d.CompanyID,
	}
}
