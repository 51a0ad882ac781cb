package models

// Company представляет компанию.
type Company struct {
	Name string `json:"name"` // Name название компании (уникально на сервере)
	ID   int64  `json:"id"`   // ID присваивается сервером при создании
}

// CompanyDraft представляет компанию до создания на сервере (без ID)
type CompanyDraft struct {
	Name string `json:"name"`
}

// EntityID возвращает ID компании
func (c Company) EntityID() int64 { return c.ID }

// EntityName возвращает название компании
func (c Company) EntityName() string { return c.Name }

// Draft возвращает данные компании без ID
func (c Company) Draft() CompanyDraft {
	return CompanyDraft{Name: c.Name}
}

// WithID собирает компанию из черновика и ID, выданного сервером
func (d CompanyDraft) WithID(id int64) Company {
	return Company{ID: id, Name: d.Name}
}
