package api

// Имена коллекций, они же сегменты пути REST API
const (
	CollectionContacts  = "contacts"
	CollectionCompanies = "companies"
)

// ErrorResponse представляет тело ответа с ошибкой.
// Покрывает RFC 9457 (huma), FastAPI ({"detail": ...}) и простой {"message": ...}
type ErrorResponse struct {
	Title   string `json:"title,omitempty"`   // краткое описание статуса
	Detail  string `json:"detail,omitempty"`  // подробное описание ошибки
	Message string `json:"message,omitempty"` // альтернативное поле с сообщением
	Status  int    `json:"status,omitempty"`  // HTTP статус, продублированный в теле
}

// Reason возвращает наиболее информативное сообщение из тела ошибки
func (e ErrorResponse) Reason() string {
	switch {
	case e.Detail != "":
		return e.Detail
	case e.Message != "":
		return e.Message
	default:
		return e.Title
	}
}

// DeleteResponse представляет ответ на удаление сущности
type DeleteResponse struct {
	Message string `json:"message"` // сообщение об успешном удалении
	ID      int64  `json:"id"`      // ID удаленной сущности
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
