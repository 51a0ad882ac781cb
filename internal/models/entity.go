package models

import "strings"

// Entity описывает сущность, идентифицируемую сервером.
// ID присваивается только удаленной стороной, клиент его не генерирует.
type Entity interface {
	EntityID() int64
}

// Named описывает сущность с отображаемым именем
type Named interface {
	EntityName() string
}

// NoCompany - значение company_id "не выбрано / все компании"
const NoCompany int64 = 0

// NameMatches проверяет регистронезависимое вхождение query в name.
// Обе строки приводятся к нижнему регистру посимвольно, "ß" и "SS" не совпадают.
// Пустой query совпадает с любым именем.
func NameMatches(name, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(query))
}
