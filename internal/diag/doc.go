// Package diag carries formatter diagnostics.
//
// Назначение: предупреждения о несбалансированных блоках с номерами строк.
// Не делает: ошибок формата — форматирование всегда best-effort и не падает
// на кривой вложенности.
// Зависимости: только stdlib.
package diag
