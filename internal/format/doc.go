// Package format reindents PlantUML documents line by line to produce stable
// textual output without building a diagram model.
//
// Назначение: один прямой проход по строкам — глубина вложенности, схлопывание
// пустых строк, отступ depth*IndentWidth.
// Не делает: разбора PlantUML, валидации диаграмм, IO.
// Зависимости: internal/lexer, internal/token, internal/diag, internal/source.
package format
