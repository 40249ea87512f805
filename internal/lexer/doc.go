// Package lexer classifies single lines of PlantUML source and normalizes
// their symbol spacing.
//
// Назначение: построчный классификатор (открытие/закрытие/ветка блока) и
// нормализация пробелов вокруг стрелок и разделителя-двоеточия.
// Не делает: разбора диаграммы в AST, валидации, IO.
// Зависимости: internal/token.
package lexer
