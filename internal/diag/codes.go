package diag

import "fmt"

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Форматтер
	FmtInfo           Code = 1000
	FmtUnmatchedClose Code = 1001
	FmtUnclosedBlock  Code = 1002
)

func (c Code) String() string {
	return fmt.Sprintf("FMT%04d", uint16(c))
}
