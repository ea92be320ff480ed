package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0
	// Лексические
	LexInvalidToken Code = 1001

	// Парсерные
	SynUnexpectedEOF     Code = 2001
	SynExpectedToken     Code = 2002
	SynExpectedConstruct Code = 2003
	SynExpectedEOF       Code = 2004

	// I/O
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002

	// Проектные
	PrjConfigError Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:          "Unknown error",
	LexInvalidToken:      "Invalid token",
	SynUnexpectedEOF:     "Unexpected end of file",
	SynExpectedToken:     "Expected token kind",
	SynExpectedConstruct: "Expected construct",
	SynExpectedEOF:       "Expected end of file",
	IOLoadFileError:      "I/O load file error",
	IOWriteFileError:     "I/O write file error",
	PrjConfigError:       "Project config error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
