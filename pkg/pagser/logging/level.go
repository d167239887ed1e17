package logging

import (
	"bytes"
	"strings"
)

// Level represents different logging levels.
type Level int

const (
	DEBUG Level = iota + 1
	INFO
	NOTICE
	WARN
	ERROR
	FATAL
)

const (
	redColor    = 160
	yellowColor = 220
	blueColor   = 6
	normalColor = 8
)

// String constants for logging levels.
const (
	levelDEBUG  = "DEBUG"
	levelINFO   = "INFO"
	levelNOTICE = "NOTICE"
	levelWARN   = "WARN"
	levelERROR  = "ERROR"
	levelFATAL  = "FATAL"
)

//nolint:gochecknoglobals // levels are read-only lookup tables
var levelNames = map[Level]string{
	DEBUG:  levelDEBUG,
	INFO:   levelINFO,
	NOTICE: levelNOTICE,
	WARN:   levelWARN,
	ERROR:  levelERROR,
	FATAL:  levelFATAL,
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}

	return ""
}

func (l Level) color() uint {
	switch l {
	case ERROR, FATAL:
		return redColor
	case WARN, NOTICE:
		return yellowColor
	case INFO:
		return blueColor
	case DEBUG:
		return normalColor
	default:
		return normalColor
	}
}

func (l Level) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBufferString(`"`)
	buf.WriteString(l.String())
	buf.WriteString(`"`)

	return buf.Bytes(), nil
}

// GetLevelFromString converts a string to a logging level. Unknown values map to INFO.
func GetLevelFromString(level string) Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case levelDEBUG:
		return DEBUG
	case levelINFO:
		return INFO
	case levelNOTICE:
		return NOTICE
	case levelWARN:
		return WARN
	case levelERROR:
		return ERROR
	case levelFATAL:
		return FATAL
	default:
		return INFO
	}
}
