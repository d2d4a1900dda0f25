package telegram

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// botLogger routes tgbotapi output into the global zerolog logger.
type botLogger struct{}

func (botLogger) Println(v ...interface{}) {
	log.Debug().Str("component", "tgbotapi").Msg(fmt.Sprint(v...))
}

func (botLogger) Printf(format string, v ...interface{}) {
	log.Debug().Str("component", "tgbotapi").Msgf(format, v...)
}
