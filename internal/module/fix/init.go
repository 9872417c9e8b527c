package fix

import (
	"log/slog"

	"dormitory-management-system/internal/global/logger"
)

var log *slog.Logger

type ModuleFix struct{}

func (f *ModuleFix) GetName() string {
	return "Fix"
}

func (f *ModuleFix) Init() {
	log = logger.New("Fix")
}
