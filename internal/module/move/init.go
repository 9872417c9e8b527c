package move

import (
	"log/slog"

	"dormitory-management-system/internal/global/logger"
)

var log *slog.Logger

type ModuleMove struct{}

func (m *ModuleMove) GetName() string {
	return "Move"
}

func (m *ModuleMove) Init() {
	log = logger.New("Move")
}
