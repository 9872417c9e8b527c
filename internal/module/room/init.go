package room

import (
	"log/slog"

	"dormitory-management-system/internal/global/logger"
)

var log *slog.Logger

type ModuleRoom struct{}

func (r *ModuleRoom) GetName() string {
	return "Room"
}

func (r *ModuleRoom) Init() {
	log = logger.New("Room")
}
