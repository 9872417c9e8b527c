package dorm

import (
	"log/slog"

	"dormitory-management-system/internal/global/logger"
)

var log *slog.Logger

type ModuleDorm struct{}

func (d *ModuleDorm) GetName() string {
	return "Dorm"
}

func (d *ModuleDorm) Init() {
	log = logger.New("Dorm")
}
