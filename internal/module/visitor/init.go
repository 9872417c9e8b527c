package visitor

import (
	"log/slog"

	"dormitory-management-system/internal/global/logger"
)

var log *slog.Logger

type ModuleVisitor struct{}

func (v *ModuleVisitor) GetName() string {
	return "Visitor"
}

func (v *ModuleVisitor) Init() {
	log = logger.New("Visitor")
}
