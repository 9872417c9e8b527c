package module

import (
	"dormitory-management-system/internal/module/dorm"
	"dormitory-management-system/internal/module/fix"
	"dormitory-management-system/internal/module/move"
	"dormitory-management-system/internal/module/ping"
	"dormitory-management-system/internal/module/room"
	"dormitory-management-system/internal/module/user"
	"dormitory-management-system/internal/module/visitor"

	"github.com/gin-gonic/gin"
)

type Module interface {
	GetName() string
	Init()
	InitRouter(r *gin.RouterGroup)
}

var Modules []Module

func registerModule(m []Module) {
	Modules = append(Modules, m...)
}

func init() {
	// Register your module here
	registerModule([]Module{
		&ping.ModulePing{},
		&user.ModuleUser{},
		&dorm.ModuleDorm{},
		&room.ModuleRoom{},
		&move.ModuleMove{},
		&fix.ModuleFix{},
		&visitor.ModuleVisitor{},
	})
}
