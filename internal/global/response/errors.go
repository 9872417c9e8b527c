package response

// 错误码表：4xxxx 为请求方问题，5xxxx 为服务端问题
// 消息直接面向前端展示，保持与原系统一致的中文提示
var (
	ErrInvalidRequest  = newError(40001, "请求参数错误")
	ErrInvalidPassword = newError(40002, "用户名或密码错误!")
	ErrTokenInvalid    = newError(40101, "登录状态无效，请重新登录")
	ErrUnauthorized    = newError(40102, "权限不足")
	ErrForbidden       = newError(40301, "无权操作该资源")
	ErrNotFound        = newError(40401, "资源不存在")
	ErrDuplicate       = newError(40901, "编号已存在！添加失败")

	// 宿舍业务错误
	ErrRoomFull       = newError(42201, "房间床位不足！")
	ErrRoomOccupied   = newError(42202, "房间内有学生，无法删除！")
	ErrSpacesTooSmall = newError(42203, "床位数不足，修改失败！")
	ErrInvalidLevel   = newError(42204, "楼层数不足！添加失败")
	ErrInvalidSpaces  = newError(42205, "床位数应为正整数！添加失败")
	ErrMovePending    = newError(42206, "您有未审核处理的转宿申请，请等待处理！")
	ErrMoveResolved   = newError(42207, "该申请已处理，不能重复操作")
	ErrFixResolved    = newError(42208, "该报修已处理")
	ErrVisitorLeft    = newError(42209, "访客已登记离开")

	ErrDatabase = newError(50001, "出现错误，操作失败！")
)
