package model

// Page 当前页面标识
// 控制器是唯一写入方，展示层只读
type Page string

const (
	PageLanding      Page = "landing"       // 未登录落地页
	PageProfileSetup Page = "profile-setup" // 资料完善页（登录后资料未完善时强制进入）
	PageDashboard    Page = "dashboard"     // 登录后主页面
)
