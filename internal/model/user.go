package model

import (
	"time"
)

// User 用户模型
// 同一结构既作为本地持久存储中的JSON记录，也作为镜像库中的user表
// ID 为字符串：远端真实用户为UUID，本地演示用户为任意非UUID字符串
// ProfileCompleted 标记资料是否已完善：未完善的用户只能进入资料设置页
type User struct {
	ID               string    `json:"id" gorm:"type:varchar(64);primaryKey"`
	Name             string    `json:"name" gorm:"type:varchar(64)"`
	Email            string    `json:"email" gorm:"type:varchar(128);index"`
	Username         string    `json:"username" gorm:"type:varchar(64)"`
	Avatar           string    `json:"avatar" gorm:"type:varchar(255)"`
	Skills           []string  `json:"skills" gorm:"serializer:json;type:text"`
	LearningGoals    []string  `json:"learningGoals" gorm:"serializer:json;type:text"`
	Bio              string    `json:"bio" gorm:"type:text"`
	Location         string    `json:"location" gorm:"type:varchar(128)"`
	Linkedin         string    `json:"linkedin" gorm:"type:varchar(255)"`
	Github           string    `json:"github" gorm:"type:varchar(255)"`
	Portfolio        string    `json:"portfolio" gorm:"type:varchar(255)"`
	Experience       string    `json:"experience" gorm:"type:varchar(128)"`
	Education        string    `json:"education" gorm:"type:varchar(128)"`
	CurrentRole      string    `json:"currentRole" gorm:"type:varchar(128)"`
	ProfileCompleted bool      `json:"profileCompleted" gorm:"default:false"`
	PasswordHash     string    `json:"-" gorm:"type:varchar(255)"` // 仅存哈希，本地JSON不落盘
	CreatedAt        time.Time `json:"-"`
	UpdatedAt        time.Time `json:"-"`
}

// TableName 指定表名（镜像库使用单数表名）
func (User) TableName() string { return "user" }

// UserUpdate 部分字段更新
// nil 指针表示不修改该字段；切片为 nil 表示不修改
type UserUpdate struct {
	Name          *string  `json:"name"`
	Username      *string  `json:"username"`
	Avatar        *string  `json:"avatar"`
	Skills        []string `json:"skills"`
	LearningGoals []string `json:"learningGoals"`
	Bio           *string  `json:"bio"`
	Location      *string  `json:"location"`
	Linkedin      *string  `json:"linkedin"`
	Github        *string  `json:"github"`
	Portfolio     *string  `json:"portfolio"`
	Experience    *string  `json:"experience"`
	Education     *string  `json:"education"`
	CurrentRole   *string  `json:"currentRole"`
}

// Apply 把部分更新合并进用户记录
func (u *User) Apply(upd UserUpdate) {
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.Avatar != nil {
		u.Avatar = *upd.Avatar
	}
	if upd.Skills != nil {
		u.Skills = upd.Skills
	}
	if upd.LearningGoals != nil {
		u.LearningGoals = upd.LearningGoals
	}
	if upd.Bio != nil {
		u.Bio = *upd.Bio
	}
	if upd.Location != nil {
		u.Location = *upd.Location
	}
	if upd.Linkedin != nil {
		u.Linkedin = *upd.Linkedin
	}
	if upd.Github != nil {
		u.Github = *upd.Github
	}
	if upd.Portfolio != nil {
		u.Portfolio = *upd.Portfolio
	}
	if upd.Experience != nil {
		u.Experience = *upd.Experience
	}
	if upd.Education != nil {
		u.Education = *upd.Education
	}
	if upd.CurrentRole != nil {
		u.CurrentRole = *upd.CurrentRole
	}
}

// Clone 返回用户记录的副本（切片深拷贝，订阅者拿到的快照不可被外部篡改）
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Skills = append([]string(nil), u.Skills...)
	c.LearningGoals = append([]string(nil), u.LearningGoals...)
	return &c
}
