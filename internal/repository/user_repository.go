package repository

import (
	"skill-exchange/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository 镜像库用户仓储
type UserRepository struct {
	orm *gorm.DB
}

// NewUserRepository 创建UserRepository实例
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{orm: db}
}

// Upsert 按ID插入或整体更新用户资料
func (r *UserRepository) Upsert(user *model.User) error {
	return r.orm.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(user).Error
}

// GetByID 根据ID获取用户
func (r *UserRepository) GetByID(id string) (*model.User, error) {
	var u model.User
	if err := r.orm.First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail 根据邮箱获取用户
func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var u model.User
	if err := r.orm.First(&u, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateFields 部分字段更新
// profileCompleted 非nil时同时更新完善标记
func (r *UserRepository) UpdateFields(id string, upd model.UserUpdate, profileCompleted *bool) error {
	values := map[string]interface{}{}

	if upd.Name != nil {
		values["name"] = *upd.Name
	}
	if upd.Username != nil {
		values["username"] = *upd.Username
	}
	if upd.Avatar != nil {
		values["avatar"] = *upd.Avatar
	}
	if upd.Skills != nil {
		values["skills"] = marshalJSON(upd.Skills)
	}
	if upd.LearningGoals != nil {
		values["learning_goals"] = marshalJSON(upd.LearningGoals)
	}
	if upd.Bio != nil {
		values["bio"] = *upd.Bio
	}
	if upd.Location != nil {
		values["location"] = *upd.Location
	}
	if upd.Linkedin != nil {
		values["linkedin"] = *upd.Linkedin
	}
	if upd.Github != nil {
		values["github"] = *upd.Github
	}
	if upd.Portfolio != nil {
		values["portfolio"] = *upd.Portfolio
	}
	if upd.Experience != nil {
		values["experience"] = *upd.Experience
	}
	if upd.Education != nil {
		values["education"] = *upd.Education
	}
	if upd.CurrentRole != nil {
		values["current_role"] = *upd.CurrentRole
	}
	if profileCompleted != nil {
		values["profile_completed"] = *profileCompleted
	}

	if len(values) == 0 {
		return nil
	}

	return r.orm.Model(&model.User{}).Where("id = ?", id).Updates(values).Error
}

// SearchBySkill 按技能/姓名模糊检索已完善资料的用户
func (r *UserRepository) SearchBySkill(keyword string, limit int) ([]*model.User, error) {
	var users []*model.User
	pattern := "%" + keyword + "%"
	err := r.orm.Where("profile_completed = ?", true).
		Where("skills LIKE ? OR name LIKE ?", pattern, pattern).
		Limit(limit).
		Find(&users).Error
	return users, err
}

// ListCompleted 列出已完善资料的用户（技能广场）
func (r *UserRepository) ListCompleted(limit int) ([]*model.User, error) {
	var users []*model.User
	err := r.orm.Where("profile_completed = ?", true).
		Order("updated_at DESC").
		Limit(limit).
		Find(&users).Error
	return users, err
}
