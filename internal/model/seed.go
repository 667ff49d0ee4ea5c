package model

import (
	"time"
)

// CreatorID 平台创建者的固定标识（非UUID，属于本地演示实体）
const CreatorID = "creator-skill-exchange-001"

// CreatorProfile 平台创建者的内置资料
// 用户首次完善资料后自动成为其第一个好友（按标识幂等插入）
func CreatorProfile() *User {
	return &User{
		ID:       CreatorID,
		Name:     "Chenyu Pan",
		Email:    "founder@skill-exchange.dev",
		Username: "@chenyu",
		Avatar:   "https://api.dicebear.com/7.x/notionists/svg?seed=ChenyuPan",
		Bio:      "Founder of Skill Exchange. Backend engineer who believes everyone has a skill worth teaching and something new worth learning.",
		Location: "Hangzhou, China",
		Github:   "https://github.com/skill-exchange",
		Skills: []string{
			"Go", "Distributed Systems", "MySQL", "Redis",
			"System Design", "Mentoring", "Technical Writing",
		},
		LearningGoals: []string{
			"Product Design", "Japanese Language", "Photography", "Public Speaking",
		},
		Experience:       "6+ years in backend development",
		Education:        "Zhejiang University - Computer Science",
		CurrentRole:      "Founder & Engineer",
		ProfileCompleted: true,
	}
}

// DemoProfiles 演示用户资料
// 镜像库不可用或为空时，技能广场退回到这份本地数据（demo模式）
func DemoProfiles() []*User {
	return []*User{
		{
			ID:               "demo-ui-ling",
			Name:             "Ling Wei",
			Username:         "@lingwei",
			Avatar:           "https://api.dicebear.com/7.x/notionists/svg?seed=LingWei",
			Bio:              "Product designer, happy to trade design reviews for guitar lessons.",
			Location:         "Shanghai, China",
			Skills:           []string{"UI/UX Design", "Figma", "Illustration"},
			LearningGoals:    []string{"Guitar Playing", "Go"},
			ProfileCompleted: true,
		},
		{
			ID:               "demo-data-marco",
			Name:             "Marco Silva",
			Username:         "@marcos",
			Avatar:           "https://api.dicebear.com/7.x/notionists/svg?seed=MarcoSilva",
			Bio:              "Data analyst by day, amateur chef by night.",
			Location:         "Lisbon, Portugal",
			Skills:           []string{"Data Analysis", "Python Programming", "SQL", "Cooking"},
			LearningGoals:    []string{"Machine Learning", "Mandarin"},
			ProfileCompleted: true,
		},
		{
			ID:               "demo-web-aisha",
			Name:             "Aisha Khan",
			Username:         "@aishak",
			Avatar:           "https://api.dicebear.com/7.x/notionists/svg?seed=AishaKhan",
			Bio:              "Frontend developer who teaches web fundamentals on weekends.",
			Location:         "Karachi, Pakistan",
			Skills:           []string{"Web Development", "React", "TypeScript", "Teaching"},
			LearningGoals:    []string{"UI/UX Design", "Photography"},
			ProfileCompleted: true,
		},
	}
}

// NewFriend 基于用户资料构造一条accepted好友记录
func NewFriend(u *User) Friend {
	return Friend{
		User:           *u.Clone(),
		Status:         FriendStatusAccepted,
		FriendshipDate: time.Now(),
	}
}
