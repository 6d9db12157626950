package model

// 用户角色
const (
	RoleLearner    = "learner"
	RoleInstructor = "instructor"
)

// User 用户表 — 对应 users
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	FullName     string `gorm:"type:varchar(100);not null;default:''"          json:"full_name"`
	Role         string `gorm:"type:varchar(20);not null;default:'learner'"    json:"role"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }
