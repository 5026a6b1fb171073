package models

// UserRole - роль пользователя системы
type UserRole string

const (
	RolePolice  UserRole = "POLICE"
	RoleAdmin   UserRole = "ADMIN"
	RoleCitizen UserRole = "CITIZEN"
)

// User - пользователь, от имени которого выполняются запросы на отслеживание
type User struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Role     UserRole `json:"role"`
	IsActive bool     `json:"is_active"`
}
