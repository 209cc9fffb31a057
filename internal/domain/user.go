package domain

import "slices"

type Role string

const (
	RoleManager    Role = "gestor"
	RoleSupervisor Role = "supervisor"
	RoleNurse      Role = "enfermeiro"
)

type User struct {
	ID     int64
	Name   string
	Email  string
	Phone  string
	Unit   string
	Roles  []Role
	Active bool
}

func (u User) HasRole(r Role) bool {
	return slices.Contains(u.Roles, r)
}

func (u User) IsManager() bool {
	return u.HasRole(RoleManager)
}
