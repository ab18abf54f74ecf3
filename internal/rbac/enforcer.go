package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Role names carried in the JWT and matched by the enforcer.
const (
	RoleAdmin    = "ADMIN"
	RoleManager  = "MANAGER"
	RoleEmployee = "EMPLOYEE"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// Roles and their grants are fixed for this product, so the policy ships in
// code instead of a database. ADMIN inherits MANAGER inherits EMPLOYEE.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	groupings := [][]string{
		{RoleAdmin, RoleManager},
		{RoleManager, RoleEmployee},
	}
	for _, g := range groupings {
		if _, err := e.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	policies := [][]string{
		{RoleEmployee, "leave", "create"},
		{RoleEmployee, "leave", "read"},
		{RoleEmployee, "leave", "cancel"},
		{RoleEmployee, "balance", "read"},
		{RoleEmployee, "leave_type", "read"},
		{RoleEmployee, "department", "read"},
		{RoleEmployee, "holiday", "read"},
		{RoleEmployee, "notification", "read"},
		{RoleEmployee, "notification", "update"},

		{RoleManager, "leave", "approve"},
		{RoleManager, "leave", "reject"},
		{RoleManager, "report", "read"},
		{RoleManager, "user", "read"},

		{RoleAdmin, "user", "create"},
		{RoleAdmin, "user", "update"},
		{RoleAdmin, "department", "create"},
		{RoleAdmin, "department", "update"},
		{RoleAdmin, "department", "delete"},
		{RoleAdmin, "leave_type", "create"},
		{RoleAdmin, "leave_type", "update"},
		{RoleAdmin, "holiday", "create"},
		{RoleAdmin, "holiday", "delete"},
		{RoleAdmin, "balance", "rollover"},
	}
	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return e, nil
}
