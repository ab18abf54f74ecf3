package user

type CreateUserRequest struct {
	Email        string  `json:"email" binding:"required,email"`
	Password     string  `json:"password" binding:"required,min=8"`
	Name         string  `json:"name" binding:"required"`
	Role         string  `json:"role" binding:"omitempty,oneof=ADMIN MANAGER EMPLOYEE"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
	ManagerID    *string `json:"manager_id" binding:"omitempty,uuid"`
}

type UpdateUserRequest struct {
	Name         string  `json:"name" binding:"required"`
	Role         string  `json:"role" binding:"required,oneof=ADMIN MANAGER EMPLOYEE"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
	ManagerID    *string `json:"manager_id" binding:"omitempty,uuid"`
	IsActive     *bool   `json:"is_active"`
}

type UserResponse struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	Role         string  `json:"role"`
	DepartmentID *string `json:"department_id,omitempty"`
	ManagerID    *string `json:"manager_id,omitempty"`
	IsActive     bool    `json:"is_active"`
}
