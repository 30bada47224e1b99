package validators

type UpdateDriverStatusRequest struct {
	Status string `json:"status" validate:"required,driver_status"`
}

type UpdateDriverRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=50"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1,max=50"`
	Phone     *string `json:"phone" validate:"omitempty,phone_number"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Status    *string `json:"status" validate:"omitempty,driver_status"`
}

func ValidateUpdateDriverStatusRequest(req *UpdateDriverStatusRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateUpdateDriverRequest(req *UpdateDriverRequest) ValidationErrors {
	if req.FirstName != nil {
		sanitized := SanitizeInput(*req.FirstName)
		req.FirstName = &sanitized
	}
	if req.LastName != nil {
		sanitized := SanitizeInput(*req.LastName)
		req.LastName = &sanitized
	}
	return ValidateStruct(req)
}
