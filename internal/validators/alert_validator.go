package validators

type CreateAlertRuleRequest struct {
	Name      string  `json:"name" validate:"required,min=1,max=100"`
	Metric    string  `json:"metric" validate:"required,alert_metric"`
	Operator  string  `json:"operator" validate:"required,alert_operator"`
	Threshold float64 `json:"threshold" validate:"min=0,max=1"`
	Reason    string  `json:"reason" validate:"required,min=1,max=100"`
	Severity  string  `json:"severity" validate:"omitempty,oneof=info warning critical"`
	Enabled   *bool   `json:"enabled"`
}

type UpdateAlertRuleRequest struct {
	Name      *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Metric    *string  `json:"metric" validate:"omitempty,alert_metric"`
	Operator  *string  `json:"operator" validate:"omitempty,alert_operator"`
	Threshold *float64 `json:"threshold" validate:"omitempty,min=0,max=1"`
	Reason    *string  `json:"reason" validate:"omitempty,min=1,max=100"`
	Severity  *string  `json:"severity" validate:"omitempty,oneof=info warning critical"`
	Enabled   *bool    `json:"enabled"`
}

type PreviewAlertRequest struct {
	DriverID string `json:"driver_id" validate:"required,uuid_id"`
	Reason   string `json:"reason" validate:"required,min=1,max=100"`
	Tone     string `json:"tone" validate:"omitempty,min=1,max=30"`
	Language string `json:"language" validate:"omitempty,language_code"`
	Channel  string `json:"channel" validate:"required,alert_channel"`
}

type DispatchAlertRequest struct {
	DriverID string `json:"driver_id" validate:"required,uuid_id"`
	Reason   string `json:"reason" validate:"required,min=1,max=100"`
	Tone     string `json:"tone" validate:"omitempty,min=1,max=30"`
	Language string `json:"language" validate:"omitempty,language_code"`
	Channel  string `json:"channel" validate:"required,alert_channel"`
	Severity string `json:"severity" validate:"omitempty,oneof=info warning critical"`
}

func ValidateCreateAlertRuleRequest(req *CreateAlertRuleRequest) ValidationErrors {
	req.Name = SanitizeInput(req.Name)
	if req.Severity == "" {
		req.Severity = "warning"
	}
	return ValidateStruct(req)
}

func ValidateUpdateAlertRuleRequest(req *UpdateAlertRuleRequest) ValidationErrors {
	if req.Name != nil {
		sanitized := SanitizeInput(*req.Name)
		req.Name = &sanitized
	}
	return ValidateStruct(req)
}

func ValidatePreviewAlertRequest(req *PreviewAlertRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateDispatchAlertRequest(req *DispatchAlertRequest) ValidationErrors {
	if req.Severity == "" {
		req.Severity = "warning"
	}
	return ValidateStruct(req)
}
