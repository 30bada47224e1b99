package validators

// UberActionRequest carries the action discriminator for the Uber
// integration endpoint plus the union of per-action parameters.
type UberActionRequest struct {
	Action    string `json:"action" validate:"required,oneof=sync_driver sync_all generate_report report_status"`
	DriverID  string `json:"driver_id" validate:"omitempty,uuid_id"`
	ReportID  string `json:"report_id" validate:"omitempty,min=1,max=100"`
	StartDate string `json:"start_date" validate:"omitempty,date_only"`
	EndDate   string `json:"end_date" validate:"omitempty,date_only"`
	Days      int    `json:"days" validate:"omitempty,min=1,max=90"`
}

func ValidateUberActionRequest(req *UberActionRequest) ValidationErrors {
	errs := ValidateStruct(req)

	switch req.Action {
	case "sync_driver":
		if req.DriverID == "" {
			errs = append(errs, ValidationError{
				Field:   "DriverID",
				Tag:     "required",
				Message: "DriverID is required for sync_driver",
			})
		}
	case "generate_report":
		if req.StartDate == "" || req.EndDate == "" {
			errs = append(errs, ValidationError{
				Field:   "StartDate",
				Tag:     "required",
				Message: "StartDate and EndDate are required for generate_report",
			})
		}
	case "report_status":
		if req.ReportID == "" {
			errs = append(errs, ValidationError{
				Field:   "ReportID",
				Tag:     "required",
				Message: "ReportID is required for report_status",
			})
		}
	}

	return errs
}
