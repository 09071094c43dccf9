package validation

// CustomMessage returns per-tag overrides for a JSON field name.
func CustomMessage(field string) map[string]string {
	var customValidationMessages = map[string]map[string]string{
		"email": {
			"required": "Please provide an email",
			"email":    "Please provide a valid email",
		},
		"password": {
			"required": "Please provide a password",
			"min":      "Password must be at least 6 characters",
		},
		"name": {
			"required": "Please provide a name",
		},
		"mobileNumber": {
			"numeric": "Mobile number must contain only digits",
		},
		"category": {
			"required": "Please select a category",
		},
		"images": {
			"required": "Please provide at least one image",
			"min":      "Please provide at least one image",
		},
		"size": {
			"oneof": "Size must be one of XS, S, M, L, XL, XXL, Free Size",
		},
		"condition": {
			"oneof": "Condition must be one of Excellent, Very Good, Good, Fair",
		},
		"rentalEndDate": {
			"gtfield": "Rental end date must be after start date",
		},
	}
	return customValidationMessages[field]
}
