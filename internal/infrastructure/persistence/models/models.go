package models

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&UserRoleModel{},
		&RolePermissionModel{},
		&InviteModel{},
		&ProfileModel{},
		&PhotoConsentModel{},
		&MeasurementModel{},
		&DietaryRestrictionModel{},
		&ShowModel{},
		&GalleryImageModel{},
		&GalleryImageTagModel{},
		&RehearsalTemplateModel{},
		&RehearsalModel{},
		&AttendanceModel{},
		&HolidayModel{},
		&FinanceBudgetModel{},
		&FinanceEntryModel{},
	}
}
