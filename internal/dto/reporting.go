package dto

// ReportDateParams carries the as-of date of point-in-time reports. An empty value means today.
type ReportDateParams struct {
	AsOf string `form:"asOf"`
}

// ReportRangeParams carries the range of period reports. From defaults to the first day of
// the current month and To to today.
type ReportRangeParams struct {
	From      string  `form:"from"`
	To        string  `form:"to"`
	AccountID *string `form:"accountID" binding:"omitempty,uuid"`
}
