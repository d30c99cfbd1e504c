package models

// Categories
const (
	CategoryUncategorized = "Uncategorized"
)

// Import sources
const (
	SourceCSV      = "csv"
	SourceBankSync = "bank-sync"
)

// File permissions
const (
	PermissionDataFile  = 0600
	PermissionDirectory = 0750
	PermissionReport    = 0644
)
