package models

// Role is the back-office role of a user
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleEditor Role = "EDITOR"
)

// DeliveryMode describes how a program is delivered
type DeliveryMode string

const (
	DeliveryOnline DeliveryMode = "online"
	DeliveryOnsite DeliveryMode = "onsite"
	DeliveryHybrid DeliveryMode = "hybrid"
)

// Level is the target audience level of a program
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// ServiceType is the consulting service a request asks about
type ServiceType string

const (
	ServiceStrategy      ServiceType = "strategy"
	ServiceHR            ServiceType = "hr"
	ServiceTrainingNeeds ServiceType = "training_needs"
	ServiceQuality       ServiceType = "quality"
	ServiceOther         ServiceType = "other"
)

// ForwardStatus tracks delivery of a consulting request to the external backend
type ForwardStatus string

const (
	ForwardPending   ForwardStatus = "pending"
	ForwardForwarded ForwardStatus = "forwarded"
	ForwardFailed    ForwardStatus = "failed"
)
