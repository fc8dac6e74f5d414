package constants

// Context keys
const (
	ContextKeyUserID = "user_id"
	ContextKeyGroup  = "group"
	ContextKeyMember = "group_member"
)

// Validation limits
const (
	MinPasswordLength = 8
)

// Listing caps
const (
	GroupMessageWindow = 100
	PostFeedLimit      = 50
)
