package repository

import "errors"

// Common repository errors
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrWorkspaceNotFound     = errors.New("workspace not found")
	ErrProjectNotFound       = errors.New("project not found")
	ErrStatusNotFound        = errors.New("status not found")
	ErrPipelineNotFound      = errors.New("pipeline not found")
	ErrTaskNotFound          = errors.New("task not found")
	ErrMilestoneNotFound     = errors.New("milestone not found")
	ErrRecurringTaskNotFound = errors.New("recurring task not found")
	ErrWikiNotFound          = errors.New("wiki not found")
	ErrFormNotFound          = errors.New("form not found")
	ErrFormResponseNotFound  = errors.New("form response not found")
	ErrCustomFieldNotFound   = errors.New("custom field not found")
	ErrFieldValueNotFound    = errors.New("custom field value not found")
	ErrWebhookNotFound       = errors.New("webhook not found")
	ErrDeliveryNotFound      = errors.New("webhook delivery not found")
	ErrTimeLogNotFound       = errors.New("time log not found")
	ErrConversationNotFound  = errors.New("conversation not found")
	ErrAttachmentNotFound    = errors.New("attachment not found")
	ErrSettingNotFound       = errors.New("setting not found")
)
