package model

// Task attributes.
const (
	TaskIDAttr        = "taskid"
	NameAttr          = "name"
	WorkflowGroupAttr = "workflowgroup"
	DescriptionAttr   = "description"
	ModelVersionAttr  = "$modelversion"
	EditorAttr        = "txteditorid"
	ImageAttr         = "txtimageurl"
	TypeAttr          = "txttype"
	AbstractAttr      = "txtworkflowabstract"
	SummaryAttr       = "txtworkflowsummary"
)

// Event attributes.
const (
	EventIDAttr     = "eventid"
	NextTaskIDAttr  = "nexttaskid"
	FollowUpAttr    = "followup"
	NextEventIDAttr = "nexteventid"
	// BusinessRuleAttr holds the rule script evaluated by the rule plugin.
	BusinessRuleAttr = "businessrule"
	// ResultAttr holds result markup evaluated by the result plugin.
	ResultAttr = "result"
	// RestrictedVisibilityAttr lists work item attributes that must contain the
	// current user for the event to be offered.
	RestrictedVisibilityAttr = "restrictedvisibility"
	VisibleAttr              = "visible"
)

// Work item attributes.
const (
	WorkItemTaskIDAttr    = "$taskid"
	WorkItemEventIDAttr   = "$eventid"
	UniqueIDAttr          = "$uniqueid"
	LastEventDateAttr     = "$lasteventdate"
	WorkflowStatusAttr    = "$workflowstatus"
	WorkItemGroupAttr     = "$workflowgroup"
	WorkItemCreatedAttr   = "$created"
	WorkItemEventLogAttr  = "$eventlog"
	WorkflowEditorAttr    = "$workfloweditor"
	WorkflowImageAttr     = "$workflowimage"
	WorkflowAbstractAttr  = "$workflowabstract"
	WorkflowSummaryAttr   = "$workflowsummary"
	WorkItemTypeAttr      = "type"
	followUpEnabledMarker = "1"
)

// Profile attributes.
const (
	ProfileNameAttr    = "txtname"
	ProfileTypeAttr    = "type"
	ProfileVersionAttr = "txtworkflowmodelversion"
	ProfilePluginsAttr = "txtplugins"
	ProfileName        = "environment.profile"
	ProfileType        = "WorkflowEnvironmentEntity"
)
