package domain

// CampaignAction is a manager-driven operation on a campaign.
type CampaignAction string

const (
	CampaignPublish  CampaignAction = "publish"
	CampaignPause    CampaignAction = "pause"
	CampaignResume   CampaignAction = "resume"
	CampaignComplete CampaignAction = "complete"
	CampaignUpdate   CampaignAction = "update"
)

// campaignTransitions is the single source of truth for campaign lifecycle
// legality. A missing entry means the action is not allowed from that state.
var campaignTransitions = map[CampaignStatus]map[CampaignAction]CampaignStatus{
	CampaignStatusDraft: {
		CampaignPublish: CampaignStatusPublished,
		CampaignUpdate:  CampaignStatusDraft,
	},
	CampaignStatusPublished: {
		CampaignPause:    CampaignStatusPaused,
		CampaignComplete: CampaignStatusCompleted,
		CampaignUpdate:   CampaignStatusPublished,
	},
	CampaignStatusPaused: {
		CampaignResume:   CampaignStatusPublished,
		CampaignComplete: CampaignStatusCompleted,
	},
	CampaignStatusCompleted: {},
}

// Next returns the status reached by applying action to s.
func (s CampaignStatus) Next(action CampaignAction) (CampaignStatus, error) {
	if next, ok := campaignTransitions[s][action]; ok {
		return next, nil
	}
	return s, NewError(KindInvalidTransition, "cannot %s a %s campaign", action, s)
}

// ApplicationAction is an operation on an application.
type ApplicationAction string

const (
	ApplicationEdit        ApplicationAction = "edit"
	ApplicationStartReview ApplicationAction = "start_review"
	ApplicationApprove     ApplicationAction = "approve"
	ApplicationReject      ApplicationAction = "reject"
	ApplicationWithdraw    ApplicationAction = "withdraw"
	// ApplicationReopen is the administrative override that returns a
	// rejected application to the queue.
	ApplicationReopen ApplicationAction = "reopen"
	// ApplicationRevertApproval compensates an approval whose membership
	// could not be provisioned.
	ApplicationRevertApproval ApplicationAction = "revert_approval"
)

var applicationTransitions = map[ApplicationStatus]map[ApplicationAction]ApplicationStatus{
	ApplicationPending: {
		ApplicationEdit:        ApplicationPending,
		ApplicationStartReview: ApplicationUnderReview,
		ApplicationApprove:     ApplicationApproved,
		ApplicationReject:      ApplicationRejected,
		ApplicationWithdraw:    ApplicationWithdrawn,
	},
	ApplicationUnderReview: {
		ApplicationApprove:  ApplicationApproved,
		ApplicationReject:   ApplicationRejected,
		ApplicationWithdraw: ApplicationWithdrawn,
	},
	ApplicationApproved: {
		ApplicationRevertApproval: ApplicationUnderReview,
	},
	ApplicationRejected: {
		ApplicationReopen: ApplicationPending,
	},
	ApplicationWithdrawn: {},
}

// Next returns the status reached by applying action to s.
func (s ApplicationStatus) Next(action ApplicationAction) (ApplicationStatus, error) {
	if next, ok := applicationTransitions[s][action]; ok {
		return next, nil
	}
	return s, NewError(KindInvalidTransition, "cannot %s a %s application", action, s)
}
