package lead

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownWorkingGroup = errors.New("unknown working group")

// WorkingGroup is the pallet name of a working group, which is also its id in the indexer.
type WorkingGroup string

const (
	AppWorkingGroup             WorkingGroup = "appWorkingGroup"
	OperationsWorkingGroupAlpha WorkingGroup = "operationsWorkingGroupAlpha"
	OperationsWorkingGroupBeta  WorkingGroup = "operationsWorkingGroupBeta"
	OperationsWorkingGroupGamma WorkingGroup = "operationsWorkingGroupGamma"
	StorageWorkingGroup         WorkingGroup = "storageWorkingGroup"
	DistributionWorkingGroup    WorkingGroup = "distributionWorkingGroup"
	MembershipWorkingGroup      WorkingGroup = "membershipWorkingGroup"
	ContentWorkingGroup         WorkingGroup = "contentWorkingGroup"
	ForumWorkingGroup           WorkingGroup = "forumWorkingGroup"
)

var titles = map[WorkingGroup]string{
	AppWorkingGroup:             "Apps",
	OperationsWorkingGroupAlpha: "Builders",
	OperationsWorkingGroupBeta:  "HR",
	OperationsWorkingGroupGamma: "Marketing",
	StorageWorkingGroup:         "Storage",
	DistributionWorkingGroup:    "Distribution",
	MembershipWorkingGroup:      "Membership",
	ContentWorkingGroup:         "Content",
	ForumWorkingGroup:           "Forum",
}

// WorkingGroups lists all groups in display order.
func WorkingGroups() []WorkingGroup {
	return []WorkingGroup{
		AppWorkingGroup,
		OperationsWorkingGroupAlpha,
		OperationsWorkingGroupBeta,
		OperationsWorkingGroupGamma,
		StorageWorkingGroup,
		DistributionWorkingGroup,
		MembershipWorkingGroup,
		ContentWorkingGroup,
		ForumWorkingGroup,
	}
}

func (g WorkingGroup) Title() string {
	if title, ok := titles[g]; ok {
		return title
	}
	return string(g)
}

// ParseWorkingGroup accepts a pallet name ("forumWorkingGroup") or a title ("Forum"), ignoring case.
func ParseWorkingGroup(input string) (WorkingGroup, error) {
	for _, group := range WorkingGroups() {
		if strings.EqualFold(input, string(group)) || strings.EqualFold(input, group.Title()) {
			return group, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownWorkingGroup, input)
}
