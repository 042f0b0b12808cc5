package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanAndPostStatusProjections(t *testing.T) {
	cases := []struct {
		plan PlanStatus
		post PostStatus
	}{
		{PlanStatusPending, PostStatusApproved},
		{PlanStatusScheduled, PostStatusScheduled},
		{PlanStatusPosted, PostStatusPosted},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.post, PostStatusFromPlanStatus(tc.plan))
		assert.Equal(t, tc.plan, PlanStatusFromPostStatus(tc.post))
	}
}

func TestPlanStatusFromDraftIsPending(t *testing.T) {
	assert.Equal(t, PlanStatusPending, PlanStatusFromPostStatus(PostStatusDraft))
}
