package indexer_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/traumschule/joyutils/indexer"
	"github.com/traumschule/joyutils/log"
)

const workersResponse = `{
  "data": {
    "workers": [
      {
        "id": "forumWorkingGroup-0",
        "isLead": true,
        "runtimeId": 0,
        "rewardPerBlock": "330687830",
        "roleAccount": "j4RLnWh3DWgc9u4CMprqxfBhq3kthXhvZDmnpjEtETFVm446D",
        "stakeAccount": "j4RLnWh3DWgc9u4CMprqxfBhq3kthXhvZDmnpjEtETFVm446D",
        "rewardAccount": "j4RLnWh3DWgc9u4CMprqxfBhq3kthXhvZDmnpjEtETFVm446D",
        "stake": "100000000000000",
        "missingRewardAmount": null,
        "membership": {"id": "12", "handle": "lead"},
        "workerstartedleavingeventworker": []
      },
      {
        "id": "forumWorkingGroup-3",
        "isLead": false,
        "runtimeId": 3,
        "rewardPerBlock": "165343915",
        "roleAccount": "j4WfJ3f8FHGi1QxT7uDZNyo9FqP1EBECAeHQmTt7iBPGdEnqS",
        "stakeAccount": "j4WfJ3f8FHGi1QxT7uDZNyo9FqP1EBECAeHQmTt7iBPGdEnqS",
        "rewardAccount": "j4WfJ3f8FHGi1QxT7uDZNyo9FqP1EBECAeHQmTt7iBPGdEnqS",
        "stake": "20000000000000",
        "missingRewardAmount": "5000",
        "membership": {"id": "40", "handle": "moderator"},
        "workerstartedleavingeventworker": [{"inBlock": 6600000}]
      }
    ]
  }
}`

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

func TestWorkers(t *testing.T) {
	var received graphqlRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, workersResponse)
	}))
	defer server.Close()

	client := indexer.NewClient(server.URL, 1, time.Millisecond, log.NewLoggerWithWriter(io.Discard, "error"))
	workers, err := client.Workers(context.Background(), "forumWorkingGroup")
	require.NoError(t, err)

	assert.Contains(t, received.Query, "workers(where: {groupId_eq: $groupId, isActive_eq: true}, orderBy: runtimeId_ASC)")
	assert.Contains(t, received.Query, "$groupId:String!")
	assert.Equal(t, "forumWorkingGroup", received.Variables["groupId"])

	require.Len(t, workers, 2)

	lead, ok := indexer.Lead(workers)
	require.True(t, ok)
	assert.Equal(t, uint64(0), lead.RuntimeID)
	assert.Equal(t, "lead", lead.Handle)
	assert.True(t, lead.MissingRewardAmount.IsZero())
	assert.False(t, lead.StartedLeaving)

	worker := workers[1]
	assert.Equal(t, uint64(3), worker.RuntimeID)
	assert.Equal(t, "moderator", worker.Handle)
	assert.Equal(t, "40", worker.MemberID)
	assert.Equal(t, "165343915", worker.RewardPerBlock.String())
	assert.Equal(t, "20000000000000", worker.Stake.String())
	assert.Equal(t, "5000", worker.MissingRewardAmount.String())
	assert.True(t, worker.StartedLeaving)
}

func TestWorkers_GraphqlError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"errors": [{"message": "unknown group"}]}`)
	}))
	defer server.Close()

	client := indexer.NewClient(server.URL, 1, time.Millisecond, log.NewLoggerWithWriter(io.Discard, "error"))
	_, err := client.Workers(context.Background(), "nope")
	assert.ErrorContains(t, err, "unknown group")
}

func TestLead_NoLead(t *testing.T) {
	_, ok := indexer.Lead([]indexer.Worker{{RuntimeID: 1}})
	assert.False(t, ok)
}
