package indexer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cosmossdk.io/math"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/shurcooL/graphql"
	"github.com/traumschule/joyutils/arrays"
	"github.com/traumschule/joyutils/log"
)

var ErrBadWorker = errors.New("malformed worker")

// Worker is an active working group member as indexed by the query node.
type Worker struct {
	ID            string
	RuntimeID     uint64
	IsLead        bool
	MemberID      string
	Handle        string
	RoleAccount   string
	StakeAccount  string
	RewardAccount string

	// Amounts in HAPI.
	RewardPerBlock      math.Int
	Stake               math.Int
	MissingRewardAmount math.Int

	// Set once the worker announced leaving.
	StartedLeaving bool
}

// Client queries the Joystream GraphQL indexer.
type Client struct {
	graphql *graphql.Client
	logger  *log.Logger
}

func NewClient(url string, retries int, retryWait time.Duration, logger *log.Logger) *Client {
	logger = logger.ApplyPrefix("[indexer]")

	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = retries
	httpClient.RetryWaitMin = retryWait
	httpClient.RetryWaitMax = 4 * retryWait
	httpClient.Logger = logger.Logger

	return &Client{
		graphql: graphql.NewClient(url, httpClient.StandardClient()),
		logger:  logger,
	}
}

type workerNode struct {
	ID                  string
	IsLead              bool
	RuntimeID           uint64 `graphql:"runtimeId"`
	RewardPerBlock      string
	RoleAccount         string
	StakeAccount        string
	RewardAccount       string
	Stake               string
	MissingRewardAmount *string
	Membership          struct {
		ID     string
		Handle string
	}
	Workerstartedleavingeventworker []struct {
		InBlock int
	}
}

type workersQuery struct {
	Workers []workerNode `graphql:"workers(where: {groupId_eq: $groupId, isActive_eq: true}, orderBy: runtimeId_ASC)"`
}

// Workers lists the active workers of a group ordered by runtime id, lead included.
func (c *Client) Workers(ctx context.Context, group string) ([]Worker, error) {
	var query workersQuery
	variables := map[string]interface{}{
		"groupId": graphql.String(group),
	}

	if err := c.graphql.Query(ctx, &query, variables); err != nil {
		return nil, fmt.Errorf("querying workers of %s: %w", group, err)
	}
	c.logger.Debug("fetched workers", "group", group, "count", len(query.Workers))

	workers := make([]Worker, 0, len(query.Workers))
	for _, node := range query.Workers {
		worker, err := node.toWorker()
		if err != nil {
			return nil, err
		}
		workers = append(workers, worker)
	}
	return workers, nil
}

func (n workerNode) toWorker() (Worker, error) {
	reward, err := parseAmount(n.ID, "rewardPerBlock", n.RewardPerBlock)
	if err != nil {
		return Worker{}, err
	}
	stake, err := parseAmount(n.ID, "stake", n.Stake)
	if err != nil {
		return Worker{}, err
	}

	missing := math.ZeroInt()
	if n.MissingRewardAmount != nil {
		missing, err = parseAmount(n.ID, "missingRewardAmount", *n.MissingRewardAmount)
		if err != nil {
			return Worker{}, err
		}
	}

	return Worker{
		ID:                  n.ID,
		RuntimeID:           n.RuntimeID,
		IsLead:              n.IsLead,
		MemberID:            n.Membership.ID,
		Handle:              n.Membership.Handle,
		RoleAccount:         n.RoleAccount,
		StakeAccount:        n.StakeAccount,
		RewardAccount:       n.RewardAccount,
		RewardPerBlock:      reward,
		Stake:               stake,
		MissingRewardAmount: missing,
		StartedLeaving:      len(n.Workerstartedleavingeventworker) > 0,
	}, nil
}

func parseAmount(id, field, raw string) (math.Int, error) {
	if raw == "" {
		return math.ZeroInt(), nil
	}

	amount, ok := math.NewIntFromString(raw)
	if !ok {
		return math.Int{}, fmt.Errorf("%w %s: %s %q", ErrBadWorker, id, field, raw)
	}
	return amount, nil
}

// Lead returns the group's lead, if it has one.
func Lead(workers []Worker) (Worker, bool) {
	return arrays.Find(workers, func(w Worker) bool { return w.IsLead })
}
