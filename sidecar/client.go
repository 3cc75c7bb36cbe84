package sidecar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cosmossdk.io/math"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/traumschule/joyutils/arrays"
	"github.com/traumschule/joyutils/log"
	"github.com/traumschule/joyutils/units"
	"github.com/traumschule/joyutils/util"
)

var (
	ErrBadResponse          = errors.New("bad sidecar response")
	ErrNoTimestampExtrinsic = errors.New("failed to find timestamp extrinsic")
)

// Client reads chain state through a substrate-api-sidecar REST server.
type Client struct {
	baseUrl string
	http    *retryablehttp.Client
	logger  *log.Logger
}

// NewClient creates a client for the sidecar at baseUrl (ex. "https://monitoring.joyutils.org/sidecar/").
// Requests are retried up to retries times on connection errors and 5xx responses.
func NewClient(baseUrl string, retries int, retryWait time.Duration, logger *log.Logger) *Client {
	logger = logger.ApplyPrefix("[sidecar]")

	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = retries
	httpClient.RetryWaitMin = retryWait
	httpClient.RetryWaitMax = 4 * retryWait
	httpClient.Logger = logger.Logger

	return &Client{
		baseUrl: strings.TrimSuffix(baseUrl, "/") + "/",
		http:    httpClient,
		logger:  logger,
	}
}

type storageResponse struct {
	Pallet      string      `json:"pallet"`
	StorageItem string      `json:"storageItem"`
	Value       json.Number `json:"value"`
}

// StorageValue reads a plain numeric storage item (ex. "storage", "DataObjectPerMegabyteFee").
func (c *Client) StorageValue(ctx context.Context, pallet, item string) (math.Int, error) {
	var response storageResponse
	if err := c.get(ctx, fmt.Sprintf("pallets/%s/storage/%s", pallet, item), &response); err != nil {
		return math.Int{}, err
	}

	value, err := util.NumberToInt(response.Value)
	if err != nil {
		return math.Int{}, fmt.Errorf("%w: %s.%s: %s", ErrBadResponse, pallet, item, err)
	}
	return value, nil
}

type blockExtrinsic struct {
	Method struct {
		Pallet string `json:"pallet"`
		Method string `json:"method"`
	} `json:"method"`
	Args map[string]json.RawMessage `json:"args"`
}

type headResponse struct {
	Number     string           `json:"number"`
	Extrinsics []blockExtrinsic `json:"extrinsics"`
}

// HeadReference returns the best block with the time its author set, to anchor date conversions.
func (c *Client) HeadReference(ctx context.Context) (units.Reference, error) {
	var response headResponse
	if err := c.get(ctx, "blocks/head", &response); err != nil {
		return units.Reference{}, err
	}

	block, err := strconv.ParseUint(response.Number, 10, 64)
	if err != nil {
		return units.Reference{}, fmt.Errorf("%w: block number %q", ErrBadResponse, response.Number)
	}

	timestampExtrinsic, ok := arrays.Find(response.Extrinsics, func(e blockExtrinsic) bool {
		return e.Method.Pallet == "timestamp" && e.Method.Method == "set"
	})
	if !ok {
		return units.Reference{}, fmt.Errorf("%w in block %d", ErrNoTimestampExtrinsic, block)
	}

	millis, err := parseMillis(timestampExtrinsic.Args["now"])
	if err != nil {
		return units.Reference{}, fmt.Errorf("%w: timestamp in block %d: %s", ErrBadResponse, block, err)
	}

	return units.Reference{Block: block, Timestamp: millis / 1000}, nil
}

// parseMillis accepts the moment as a JSON string or number.
func parseMillis(raw json.RawMessage) (int64, error) {
	text := strings.Trim(string(raw), `"`)
	if text == "" {
		return 0, errors.New("missing")
	}
	return strconv.ParseInt(text, 10, 64)
}

func (c *Client) get(ctx context.Context, path string, target interface{}) error {
	url := c.baseUrl + path
	request, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	request.Header.Set("Accept", "application/json")

	response, err := c.http.Do(request)
	if err != nil {
		return fmt.Errorf("GET %s: %w", url, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("reading %s: %w", url, err)
	}
	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: GET %s: %s", ErrBadResponse, url, response.Status)
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: decoding %s: %s", ErrBadResponse, url, err)
	}

	c.logger.Debug("fetched", "path", path)
	return nil
}
