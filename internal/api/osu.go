package api

import (
	"context"
	"fmt"
	"net/url"
	"osu-dumper/internal/config"
	"osu-dumper/internal/constants"
	"strconv"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/valyala/fasthttp"
)

type OsuClient struct {
	baseURL      string
	clientID     string
	clientSecret string
	client       *fasthttp.Client

	tokenMu     sync.Mutex
	token       string
	tokenExpiry time.Time
}

type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error: %d %s", e.Code, e.Body)
}

func NewOsuClient(cfg *config.Config) *OsuClient {
	return newOsuClient(cfg.OsuAPIURL, cfg.OsuClientID, cfg.OsuClientSecret, &fasthttp.Client{
		MaxConnsPerHost:     16,
		ReadTimeout:         constants.ExternalAPITimeout,
		WriteTimeout:        constants.ExternalAPITimeout,
		MaxIdleConnDuration: 1 * time.Minute,
	})
}

func newOsuClient(baseURL, clientID, clientSecret string, client *fasthttp.Client) *OsuClient {
	return &OsuClient{
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		client:       client,
	}
}

// accessToken returns a cached client credentials token, requesting a new one
// shortly before the old one expires.
func (c *OsuClient) accessToken(ctx context.Context) (string, error) {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	form := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(form)
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("grant_type", "client_credentials")
	form.Set("scope", "public")

	req.SetRequestURI(c.baseURL + "/oauth/token")
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.SetBody(form.QueryString())

	if err := c.do(ctx, req, resp); err != nil {
		return "", fmt.Errorf("failed to request token: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return "", &StatusError{Code: resp.StatusCode(), Body: string(resp.Body())}
	}

	var token TokenResponse
	if err := sonic.Unmarshal(resp.Body(), &token); err != nil {
		return "", fmt.Errorf("failed to decode token: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("token response has no access_token")
	}

	c.token = token.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - constants.TokenExpiryMargin)
	return c.token, nil
}

func (c *OsuClient) do(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	if deadline, ok := ctx.Deadline(); ok {
		return c.client.DoDeadline(req, resp, deadline)
	}
	return c.client.DoTimeout(req, resp, constants.ExternalAPITimeout)
}

// GetUser resolves a user by username, or by numeric id when ident parses as one
// and byID is set.
func (c *OsuClient) GetUser(ctx context.Context, ident string, byID bool) (*UserResponse, error) {
	key := "username"
	if byID {
		key = "id"
	}
	u := fmt.Sprintf("%s/api/v2/users/%s/%s?key=%s", c.baseURL, url.PathEscape(ident), constants.Ruleset, key)
	return doRequest[UserResponse](ctx, c, fasthttp.MethodGet, u, nil)
}

func (c *OsuClient) GetUserMostPlayed(ctx context.Context, userID int64, limit, offset int) ([]MostPlayedItem, error) {
	u := fmt.Sprintf("%s/api/v2/users/%d/beatmapsets/most_played?limit=%d&offset=%d", c.baseURL, userID, limit, offset)
	items, err := doRequest[[]MostPlayedItem](ctx, c, fasthttp.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	return *items, nil
}

func (c *OsuClient) GetBeatmapUserScores(ctx context.Context, mapID, userID int64) ([]Score, error) {
	u := fmt.Sprintf("%s/api/v2/beatmaps/%d/scores/users/%d/all?ruleset=%s", c.baseURL, mapID, userID, constants.Ruleset)
	resp, err := doRequest[BeatmapUserScoresResponse](ctx, c, fasthttp.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	return resp.Scores, nil
}

func (c *OsuClient) GetBeatmapAttributes(ctx context.Context, mapID int64, mods []string) (*DifficultyAttributes, error) {
	if mods == nil {
		mods = []string{}
	}
	return c.postAttributes(ctx, mapID, attributesRequest{Mods: mods, Ruleset: constants.Ruleset})
}

// GetBeatmapAttributesForMods rates the map under mods including their settings,
// e.g. a custom DT speed.
func (c *OsuClient) GetBeatmapAttributesForMods(ctx context.Context, mapID int64, mods []Mod) (*DifficultyAttributes, error) {
	if mods == nil {
		mods = []Mod{}
	}
	return c.postAttributes(ctx, mapID, modAttributesRequest{Mods: mods, Ruleset: constants.Ruleset})
}

func (c *OsuClient) postAttributes(ctx context.Context, mapID int64, req any) (*DifficultyAttributes, error) {
	body, err := sonic.Marshal(req)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/api/v2/beatmaps/%d/attributes", c.baseURL, mapID)
	resp, err := doRequest[AttributesResponse](ctx, c, fasthttp.MethodPost, u, body)
	if err != nil {
		return nil, err
	}
	return &resp.Attributes, nil
}

// GetUserBestScores returns the user's best scores set on the stable client.
func (c *OsuClient) GetUserBestScores(ctx context.Context, userID int64, limit int) ([]Score, error) {
	u := fmt.Sprintf("%s/api/v2/users/%d/scores/best?mode=%s&limit=%d&legacy_only=1", c.baseURL, userID, constants.Ruleset, limit)
	scores, err := doRequest[[]Score](ctx, c, fasthttp.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	return *scores, nil
}

func doRequest[T any](ctx context.Context, client *OsuClient, method, url string, body []byte) (*T, error) {
	token, err := client.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(method)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-version", constants.APIVersion)
	if body != nil {
		req.Header.SetContentType("application/json")
		req.SetBody(body)
	}

	if err := client.do(ctx, req, resp); err != nil {
		return nil, err
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode(), Body: string(resp.Body())}
	}

	var result T
	if err := sonic.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// IsNumeric reports whether ident could be a numeric user id.
func IsNumeric(ident string) bool {
	_, err := strconv.ParseInt(ident, 10, 64)
	return err == nil
}
