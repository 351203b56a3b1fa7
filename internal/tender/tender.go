package tender

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

const userAgent = "galalqassas/tender-matcher"

// Client loads platform data from CSV sources, either local paths or
// http(s) URLs.
type Client struct {
	// ctx used only for http requests right now
	ctx        context.Context
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
}

func New(ctx context.Context, logger *zap.Logger) *Client {
	return &Client{
		ctx: ctx,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

// LoadUsers reads the user collection from the given CSV source. Personas
// are derived from interests at load time.
func (c *Client) LoadUsers(source string) (*Users, error) {
	body, err := c.open(source)
	if err != nil {
		return nil, fmt.Errorf("open users source: %w", err)
	}
	defer body.Close()

	rows, err := readRows(body, "userId", "userName", "userType")
	if err != nil {
		return nil, fmt.Errorf("read users: %w", err)
	}

	users := &Users{}
	for i, row := range rows {
		var user User
		if err := decodeRecord(row, &user); err != nil {
			// header is line 1
			return nil, fmt.Errorf("users row %d: %w", i+2, err)
		}
		user.RecalculatePersona()
		users.Items = append(users.Items, &user)
	}

	c.logger.Debug("loaded users", zap.String("source", source), zap.Int("count", users.Len()))

	return users, nil
}

// LoadActivities reads the activity card collection from the given CSV source.
func (c *Client) LoadActivities(source string) (*Activities, error) {
	body, err := c.open(source)
	if err != nil {
		return nil, fmt.Errorf("open activities source: %w", err)
	}
	defer body.Close()

	rows, err := readRows(body, "city", "country", "activities")
	if err != nil {
		return nil, fmt.Errorf("read activities: %w", err)
	}

	activities := &Activities{}
	for i, row := range rows {
		var activity Activity
		if err := decodeRecord(row, &activity); err != nil {
			return nil, fmt.Errorf("activities row %d: %w", i+2, err)
		}
		activities.Items = append(activities.Items, &activity)
	}

	c.logger.Debug("loaded activities", zap.String("source", source), zap.Int("count", activities.Len()))

	return activities, nil
}

func (c *Client) open(source string) (io.ReadCloser, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return c.fetch(source)
	}

	return os.Open(source)
}

func (c *Client) fetch(url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(c.ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)

	c.logger.Debug("make request", zap.String("url", url))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	return resp.Body, nil
}
