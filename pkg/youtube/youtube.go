// Package youtube resolves video metadata (title, channel, duration) for a
// practice link. The bot treats this as a black box: given a url, return what
// the curator would otherwise type by hand.
package youtube

import (
	"context"
	"fmt"
	"math"

	yt "github.com/kkdai/youtube/v2"
)

type VideoInfo struct {
	Title       string
	ChannelName string
	Description string
	// Duration is rounded up to whole minutes, matching how practices are
	// presented to users.
	Duration int
}

type Client struct {
	client yt.Client
}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) VideoInfo(ctx context.Context, url string) (*VideoInfo, error) {
	video, err := c.client.GetVideoContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video metadata: %w", err)
	}

	description := video.Description
	if len(description) > 1000 {
		description = description[:1000]
	}

	return &VideoInfo{
		Title:       video.Title,
		ChannelName: video.Author,
		Description: description,
		Duration:    int(math.Ceil(video.Duration.Minutes())),
	}, nil
}
