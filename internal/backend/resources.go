package backend

import (
	"context"
	"encoding/json"
	"fmt"
)

// The page endpoints are pass-through: the gateway relays whatever JSON
// the backend returns and whatever JSON the page submits. json.RawMessage
// keeps it that way without modelling every row type here.

func (c *Client) ListEvents(ctx context.Context, token string) (json.RawMessage, error) {
	return c.list(ctx, "/events", token)
}

func (c *Client) CreateEvent(ctx context.Context, token string, form json.RawMessage) error {
	return c.post(ctx, "/events", token, form, nil)
}

func (c *Client) ListForumPosts(ctx context.Context, token string) (json.RawMessage, error) {
	return c.list(ctx, "/forum/posts", token)
}

func (c *Client) CreateForumPost(ctx context.Context, token string, form json.RawMessage) error {
	return c.post(ctx, "/forum/posts", token, form, nil)
}

func (c *Client) ListAnswers(ctx context.Context, token string, postID string) (json.RawMessage, error) {
	return c.list(ctx, fmt.Sprintf("/forum/questions/%s/answers", postID), token)
}

func (c *Client) CreateAnswer(ctx context.Context, token string, postID string, form json.RawMessage) error {
	return c.post(ctx, fmt.Sprintf("/forum/questions/%s/answers", postID), token, form, nil)
}

func (c *Client) UpvoteQuestion(ctx context.Context, token string, id string) error {
	return c.post(ctx, fmt.Sprintf("/forum/questions/%s/upvote", id), token, nil, nil)
}

func (c *Client) UpvoteAnswer(ctx context.Context, token string, id string) error {
	return c.post(ctx, fmt.Sprintf("/forum/answers/%s/upvote", id), token, nil, nil)
}

func (c *Client) ListProjects(ctx context.Context, token string) (json.RawMessage, error) {
	return c.list(ctx, "/projects", token)
}

func (c *Client) CreateProject(ctx context.Context, token string, form json.RawMessage) error {
	return c.post(ctx, "/projects", token, form, nil)
}

func (c *Client) ListCollaborators(ctx context.Context, token string, projectID string) (json.RawMessage, error) {
	return c.list(ctx, fmt.Sprintf("/projects/%s/collaborators", projectID), token)
}

func (c *Client) RequestCollaboration(ctx context.Context, token string, projectID string, form json.RawMessage) error {
	return c.post(ctx, fmt.Sprintf("/projects/%s/collaborators", projectID), token, form, nil)
}

func (c *Client) ListHackathons(ctx context.Context, token string) (json.RawMessage, error) {
	return c.list(ctx, "/hackathons", token)
}

func (c *Client) CreateHackathon(ctx context.Context, token string, form json.RawMessage) error {
	return c.post(ctx, "/hackathons", token, form, nil)
}

func (c *Client) ListNotices(ctx context.Context, token string) (json.RawMessage, error) {
	return c.list(ctx, "/notices", token)
}

func (c *Client) CreateNotice(ctx context.Context, token string, form json.RawMessage) error {
	return c.post(ctx, "/notices", token, form, nil)
}

func (c *Client) ListLostFound(ctx context.Context, token string) (json.RawMessage, error) {
	return c.list(ctx, "/lostfound", token)
}

func (c *Client) CreateLostFound(ctx context.Context, token string, form json.RawMessage) error {
	return c.post(ctx, "/lostfound", token, form, nil)
}

func (c *Client) ListClubs(ctx context.Context, token string) (json.RawMessage, error) {
	return c.list(ctx, "/clubs", token)
}

func (c *Client) ListMarketplace(ctx context.Context, token string) (json.RawMessage, error) {
	return c.list(ctx, "/marketplace", token)
}

func (c *Client) ListMentorships(ctx context.Context, token string) (json.RawMessage, error) {
	return c.list(ctx, "/alumni/mentorships", token)
}

func (c *Client) CreateMentorship(ctx context.Context, token string, form json.RawMessage) error {
	return c.post(ctx, "/alumni/mentorships", token, form, nil)
}

func (c *Client) list(ctx context.Context, path, token string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, path, token, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
