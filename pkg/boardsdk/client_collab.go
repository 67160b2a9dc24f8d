package boardsdk

import (
	"context"
	"net/http"
	"net/url"
)

func collabPath(id string) string {
	return "/api/collab-boards/" + url.PathEscape(id)
}

// ListCollabBoards returns the collaborative boards the user belongs to.
func (c *Client) ListCollabBoards(ctx context.Context) ([]CollabBoard, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/collab-boards", nil, nil)
	if err != nil {
		return nil, err
	}

	var out []CollabBoard
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCollabBoard creates a collaborative board with the caller as admin.
func (c *Client) CreateCollabBoard(ctx context.Context, b Board) (*CollabBoard, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/collab-boards", b)
	if err != nil {
		return nil, err
	}

	var out CollabBoard
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetCollabBoard(ctx context.Context, id string) (*CollabBoard, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, collabPath(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var out CollabBoard
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCollabBoard replaces the board identified by b.ID. Last write wins.
func (c *Client) UpdateCollabBoard(ctx context.Context, b Board) (*CollabBoard, error) {
	resp, err := c.doJSON(ctx, http.MethodPut, collabPath(b.ID), b)
	if err != nil {
		return nil, err
	}

	var out CollabBoard
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCollabBoard deletes the board with its memberships and invites.
// Admin only.
func (c *Client) DeleteCollabBoard(ctx context.Context, id string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, collabPath(id), nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func (c *Client) UpdateCollabSubtasks(ctx context.Context, boardID, taskID string, subtasks []Subtask) (*Board, error) {
	return c.putSubtasks(ctx, collabPath(boardID), taskID, subtasks)
}

func (c *Client) CollabBoardStats(ctx context.Context, id string, q StatsQuery) (*Stats, error) {
	return c.getStats(ctx, collabPath(id), q)
}

// Invite adds email to a board. Registered users are added directly
// (InviteStatusMemberAdded); anyone else gets a token (InviteStatusCreated).
func (c *Client) Invite(ctx context.Context, boardID, email string) (*InviteResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, collabPath(boardID)+"/invite", InviteRequest{Email: email})
	if err != nil {
		return nil, err
	}

	var out InviteResponse
	if err := decodeJSON(resp, &out, http.StatusCreated, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListInvites returns the board's pending invites. Admin only.
func (c *Client) ListInvites(ctx context.Context, boardID string) ([]PendingInvite, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, collabPath(boardID)+"/invites", nil, nil)
	if err != nil {
		return nil, err
	}

	var out []PendingInvite
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListMembers(ctx context.Context, boardID string) ([]Member, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, collabPath(boardID)+"/members", nil, nil)
	if err != nil {
		return nil, err
	}

	var out []Member
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// AcceptInvite redeems an invite token and returns the joined board id.
func (c *Client) AcceptInvite(ctx context.Context, token string) (string, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/collab-invites/accept", AcceptInviteRequest{Token: token})
	if err != nil {
		return "", err
	}

	var out AcceptInviteResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return "", err
	}
	return out.BoardID, nil
}
