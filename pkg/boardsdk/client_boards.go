package boardsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Personal boards

func boardPath(id string) string {
	return "/api/boards/" + url.PathEscape(id)
}

func (c *Client) ListBoards(ctx context.Context) ([]Board, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/boards", nil, nil)
	if err != nil {
		return nil, err
	}

	var out []Board
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateBoard(ctx context.Context, b Board) (*Board, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/boards", b)
	if err != nil {
		return nil, err
	}

	var out Board
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetBoard(ctx context.Context, id string) (*Board, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, boardPath(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var out Board
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBoard replaces the board identified by b.ID.
func (c *Client) UpdateBoard(ctx context.Context, b Board) (*Board, error) {
	resp, err := c.doJSON(ctx, http.MethodPut, boardPath(b.ID), b)
	if err != nil {
		return nil, err
	}

	var out Board
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteBoard(ctx context.Context, id string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, boardPath(id), nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// UpdateSubtasks replaces a task's subtasks and returns the updated board.
func (c *Client) UpdateSubtasks(ctx context.Context, boardID, taskID string, subtasks []Subtask) (*Board, error) {
	return c.putSubtasks(ctx, boardPath(boardID), taskID, subtasks)
}

func (c *Client) BoardStats(ctx context.Context, id string, q StatsQuery) (*Stats, error) {
	return c.getStats(ctx, boardPath(id), q)
}

// Task types

func (c *Client) ListTaskTypes(ctx context.Context) ([]string, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/task-types", nil, nil)
	if err != nil {
		return nil, err
	}

	var out []string
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTaskType adds a task type and returns the stored name.
func (c *Client) CreateTaskType(ctx context.Context, name string) (string, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/task-types", TaskTypeRequest{Name: name})
	if err != nil {
		return "", err
	}

	var out TaskTypeRequest
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return "", err
	}
	return out.Name, nil
}

// shared helpers

func (c *Client) putSubtasks(ctx context.Context, base, taskID string, subtasks []Subtask) (*Board, error) {
	if subtasks == nil {
		subtasks = []Subtask{}
	}
	path := base + "/tasks/" + url.PathEscape(taskID) + "/subtasks"
	resp, err := c.doJSON(ctx, http.MethodPut, path, SubtasksRequest{Subtasks: subtasks})
	if err != nil {
		return nil, err
	}

	var out Board
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getStats(ctx context.Context, base string, q StatsQuery) (*Stats, error) {
	path := base + "/stats"
	if enc := q.values().Encode(); enc != "" {
		path += "?" + enc
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var out Stats
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (q StatsQuery) values() url.Values {
	v := url.Values{}
	set := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	set("type", q.Type)
	set("assignee", q.Assignee)
	set("priority", q.Priority)
	set("difficulty", q.Difficulty)
	set("sprint", q.Sprint)
	set("tag", q.Tag)
	set("q", q.Query)
	set("mode", q.Mode)
	if q.HasSubtasks != nil {
		v.Set("subtasks", strconv.FormatBool(*q.HasSubtasks))
	}
	return v
}
