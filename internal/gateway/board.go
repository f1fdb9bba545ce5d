package gateway

import (
	"context"
	"net/url"

	"github.com/simonbystrom/taskboard/internal/board"
)

// BoardClient is the typed set of calls the board needs from the backend.
type BoardClient struct {
	c *Client
}

func NewBoardClient(c *Client) *BoardClient {
	return &BoardClient{c: c}
}

func (b *BoardClient) Projects(ctx context.Context) ([]board.Project, error) {
	var out []board.Project
	if err := b.c.Get(ctx, "/projects", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *BoardClient) ListColumns(ctx context.Context, projectID string) ([]board.ColumnDescriptor, error) {
	var out []board.ColumnDescriptor
	if err := b.c.Get(ctx, "/projects/"+url.PathEscape(projectID)+"/task-groups", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *BoardClient) ListTasks(ctx context.Context, projectID string) ([]board.Task, error) {
	var out []board.Task
	if err := b.c.Get(ctx, "/projects/"+url.PathEscape(projectID)+"/tasks", &out); err != nil {
		return nil, err
	}
	return out, nil
}

type moveTaskBody struct {
	TaskGroupID string `json:"taskGroupId"`
}

// MoveTask reassigns a task to another group.
func (b *BoardClient) MoveTask(ctx context.Context, req board.MoveRequest) error {
	path := "/tasks/" + url.PathEscape(req.TaskID) + "/task-group"
	return b.c.Put(ctx, path, moveTaskBody{TaskGroupID: req.DestinationColumnID}, nil)
}

type createColumnBody struct {
	Name string `json:"name"`
}

func (b *BoardClient) CreateColumn(ctx context.Context, projectID, name string) (board.ColumnDescriptor, error) {
	var out board.ColumnDescriptor
	path := "/projects/" + url.PathEscape(projectID) + "/task-groups"
	if err := b.c.Post(ctx, path, createColumnBody{Name: name}, &out); err != nil {
		return board.ColumnDescriptor{}, err
	}
	return out, nil
}
