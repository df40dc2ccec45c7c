package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/trezcool/skillshare/core/user"
)

func (c *Client) User(ctx context.Context, id int) (user.User, error) {
	var res user.User
	err := c.do(ctx, http.MethodGet, "/api/users/"+strconv.Itoa(id), nil, nil, &res)
	return res, err
}

func (c *Client) Users(ctx context.Context) ([]user.User, error) {
	var res []user.User
	err := c.do(ctx, http.MethodGet, "/api/users", nil, nil, &res)
	return res, err
}

func (c *Client) AddOfferedSkill(ctx context.Context, userID int, skill user.NewSkill) (user.User, error) {
	return c.addSkill(ctx, userID, "offered", skill)
}

func (c *Client) AddWantedSkill(ctx context.Context, userID int, skill user.NewSkill) (user.User, error) {
	return c.addSkill(ctx, userID, "wanted", skill)
}

func (c *Client) addSkill(ctx context.Context, userID int, list string, skill user.NewSkill) (user.User, error) {
	var res user.User
	path := "/api/users/" + strconv.Itoa(userID) + "/skills/" + list
	err := c.do(ctx, http.MethodPost, path, nil, skill, &res)
	return res, err
}

func (c *Client) RemoveOfferedSkill(ctx context.Context, userID, skillID int) error {
	return c.removeSkill(ctx, userID, "offered", skillID)
}

func (c *Client) RemoveWantedSkill(ctx context.Context, userID, skillID int) error {
	return c.removeSkill(ctx, userID, "wanted", skillID)
}

func (c *Client) removeSkill(ctx context.Context, userID int, list string, skillID int) error {
	path := "/api/users/" + strconv.Itoa(userID) + "/skills/" + list + "/" + strconv.Itoa(skillID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
