package fakeapi

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/skillshare/core/user"
)

func (s *Server) listUsers(ctx echo.Context) error {
	if _, err := currentUserID(ctx); err != nil {
		return err
	}
	s.mu.RLock()
	out := make([]user.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return ctx.JSON(http.StatusOK, out)
}

func (s *Server) getUser(ctx echo.Context) error {
	if _, err := currentUserID(ctx); err != nil {
		return err
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	return ctx.JSON(http.StatusOK, *u)
}

func (s *Server) addSkill(ctx echo.Context) error {
	viewerID, err := currentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if id != viewerID {
		return echo.NewHTTPError(http.StatusForbidden, "cannot update another user")
	}
	list := ctx.Param("list")
	if list != "offered" && list != "wanted" {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown skill list")
	}

	var form user.NewSkill
	if err = ctx.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if form.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "skill name is required")
	}
	if list == "wanted" && form.Description.String == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "description is required for wanted skills")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	skill := user.Skill{
		ID:          s.nextID,
		Name:        form.Name,
		Description: form.Description,
		Category:    form.Category,
		Level:       form.Level,
	}
	s.nextID++
	if list == "offered" {
		u.OfferedSkills = append(u.OfferedSkills, skill)
	} else {
		u.WantedSkills = append(u.WantedSkills, skill)
	}
	return ctx.JSON(http.StatusOK, *u)
}

func (s *Server) removeSkill(ctx echo.Context) error {
	viewerID, err := currentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if id != viewerID {
		return echo.NewHTTPError(http.StatusForbidden, "cannot update another user")
	}
	list := ctx.Param("list")
	if list != "offered" && list != "wanted" {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown skill list")
	}
	skillID, err := strconv.Atoi(ctx.Param("skillId"))
	if err != nil || skillID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid skill id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	skills := &u.OfferedSkills
	if list == "wanted" {
		skills = &u.WantedSkills
	}
	for i, sk := range *skills {
		if sk.ID == skillID {
			*skills = append((*skills)[:i], (*skills)[i+1:]...)
			return ctx.NoContent(http.StatusNoContent)
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "skill not found")
}
