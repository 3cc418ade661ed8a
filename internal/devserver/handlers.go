package devserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"trackup/internal/model"
	"trackup/internal/store"

	"github.com/gin-gonic/gin"
)

type nameRequest struct {
	Name string `json:"name"`
}

type taskRequest struct {
	Title    string           `json:"title"`
	Assignee string           `json:"assignee"`
	Status   model.TaskStatus `json:"status"`
	Deadline string           `json:"deadline"`
}

// statusFor maps store errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrTeamNotFound),
		errors.Is(err, store.ErrMemberNotFound),
		errors.Is(err, store.ErrTaskNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrTeamExists), errors.Is(err, store.ErrMemberExists):
		return http.StatusConflict
	case errors.Is(err, store.ErrInvalidName):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func (s *Server) chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query must not be empty"})
		return
	}
	reply := s.assistant.Reply(c.Request.Context(), req.UserID, req.Query)
	c.JSON(http.StatusOK, model.ChatResponse{Response: reply})
}

func (s *Server) listTeams(c *gin.Context) {
	r, err := s.store.Teams(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) createTeam(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name := strings.TrimSpace(req.Name)
	if err := s.store.CreateTeam(c.Request.Context(), name); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": fmt.Sprintf("Team '%s' created successfully.", name)})
}

func (s *Server) deleteTeam(c *gin.Context) {
	team := c.Param("team")
	if err := s.store.DeleteTeam(c.Request.Context(), team); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Team '%s' deleted.", team)})
}

func (s *Server) addMember(c *gin.Context) {
	team := c.Param("team")
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	member := strings.TrimSpace(req.Name)
	if err := s.store.AddMember(c.Request.Context(), team, member); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": fmt.Sprintf("User '%s' added to team '%s'.", member, team)})
}

func (s *Server) removeMember(c *gin.Context) {
	team, member := c.Param("team"), c.Param("member")
	if err := s.store.RemoveMember(c.Request.Context(), team, member); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("User '%s' removed from '%s'.", member, team)})
}

func (s *Server) memberDetail(c *gin.Context) {
	name := c.Param("name")
	tasks, err := s.store.Tasks(c.Request.Context(), name)
	if err != nil {
		fail(c, err)
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	c.JSON(http.StatusOK, model.MemberDetail{
		Name:           name,
		CompletedTasks: completedCount(tasks),
		TotalTasks:     len(tasks),
		Tasks:          tasks,
	})
}

func (s *Server) listTasks(c *gin.Context) {
	tasks, err := s.store.Tasks(c.Request.Context(), strings.TrimSpace(c.Query("assignee")))
	if err != nil {
		fail(c, err)
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) createTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := s.store.AddTask(c.Request.Context(), model.Task{
		Title:    req.Title,
		Assignee: req.Assignee,
		Status:   req.Status,
		Deadline: req.Deadline,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (s *Server) deleteTask(c *gin.Context) {
	id := c.Param("id")
	if err := s.store.DeleteTask(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Task %s deleted.", id)})
}
