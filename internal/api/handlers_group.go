package api

import (
	"net/http"

	"github.com/splitsmart-dev/splitsmart/internal/middleware"
	"github.com/splitsmart-dev/splitsmart/internal/models"
)

type createGroupRequest struct {
	Name    string          `json:"name"`
	Members []memberPayload `json:"members"`
}

type addMembersRequest struct {
	Members []memberPayload `json:"members"`
}

func toMembers(payloads []memberPayload) []models.Member {
	members := make([]models.Member, 0, len(payloads))
	for _, p := range payloads {
		members = append(members, models.Member{ID: p.ID, Name: p.Name, Email: p.Email})
	}
	return members
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	group, err := s.groups.CreateGroup(r.Context(), req.Name, middleware.GetUserID(r.Context()), toMembers(req.Members))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toGroupResponse(group))
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.groups.ListGroups(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]groupResponse, 0, len(groups))
	for _, group := range groups {
		resp = append(resp, toGroupResponse(group))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := s.groups.GetGroup(r.Context(), r.PathValue("groupID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(group))
}

func (s *Server) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := s.groups.DeleteGroup(r.Context(), r.PathValue("groupID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleAddMembers(w http.ResponseWriter, r *http.Request) {
	var req addMembersRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Members) == 0 {
		badRequest(w, "at least one member is required")
		return
	}

	group, err := s.groups.AddMembers(r.Context(), r.PathValue("groupID"), toMembers(req.Members))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(group))
}

func (s *Server) handleGroupBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := s.expenses.GroupBalances(r.Context(), r.PathValue("groupID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]map[string]float64{"balances": balances})
}

func (s *Server) handlePendingAmount(w http.ResponseWriter, r *http.Request) {
	pending, err := s.expenses.PendingAmount(r.Context(), r.PathValue("groupID"), r.PathValue("memberID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"pending": pending})
}
