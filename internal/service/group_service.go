package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shariqwaseem/sw-clone/internal/models"
	"github.com/shariqwaseem/sw-clone/internal/storage"
)

// GroupService manages groups and their memberships.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// requireActiveMember loads the acting user's membership and fails unless it
// is active. Used as the access gate for every group-scoped operation.
func (s *GroupService) requireActiveMember(ctx context.Context, groupID, uid string) (*models.GroupMember, error) {
	member, err := s.store.GetGroupMember(ctx, groupID, uid)
	if err != nil {
		return nil, err
	}
	if member == nil || !member.IsActive() {
		return nil, ErrNotMember
	}
	return member, nil
}

// CreateGroup creates a group with the acting user as its admin member.
func (s *GroupService) CreateGroup(ctx context.Context, userID, name, currency string) (*models.Group, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	group := &models.Group{
		Name:      name,
		Currency:  currency,
		CreatedBy: userID,
	}
	creator := &models.GroupMember{
		UID:         user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        models.RoleAdmin,
		Status:      models.StatusActive,
	}

	if err := s.store.CreateGroup(ctx, group, creator); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "name", group.Name, "created_by", userID)
	return group, nil
}

// GetGroup returns a group and its full member roster. The acting user must
// be an active member.
func (s *GroupService) GetGroup(ctx context.Context, userID, groupID string) (*models.Group, []models.GroupMember, error) {
	if _, err := s.requireActiveMember(ctx, groupID, userID); err != nil {
		return nil, nil, err
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	members, err := s.store.ListGroupMembers(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	return group, members, nil
}

// ListGroups returns every group the acting user is an active member of.
func (s *GroupService) ListGroups(ctx context.Context, userID string) ([]models.Group, error) {
	return s.store.ListGroupsByMember(ctx, userID)
}

// JoinGroup adds the acting user to a group as a regular member (the invite
// link flow). Rejoining after removal reactivates the old membership.
func (s *GroupService) JoinGroup(ctx context.Context, userID, groupID string) (*models.GroupMember, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	member := &models.GroupMember{
		GroupID:     groupID,
		UID:         user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        models.RoleMember,
		Status:      models.StatusActive,
	}

	// Preserve an existing role on rejoin.
	if existing, err := s.store.GetGroupMember(ctx, groupID, userID); err != nil {
		return nil, err
	} else if existing != nil {
		member.Role = existing.Role
		member.JoinedAt = existing.JoinedAt
	}

	if err := s.store.UpsertGroupMember(ctx, member); err != nil {
		slog.Error("JoinGroup failed", "group_id", groupID, "user_id", userID, "error", err)
		return nil, err
	}

	slog.Info("Member joined group", "group_id", groupID, "user_id", userID)
	return member, nil
}

// AddMember adds an existing user to the group by email. Admin only.
func (s *GroupService) AddMember(ctx context.Context, userID, groupID, email, role string) (*models.GroupMember, error) {
	actor, err := s.requireActiveMember(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleAdmin {
		return nil, ErrAdminRequired
	}
	if role != models.RoleAdmin {
		role = models.RoleMember
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	member := &models.GroupMember{
		GroupID:     groupID,
		UID:         user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        role,
		Status:      models.StatusActive,
	}
	if err := s.store.UpsertGroupMember(ctx, member); err != nil {
		slog.Error("AddMember failed", "group_id", groupID, "error", err)
		return nil, err
	}

	slog.Info("Member added", "group_id", groupID, "member_uid", user.ID, "added_by", userID)
	return member, nil
}

// RemoveMember marks a membership as removed. Admin only. The row is kept:
// the uid may still appear in historical expenses and must stay resolvable.
func (s *GroupService) RemoveMember(ctx context.Context, userID, groupID, targetUID string) error {
	actor, err := s.requireActiveMember(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if actor.Role != models.RoleAdmin && userID != targetUID {
		return ErrAdminRequired
	}

	target, err := s.store.GetGroupMember(ctx, groupID, targetUID)
	if err != nil {
		return err
	}
	if target == nil {
		return fmt.Errorf("member %s: %w", targetUID, storage.ErrNotFound)
	}

	target.Status = models.StatusRemoved
	if err := s.store.UpsertGroupMember(ctx, target); err != nil {
		slog.Error("RemoveMember failed", "group_id", groupID, "error", err)
		return err
	}

	slog.Info("Member removed", "group_id", groupID, "member_uid", targetUID, "removed_by", userID)
	return nil
}

// DeleteGroup hard-deletes a group with all its expenses, payments and
// memberships. Admin only. This is the only hard delete in the system.
func (s *GroupService) DeleteGroup(ctx context.Context, userID, groupID string) error {
	actor, err := s.requireActiveMember(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if actor.Role != models.RoleAdmin {
		return ErrAdminRequired
	}

	if err := s.store.DeleteGroup(ctx, groupID); err != nil {
		slog.Error("DeleteGroup failed", "group_id", groupID, "error", err)
		return err
	}

	slog.Info("Group deleted", "group_id", groupID, "deleted_by", userID)
	return nil
}
